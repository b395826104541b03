package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/realty-intake-service/internal/domain"
	"github.com/m04kA/realty-intake-service/internal/infra/storage/intake"
	"github.com/m04kA/realty-intake-service/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	repo              BookingRepository
	metrics           Metrics
	logger            Logger
	strictTransitions bool
}

// NewService создает новый экземпляр сервиса бронирований.
// strictTransitions включает проверку переходов статусов по таблице domain.
func NewService(
	repo BookingRepository,
	metrics Metrics,
	logger Logger,
	strictTransitions bool,
) *Service {
	if metrics == nil {
		metrics = discardMetrics{}
	}
	return &Service{
		repo:              repo,
		metrics:           metrics,
		logger:            logger,
		strictTransitions: strictTransitions,
	}
}

// Create сохраняет заявку со страницы записи и возвращает её идентификатор.
// Поля не валидируются: форма проверяет обязательные поля до отправки.
func (s *Service) Create(ctx context.Context, req *models.CreateBookingRequest) (string, error) {
	s.logger.Info("Create: storing booking for email=%s, date=%s %s", req.Email, req.SelectedDate, req.SelectedTime)

	booking, err := s.repo.CreateBooking(ctx, req.ToDomainInput())
	if err != nil {
		s.metrics.StoreFailed(string(domain.KindBooking), "create")
		s.logger.Error("Create: repository error: %v", err)
		return "", fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.metrics.RecordCreated(string(domain.KindBooking))
	s.logger.Info("Create: successfully stored booking id=%s", booking.ID)
	return booking.ID, nil
}

// List возвращает все бронирования, новые первыми
func (s *Service) List(ctx context.Context) (*models.BookingListResponse, error) {
	bookings, err := s.repo.ListBookings(ctx)
	if err != nil {
		s.metrics.StoreFailed(string(domain.KindBooking), "list")
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// UpdateStatus меняет статус бронирования и возвращает обновлённую запись
func (s *Service) UpdateStatus(ctx context.Context, id string, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: updating booking id=%s to status=%s", id, req.Status)

	newStatus, err := domain.ParseBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%q for booking id=%s", req.Status, id)
		return nil, ErrInvalidStatus
	}

	booking, err := s.repo.UpdateBookingStatus(ctx, id, newStatus, s.transitionCheck(newStatus))
	if err != nil {
		switch {
		case errors.Is(err, intake.ErrNotFound):
			s.logger.Warn("UpdateStatus: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		case errors.Is(err, domain.ErrInvalidTransition):
			s.logger.Warn("UpdateStatus: booking id=%s: %v", id, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidTransition, err)
		default:
			s.metrics.StoreFailed(string(domain.KindBooking), "update_status")
			s.logger.Error("UpdateStatus: repository error for booking id=%s: %v", id, err)
			return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}
	}

	s.metrics.StatusUpdated(string(domain.KindBooking), string(newStatus))
	s.logger.Info("UpdateStatus: successfully updated booking id=%s to status=%s", id, newStatus)
	return models.FromDomainBooking(booking), nil
}

func (s *Service) transitionCheck(next domain.BookingStatus) func(domain.BookingStatus) error {
	if !s.strictTransitions {
		return nil
	}
	return func(current domain.BookingStatus) error {
		if !current.CanTransitionTo(next) {
			return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, current, next)
		}
		return nil
	}
}
