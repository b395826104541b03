package leads

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/realty-intake-service/internal/domain"
	"github.com/m04kA/realty-intake-service/internal/infra/storage/intake"
	"github.com/m04kA/realty-intake-service/internal/service/leads/models"
)

// Service сервис для работы с лидами чат-бота
type Service struct {
	repo              LeadRepository
	metrics           Metrics
	logger            Logger
	strictTransitions bool
}

// NewService создает новый экземпляр сервиса лидов
func NewService(
	repo LeadRepository,
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

// Create сохраняет лид и возвращает его идентификатор
func (s *Service) Create(ctx context.Context, req *models.CreateLeadRequest) (string, error) {
	s.logger.Info("Create: storing lead for email=%s, interest=%q, messages=%d",
		req.Email, req.Interest, len(req.ConversationHistory))

	lead, err := s.repo.CreateLead(ctx, req.ToDomainInput())
	if err != nil {
		s.metrics.StoreFailed(string(domain.KindLead), "create")
		s.logger.Error("Create: repository error: %v", err)
		return "", fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.metrics.RecordCreated(string(domain.KindLead))
	s.logger.Info("Create: successfully stored lead id=%s", lead.ID)
	return lead.ID, nil
}

// List возвращает все лиды, новые первыми
func (s *Service) List(ctx context.Context) (*models.LeadListResponse, error) {
	leads, err := s.repo.ListLeads(ctx)
	if err != nil {
		s.metrics.StoreFailed(string(domain.KindLead), "list")
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d leads", len(leads))
	return models.FromDomainLeadList(leads), nil
}

// UpdateStatus меняет статус лида и возвращает обновлённую запись
func (s *Service) UpdateStatus(ctx context.Context, id string, req *models.UpdateStatusRequest) (*models.LeadResponse, error) {
	s.logger.Info("UpdateStatus: updating lead id=%s to status=%s", id, req.Status)

	newStatus, err := domain.ParseLeadStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%q for lead id=%s", req.Status, id)
		return nil, ErrInvalidStatus
	}

	var check func(domain.LeadStatus) error
	if s.strictTransitions {
		check = func(current domain.LeadStatus) error {
			if !current.CanTransitionTo(newStatus) {
				return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, current, newStatus)
			}
			return nil
		}
	}

	lead, err := s.repo.UpdateLeadStatus(ctx, id, newStatus, check)
	if err != nil {
		switch {
		case errors.Is(err, intake.ErrNotFound):
			s.logger.Warn("UpdateStatus: lead id=%s not found", id)
			return nil, ErrLeadNotFound
		case errors.Is(err, domain.ErrInvalidTransition):
			s.logger.Warn("UpdateStatus: lead id=%s: %v", id, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidTransition, err)
		default:
			s.metrics.StoreFailed(string(domain.KindLead), "update_status")
			s.logger.Error("UpdateStatus: repository error for lead id=%s: %v", id, err)
			return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}
	}

	s.metrics.StatusUpdated(string(domain.KindLead), string(newStatus))
	s.logger.Info("UpdateStatus: successfully updated lead id=%s to status=%s", id, newStatus)
	return models.FromDomainLead(lead), nil
}
