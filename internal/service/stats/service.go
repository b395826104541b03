package stats

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Stats счетчики для карточек панели администратора
type Stats struct {
	TotalBookings   int `json:"totalBookings"`
	PendingBookings int `json:"pendingBookings"`
	TotalLeads      int `json:"totalLeads"`
	NewLeads        int `json:"newLeads"`
}

type Service struct {
	repo   Repository
	logger Logger
}

func NewService(repo Repository, logger Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Get читает бронирования и лиды параллельно и считает сводку
func (s *Service) Get(ctx context.Context) (*Stats, error) {
	var result Stats

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		bookings, err := s.repo.ListBookings(gctx)
		if err != nil {
			return fmt.Errorf("bookings: %w", err)
		}
		result.TotalBookings = len(bookings)
		for _, b := range bookings {
			if b.IsPending() {
				result.PendingBookings++
			}
		}
		return nil
	})

	g.Go(func() error {
		leads, err := s.repo.ListLeads(gctx)
		if err != nil {
			return fmt.Errorf("leads: %w", err)
		}
		result.TotalLeads = len(leads)
		for _, l := range leads {
			if l.IsNew() {
				result.NewLeads++
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.Error("Get: failed to collect stats: %v", err)
		return nil, fmt.Errorf("%w: Get - %w", ErrInternal, err)
	}

	s.logger.Info("Get: bookings=%d (pending=%d), leads=%d (new=%d)",
		result.TotalBookings, result.PendingBookings, result.TotalLeads, result.NewLeads)
	return &result, nil
}
