package leads

import (
	"context"

	"github.com/m04kA/realty-intake-service/internal/domain"
)

// LeadRepository интерфейс репозитория лидов
type LeadRepository interface {
	CreateLead(ctx context.Context, in domain.LeadInput) (*domain.Lead, error)
	ListLeads(ctx context.Context) ([]*domain.Lead, error)
	UpdateLeadStatus(
		ctx context.Context,
		id string,
		status domain.LeadStatus,
		check func(current domain.LeadStatus) error,
	) (*domain.Lead, error)
}

// Metrics счетчики бизнес-операций
type Metrics interface {
	RecordCreated(kind string)
	StatusUpdated(kind, status string)
	StoreFailed(kind, operation string)
}

// discardMetrics используется, когда метрики выключены
type discardMetrics struct{}

func (discardMetrics) RecordCreated(string)         {}
func (discardMetrics) StatusUpdated(string, string) {}
func (discardMetrics) StoreFailed(string, string)   {}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
