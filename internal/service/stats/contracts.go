package stats

import (
	"context"

	"github.com/m04kA/realty-intake-service/internal/domain"
)

// Repository источник записей для счетчиков панели администратора
type Repository interface {
	ListBookings(ctx context.Context) ([]*domain.Booking, error)
	ListLeads(ctx context.Context) ([]*domain.Lead, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
