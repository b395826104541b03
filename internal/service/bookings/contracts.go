package bookings

import (
	"context"

	"github.com/m04kA/realty-intake-service/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	CreateBooking(ctx context.Context, in domain.BookingInput) (*domain.Booking, error)
	ListBookings(ctx context.Context) ([]*domain.Booking, error)
	UpdateBookingStatus(
		ctx context.Context,
		id string,
		status domain.BookingStatus,
		check func(current domain.BookingStatus) error,
	) (*domain.Booking, error)
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
