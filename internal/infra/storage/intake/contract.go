package intake

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/realty-intake-service/internal/domain"
)

// RecordStore key-value хранилище, поверх которого живут бронирования и лиды
// Реализации: kvstore.Store (postgres/sqlite), memory.Store
type RecordStore interface {
	Set(ctx context.Context, key string, value []byte) error
	Get(ctx context.Context, key string) ([]byte, bool, error)
	GetByPrefix(ctx context.Context, prefix string) ([][]byte, error)
}

// IDGenerator генератор идентификаторов записей
type IDGenerator interface {
	NewID(kind domain.RecordKind) string
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// UUIDGenerator выдает идентификаторы вида "booking_<uuid v7>".
// UUIDv7 упорядочен по времени, поэтому id годится для стабильной сортировки при равных createdAt.
type UUIDGenerator struct{}

func (g *UUIDGenerator) NewID(kind domain.RecordKind) string {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 падает только при отказе crypto/rand
		id = uuid.New()
	}
	return string(kind) + "_" + id.String()
}
