package get_stats

import (
	"context"

	"github.com/m04kA/realty-intake-service/internal/service/stats"
)

type StatsService interface {
	Get(ctx context.Context) (*stats.Stats, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
