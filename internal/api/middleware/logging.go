package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Logging пишет строку на каждый запрос; 5xx уходят в Error, 4xx в Warn
func Logging(logger Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			elapsed := time.Since(start)
			switch {
			case rec.status >= http.StatusInternalServerError:
				logger.Error("%s %s -> %d (%s)", r.Method, r.URL.Path, rec.status, elapsed)
			case rec.status >= http.StatusBadRequest:
				logger.Warn("%s %s -> %d (%s)", r.Method, r.URL.Path, rec.status, elapsed)
			default:
				logger.Info("%s %s -> %d (%s)", r.Method, r.URL.Path, rec.status, elapsed)
			}
		})
	}
}
