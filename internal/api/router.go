package api

import (
	"net/http"

	gorillahandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	createBookingHandler "github.com/m04kA/realty-intake-service/internal/api/handlers/create_booking"
	createLeadHandler "github.com/m04kA/realty-intake-service/internal/api/handlers/create_lead"
	getStatsHandler "github.com/m04kA/realty-intake-service/internal/api/handlers/get_stats"
	healthHandler "github.com/m04kA/realty-intake-service/internal/api/handlers/health"
	listBookingsHandler "github.com/m04kA/realty-intake-service/internal/api/handlers/list_bookings"
	listLeadsHandler "github.com/m04kA/realty-intake-service/internal/api/handlers/list_leads"
	updateBookingStatusHandler "github.com/m04kA/realty-intake-service/internal/api/handlers/update_booking_status"
	updateLeadStatusHandler "github.com/m04kA/realty-intake-service/internal/api/handlers/update_lead_status"
	"github.com/m04kA/realty-intake-service/internal/api/middleware"
	"github.com/m04kA/realty-intake-service/internal/service/bookings"
	"github.com/m04kA/realty-intake-service/internal/service/leads"
	"github.com/m04kA/realty-intake-service/internal/service/stats"
	"github.com/m04kA/realty-intake-service/pkg/metrics"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Services сервисы, которые обслуживает HTTP API
type Services struct {
	Bookings *bookings.Service
	Leads    *leads.Service
	Stats    *stats.Service
}

// Options параметры маршрутизации
type Options struct {
	APIPrefix   string   // "/api/v1"
	CORSOrigins []string // пусто - CORS выключен
	Metrics     *metrics.Metrics
	MetricsPath string
	Logger      Logger
}

// NewRouter собирает маршруты API
func NewRouter(svc Services, opts Options) http.Handler {
	log := opts.Logger

	createBooking := createBookingHandler.NewHandler(svc.Bookings, log)
	listBookings := listBookingsHandler.NewHandler(svc.Bookings, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(svc.Bookings, log)
	createLead := createLeadHandler.NewHandler(svc.Leads, log)
	listLeads := listLeadsHandler.NewHandler(svc.Leads, log)
	updateLeadStatus := updateLeadStatusHandler.NewHandler(svc.Leads, log)
	getStats := getStatsHandler.NewHandler(svc.Stats, log)
	health := healthHandler.NewHandler(nil)

	r := mux.NewRouter()
	r.Use(middleware.Logging(log))

	// Добавляем metrics middleware (если метрики включены)
	if opts.Metrics != nil {
		r.Use(middleware.MetricsMiddleware(opts.Metrics))
		r.Handle(opts.MetricsPath, opts.Metrics.Handler()).Methods(http.MethodGet)
	}

	api := r.PathPrefix(opts.APIPrefix).Subrouter()

	// --- Бронирования ---
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{id}/status", updateBookingStatus.Handle).Methods(http.MethodPut)

	// --- Лиды чат-бота ---
	api.HandleFunc("/leads", createLead.Handle).Methods(http.MethodPost)
	api.HandleFunc("/leads", listLeads.Handle).Methods(http.MethodGet)
	api.HandleFunc("/leads/{id}/status", updateLeadStatus.Handle).Methods(http.MethodPut)

	// --- Панель администратора ---
	api.HandleFunc("/admin/stats", getStats.Handle).Methods(http.MethodGet)

	api.HandleFunc("/health", health.Handle).Methods(http.MethodGet)

	if len(opts.CORSOrigins) == 0 {
		return r
	}

	// Виджет и страница записи работают в браузере с другого origin
	return gorillahandlers.CORS(
		gorillahandlers.AllowedOrigins(opts.CORSOrigins),
		gorillahandlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions}),
		gorillahandlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)(r)
}
