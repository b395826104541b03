package list_bookings

import (
	"net/http"

	"github.com/m04kA/realty-intake-service/internal/api/handlers"
)

const msgFetchFailed = "Failed to fetch bookings"

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /bookings - Failed to fetch bookings: %v", err)
		handlers.RespondInternalError(w, msgFetchFailed)
		return
	}

	h.logger.Info("GET /bookings - Bookings retrieved successfully: count=%d", len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, ListBookingsResponse{
		Success:  true,
		Bookings: result.Bookings,
	})
}
