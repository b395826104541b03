package create_booking

import (
	"net/http"

	"github.com/m04kA/realty-intake-service/internal/api/handlers"
	"github.com/m04kA/realty-intake-service/internal/service/bookings/models"
)

const (
	msgInvalidRequestBody = "Invalid request body"
	msgStoreFailed        = "Failed to store booking"
	msgStored             = "Booking stored successfully"
)

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

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	id, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("POST /bookings - Failed to store booking: email=%s, error=%v", req.Email, err)
		handlers.RespondInternalError(w, msgStoreFailed)
		return
	}

	h.logger.Info("POST /bookings - Booking stored successfully: booking_id=%s", id)
	handlers.RespondJSON(w, http.StatusOK, CreateBookingResponse{
		Success:   true,
		BookingID: id,
		Message:   msgStored,
	})
}
