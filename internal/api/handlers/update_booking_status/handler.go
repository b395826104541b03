package update_booking_status

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/realty-intake-service/internal/api/handlers"
	"github.com/m04kA/realty-intake-service/internal/service/bookings"
	"github.com/m04kA/realty-intake-service/internal/service/bookings/models"
)

const (
	msgInvalidRequestBody = "Invalid request body"
	msgNotFound           = "Booking not found"
	msgInvalidStatus      = "Invalid status"
	msgInvalidTransition  = "Invalid status transition"
	msgUpdateFailed       = "Failed to update booking status"
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

// Handle PUT /api/v1/bookings/{id}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req models.UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /bookings/{id}/status - Invalid request body: booking_id=%s, error=%v", id, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	booking, err := h.service.UpdateStatus(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PUT /bookings/{id}/status - Booking not found: booking_id=%s", id)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrInvalidStatus):
			h.logger.Warn("PUT /bookings/{id}/status - Invalid status: booking_id=%s, status=%q", id, req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, bookings.ErrInvalidTransition):
			h.logger.Warn("PUT /bookings/{id}/status - Invalid transition: booking_id=%s, status=%s", id, req.Status)
			handlers.RespondConflict(w, msgInvalidTransition)

		default:
			h.logger.Error("PUT /bookings/{id}/status - Failed to update booking status: booking_id=%s, error=%v", id, err)
			handlers.RespondInternalError(w, msgUpdateFailed)
		}
		return
	}

	h.logger.Info("PUT /bookings/{id}/status - Booking status updated: booking_id=%s, status=%s", id, booking.Status)
	handlers.RespondJSON(w, http.StatusOK, UpdateStatusResponse{
		Success: true,
		Booking: booking,
	})
}
