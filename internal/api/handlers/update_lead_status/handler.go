package update_lead_status

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/realty-intake-service/internal/api/handlers"
	"github.com/m04kA/realty-intake-service/internal/service/leads"
	"github.com/m04kA/realty-intake-service/internal/service/leads/models"
)

const (
	msgInvalidRequestBody = "Invalid request body"
	msgNotFound           = "Lead not found"
	msgInvalidStatus      = "Invalid status"
	msgInvalidTransition  = "Invalid status transition"
	msgUpdateFailed       = "Failed to update lead status"
)

type Handler struct {
	service LeadService
	logger  Logger
}

func NewHandler(service LeadService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/leads/{id}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req models.UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /leads/{id}/status - Invalid request body: lead_id=%s, error=%v", id, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	lead, err := h.service.UpdateStatus(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, leads.ErrLeadNotFound):
			h.logger.Warn("PUT /leads/{id}/status - Lead not found: lead_id=%s", id)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, leads.ErrInvalidStatus):
			h.logger.Warn("PUT /leads/{id}/status - Invalid status: lead_id=%s, status=%q", id, req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, leads.ErrInvalidTransition):
			h.logger.Warn("PUT /leads/{id}/status - Invalid transition: lead_id=%s, status=%s", id, req.Status)
			handlers.RespondConflict(w, msgInvalidTransition)

		default:
			h.logger.Error("PUT /leads/{id}/status - Failed to update lead status: lead_id=%s, error=%v", id, err)
			handlers.RespondInternalError(w, msgUpdateFailed)
		}
		return
	}

	h.logger.Info("PUT /leads/{id}/status - Lead status updated: lead_id=%s, status=%s", id, lead.Status)
	handlers.RespondJSON(w, http.StatusOK, UpdateStatusResponse{
		Success: true,
		Lead:    lead,
	})
}
