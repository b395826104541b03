package create_lead

import (
	"net/http"

	"github.com/m04kA/realty-intake-service/internal/api/handlers"
	"github.com/m04kA/realty-intake-service/internal/service/leads/models"
)

const (
	msgInvalidRequestBody = "Invalid request body"
	msgStoreFailed        = "Failed to store lead"
	msgStored             = "Lead stored successfully"
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

// Handle POST /api/v1/leads
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateLeadRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /leads - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	id, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("POST /leads - Failed to store lead: email=%s, error=%v", req.Email, err)
		handlers.RespondInternalError(w, msgStoreFailed)
		return
	}

	h.logger.Info("POST /leads - Lead stored successfully: lead_id=%s", id)
	handlers.RespondJSON(w, http.StatusOK, CreateLeadResponse{
		Success: true,
		LeadID:  id,
		Message: msgStored,
	})
}
