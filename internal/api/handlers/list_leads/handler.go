package list_leads

import (
	"net/http"

	"github.com/m04kA/realty-intake-service/internal/api/handlers"
)

const msgFetchFailed = "Failed to fetch leads"

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

// Handle GET /api/v1/leads
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /leads - Failed to fetch leads: %v", err)
		handlers.RespondInternalError(w, msgFetchFailed)
		return
	}

	h.logger.Info("GET /leads - Leads retrieved successfully: count=%d", len(result.Leads))
	handlers.RespondJSON(w, http.StatusOK, ListLeadsResponse{
		Success: true,
		Leads:   result.Leads,
	})
}
