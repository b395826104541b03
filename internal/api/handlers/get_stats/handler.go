package get_stats

import (
	"net/http"

	"github.com/m04kA/realty-intake-service/internal/api/handlers"
	"github.com/m04kA/realty-intake-service/internal/service/stats"
)

const msgFetchFailed = "Failed to fetch stats"

// Response HTTP response model
type Response struct {
	Success bool         `json:"success"`
	Stats   *stats.Stats `json:"stats"`
}

type Handler struct {
	service StatsService
	logger  Logger
}

func NewHandler(service StatsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/stats
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Get(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/stats - Failed to fetch stats: %v", err)
		handlers.RespondInternalError(w, msgFetchFailed)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, Response{Success: true, Stats: result})
}
