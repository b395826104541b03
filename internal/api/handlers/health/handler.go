package health

import (
	"net/http"
	"time"

	"github.com/m04kA/realty-intake-service/internal/api/handlers"
)

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

type realTime struct{}

func (realTime) Now() time.Time { return time.Now() }

// Response HTTP response model
type Response struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type Handler struct {
	clock TimeProvider
}

// NewHandler создает handler проверки живости; clock может быть nil
func NewHandler(clock TimeProvider) *Handler {
	if clock == nil {
		clock = realTime{}
	}
	return &Handler{clock: clock}
}

// Handle GET /api/v1/health
func (h *Handler) Handle(w http.ResponseWriter, _ *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, Response{
		Status:    "healthy",
		Timestamp: h.clock.Now().UTC(),
	})
}
