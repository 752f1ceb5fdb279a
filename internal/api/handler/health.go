package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/numengames/numinia-core/internal/api/response"
)

// Pinger checks a backing service is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports service health
type HealthHandler struct {
	store Pinger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(store Pinger) *HealthHandler {
	return &HealthHandler{store: store}
}

// Health handles GET /api/v1/monit/health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		response.JSON(w, http.StatusServiceUnavailable, response.Health{Status: "degraded"})
		return
	}
	response.JSON(w, http.StatusOK, response.Health{Status: "ok"})
}
