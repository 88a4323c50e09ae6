package handlers

import (
	"net/http"

	"github.com/marmos91/indexfs/pkg/registry"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	registry *registry.Registry
}

// NewHealthHandler creates a new health handler. registry may be nil, in
// which case readiness reports unhealthy.
func NewHealthHandler(registry *registry.Registry) *HealthHandler {
	return &HealthHandler{registry: registry}
}

// Liveness handles GET /health. It succeeds whenever the server responds.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthyResponse(map[string]string{
		"service": "indexfs",
	}))
}

// Readiness handles GET /health/ready. Returns 503 until at least one disk
// is registered.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	if h.registry == nil {
		writeJSON(w, http.StatusServiceUnavailable, unhealthyResponse("registry not initialized"))
		return
	}

	count := h.registry.Count()
	if count == 0 {
		writeJSON(w, http.StatusServiceUnavailable, unhealthyResponse("no disks configured"))
		return
	}

	writeJSON(w, http.StatusOK, healthyResponse(map[string]any{
		"disks": count,
	}))
}
