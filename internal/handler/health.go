package handler

import (
	"context"
	"net/http"
	"time"
)

// HealthChecker defines an interface for checking dependency health.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthHandler manages health check endpoints.
type HealthHandler struct {
	store HealthChecker
	redis HealthChecker
}

// NewHealthHandler creates a new HealthHandler.
// Pass nil for redis when no event stream is configured.
func NewHealthHandler(store, redis HealthChecker) *HealthHandler {
	return &HealthHandler{
		store: store,
		redis: redis,
	}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Healthz is a liveness probe endpoint. No dependency checks.
//
// GET /healthz
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// Readyz returns 200 only if every configured dependency answers a ping.
//
// GET /readyz
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]string, 2)
	healthy := true

	for name, dep := range map[string]HealthChecker{"store": h.store, "redis": h.redis} {
		if dep == nil {
			checks[name] = "not configured"
			continue
		}
		if err := dep.Ping(ctx); err != nil {
			checks[name] = "error: " + err.Error()
			healthy = false
			continue
		}
		checks[name] = "ok"
	}

	status := "ok"
	statusCode := http.StatusOK
	if !healthy {
		status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	}

	writeJSON(w, statusCode, HealthResponse{
		Status: status,
		Checks: checks,
	})
}
