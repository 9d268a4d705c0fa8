package handler

import "net/http"

// MetricsHandler exposes the metrics registry.
type MetricsHandler struct {
	exposition http.Handler
}

// NewMetricsHandler wraps an exposition handler such as promhttp.
// A nil handler makes the endpoint report 503.
func NewMetricsHandler(exposition http.Handler) *MetricsHandler {
	return &MetricsHandler{exposition: exposition}
}

// Metrics serves GET /metrics.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.exposition == nil {
		writeError(w, http.StatusServiceUnavailable, "METRICS_DISABLED", "metrics are disabled")
		return
	}
	h.exposition.ServeHTTP(w, r)
}
