package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/penshort/userapi/internal/metrics"
)

// unmatchedRoute labels requests that no route handled, keeping label cardinality bounded.
const unmatchedRoute = "unmatched"

// Metrics records request count and latency labelled by chi route pattern
// (e.g. /api/users/{id}) rather than the raw path.
func Metrics(recorder metrics.Recorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := newStatusWriter(w)

			next.ServeHTTP(sw, r)

			route := unmatchedRoute
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					route = pattern
				}
			}

			recorder.ObserveHTTPRequest(r.Method, route, sw.status, time.Since(start))
		})
	}
}
