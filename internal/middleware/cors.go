package middleware

import (
	"net/http"
	"strconv"
	"strings"
)

// CORSConfig holds CORS configuration options.
type CORSConfig struct {
	// AllowedOrigins lists exact origins or "*.example.com" style subdomain patterns.
	// Empty denies every cross-origin request.
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
	ExposedHeaders []string
	// MaxAge is the preflight cache lifetime in seconds.
	MaxAge int
}

// DefaultCORSConfig returns defaults matching the user API surface.
func DefaultCORSConfig(origins []string) CORSConfig {
	return CORSConfig{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", RequestIDHeader, TraceIDHeader},
		ExposedHeaders: []string{"Location", RequestIDHeader},
		MaxAge:         86400,
	}
}

// CORS answers preflight requests and adds CORS headers for allowed origins.
// Disallowed preflights get 403; disallowed simple requests pass through without
// CORS headers so the browser blocks them.
func CORS(cfg CORSConfig) func(http.Handler) http.Handler {
	methods := strings.Join(cfg.AllowedMethods, ", ")
	headers := strings.Join(cfg.AllowedHeaders, ", ")
	exposed := strings.Join(cfg.ExposedHeaders, ", ")

	exact := make(map[string]struct{}, len(cfg.AllowedOrigins))
	var suffixes []string
	for _, origin := range cfg.AllowedOrigins {
		origin = strings.ToLower(origin)
		if strings.HasPrefix(origin, "*.") {
			suffixes = append(suffixes, origin[1:])
			continue
		}
		exact[origin] = struct{}{}
	}

	allowed := func(origin string) bool {
		origin = strings.ToLower(origin)
		if _, ok := exact[origin]; ok {
			return true
		}
		for _, suffix := range suffixes {
			// "*.example.com" matches "https://api.example.com", not "https://badexample.com"
			if strings.HasSuffix(origin, suffix) {
				return true
			}
		}
		return false
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			preflight := r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != ""

			if !allowed(origin) {
				if preflight {
					w.WriteHeader(http.StatusForbidden)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			h := w.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Add("Vary", "Origin")
			if exposed != "" {
				h.Set("Access-Control-Expose-Headers", exposed)
			}

			if preflight {
				h.Set("Access-Control-Allow-Methods", methods)
				h.Set("Access-Control-Allow-Headers", headers)
				if cfg.MaxAge > 0 {
					h.Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
				}
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
