package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/penshort/userapi/internal/config"
	"github.com/penshort/userapi/internal/handler"
	"github.com/penshort/userapi/internal/metrics"
	"github.com/penshort/userapi/internal/middleware"
)

// routerDeps collects everything setupRouter wires together.
type routerDeps struct {
	cfg      *config.Config
	logger   *slog.Logger
	recorder metrics.Recorder
	store    handler.HealthChecker
	redis    handler.HealthChecker // nil when events are disabled
	users    handler.UserService
	metrics  http.Handler // nil when metrics are disabled
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(d routerDeps) *chi.Mux {
	r := chi.NewRouter()
	useMiddleware(r, d)

	h := handler.New()
	health := handler.NewHealthHandler(d.store, d.redis)
	users := handler.NewUserHandler(d.users, d.logger)
	metricsHandler := handler.NewMetricsHandler(d.metrics)

	r.Get("/", h.Hello)
	r.Get("/healthz", health.Healthz)
	r.Get("/readyz", health.Readyz)
	r.Get("/metrics", metricsHandler.Metrics)

	r.Route("/api/users", func(r chi.Router) {
		r.Get("/", users.List)
		r.Post("/", users.Create)
		r.Get("/{id}", users.Get)
	})

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	return r
}

// useMiddleware installs the shared middleware chain. Logger and Metrics wrap
// Recoverer so recovered panics are logged and counted as 500s.
func useMiddleware(r chi.Router, d routerDeps) {
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(d.logger))
	r.Use(middleware.Metrics(d.recorder))
	r.Use(middleware.Recoverer(d.logger, d.cfg.IsDevelopment()))
	r.Use(middleware.Security(middleware.SecurityConfig{IsDevelopment: d.cfg.IsDevelopment()}))
	r.Use(middleware.CORS(middleware.DefaultCORSConfig(d.cfg.GetCORSAllowedOrigins())))
	r.Use(middleware.MaxBodySize(d.cfg.MaxRequestBodySize))
}
