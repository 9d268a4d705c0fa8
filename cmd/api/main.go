// Package main is the entrypoint for the user API server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"

	"github.com/penshort/userapi/internal/cache"
	"github.com/penshort/userapi/internal/config"
	"github.com/penshort/userapi/internal/events"
	"github.com/penshort/userapi/internal/handler"
	"github.com/penshort/userapi/internal/logging"
	"github.com/penshort/userapi/internal/metrics"
	"github.com/penshort/userapi/internal/repository"
	"github.com/penshort/userapi/internal/server"
	"github.com/penshort/userapi/internal/service"
)

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, logCloser := logging.New(logging.Options{
		Level:      cfg.LogLevel,
		Format:     cfg.LogFormat,
		File:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAgeDays: cfg.LogMaxAgeDays,
	})
	defer logCloser.Close()

	var (
		recorder   metrics.Recorder = metrics.NewNoop()
		exposition *metrics.PrometheusRecorder
	)
	if cfg.MetricsEnabled {
		exposition = metrics.NewPrometheus()
		recorder = exposition
	}

	store := repository.NewUserRepository()

	deps := routerDeps{
		cfg:      cfg,
		logger:   logger,
		recorder: recorder,
		store:    store,
	}

	var publisher events.Publisher = events.NewNoop()
	var redisClient *cache.Cache
	if cfg.EventsEnabled() {
		redisClient, err = cache.New(ctx, cfg.RedisURL)
		if err != nil {
			logger.Error("failed to connect to Redis",
				slog.String("error", err.Error()),
				slog.String("redis_url", redactURL(cfg.RedisURL)),
			)
			return err
		}
		logger.Info("connected to Redis")
		publisher = events.NewRedisPublisher(redisClient.Client(), logger, recorder)
		deps.redis = redisClient
	}

	deps.users = service.NewUserService(store, publisher, recorder, logger)
	if exposition != nil {
		deps.metrics = exposition.Handler()
	}

	srv := server.New(setupRouter(deps), server.Options{
		Port:            cfg.AppPort,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, logger)

	// registered first, closed last
	if redisClient != nil {
		srv.OnShutdown("redis", func(context.Context) error { return redisClient.Close() })
	}
	srv.OnShutdown("events", publisher.Close)

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
		"events_enabled", cfg.EventsEnabled(),
		"metrics_enabled", cfg.MetricsEnabled,
		"handler_version", handler.Version,
	)

	return srv.Run(ctx)
}

// redactURL strips the password from a connection URL before logging.
func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		if username := parsed.User.Username(); username != "" {
			parsed.User = url.User(username)
		} else {
			parsed.User = url.User("redacted")
		}
	}

	return parsed.String()
}
