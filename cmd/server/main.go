// Package main is the entrypoint for the latencybench dashboard server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/kiranshivaraju/latencybench/internal/api"
	"github.com/kiranshivaraju/latencybench/internal/api/handler"
	mw "github.com/kiranshivaraju/latencybench/internal/api/middleware"
	"github.com/kiranshivaraju/latencybench/internal/api/response"
	"github.com/kiranshivaraju/latencybench/internal/cache"
	"github.com/kiranshivaraju/latencybench/internal/config"
	"github.com/kiranshivaraju/latencybench/internal/dashboard"
	"github.com/kiranshivaraju/latencybench/internal/metrics"
	"github.com/kiranshivaraju/latencybench/internal/store"
	"github.com/kiranshivaraju/latencybench/internal/web"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 30 * time.Second

var (
	// Set by LDFLAGS
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	slog.SetDefault(newLogger(os.Getenv("LATENCYBENCH_ENV") == config.EnvDevelopment))

	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

// newLogger returns a colored handler for local development and JSON
// everywhere else.
func newLogger(development bool) *slog.Logger {
	if !development {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	}
	return slog.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level:      slog.LevelDebug,
		TimeFormat: time.TimeOnly,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if s, ok := a.Value.Any().(string); ok && s == "" {
				return slog.Attr{}
			}
			return a
		},
	}))
}

func run() error {
	// 1. Load config, fail fast on invalid config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	slog.Info("config loaded", "env", cfg.Server.Env, "window_days", cfg.Dashboard.WindowDays, "redis", cfg.Redis.URL != "")
	metrics.BuildInfo.WithLabelValues(version, commit, date).Set(1)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Connect to database
	pool, err := store.Connect(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()
	slog.Info("database connected")

	// 3. Create cache
	c, err := newCache(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer c.Close()

	// 4. Create store and dashboard service
	pgStore := store.NewPostgresStore(pool)

	svc, err := dashboard.NewService(&dashboard.Config{
		Logger:     slog.Default(),
		Store:      pgStore,
		Cache:      c,
		Clock:      clockwork.NewRealClock(),
		WindowDays: cfg.Dashboard.WindowDays,
		CacheTTL:   cfg.Cache.TTL,
	})
	if err != nil {
		return fmt.Errorf("create dashboard service: %w", err)
	}
	defer svc.Close()

	// 5. Build router with dependencies
	pages := web.NewHandler(svc)

	router := api.NewRouter(api.Dependencies{
		RateLimit: mw.NewRateLimit(c, cfg.RateLimit.PerMinute),

		HealthHandler:     healthHandler(pgStore, c),
		ReferenceHandler:  handler.NewReferenceHandler(svc),
		LatencyHandler:    handler.NewLatencyHandler(svc),
		TableHandler:      handler.NewTableHandler(svc),
		HistoryHandler:    handler.NewHistoryHandler(svc),
		TransitionHandler: handler.NewTransitionHandler(svc),

		DashboardPage: pages.Dashboard,
		FAQPage:       pages.FAQ,

		MetricsHandler: promhttp.Handler(),
	})

	// 6. Start HTTP server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Wait for shutdown signal or server error
	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		slog.Info("shutdown signal received, draining connections...")
	}

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}

// newCache connects to Redis when a URL is configured and falls back to the
// in-process cache otherwise.
func newCache(ctx context.Context, cfg config.RedisConfig) (cache.Cache, error) {
	if cfg.URL == "" {
		slog.Info("no REDIS_URL configured, using in-process cache")
		return cache.NewMemoryCache(), nil
	}

	redisCache, err := cache.NewRedisCache(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("create redis cache: %w", err)
	}
	if err := redisCache.Ping(ctx); err != nil {
		redisCache.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	slog.Info("redis connected")
	return redisCache, nil
}

// healthHandler checks database and cache connectivity.
func healthHandler(s store.Store, c cache.Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := map[string]string{
			"database": "ok",
			"cache":    "ok",
		}

		if err := s.Ping(r.Context()); err != nil {
			checks["database"] = "degraded"
		}
		if err := c.Ping(r.Context()); err != nil {
			checks["cache"] = "degraded"
		}

		degraded := checks["database"] != "ok" || checks["cache"] != "ok"
		if degraded {
			response.Error(w, http.StatusServiceUnavailable, "DEGRADED",
				"One or more services degraded", checks)
			return
		}

		response.JSON(w, map[string]any{
			"status":   "ok",
			"version":  version,
			"services": checks,
		})
	}
}
