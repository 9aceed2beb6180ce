// Package server собирает HTTP API облачного сервиса: файлы, календарь, аккаунты.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/iudanet/wanderlust/internal/server/config"
	"github.com/iudanet/wanderlust/internal/server/handlers"
	"github.com/iudanet/wanderlust/internal/server/jwt"
	"github.com/iudanet/wanderlust/internal/server/metrics"
	"github.com/iudanet/wanderlust/internal/server/middleware"
	"github.com/iudanet/wanderlust/internal/server/storage"
	"github.com/iudanet/wanderlust/internal/server/storage/sqlite"
	"github.com/iudanet/wanderlust/pkg/api"
)

// Лимит для регистрации и выдачи токенов: 10 попыток в минуту с IP
const (
	authRate  = rate.Limit(10.0 / 60.0)
	authBurst = 5
)

// Store хранилище, которое нужно роутеру
type Store interface {
	storage.AccountStorage
	storage.FileStorage
	storage.EventStorage
	handlers.Pinger
}

// Deps зависимости роутера
type Deps struct {
	Logger   *slog.Logger
	Store    Store
	Tokens   *jwt.Service
	Metrics  *metrics.Collector
	Gatherer prometheus.Gatherer
	Config   *config.Config
	Version  string
}

// NewRouter собирает chi роутер. stop останавливает фоновые rate limiters.
func NewRouter(d Deps) (handler http.Handler, stop func()) {
	general := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Rate:  d.Config.RateLimit,
		Burst: d.Config.RateBurst,
	}, d.Logger)
	auth := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Rate:  authRate,
		Burst: authBurst,
	}, d.Logger)

	healthHandler := handlers.NewHealthHandler(d.Logger, d.Store, d.Version)
	authHandler := handlers.NewAuthHandler(d.Logger, d.Store, d.Tokens, d.Metrics)
	filesHandler := handlers.NewFilesHandler(d.Logger, d.Store, d.Metrics, d.Config.MaxUploadBytes)
	calendarHandler := handlers.NewCalendarHandler(d.Logger, d.Store, d.Metrics)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.LoggingWithSkip(d.Logger, []string{"/api/v1/health", "/metrics"}))
	r.Use(middleware.MetricsMiddleware(d.Metrics))
	r.Use(middleware.RecoveryMiddleware(d.Logger))
	r.Use(general.Middleware())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handlers.SendError(w, d.Logger, "no such endpoint: "+r.URL.Path, http.StatusNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		handlers.SendError(w, d.Logger, "method not allowed", http.StatusMethodNotAllowed)
	})

	// Public
	r.Get("/api/v1/health", healthHandler.Health)
	r.Get("/api/v1/discovery", healthHandler.Discovery)
	r.Handle("/metrics", metrics.Handler(d.Gatherer))

	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware())
		r.Post("/api/v1/accounts", authHandler.Register)
		r.Post("/oauth2/token", authHandler.Token)
	})

	// Files API
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(d.Logger, d.Tokens, api.ScopeFiles))
		r.Get("/drive/v3/files", filesHandler.List)
		r.Get("/drive/v3/files/{fileID}", filesHandler.Get)
		r.Delete("/drive/v3/files/{fileID}", filesHandler.Delete)
		r.Post("/upload/drive/v3/files", filesHandler.Create)
		r.Patch("/upload/drive/v3/files/{fileID}", filesHandler.Update)
	})

	// Calendar API
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(d.Logger, d.Tokens, api.ScopeCalendar))
		r.Post("/calendar/v3/calendars/{calendarID}/events", calendarHandler.Insert)
		r.Get("/calendar/v3/calendars/{calendarID}/events", calendarHandler.List)
	})

	return r, func() {
		general.Stop()
		auth.Stop()
	}
}

// Run открывает хранилище и обслуживает HTTP до отмены ctx, затем корректно останавливается
func Run(ctx context.Context, cfg *config.Config, logger *slog.Logger, version string) error {
	store, err := sqlite.New(ctx, cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close storage", slog.Any("error", err))
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	handler, stop := NewRouter(Deps{
		Logger:   logger,
		Store:    store,
		Tokens:   jwt.NewService(cfg.JWTSecret, cfg.AccessTokenTTL),
		Metrics:  metrics.NewCollector(reg),
		Gatherer: reg,
		Config:   cfg,
		Version:  version,
	})
	defer stop()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server listening", slog.String("addr", cfg.Addr), slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down", slog.Duration("timeout", cfg.ShutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	})

	return g.Wait()
}
