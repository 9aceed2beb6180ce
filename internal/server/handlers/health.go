package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/iudanet/wanderlust/pkg/api"
)

// Pinger проверка доступности хранилища
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler обрабатывает health check и discovery запросы
type HealthHandler struct {
	logger  *slog.Logger
	db      Pinger
	version string
}

// NewHealthHandler создает новый handler для health check
func NewHealthHandler(logger *slog.Logger, db Pinger, version string) *HealthHandler {
	return &HealthHandler{
		logger:  logger,
		db:      db,
		version: version,
	}
}

// Health обрабатывает GET /api/v1/health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(r.Context()); err != nil {
		h.logger.ErrorContext(r.Context(), "database is unavailable", slog.Any("error", err))
		SendError(w, h.logger, "database is unavailable", http.StatusServiceUnavailable)
		return
	}

	SendJSON(w, h.logger, api.HealthResponse{Status: "ok", Version: h.version}, http.StatusOK)
}

// Discovery обрабатывает GET /api/v1/discovery: какие API есть и какие области им нужны
func (h *HealthHandler) Discovery(w http.ResponseWriter, r *http.Request) {
	resp := api.DiscoveryResponse{
		Name:    "wanderlust",
		Version: h.version,
		Services: map[string]api.ServiceInfo{
			api.ServiceFiles:    {BasePath: "/drive/v3", Scope: api.ScopeFiles},
			api.ServiceCalendar: {BasePath: "/calendar/v3", Scope: api.ScopeCalendar},
		},
	}
	SendJSON(w, h.logger, resp, http.StatusOK)
}
