package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"example.com/events-portal/backend/internal/database"
)

const (
	readyTimeout = 2 * time.Second

	statusReady    = "ready"
	statusNotReady = "not_ready"

	checkHealthy       = "healthy"
	checkUnhealthy     = "unhealthy"
	checkNotConfigured = "not_configured"
)

type CheckStatus struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

type ReadinessResponse struct {
	Status    string                 `json:"status"`
	Timestamp string                 `json:"timestamp"`
	Checks    map[string]CheckStatus `json:"checks"`
}

type ReadyHandler struct {
	DB     database.Pinger
	Logger *slog.Logger
	Now    func() time.Time
}

// NewReadyHandler создает readiness-проверку; db может быть nil, если БД не настроена.
func NewReadyHandler(db database.Pinger, logger *slog.Logger) *ReadyHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &ReadyHandler{DB: db, Logger: logger, Now: time.Now}
}

// Ready проверяет зависимости и отвечает 503, если хотя бы одна недоступна.
func (h *ReadyHandler) Ready(c echo.Context) error {
	checks := map[string]CheckStatus{
		"database": h.checkDatabase(c.Request().Context()),
	}

	status := statusReady
	code := http.StatusOK
	for _, check := range checks {
		if check.Status == checkUnhealthy {
			status = statusNotReady
			code = http.StatusServiceUnavailable
			break
		}
	}

	now := time.Now
	if h.Now != nil {
		now = h.Now
	}

	return c.JSON(code, ReadinessResponse{
		Status:    status,
		Timestamp: formatTimestamp(now()),
		Checks:    checks,
	})
}

func (h *ReadyHandler) checkDatabase(ctx context.Context) CheckStatus {
	if h.DB == nil {
		return CheckStatus{Status: checkNotConfigured}
	}

	ctx, cancel := context.WithTimeout(ctx, readyTimeout)
	defer cancel()

	start := time.Now()
	if err := h.DB.Ping(ctx); err != nil {
		h.Logger.Warn("database readiness check failed", slog.String("error", err.Error()))
		return CheckStatus{Status: checkUnhealthy, Message: "unreachable"}
	}

	return CheckStatus{
		Status:  checkHealthy,
		Message: "connected",
		Latency: time.Since(start).Round(time.Microsecond).String(),
	}
}
