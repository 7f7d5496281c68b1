package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"example.com/events-portal/backend/internal/config"
	"example.com/events-portal/backend/internal/database"
	"example.com/events-portal/backend/internal/handlers"
	"example.com/events-portal/backend/internal/i18n"
	"example.com/events-portal/backend/internal/metrics"
)

// Deps — внешние зависимости сервера; DB может быть nil.
type Deps struct {
	Logger  *slog.Logger
	DB      database.Pinger
	Metrics *metrics.Metrics
}

// New собирает HTTP-сервер Echo с роутами и зависимостями.
func New(cfg config.Config, deps Deps) (*echo.Echo, error) {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	m := deps.Metrics
	if m == nil {
		m = metrics.New()
	}

	catalog, err := i18n.NewCatalog(cfg.I18n.DefaultLocale)
	if err != nil {
		return nil, fmt.Errorf("build translation catalog: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(logger))
	e.Use(m.Middleware())

	healthHandler := handlers.NewHealthHandler(cfg.Env)
	readyHandler := handlers.NewReadyHandler(deps.DB, logger)
	eventsHandler := handlers.NewEventsHandler(catalog, logger)

	registerRoutes(e, healthHandler, readyHandler, eventsHandler, echo.WrapHandler(m.Handler()), rateLimiter(cfg.RateLimit))

	return e, nil
}

// NewHTTPServer создает net/http сервер с заданными таймаутами.
func NewHTTPServer(cfg config.ServerConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.String("remote_ip", v.RemoteIP),
				slog.String("request_id", v.RequestID),
				slog.Duration("latency", v.Latency),
			}

			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}

			msg := "request completed"
			if v.Status >= http.StatusInternalServerError {
				logger.LogAttrs(c.Request().Context(), slog.LevelError, msg, attrs...)
				return nil
			}

			logger.LogAttrs(c.Request().Context(), slog.LevelInfo, msg, attrs...)
			return nil
		},
	})
}

func rateLimiter(cfg config.RateLimitConfig) echo.MiddlewareFunc {
	limit := rate.Limit(float64(cfg.PerMinute) / 60.0)
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      limit,
		Burst:     cfg.Burst,
		ExpiresIn: time.Minute,
	})

	return middleware.RateLimiter(store)
}
