package server

import (
	"github.com/labstack/echo/v4"

	"example.com/events-portal/backend/internal/handlers"
)

func registerRoutes(
	e *echo.Echo,
	healthHandler *handlers.HealthHandler,
	readyHandler *handlers.ReadyHandler,
	eventsHandler *handlers.EventsHandler,
	metricsHandler echo.HandlerFunc,
	pageRateLimiter echo.MiddlewareFunc,
) {
	// Лимит запросов только на странице: /, пробы и метрики отвечают всегда.
	e.GET("/", handlers.Teapot)
	e.GET("/health", healthHandler.Health)
	e.GET("/ready", readyHandler.Ready)
	e.GET("/events", eventsHandler.Page, pageRateLimiter)
	e.GET("/metrics", metricsHandler)
}
