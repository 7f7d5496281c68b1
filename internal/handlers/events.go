package handlers

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"example.com/events-portal/backend/internal/i18n"
	"example.com/events-portal/backend/internal/page"
)

const (
	headerAcceptLanguage  = "Accept-Language"
	headerContentLanguage = "Content-Language"
)

type EventsHandler struct {
	Catalog *i18n.Catalog
	Logger  *slog.Logger
}

// NewEventsHandler создает обработчик страницы событий.
func NewEventsHandler(catalog *i18n.Catalog, logger *slog.Logger) *EventsHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &EventsHandler{Catalog: catalog, Logger: logger}
}

// Page рендерит страницу событий в локали из ?lang= или Accept-Language.
func (h *EventsHandler) Page(c echo.Context) error {
	locale := h.Catalog.Locale(c.QueryParam("lang"), c.Request().Header.Get(headerAcceptLanguage))

	var buf bytes.Buffer
	if err := page.Events(&buf, locale, h.Catalog.Resolver(locale)); err != nil {
		h.Logger.Error("events page render failed", slog.String("locale", locale), slog.String("error", err.Error()))
		return serverError(c)
	}

	c.Response().Header().Set(headerContentLanguage, locale)
	c.Response().Header().Add(echo.HeaderVary, headerAcceptLanguage)
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}
