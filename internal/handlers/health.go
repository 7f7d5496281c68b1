package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// TimestampLayout — ISO-8601 в UTC с миллисекундами.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

const statusHealthy = "healthy"

type HealthResponse struct {
	Status      string `json:"status"`
	Timestamp   string `json:"timestamp"`
	Environment string `json:"environment"`
}

type HealthHandler struct {
	Env string
	Now func() time.Time
}

// NewHealthHandler создает обработчик liveness-проверки.
func NewHealthHandler(env string) *HealthHandler {
	return &HealthHandler{Env: env, Now: time.Now}
}

// Health возвращает статус процесса без проверки зависимостей.
func (h *HealthHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status:      statusHealthy,
		Timestamp:   formatTimestamp(h.now()),
		Environment: h.Env,
	})
}

func (h *HealthHandler) now() time.Time {
	if h.Now == nil {
		return time.Now()
	}

	return h.Now()
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
