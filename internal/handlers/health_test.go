package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"example.com/events-portal/backend/internal/testenv"
)

func serve(t *testing.T, method, path string, body string, register func(e *echo.Echo)) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	register(e)

	req := httptest.NewRequest(method, path, strings.NewReader(body)).WithContext(testenv.Context(t))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

// TestTeapot проверяет неизменный ответ 418.
func TestTeapot(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		body   string
		header map[string]string
	}{
		{name: "plain", path: "/"},
		{name: "query", path: "/?brew=coffee&x=1"},
		{name: "body and headers", path: "/", body: `{"tea":"green"}`, header: map[string]string{
			echo.HeaderContentType: echo.MIMEApplicationJSON,
			echo.HeaderAccept:      echo.MIMEApplicationJSON,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			e.GET("/", Teapot)

			req := httptest.NewRequest(http.MethodGet, tt.path, strings.NewReader(tt.body))
			for key, value := range tt.header {
				req.Header.Set(key, value)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusTeapot, rec.Code)
			assert.Equal(t, "I am a teapot", rec.Body.String())
			assert.True(t, strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMETextPlain))
		})
	}
}

// TestHealth проверяет поля ответа и время генерации timestamp.
func TestHealth(t *testing.T) {
	handler := NewHealthHandler("production")

	start := time.Now().UTC().Truncate(time.Millisecond)
	rec := serve(t, http.MethodGet, "/health", "", func(e *echo.Echo) {
		e.GET("/health", handler.Health)
	})
	end := time.Now().UTC()

	require.Equal(t, http.StatusOK, rec.Code)

	var body HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "production", body.Environment)

	ts, err := time.Parse(time.RFC3339, body.Timestamp)
	require.NoError(t, err)
	assert.False(t, ts.Before(start), "timestamp %s before request start %s", ts, start)
	assert.False(t, ts.After(end), "timestamp %s after request end %s", ts, end)
	assert.True(t, strings.HasSuffix(body.Timestamp, "Z"))
}

// TestHealthFixedClock проверяет формат timestamp и набор ключей.
func TestHealthFixedClock(t *testing.T) {
	handler := &HealthHandler{
		Env: "development",
		Now: func() time.Time {
			return time.Date(2024, 5, 1, 13, 0, 0, 123456789, time.FixedZone("MSK", 3*60*60))
		},
	}

	rec := serve(t, http.MethodGet, "/health", "", func(e *echo.Echo) {
		e.GET("/health", handler.Health)
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, map[string]string{
		"status":      "healthy",
		"timestamp":   "2024-05-01T10:00:00.123Z",
		"environment": "development",
	}, body)
}

// TestHealthTimestampPerRequest проверяет, что timestamp считается на каждый запрос.
func TestHealthTimestampPerRequest(t *testing.T) {
	current := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	handler := &HealthHandler{Env: "test", Now: func() time.Time { return current }}

	register := func(e *echo.Echo) { e.GET("/health", handler.Health) }

	first := serve(t, http.MethodGet, "/health", "", register)
	current = current.Add(time.Second)
	second := serve(t, http.MethodGet, "/health", "", register)

	assert.Contains(t, first.Body.String(), "2024-01-01T00:00:00.000Z")
	assert.Contains(t, second.Body.String(), "2024-01-01T00:00:01.000Z")
}

// TestHealthEnvironmentFromConfig проверяет environment из конфигурации.
func TestHealthEnvironmentFromConfig(t *testing.T) {
	cfg := testenv.Setup(t)
	handler := NewHealthHandler(cfg.Env)

	rec := serve(t, http.MethodGet, "/health", "", func(e *echo.Echo) {
		e.GET("/health", handler.Health)
	})

	assert.Contains(t, rec.Body.String(), `"environment":"test"`)
}
