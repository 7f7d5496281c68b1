package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const teapotBody = "I am a teapot"

// Teapot всегда отвечает 418 и не читает запрос.
func Teapot(c echo.Context) error {
	return c.String(http.StatusTeapot, teapotBody)
}
