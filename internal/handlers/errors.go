package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func serverError(c echo.Context) error {
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
}
