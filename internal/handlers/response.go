package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Response is the envelope shared by every API endpoint.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func respond(c echo.Context, code int, message string, data any) error {
	return c.JSON(code, Response{Success: true, Message: message, Data: data})
}

func respondError(c echo.Context, code int, message string) error {
	return c.JSON(code, Response{Success: false, Message: message})
}

// respondInternal carries the underlying error text but nothing more; raw
// file-system details stay out of the response.
func respondInternal(c echo.Context, message string, err error) error {
	return c.JSON(http.StatusInternalServerError, Response{Success: false, Message: message, Error: err.Error()})
}
