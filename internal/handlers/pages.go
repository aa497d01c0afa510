package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// PageHandler serves the minimal page stubs the session redirects land on.
// The real UI is a separate client consuming the JSON API.
type PageHandler struct{}

func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

func (h *PageHandler) Home(c echo.Context) error {
	return c.HTML(http.StatusOK, "<!DOCTYPE html><title>Todo App</title><h1>Sign in</h1>")
}

func (h *PageHandler) Register(c echo.Context) error {
	return c.HTML(http.StatusOK, "<!DOCTYPE html><title>Register</title><h1>Create an account</h1>")
}

func (h *PageHandler) Todos(c echo.Context) error {
	return c.HTML(http.StatusOK, "<!DOCTYPE html><title>My Todos</title><h1>My Todos</h1>")
}
