package main

import (
	"github.com/labstack/echo/v4"

	"github.com/ardiansyahn/todo-app/internal/handlers"
	"github.com/ardiansyahn/todo-app/internal/session"
)

// registerRoutes wires the page stubs, the public auth endpoints, and the
// session-gated todo API.
func registerRoutes(e *echo.Echo, auth *handlers.AuthHandler, todos *handlers.TodoHandler, pages *handlers.PageHandler) {
	// Public pages; logged-in visitors are bounced to the todo list.
	e.GET("/", pages.Home, session.RedirectIfAuthenticated)
	e.GET("/register", pages.Register, session.RedirectIfAuthenticated)
	e.GET("/todos", pages.Todos, session.RequireSession)

	e.POST("/api/auth/register", auth.Register)
	e.POST("/api/auth/login", auth.Login)
	e.POST("/api/auth/logout", auth.Logout)

	api := e.Group("/api/todos", session.RequireSession)
	api.GET("", todos.List)
	api.POST("", todos.Create)
	api.GET("/:id", todos.Get)
	api.PUT("/:id", todos.Update)
	api.PATCH("/:id", todos.UpdateStatus)
	api.DELETE("/:id", todos.Delete)
}
