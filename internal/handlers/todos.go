package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ardiansyahn/todo-app/internal/models"
	"github.com/ardiansyahn/todo-app/internal/store"
)

type TodoHandler struct {
	store store.Store
}

func NewTodoHandler(s store.Store) *TodoHandler {
	return &TodoHandler{store: s}
}

type createTodoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	UserID      int    `json:"userId"`
	DueDate     string `json:"dueDate"`
	Status      string `json:"status"`
}

// updateTodoRequest distinguishes absent fields from empty ones; only
// non-nil fields make it into the store patch.
type updateTodoRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	DueDate     *string `json:"dueDate"`
	Status      *string `json:"status"`
}

// dueDateLayouts covers RFC 3339 plus the values an HTML datetime-local
// input produces.
var dueDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

func parseDueDate(value string) (time.Time, error) {
	var err error
	for _, layout := range dueDateLayouts {
		var t time.Time
		if t, err = time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

func todoID(c echo.Context) (int, error) {
	return strconv.Atoi(c.Param("id"))
}

// List returns all todos, or only one user's when the userId query
// parameter is set.
func (h *TodoHandler) List(c echo.Context) error {
	userID := 0
	if raw := c.QueryParam("userId"); raw != "" {
		var err error
		if userID, err = strconv.Atoi(raw); err != nil {
			return respondError(c, http.StatusBadRequest, "Invalid userId")
		}
	}

	todos, err := h.store.ListTodos(c.Request().Context(), userID)
	if err != nil {
		return respondInternal(c, "Failed to get todos", err)
	}

	return respond(c, http.StatusOK, "Todos retrieved successfully", todos)
}

// Create validates the required fields and rejects past due dates before
// delegating to the store.
func (h *TodoHandler) Create(c echo.Context) error {
	var req createTodoRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}

	if strings.TrimSpace(req.Title) == "" {
		return respondError(c, http.StatusBadRequest, "Title is required")
	}
	if req.UserID == 0 {
		return respondError(c, http.StatusBadRequest, "UserId is required")
	}
	if req.DueDate == "" {
		return respondError(c, http.StatusBadRequest, "Due date is required")
	}

	due, err := parseDueDate(req.DueDate)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid due date format")
	}
	if due.Before(time.Now()) {
		return respondError(c, http.StatusBadRequest, "Due date cannot be in the past")
	}

	status := models.StatusPending
	if req.Status != "" {
		status = models.Status(req.Status)
		if !status.Valid() {
			return respondError(c, http.StatusBadRequest, "Invalid status. Must be: pending, in-progress, or completed")
		}
	}

	todo, err := h.store.AddTodo(c.Request().Context(), store.NewTodo{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		UserID:      req.UserID,
		DueDate:     req.DueDate,
		Status:      status,
	})
	if err != nil {
		var verr *store.ValidationError
		if errors.As(err, &verr) {
			return respondError(c, http.StatusBadRequest, verr.Msg)
		}
		return respondInternal(c, "Failed to add todo", err)
	}

	return respond(c, http.StatusCreated, "Todo created successfully", todo)
}

func (h *TodoHandler) Get(c echo.Context) error {
	id, err := todoID(c)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid todo id")
	}

	todo, err := h.store.GetTodoByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return respondError(c, http.StatusNotFound, "Todo not found")
		}
		return respondInternal(c, "Failed to get todo", err)
	}

	return respond(c, http.StatusOK, "Todo retrieved successfully", todo)
}

// Update applies a partial update. Each provided field is validated the same
// way as on creation, except that past due dates are allowed here.
func (h *TodoHandler) Update(c echo.Context) error {
	id, err := todoID(c)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid todo id")
	}

	var req updateTodoRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}

	patch := store.TodoPatch{}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return respondError(c, http.StatusBadRequest, "Title cannot be empty")
		}
		patch.Title = &title
	}
	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		patch.Description = &description
	}
	if req.Status != nil {
		status := models.Status(*req.Status)
		if !status.Valid() {
			return respondError(c, http.StatusBadRequest, "Invalid status. Must be: pending, in-progress, or completed")
		}
		patch.Status = &status
	}
	if req.DueDate != nil {
		if _, err := parseDueDate(*req.DueDate); err != nil {
			return respondError(c, http.StatusBadRequest, "Invalid due date format")
		}
		patch.DueDate = req.DueDate
	}

	todo, err := h.store.UpdateTodo(c.Request().Context(), id, patch)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return respondError(c, http.StatusNotFound, "Todo not found")
		}
		return respondInternal(c, "Failed to update todo", err)
	}

	return respond(c, http.StatusOK, "Todo updated successfully", todo)
}

// UpdateStatus is the status-only patch used by the quick status toggle.
func (h *TodoHandler) UpdateStatus(c echo.Context) error {
	id, err := todoID(c)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid todo id")
	}

	var req updateTodoRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}

	patch := store.TodoPatch{}
	if req.Status != nil {
		status := models.Status(*req.Status)
		if !status.Valid() {
			return respondError(c, http.StatusBadRequest, "Invalid status. Must be: pending, in-progress, or completed")
		}
		patch.Status = &status
	}

	todo, err := h.store.UpdateTodo(c.Request().Context(), id, patch)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return respondError(c, http.StatusNotFound, "Todo not found")
		}
		return respondInternal(c, "Failed to update todo status", err)
	}

	return respond(c, http.StatusOK, "Todo status updated successfully", todo)
}

func (h *TodoHandler) Delete(c echo.Context) error {
	id, err := todoID(c)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid todo id")
	}

	if err := h.store.DeleteTodo(c.Request().Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return respondError(c, http.StatusNotFound, "Todo not found")
		}
		return respondInternal(c, "Failed to delete todo", err)
	}

	return respond(c, http.StatusOK, "Todo deleted successfully", echo.Map{"id": id})
}
