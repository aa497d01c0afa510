package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/ardiansyahn/todo-app/internal/session"
	"github.com/ardiansyahn/todo-app/internal/store"
)

type AuthHandler struct {
	store store.Store
}

func NewAuthHandler(s store.Store) *AuthHandler {
	return &AuthHandler{store: s}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a new account. Duplicate emails are rejected with 409
// before the store is touched.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		return respondError(c, http.StatusBadRequest, "Name, email and password are required")
	}

	ctx := c.Request().Context()
	if _, err := h.store.FindUserByEmail(ctx, req.Email); err == nil {
		return respondError(c, http.StatusConflict, "Email is already registered")
	} else if !errors.Is(err, store.ErrNotFound) {
		return respondInternal(c, "Failed to register user", err)
	}

	user, err := h.store.AddUser(ctx, store.NewUser{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return respondInternal(c, "Failed to register user", err)
	}

	return respond(c, http.StatusOK, "User registered successfully", user.Sanitized())
}

// Login checks the password against the stored bcrypt hash and sets the
// session cookie. Unknown emails and wrong passwords share one message.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}

	if req.Email == "" || req.Password == "" {
		return respondError(c, http.StatusBadRequest, "Email and password are required")
	}

	user, err := h.store.FindUserByEmail(c.Request().Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return respondError(c, http.StatusBadRequest, "Invalid email or password")
		}
		return respondInternal(c, "Failed to log in", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid email or password")
	}

	if err := session.Write(c, session.Identity{ID: user.ID, Name: user.Name, Email: user.Email}); err != nil {
		return respondInternal(c, "Failed to log in", err)
	}

	return respond(c, http.StatusOK, "Logged in successfully", user.Sanitized())
}

// Logout clears the session cookie.
func (h *AuthHandler) Logout(c echo.Context) error {
	session.Clear(c)
	return respond(c, http.StatusOK, "Logged out successfully", nil)
}
