package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/ardiansyahn/todo-app/internal/session"
	"github.com/ardiansyahn/todo-app/internal/store"
)

// newServer wires the handlers onto a fresh Echo instance backed by a
// temporary data file, mirroring the real route table.
func newServer(t *testing.T) (*echo.Echo, store.Store) {
	t.Helper()

	st, err := store.New(filepath.Join(t.TempDir(), "data.json"))
	require.NoError(t, err)

	auth := NewAuthHandler(st)
	todos := NewTodoHandler(st)

	e := echo.New()
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

	return e, st
}

func sessionCookie(t *testing.T) *http.Cookie {
	t.Helper()
	raw, err := json.Marshal(session.Identity{ID: 1, Name: "Tester", Email: "tester@example.com"})
	require.NoError(t, err)
	return &http.Cookie{Name: session.CookieName, Value: url.QueryEscape(string(raw))}
}

// doJSON performs a request with an authenticated session and decodes the
// envelope.
func doJSON(t *testing.T, e *echo.Echo, method, target string, body any) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	rec := doRawJSON(t, e, method, target, body, sessionCookie(t))
	return rec, decodeEnvelope(t, rec)
}

// doPublicJSON performs a request without a session cookie.
func doPublicJSON(t *testing.T, e *echo.Echo, method, target string, body any) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	rec := doRawJSON(t, e, method, target, body, nil)
	return rec, decodeEnvelope(t, rec)
}

func doRawJSON(t *testing.T, e *echo.Echo, method, target string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = strings.NewReader(string(raw))
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if cookie != nil {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func dataMap(t *testing.T, resp Response) map[string]any {
	t.Helper()
	m, ok := resp.Data.(map[string]any)
	require.True(t, ok, "envelope data should be an object, got %T", resp.Data)
	return m
}
