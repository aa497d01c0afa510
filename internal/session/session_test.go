package session

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteThenRead(t *testing.T) {
	e := echo.New()

	// Write the cookie on one response...
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	identity := Identity{ID: 7, Name: "Alice", Email: "alice@example.com"}
	require.NoError(t, Write(c, identity))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, CookieName, cookies[0].Name)

	// ...and read it back on the next request.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	c = e.NewContext(req, httptest.NewRecorder())

	got, ok := FromRequest(c)
	require.True(t, ok)
	assert.Equal(t, identity, got)
}

func TestFromRequest_NoCookie(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	_, ok := FromRequest(c)
	assert.False(t, ok)
}

func TestFromRequest_Garbage(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: url.QueryEscape("not json at all")})
	c := e.NewContext(req, httptest.NewRecorder())

	_, ok := FromRequest(c)
	assert.False(t, ok, "an unparseable cookie must not count as a session")
}

func TestRequireSession_RedirectsToHome(t *testing.T) {
	e := echo.New()
	e.GET("/todos", func(c echo.Context) error {
		return c.String(http.StatusOK, "todos")
	}, RequireSession)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/todos", nil))

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestRequireSession_PassesThrough(t *testing.T) {
	e := echo.New()
	e.GET("/todos", func(c echo.Context) error {
		return c.String(http.StatusOK, "todos")
	}, RequireSession)

	writeRec := httptest.NewRecorder()
	wc := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), writeRec)
	require.NoError(t, Write(wc, Identity{ID: 1, Name: "Bob", Email: "bob@example.com"}))

	req := httptest.NewRequest(http.MethodGet, "/todos", nil)
	req.AddCookie(writeRec.Result().Cookies()[0])
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "todos", rec.Body.String())
}

func TestRedirectIfAuthenticated(t *testing.T) {
	e := echo.New()
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "home")
	}, RedirectIfAuthenticated)

	// Without a session the page renders.
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	// With one, the visitor is bounced to the todo list.
	writeRec := httptest.NewRecorder()
	wc := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), writeRec)
	require.NoError(t, Write(wc, Identity{ID: 1, Name: "Bob", Email: "bob@example.com"}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(writeRec.Result().Cookies()[0])
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/todos", rec.Header().Get("Location"))
}
