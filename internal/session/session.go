// Package session implements the cookie-based login marker. The cookie holds
// URL-encoded JSON identity with no signature or expiry: its presence and
// parseability alone decide whether a request counts as logged in.
package session

import (
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"
)

// CookieName is the session cookie's name.
const CookieName = "session"

// Identity is the user identity carried by the cookie. It never includes the
// password hash.
type Identity struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Write sets the session cookie on the response.
func Write(c echo.Context, id Identity) error {
	raw, err := json.Marshal(id)
	if err != nil {
		return err
	}
	c.SetCookie(&http.Cookie{
		Name:  CookieName,
		Value: url.QueryEscape(string(raw)),
		Path:  "/",
	})
	return nil
}

// Clear expires the session cookie.
func Clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:    CookieName,
		Value:   "",
		Path:    "/",
		Expires: time.Unix(0, 0),
		MaxAge:  -1,
	})
}

// FromRequest decodes the session cookie. A missing or garbled cookie
// returns ok=false; no other verification is performed.
func FromRequest(c echo.Context) (Identity, bool) {
	cookie, err := c.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return Identity{}, false
	}
	raw, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return Identity{}, false
	}
	var id Identity
	if err := json.Unmarshal([]byte(raw), &id); err != nil {
		return Identity{}, false
	}
	return id, true
}

// RequireSession gates protected routes: requests without a parseable
// session cookie are redirected to the home route.
func RequireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := FromRequest(c); !ok {
			return c.Redirect(http.StatusFound, "/")
		}
		return next(c)
	}
}

// RedirectIfAuthenticated is the inverse gate for public pages: a request
// that already carries a session is sent to the todo list.
func RedirectIfAuthenticated(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := FromRequest(c); ok {
			return c.Redirect(http.StatusFound, "/todos")
		}
		return next(c)
	}
}
