package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopworks/supermarket/internal/session"
)

// Guard holds the session-backed authorization checks attached to route
// groups. Both checks are pure reads of session state; the only side
// effects are the queued notice and the redirect.
type Guard struct {
	Sessions *session.Manager
}

// RequireLogin denies anonymous visitors with a flashed notice and a
// redirect to the login form.
func (g *Guard) RequireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := g.Sessions.User(c); !ok {
			_ = g.Sessions.Error(c, "Please log in to view this resource")
			return c.Redirect(http.StatusFound, "/login")
		}
		return next(c)
	}
}
