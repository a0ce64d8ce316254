package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// AdminOnly denies accounts without the admin role. Safe even when applied
// without RequireLogin: an anonymous visitor is denied the same way.
func (g *Guard) AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := g.Sessions.User(c)
		if !ok || user.Role != "admin" {
			_ = g.Sessions.Error(c, "Access denied")
			return c.Redirect(http.StatusFound, "/shopping")
		}
		return next(c)
	}
}
