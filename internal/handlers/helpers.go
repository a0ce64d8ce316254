package handlers

import (
	"github.com/labstack/echo/v4"

	"github.com/shopworks/supermarket/internal/models"
	"github.com/shopworks/supermarket/internal/session"
)

// sessionUser adapts the snapshot to a pointer so templates can nil-check
// it with a plain {{if .user}}.
func sessionUser(m *session.Manager, c echo.Context) *models.User {
	if u, ok := m.User(c); ok {
		return &u
	}
	return nil
}
