package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/shopworks/supermarket/internal/hash"
	"github.com/shopworks/supermarket/internal/logging"
	"github.com/shopworks/supermarket/internal/models"
	"github.com/shopworks/supermarket/internal/session"
)

const minPasswordLen = 6

type AuthHandler struct {
	DB       *gorm.DB
	Sessions *session.Manager
}

func (h *AuthHandler) Index(c echo.Context) error {
	return c.Render(http.StatusOK, "index", echo.Map{
		"user": sessionUser(h.Sessions, c),
	})
}

func (h *AuthHandler) RegisterForm(c echo.Context) error {
	return c.Render(http.StatusOK, "register", echo.Map{
		"errors":   h.Sessions.Errors(c),
		"formData": h.Sessions.FormData(c),
	})
}

func (h *AuthHandler) Register(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "auth.register")

	username := c.FormValue("username")
	email := c.FormValue("email")
	password := c.FormValue("password")
	address := c.FormValue("address")
	contact := c.FormValue("contact")
	role := c.FormValue("role")

	if username == "" || email == "" || password == "" || address == "" || contact == "" || role == "" {
		return c.String(http.StatusBadRequest, "All fields are required.")
	}

	if len(password) < minPasswordLen {
		_ = h.Sessions.Error(c, "Password should be at least 6 or more characters long")
		_ = h.Sessions.ReplayForm(c, map[string]string{
			"username": username,
			"email":    email,
			"address":  address,
			"contact":  contact,
			"role":     role,
		})
		return c.Redirect(http.StatusFound, "/register")
	}

	digest, err := hash.HashPassword(password)
	if err != nil {
		l.Error("register_failed", "reason", "hash password", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: digest,
		Address:      address,
		Contact:      contact,
		Role:         role,
	}
	if err := h.DB.Create(&user).Error; err != nil {
		l.Error("register_failed", "reason", "insert user", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}

	l.Info("register_success", "user_id", user.ID)
	_ = h.Sessions.Success(c, "Registration successful! Please log in.")
	return c.Redirect(http.StatusFound, "/login")
}

func (h *AuthHandler) LoginForm(c echo.Context) error {
	return c.Render(http.StatusOK, "login", echo.Map{
		"messages": h.Sessions.Successes(c),
		"errors":   h.Sessions.Errors(c),
	})
}

func (h *AuthHandler) Login(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "auth.login")

	email := c.FormValue("email")
	password := c.FormValue("password")
	if email == "" || password == "" {
		_ = h.Sessions.Error(c, "All fields are required.")
		return c.Redirect(http.StatusFound, "/login")
	}

	var user models.User
	err := h.DB.Where("email = ?", email).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		// Same notice as a wrong password, so the lookup result is not
		// observable from outside.
		_ = h.Sessions.Error(c, "Invalid email or password.")
		return c.Redirect(http.StatusFound, "/login")
	case err != nil:
		l.Error("login_failed", "reason", "lookup user", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		_ = h.Sessions.Error(c, "Invalid email or password.")
		return c.Redirect(http.StatusFound, "/login")
	}

	// The session snapshot never carries the digest.
	user.PasswordHash = ""
	if err := h.Sessions.SetUser(c, user); err != nil {
		l.Error("login_failed", "reason", "save session", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}

	l.Info("login_success", "user_id", user.ID, "role", user.Role)
	_ = h.Sessions.Success(c, "Login successful!")

	if user.Role == "admin" {
		return c.Redirect(http.StatusFound, "/inventory")
	}
	return c.Redirect(http.StatusFound, "/shopping")
}

func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.Sessions.Destroy(c); err != nil {
		logging.FromContext(c.Request().Context()).Error("logout_failed", "error", err)
	}
	return c.Redirect(http.StatusFound, "/")
}
