// Package session holds everything a visitor accumulates between requests:
// the authenticated account snapshot, the shopping cart and the one-shot
// flash mailbox.
package session

import (
	"encoding/gob"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"

	"github.com/shopworks/supermarket/internal/models"
)

// Name is the session cookie name.
const Name = "supermarket_session"

const (
	keyUser = "user"
	keyCart = "cart"

	flashError   = "error"
	flashSuccess = "success"
	flashForm    = "form"
)

func init() {
	// Registered for stores that serialize values; the in-memory store
	// keeps them as-is.
	gob.Register(models.User{})
	gob.Register(Cart{})
	gob.Register(map[string]string{})
}

type Manager struct {
	store sessions.Store
}

func NewManager(store sessions.Store) *Manager {
	return &Manager{store: store}
}

// session never returns nil: gorilla hands back a fresh session even when
// decoding the cookie fails.
func (m *Manager) session(c echo.Context) *sessions.Session {
	s, _ := m.store.Get(c.Request(), Name)
	return s
}

func (m *Manager) save(c echo.Context, s *sessions.Session) error {
	return s.Save(c.Request(), c.Response())
}

// User returns the authenticated account snapshot, if any.
func (m *Manager) User(c echo.Context) (models.User, bool) {
	u, ok := m.session(c).Values[keyUser].(models.User)
	return u, ok
}

func (m *Manager) SetUser(c echo.Context, u models.User) error {
	s := m.session(c)
	s.Values[keyUser] = u
	return m.save(c, s)
}

// Cart returns the session cart; empty if none has been created yet.
func (m *Manager) Cart(c echo.Context) Cart {
	cart, _ := m.session(c).Values[keyCart].(Cart)
	return cart
}

func (m *Manager) SaveCart(c echo.Context, cart Cart) error {
	s := m.session(c)
	s.Values[keyCart] = cart
	return m.save(c, s)
}

// Destroy drops the whole session; user and cart are both lost and the
// next request starts anonymous.
func (m *Manager) Destroy(c echo.Context) error {
	s := m.session(c)
	s.Options.MaxAge = -1
	s.Values = make(map[interface{}]interface{})
	return m.save(c, s)
}

func (m *Manager) Error(c echo.Context, msg string) error {
	return m.flash(c, flashError, msg)
}

func (m *Manager) Success(c echo.Context, msg string) error {
	return m.flash(c, flashSuccess, msg)
}

func (m *Manager) flash(c echo.Context, kind, msg string) error {
	s := m.session(c)
	s.AddFlash(msg, kind)
	return m.save(c, s)
}

// Errors drains the error mailbox; each notice is shown exactly once.
func (m *Manager) Errors(c echo.Context) []string {
	return m.drain(c, flashError)
}

// Successes drains the success mailbox.
func (m *Manager) Successes(c echo.Context) []string {
	return m.drain(c, flashSuccess)
}

func (m *Manager) drain(c echo.Context, kind string) []string {
	s := m.session(c)
	raw := s.Flashes(kind)
	if len(raw) == 0 {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if msg, ok := v.(string); ok {
			out = append(out, msg)
		}
	}
	_ = m.save(c, s)
	return out
}

// ReplayForm preserves submitted values for exactly one redisplay of the
// registration form.
func (m *Manager) ReplayForm(c echo.Context, form map[string]string) error {
	s := m.session(c)
	s.AddFlash(form, flashForm)
	return m.save(c, s)
}

// FormData returns replayed values queued by ReplayForm and clears them.
func (m *Manager) FormData(c echo.Context) map[string]string {
	s := m.session(c)
	raw := s.Flashes(flashForm)
	if len(raw) == 0 {
		return nil
	}
	_ = m.save(c, s)
	form, _ := raw[0].(map[string]string)
	return form
}
