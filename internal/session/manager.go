package session

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"parley/internal/boot"
	"parley/internal/model"
)

type Store interface {
	CreateSession(session *model.Session) error
	SessionByToken(token string) (*model.Session, error)
	DeleteSession(token string) error
}

// Manager owns the full session lifecycle: create on login or signup,
// rotate on privilege change, destroy on logout. The cookie carries only
// the opaque token; all state lives server-side.
type Manager struct {
	store      Store
	ttl        time.Duration
	cookieName string
	secure     bool
}

func NewManager(store Store, config *boot.Config) *Manager {
	return &Manager{
		store:      store,
		ttl:        config.SessionTTL,
		cookieName: config.CookieName,
		secure:     config.CookieSecure,
	}
}

// Start creates a fresh session for the account and sets the cookie. Any
// token already held by the client is discarded first, so a pre-auth
// session identifier never survives authentication.
func (m *Manager) Start(c echo.Context, accountID int64) error {
	if cookie, err := c.Cookie(m.cookieName); err == nil && cookie.Value != "" {
		if err := m.store.DeleteSession(cookie.Value); err != nil {
			return fmt.Errorf("discarding previous session: %w", err)
		}
	}

	now := time.Now().UTC()
	session := &model.Session{
		Token:     model.CreateSessionToken(),
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
		AccountID: accountID,
	}

	if err := m.store.CreateSession(session); err != nil {
		return fmt.Errorf("creating session: %w", err)
	}

	c.SetCookie(m.cookie(session.Token, session.ExpiresAt))
	return nil
}

// End destroys the client's session and expires the cookie. Missing or
// unknown tokens are not an error; logout is idempotent.
func (m *Manager) End(c echo.Context) error {
	cookie, err := c.Cookie(m.cookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	if err := m.store.DeleteSession(cookie.Value); err != nil {
		return fmt.Errorf("destroying session: %w", err)
	}

	expired := m.cookie("", time.Unix(0, 0))
	expired.MaxAge = -1
	c.SetCookie(expired)
	return nil
}

// Current resolves the client's cookie to a live session.
func (m *Manager) Current(c echo.Context) (*model.Session, error) {
	cookie, err := c.Cookie(m.cookieName)
	if err != nil || cookie.Value == "" {
		return nil, model.ErrorSessionNotFound
	}
	return m.store.SessionByToken(cookie.Value)
}

func (m *Manager) cookie(token string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     m.cookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
