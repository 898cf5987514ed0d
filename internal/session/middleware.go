package session

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"parley/internal/model"
)

const contextKey = "parley.session"

// RequireAuth rejects requests that do not carry a live session. Browsers
// are redirected to the login page; API clients asking for JSON get a 401.
// The resolved session is stored on the context for handlers.
func (m *Manager) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		session, err := m.Current(c)
		if err != nil {
			if wantsJSON(c) {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			return c.Redirect(http.StatusSeeOther, "/login")
		}

		c.Set(contextKey, session)
		return next(c)
	}
}

// FromContext returns the session stored by RequireAuth.
func FromContext(c echo.Context) (*model.Session, bool) {
	session, ok := c.Get(contextKey).(*model.Session)
	return session, ok
}

func wantsJSON(c echo.Context) bool {
	return strings.Contains(c.Request().Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON)
}
