package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parley/internal/boot"
	"parley/internal/chatstore"
	"parley/internal/model"
)

func newTestManager(t *testing.T) (*Manager, int64) {
	t.Helper()

	config := boot.Config{
		DataDirectory: t.TempDir(),
		SessionTTL:    time.Hour,
		CookieName:    "parley_session",
	}
	store, err := chatstore.New(&config)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	account, err := store.CreateAccount(&model.Account{
		Name:     "Ann",
		Email:    "ann@x.com",
		Password: "not-a-real-hash",
	})
	require.NoError(t, err)

	return NewManager(store, &config), account.ID
}

func newTestContext(cookie *http.Cookie) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()

	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	t.Fatalf("no %s cookie set", name)
	return nil
}

func TestStartAndCurrent(t *testing.T) {
	assert := assert.New(t)
	manager, accountID := newTestManager(t)

	c, rec := newTestContext(nil)
	assert.Nil(manager.Start(c, accountID))

	cookie := sessionCookie(t, rec, "parley_session")
	assert.NotEmpty(cookie.Value)
	assert.True(cookie.HttpOnly)

	c2, _ := newTestContext(cookie)
	session, err := manager.Current(c2)
	assert.Nil(err)
	assert.Equal(accountID, session.AccountID)
}

func TestStartRotatesExistingToken(t *testing.T) {
	assert := assert.New(t)
	manager, accountID := newTestManager(t)

	c, rec := newTestContext(nil)
	assert.Nil(manager.Start(c, accountID))
	oldCookie := sessionCookie(t, rec, "parley_session")

	// authenticating again with the old cookie present must issue a new
	// token and kill the old one
	c2, rec2 := newTestContext(oldCookie)
	assert.Nil(manager.Start(c2, accountID))
	newCookie := sessionCookie(t, rec2, "parley_session")
	assert.NotEqual(oldCookie.Value, newCookie.Value)

	c3, _ := newTestContext(oldCookie)
	_, err := manager.Current(c3)
	assert.ErrorIs(err, model.ErrorSessionNotFound)

	c4, _ := newTestContext(newCookie)
	session, err := manager.Current(c4)
	assert.Nil(err)
	assert.Equal(accountID, session.AccountID)
}

func TestEnd(t *testing.T) {
	assert := assert.New(t)
	manager, accountID := newTestManager(t)

	c, rec := newTestContext(nil)
	assert.Nil(manager.Start(c, accountID))
	cookie := sessionCookie(t, rec, "parley_session")

	c2, rec2 := newTestContext(cookie)
	assert.Nil(manager.End(c2))

	expired := sessionCookie(t, rec2, "parley_session")
	assert.Empty(expired.Value)

	c3, _ := newTestContext(cookie)
	_, err := manager.Current(c3)
	assert.ErrorIs(err, model.ErrorSessionNotFound)

	t.Run("idempotent without cookie", func(t *testing.T) {
		c4, _ := newTestContext(nil)
		assert.Nil(manager.End(c4))
	})
}

func TestRequireAuth(t *testing.T) {
	assert := assert.New(t)
	manager, accountID := newTestManager(t)

	next := func(c echo.Context) error {
		session, ok := FromContext(c)
		assert.True(ok)
		assert.Equal(accountID, session.AccountID)
		return c.NoContent(http.StatusOK)
	}

	t.Run("anonymous browser redirects to login", func(t *testing.T) {
		c, rec := newTestContext(nil)
		assert.Nil(manager.RequireAuth(next)(c))
		assert.Equal(http.StatusSeeOther, rec.Code)
		assert.Equal("/login", rec.Header().Get(echo.HeaderLocation))
	})

	t.Run("anonymous API client gets 401", func(t *testing.T) {
		c, _ := newTestContext(nil)
		c.Request().Header.Set(echo.HeaderAccept, echo.MIMEApplicationJSON)
		err := manager.RequireAuth(next)(c)
		var httpErr *echo.HTTPError
		assert.ErrorAs(err, &httpErr)
		assert.Equal(http.StatusUnauthorized, httpErr.Code)
	})

	t.Run("authenticated request passes", func(t *testing.T) {
		c, rec := newTestContext(nil)
		assert.Nil(manager.Start(c, accountID))
		cookie := sessionCookie(t, rec, "parley_session")

		c2, rec2 := newTestContext(cookie)
		assert.Nil(manager.RequireAuth(next)(c2))
		assert.Equal(http.StatusOK, rec2.Code)
	})
}
