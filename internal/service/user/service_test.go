package user

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parley/internal/boot"
	"parley/internal/chatstore"
	"parley/internal/model"
)

func newTestService(t *testing.T) *service {
	t.Helper()

	config := boot.Config{DataDirectory: t.TempDir()}
	store, err := chatstore.New(&config)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return New(store)
}

func TestRegister(t *testing.T) {
	assert := assert.New(t)
	service := newTestService(t)

	params := &model.RegisterParams{
		Name:                 "Ann",
		Email:                "ann@x.com",
		Password:             "abcd",
		PasswordConfirmation: "abcd",
	}

	account, err := service.Register(params)
	assert.Nil(err)
	assert.NotNil(account)
	assert.NotZero(account.ID)
	assert.True(strings.HasPrefix(account.Password, "$2a$"))
	assert.NotEqual("abcd", account.Password)

	t.Run("duplicate email creates no record", func(t *testing.T) {
		_, err := service.Register(&model.RegisterParams{
			Name:                 "Ann Again",
			Email:                "ann@x.com",
			Password:             "efgh",
			PasswordConfirmation: "efgh",
		})
		assert.ErrorIs(err, model.ErrorEmailTaken)

		fetched, err := service.store.AccountByEmail("ann@x.com")
		assert.Nil(err)
		assert.Equal("Ann", fetched.Name)
	})

	t.Run("confirmation mismatch creates no record", func(t *testing.T) {
		_, err := service.Register(&model.RegisterParams{
			Name:                 "Bob",
			Email:                "bob@x.com",
			Password:             "pass1",
			PasswordConfirmation: "pass2",
		})
		assert.ErrorIs(err, model.ErrorPasswordMismatch)

		_, err = service.store.AccountByEmail("bob@x.com")
		assert.ErrorIs(err, model.ErrorUserNotFound)
	})

	t.Run("password too short", func(t *testing.T) {
		_, err := service.Register(&model.RegisterParams{
			Name:                 "Bob",
			Email:                "bob@x.com",
			Password:             "abc",
			PasswordConfirmation: "abc",
		})
		assert.Error(err)
	})

	t.Run("invalid email", func(t *testing.T) {
		_, err := service.Register(&model.RegisterParams{
			Name:                 "Bob",
			Email:                "not-an-email",
			Password:             "abcd",
			PasswordConfirmation: "abcd",
		})
		assert.Error(err)
	})
}

func TestAuthenticate(t *testing.T) {
	assert := assert.New(t)
	service := newTestService(t)

	_, err := service.Register(&model.RegisterParams{
		Name:                 "Ann",
		Email:                "ann@x.com",
		Password:             "abcd",
		PasswordConfirmation: "abcd",
	})
	assert.Nil(err)

	t.Run("correct credentials", func(t *testing.T) {
		account, err := service.Authenticate("ann@x.com", "abcd")
		assert.Nil(err)
		assert.Equal("Ann", account.Name)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := service.Authenticate("ann@x.com", "wrong")
		assert.ErrorIs(err, model.ErrorInvalidEmailOrPassword)
	})

	t.Run("unknown email reports the same error", func(t *testing.T) {
		_, err := service.Authenticate("nobody@x.com", "abcd")
		assert.ErrorIs(err, model.ErrorInvalidEmailOrPassword)
	})
}

func TestRoster(t *testing.T) {
	assert := assert.New(t)
	service := newTestService(t)

	ann, err := service.Register(&model.RegisterParams{
		Name: "Ann", Email: "ann@x.com", Password: "abcd", PasswordConfirmation: "abcd",
	})
	assert.Nil(err)
	_, err = service.Register(&model.RegisterParams{
		Name: "Bob", Email: "bob@x.com", Password: "abcd", PasswordConfirmation: "abcd",
	})
	assert.Nil(err)

	roster, err := service.Roster(ann.ID)
	assert.Nil(err)
	assert.Len(roster, 1)
	assert.Equal("Bob", roster[0].Account.Name)
}
