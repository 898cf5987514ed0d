package user

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"parley/internal/model"
)

const bcryptCost = 10

var validate = validator.New()

type Store interface {
	CreateAccount(account *model.Account) (*model.Account, error)
	AccountByID(id int64) (*model.Account, error)
	AccountByEmail(email string) (*model.Account, error)
	Roster(excludeID int64) ([]model.RosterEntry, error)
}

type service struct {
	store Store
}

func New(store Store) *service {
	return &service{store}
}

// Register validates the signup form, hashes the password and creates the
// account. No record is created on any validation failure.
func (s *service) Register(params *model.RegisterParams) (*model.Account, error) {
	if err := validate.Struct(params); err != nil {
		return nil, err
	}

	if params.Password != params.PasswordConfirmation {
		return nil, model.ErrorPasswordMismatch
	}

	passwordBytes, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("generating encoded password: %w", err)
	}

	account := &model.Account{
		CreatedAt: time.Now().UTC(),
		Name:      params.Name,
		Email:     params.Email,
		Password:  string(passwordBytes),
	}

	account, err = s.store.CreateAccount(account)
	if err != nil {
		return nil, err
	}

	return account, nil
}

// Authenticate verifies an email/password pair. Both an unknown email and a
// wrong password return model.ErrorInvalidEmailOrPassword so callers cannot
// probe for account existence.
func (s *service) Authenticate(email, password string) (*model.Account, error) {
	account, err := s.store.AccountByEmail(email)
	if err != nil {
		return nil, model.ErrorInvalidEmailOrPassword
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)); err != nil {
		return nil, model.ErrorInvalidEmailOrPassword
	}

	return account, nil
}

func (s *service) Fetch(id int64) (*model.Account, error) {
	account, err := s.store.AccountByID(id)
	if err != nil {
		return nil, err
	}
	return account, nil
}

func (s *service) Roster(currentID int64) ([]model.RosterEntry, error) {
	return s.store.Roster(currentID)
}
