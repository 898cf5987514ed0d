package chatstore

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	sqlite3 "github.com/mattn/go-sqlite3"
	"parley/internal/model"
)

// CreateAccount inserts the account and returns it with the assigned ID.
// A duplicate email surfaces as model.ErrorEmailTaken.
func (d *chatstore) CreateAccount(account *model.Account) (*model.Account, error) {
	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now().UTC()
	}

	res, err := d.db.NamedExec(`insert into accounts
		(CreatedAt, Name, Email, Password)
		values(:CreatedAt, :Name, :Email, :Password)`, account)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return nil, model.ErrorEmailTaken
		}
		return nil, fmt.Errorf("inserting account: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting inserted account id: %w", err)
	}
	account.ID = id

	return account, nil
}

func (d *chatstore) AccountByID(id int64) (*model.Account, error) {
	account := &model.Account{}
	err := d.db.Get(account, `select * from accounts where ID = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrorUserNotFound
		}
		return nil, fmt.Errorf("fetching account: %w", err)
	}
	return account, nil
}

func (d *chatstore) AccountByEmail(email string) (*model.Account, error) {
	account := &model.Account{}
	err := d.db.Get(account, `select * from accounts where Email = ?`, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrorUserNotFound
		}
		return nil, fmt.Errorf("fetching account by email: %w", err)
	}
	return account, nil
}

// Roster returns every account except the given one, ordered by name, each
// paired with the latest message exchanged with that account if any.
func (d *chatstore) Roster(excludeID int64) ([]model.RosterEntry, error) {
	accounts := []model.Account{}
	err := d.db.Select(&accounts, `select * from accounts where ID != ? order by Name asc`, excludeID)
	if err != nil {
		return nil, fmt.Errorf("fetching roster: %w", err)
	}

	entries := make([]model.RosterEntry, 0, len(accounts))
	for _, account := range accounts {
		last, err := d.LastMessageBetween(excludeID, account.ID)
		if err != nil {
			return nil, err
		}
		entries = append(entries, model.RosterEntry{Account: account, LastMessage: last})
	}

	return entries, nil
}
