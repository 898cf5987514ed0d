package chatstore

import (
	"database/sql"
	"errors"
	"fmt"

	"parley/internal/model"
)

func (d *chatstore) CreateSession(session *model.Session) error {
	res, err := d.db.NamedExec(`insert into sessions
		(Token, CreatedAt, ExpiresAt, AccountID)
		values(:Token, :CreatedAt, :ExpiresAt, :AccountID)`, session)
	if err != nil {
		return fmt.Errorf("inserting session: %w", err)
	}
	if rows, err := res.RowsAffected(); rows != 1 {
		return fmt.Errorf("expected 1 row to be affected, got %d", rows)
	} else if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	return nil
}

// SessionByToken resolves a token to a live session. Expired sessions are
// deleted on sight and reported as not found.
func (d *chatstore) SessionByToken(token string) (*model.Session, error) {
	session := &model.Session{}
	err := d.db.Get(session, `select * from sessions where Token = ?`, token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrorSessionNotFound
		}
		return nil, fmt.Errorf("fetching session: %w", err)
	}

	if session.Expired() {
		if err := d.DeleteSession(token); err != nil {
			return nil, err
		}
		return nil, model.ErrorSessionNotFound
	}

	return session, nil
}

func (d *chatstore) DeleteSession(token string) error {
	_, err := d.db.Exec(`delete from sessions where Token = ?`, token)
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

func (d *chatstore) DeleteExpiredSessions() error {
	_, err := d.db.Exec(`delete from sessions where ExpiresAt < CURRENT_TIMESTAMP`)
	if err != nil {
		return fmt.Errorf("deleting expired sessions: %w", err)
	}
	return nil
}
