package chatstore

import (
	"errors"
	"fmt"
	"os"
	"path"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"parley/internal/boot"
)

const databaseName = "parley.db"

type chatstore struct {
	db *sqlx.DB
}

// New opens the database under the configured data directory, creating the
// schema when the file does not exist yet.
func New(config *boot.Config) (*chatstore, error) {
	if err := os.MkdirAll(config.DataDirectory, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbName := path.Join(config.DataDirectory, databaseName)

	isCreating := false
	_, err := os.Stat(dbName)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			isCreating = true
		}
	}

	db, err := sqlx.Connect("sqlite3", "file:"+dbName+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	datastore := &chatstore{db}
	if isCreating {
		err = datastore.createTables()
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("creating tables: %w", err)
		}
	}

	return datastore, nil
}

func (d *chatstore) Close() error {
	return d.db.Close()
}

func (d *chatstore) createTables() error {
	_, err := d.db.Exec(`create table accounts(
		ID        integer not null primary key autoincrement,
		CreatedAt DATETIME not null,
		Name      text not null,
		Email     text not null unique,
		Password  text not null
	)`)
	if err != nil {
		return fmt.Errorf("creating accounts table: %w", err)
	}

	_, err = d.db.Exec(`create table messages(
		ID         integer not null primary key autoincrement,
		CreatedAt  DATETIME not null,
		SenderID   integer not null references accounts(ID),
		ReceiverID integer not null references accounts(ID),
		Body       text not null
	)`)
	if err != nil {
		return fmt.Errorf("creating messages table: %w", err)
	}

	_, err = d.db.Exec(`create index idx_messages_pair
		on messages(SenderID, ReceiverID, CreatedAt)`)
	if err != nil {
		return fmt.Errorf("creating messages index: %w", err)
	}

	_, err = d.db.Exec(`create table sessions(
		Token     text not null primary key,
		CreatedAt DATETIME not null,
		ExpiresAt DATETIME not null,
		AccountID integer not null references accounts(ID)
	)`)
	if err != nil {
		return fmt.Errorf("creating sessions table: %w", err)
	}

	return nil
}
