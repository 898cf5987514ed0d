package model

import "time"

// Account is a registered user capable of sending and receiving messages.
// Accounts are immutable once created and are never deleted.
type Account struct {
	ID        int64     `db:"ID" json:"id"`
	CreatedAt time.Time `db:"CreatedAt" json:"created_at"`
	Name      string    `db:"Name" json:"name"`
	Email     string    `db:"Email" json:"email"`
	Password  string    `db:"Password" json:"-"`
}

type RegisterParams struct {
	Name                 string `form:"name" validate:"required,max=255"`
	Email                string `form:"email" validate:"required,email"`
	Password             string `form:"password" validate:"required,min=4"`
	PasswordConfirmation string `form:"password_confirmation" validate:"required"`
}

// RosterEntry pairs an account with the most recent message exchanged with
// the current user, for the sidebar preview. LastMessage is nil when no
// conversation exists yet.
type RosterEntry struct {
	Account     Account  `json:"account"`
	LastMessage *Message `json:"last_message,omitempty"`
}
