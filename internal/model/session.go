package model

import (
	"time"

	"github.com/btcsuite/btcutil/base58"
	"github.com/google/uuid"
)

// Session binds a browser client to an authenticated account. The token is
// the only handle the client holds; rotating a session means deleting the
// old row and issuing a fresh token.
type Session struct {
	Token     string    `db:"Token"`
	CreatedAt time.Time `db:"CreatedAt"`
	ExpiresAt time.Time `db:"ExpiresAt"`
	AccountID int64     `db:"AccountID"`
}

func (s *Session) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}

// CreateSessionToken returns an opaque, unguessable session token.
func CreateSessionToken() string {
	uuid, _ := uuid.NewRandom()
	return base58.Encode(uuid[:])
}
