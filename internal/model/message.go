package model

import "time"

// Message is a single directed text message between two accounts. Records
// are immutable once stored, never edited or deleted. CreatedAt is the
// authoritative ordering key, with ID breaking ties for messages stored at
// the same instant.
type Message struct {
	ID         int64     `db:"ID" json:"id"`
	CreatedAt  time.Time `db:"CreatedAt" json:"created_at"`
	SenderID   int64     `db:"SenderID" json:"sender_id"`
	ReceiverID int64     `db:"ReceiverID" json:"receiver_id"`
	Body       string    `db:"Body" json:"message"`
}

type SendMessageParams struct {
	SenderID   int64  `form:"sender_id" json:"sender_id" validate:"required,gt=0"`
	ReceiverID int64  `form:"receiver_id" json:"receiver_id" validate:"required,gt=0"`
	Body       string `form:"message" json:"message" validate:"required"`
}
