package chatstore

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"parley/internal/model"
)

// CreateMessage inserts the message and returns it with the assigned ID.
// Referential validation happens upstream in the chat service.
func (d *chatstore) CreateMessage(message *model.Message) (*model.Message, error) {
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now().UTC()
	}

	res, err := d.db.NamedExec(`insert into messages
		(CreatedAt, SenderID, ReceiverID, Body)
		values(:CreatedAt, :SenderID, :ReceiverID, :Body)`, message)
	if err != nil {
		return nil, fmt.Errorf("inserting message: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting inserted message id: %w", err)
	}
	message.ID = id

	return message, nil
}

// ConversationBetween is the canonical two-party lookup: all messages
// exchanged between exactly the two given accounts, regardless of
// direction, oldest first. Equal timestamps fall back to ID order. Every
// read path that displays a conversation goes through this one query.
func (d *chatstore) ConversationBetween(a, b int64) ([]model.Message, error) {
	messages := []model.Message{}
	err := d.db.Select(&messages, `
		select * from messages
		 where (SenderID = ? and ReceiverID = ?)
		    or (SenderID = ? and ReceiverID = ?)
		 order by CreatedAt asc, ID asc`, a, b, b, a)
	if err != nil {
		return nil, fmt.Errorf("fetching conversation: %w", err)
	}
	return messages, nil
}

// LastMessageBetween returns the newest message between the two accounts,
// or nil when they have never exchanged one.
func (d *chatstore) LastMessageBetween(a, b int64) (*model.Message, error) {
	message := &model.Message{}
	err := d.db.Get(message, `
		select * from messages
		 where (SenderID = ? and ReceiverID = ?)
		    or (SenderID = ? and ReceiverID = ?)
		 order by CreatedAt desc, ID desc
		 limit 1`, a, b, b, a)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetching last message: %w", err)
	}
	return message, nil
}
