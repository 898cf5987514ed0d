package chat

import (
	"strings"

	"parley/internal/boot"
	"parley/internal/model"
)

type Store interface {
	AccountByID(id int64) (*model.Account, error)
	CreateMessage(message *model.Message) (*model.Message, error)
	ConversationBetween(a, b int64) ([]model.Message, error)
}

type service struct {
	store     Store
	allowSelf bool
}

func New(store Store, config *boot.Config) *service {
	return &service{store: store, allowSelf: config.AllowSelfMessages}
}

// Send validates and stores a message, then returns the created record
// together with the freshly resolved conversation. The record serves the
// API acknowledgment flow, the conversation the server-rendered page flow.
func (s *service) Send(senderID, receiverID int64, body string) (*model.Message, []model.Message, error) {
	if strings.TrimSpace(body) == "" {
		return nil, nil, model.ErrorEmptyMessage
	}

	if senderID == receiverID && !s.allowSelf {
		return nil, nil, model.ErrorSelfMessage
	}

	if _, err := s.store.AccountByID(senderID); err != nil {
		return nil, nil, err
	}
	if senderID != receiverID {
		if _, err := s.store.AccountByID(receiverID); err != nil {
			return nil, nil, err
		}
	}

	message, err := s.store.CreateMessage(&model.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Body:       body,
	})
	if err != nil {
		return nil, nil, err
	}

	conversation, err := s.store.ConversationBetween(senderID, receiverID)
	if err != nil {
		return nil, nil, err
	}

	return message, conversation, nil
}

// ConversationWith resolves the conversation between the current user and
// another account. Read-only; an unknown other account simply yields an
// empty conversation.
func (s *service) ConversationWith(currentID, otherID int64) ([]model.Message, error) {
	return s.store.ConversationBetween(currentID, otherID)
}
