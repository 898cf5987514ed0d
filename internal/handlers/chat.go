package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"parley/internal/model"
	"parley/internal/session"
)

type ChatService interface {
	Send(senderID, receiverID int64, body string) (*model.Message, []model.Message, error)
	ConversationWith(currentID, otherID int64) ([]model.Message, error)
}

type chatViewPage struct {
	Current *model.Account
	Roster  []model.RosterEntry
	CSRF    string
}

type chatPage struct {
	Current  *model.Account
	Roster   []model.RosterEntry
	Other    *model.Account
	Messages []model.Message
	Error    string
	CSRF     string
}

// ChatView renders the roster of all other users, each with a preview of
// the latest message exchanged.
func ChatView(users UserService) echo.HandlerFunc {
	return func(c echo.Context) error {
		current, err := currentAccount(c, users)
		if err != nil {
			return err
		}

		roster, err := users.Roster(current.ID)
		if err != nil {
			return err
		}

		return c.Render(http.StatusOK, "chatview.html", chatViewPage{
			Current: current,
			Roster:  roster,
			CSRF:    csrfToken(c),
		})
	}
}

// Chat renders the conversation with one other user.
func Chat(users UserService, chat ChatService) echo.HandlerFunc {
	return func(c echo.Context) error {
		current, err := currentAccount(c, users)
		if err != nil {
			return err
		}

		otherID, err := pathID(c, "otherUserId")
		if err != nil {
			return err
		}

		other, err := users.Fetch(otherID)
		if err != nil {
			if errors.Is(err, model.ErrorUserNotFound) {
				return echo.NewHTTPError(http.StatusNotFound, "no such user")
			}
			return err
		}

		messages, err := chat.ConversationWith(current.ID, otherID)
		if err != nil {
			return err
		}

		roster, err := users.Roster(current.ID)
		if err != nil {
			return err
		}

		return c.Render(http.StatusOK, "chat.html", chatPage{
			Current:  current,
			Roster:   roster,
			Other:    other,
			Messages: messages,
			CSRF:     csrfToken(c),
		})
	}
}

// Messages is the API variant of Chat: the conversation as JSON. The
// resolver is not re-validated here, so an unknown user id yields an empty
// list rather than an error.
func Messages(chat ChatService) echo.HandlerFunc {
	return func(c echo.Context) error {
		currentSession, ok := session.FromContext(c)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
		}

		otherID, err := pathID(c, "otherUserId")
		if err != nil {
			return err
		}

		messages, err := chat.ConversationWith(currentSession.AccountID, otherID)
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, messages)
	}
}

// SendMessage accepts a message from the authenticated user. The form flow
// re-renders the conversation page; a client asking for JSON gets the
// created record as a structured acknowledgment instead.
func SendMessage(users UserService, chat ChatService) echo.HandlerFunc {
	return func(c echo.Context) error {
		currentSession, ok := session.FromContext(c)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
		}

		params := &model.SendMessageParams{}
		if err := c.Bind(params); err != nil {
			return err
		}
		if err := c.Validate(params); err != nil {
			return err
		}

		if params.SenderID != currentSession.AccountID {
			return echo.NewHTTPError(http.StatusForbidden, model.ErrorSenderMismatch.Error())
		}

		message, conversation, err := chat.Send(params.SenderID, params.ReceiverID, params.Body)
		if err != nil {
			return sendFailure(c, users, chat, currentSession.AccountID, params.ReceiverID, err)
		}

		if wantsJSON(c) {
			return c.JSON(http.StatusCreated, message)
		}

		current, err := currentAccount(c, users)
		if err != nil {
			return err
		}
		other, err := users.Fetch(params.ReceiverID)
		if err != nil {
			return err
		}
		roster, err := users.Roster(current.ID)
		if err != nil {
			return err
		}

		return c.Render(http.StatusOK, "chat.html", chatPage{
			Current:  current,
			Roster:   roster,
			Other:    other,
			Messages: conversation,
			CSRF:     csrfToken(c),
		})
	}
}

// sendFailure reports a rejected message back to the caller: a 400 for API
// clients, the conversation page with the error banner for form posts.
func sendFailure(c echo.Context, users UserService, chat ChatService, currentID, receiverID int64, err error) error {
	var reason string
	switch {
	case errors.Is(err, model.ErrorEmptyMessage):
		reason = "The message may not be empty."
	case errors.Is(err, model.ErrorSelfMessage):
		reason = "You cannot send a message to yourself."
	case errors.Is(err, model.ErrorUserNotFound):
		reason = "The receiver does not exist."
	default:
		return err
	}

	if wantsJSON(c) {
		return echo.NewHTTPError(http.StatusBadRequest, reason)
	}

	current, fetchErr := users.Fetch(currentID)
	if fetchErr != nil {
		return fetchErr
	}

	other, fetchErr := users.Fetch(receiverID)
	if fetchErr != nil {
		return echo.NewHTTPError(http.StatusBadRequest, reason)
	}

	messages, fetchErr := chat.ConversationWith(currentID, receiverID)
	if fetchErr != nil {
		return fetchErr
	}

	roster, fetchErr := users.Roster(currentID)
	if fetchErr != nil {
		return fetchErr
	}

	return c.Render(http.StatusBadRequest, "chat.html", chatPage{
		Current:  current,
		Roster:   roster,
		Other:    other,
		Messages: messages,
		Error:    reason,
		CSRF:     csrfToken(c),
	})
}

func currentAccount(c echo.Context, users UserService) (*model.Account, error) {
	currentSession, ok := session.FromContext(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return users.Fetch(currentSession.AccountID)
}

func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}
	return id, nil
}

func wantsJSON(c echo.Context) bool {
	if strings.Contains(c.Request().Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON) {
		return true
	}
	return strings.Contains(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON)
}
