package chatparticipantrepo

import (
	"github.com/alisideas/bookshare/core/scaffolding/fop"
)

// Model is the delegate name used in errors.
const Model = "ChatParticipant"

// Fields of ChatParticipant.
const (
	FieldID     fop.Field = "id"
	FieldUserID fop.Field = "user_id"
	FieldChatID fop.Field = "chat_id"
)

// ChatParticipant is the membership of a user in a chat.
type ChatParticipant struct {
	ID     string `db:"id" json:"id"`
	UserID string `db:"user_id" json:"userId"`
	ChatID string `db:"chat_id" json:"chatId"`
}

type CreateChatParticipant struct {
	ID     string `db:"id"`
	UserID string `db:"user_id" validate:"required"`
	ChatID string `db:"chat_id" validate:"required"`
}

type UpdateChatParticipant struct {
	UserID *string
	ChatID *string
}

type Where struct {
	ID     *fop.StringFilter
	UserID *fop.StringFilter
	ChatID *fop.StringFilter

	AND []Where
	OR  []Where
	NOT []Where
}

// UserChat is the compound unique key (user_id, chat_id).
type UserChat struct {
	UserID string
	ChatID string
}

type WhereUnique struct {
	ID           *string
	UserIDChatID *UserChat
}

func ByID(id string) WhereUnique { return WhereUnique{ID: &id} }

func ByUserChat(userID, chatID string) WhereUnique {
	return WhereUnique{UserIDChatID: &UserChat{UserID: userID, ChatID: chatID}}
}

type (
	Query   = fop.Query[Where, WhereUnique]
	GroupBy = fop.GroupBy[Where]
)
