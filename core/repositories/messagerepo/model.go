package messagerepo

import (
	"time"

	"github.com/alisideas/bookshare/core/scaffolding/fop"
)

// Model is the delegate name used in errors.
const Model = "Message"

// Fields of Message.
const (
	FieldID        fop.Field = "id"
	FieldChatID    fop.Field = "chat_id"
	FieldSenderID  fop.Field = "sender_id"
	FieldText      fop.Field = "text"
	FieldTimestamp fop.Field = "timestamp"
)

type Message struct {
	ID        string    `db:"id" json:"id"`
	ChatID    string    `db:"chat_id" json:"chatId"`
	SenderID  string    `db:"sender_id" json:"senderId"`
	Text      string    `db:"text" json:"text"`
	Timestamp time.Time `db:"timestamp" json:"timestamp"`
}

type CreateMessage struct {
	ID        string     `db:"id"`
	ChatID    string     `db:"chat_id" validate:"required"`
	SenderID  string     `db:"sender_id" validate:"required"`
	Text      string     `db:"text" validate:"required"`
	Timestamp *time.Time `db:"timestamp"`
}

type UpdateMessage struct {
	Text *string
}

type Where struct {
	ID        *fop.StringFilter
	ChatID    *fop.StringFilter
	SenderID  *fop.StringFilter
	Text      *fop.StringFilter
	Timestamp *fop.DateTimeFilter

	AND []Where
	OR  []Where
	NOT []Where
}

type WhereUnique struct {
	ID *string
}

func ByID(id string) WhereUnique { return WhereUnique{ID: &id} }

type (
	Query   = fop.Query[Where, WhereUnique]
	GroupBy = fop.GroupBy[Where]
)
