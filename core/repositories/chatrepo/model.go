package chatrepo

import (
	"time"

	"github.com/alisideas/bookshare/core/scaffolding/fop"
)

// Model is the delegate name used in errors.
const Model = "Chat"

// Fields of Chat.
const (
	FieldID        fop.Field = "id"
	FieldCreatedAt fop.Field = "created_at"
	FieldUpdatedAt fop.Field = "updated_at"
)

// Chat is a conversation thread.
type Chat struct {
	ID        string    `db:"id" json:"id"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

type CreateChat struct {
	ID        string     `db:"id"`
	CreatedAt *time.Time `db:"created_at"`
}

// UpdateChat sets the activity timestamp; other columns are immutable.
type UpdateChat struct {
	UpdatedAt *time.Time
}

type Where struct {
	ID        *fop.StringFilter
	CreatedAt *fop.DateTimeFilter
	UpdatedAt *fop.DateTimeFilter

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
