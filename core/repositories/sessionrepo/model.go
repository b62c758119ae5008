package sessionrepo

import (
	"time"

	"github.com/alisideas/bookshare/core/scaffolding/fop"
)

// Model is the delegate name used in errors.
const Model = "Session"

// Fields of Session.
const (
	FieldID           fop.Field = "id"
	FieldSessionToken fop.Field = "session_token"
	FieldUserID       fop.Field = "user_id"
	FieldExpires      fop.Field = "expires"
)

type Session struct {
	ID           string    `db:"id" json:"id"`
	SessionToken string    `db:"session_token" json:"sessionToken"`
	UserID       string    `db:"user_id" json:"userId"`
	Expires      time.Time `db:"expires" json:"expires"`
}

type CreateSession struct {
	ID           string    `db:"id"`
	SessionToken string    `db:"session_token" validate:"required"`
	UserID       string    `db:"user_id" validate:"required"`
	Expires      time.Time `db:"expires" validate:"required"`
}

type UpdateSession struct {
	SessionToken *string
	UserID       *string
	Expires      *time.Time
}

type Where struct {
	ID           *fop.StringFilter
	SessionToken *fop.StringFilter
	UserID       *fop.StringFilter
	Expires      *fop.DateTimeFilter

	AND []Where
	OR  []Where
	NOT []Where
}

type WhereUnique struct {
	ID           *string
	SessionToken *string
}

func ByID(id string) WhereUnique { return WhereUnique{ID: &id} }

func ByToken(token string) WhereUnique { return WhereUnique{SessionToken: &token} }

type (
	Query   = fop.Query[Where, WhereUnique]
	GroupBy = fop.GroupBy[Where]
)
