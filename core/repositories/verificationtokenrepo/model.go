package verificationtokenrepo

import (
	"time"

	"github.com/alisideas/bookshare/core/scaffolding/fop"
)

// Model is the delegate name used in errors.
const Model = "VerificationToken"

// Fields of VerificationToken.
const (
	FieldID         fop.Field = "id"
	FieldIdentifier fop.Field = "identifier"
	FieldToken      fop.Field = "token"
	FieldExpires    fop.Field = "expires"
)

type VerificationToken struct {
	ID         string    `db:"id" json:"id"`
	Identifier string    `db:"identifier" json:"identifier"`
	Token      string    `db:"token" json:"token"`
	Expires    time.Time `db:"expires" json:"expires"`
}

type CreateVerificationToken struct {
	ID         string    `db:"id"`
	Identifier string    `db:"identifier" validate:"required"`
	Token      string    `db:"token" validate:"required"`
	Expires    time.Time `db:"expires" validate:"required"`
}

type UpdateVerificationToken struct {
	Identifier *string
	Token      *string
	Expires    *time.Time
}

type Where struct {
	ID         *fop.StringFilter
	Identifier *fop.StringFilter
	Token      *fop.StringFilter
	Expires    *fop.DateTimeFilter

	AND []Where
	OR  []Where
	NOT []Where
}

// IdentifierToken is the compound unique key (identifier, token).
type IdentifierToken struct {
	Identifier string
	Token      string
}

type WhereUnique struct {
	ID                 *string
	Token              *string
	IdentifierAndToken *IdentifierToken
}

func ByID(id string) WhereUnique { return WhereUnique{ID: &id} }

func ByToken(token string) WhereUnique { return WhereUnique{Token: &token} }

func ByIdentifierToken(identifier, token string) WhereUnique {
	return WhereUnique{IdentifierAndToken: &IdentifierToken{Identifier: identifier, Token: token}}
}

type (
	Query   = fop.Query[Where, WhereUnique]
	GroupBy = fop.GroupBy[Where]
)
