package userrepo

import (
	"time"

	"github.com/alisideas/bookshare/core/scaffolding/fop"
)

// Model is the delegate name used in errors.
const Model = "User"

// Fields of User.
const (
	FieldID            fop.Field = "id"
	FieldName          fop.Field = "name"
	FieldEmail         fop.Field = "email"
	FieldEmailVerified fop.Field = "email_verified"
	FieldImage         fop.Field = "image"
	FieldPassword      fop.Field = "password"
	FieldRole          fop.Field = "role"
	FieldLocation      fop.Field = "location"
	FieldBio           fop.Field = "bio"
	FieldJoined        fop.Field = "joined"
	FieldCreatedAt     fop.Field = "created_at"
	FieldUpdatedAt     fop.Field = "updated_at"
)

// DefaultRole is assigned when a user is created without one.
const DefaultRole = "user"

type User struct {
	ID            string     `db:"id" json:"id"`
	Name          *string    `db:"name" json:"name"`
	Email         *string    `db:"email" json:"email"`
	EmailVerified *time.Time `db:"email_verified" json:"emailVerified"`
	Image         *string    `db:"image" json:"image"`
	Password      *string    `db:"password" json:"-"`
	Role          string     `db:"role" json:"role"`
	Location      *string    `db:"location" json:"location"`
	Bio           *string    `db:"bio" json:"bio"`
	Joined        time.Time  `db:"joined" json:"joined"`
	CreatedAt     time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updatedAt"`
}

// CreateUser holds the fields of a new user. A blank ID is generated.
type CreateUser struct {
	ID            string     `db:"id" yaml:"id"`
	Name          *string    `db:"name" yaml:"name"`
	Email         *string    `db:"email" yaml:"email" validate:"omitempty,email"`
	EmailVerified *time.Time `db:"email_verified" yaml:"emailVerified"`
	Image         *string    `db:"image" yaml:"image"`
	Password      *string    `db:"password" yaml:"password"`
	Role          *string    `db:"role" yaml:"role"`
	Location      *string    `db:"location" yaml:"location"`
	Bio           *string    `db:"bio" yaml:"bio"`
	Joined        *time.Time `db:"joined" yaml:"joined"`
}

// UpdateUser holds a partial update; nil fields are left unchanged.
type UpdateUser struct {
	Name          *fop.Nullable[string]
	Email         *fop.Nullable[string]
	EmailVerified *fop.Nullable[time.Time]
	Image         *fop.Nullable[string]
	Password      *fop.Nullable[string]
	Role          *string
	Location      *fop.Nullable[string]
	Bio           *fop.Nullable[string]
	Joined        *time.Time
}

// Where filters users. AND, OR and NOT nest further filters.
type Where struct {
	ID            *fop.StringFilter
	Name          *fop.StringNullableFilter
	Email         *fop.StringNullableFilter
	EmailVerified *fop.DateTimeNullableFilter
	Image         *fop.StringNullableFilter
	Role          *fop.StringFilter
	Location      *fop.StringNullableFilter
	Bio           *fop.StringNullableFilter
	Joined        *fop.DateTimeFilter
	CreatedAt     *fop.DateTimeFilter
	UpdatedAt     *fop.DateTimeFilter

	AND []Where
	OR  []Where
	NOT []Where
}

// WhereUnique selects one user by id or email.
type WhereUnique struct {
	ID    *string
	Email *string
}

// ByID selects a user by id.
func ByID(id string) WhereUnique { return WhereUnique{ID: &id} }

// ByEmail selects a user by email.
func ByEmail(email string) WhereUnique { return WhereUnique{Email: &email} }

type (
	Query   = fop.Query[Where, WhereUnique]
	GroupBy = fop.GroupBy[Where]
)
