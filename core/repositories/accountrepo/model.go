package accountrepo

import (
	"github.com/alisideas/bookshare/core/scaffolding/fop"
)

// Model is the delegate name used in errors.
const Model = "Account"

// Fields of Account.
const (
	FieldID                fop.Field = "id"
	FieldUserID            fop.Field = "user_id"
	FieldType              fop.Field = "type"
	FieldProvider          fop.Field = "provider"
	FieldProviderAccountID fop.Field = "provider_account_id"
	FieldRefreshToken      fop.Field = "refresh_token"
	FieldAccessToken       fop.Field = "access_token"
	FieldExpiresAt         fop.Field = "expires_at"
	FieldTokenType         fop.Field = "token_type"
	FieldScope             fop.Field = "scope"
	FieldIDToken           fop.Field = "id_token"
	FieldSessionState      fop.Field = "session_state"
)

// Account links a user to an external identity provider.
type Account struct {
	ID                string  `db:"id" json:"id"`
	UserID            string  `db:"user_id" json:"userId"`
	Type              string  `db:"type" json:"type"`
	Provider          string  `db:"provider" json:"provider"`
	ProviderAccountID string  `db:"provider_account_id" json:"providerAccountId"`
	RefreshToken      *string `db:"refresh_token" json:"refresh_token"`
	AccessToken       *string `db:"access_token" json:"access_token"`
	ExpiresAt         *int    `db:"expires_at" json:"expires_at"`
	TokenType         *string `db:"token_type" json:"token_type"`
	Scope             *string `db:"scope" json:"scope"`
	IDToken           *string `db:"id_token" json:"id_token"`
	SessionState      *string `db:"session_state" json:"session_state"`
}

type CreateAccount struct {
	ID                string  `db:"id"`
	UserID            string  `db:"user_id" validate:"required"`
	Type              string  `db:"type" validate:"required"`
	Provider          string  `db:"provider" validate:"required"`
	ProviderAccountID string  `db:"provider_account_id" validate:"required"`
	RefreshToken      *string `db:"refresh_token"`
	AccessToken       *string `db:"access_token"`
	ExpiresAt         *int    `db:"expires_at"`
	TokenType         *string `db:"token_type"`
	Scope             *string `db:"scope"`
	IDToken           *string `db:"id_token"`
	SessionState      *string `db:"session_state"`
}

type UpdateAccount struct {
	UserID            *string
	Type              *string
	Provider          *string
	ProviderAccountID *string
	RefreshToken      *fop.Nullable[string]
	AccessToken       *fop.Nullable[string]
	ExpiresAt         *fop.Nullable[int]
	TokenType         *fop.Nullable[string]
	Scope             *fop.Nullable[string]
	IDToken           *fop.Nullable[string]
	SessionState      *fop.Nullable[string]
}

type Where struct {
	ID                *fop.StringFilter
	UserID            *fop.StringFilter
	Type              *fop.StringFilter
	Provider          *fop.StringFilter
	ProviderAccountID *fop.StringFilter
	RefreshToken      *fop.StringNullableFilter
	AccessToken       *fop.StringNullableFilter
	ExpiresAt         *fop.IntNullableFilter
	TokenType         *fop.StringNullableFilter
	Scope             *fop.StringNullableFilter
	IDToken           *fop.StringNullableFilter
	SessionState      *fop.StringNullableFilter

	AND []Where
	OR  []Where
	NOT []Where
}

// ProviderKey is the compound unique key (provider, provider_account_id).
type ProviderKey struct {
	Provider          string
	ProviderAccountID string
}

type WhereUnique struct {
	ID                        *string
	ProviderProviderAccountID *ProviderKey
}

func ByID(id string) WhereUnique { return WhereUnique{ID: &id} }

func ByProvider(provider, providerAccountID string) WhereUnique {
	return WhereUnique{ProviderProviderAccountID: &ProviderKey{Provider: provider, ProviderAccountID: providerAccountID}}
}

type (
	Query   = fop.Query[Where, WhereUnique]
	GroupBy = fop.GroupBy[Where]
)
