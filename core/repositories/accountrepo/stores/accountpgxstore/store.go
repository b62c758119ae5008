package accountpgxstore

import (
	"github.com/alisideas/bookshare/core/repositories/accountrepo"
	"github.com/alisideas/bookshare/core/repositories/pgxstore"
	"github.com/alisideas/bookshare/infrastructure/postgresdb"
	"github.com/alisideas/bookshare/sdk/logger"
)

// Table maps Account onto the accounts table.
var Table = postgresdb.Table[accountrepo.Account, accountrepo.CreateAccount, accountrepo.UpdateAccount, accountrepo.Where, accountrepo.WhereUnique]{
	Model: accountrepo.Model,
	Name:  "accounts",
	PK:    "id",
	Columns: []string{
		"id", "user_id", "type", "provider", "provider_account_id", "refresh_token",
		"access_token", "expires_at", "token_type", "scope", "id_token", "session_state",
	},
	Insert: insert,
	Update: update,
	Where:  where,
	Unique: unique,
}

func insert(in accountrepo.CreateAccount, v *postgresdb.Values) {
	v.Set("id", in.ID)
	v.Set("user_id", in.UserID)
	v.Set("type", in.Type)
	v.Set("provider", in.Provider)
	v.Set("provider_account_id", in.ProviderAccountID)
	v.Set("refresh_token", in.RefreshToken)
	v.Set("access_token", in.AccessToken)
	v.Set("expires_at", in.ExpiresAt)
	v.Set("token_type", in.TokenType)
	v.Set("scope", in.Scope)
	v.Set("id_token", in.IDToken)
	v.Set("session_state", in.SessionState)
}

func update(in accountrepo.UpdateAccount, a *postgresdb.Assignments) {
	postgresdb.Assign(a, "user_id", in.UserID)
	postgresdb.Assign(a, "type", in.Type)
	postgresdb.Assign(a, "provider", in.Provider)
	postgresdb.Assign(a, "provider_account_id", in.ProviderAccountID)
	postgresdb.AssignNullable(a, "refresh_token", in.RefreshToken)
	postgresdb.AssignNullable(a, "access_token", in.AccessToken)
	postgresdb.AssignNullable(a, "expires_at", in.ExpiresAt)
	postgresdb.AssignNullable(a, "token_type", in.TokenType)
	postgresdb.AssignNullable(a, "scope", in.Scope)
	postgresdb.AssignNullable(a, "id_token", in.IDToken)
	postgresdb.AssignNullable(a, "session_state", in.SessionState)
}

func where(f accountrepo.Where, w *postgresdb.Where) {
	w.String("id", f.ID)
	w.String("user_id", f.UserID)
	w.String("type", f.Type)
	w.String("provider", f.Provider)
	w.String("provider_account_id", f.ProviderAccountID)
	w.NullableString("refresh_token", f.RefreshToken)
	w.NullableString("access_token", f.AccessToken)
	w.NullableInt("expires_at", f.ExpiresAt)
	w.NullableString("token_type", f.TokenType)
	w.NullableString("scope", f.Scope)
	w.NullableString("id_token", f.IDToken)
	w.NullableString("session_state", f.SessionState)
	postgresdb.And(w, f.AND, where)
	postgresdb.Or(w, f.OR, where)
	postgresdb.Not(w, f.NOT, where)
}

func unique(k accountrepo.WhereUnique, w *postgresdb.Where) {
	if k.ID != nil {
		w.Equals("id", *k.ID)
	}
	if k.ProviderProviderAccountID != nil {
		w.Equals("provider", k.ProviderProviderAccountID.Provider)
		w.Equals("provider_account_id", k.ProviderProviderAccountID.ProviderAccountID)
	}
}

// Store provides database access for Account.
type Store struct {
	*pgxstore.Store[accountrepo.Account, accountrepo.CreateAccount, accountrepo.UpdateAccount, accountrepo.Where, accountrepo.WhereUnique]
}

// NewStore creates a new Account store
func NewStore(log *logger.Logger, db postgresdb.DBTX, omit ...string) *Store {
	return &Store{
		Store: pgxstore.New(log, db, Table, omit...),
	}
}
