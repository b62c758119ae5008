package verificationtokenpgxstore

import (
	"github.com/alisideas/bookshare/core/repositories/pgxstore"
	"github.com/alisideas/bookshare/core/repositories/verificationtokenrepo"
	"github.com/alisideas/bookshare/infrastructure/postgresdb"
	"github.com/alisideas/bookshare/sdk/logger"
)

type (
	entity    = verificationtokenrepo.VerificationToken
	create    = verificationtokenrepo.CreateVerificationToken
	update    = verificationtokenrepo.UpdateVerificationToken
	filter    = verificationtokenrepo.Where
	uniqueKey = verificationtokenrepo.WhereUnique
)

// Table maps VerificationToken onto the verification_tokens table.
var Table = postgresdb.Table[entity, create, update, filter, uniqueKey]{
	Model:   verificationtokenrepo.Model,
	Name:    "verification_tokens",
	PK:      "id",
	Columns: []string{"id", "identifier", "token", "expires"},
	Insert: func(in create, v *postgresdb.Values) {
		v.Set("id", in.ID)
		v.Set("identifier", in.Identifier)
		v.Set("token", in.Token)
		v.Set("expires", in.Expires)
	},
	Update: func(in update, a *postgresdb.Assignments) {
		postgresdb.Assign(a, "identifier", in.Identifier)
		postgresdb.Assign(a, "token", in.Token)
		postgresdb.Assign(a, "expires", in.Expires)
	},
	Where: where,
	Unique: func(k uniqueKey, w *postgresdb.Where) {
		if k.ID != nil {
			w.Equals("id", *k.ID)
		}
		if k.Token != nil {
			w.Equals("token", *k.Token)
		}
		if k.IdentifierAndToken != nil {
			w.Equals("identifier", k.IdentifierAndToken.Identifier)
			w.Equals("token", k.IdentifierAndToken.Token)
		}
	},
}

func where(f filter, w *postgresdb.Where) {
	w.String("id", f.ID)
	w.String("identifier", f.Identifier)
	w.String("token", f.Token)
	w.Time("expires", f.Expires)
	postgresdb.And(w, f.AND, where)
	postgresdb.Or(w, f.OR, where)
	postgresdb.Not(w, f.NOT, where)
}

// Store provides database access for VerificationToken.
type Store struct {
	*pgxstore.Store[entity, create, update, filter, uniqueKey]
}

// NewStore creates a new VerificationToken store
func NewStore(log *logger.Logger, db postgresdb.DBTX, omit ...string) *Store {
	return &Store{
		Store: pgxstore.New(log, db, Table, omit...),
	}
}
