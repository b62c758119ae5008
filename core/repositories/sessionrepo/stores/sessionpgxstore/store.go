package sessionpgxstore

import (
	"github.com/alisideas/bookshare/core/repositories/pgxstore"
	"github.com/alisideas/bookshare/core/repositories/sessionrepo"
	"github.com/alisideas/bookshare/infrastructure/postgresdb"
	"github.com/alisideas/bookshare/sdk/logger"
)

// Table maps Session onto the sessions table.
var Table = postgresdb.Table[sessionrepo.Session, sessionrepo.CreateSession, sessionrepo.UpdateSession, sessionrepo.Where, sessionrepo.WhereUnique]{
	Model:   sessionrepo.Model,
	Name:    "sessions",
	PK:      "id",
	Columns: []string{"id", "session_token", "user_id", "expires"},
	Insert: func(in sessionrepo.CreateSession, v *postgresdb.Values) {
		v.Set("id", in.ID)
		v.Set("session_token", in.SessionToken)
		v.Set("user_id", in.UserID)
		v.Set("expires", in.Expires)
	},
	Update: func(in sessionrepo.UpdateSession, a *postgresdb.Assignments) {
		postgresdb.Assign(a, "session_token", in.SessionToken)
		postgresdb.Assign(a, "user_id", in.UserID)
		postgresdb.Assign(a, "expires", in.Expires)
	},
	Where: where,
	Unique: func(k sessionrepo.WhereUnique, w *postgresdb.Where) {
		if k.ID != nil {
			w.Equals("id", *k.ID)
		}
		if k.SessionToken != nil {
			w.Equals("session_token", *k.SessionToken)
		}
	},
}

func where(f sessionrepo.Where, w *postgresdb.Where) {
	w.String("id", f.ID)
	w.String("session_token", f.SessionToken)
	w.String("user_id", f.UserID)
	w.Time("expires", f.Expires)
	postgresdb.And(w, f.AND, where)
	postgresdb.Or(w, f.OR, where)
	postgresdb.Not(w, f.NOT, where)
}

// Store provides database access for Session.
type Store struct {
	*pgxstore.Store[sessionrepo.Session, sessionrepo.CreateSession, sessionrepo.UpdateSession, sessionrepo.Where, sessionrepo.WhereUnique]
}

// NewStore creates a new Session store
func NewStore(log *logger.Logger, db postgresdb.DBTX, omit ...string) *Store {
	return &Store{
		Store: pgxstore.New(log, db, Table, omit...),
	}
}
