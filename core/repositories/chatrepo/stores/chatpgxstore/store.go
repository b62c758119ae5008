package chatpgxstore

import (
	"github.com/alisideas/bookshare/core/repositories/chatrepo"
	"github.com/alisideas/bookshare/core/repositories/pgxstore"
	"github.com/alisideas/bookshare/infrastructure/postgresdb"
	"github.com/alisideas/bookshare/sdk/logger"
)

// Table maps Chat onto the chats table.
var Table = postgresdb.Table[chatrepo.Chat, chatrepo.CreateChat, chatrepo.UpdateChat, chatrepo.Where, chatrepo.WhereUnique]{
	Model:     chatrepo.Model,
	Name:      "chats",
	PK:        "id",
	Columns:   []string{"id", "created_at", "updated_at"},
	UpdatedAt: "updated_at",
	Insert: func(in chatrepo.CreateChat, v *postgresdb.Values) {
		v.Set("id", in.ID)
		if in.CreatedAt != nil {
			v.Set("created_at", *in.CreatedAt)
			v.Set("updated_at", *in.CreatedAt)
		}
	},
	Update: func(in chatrepo.UpdateChat, a *postgresdb.Assignments) {
		postgresdb.Assign(a, "updated_at", in.UpdatedAt)
	},
	Where: where,
	Unique: func(k chatrepo.WhereUnique, w *postgresdb.Where) {
		if k.ID != nil {
			w.Equals("id", *k.ID)
		}
	},
}

func where(f chatrepo.Where, w *postgresdb.Where) {
	w.String("id", f.ID)
	w.Time("created_at", f.CreatedAt)
	w.Time("updated_at", f.UpdatedAt)
	postgresdb.And(w, f.AND, where)
	postgresdb.Or(w, f.OR, where)
	postgresdb.Not(w, f.NOT, where)
}

// Store provides database access for Chat.
type Store struct {
	*pgxstore.Store[chatrepo.Chat, chatrepo.CreateChat, chatrepo.UpdateChat, chatrepo.Where, chatrepo.WhereUnique]
}

// NewStore creates a new Chat store
func NewStore(log *logger.Logger, db postgresdb.DBTX, omit ...string) *Store {
	return &Store{
		Store: pgxstore.New(log, db, Table, omit...),
	}
}
