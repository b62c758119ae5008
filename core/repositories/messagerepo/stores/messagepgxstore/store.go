package messagepgxstore

import (
	"github.com/alisideas/bookshare/core/repositories/messagerepo"
	"github.com/alisideas/bookshare/core/repositories/pgxstore"
	"github.com/alisideas/bookshare/infrastructure/postgresdb"
	"github.com/alisideas/bookshare/sdk/logger"
)

// Table maps Message onto the messages table.
var Table = postgresdb.Table[messagerepo.Message, messagerepo.CreateMessage, messagerepo.UpdateMessage, messagerepo.Where, messagerepo.WhereUnique]{
	Model:   messagerepo.Model,
	Name:    "messages",
	PK:      "id",
	Columns: []string{"id", "chat_id", "sender_id", "text", "timestamp"},
	Insert: func(in messagerepo.CreateMessage, v *postgresdb.Values) {
		v.Set("id", in.ID)
		v.Set("chat_id", in.ChatID)
		v.Set("sender_id", in.SenderID)
		v.Set("text", in.Text)
		postgresdb.SetOpt(v, "timestamp", in.Timestamp)
	},
	Update: func(in messagerepo.UpdateMessage, a *postgresdb.Assignments) {
		postgresdb.Assign(a, "text", in.Text)
	},
	Where: where,
	Unique: func(k messagerepo.WhereUnique, w *postgresdb.Where) {
		if k.ID != nil {
			w.Equals("id", *k.ID)
		}
	},
}

func where(f messagerepo.Where, w *postgresdb.Where) {
	w.String("id", f.ID)
	w.String("chat_id", f.ChatID)
	w.String("sender_id", f.SenderID)
	w.String("text", f.Text)
	w.Time("timestamp", f.Timestamp)
	postgresdb.And(w, f.AND, where)
	postgresdb.Or(w, f.OR, where)
	postgresdb.Not(w, f.NOT, where)
}

// Store provides database access for Message.
type Store struct {
	*pgxstore.Store[messagerepo.Message, messagerepo.CreateMessage, messagerepo.UpdateMessage, messagerepo.Where, messagerepo.WhereUnique]
}

// NewStore creates a new Message store
func NewStore(log *logger.Logger, db postgresdb.DBTX, omit ...string) *Store {
	return &Store{
		Store: pgxstore.New(log, db, Table, omit...),
	}
}
