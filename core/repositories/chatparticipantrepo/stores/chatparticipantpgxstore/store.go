package chatparticipantpgxstore

import (
	"github.com/alisideas/bookshare/core/repositories/chatparticipantrepo"
	"github.com/alisideas/bookshare/core/repositories/pgxstore"
	"github.com/alisideas/bookshare/infrastructure/postgresdb"
	"github.com/alisideas/bookshare/sdk/logger"
)

// Table maps ChatParticipant onto the chat_participants table.
var Table = postgresdb.Table[chatparticipantrepo.ChatParticipant, chatparticipantrepo.CreateChatParticipant, chatparticipantrepo.UpdateChatParticipant, chatparticipantrepo.Where, chatparticipantrepo.WhereUnique]{
	Model:   chatparticipantrepo.Model,
	Name:    "chat_participants",
	PK:      "id",
	Columns: []string{"id", "user_id", "chat_id"},
	Insert: func(in chatparticipantrepo.CreateChatParticipant, v *postgresdb.Values) {
		v.Set("id", in.ID)
		v.Set("user_id", in.UserID)
		v.Set("chat_id", in.ChatID)
	},
	Update: func(in chatparticipantrepo.UpdateChatParticipant, a *postgresdb.Assignments) {
		postgresdb.Assign(a, "user_id", in.UserID)
		postgresdb.Assign(a, "chat_id", in.ChatID)
	},
	Where: where,
	Unique: func(k chatparticipantrepo.WhereUnique, w *postgresdb.Where) {
		if k.ID != nil {
			w.Equals("id", *k.ID)
		}
		if k.UserIDChatID != nil {
			w.Equals("user_id", k.UserIDChatID.UserID)
			w.Equals("chat_id", k.UserIDChatID.ChatID)
		}
	},
}

func where(f chatparticipantrepo.Where, w *postgresdb.Where) {
	w.String("id", f.ID)
	w.String("user_id", f.UserID)
	w.String("chat_id", f.ChatID)
	postgresdb.And(w, f.AND, where)
	postgresdb.Or(w, f.OR, where)
	postgresdb.Not(w, f.NOT, where)
}

// Store provides database access for ChatParticipant.
type Store struct {
	*pgxstore.Store[chatparticipantrepo.ChatParticipant, chatparticipantrepo.CreateChatParticipant, chatparticipantrepo.UpdateChatParticipant, chatparticipantrepo.Where, chatparticipantrepo.WhereUnique]
}

// NewStore creates a new ChatParticipant store
func NewStore(log *logger.Logger, db postgresdb.DBTX, omit ...string) *Store {
	return &Store{
		Store: pgxstore.New(log, db, Table, omit...),
	}
}
