package transactionpgxstore

import (
	"github.com/alisideas/bookshare/core/repositories/pgxstore"
	"github.com/alisideas/bookshare/core/repositories/transactionrepo"
	"github.com/alisideas/bookshare/infrastructure/postgresdb"
	"github.com/alisideas/bookshare/sdk/logger"
)

// Table maps Transaction onto the transactions table.
var Table = postgresdb.Table[transactionrepo.Transaction, transactionrepo.CreateTransaction, transactionrepo.UpdateTransaction, transactionrepo.Where, transactionrepo.WhereUnique]{
	Model: transactionrepo.Model,
	Name:  "transactions",
	PK:    "id",
	Columns: []string{
		"id", "book_id", "user_id", "issue_date", "return_date", "status", "created_at", "updated_at",
	},
	UpdatedAt: "updated_at",
	Insert: func(in transactionrepo.CreateTransaction, v *postgresdb.Values) {
		v.Set("id", in.ID)
		v.Set("book_id", in.BookID)
		v.Set("user_id", in.UserID)
		postgresdb.SetOpt(v, "issue_date", in.IssueDate)
		v.Set("return_date", in.ReturnDate)
		v.Set("status", in.Status)
	},
	Update: func(in transactionrepo.UpdateTransaction, a *postgresdb.Assignments) {
		postgresdb.Assign(a, "book_id", in.BookID)
		postgresdb.Assign(a, "user_id", in.UserID)
		postgresdb.Assign(a, "issue_date", in.IssueDate)
		postgresdb.AssignNullable(a, "return_date", in.ReturnDate)
		postgresdb.Assign(a, "status", in.Status)
	},
	Where: where,
	Unique: func(k transactionrepo.WhereUnique, w *postgresdb.Where) {
		if k.ID != nil {
			w.Equals("id", *k.ID)
		}
	},
}

func where(f transactionrepo.Where, w *postgresdb.Where) {
	w.String("id", f.ID)
	w.String("book_id", f.BookID)
	w.String("user_id", f.UserID)
	w.Time("issue_date", f.IssueDate)
	w.NullableTime("return_date", f.ReturnDate)
	w.String("status", f.Status)
	w.Time("created_at", f.CreatedAt)
	w.Time("updated_at", f.UpdatedAt)
	postgresdb.And(w, f.AND, where)
	postgresdb.Or(w, f.OR, where)
	postgresdb.Not(w, f.NOT, where)
}

// Store provides database access for Transaction.
type Store struct {
	*pgxstore.Store[transactionrepo.Transaction, transactionrepo.CreateTransaction, transactionrepo.UpdateTransaction, transactionrepo.Where, transactionrepo.WhereUnique]
}

// NewStore creates a new Transaction store
func NewStore(log *logger.Logger, db postgresdb.DBTX, omit ...string) *Store {
	return &Store{
		Store: pgxstore.New(log, db, Table, omit...),
	}
}
