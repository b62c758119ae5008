package bookpgxstore

import (
	"github.com/alisideas/bookshare/core/repositories/bookrepo"
	"github.com/alisideas/bookshare/core/repositories/pgxstore"
	"github.com/alisideas/bookshare/infrastructure/postgresdb"
	"github.com/alisideas/bookshare/sdk/logger"
)

// Table maps Book onto the books table.
var Table = postgresdb.Table[bookrepo.Book, bookrepo.CreateBook, bookrepo.UpdateBook, bookrepo.Where, bookrepo.WhereUnique]{
	Model: bookrepo.Model,
	Name:  "books",
	PK:    "id",
	Columns: []string{
		"id", "title", "author", "category", "stock", "total", "cover_url",
		"max_duration", "description", "owner_id", "created_at", "updated_at",
	},
	UpdatedAt: "updated_at",
	Insert:    insert,
	Update:    update,
	Where:     where,
	Unique: func(k bookrepo.WhereUnique, w *postgresdb.Where) {
		if k.ID != nil {
			w.Equals("id", *k.ID)
		}
	},
}

func insert(in bookrepo.CreateBook, v *postgresdb.Values) {
	v.Set("id", in.ID)
	v.Set("title", in.Title)
	v.Set("author", in.Author)
	v.Set("category", in.Category)
	v.Set("stock", in.Stock)
	v.Set("total", in.Total)
	v.Set("cover_url", in.CoverURL)
	v.Set("max_duration", in.MaxDuration)
	v.Set("description", in.Description)
	v.Set("owner_id", in.OwnerID)
}

func update(in bookrepo.UpdateBook, a *postgresdb.Assignments) {
	postgresdb.Assign(a, "title", in.Title)
	postgresdb.Assign(a, "author", in.Author)
	postgresdb.Assign(a, "category", in.Category)
	a.Int("stock", in.Stock)
	a.Int("total", in.Total)
	postgresdb.Assign(a, "cover_url", in.CoverURL)
	a.Int("max_duration", in.MaxDuration)
	postgresdb.Assign(a, "description", in.Description)
	postgresdb.Assign(a, "owner_id", in.OwnerID)
}

func where(f bookrepo.Where, w *postgresdb.Where) {
	w.String("id", f.ID)
	w.String("title", f.Title)
	w.String("author", f.Author)
	w.String("category", f.Category)
	w.Int("stock", f.Stock)
	w.Int("total", f.Total)
	w.String("cover_url", f.CoverURL)
	w.Int("max_duration", f.MaxDuration)
	w.String("description", f.Description)
	w.String("owner_id", f.OwnerID)
	w.Time("created_at", f.CreatedAt)
	w.Time("updated_at", f.UpdatedAt)
	postgresdb.And(w, f.AND, where)
	postgresdb.Or(w, f.OR, where)
	postgresdb.Not(w, f.NOT, where)
}

// Store provides database access for Book.
type Store struct {
	*pgxstore.Store[bookrepo.Book, bookrepo.CreateBook, bookrepo.UpdateBook, bookrepo.Where, bookrepo.WhereUnique]
}

// NewStore creates a new Book store
func NewStore(log *logger.Logger, db postgresdb.DBTX, omit ...string) *Store {
	return &Store{
		Store: pgxstore.New(log, db, Table, omit...),
	}
}
