package userpgxstore

import (
	"github.com/alisideas/bookshare/core/repositories/pgxstore"
	"github.com/alisideas/bookshare/core/repositories/userrepo"
	"github.com/alisideas/bookshare/infrastructure/postgresdb"
	"github.com/alisideas/bookshare/sdk/logger"
)

// Table maps User onto the users table.
var Table = postgresdb.Table[userrepo.User, userrepo.CreateUser, userrepo.UpdateUser, userrepo.Where, userrepo.WhereUnique]{
	Model: userrepo.Model,
	Name:  "users",
	PK:    "id",
	Columns: []string{
		"id", "name", "email", "email_verified", "image", "password", "role",
		"location", "bio", "joined", "created_at", "updated_at",
	},
	UpdatedAt: "updated_at",
	Insert:    insert,
	Update:    update,
	Where:     where,
	Unique:    unique,
}

func insert(in userrepo.CreateUser, v *postgresdb.Values) {
	v.Set("id", in.ID)
	v.Set("name", in.Name)
	v.Set("email", in.Email)
	v.Set("email_verified", in.EmailVerified)
	v.Set("image", in.Image)
	v.Set("password", in.Password)
	postgresdb.SetOpt(v, "role", in.Role)
	v.Set("location", in.Location)
	v.Set("bio", in.Bio)
	postgresdb.SetOpt(v, "joined", in.Joined)
}

func update(in userrepo.UpdateUser, a *postgresdb.Assignments) {
	postgresdb.AssignNullable(a, "name", in.Name)
	postgresdb.AssignNullable(a, "email", in.Email)
	postgresdb.AssignNullable(a, "email_verified", in.EmailVerified)
	postgresdb.AssignNullable(a, "image", in.Image)
	postgresdb.AssignNullable(a, "password", in.Password)
	postgresdb.Assign(a, "role", in.Role)
	postgresdb.AssignNullable(a, "location", in.Location)
	postgresdb.AssignNullable(a, "bio", in.Bio)
	postgresdb.Assign(a, "joined", in.Joined)
}

func where(f userrepo.Where, w *postgresdb.Where) {
	w.String("id", f.ID)
	w.NullableString("name", f.Name)
	w.NullableString("email", f.Email)
	w.NullableTime("email_verified", f.EmailVerified)
	w.NullableString("image", f.Image)
	w.String("role", f.Role)
	w.NullableString("location", f.Location)
	w.NullableString("bio", f.Bio)
	w.Time("joined", f.Joined)
	w.Time("created_at", f.CreatedAt)
	w.Time("updated_at", f.UpdatedAt)
	postgresdb.And(w, f.AND, where)
	postgresdb.Or(w, f.OR, where)
	postgresdb.Not(w, f.NOT, where)
}

func unique(k userrepo.WhereUnique, w *postgresdb.Where) {
	if k.ID != nil {
		w.Equals("id", *k.ID)
	}
	if k.Email != nil {
		w.Equals("email", *k.Email)
	}
}

// Store provides database access for User.
type Store struct {
	*pgxstore.Store[userrepo.User, userrepo.CreateUser, userrepo.UpdateUser, userrepo.Where, userrepo.WhereUnique]
}

// NewStore creates a new User store
func NewStore(log *logger.Logger, db postgresdb.DBTX, omit ...string) *Store {
	return &Store{
		Store: pgxstore.New(log, db, Table, omit...),
	}
}
