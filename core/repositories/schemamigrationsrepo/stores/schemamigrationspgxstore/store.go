package schemamigrationspgxstore

import (
	"github.com/alisideas/bookshare/core/repositories/pgxstore"
	"github.com/alisideas/bookshare/core/repositories/schemamigrationsrepo"
	"github.com/alisideas/bookshare/infrastructure/postgresdb"
	"github.com/alisideas/bookshare/sdk/logger"
)

// Table maps SchemaMigration onto the migrator's ledger table.
var Table = postgresdb.Table[schemamigrationsrepo.SchemaMigration, schemamigrationsrepo.CreateSchemaMigration, schemamigrationsrepo.UpdateSchemaMigration, schemamigrationsrepo.Where, schemamigrationsrepo.WhereUnique]{
	Model:   schemamigrationsrepo.Model,
	Name:    "schema_migrations",
	PK:      "version",
	Columns: []string{"version", "checksum", "applied_at"},
	Insert: func(in schemamigrationsrepo.CreateSchemaMigration, v *postgresdb.Values) {
		v.Set("version", in.Version)
		v.Set("checksum", in.Checksum)
	},
	Update: func(in schemamigrationsrepo.UpdateSchemaMigration, a *postgresdb.Assignments) {
		postgresdb.Assign(a, "checksum", in.Checksum)
	},
	Where: where,
	Unique: func(k schemamigrationsrepo.WhereUnique, w *postgresdb.Where) {
		if k.Version != nil {
			w.Equals("version", *k.Version)
		}
	},
}

func where(f schemamigrationsrepo.Where, w *postgresdb.Where) {
	w.String("version", f.Version)
	w.Time("applied_at", f.AppliedAt)
	postgresdb.And(w, f.AND, where)
	postgresdb.Or(w, f.OR, where)
	postgresdb.Not(w, f.NOT, where)
}

// Store provides database access for SchemaMigration.
type Store struct {
	*pgxstore.Store[schemamigrationsrepo.SchemaMigration, schemamigrationsrepo.CreateSchemaMigration, schemamigrationsrepo.UpdateSchemaMigration, schemamigrationsrepo.Where, schemamigrationsrepo.WhereUnique]
}

// NewStore creates a new SchemaMigration store
func NewStore(log *logger.Logger, db postgresdb.DBTX) *Store {
	return &Store{
		Store: pgxstore.New(log, db, Table),
	}
}
