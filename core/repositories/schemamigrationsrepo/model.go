package schemamigrationsrepo

import (
	"time"

	"github.com/alisideas/bookshare/core/scaffolding/fop"
)

// Model is the delegate name used in errors.
const Model = "SchemaMigration"

const (
	FieldVersion   fop.Field = "version"
	FieldChecksum  fop.Field = "checksum"
	FieldAppliedAt fop.Field = "applied_at"
)

// SchemaMigration is one applied migration file.
type SchemaMigration struct {
	Version   string    `db:"version" json:"version"`
	Checksum  string    `db:"checksum" json:"checksum"`
	AppliedAt time.Time `db:"applied_at" json:"appliedAt"`
}

type CreateSchemaMigration struct {
	Version  string `db:"version" validate:"required"`
	Checksum string `db:"checksum" validate:"required"`
}

// UpdateSchemaMigration exists to satisfy the delegate contract; applied
// migrations are never rewritten.
type UpdateSchemaMigration struct {
	Checksum *string
}

type Where struct {
	Version   *fop.StringFilter
	AppliedAt *fop.DateTimeFilter

	AND []Where
	OR  []Where
	NOT []Where
}

type WhereUnique struct {
	Version *string
}

func ByVersion(version string) WhereUnique { return WhereUnique{Version: &version} }

type Query = fop.Query[Where, WhereUnique]
