package schemamigrationsrepo

import (
	"context"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/alisideas/bookshare/core/repositories"
	"github.com/alisideas/bookshare/core/scaffolding/fop"
	"github.com/alisideas/bookshare/sdk/logger"
)

// Migration states reported by Status.
const (
	StateApplied  = "applied"
	StatePending  = "pending"
	StateModified = "modified"
	StateMissing  = "missing"
)

// Storer defines the data storage interface for SchemaMigration.
type Storer interface {
	repositories.Storer[SchemaMigration, CreateSchemaMigration, UpdateSchemaMigration, Where, WhereUnique]
}

// Repository reads the migration ledger.
type Repository struct {
	*repositories.Repository[SchemaMigration, CreateSchemaMigration, UpdateSchemaMigration, Where, WhereUnique]
}

// NewRepository creates a new SchemaMigration repository
func NewRepository(log *logger.Logger, storer Storer, opts ...repositories.Option) *Repository {
	return &Repository{
		Repository: repositories.NewRepository[SchemaMigration, CreateSchemaMigration, UpdateSchemaMigration, Where, WhereUnique](log, storer, Model, opts...),
	}
}

// FileStatus is the state of one migration version.
type FileStatus struct {
	Version  string           `json:"version"`
	State    string           `json:"state"`
	Applied  *SchemaMigration `json:"applied,omitempty"`
	Checksum string           `json:"checksum,omitempty"`
}

// Status compares the .sql files of dir in fsys with the ledger. checksum
// hashes a file the same way the migrator does.
func (r *Repository) Status(ctx context.Context, fsys fs.FS, dir string, checksum func([]byte) string) ([]FileStatus, error) {
	applied, err := r.FindMany(ctx, Query{OrderBy: []fop.Order{fop.Asc(FieldVersion)}})
	if err != nil {
		return nil, err
	}
	byVersion := make(map[string]SchemaMigration, len(applied))
	for _, m := range applied {
		byVersion[m.Version] = m
	}

	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}

	var out []FileStatus
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		content, err := fs.ReadFile(fsys, path.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}

		st := FileStatus{Version: e.Name(), State: StatePending, Checksum: checksum(content)}
		if m, ok := byVersion[e.Name()]; ok {
			st.Applied = &m
			st.State = StateApplied
			if m.Checksum != st.Checksum {
				st.State = StateModified
			}
			delete(byVersion, e.Name())
		}
		out = append(out, st)
	}

	for _, m := range byVersion {
		out = append(out, FileStatus{Version: m.Version, State: StateMissing, Applied: &m})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out, nil
}
