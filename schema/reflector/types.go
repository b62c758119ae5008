package reflector

import (
	"context"
	"time"
)

// Snapshot is the reflected layout of one database schema.
type Snapshot struct {
	Database    string            `json:"database"`
	SchemaName  string            `json:"schemaName"`
	ReflectedAt time.Time         `json:"reflectedAt"`
	Tables      map[string]*Table `json:"tables"`
}

// Table is one reflected table.
type Table struct {
	Name        string       `json:"name"`
	PrimaryKey  []string     `json:"primaryKey"`
	Columns     []Column     `json:"columns"`
	ForeignKeys []ForeignKey `json:"foreignKeys"`
	Indexes     []Index      `json:"indexes"`
}

// HasColumn reports whether the table has a column called name.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c.Name == name {
			return true
		}
	}
	return false
}

type Column struct {
	Name     string `json:"name"`
	DBType   string `json:"dbType"`
	Nullable bool   `json:"nullable"`
	Default  string `json:"default,omitempty"`
}

type ForeignKey struct {
	Column    string `json:"column"`
	RefTable  string `json:"refTable"`
	RefColumn string `json:"refColumn"`
	OnDelete  string `json:"onDelete"`
}

type Index struct {
	Name    string   `json:"name"`
	Columns []string `json:"columns"`
	Unique  bool     `json:"unique"`
}

// Store queries database catalogs for a Reflector.
type Store interface {
	// CurrentSchema resolves the schema used when none is named.
	CurrentSchema(ctx context.Context) (string, error)
	DatabaseName(ctx context.Context) (string, error)
	Tables(ctx context.Context, schemaName string) ([]string, error)
	Columns(ctx context.Context, schemaName, table string) ([]Column, error)
	PrimaryKey(ctx context.Context, schemaName, table string) ([]string, error)
	ForeignKeys(ctx context.Context, schemaName, table string) ([]ForeignKey, error)
	Indexes(ctx context.Context, schemaName, table string) ([]Index, error)
}
