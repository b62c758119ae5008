// Package reflector reads the live table layout from the database catalogs
// and compares it with the column lists the stores expect.
package reflector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"
)

// Reflector builds Snapshots through a Store.
type Reflector struct {
	store Store
	now   func() time.Time
}

// NewReflector creates a new Reflector with the given store
func NewReflector(store Store) *Reflector {
	return &Reflector{
		store: store,
		now:   time.Now,
	}
}

// Reflect snapshots schemaName, or the connection's current schema when it
// is empty.
func (r *Reflector) Reflect(ctx context.Context, schemaName string) (*Snapshot, error) {
	if schemaName == "" {
		current, err := r.store.CurrentSchema(ctx)
		if err != nil {
			return nil, fmt.Errorf("current schema: %w", err)
		}
		schemaName = current
	}

	database, err := r.store.DatabaseName(ctx)
	if err != nil {
		return nil, fmt.Errorf("database name: %w", err)
	}

	snap := &Snapshot{
		Database:    database,
		SchemaName:  schemaName,
		ReflectedAt: r.now().UTC(),
		Tables:      make(map[string]*Table),
	}

	tables, err := r.store.Tables(ctx, schemaName)
	if err != nil {
		return nil, fmt.Errorf("get tables: %w", err)
	}

	for _, name := range tables {
		t := &Table{Name: name}

		if t.Columns, err = r.store.Columns(ctx, schemaName, name); err != nil {
			return nil, fmt.Errorf("get columns for %s: %w", name, err)
		}
		if t.PrimaryKey, err = r.store.PrimaryKey(ctx, schemaName, name); err != nil {
			return nil, fmt.Errorf("get primary key for %s: %w", name, err)
		}
		if t.ForeignKeys, err = r.store.ForeignKeys(ctx, schemaName, name); err != nil {
			return nil, fmt.Errorf("get foreign keys for %s: %w", name, err)
		}
		if t.Indexes, err = r.store.Indexes(ctx, schemaName, name); err != nil {
			return nil, fmt.Errorf("get indexes for %s: %w", name, err)
		}

		snap.Tables[name] = t
	}

	return snap, nil
}

// Drift problems.
const (
	MissingTable  = "missing table"
	MissingColumn = "missing column"
	ExtraColumn   = "unmapped column"
)

// Drift is one difference between a snapshot and the expected layout.
type Drift struct {
	Table   string `json:"table"`
	Column  string `json:"column,omitempty"`
	Problem string `json:"problem"`
}

func (d Drift) String() string {
	if d.Column == "" {
		return fmt.Sprintf("%s: %s", d.Table, d.Problem)
	}
	return fmt.Sprintf("%s.%s: %s", d.Table, d.Column, d.Problem)
}

// Check compares snap with expected, a map of table name to the columns a
// store reads and writes. Tables absent from expected are ignored.
func Check(snap *Snapshot, expected map[string][]string) []Drift {
	var drift []Drift

	for _, name := range sortedKeys(expected) {
		t, ok := snap.Tables[name]
		if !ok {
			drift = append(drift, Drift{Table: name, Problem: MissingTable})
			continue
		}

		want := make(map[string]bool, len(expected[name]))
		for _, col := range expected[name] {
			want[col] = true
			if !t.HasColumn(col) {
				drift = append(drift, Drift{Table: name, Column: col, Problem: MissingColumn})
			}
		}
		for _, col := range t.Columns {
			if !want[col.Name] {
				drift = append(drift, Drift{Table: name, Column: col.Name, Problem: ExtraColumn})
			}
		}
	}

	return drift
}

// WriteJSON writes the snapshot as indented JSON.
func WriteJSON(w io.Writer, snap *Snapshot) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(snap)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
