package reflector

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/alisideas/bookshare/infrastructure/postgresdb"
)

// PostgresStore reads the PostgreSQL information schema and catalogs.
type PostgresStore struct {
	db postgresdb.DBTX
}

// NewPostgresStore creates a Store over db.
func NewPostgresStore(db postgresdb.DBTX) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) CurrentSchema(ctx context.Context) (string, error) {
	var name string
	err := s.db.QueryRow(ctx, "SELECT current_schema()").Scan(&name)
	return name, err
}

func (s *PostgresStore) DatabaseName(ctx context.Context) (string, error) {
	var name string
	err := s.db.QueryRow(ctx, "SELECT current_database()").Scan(&name)
	return name, err
}

func (s *PostgresStore) Tables(ctx context.Context, schemaName string) ([]string, error) {
	query := `
		SELECT table_name::text
		FROM information_schema.tables
		WHERE table_schema = $1
		  AND table_type = 'BASE TABLE'
		ORDER BY table_name
	`
	return s.texts(ctx, query, schemaName)
}

func (s *PostgresStore) Columns(ctx context.Context, schemaName, table string) ([]Column, error) {
	query := `
		SELECT column_name::text, udt_name::text, is_nullable = 'YES', COALESCE(column_default, '')
		FROM information_schema.columns
		WHERE table_schema = $1
		  AND table_name = $2
		ORDER BY ordinal_position
	`
	rows, err := s.db.Query(ctx, query, schemaName, table)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (Column, error) {
		var c Column
		err := row.Scan(&c.Name, &c.DBType, &c.Nullable, &c.Default)
		return c, err
	})
}

func (s *PostgresStore) PrimaryKey(ctx context.Context, schemaName, table string) ([]string, error) {
	query := `
		SELECT kcu.column_name::text
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
			ON tc.constraint_name = kcu.constraint_name
			AND tc.table_schema = kcu.table_schema
		WHERE tc.constraint_type = 'PRIMARY KEY'
		  AND tc.table_schema = $1
		  AND tc.table_name = $2
		ORDER BY kcu.ordinal_position
	`
	return s.texts(ctx, query, schemaName, table)
}

func (s *PostgresStore) ForeignKeys(ctx context.Context, schemaName, table string) ([]ForeignKey, error) {
	query := `
		SELECT
			kcu.column_name::text,
			ccu.table_name::text,
			ccu.column_name::text,
			rc.delete_rule::text
		FROM information_schema.table_constraints AS tc
		JOIN information_schema.key_column_usage AS kcu
			ON tc.constraint_name = kcu.constraint_name
			AND tc.table_schema = kcu.table_schema
		JOIN information_schema.constraint_column_usage AS ccu
			ON ccu.constraint_name = tc.constraint_name
			AND ccu.table_schema = tc.table_schema
		JOIN information_schema.referential_constraints AS rc
			ON rc.constraint_name = tc.constraint_name
			AND rc.constraint_schema = tc.table_schema
		WHERE tc.constraint_type = 'FOREIGN KEY'
		  AND tc.table_schema = $1
		  AND tc.table_name = $2
		ORDER BY kcu.ordinal_position
	`
	rows, err := s.db.Query(ctx, query, schemaName, table)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (ForeignKey, error) {
		var fk ForeignKey
		err := row.Scan(&fk.Column, &fk.RefTable, &fk.RefColumn, &fk.OnDelete)
		fk.OnDelete = strings.ToUpper(strings.ReplaceAll(fk.OnDelete, " ", "_"))
		return fk, err
	})
}

func (s *PostgresStore) Indexes(ctx context.Context, schemaName, table string) ([]Index, error) {
	query := `
		SELECT
			i.relname::text,
			ix.indisunique,
			ARRAY_AGG(a.attname::text ORDER BY array_position(ix.indkey, a.attnum))
		FROM pg_class t
		JOIN pg_index ix ON t.oid = ix.indrelid
		JOIN pg_class i ON i.oid = ix.indexrelid
		JOIN pg_namespace n ON n.oid = t.relnamespace
		JOIN pg_attribute a ON a.attrelid = t.oid AND a.attnum = ANY(ix.indkey)
		WHERE n.nspname = $1
		  AND t.relname = $2
		  AND NOT ix.indisprimary
		GROUP BY i.relname, ix.indisunique
		ORDER BY i.relname
	`
	rows, err := s.db.Query(ctx, query, schemaName, table)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (Index, error) {
		var idx Index
		err := row.Scan(&idx.Name, &idx.Unique, &idx.Columns)
		return idx, err
	})
}

func (s *PostgresStore) texts(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}
