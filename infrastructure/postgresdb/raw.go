package postgresdb

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// QueryMaps runs a query and returns each row as a column map.
func QueryMaps(ctx context.Context, db DBTX, query string, args ...any) ([]map[string]any, error) {
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, HandlePgError(err)
	}
	defer rows.Close()

	maps, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, HandlePgError(err)
	}
	if maps == nil {
		maps = []map[string]any{}
	}
	return maps, nil
}

// ExecCount runs a statement and returns the affected row count.
func ExecCount(ctx context.Context, db DBTX, query string, args ...any) (int64, error) {
	tag, err := db.Exec(ctx, query, args...)
	if err != nil {
		return 0, HandlePgError(err)
	}
	return tag.RowsAffected(), nil
}

// RawResult is the outcome of a raw command.
type RawResult struct {
	RowsAffected int64
	Rows         []map[string]any
}

// RunRaw executes any statement. Statements returning rows report them;
// others only report the affected count.
func RunRaw(ctx context.Context, db DBTX, query string, args ...any) (RawResult, error) {
	if query == "" {
		return RawResult{}, fmt.Errorf("%w: empty command", ErrInvalidQuery)
	}

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return RawResult{}, HandlePgError(err)
	}
	defer rows.Close()

	maps, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return RawResult{}, HandlePgError(err)
	}
	if maps == nil {
		maps = []map[string]any{}
	}
	return RawResult{
		RowsAffected: rows.CommandTag().RowsAffected(),
		Rows:         maps,
	}, nil
}
