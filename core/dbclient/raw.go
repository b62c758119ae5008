package dbclient

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/alisideas/bookshare/core/repositories"
	"github.com/alisideas/bookshare/infrastructure/postgresdb"
)

// RunCommandRaw executes a command document:
//
//	{"sql": "UPDATE books SET stock = stock + 1 WHERE id = @id", "args": {"id": "..."}}
//
// args may be an object of named arguments or an array of positional ones.
// The result is {"ok": 1, "rowsAffected": n, "rows": [...]}.
func (c *Client) RunCommandRaw(ctx context.Context, cmd map[string]any) (map[string]any, error) {
	sql, args, err := parseCommand(cmd)
	if err != nil {
		return nil, c.fail("runCommandRaw", err, repositories.KindRaw)
	}

	res, err := postgresdb.RunRaw(ctx, c.db, sql, args...)
	if err != nil {
		return nil, c.fail("runCommandRaw", err, repositories.KindRaw)
	}

	return map[string]any{
		"ok":           1,
		"rowsAffected": res.RowsAffected,
		"rows":         res.Rows,
	}, nil
}

// RunCommandRawJSON is RunCommandRaw over JSON documents.
func (c *Client) RunCommandRawJSON(ctx context.Context, cmd []byte) ([]byte, error) {
	var doc map[string]any
	if err := json.Unmarshal(cmd, &doc); err != nil {
		return nil, c.fail("runCommandRaw", fmt.Errorf("%w: decoding command: %w", repositories.ErrInvalidInput, err), repositories.KindRaw)
	}

	res, err := c.RunCommandRaw(ctx, doc)
	if err != nil {
		return nil, err
	}

	out, err := json.Marshal(res)
	if err != nil {
		return nil, c.fail("runCommandRaw", fmt.Errorf("encoding result: %w", err), repositories.KindRaw)
	}
	return out, nil
}

// QueryRaw runs a row-returning statement with positional ($1) or, given a
// single pgx.NamedArgs, named (@name) arguments.
func (c *Client) QueryRaw(ctx context.Context, sql string, args ...any) ([]map[string]any, error) {
	rows, err := postgresdb.QueryMaps(ctx, c.db, sql, args...)
	if err != nil {
		return nil, c.fail("queryRaw", err, repositories.KindRaw)
	}
	return rows, nil
}

// ExecuteRaw runs a statement and returns the affected row count.
func (c *Client) ExecuteRaw(ctx context.Context, sql string, args ...any) (int64, error) {
	n, err := postgresdb.ExecCount(ctx, c.db, sql, args...)
	if err != nil {
		return 0, c.fail("executeRaw", err, repositories.KindRaw)
	}
	return n, nil
}

func parseCommand(cmd map[string]any) (string, []any, error) {
	sql, ok := cmd["sql"].(string)
	if !ok || sql == "" {
		return "", nil, fmt.Errorf("%w: command needs a non-empty \"sql\" string", repositories.ErrInvalidInput)
	}

	for k := range cmd {
		if k != "sql" && k != "args" {
			return "", nil, fmt.Errorf("%w: unknown command key %q", repositories.ErrInvalidInput, k)
		}
	}

	switch args := cmd["args"].(type) {
	case nil:
		return sql, nil, nil
	case []any:
		return sql, args, nil
	case map[string]any:
		return sql, []any{pgx.NamedArgs(args)}, nil
	default:
		return "", nil, fmt.Errorf("%w: \"args\" must be an object or an array, got %T", repositories.ErrInvalidInput, args)
	}
}
