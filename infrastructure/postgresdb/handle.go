package postgresdb

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrHandleClosed is returned by a handle that cannot reopen its pool.
var ErrHandleClosed = errors.New("database handle closed")

// Handle is a lazily opened pool. The first statement opens it; Close
// releases it and a later statement opens a new one.
type Handle struct {
	mu   sync.Mutex
	open func(ctx context.Context) (*Pool, error)
	pool *Pool
}

// NewHandle returns a handle that opens pools with open.
func NewHandle(open func(ctx context.Context) (*Pool, error)) *Handle {
	return &Handle{open: open}
}

// NewHandleFromOptions opens pools with cfg and opts.
func NewHandleFromOptions(cfg Options, opts ...Option) *Handle {
	return NewHandle(func(ctx context.Context) (*Pool, error) {
		return Open(ctx, cfg, opts...)
	})
}

// FromPool wraps an open pool. Once closed it cannot reopen.
func FromPool(pool *Pool) *Handle {
	return &Handle{pool: pool}
}

// Connect opens the pool if needed.
func (h *Handle) Connect(ctx context.Context) error {
	_, err := h.Pool(ctx)
	return err
}

// Connected reports whether a pool is open.
func (h *Handle) Connected() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pool != nil
}

// Close closes the pool, waiting for acquired connections to be released.
func (h *Handle) Close() {
	h.mu.Lock()
	pool := h.pool
	h.pool = nil
	h.mu.Unlock()

	if pool != nil {
		pool.Close()
	}
}

// Pool returns the open pool, opening it first if needed.
func (h *Handle) Pool(ctx context.Context) (*Pool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.pool != nil {
		return h.pool, nil
	}
	if h.open == nil {
		return nil, ErrHandleClosed
	}

	pool, err := h.open(ctx)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", HandlePgError(err))
	}
	h.pool = pool
	return pool, nil
}

func (h *Handle) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	pool, err := h.Pool(ctx)
	if err != nil {
		return pgconn.CommandTag{}, err
	}
	return pool.Exec(ctx, sql, args...)
}

func (h *Handle) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	pool, err := h.Pool(ctx)
	if err != nil {
		return nil, err
	}
	return pool.Query(ctx, sql, args...)
}

func (h *Handle) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	pool, err := h.Pool(ctx)
	if err != nil {
		return errRow{err: err}
	}
	return pool.QueryRow(ctx, sql, args...)
}

func (h *Handle) Begin(ctx context.Context) (pgx.Tx, error) {
	pool, err := h.Pool(ctx)
	if err != nil {
		return nil, err
	}
	return pool.Begin(ctx)
}

type errRow struct {
	err error
}

func (r errRow) Scan(...any) error {
	return r.err
}
