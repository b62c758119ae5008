package postgresdb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// Transaction errors.
var (
	ErrTxMaxWait = errors.New("transaction: timed out waiting for a connection")
	ErrTxTimeout = errors.New("transaction: timed out")
)

// TxOptions bounds a transaction. MaxWait limits the wait for a pooled
// connection; Timeout limits the transaction from BEGIN to COMMIT.
type TxOptions struct {
	MaxWait  time.Duration
	Timeout  time.Duration
	IsoLevel pgx.TxIsoLevel
}

// InTx runs fn in a transaction begun on db: a real transaction on a pool, a
// savepoint on an open transaction. fn's error rolls back and is returned.
func InTx(ctx context.Context, db DBTX, fn func(ctx context.Context, tx DBTX) error) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", HandlePgError(err))
	}

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(context.WithoutCancel(ctx)); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			return errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", HandlePgError(err))
	}
	return nil
}

// Transaction acquires a connection within MaxWait and runs fn in a
// transaction bounded by Timeout. Nested calls should use InTx on the
// transaction instead.
func (h *Handle) Transaction(ctx context.Context, opts TxOptions, fn func(ctx context.Context, tx pgx.Tx) error) error {
	pool, err := h.Pool(ctx)
	if err != nil {
		return err
	}

	waitCtx := ctx
	if opts.MaxWait > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, opts.MaxWait)
		defer cancel()
	}
	conn, err := pool.Acquire(waitCtx)
	if err != nil {
		if waitCtx.Err() != nil && ctx.Err() == nil {
			return fmt.Errorf("%w after %s", ErrTxMaxWait, opts.MaxWait)
		}
		return fmt.Errorf("acquire: %w", HandlePgError(err))
	}
	defer conn.Release()

	runCtx := ctx
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}
	timedOut := func(err error) error {
		if runCtx.Err() != nil && ctx.Err() == nil {
			return fmt.Errorf("%w after %s: %w", ErrTxTimeout, opts.Timeout, err)
		}
		return err
	}

	tx, err := conn.BeginTx(runCtx, pgx.TxOptions{IsoLevel: opts.IsoLevel})
	if err != nil {
		return timedOut(fmt.Errorf("begin: %w", HandlePgError(err)))
	}

	if err := fn(runCtx, tx); err != nil {
		if rbErr := tx.Rollback(context.WithoutCancel(ctx)); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			err = errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
		}
		return timedOut(err)
	}

	if err := tx.Commit(runCtx); err != nil {
		_ = tx.Rollback(context.WithoutCancel(ctx))
		return timedOut(fmt.Errorf("commit: %w", HandlePgError(err)))
	}
	return nil
}
