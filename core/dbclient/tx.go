package dbclient

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/alisideas/bookshare/core/repositories"
	"github.com/alisideas/bookshare/infrastructure/postgresdb"
)

// TxOptions overrides the configured transaction bounds. Zero values fall
// back to Config.TxMaxWait and Config.TxTimeout.
type TxOptions struct {
	MaxWait  time.Duration
	Timeout  time.Duration
	IsoLevel pgx.TxIsoLevel
}

// TxFunc is a unit of work run against a transaction-scoped client.
type TxFunc func(ctx context.Context, tx *Client) error

// Transaction runs fn in a transaction. A nil return commits; an error rolls
// back and is returned unchanged unless it came from the transaction itself.
// Called on a transaction-scoped client it opens a savepoint instead, and
// opts are ignored.
func (c *Client) Transaction(ctx context.Context, fn TxFunc, opts ...TxOptions) error {
	if c.inTx {
		return postgresdb.InTx(ctx, c.db, func(ctx context.Context, tx postgresdb.DBTX) error {
			return fn(ctx, c.scoped(tx))
		})
	}

	o := postgresdb.TxOptions{MaxWait: c.cfg.TxMaxWait, Timeout: c.cfg.TxTimeout}
	if len(opts) > 0 {
		if opts[0].MaxWait > 0 {
			o.MaxWait = opts[0].MaxWait
		}
		if opts[0].Timeout > 0 {
			o.Timeout = opts[0].Timeout
		}
		o.IsoLevel = opts[0].IsoLevel
	}

	var fnErr error
	err := c.handle.Transaction(ctx, o, func(ctx context.Context, tx pgx.Tx) error {
		fnErr = fn(ctx, c.scoped(tx))
		return fnErr
	})
	if err == nil {
		return nil
	}
	if fnErr != nil && errors.Is(err, fnErr) && !errors.Is(err, postgresdb.ErrTxTimeout) {
		return fnErr
	}
	return c.fail("transaction", err, repositories.KindTransaction)
}

// Batch runs independent operations in order inside one transaction; the
// first failure rolls back all of them.
func (c *Client) Batch(ctx context.Context, ops ...TxFunc) error {
	return c.Transaction(ctx, func(ctx context.Context, tx *Client) error {
		for _, op := range ops {
			if err := op(ctx, tx); err != nil {
				return err
			}
		}
		return nil
	})
}

// scoped returns a copy of c whose delegates run on tx.
func (c *Client) scoped(tx postgresdb.DBTX) *Client {
	sc := &Client{
		log:    c.log,
		cfg:    c.cfg,
		format: c.format,
		omit:   c.omit,
		events: c.events,
		handle: c.handle,
		inTx:   true,
	}
	sc.bind(tx)
	return sc
}
