// Package pgxstore adapts the generic postgresdb table store to the
// repositories.Storer contract, translating database errors on the way out.
package pgxstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/alisideas/bookshare/core/repositories"
	"github.com/alisideas/bookshare/core/scaffolding/fop"
	"github.com/alisideas/bookshare/infrastructure/postgresdb"
	"github.com/alisideas/bookshare/sdk/logger"
)

// MapError translates postgresdb errors into repositories errors, keeping
// the original in the chain.
func MapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, postgresdb.ErrDBNotFound):
		return repositories.ErrNotFound
	case errors.Is(err, postgresdb.ErrDBDuplicatedEntry):
		return fmt.Errorf("%w: %w", repositories.ErrUniqueViolation, err)
	case errors.Is(err, postgresdb.ErrDBForeignKey):
		return fmt.Errorf("%w: %w", repositories.ErrForeignKeyViolation, err)
	case errors.Is(err, postgresdb.ErrInvalidQuery),
		errors.Is(err, postgresdb.ErrDBNotNull),
		errors.Is(err, postgresdb.ErrDBCheck):
		return fmt.Errorf("%w: %w", repositories.ErrInvalidInput, err)
	case errors.Is(err, postgresdb.ErrDBConnection),
		errors.Is(err, postgresdb.ErrHandleClosed):
		return fmt.Errorf("%w: %w", repositories.ErrConnection, err)
	case errors.Is(err, postgresdb.ErrTxMaxWait),
		errors.Is(err, postgresdb.ErrTxTimeout):
		return fmt.Errorf("%w: %w", repositories.ErrTransaction, err)
	}
	return err
}

// Store implements repositories.Storer over a postgresdb.Table.
type Store[T, C, U, W, WU any] struct {
	log   *logger.Logger
	db    postgresdb.DBTX
	table *postgresdb.Store[T, C, U, W, WU]
}

// New creates a store for table on db; omit lists columns left out of
// results.
func New[T, C, U, W, WU any](log *logger.Logger, db postgresdb.DBTX, table postgresdb.Table[T, C, U, W, WU], omit ...string) *Store[T, C, U, W, WU] {
	return &Store[T, C, U, W, WU]{
		log:   log,
		db:    db,
		table: postgresdb.NewStore(log, db, table, omit...),
	}
}

// DB returns the connection or transaction the store runs on.
func (s *Store[T, C, U, W, WU]) DB() postgresdb.DBTX {
	return s.db
}

func (s *Store[T, C, U, W, WU]) FindUnique(ctx context.Context, where WU, omit []fop.Field) (T, error) {
	entity, err := s.table.FindUnique(ctx, where, omit)
	return entity, MapError(err)
}

func (s *Store[T, C, U, W, WU]) FindMany(ctx context.Context, query fop.Query[W, WU]) ([]T, error) {
	entities, err := s.table.FindMany(ctx, query)
	return entities, MapError(err)
}

func (s *Store[T, C, U, W, WU]) Create(ctx context.Context, input C) (T, error) {
	entity, err := s.table.Create(ctx, input)
	return entity, MapError(err)
}

func (s *Store[T, C, U, W, WU]) CreateMany(ctx context.Context, inputs []C, skipDuplicates bool) (int64, error) {
	n, err := s.table.CreateMany(ctx, inputs, skipDuplicates)
	return n, MapError(err)
}

func (s *Store[T, C, U, W, WU]) Update(ctx context.Context, where WU, input U) (T, error) {
	entity, err := s.table.Update(ctx, where, input)
	return entity, MapError(err)
}

func (s *Store[T, C, U, W, WU]) UpdateMany(ctx context.Context, where W, input U) (int64, error) {
	n, err := s.table.UpdateMany(ctx, where, input)
	return n, MapError(err)
}

func (s *Store[T, C, U, W, WU]) Upsert(ctx context.Context, where WU, create C, update U) (T, error) {
	entity, err := s.table.Upsert(ctx, where, create, update)
	return entity, MapError(err)
}

func (s *Store[T, C, U, W, WU]) Delete(ctx context.Context, where WU) (T, error) {
	entity, err := s.table.Delete(ctx, where)
	return entity, MapError(err)
}

func (s *Store[T, C, U, W, WU]) DeleteMany(ctx context.Context, where W) (int64, error) {
	n, err := s.table.DeleteMany(ctx, where)
	return n, MapError(err)
}

func (s *Store[T, C, U, W, WU]) Count(ctx context.Context, where W) (int64, error) {
	n, err := s.table.Count(ctx, where)
	return n, MapError(err)
}

func (s *Store[T, C, U, W, WU]) Aggregate(ctx context.Context, where W, agg fop.Aggregate) (fop.AggregateResult, error) {
	res, err := s.table.Aggregate(ctx, where, agg)
	return res, MapError(err)
}

func (s *Store[T, C, U, W, WU]) GroupBy(ctx context.Context, args fop.GroupBy[W]) ([]fop.GroupRow, error) {
	rows, err := s.table.GroupBy(ctx, args)
	return rows, MapError(err)
}

func (s *Store[T, C, U, W, WU]) FindRaw(ctx context.Context, opts fop.RawFind) ([]map[string]any, error) {
	rows, err := s.table.FindRaw(ctx, opts)
	return rows, MapError(err)
}

func (s *Store[T, C, U, W, WU]) AggregateRaw(ctx context.Context, pipeline fop.RawPipeline) ([]map[string]any, error) {
	rows, err := s.table.AggregateRaw(ctx, pipeline)
	return rows, MapError(err)
}
