// Package repositories holds the delegate contract shared by every model: the
// Storer a storage backend implements, the generic Repository callers use,
// and the errors both report.
package repositories

import (
	"context"
	"errors"

	"github.com/alisideas/bookshare/core/scaffolding/fop"
)

// Storage failures reported by Storer implementations. Repository maps them
// onto NotFoundError and StoreError kinds.
var (
	ErrNotFound            = errors.New("record not found")
	ErrUniqueViolation     = errors.New("unique constraint violation")
	ErrForeignKeyViolation = errors.New("foreign key violation")
	ErrInvalidInput        = errors.New("invalid input")
	ErrConnection          = errors.New("connection failure")
	ErrTransaction         = errors.New("transaction failure")
)

// Storer is the storage side of a model delegate. T is the row type, C the
// create input, U the partial update input, W the filter and WU the unique
// filter.
type Storer[T, C, U, W, WU any] interface {
	FindUnique(ctx context.Context, where WU, omit []fop.Field) (T, error)
	FindMany(ctx context.Context, query fop.Query[W, WU]) ([]T, error)
	Create(ctx context.Context, input C) (T, error)
	CreateMany(ctx context.Context, inputs []C, skipDuplicates bool) (int64, error)
	Update(ctx context.Context, where WU, input U) (T, error)
	UpdateMany(ctx context.Context, where W, input U) (int64, error)
	Upsert(ctx context.Context, where WU, create C, update U) (T, error)
	Delete(ctx context.Context, where WU) (T, error)
	DeleteMany(ctx context.Context, where W) (int64, error)
	Count(ctx context.Context, where W) (int64, error)
	Aggregate(ctx context.Context, where W, agg fop.Aggregate) (fop.AggregateResult, error)
	GroupBy(ctx context.Context, args fop.GroupBy[W]) ([]fop.GroupRow, error)
	FindRaw(ctx context.Context, opts fop.RawFind) ([]map[string]any, error)
	AggregateRaw(ctx context.Context, pipeline fop.RawPipeline) ([]map[string]any, error)
}
