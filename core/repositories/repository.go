package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/alisideas/bookshare/core/scaffolding/fop"
	"github.com/alisideas/bookshare/sdk/logger"
	"github.com/alisideas/bookshare/sdk/validation"
)

type options struct {
	format    ErrorFormat
	validator *validation.Validator
}

// Option configures a Repository.
type Option func(*options)

// WithErrorFormat selects how returned errors render.
func WithErrorFormat(format ErrorFormat) Option {
	return func(o *options) {
		o.format = format
	}
}

// WithValidator replaces the create-input validator.
func WithValidator(v *validation.Validator) Option {
	return func(o *options) {
		o.validator = v
	}
}

// Repository is the delegate of one model: every operation runs against the
// Storer and reports failures as NotFoundError or StoreError.
type Repository[T, C, U, W, WU any] struct {
	log       *logger.Logger
	storer    Storer[T, C, U, W, WU]
	model     string
	format    ErrorFormat
	validator *validation.Validator
}

// NewRepository creates the delegate for model.
func NewRepository[T, C, U, W, WU any](log *logger.Logger, storer Storer[T, C, U, W, WU], model string, opts ...Option) *Repository[T, C, U, W, WU] {
	o := options{format: FormatColorless}
	for _, opt := range opts {
		opt(&o)
	}
	if o.validator == nil {
		o.validator = validation.Default()
	}

	return &Repository[T, C, U, W, WU]{
		log:       log,
		storer:    storer,
		model:     model,
		format:    o.format,
		validator: o.validator,
	}
}

// Model returns the model name.
func (r *Repository[T, C, U, W, WU]) Model() string {
	return r.model
}

// Storer returns the underlying store.
func (r *Repository[T, C, U, W, WU]) Storer() Storer[T, C, U, W, WU] {
	return r.storer
}

func (r *Repository[T, C, U, W, WU]) notFound(operation string) error {
	return &NotFoundError{Model: r.model, Operation: operation, Format: r.format}
}

// fail wraps a storer error. Not-found failures become NotFoundError.
func (r *Repository[T, C, U, W, WU]) fail(operation string, err error, fallback ErrorKind) error {
	if errors.Is(err, ErrNotFound) {
		return r.notFound(operation)
	}

	se := &StoreError{
		Model:     r.model,
		Operation: operation,
		Kind:      KindOf(err, fallback),
		Err:       err,
		Format:    r.format,
	}

	switch se.Kind {
	case KindValidation, KindUnique, KindForeignKey:
		r.log.Warn("store operation rejected", "model", r.model, "operation", operation, "kind", se.Kind, "error", err)
	default:
		r.log.Error("store operation failed", "model", r.model, "operation", operation, "kind", se.Kind, "error", err)
	}
	return se
}

func (r *Repository[T, C, U, W, WU]) validate(operation string, input any) error {
	if err := r.validator.Validate(input); err != nil {
		return r.fail(operation, fmt.Errorf("%w: %w", ErrInvalidInput, err), KindValidation)
	}
	return nil
}

// FindUnique returns the row matching where, or nil when there is none.
func (r *Repository[T, C, U, W, WU]) FindUnique(ctx context.Context, where WU, omit ...fop.Field) (*T, error) {
	entity, err := r.storer.FindUnique(ctx, where, omit)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, r.fail("findUnique", err, KindUnknown)
	}
	return &entity, nil
}

// FindUniqueOrThrow is FindUnique with a NotFoundError for a missing row.
func (r *Repository[T, C, U, W, WU]) FindUniqueOrThrow(ctx context.Context, where WU, omit ...fop.Field) (T, error) {
	entity, err := r.storer.FindUnique(ctx, where, omit)
	if err != nil {
		var zero T
		return zero, r.fail("findUniqueOrThrow", err, KindUnknown)
	}
	return entity, nil
}

// firstQuery keeps the direction of a negative Take and limits to one row.
func firstQuery[W, WU any](q fop.Query[W, WU]) fop.Query[W, WU] {
	if q.Take != nil && *q.Take < 0 {
		q.Take = fop.Take(-1)
	} else {
		q.Take = fop.Take(1)
	}
	return q
}

// FindFirst returns the first row selected by query, or nil.
func (r *Repository[T, C, U, W, WU]) FindFirst(ctx context.Context, query fop.Query[W, WU]) (*T, error) {
	entities, err := r.storer.FindMany(ctx, firstQuery(query))
	if err != nil {
		return nil, r.fail("findFirst", err, KindUnknown)
	}
	if len(entities) == 0 {
		return nil, nil
	}
	return &entities[0], nil
}

// FindFirstOrThrow is FindFirst with a NotFoundError when nothing matches.
func (r *Repository[T, C, U, W, WU]) FindFirstOrThrow(ctx context.Context, query fop.Query[W, WU]) (T, error) {
	var zero T
	entities, err := r.storer.FindMany(ctx, firstQuery(query))
	if err != nil {
		return zero, r.fail("findFirstOrThrow", err, KindUnknown)
	}
	if len(entities) == 0 {
		return zero, r.notFound("findFirstOrThrow")
	}
	return entities[0], nil
}

// FindMany returns every row selected by query.
func (r *Repository[T, C, U, W, WU]) FindMany(ctx context.Context, query fop.Query[W, WU]) ([]T, error) {
	entities, err := r.storer.FindMany(ctx, query)
	if err != nil {
		return nil, r.fail("findMany", err, KindUnknown)
	}
	if entities == nil {
		entities = []T{}
	}
	return entities, nil
}

// Create validates and inserts one row.
func (r *Repository[T, C, U, W, WU]) Create(ctx context.Context, input C) (T, error) {
	var zero T
	if err := r.validate("create", input); err != nil {
		return zero, err
	}

	entity, err := r.storer.Create(ctx, input)
	if err != nil {
		return zero, r.fail("create", err, KindUnknown)
	}
	return entity, nil
}

// CreateMany validates and inserts rows, returning how many were inserted.
func (r *Repository[T, C, U, W, WU]) CreateMany(ctx context.Context, inputs []C, skipDuplicates bool) (int64, error) {
	for i, in := range inputs {
		if err := r.validator.Validate(in); err != nil {
			return 0, r.fail("createMany", fmt.Errorf("%w: row %d: %w", ErrInvalidInput, i, err), KindValidation)
		}
	}

	n, err := r.storer.CreateMany(ctx, inputs, skipDuplicates)
	if err != nil {
		return 0, r.fail("createMany", err, KindUnknown)
	}
	return n, nil
}

// Update writes the set fields of input to the row matching where.
func (r *Repository[T, C, U, W, WU]) Update(ctx context.Context, where WU, input U) (T, error) {
	entity, err := r.storer.Update(ctx, where, input)
	if err != nil {
		var zero T
		return zero, r.fail("update", err, KindUnknown)
	}
	return entity, nil
}

// UpdateMany writes input to every row matching where.
func (r *Repository[T, C, U, W, WU]) UpdateMany(ctx context.Context, where W, input U) (int64, error) {
	n, err := r.storer.UpdateMany(ctx, where, input)
	if err != nil {
		return 0, r.fail("updateMany", err, KindUnknown)
	}
	return n, nil
}

// Upsert updates the row matching where or creates it from create.
func (r *Repository[T, C, U, W, WU]) Upsert(ctx context.Context, where WU, create C, update U) (T, error) {
	var zero T
	if err := r.validate("upsert", create); err != nil {
		return zero, err
	}

	entity, err := r.storer.Upsert(ctx, where, create, update)
	if err != nil {
		return zero, r.fail("upsert", err, KindUnknown)
	}
	return entity, nil
}

// Delete removes the row matching where and returns it.
func (r *Repository[T, C, U, W, WU]) Delete(ctx context.Context, where WU) (T, error) {
	entity, err := r.storer.Delete(ctx, where)
	if err != nil {
		var zero T
		return zero, r.fail("delete", err, KindUnknown)
	}
	return entity, nil
}

// DeleteMany removes every row matching where.
func (r *Repository[T, C, U, W, WU]) DeleteMany(ctx context.Context, where W) (int64, error) {
	n, err := r.storer.DeleteMany(ctx, where)
	if err != nil {
		return 0, r.fail("deleteMany", err, KindUnknown)
	}
	return n, nil
}

// Count returns the number of rows matching where.
func (r *Repository[T, C, U, W, WU]) Count(ctx context.Context, where W) (int64, error) {
	n, err := r.storer.Count(ctx, where)
	if err != nil {
		return 0, r.fail("count", err, KindUnknown)
	}
	return n, nil
}

// Aggregate computes count/avg/sum/min/max over rows matching where.
func (r *Repository[T, C, U, W, WU]) Aggregate(ctx context.Context, where W, agg fop.Aggregate) (fop.AggregateResult, error) {
	res, err := r.storer.Aggregate(ctx, where, agg)
	if err != nil {
		return fop.AggregateResult{}, r.fail("aggregate", err, KindUnknown)
	}
	return res, nil
}

// GroupBy groups rows and aggregates per group.
func (r *Repository[T, C, U, W, WU]) GroupBy(ctx context.Context, args fop.GroupBy[W]) ([]fop.GroupRow, error) {
	rows, err := r.storer.GroupBy(ctx, args)
	if err != nil {
		return nil, r.fail("groupBy", err, KindUnknown)
	}
	if rows == nil {
		rows = []fop.GroupRow{}
	}
	return rows, nil
}

// FindRaw runs a native filter against the model's table.
func (r *Repository[T, C, U, W, WU]) FindRaw(ctx context.Context, opts fop.RawFind) ([]map[string]any, error) {
	rows, err := r.storer.FindRaw(ctx, opts)
	if err != nil {
		return nil, r.fail("findRaw", err, KindRaw)
	}
	return rows, nil
}

// AggregateRaw runs a native aggregation against the model's table.
func (r *Repository[T, C, U, W, WU]) AggregateRaw(ctx context.Context, pipeline fop.RawPipeline) ([]map[string]any, error) {
	rows, err := r.storer.AggregateRaw(ctx, pipeline)
	if err != nil {
		return nil, r.fail("aggregateRaw", err, KindRaw)
	}
	return rows, nil
}
