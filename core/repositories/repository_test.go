package repositories_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alisideas/bookshare/core/repositories"
	"github.com/alisideas/bookshare/core/scaffolding/fop"
	"github.com/alisideas/bookshare/sdk/logger"
)

// ============================================================================
// Stub model and storer
// ============================================================================

type item struct {
	ID   string
	Name string
}

type createItem struct {
	ID   string `db:"id"`
	Name string `db:"name" validate:"required"`
}

type updateItem struct {
	Name *string
}

type itemWhere struct{}

type itemUnique struct {
	ID *string
}

type itemQuery = fop.Query[itemWhere, itemUnique]

type stubStorer struct {
	rows      map[string]item
	err       error
	lastQuery itemQuery
}

func newStubStorer() *stubStorer {
	return &stubStorer{rows: map[string]item{}}
}

func (s *stubStorer) get(k itemUnique) (item, error) {
	if s.err != nil {
		return item{}, s.err
	}
	if k.ID == nil {
		return item{}, repositories.ErrInvalidInput
	}
	it, ok := s.rows[*k.ID]
	if !ok {
		return item{}, repositories.ErrNotFound
	}
	return it, nil
}

func (s *stubStorer) FindUnique(ctx context.Context, where itemUnique, omit []fop.Field) (item, error) {
	return s.get(where)
}

func (s *stubStorer) FindMany(ctx context.Context, q itemQuery) ([]item, error) {
	s.lastQuery = q
	if s.err != nil {
		return nil, s.err
	}
	var out []item
	for _, it := range s.rows {
		out = append(out, it)
	}
	return out, nil
}

func (s *stubStorer) Create(ctx context.Context, in createItem) (item, error) {
	if s.err != nil {
		return item{}, s.err
	}
	if _, ok := s.rows[in.ID]; ok {
		return item{}, fmt.Errorf("%w: items_pkey", repositories.ErrUniqueViolation)
	}
	it := item{ID: in.ID, Name: in.Name}
	s.rows[in.ID] = it
	return it, nil
}

func (s *stubStorer) CreateMany(ctx context.Context, in []createItem, skip bool) (int64, error) {
	var n int64
	for _, c := range in {
		if _, err := s.Create(ctx, c); err != nil {
			if skip && errors.Is(err, repositories.ErrUniqueViolation) {
				continue
			}
			return n, err
		}
		n++
	}
	return n, nil
}

func (s *stubStorer) Update(ctx context.Context, where itemUnique, in updateItem) (item, error) {
	it, err := s.get(where)
	if err != nil {
		return item{}, err
	}
	if in.Name != nil {
		it.Name = *in.Name
	}
	s.rows[it.ID] = it
	return it, nil
}

func (s *stubStorer) UpdateMany(ctx context.Context, where itemWhere, in updateItem) (int64, error) {
	return int64(len(s.rows)), s.err
}

func (s *stubStorer) Upsert(ctx context.Context, where itemUnique, c createItem, u updateItem) (item, error) {
	it, err := s.Update(ctx, where, u)
	if errors.Is(err, repositories.ErrNotFound) {
		return s.Create(ctx, c)
	}
	return it, err
}

func (s *stubStorer) Delete(ctx context.Context, where itemUnique) (item, error) {
	it, err := s.get(where)
	if err != nil {
		return item{}, err
	}
	delete(s.rows, it.ID)
	return it, nil
}

func (s *stubStorer) DeleteMany(ctx context.Context, where itemWhere) (int64, error) {
	n := int64(len(s.rows))
	s.rows = map[string]item{}
	return n, s.err
}

func (s *stubStorer) Count(ctx context.Context, where itemWhere) (int64, error) {
	return int64(len(s.rows)), s.err
}

func (s *stubStorer) Aggregate(ctx context.Context, where itemWhere, agg fop.Aggregate) (fop.AggregateResult, error) {
	return fop.AggregateResult{Count: map[fop.Field]int64{fop.CountAll: int64(len(s.rows))}}, s.err
}

func (s *stubStorer) GroupBy(ctx context.Context, g fop.GroupBy[itemWhere]) ([]fop.GroupRow, error) {
	return nil, s.err
}

func (s *stubStorer) FindRaw(ctx context.Context, opts fop.RawFind) ([]map[string]any, error) {
	return nil, s.err
}

func (s *stubStorer) AggregateRaw(ctx context.Context, p fop.RawPipeline) ([]map[string]any, error) {
	return nil, s.err
}

func newRepo(s *stubStorer, opts ...repositories.Option) *repositories.Repository[item, createItem, updateItem, itemWhere, itemUnique] {
	return repositories.NewRepository[item, createItem, updateItem, itemWhere, itemUnique](logger.NewDiscard(), s, "Item", opts...)
}

func id(s string) itemUnique { return itemUnique{ID: &s} }

// ============================================================================
// Tests
// ============================================================================

func TestFindUniqueAbsentIsNil(t *testing.T) {
	repo := newRepo(newStubStorer())

	got, err := repo.FindUnique(context.Background(), id("missing"))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFindUniqueOrThrow(t *testing.T) {
	s := newStubStorer()
	s.rows["a"] = item{ID: "a", Name: "Dune"}
	repo := newRepo(s)

	got, err := repo.FindUniqueOrThrow(context.Background(), id("a"))
	require.NoError(t, err)
	assert.Equal(t, "Dune", got.Name)

	_, err = repo.FindUniqueOrThrow(context.Background(), id("missing"))
	require.ErrorIs(t, err, repositories.ErrNotFound)
	assert.True(t, repositories.IsNotFound(err))

	var nf *repositories.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Item", nf.Model)
	assert.Equal(t, "findUniqueOrThrow", nf.Operation)
}

func TestFindFirstLimitsToOneRow(t *testing.T) {
	s := newStubStorer()
	repo := newRepo(s)

	got, err := repo.FindFirst(context.Background(), itemQuery{Take: fop.Take(10)})
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, 1, *s.lastQuery.Take)

	_, err = repo.FindFirst(context.Background(), itemQuery{Take: fop.Take(-3)})
	require.NoError(t, err)
	assert.Equal(t, -1, *s.lastQuery.Take)

	_, err = repo.FindFirstOrThrow(context.Background(), itemQuery{})
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestFindManyNeverNil(t *testing.T) {
	got, err := newRepo(newStubStorer()).FindMany(context.Background(), itemQuery{})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCreateValidates(t *testing.T) {
	s := newStubStorer()
	repo := newRepo(s)

	_, err := repo.Create(context.Background(), createItem{ID: "a"})
	require.Error(t, err)
	assert.True(t, repositories.IsValidation(err))
	assert.ErrorIs(t, err, repositories.ErrInvalidInput)
	assert.Contains(t, err.Error(), "name")
	assert.Empty(t, s.rows)

	_, err = repo.CreateMany(context.Background(), []createItem{{ID: "a", Name: "x"}, {ID: "b"}}, false)
	assert.True(t, repositories.IsValidation(err))
	assert.Empty(t, s.rows)
}

func TestCreateUniqueViolation(t *testing.T) {
	s := newStubStorer()
	repo := newRepo(s)

	_, err := repo.Create(context.Background(), createItem{ID: "a", Name: "Dune"})
	require.NoError(t, err)

	_, err = repo.Create(context.Background(), createItem{ID: "a", Name: "Emma"})
	require.Error(t, err)
	assert.True(t, repositories.IsUniqueViolation(err))
	assert.False(t, repositories.IsForeignKeyViolation(err))

	n, err := repo.CreateMany(context.Background(), []createItem{{ID: "a", Name: "x"}, {ID: "b", Name: "y"}}, true)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestUpdateAndDeleteVanishedRow(t *testing.T) {
	repo := newRepo(newStubStorer())
	name := "x"

	_, err := repo.Update(context.Background(), id("gone"), updateItem{Name: &name})
	var nf *repositories.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "update", nf.Operation)

	_, err = repo.Delete(context.Background(), id("gone"))
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "delete", nf.Operation)
}

func TestUpsert(t *testing.T) {
	s := newStubStorer()
	repo := newRepo(s)
	name := "renamed"

	created, err := repo.Upsert(context.Background(), id("a"), createItem{ID: "a", Name: "Dune"}, updateItem{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Dune", created.Name)

	updated, err := repo.Upsert(context.Background(), id("a"), createItem{ID: "a", Name: "Dune"}, updateItem{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Name)
	assert.Len(t, s.rows, 1)
}

func TestStoreErrorKinds(t *testing.T) {
	tests := []struct {
		err  error
		kind repositories.ErrorKind
	}{
		{fmt.Errorf("%w: boom", repositories.ErrConnection), repositories.KindConnection},
		{fmt.Errorf("%w: fk", repositories.ErrForeignKeyViolation), repositories.KindForeignKey},
		{fmt.Errorf("%w: slow", repositories.ErrTransaction), repositories.KindTransaction},
		{errors.New("weird"), repositories.KindUnknown},
	}

	for _, tt := range tests {
		s := newStubStorer()
		s.err = tt.err
		_, err := newRepo(s).Count(context.Background(), itemWhere{})

		var se *repositories.StoreError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, tt.kind, se.Kind)
		assert.Equal(t, "count", se.Operation)
		assert.ErrorIs(t, err, tt.err)
	}

	s := newStubStorer()
	s.err = errors.New("syntax error")
	_, err := newRepo(s).FindRaw(context.Background(), fop.RawFind{Filter: "nope"})
	var se *repositories.StoreError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, repositories.KindRaw, se.Kind)
}

func TestErrorFormats(t *testing.T) {
	s := newStubStorer()
	s.err = errors.New("connection reset")

	_, err := newRepo(s, repositories.WithErrorFormat(repositories.FormatMinimal)).Count(context.Background(), itemWhere{})
	assert.Equal(t, "connection reset", err.Error())

	_, err = newRepo(s, repositories.WithErrorFormat(repositories.FormatColorless)).Count(context.Background(), itemWhere{})
	assert.Equal(t, "Invalid `item.count()` invocation: unknown: connection reset", err.Error())

	_, err = newRepo(s, repositories.WithErrorFormat(repositories.FormatPretty)).Count(context.Background(), itemWhere{})
	assert.True(t, strings.HasPrefix(err.Error(), "\x1b[31m"))

	f, err := repositories.ParseErrorFormat("Pretty")
	require.NoError(t, err)
	assert.Equal(t, repositories.FormatPretty, f)
	_, err = repositories.ParseErrorFormat("loud")
	assert.Error(t, err)
}
