package postgresdb_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alisideas/bookshare/core/scaffolding/fop"
	"github.com/alisideas/bookshare/infrastructure/postgresdb"
)

func ptr[T any](v T) *T { return &v }

func TestWhereScalar(t *testing.T) {
	args := postgresdb.NewArgs()
	w := postgresdb.NewWhere(args)

	w.Int("stock", &fop.IntFilter{Gt: ptr(0), Lte: ptr(10)})
	w.NullableTime("return_date", fop.IsNull[time.Time](true))

	require.NoError(t, w.Err())
	assert.Equal(t, `"stock" <= @p1 AND "stock" > @p2 AND "return_date" IS NULL`, w.SQL())
	assert.Equal(t, 10, args.Named()["p1"])
	assert.Equal(t, 0, args.Named()["p2"])
}

func TestWhereEmpty(t *testing.T) {
	w := postgresdb.NewWhere(postgresdb.NewArgs())
	w.Int("stock", nil)
	w.String("title", nil)
	assert.Equal(t, "", w.Clause())
	assert.Equal(t, 0, w.Len())
}

func TestWhereInLists(t *testing.T) {
	args := postgresdb.NewArgs()
	w := postgresdb.NewWhere(args)

	w.String("status", &fop.StringFilter{In: []string{"borrowed", "returned"}})
	w.Int("stock", &fop.IntFilter{In: []int{}})
	w.Int("total", &fop.IntFilter{NotIn: []int{1, 2}})

	assert.Equal(t, `"status" = ANY(@p1) AND FALSE AND NOT ("total" = ANY(@p2))`, w.SQL())
	assert.Equal(t, []string{"borrowed", "returned"}, args.Named()["p1"])
}

func TestWhereStringModes(t *testing.T) {
	args := postgresdb.NewArgs()
	w := postgresdb.NewWhere(args)

	w.String("title", fop.StringContains("50%_off", fop.ModeInsensitive))
	w.String("author", &fop.StringFilter{Equals: ptr("Le Guin"), Mode: fop.ModeInsensitive})
	w.String("category", fop.StringStartsWith("sci", fop.ModeDefault))

	assert.Equal(t,
		`"title" ILIKE @p1 AND LOWER("author") = LOWER(@p2) AND "category" LIKE @p3`,
		w.SQL())
	assert.Equal(t, `%50\%\_off%`, args.Named()["p1"])
	assert.Equal(t, "sci%", args.Named()["p3"])
}

func TestWhereNot(t *testing.T) {
	args := postgresdb.NewArgs()
	w := postgresdb.NewWhere(args)

	w.String("status", &fop.StringFilter{Not: &fop.StringFilter{Equals: ptr("returned")}})
	w.Int("stock", &fop.IntFilter{Not: &fop.IntFilter{}})

	assert.Equal(t, `NOT ("status" = @p1)`, w.SQL())
}

type filter struct {
	Title *fop.StringFilter
	Stock *fop.IntFilter
	AND   []filter
	OR    []filter
	NOT   []filter
}

func compile(f filter, w *postgresdb.Where) {
	w.String("title", f.Title)
	w.Int("stock", f.Stock)
	postgresdb.And(w, f.AND, compile)
	postgresdb.Or(w, f.OR, compile)
	postgresdb.Not(w, f.NOT, compile)
}

func TestWhereGroups(t *testing.T) {
	args := postgresdb.NewArgs()
	w := postgresdb.NewWhere(args)

	compile(filter{
		OR: []filter{
			{Title: fop.StringEquals("Dune")},
			{Stock: fop.Eq(0), Title: fop.StringEquals("Emma")},
		},
		NOT: []filter{{Stock: fop.Eq(3)}},
		AND: []filter{{}},
	}, w)

	require.NoError(t, w.Err())
	assert.Equal(t,
		`(("title" = @p1) OR ("title" = @p2 AND "stock" = @p3)) AND NOT ("stock" = @p4)`,
		w.SQL())
	assert.Len(t, args.Named(), 4)
}

func TestWhereRejectsBadColumn(t *testing.T) {
	w := postgresdb.NewWhere(postgresdb.NewArgs())
	w.Equals(`id"; DROP TABLE users; --`, "x")
	assert.ErrorIs(t, w.Err(), postgresdb.ErrInvalidQuery)
	assert.Equal(t, 0, w.Len())
}

func TestQuoteIdentifier(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "title", want: `"title"`},
		{in: "public.books", want: `"public"."books"`},
		{in: "_count", want: `"_count"`},
		{in: "a.b.c", wantErr: true},
		{in: "title;", wantErr: true},
		{in: "ti tle", wantErr: true},
		{in: "", wantErr: true},
		{in: `x"y`, wantErr: true},
	}

	for _, tt := range tests {
		got, err := postgresdb.QuoteIdentifier(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `a\%b\_c\\d`, postgresdb.EscapeLike(`a%b_c\d`))
}
