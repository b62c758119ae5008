package fop_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alisideas/bookshare/core/scaffolding/fop"
)

func TestParsePage(t *testing.T) {
	p, err := fop.ParsePage("", "")
	require.NoError(t, err)
	assert.Equal(t, fop.Page{Limit: 20}, p)

	p, err = fop.ParsePage("50", "100")
	require.NoError(t, err)
	assert.Equal(t, fop.Page{Limit: 50, Skip: 100}, p)

	for _, tc := range []struct{ limit, skip string }{
		{"0", ""}, {"101", ""}, {"abc", ""}, {"10", "-1"}, {"10", "x"},
	} {
		_, err := fop.ParsePage(tc.limit, tc.skip)
		assert.Error(t, err, "limit=%q skip=%q", tc.limit, tc.skip)
	}
}

func TestOrderReverse(t *testing.T) {
	o := fop.Order{Field: "stock", Direction: fop.ASC, Nulls: fop.NullsFirst}
	r := o.Reverse()
	assert.Equal(t, fop.DESC, r.Direction)
	assert.Equal(t, fop.NullsLast, r.Nulls)
	assert.Equal(t, o, r.Reverse())
	assert.Equal(t, fop.ASC, fop.Order{Field: "id"}.Reverse().Reverse().Direction)
}

func TestFilterHelpers(t *testing.T) {
	f := fop.Between(1, 5)
	assert.Equal(t, 1, *f.Gte)
	assert.Equal(t, 5, *f.Lte)

	s := fop.StringContains("go", fop.ModeInsensitive)
	assert.Equal(t, "go", *s.Contains)
	assert.Equal(t, fop.ModeInsensitive, s.Mode)

	n := fop.IsNull[int](true)
	assert.True(t, *n.IsNull)
}

func TestAggregateResultSumInt(t *testing.T) {
	r := fop.AggregateResult{Sum: map[fop.Field]any{"stock": int64(7), "total": int32(3)}}
	assert.EqualValues(t, 7, r.SumInt("stock"))
	assert.EqualValues(t, 3, r.SumInt("total"))
	assert.Zero(t, r.SumInt("missing"))
	assert.True(t, fop.Aggregate{}.Empty())
}
