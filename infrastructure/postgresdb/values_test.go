package postgresdb_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alisideas/bookshare/core/scaffolding/fop"
	"github.com/alisideas/bookshare/infrastructure/postgresdb"
)

func TestValues(t *testing.T) {
	v := postgresdb.NewValues()
	v.Set("title", "Dune")
	postgresdb.SetOpt[string](v, "role", nil)
	postgresdb.SetOpt(v, "stock", ptr(3))
	v.Set("title", "Emma")

	assert.Equal(t, []string{"title", "stock"}, v.Columns())
	got, ok := v.Get("title")
	assert.True(t, ok)
	assert.Equal(t, "Emma", got)
	_, ok = v.Get("role")
	assert.False(t, ok)
}

func TestAssignments(t *testing.T) {
	args := postgresdb.NewArgs()
	a := postgresdb.NewAssignments(args)

	postgresdb.Assign(a, "title", ptr("Dune"))
	postgresdb.Assign[string](a, "author", nil)
	postgresdb.AssignNullable(a, "return_date", fop.SetNull[string]())
	a.Int("stock", fop.IntDecrement(1))
	a.Int("total", nil)
	a.Now("updated_at")

	require.NoError(t, a.Err())
	assert.Equal(t, 4, a.Len())
	assert.Equal(t, "Dune", args.Named()["p1"])
	assert.Nil(t, args.Named()["p2"])
	assert.Equal(t, 1, args.Named()["p3"])
	assert.Equal(t, `"title" = @p1, "return_date" = @p2, "stock" = "stock" - @p3, "updated_at" = now()`, a.Clause())
	assert.True(t, a.Has("stock"))
	assert.False(t, a.Has("total"))
}

func TestAssignmentsIntOperators(t *testing.T) {
	tests := []struct {
		name string
		u    *fop.IntUpdate
		want string
	}{
		{"set", &fop.IntUpdate{Set: ptr(7)}, `"stock" = @p1`},
		{"increment", fop.IntIncrement(2), `"stock" = "stock" + @p1`},
		{"decrement", fop.IntDecrement(2), `"stock" = "stock" - @p1`},
		{"multiply", &fop.IntUpdate{Multiply: ptr(2)}, `"stock" = "stock" * @p1`},
		{"divide", &fop.IntUpdate{Divide: ptr(2)}, `"stock" = "stock" / @p1`},
		{"empty", &fop.IntUpdate{}, ``},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := postgresdb.NewAssignments(postgresdb.NewArgs())
			a.Int("stock", tt.u)
			require.NoError(t, a.Err())
			assert.Equal(t, tt.want, a.Clause())
		})
	}
}

func TestAssignmentsRejectsBadColumn(t *testing.T) {
	a := postgresdb.NewAssignments(postgresdb.NewArgs())
	a.Set("bad column", 1)
	assert.ErrorIs(t, a.Err(), postgresdb.ErrInvalidQuery)
	assert.Equal(t, 0, a.Len())
}
