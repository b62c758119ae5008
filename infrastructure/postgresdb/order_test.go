package postgresdb_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alisideas/bookshare/core/scaffolding/fop"
	"github.com/alisideas/bookshare/infrastructure/postgresdb"
)

func TestAddOrderByClause(t *testing.T) {
	var buf bytes.Buffer
	err := postgresdb.AddOrderByClause(&buf, []fop.Order{
		fop.Desc("stock"),
		{Field: "return_date", Direction: fop.ASC, Nulls: fop.NullsLast},
		{Field: "id"},
	})
	require.NoError(t, err)
	assert.Equal(t, ` ORDER BY "stock" DESC, "return_date" ASC NULLS LAST, "id" ASC`, buf.String())

	buf.Reset()
	require.NoError(t, postgresdb.AddOrderByClause(&buf, nil))
	assert.Empty(t, buf.String())

	assert.Error(t, postgresdb.AddOrderByClause(&buf, []fop.Order{{Field: "id", Direction: "SIDEWAYS"}}))
}

func TestAddLimitClause(t *testing.T) {
	var buf bytes.Buffer
	args := postgresdb.NewArgs()
	postgresdb.AddLimitClause(&buf, args, fop.Take(-5), 2)
	assert.Equal(t, " LIMIT @p1 OFFSET @p2", buf.String())
	assert.Equal(t, 5, args.Named()["p1"])

	buf.Reset()
	postgresdb.AddLimitClause(&buf, postgresdb.NewArgs(), nil, 0)
	assert.Empty(t, buf.String())
}

func TestWithPrimaryKey(t *testing.T) {
	orders := postgresdb.WithPrimaryKey([]fop.Order{fop.Desc("stock")}, "id")
	assert.Equal(t, []fop.Order{fop.Desc("stock"), fop.Asc("id")}, orders)

	already := []fop.Order{fop.Desc("id")}
	assert.Equal(t, already, postgresdb.WithPrimaryKey(already, "id"))
}

func TestCursorCondition(t *testing.T) {
	cond, err := postgresdb.CursorCondition([]fop.Order{fop.Desc("stock"), fop.Asc("id")})
	require.NoError(t, err)

	want := `(("stock" < (SELECT "stock" FROM cursor_row))` +
		` OR ("stock" = (SELECT "stock" FROM cursor_row) AND "id" > (SELECT "id" FROM cursor_row))` +
		` OR ("stock" = (SELECT "stock" FROM cursor_row) AND "id" = (SELECT "id" FROM cursor_row)))`
	assert.Equal(t, want, cond)

	_, err = postgresdb.CursorCondition(nil)
	assert.ErrorIs(t, err, postgresdb.ErrInvalidQuery)
}
