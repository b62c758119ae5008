package pgxstore_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/alisideas/bookshare/core/repositories"
	"github.com/alisideas/bookshare/core/repositories/pgxstore"
	"github.com/alisideas/bookshare/infrastructure/postgresdb"
)

func TestMapError(t *testing.T) {
	assert.NoError(t, pgxstore.MapError(nil))
	assert.Equal(t, repositories.ErrNotFound, pgxstore.MapError(postgresdb.ErrDBNotFound))

	tests := []struct {
		in   error
		want error
	}{
		{postgresdb.HandlePgError(&pgconn.PgError{Code: "23505"}), repositories.ErrUniqueViolation},
		{postgresdb.HandlePgError(&pgconn.PgError{Code: "23503"}), repositories.ErrForeignKeyViolation},
		{postgresdb.HandlePgError(&pgconn.PgError{Code: "23502"}), repositories.ErrInvalidInput},
		{fmt.Errorf("%w: bad column", postgresdb.ErrInvalidQuery), repositories.ErrInvalidInput},
		{postgresdb.ErrHandleClosed, repositories.ErrConnection},
		{postgresdb.ErrTxTimeout, repositories.ErrTransaction},
	}
	for _, tt := range tests {
		got := pgxstore.MapError(tt.in)
		assert.ErrorIs(t, got, tt.want)
		assert.ErrorIs(t, got, tt.in)
	}

	other := errors.New("other")
	assert.Same(t, other, pgxstore.MapError(other))
}
