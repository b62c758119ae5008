package lendingcase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alisideas/bookshare/core/dbclient"
	"github.com/alisideas/bookshare/core/dbclient/dbclienttest"
	"github.com/alisideas/bookshare/core/repositories"
	"github.com/alisideas/bookshare/core/repositories/bookrepo"
	"github.com/alisideas/bookshare/core/repositories/transactionrepo"
	"github.com/alisideas/bookshare/core/repositories/userrepo"
	"github.com/alisideas/bookshare/core/usecases/lendingcase"
	"github.com/alisideas/bookshare/sdk/logger"
	"github.com/alisideas/bookshare/sdk/validation"
)

func setup(t *testing.T, schema string, stock int) (*dbclient.Client, userrepo.User, bookrepo.Book) {
	t.Helper()
	c := dbclienttest.New(t, schema)
	ctx := context.Background()

	u, err := c.Users.Create(ctx, userrepo.CreateUser{Email: validation.Ptr("reader@x.com")})
	require.NoError(t, err)

	b, err := c.Books.Create(ctx, bookrepo.CreateBook{
		Title:       "Dune",
		Author:      "Frank Herbert",
		Category:    "fiction",
		Stock:       stock,
		Total:       stock,
		MaxDuration: 14,
		OwnerID:     u.ID,
	})
	require.NoError(t, err)
	return c, u, b
}

func stockOf(t *testing.T, c *dbclient.Client, bookID string) int {
	t.Helper()
	b, err := c.Books.FindUniqueOrThrow(context.Background(), bookrepo.ByID(bookID))
	require.NoError(t, err)
	return b.Stock
}

func TestBorrowAndReturn(t *testing.T) {
	c, u, b := setup(t, "uc_lending", 1)
	uc := lendingcase.New(logger.NewDiscard(), c)
	ctx := context.Background()

	loan, err := uc.Borrow(ctx, b.ID, u.ID)
	require.NoError(t, err)
	assert.Equal(t, transactionrepo.StatusBorrowed, loan.Status)
	assert.Nil(t, loan.ReturnDate)
	assert.Equal(t, 0, stockOf(t, c, b.ID))

	_, err = uc.Borrow(ctx, b.ID, u.ID)
	require.ErrorIs(t, err, lendingcase.ErrOutOfStock)
	assert.Equal(t, 0, stockOf(t, c, b.ID))

	returned, err := uc.Return(ctx, loan.ID)
	require.NoError(t, err)
	assert.Equal(t, transactionrepo.StatusReturned, returned.Status)
	require.NotNil(t, returned.ReturnDate)
	assert.Equal(t, 1, stockOf(t, c, b.ID))

	_, err = uc.Return(ctx, loan.ID)
	require.ErrorIs(t, err, lendingcase.ErrAlreadyReturned)
	assert.Equal(t, 1, stockOf(t, c, b.ID))

	open, err := c.Transactions.ListOpenByUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, open)
}

func TestBorrowFailuresRollBack(t *testing.T) {
	c, _, b := setup(t, "uc_lending_rollback", 2)
	uc := lendingcase.New(logger.NewDiscard(), c)
	ctx := context.Background()

	_, err := uc.Borrow(ctx, "missing-book", "missing-user")
	assert.True(t, repositories.IsNotFound(err))

	_, err = uc.Borrow(ctx, b.ID, "missing-user")
	assert.True(t, repositories.IsForeignKeyViolation(err))
	assert.Equal(t, 2, stockOf(t, c, b.ID))

	n, err := c.Transactions.Count(ctx, transactionrepo.Where{})
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = uc.Return(ctx, "missing-loan")
	assert.True(t, repositories.IsNotFound(err))
}

func TestOverdue(t *testing.T) {
	c, u, b := setup(t, "uc_lending_overdue", 3)
	ctx := context.Background()

	issued := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	uc := lendingcase.New(logger.NewDiscard(), c, lendingcase.WithClock(func() time.Time { return issued }))

	loan, err := uc.Borrow(ctx, b.ID, u.ID)
	require.NoError(t, err)

	late, err := uc.Overdue(ctx, issued.Add(10*24*time.Hour))
	require.NoError(t, err)
	assert.Empty(t, late)

	late, err = uc.Overdue(ctx, issued.Add(15*24*time.Hour))
	require.NoError(t, err)
	require.Len(t, late, 1)
	assert.Equal(t, loan.ID, late[0].ID)

	_, err = uc.Return(ctx, loan.ID)
	require.NoError(t, err)

	late, err = uc.Overdue(ctx, issued.Add(15*24*time.Hour))
	require.NoError(t, err)
	assert.Empty(t, late)
}
