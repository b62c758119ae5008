// Package lendingcase implements borrowing and returning books: stock moves
// and Transaction records change together in one database transaction.
package lendingcase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alisideas/bookshare/core/dbclient"
	"github.com/alisideas/bookshare/core/repositories/bookrepo"
	"github.com/alisideas/bookshare/core/repositories/transactionrepo"
	"github.com/alisideas/bookshare/core/scaffolding/fop"
	"github.com/alisideas/bookshare/sdk/logger"
	"github.com/alisideas/bookshare/sdk/validation"
)

var (
	ErrOutOfStock      = errors.New("book out of stock")
	ErrAlreadyReturned = errors.New("transaction already returned")
)

// Option configures a UseCase.
type Option func(*UseCase)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(uc *UseCase) {
		uc.now = now
	}
}

// UseCase runs lending flows against a client.
type UseCase struct {
	log    *logger.Logger
	client *dbclient.Client
	now    func() time.Time
}

// New creates the lending use case.
func New(log *logger.Logger, client *dbclient.Client, opts ...Option) *UseCase {
	uc := &UseCase{log: log, client: client, now: time.Now}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Borrow takes one copy of the book for the user and records the loan.
func (uc *UseCase) Borrow(ctx context.Context, bookID, userID string) (transactionrepo.Transaction, error) {
	var loan transactionrepo.Transaction

	err := uc.client.Transaction(ctx, func(ctx context.Context, tx *dbclient.Client) error {
		taken, err := tx.Books.UpdateMany(ctx,
			bookrepo.Where{ID: fop.StringEquals(bookID), Stock: &fop.IntFilter{Gt: validation.Ptr(0)}},
			bookrepo.UpdateBook{Stock: fop.IntDecrement(1)},
		)
		if err != nil {
			return err
		}
		if taken == 0 {
			if _, err := tx.Books.FindUniqueOrThrow(ctx, bookrepo.ByID(bookID)); err != nil {
				return err
			}
			return fmt.Errorf("%w: %s", ErrOutOfStock, bookID)
		}

		issued := uc.now().UTC()
		loan, err = tx.Transactions.Create(ctx, transactionrepo.CreateTransaction{
			BookID:    bookID,
			UserID:    userID,
			IssueDate: &issued,
			Status:    transactionrepo.StatusBorrowed,
		})
		return err
	})
	if err != nil {
		return transactionrepo.Transaction{}, fmt.Errorf("borrow: %w", err)
	}

	uc.log.InfoContext(ctx, "book borrowed", "book_id", bookID, "user_id", userID, "transaction_id", loan.ID)
	return loan, nil
}

// Return closes the loan and puts the copy back in stock.
func (uc *UseCase) Return(ctx context.Context, transactionID string) (transactionrepo.Transaction, error) {
	var loan transactionrepo.Transaction

	err := uc.client.Transaction(ctx, func(ctx context.Context, tx *dbclient.Client) error {
		returned := uc.now().UTC()
		closed, err := tx.Transactions.UpdateMany(ctx,
			transactionrepo.Where{
				ID:         fop.StringEquals(transactionID),
				ReturnDate: fop.IsNull[time.Time](true),
			},
			transactionrepo.UpdateTransaction{
				ReturnDate: fop.Set(returned),
				Status:     validation.Ptr(transactionrepo.StatusReturned),
			},
		)
		if err != nil {
			return err
		}

		loan, err = tx.Transactions.FindUniqueOrThrow(ctx, transactionrepo.ByID(transactionID))
		if err != nil {
			return err
		}
		if closed == 0 {
			return fmt.Errorf("%w: %s", ErrAlreadyReturned, transactionID)
		}

		_, err = tx.Books.Update(ctx, bookrepo.ByID(loan.BookID), bookrepo.UpdateBook{Stock: fop.IntIncrement(1)})
		return err
	})
	if err != nil {
		return transactionrepo.Transaction{}, fmt.Errorf("return: %w", err)
	}

	uc.log.InfoContext(ctx, "book returned", "book_id", loan.BookID, "transaction_id", loan.ID)
	return loan, nil
}

// Overdue lists open loans held longer than their book's max duration, in
// days, at now.
func (uc *UseCase) Overdue(ctx context.Context, now time.Time) ([]transactionrepo.Transaction, error) {
	open, err := uc.client.Transactions.FindMany(ctx, transactionrepo.Query{
		Where:   transactionrepo.Where{ReturnDate: fop.IsNull[time.Time](true)},
		OrderBy: []fop.Order{fop.Asc(transactionrepo.FieldIssueDate)},
	})
	if err != nil {
		return nil, fmt.Errorf("overdue: %w", err)
	}
	if len(open) == 0 {
		return open, nil
	}

	ids := make([]string, 0, len(open))
	for _, t := range open {
		ids = append(ids, t.BookID)
	}
	books, err := uc.client.Books.FindMany(ctx, bookrepo.Query{Where: bookrepo.Where{ID: fop.StringIn(ids...)}})
	if err != nil {
		return nil, fmt.Errorf("overdue: %w", err)
	}
	limits := make(map[string]time.Duration, len(books))
	for _, b := range books {
		limits[b.ID] = time.Duration(b.MaxDuration) * 24 * time.Hour
	}

	overdue := []transactionrepo.Transaction{}
	for _, t := range open {
		if now.Sub(t.IssueDate) > limits[t.BookID] {
			overdue = append(overdue, t)
		}
	}
	return overdue, nil
}
