package transactionrepo

import (
	"context"
	"time"

	"github.com/alisideas/bookshare/core/repositories"
	"github.com/alisideas/bookshare/core/scaffolding/fop"
	"github.com/alisideas/bookshare/sdk/logger"
)

// Storer defines the data storage interface for Transaction.
type Storer interface {
	repositories.Storer[Transaction, CreateTransaction, UpdateTransaction, Where, WhereUnique]
}

// Repository provides access to transaction storage.
type Repository struct {
	*repositories.Repository[Transaction, CreateTransaction, UpdateTransaction, Where, WhereUnique]
}

// NewRepository creates a new Transaction repository
func NewRepository(log *logger.Logger, storer Storer, opts ...repositories.Option) *Repository {
	return &Repository{
		Repository: repositories.NewRepository[Transaction, CreateTransaction, UpdateTransaction, Where, WhereUnique](log, storer, Model, opts...),
	}
}

// ListOpenByUser returns the user's transactions not yet returned, oldest
// issue first.
func (r *Repository) ListOpenByUser(ctx context.Context, userID string) ([]Transaction, error) {
	return r.FindMany(ctx, Query{
		Where: Where{
			UserID:     fop.StringEquals(userID),
			ReturnDate: fop.IsNull[time.Time](true),
		},
		OrderBy: []fop.Order{fop.Asc(FieldIssueDate)},
	})
}

// ListOverdue returns open transactions issued before cutoff.
func (r *Repository) ListOverdue(ctx context.Context, cutoff time.Time) ([]Transaction, error) {
	return r.FindMany(ctx, Query{
		Where: Where{
			IssueDate:  fop.Before(cutoff),
			ReturnDate: fop.IsNull[time.Time](true),
		},
		OrderBy: []fop.Order{fop.Asc(FieldIssueDate)},
	})
}
