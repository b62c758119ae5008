package accountrepo

import (
	"context"

	"github.com/alisideas/bookshare/core/repositories"
	"github.com/alisideas/bookshare/core/scaffolding/fop"
	"github.com/alisideas/bookshare/sdk/logger"
)

// Storer defines the data storage interface for Account.
type Storer interface {
	repositories.Storer[Account, CreateAccount, UpdateAccount, Where, WhereUnique]
}

// Repository provides access to account storage.
type Repository struct {
	*repositories.Repository[Account, CreateAccount, UpdateAccount, Where, WhereUnique]
}

// NewRepository creates a new Account repository
func NewRepository(log *logger.Logger, storer Storer, opts ...repositories.Option) *Repository {
	return &Repository{
		Repository: repositories.NewRepository[Account, CreateAccount, UpdateAccount, Where, WhereUnique](log, storer, Model, opts...),
	}
}

// ListByUser returns the accounts linked to userID, by provider.
func (r *Repository) ListByUser(ctx context.Context, userID string) ([]Account, error) {
	return r.FindMany(ctx, Query{
		Where:   Where{UserID: fop.StringEquals(userID)},
		OrderBy: []fop.Order{fop.Asc(FieldProvider)},
	})
}
