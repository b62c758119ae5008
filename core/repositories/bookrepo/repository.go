package bookrepo

import (
	"context"

	"github.com/alisideas/bookshare/core/repositories"
	"github.com/alisideas/bookshare/core/scaffolding/fop"
	"github.com/alisideas/bookshare/sdk/logger"
)

// Storer defines the data storage interface for Book.
type Storer interface {
	repositories.Storer[Book, CreateBook, UpdateBook, Where, WhereUnique]
}

// Repository provides access to book storage.
type Repository struct {
	*repositories.Repository[Book, CreateBook, UpdateBook, Where, WhereUnique]
}

// NewRepository creates a new Book repository
func NewRepository(log *logger.Logger, storer Storer, opts ...repositories.Option) *Repository {
	return &Repository{
		Repository: repositories.NewRepository[Book, CreateBook, UpdateBook, Where, WhereUnique](log, storer, Model, opts...),
	}
}

// ListByOwner pages through the books of ownerID, newest first.
func (r *Repository) ListByOwner(ctx context.Context, ownerID string, page fop.Page) ([]Book, error) {
	return r.FindMany(ctx, Query{
		Where:   Where{OwnerID: fop.StringEquals(ownerID)},
		OrderBy: []fop.Order{fop.Desc(FieldCreatedAt)},
		Take:    fop.Take(page.Limit),
		Skip:    page.Skip,
	})
}

// Search pages through books whose title or author contains term, ignoring
// case.
func (r *Repository) Search(ctx context.Context, term string, page fop.Page) ([]Book, error) {
	return r.FindMany(ctx, Query{
		Where: Where{OR: []Where{
			{Title: fop.StringContains(term, fop.ModeInsensitive)},
			{Author: fop.StringContains(term, fop.ModeInsensitive)},
		}},
		OrderBy: []fop.Order{fop.Asc(FieldTitle)},
		Take:    fop.Take(page.Limit),
		Skip:    page.Skip,
	})
}
