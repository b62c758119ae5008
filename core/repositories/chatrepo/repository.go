package chatrepo

import (
	"context"
	"time"

	"github.com/alisideas/bookshare/core/repositories"
	"github.com/alisideas/bookshare/sdk/logger"
)

// Storer defines the data storage interface for Chat.
type Storer interface {
	repositories.Storer[Chat, CreateChat, UpdateChat, Where, WhereUnique]
}

// Repository provides access to chat storage.
type Repository struct {
	*repositories.Repository[Chat, CreateChat, UpdateChat, Where, WhereUnique]
}

// NewRepository creates a new Chat repository
func NewRepository(log *logger.Logger, storer Storer, opts ...repositories.Option) *Repository {
	return &Repository{
		Repository: repositories.NewRepository[Chat, CreateChat, UpdateChat, Where, WhereUnique](log, storer, Model, opts...),
	}
}

// Touch marks the chat active at now.
func (r *Repository) Touch(ctx context.Context, id string, now time.Time) (Chat, error) {
	return r.Update(ctx, ByID(id), UpdateChat{UpdatedAt: &now})
}
