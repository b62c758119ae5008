package messagerepo

import (
	"context"

	"github.com/alisideas/bookshare/core/repositories"
	"github.com/alisideas/bookshare/core/scaffolding/fop"
	"github.com/alisideas/bookshare/sdk/logger"
)

// Storer defines the data storage interface for Message.
type Storer interface {
	repositories.Storer[Message, CreateMessage, UpdateMessage, Where, WhereUnique]
}

// Repository provides access to message storage.
type Repository struct {
	*repositories.Repository[Message, CreateMessage, UpdateMessage, Where, WhereUnique]
}

// NewRepository creates a new Message repository
func NewRepository(log *logger.Logger, storer Storer, opts ...repositories.Option) *Repository {
	return &Repository{
		Repository: repositories.NewRepository[Message, CreateMessage, UpdateMessage, Where, WhereUnique](log, storer, Model, opts...),
	}
}

// ListByChat pages through a chat's messages in send order. A cursor
// message id continues after that message.
func (r *Repository) ListByChat(ctx context.Context, chatID string, after *string, limit int) ([]Message, error) {
	q := Query{
		Where:   Where{ChatID: fop.StringEquals(chatID)},
		OrderBy: []fop.Order{fop.Asc(FieldTimestamp)},
		Take:    fop.Take(limit),
	}
	if after != nil {
		q.Cursor = &WhereUnique{ID: after}
		q.Skip = 1
	}
	return r.FindMany(ctx, q)
}
