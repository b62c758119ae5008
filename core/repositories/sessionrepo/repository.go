package sessionrepo

import (
	"context"
	"time"

	"github.com/alisideas/bookshare/core/repositories"
	"github.com/alisideas/bookshare/core/scaffolding/fop"
	"github.com/alisideas/bookshare/sdk/logger"
)

// Storer defines the data storage interface for Session.
type Storer interface {
	repositories.Storer[Session, CreateSession, UpdateSession, Where, WhereUnique]
}

// Repository provides access to session storage.
type Repository struct {
	*repositories.Repository[Session, CreateSession, UpdateSession, Where, WhereUnique]
}

// NewRepository creates a new Session repository
func NewRepository(log *logger.Logger, storer Storer, opts ...repositories.Option) *Repository {
	return &Repository{
		Repository: repositories.NewRepository[Session, CreateSession, UpdateSession, Where, WhereUnique](log, storer, Model, opts...),
	}
}

// FindValid returns the session for token unless it is missing or expired at
// now; both cases return nil.
func (r *Repository) FindValid(ctx context.Context, token string, now time.Time) (*Session, error) {
	session, err := r.FindUnique(ctx, ByToken(token))
	if err != nil || session == nil {
		return nil, err
	}
	if !session.Expires.After(now) {
		return nil, nil
	}
	return session, nil
}

// DeleteExpired removes sessions that expired at or before now.
func (r *Repository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	return r.DeleteMany(ctx, Where{Expires: &fop.DateTimeFilter{Lte: &now}})
}
