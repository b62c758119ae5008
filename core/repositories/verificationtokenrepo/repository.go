package verificationtokenrepo

import (
	"context"
	"fmt"
	"time"

	"github.com/alisideas/bookshare/core/repositories"
	"github.com/alisideas/bookshare/core/scaffolding/fop"
	"github.com/alisideas/bookshare/sdk/cryptids"
	"github.com/alisideas/bookshare/sdk/logger"
)

// Storer defines the data storage interface for VerificationToken.
type Storer interface {
	repositories.Storer[VerificationToken, CreateVerificationToken, UpdateVerificationToken, Where, WhereUnique]
}

// Repository provides access to verification token storage.
type Repository struct {
	*repositories.Repository[VerificationToken, CreateVerificationToken, UpdateVerificationToken, Where, WhereUnique]
	log *logger.Logger
}

// NewRepository creates a new VerificationToken repository
func NewRepository(log *logger.Logger, storer Storer, opts ...repositories.Option) *Repository {
	return &Repository{
		Repository: repositories.NewRepository[VerificationToken, CreateVerificationToken, UpdateVerificationToken, Where, WhereUnique](log, storer, Model, opts...),
		log:        log,
	}
}

// Issue stores a fresh random token for identifier, valid for ttl.
func (r *Repository) Issue(ctx context.Context, identifier string, ttl time.Duration) (VerificationToken, error) {
	token, err := cryptids.GenerateToken()
	if err != nil {
		return VerificationToken{}, fmt.Errorf("generate token: %w", err)
	}

	return r.Create(ctx, CreateVerificationToken{
		Identifier: identifier,
		Token:      token,
		Expires:    time.Now().Add(ttl).UTC(),
	})
}

// Consume deletes the token and returns it. A token expired at now is
// deleted as well but reported as not found.
func (r *Repository) Consume(ctx context.Context, identifier, token string, now time.Time) (VerificationToken, error) {
	vt, err := r.Delete(ctx, ByIdentifierToken(identifier, token))
	if err != nil {
		return VerificationToken{}, err
	}

	if !vt.Expires.After(now) {
		r.log.Debug("consumed expired verification token", "identifier", identifier)
		return VerificationToken{}, &repositories.NotFoundError{Model: Model, Operation: "consume"}
	}
	return vt, nil
}

// DeleteExpired removes tokens that expired at or before now.
func (r *Repository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	return r.DeleteMany(ctx, Where{Expires: &fop.DateTimeFilter{Lte: &now}})
}
