package userrepo

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/alisideas/bookshare/core/repositories"
	"github.com/alisideas/bookshare/core/scaffolding/fop"
	"github.com/alisideas/bookshare/sdk/logger"
)

// ErrInvalidCredentials is returned by Authenticate for an unknown email or
// a wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Storer defines the data storage interface for User.
type Storer interface {
	repositories.Storer[User, CreateUser, UpdateUser, Where, WhereUnique]
}

// Repository provides access to user storage.
type Repository struct {
	*repositories.Repository[User, CreateUser, UpdateUser, Where, WhereUnique]
	log *logger.Logger
}

// NewRepository creates a new User repository
func NewRepository(log *logger.Logger, storer Storer, opts ...repositories.Option) *Repository {
	return &Repository{
		Repository: repositories.NewRepository[User, CreateUser, UpdateUser, Where, WhereUnique](log, storer, Model, opts...),
		log:        log,
	}
}

// CreateWithPassword stores input with password bcrypt-hashed.
func (r *Repository) CreateWithPassword(ctx context.Context, input CreateUser, password string) (User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}
	h := string(hash)
	input.Password = &h

	return r.Create(ctx, input)
}

// SetPassword replaces the stored hash of the user.
func (r *Repository) SetPassword(ctx context.Context, where WhereUnique, password string) (User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	return r.Update(ctx, where, UpdateUser{Password: &fop.Nullable[string]{Value: string(hash)}})
}

// Authenticate returns the user owning email when password matches.
func (r *Repository) Authenticate(ctx context.Context, email, password string) (User, error) {
	user, err := r.FindUnique(ctx, ByEmail(email))
	if err != nil {
		return User{}, err
	}
	if user == nil || user.Password == nil {
		return User{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.Password), []byte(password)); err != nil {
		r.log.Debug("password mismatch", "user", user.ID)
		return User{}, ErrInvalidCredentials
	}
	return *user, nil
}
