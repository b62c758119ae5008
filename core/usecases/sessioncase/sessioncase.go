// Package sessioncase signs users in and out and keeps the session and
// verification token tables free of expired rows.
package sessioncase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alisideas/bookshare/core/dbclient"
	"github.com/alisideas/bookshare/core/repositories"
	"github.com/alisideas/bookshare/core/repositories/sessionrepo"
	"github.com/alisideas/bookshare/core/repositories/userrepo"
	"github.com/alisideas/bookshare/infrastructure/workers"
	"github.com/alisideas/bookshare/sdk/cryptids"
	"github.com/alisideas/bookshare/sdk/environment"
	"github.com/alisideas/bookshare/sdk/logger"
)

// ErrInvalidSession is returned by Validate for unknown or expired tokens.
var ErrInvalidSession = errors.New("invalid session")

// Config holds session lifetimes and the sweep cadence. Sweeper tunes the
// worker pool behind Run under SWEEPER_WORKER_*.
type Config struct {
	SessionTTL    time.Duration `env:"SESSION_TTL" default:"720h"`
	SweepInterval time.Duration `env:"SWEEP_INTERVAL" default:"10m"`

	Sweeper workers.Options `envPrefix:"SWEEPER"`
}

// LoadConfig reads Config under prefix.
func LoadConfig(prefix string) (Config, error) {
	var cfg Config
	if err := environment.ParseEnvTags(prefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing session config: %w", err)
	}
	return cfg, nil
}

// Purged counts rows removed by one sweep.
type Purged struct {
	Sessions           int64 `json:"sessions"`
	VerificationTokens int64 `json:"verificationTokens"`
}

type UseCase struct {
	log    *logger.Logger
	client *dbclient.Client
	cfg    Config
	now    func() time.Time
}

// New creates the session use case. Zero durations in cfg fall back to the
// defaults.
func New(log *logger.Logger, client *dbclient.Client, cfg Config) *UseCase {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 720 * time.Hour
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = 10 * time.Minute
	}
	return &UseCase{log: log, client: client, cfg: cfg, now: time.Now}
}

// SignIn checks the password and opens a session for the user.
func (uc *UseCase) SignIn(ctx context.Context, email, password string) (sessionrepo.Session, error) {
	user, err := uc.client.Users.Authenticate(ctx, email, password)
	if err != nil {
		return sessionrepo.Session{}, fmt.Errorf("sign in: %w", err)
	}

	token, err := cryptids.GenerateToken()
	if err != nil {
		return sessionrepo.Session{}, fmt.Errorf("generate session token: %w", err)
	}

	session, err := uc.client.Sessions.Create(ctx, sessionrepo.CreateSession{
		SessionToken: token,
		UserID:       user.ID,
		Expires:      uc.now().Add(uc.cfg.SessionTTL).UTC(),
	})
	if err != nil {
		return sessionrepo.Session{}, fmt.Errorf("sign in: %w", err)
	}

	uc.log.InfoContext(ctx, "user signed in", "user_id", user.ID)
	return session, nil
}

// Validate returns the user behind a live session token.
func (uc *UseCase) Validate(ctx context.Context, token string) (userrepo.User, error) {
	session, err := uc.client.Sessions.FindValid(ctx, token, uc.now())
	if err != nil {
		return userrepo.User{}, fmt.Errorf("validate session: %w", err)
	}
	if session == nil {
		return userrepo.User{}, ErrInvalidSession
	}

	user, err := uc.client.Users.FindUniqueOrThrow(ctx, userrepo.ByID(session.UserID))
	if err != nil {
		return userrepo.User{}, fmt.Errorf("validate session: %w", err)
	}
	return user, nil
}

// SignOut deletes the session. Unknown tokens are not an error.
func (uc *UseCase) SignOut(ctx context.Context, token string) error {
	_, err := uc.client.Sessions.Delete(ctx, sessionrepo.ByToken(token))
	if err != nil && !repositories.IsNotFound(err) {
		return fmt.Errorf("sign out: %w", err)
	}
	return nil
}

// PurgeExpired deletes sessions and verification tokens expired at now in a
// single transaction.
func (uc *UseCase) PurgeExpired(ctx context.Context, now time.Time) (Purged, error) {
	var purged Purged

	err := uc.client.Transaction(ctx, func(ctx context.Context, tx *dbclient.Client) error {
		n, err := tx.Sessions.DeleteExpired(ctx, now)
		if err != nil {
			return err
		}
		purged.Sessions = n

		n, err = tx.VerificationTokens.DeleteExpired(ctx, now)
		if err != nil {
			return err
		}
		purged.VerificationTokens = n
		return nil
	})
	if err != nil {
		return Purged{}, fmt.Errorf("purge expired: %w", err)
	}
	return purged, nil
}
