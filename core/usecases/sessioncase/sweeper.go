package sessioncase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/alisideas/bookshare/infrastructure/workers"
)

// sweepFailureLimit stops Run after this many failed sweeps in a row.
const sweepFailureLimit = 5

// sweep is one purge pass.
type sweep struct {
	ID     string
	At     time.Time
	Purged Purged
}

func (s sweep) GetID() string { return s.ID }

// sweeper hands out a sweep once per interval.
type sweeper struct {
	uc       *UseCase
	interval time.Duration

	mu   sync.Mutex
	next time.Time
}

func (s *sweeper) Checkout(ctx context.Context, workerID string) (sweep, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.uc.now()
	if now.Before(s.next) {
		return sweep{}, workers.ErrNoWorkAvailable
	}
	s.next = now.Add(s.interval)
	return sweep{ID: fmt.Sprintf("sweep-%d", now.UnixNano()), At: now}, nil
}

func (s *sweeper) Process(ctx context.Context, task sweep) (sweep, error) {
	purged, err := s.uc.PurgeExpired(ctx, task.At)
	if err != nil {
		return task, err
	}
	task.Purged = purged
	return task, nil
}

func (s *sweeper) Complete(ctx context.Context, task sweep, took time.Duration) error {
	s.uc.log.InfoContext(ctx, "expired rows purged",
		"sessions", task.Purged.Sessions,
		"verification_tokens", task.Purged.VerificationTokens,
		"took", took,
	)
	return nil
}

func (s *sweeper) Fail(ctx context.Context, task sweep, err error) error {
	s.uc.log.ErrorContext(ctx, "sweep failed", "sweep_id", task.ID, "error", err)
	return nil
}

// Run purges expired rows every SweepInterval until ctx ends. It returns an
// error only when sweeps keep failing.
func (uc *UseCase) Run(ctx context.Context) error {
	check := uc.cfg.SweepInterval / 4
	if check < 10*time.Millisecond {
		check = 10 * time.Millisecond
	}

	pool := workers.New[sweep](
		&sweeper{uc: uc, interval: uc.cfg.SweepInterval},
		uc.cfg.Sweeper,
		workers.WithName("session-sweeper"),
		workers.WithLogger(uc.log),
		workers.WithPollInterval(check),
		workers.WithIdleInterval(check),
		workers.WithMiddleware(shutdownAfterFailures(sweepFailureLimit)),
	)
	pool.AddPostProcessHooks(workers.LogOutcomeHook[sweep](uc.log))

	if err := pool.Start(ctx); err != nil {
		return fmt.Errorf("session sweeper: %w", err)
	}
	return nil
}

// shutdownAfterFailures stops the pool once limit sweeps in a row have
// failed, carrying the last sweep error.
func shutdownAfterFailures(limit int) workers.Middleware {
	stop := workers.ConsecutiveErrorShutdown(limit - 1)

	var mu sync.Mutex
	last := make(map[string]error)

	return func(next workers.WorkFunc) workers.WorkFunc {
		record := func(ctx context.Context, workerID string) error {
			err := next(ctx, workerID)
			mu.Lock()
			last[workerID] = err
			mu.Unlock()
			return err
		}
		guarded := stop(record)

		return func(ctx context.Context, workerID string) error {
			err := guarded(ctx, workerID)
			if !errors.Is(err, workers.ErrWorkerShutdown) {
				return err
			}
			mu.Lock()
			cause := last[workerID]
			mu.Unlock()
			return fmt.Errorf("%w: %d sweeps failed in a row: %w", workers.ErrPoolShutdown, limit, cause)
		}
	}
}
