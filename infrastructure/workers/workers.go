// Package workers runs a fixed number of goroutines that repeatedly check
// out, process and settle tasks from a Processor, polling quickly while work
// flows and slowly while idle.
package workers

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/alisideas/bookshare/sdk/logger"
)

var (
	ErrWorkerShutdown  = errors.New("worker should shutdown")
	ErrPoolShutdown    = errors.New("pool should shutdown")
	ErrNoWorkAvailable = errors.New("no work available")
	ErrPoolRunning     = errors.New("pool already running")
)

// Options represents the exportable worker configuration
type Options struct {
	Name         string        `env:"WORKER_NAME" default:"worker"`
	WorkerCount  int           `env:"WORKER_COUNT" default:"1"`
	PollInterval time.Duration `env:"WORKER_POLL_INTERVAL" default:"1s"`
	IdleInterval time.Duration `env:"WORKER_IDLE_INTERVAL" default:"30s"`
	MaxRetries   int           `env:"WORKER_MAX_RETRIES" default:"1"`
}

type options struct {
	name         string
	workerCount  int
	pollInterval time.Duration
	idleInterval time.Duration
	maxRetries   int
	retryDelay   time.Duration
	middlewares  []Middleware
	log          *logger.Logger
}

// Option configures a WorkerPool.
type Option func(*options)

// WithName sets the pool name used in worker IDs and logs.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithWorkerCount sets the number of workers.
func WithWorkerCount(count int) Option {
	return func(o *options) {
		o.workerCount = count
	}
}

// WithPollInterval sets the delay between rounds while work is flowing.
func WithPollInterval(interval time.Duration) Option {
	return func(o *options) {
		o.pollInterval = interval
	}
}

// WithIdleInterval sets the delay between rounds after an idle checkout.
func WithIdleInterval(interval time.Duration) Option {
	return func(o *options) {
		o.idleInterval = interval
	}
}

// WithMaxRetries sets how many times Process is attempted per task.
func WithMaxRetries(maxRetries int) Option {
	return func(o *options) {
		o.maxRetries = maxRetries
	}
}

// WithRetryDelay sets the first backoff delay; it doubles per attempt.
func WithRetryDelay(delay time.Duration) Option {
	return func(o *options) {
		o.retryDelay = delay
	}
}

// WithMiddleware wraps every round; the first middleware is outermost.
func WithMiddleware(middlewares ...Middleware) Option {
	return func(o *options) {
		o.middlewares = append(o.middlewares, middlewares...)
	}
}

// WithLogger sets the pool logger.
func WithLogger(log *logger.Logger) Option {
	return func(o *options) {
		o.log = log
	}
}

// WorkerPool runs workers against a Processor until its context ends.
type WorkerPool[T Task] struct {
	processor    Processor[T]
	name         string
	workerCount  int
	pollInterval time.Duration
	idleInterval time.Duration
	maxRetries   int
	retryDelay   time.Duration
	log          *logger.Logger

	workFunc         WorkFunc
	middlewares      []Middleware
	preProcessHooks  []PreProcessHook[T]
	postProcessHooks []PostProcessHook[T]
	counters         counters

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	workers sync.WaitGroup
	errs    chan error
}

// New creates a pool from cfg; opts override cfg.
func New[T Task](processor Processor[T], cfg Options, opts ...Option) *WorkerPool[T] {
	o := &options{
		name:         cfg.Name,
		workerCount:  cfg.WorkerCount,
		pollInterval: cfg.PollInterval,
		idleInterval: cfg.IdleInterval,
		maxRetries:   cfg.MaxRetries,
		retryDelay:   time.Second,
	}
	for _, opt := range opts {
		opt(o)
	}

	if o.log == nil {
		o.log = logger.NewDefault()
	}
	if o.name == "" {
		o.name = "worker"
	}
	if o.workerCount <= 0 {
		o.workerCount = 1
	}
	if o.pollInterval <= 0 {
		o.pollInterval = time.Second
	}
	if o.idleInterval <= 0 {
		o.idleInterval = 30 * time.Second
	}
	if o.maxRetries <= 0 {
		o.maxRetries = 1
	}

	wp := &WorkerPool[T]{
		processor:    processor,
		name:         o.name,
		workerCount:  o.workerCount,
		pollInterval: o.pollInterval,
		idleInterval: o.idleInterval,
		maxRetries:   o.maxRetries,
		retryDelay:   o.retryDelay,
		log:          o.log,
		middlewares:  o.middlewares,
	}
	wp.buildMiddlewareChain()
	return wp
}

// Start runs the workers and blocks until ctx ends, Stop is called, or a
// worker returns ErrPoolShutdown; that error is returned.
func (wp *WorkerPool[T]) Start(ctx context.Context) error {
	wp.mu.Lock()
	if wp.running {
		wp.mu.Unlock()
		return ErrPoolRunning
	}
	ctx, wp.cancel = context.WithCancel(ctx)
	wp.running = true
	wp.errs = make(chan error, wp.workerCount)
	wp.mu.Unlock()

	defer func() {
		wp.mu.Lock()
		wp.running = false
		wp.cancel()
		wp.mu.Unlock()
	}()

	wp.counters.started.Store(time.Now().UnixNano())
	wp.log.InfoContext(ctx, "starting worker pool",
		"name", wp.name,
		"worker_count", wp.workerCount,
		"poll_interval", wp.pollInterval,
		"idle_interval", wp.idleInterval,
	)

	for i := range wp.workerCount {
		wp.workers.Add(1)
		go wp.worker(ctx, fmt.Sprintf("%s-worker-%d", wp.name, i+1))
	}

	var poolErr error
	done := make(chan struct{})
	go func() {
		wp.workers.Wait()
		close(done)
	}()

	select {
	case poolErr = <-wp.errs:
		wp.cancel()
		<-done
	case <-done:
		select {
		case poolErr = <-wp.errs:
		default:
		}
	}

	wp.log.InfoContext(context.WithoutCancel(ctx), "worker pool stopped",
		"name", wp.name,
		"runtime", wp.counters.snapshot().Uptime,
	)
	return poolErr
}

// Stop asks a running pool to finish; Start returns once workers exit.
func (wp *WorkerPool[T]) Stop() {
	wp.mu.Lock()
	defer wp.mu.Unlock()
	if wp.running && wp.cancel != nil {
		wp.log.Info("stopping worker pool", "name", wp.name)
		wp.cancel()
	}
}

// Snapshot returns the pool counters.
func (wp *WorkerPool[T]) Snapshot() Snapshot {
	return wp.counters.snapshot()
}

func (wp *WorkerPool[T]) worker(ctx context.Context, workerID string) {
	defer wp.workers.Done()
	wp.counters.workersActive.Add(1)
	defer wp.counters.workersActive.Add(-1)

	wp.log.DebugContext(ctx, "worker started", "worker_id", workerID)
	defer wp.log.DebugContext(context.WithoutCancel(ctx), "worker stopped", "worker_id", workerID)

	current := time.Millisecond
	ticker := time.NewTicker(current)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			err := wp.round(ctx, workerID)

			next := wp.pollInterval
			switch {
			case err == nil:
			case errors.Is(err, ErrPoolShutdown):
				wp.log.ErrorContext(ctx, "worker requesting pool shutdown", "worker_id", workerID, "error", err)
				select {
				case wp.errs <- fmt.Errorf("worker %s: %w", workerID, err):
				default:
				}
				return
			case errors.Is(err, ErrWorkerShutdown):
				wp.log.InfoContext(ctx, "worker shutting down as requested", "worker_id", workerID)
				return
			case errors.Is(err, ErrNoWorkAvailable):
				next = wp.idleInterval
			default:
				wp.log.ErrorContext(ctx, "work round failed", "worker_id", workerID, "error", err)
			}

			if next != current {
				current = next
				ticker.Reset(next)
			}
		}
	}
}

// round runs the middleware-wrapped work function, turning panics outside
// task processing into errors.
func (wp *WorkerPool[T]) round(ctx context.Context, workerID string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			wp.counters.panics.Add(1)
			wp.log.ErrorContext(ctx, "panic recovered in worker",
				"worker_id", workerID,
				"panic", r,
				"stack_trace", string(debug.Stack()))
			err = fmt.Errorf("panic recovered: %v", r)
		}
	}()
	return wp.workFunc(ctx, workerID)
}

// work runs Checkout, then Process with retries, then Complete or Fail.
func (wp *WorkerPool[T]) work(ctx context.Context, workerID string) (err error) {
	task, err := wp.processor.Checkout(ctx, workerID)
	if err != nil {
		if errors.Is(err, ErrNoWorkAvailable) {
			return err
		}
		return fmt.Errorf("checkout failed: %w", err)
	}
	wp.counters.tasksCheckedOut.Add(1)

	var processed T
	var processErr error
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			wp.counters.panics.Add(1)
			wp.log.ErrorContext(ctx, "panic recovered in task",
				"worker_id", workerID,
				"task_id", task.GetID(),
				"panic", r,
				"stack_trace", string(debug.Stack()))
			processErr = fmt.Errorf("panic: %v", r)
			err = fmt.Errorf("task processing error: %w", processErr)
		}
		took := time.Since(start)

		hookTask := processed
		if processErr != nil {
			hookTask = task
		}
		for _, hook := range wp.postProcessHooks {
			if hookErr := hook(ctx, hookTask, processErr); hookErr != nil {
				wp.log.ErrorContext(ctx, "post-process hook failed", "task_id", task.GetID(), "error", hookErr)
			}
		}

		if processErr != nil {
			wp.counters.tasksFailed.Add(1)
			if failErr := wp.processor.Fail(ctx, task, processErr); failErr != nil {
				wp.log.ErrorContext(ctx, "failed to settle failed task", "task_id", task.GetID(), "error", failErr)
			}
			return
		}
		wp.counters.tasksCompleted.Add(1)
		if completeErr := wp.processor.Complete(ctx, processed, took); completeErr != nil {
			wp.log.ErrorContext(ctx, "failed to settle completed task", "task_id", task.GetID(), "error", completeErr)
		}
	}()

	for _, hook := range wp.preProcessHooks {
		if hookErr := hook(ctx, task); hookErr != nil {
			wp.log.ErrorContext(ctx, "pre-process hook failed", "task_id", task.GetID(), "error", hookErr)
		}
	}

	processed, processErr = wp.processWithRetry(ctx, task)
	if processErr != nil {
		return fmt.Errorf("task processing error: %w", processErr)
	}
	return nil
}

// processWithRetry attempts Process up to maxRetries times with doubling
// backoff.
func (wp *WorkerPool[T]) processWithRetry(ctx context.Context, task T) (T, error) {
	var processed T
	var lastErr error

	for attempt := 1; attempt <= wp.maxRetries; attempt++ {
		if attempt > 1 {
			wp.counters.retryAttempts.Add(1)
			delay := wp.retryDelay * time.Duration(1<<(attempt-2))
			select {
			case <-ctx.Done():
				return processed, ctx.Err()
			case <-time.After(delay):
			}
		}

		processed, lastErr = wp.processor.Process(ctx, task)
		if lastErr == nil {
			return processed, nil
		}
		if ctx.Err() != nil {
			return processed, ctx.Err()
		}
		wp.log.WarnContext(ctx, "task attempt failed",
			"task_id", task.GetID(),
			"attempt", attempt,
			"error", lastErr)
	}

	if wp.maxRetries > 1 {
		return processed, fmt.Errorf("failed after %d attempts: %w", wp.maxRetries, lastErr)
	}
	return processed, lastErr
}
