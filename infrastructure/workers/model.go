package workers

import (
	"context"
	"time"
)

// Task is one unit of work handed out by a Processor.
type Task interface {
	GetID() string
}

// Processor supplies and settles tasks for a WorkerPool.
type Processor[T Task] interface {
	// Checkout returns the next due task or ErrNoWorkAvailable. Concurrent
	// workers must never receive the same task.
	Checkout(ctx context.Context, workerID string) (T, error)

	// Process runs the task and returns it with its outcome recorded.
	Process(ctx context.Context, task T) (T, error)

	// Complete settles a processed task.
	Complete(ctx context.Context, task T, took time.Duration) error

	// Fail settles a task whose processing failed or panicked.
	Fail(ctx context.Context, task T, err error) error
}

// WorkFunc is one checkout-process-settle round of a worker.
type WorkFunc func(ctx context.Context, workerID string) error

// Middleware wraps a WorkFunc.
type Middleware func(WorkFunc) WorkFunc

// PreProcessHook runs after checkout, before Process.
type PreProcessHook[T Task] func(ctx context.Context, task T) error

// PostProcessHook runs after Process, before Complete or Fail.
type PostProcessHook[T Task] func(ctx context.Context, task T, err error) error
