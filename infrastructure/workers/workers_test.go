package workers_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alisideas/bookshare/infrastructure/workers"
	"github.com/alisideas/bookshare/sdk/logger"
)

// ============================================================================
// Stub processor
// ============================================================================

type testTask struct {
	ID     string
	Result string
}

func (t testTask) GetID() string { return t.ID }

type stubProcessor struct {
	mu        sync.Mutex
	tasks     []testTask
	completed []testTask
	failed    []error

	attempts    atomic.Int32
	processFn   func(task testTask) (testTask, error)
	checkoutErr error
}

func (p *stubProcessor) add(ids ...string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, id := range ids {
		p.tasks = append(p.tasks, testTask{ID: id})
	}
}

func (p *stubProcessor) Checkout(ctx context.Context, workerID string) (testTask, error) {
	if p.checkoutErr != nil {
		return testTask{}, p.checkoutErr
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.tasks) == 0 {
		return testTask{}, workers.ErrNoWorkAvailable
	}
	t := p.tasks[0]
	p.tasks = p.tasks[1:]
	return t, nil
}

func (p *stubProcessor) Process(ctx context.Context, task testTask) (testTask, error) {
	p.attempts.Add(1)
	if p.processFn != nil {
		return p.processFn(task)
	}
	task.Result = "done:" + task.ID
	return task, nil
}

func (p *stubProcessor) Complete(ctx context.Context, task testTask, took time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.completed = append(p.completed, task)
	return nil
}

func (p *stubProcessor) Fail(ctx context.Context, task testTask, err error) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failed = append(p.failed, err)
	return nil
}

func (p *stubProcessor) counts() (int, int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.completed), len(p.failed)
}

func newPool(p *stubProcessor, opts ...workers.Option) *workers.WorkerPool[testTask] {
	opts = append([]workers.Option{
		workers.WithLogger(logger.NewDiscard()),
		workers.WithPollInterval(time.Millisecond),
		workers.WithIdleInterval(5 * time.Millisecond),
		workers.WithRetryDelay(time.Millisecond),
	}, opts...)
	return workers.New[testTask](p, workers.Options{Name: "test"}, opts...)
}

func runPool(t *testing.T, wp *workers.WorkerPool[testTask]) (context.CancelFunc, <-chan error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	done := make(chan error, 1)
	go func() { done <- wp.Start(ctx) }()
	t.Cleanup(cancel)
	return cancel, done
}

// ============================================================================
// Tests
// ============================================================================

func TestPoolProcessesAllTasks(t *testing.T) {
	p := &stubProcessor{}
	p.add("a", "b", "c", "d")
	wp := newPool(p, workers.WithWorkerCount(2))

	_, done := runPool(t, wp)
	require.Eventually(t, func() bool {
		completed, _ := p.counts()
		return completed == 4
	}, 2*time.Second, 5*time.Millisecond)

	wp.Stop()
	require.NoError(t, <-done)

	snap := wp.Snapshot()
	assert.EqualValues(t, 4, snap.TasksCheckedOut)
	assert.EqualValues(t, 4, snap.TasksCompleted)
	assert.EqualValues(t, 0, snap.WorkersActive)

	p.mu.Lock()
	defer p.mu.Unlock()
	for _, task := range p.completed {
		assert.Equal(t, "done:"+task.ID, task.Result)
	}
}

func TestPoolRetriesThenFails(t *testing.T) {
	boom := errors.New("boom")
	p := &stubProcessor{processFn: func(task testTask) (testTask, error) { return task, boom }}
	p.add("x")
	wp := newPool(p, workers.WithMaxRetries(3))

	cancel, done := runPool(t, wp)
	require.Eventually(t, func() bool {
		_, failed := p.counts()
		return failed == 1
	}, 2*time.Second, 5*time.Millisecond)
	cancel()
	require.NoError(t, <-done)

	assert.EqualValues(t, 3, p.attempts.Load())
	assert.ErrorIs(t, p.failed[0], boom)
	assert.EqualValues(t, 2, wp.Snapshot().RetryAttempts)
}

func TestPoolRecoversTaskPanic(t *testing.T) {
	p := &stubProcessor{processFn: func(task testTask) (testTask, error) {
		if task.ID == "bad" {
			panic("kaboom")
		}
		return task, nil
	}}
	p.add("bad", "good")
	hooked := make(chan string, 2)
	wp := newPool(p)
	wp.AddPostProcessHooks(func(ctx context.Context, task testTask, err error) error {
		hooked <- fmt.Sprintf("%s:%v", task.ID, err != nil)
		return nil
	})

	cancel, done := runPool(t, wp)
	require.Eventually(t, func() bool {
		completed, failed := p.counts()
		return completed == 1 && failed == 1
	}, 2*time.Second, 5*time.Millisecond)
	cancel()
	require.NoError(t, <-done)

	assert.EqualValues(t, 1, wp.Snapshot().Panics)
	assert.ElementsMatch(t, []string{"bad:true", "good:false"}, []string{<-hooked, <-hooked})
}

func TestPoolShutdownError(t *testing.T) {
	p := &stubProcessor{checkoutErr: workers.ErrPoolShutdown}
	wp := newPool(p, workers.WithWorkerCount(3))

	_, done := runPool(t, wp)
	select {
	case err := <-done:
		assert.ErrorIs(t, err, workers.ErrPoolShutdown)
	case <-time.After(2 * time.Second):
		t.Fatal("pool did not stop")
	}
}

func TestPoolShutdownOutranksWorkerShutdown(t *testing.T) {
	p := &stubProcessor{checkoutErr: fmt.Errorf("%w: %w", workers.ErrPoolShutdown, workers.ErrWorkerShutdown)}
	wp := newPool(p)

	_, done := runPool(t, wp)
	select {
	case err := <-done:
		assert.ErrorIs(t, err, workers.ErrPoolShutdown)
	case <-time.After(2 * time.Second):
		t.Fatal("pool did not stop")
	}
}

func TestStartTwice(t *testing.T) {
	wp := newPool(&stubProcessor{})
	cancel, done := runPool(t, wp)

	require.Eventually(t, func() bool { return wp.Snapshot().WorkersActive == 1 }, time.Second, time.Millisecond)
	assert.ErrorIs(t, wp.Start(context.Background()), workers.ErrPoolRunning)

	cancel()
	require.NoError(t, <-done)
}

func TestConsecutiveErrorShutdown(t *testing.T) {
	results := []error{errors.New("1"), workers.ErrNoWorkAvailable, errors.New("2"), errors.New("3")}
	var i int
	next := func(ctx context.Context, workerID string) error {
		err := results[i]
		i++
		return err
	}

	work := workers.ConsecutiveErrorShutdown(2)(next)
	assert.EqualError(t, work(context.Background(), "w1"), "1")
	assert.ErrorIs(t, work(context.Background(), "w1"), workers.ErrNoWorkAvailable)
	assert.EqualError(t, work(context.Background(), "w1"), "2")
	assert.ErrorIs(t, work(context.Background(), "w1"), workers.ErrWorkerShutdown)
}
