package workers

import (
	"sync/atomic"
	"time"
)

// Snapshot is a point-in-time view of a pool's counters.
type Snapshot struct {
	WorkersActive   int64         `json:"workersActive"`
	TasksCheckedOut int64         `json:"tasksCheckedOut"`
	TasksCompleted  int64         `json:"tasksCompleted"`
	TasksFailed     int64         `json:"tasksFailed"`
	Panics          int64         `json:"panics"`
	RetryAttempts   int64         `json:"retryAttempts"`
	Uptime          time.Duration `json:"uptime"`
}

type counters struct {
	workersActive   atomic.Int64
	tasksCheckedOut atomic.Int64
	tasksCompleted  atomic.Int64
	tasksFailed     atomic.Int64
	panics          atomic.Int64
	retryAttempts   atomic.Int64
	started         atomic.Int64
}

func (c *counters) snapshot() Snapshot {
	s := Snapshot{
		WorkersActive:   c.workersActive.Load(),
		TasksCheckedOut: c.tasksCheckedOut.Load(),
		TasksCompleted:  c.tasksCompleted.Load(),
		TasksFailed:     c.tasksFailed.Load(),
		Panics:          c.panics.Load(),
		RetryAttempts:   c.retryAttempts.Load(),
	}
	if start := c.started.Load(); start > 0 {
		s.Uptime = time.Since(time.Unix(0, start))
	}
	return s
}
