package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Eloquas/Eloverit-sub002/internal/testing/leaktest"
	"github.com/Eloquas/Eloverit-sub002/internal/worker"
)

type fullQueue struct{ attempts atomic.Int32 }

func (f *fullQueue) TryEnqueue(worker.Job) bool {
	f.attempts.Add(1)
	return false
}

func TestScheduler_RunsJobOnPool(t *testing.T) {
	pool := worker.NewPool(1, 4)
	pool.Start()
	defer pool.Stop()

	var runs atomic.Int32
	s := New(pool)
	s.Schedule("count", 10*time.Millisecond, worker.JobFunc(func(ctx context.Context) error {
		runs.Add(1)
		return nil
	}))

	require.Eventually(t, func() bool { return runs.Load() >= 2 }, time.Second, 5*time.Millisecond)
	s.Stop()
}

func TestScheduler_SkipsWhenQueueFull(t *testing.T) {
	q := &fullQueue{}
	s := New(q)
	s.Schedule("noop", 5*time.Millisecond, worker.JobFunc(func(context.Context) error { return nil }))

	require.Eventually(t, func() bool { return q.attempts.Load() >= 3 }, time.Second, 5*time.Millisecond)
	s.Stop()
}

func TestScheduler_StopIsIdempotent(t *testing.T) {
	checker := leaktest.NewGoroutineChecker(t)

	s := New(&fullQueue{})
	s.Schedule("a", time.Hour, worker.JobFunc(func(context.Context) error { return nil }))
	s.Schedule("b", time.Hour, worker.JobFunc(func(context.Context) error { return nil }))
	s.Stop()
	s.Stop()

	checker.Check(0)
}
