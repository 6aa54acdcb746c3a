// Package scheduler enqueues jobs on a worker pool at fixed intervals.
package scheduler

import (
	"log/slog"
	"sync"
	"time"

	"github.com/Eloquas/Eloverit-sub002/internal/worker"
)

// LogMsgJobSkipped is logged when the pool has no room for a tick
const LogMsgJobSkipped = "Scheduled job skipped, worker queue full"

// Enqueuer is the part of worker.Pool the scheduler uses
type Enqueuer interface {
	TryEnqueue(job worker.Job) bool
}

// Scheduler manages interval jobs
type Scheduler struct {
	pool     Enqueuer
	quit     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// New creates a scheduler feeding pool
func New(pool Enqueuer) *Scheduler {
	return &Scheduler{
		pool: pool,
		quit: make(chan struct{}),
	}
}

// Schedule runs job every interval until Stop. A tick that finds the queue
// full is skipped rather than blocking the next one.
func (s *Scheduler) Schedule(name string, interval time.Duration, job worker.Job) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if !s.pool.TryEnqueue(job) {
					slog.Warn(LogMsgJobSkipped, "job", name)
				}
			case <-s.quit:
				return
			}
		}
	}()
}

// Stop ends all schedules and waits for their goroutines
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() { close(s.quit) })
	s.wg.Wait()
}
