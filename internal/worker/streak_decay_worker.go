package worker

import (
	"context"
	"sync"
	"time"

	"github.com/Eloquas/Eloverit-sub002/internal/clock"
	"github.com/Eloquas/Eloverit-sub002/internal/event"
	"github.com/Eloquas/Eloverit-sub002/internal/logger"
)

// StreakResetter persists decayed streaks
type StreakResetter interface {
	ResetStaleStreaks(ctx context.Context, cutoff time.Time) (int64, error)
}

// StreakDecayWorker zeroes broken streaks shortly after every UTC midnight
type StreakDecayWorker struct {
	store     StreakResetter
	publisher event.Publisher
	clock     clock.Clock
	timer     *time.Timer
	shutdown  chan struct{}
	wg        sync.WaitGroup
	mu        sync.Mutex
}

// NewStreakDecayWorker creates a new StreakDecayWorker. publisher may be nil.
func NewStreakDecayWorker(store StreakResetter, publisher event.Publisher, clk clock.Clock) *StreakDecayWorker {
	if clk == nil {
		clk = clock.NewRealClock()
	}
	return &StreakDecayWorker{
		store:     store,
		publisher: publisher,
		clock:     clk,
		shutdown:  make(chan struct{}),
	}
}

// Start schedules the first decay
func (w *StreakDecayWorker) Start() {
	w.scheduleNext()
}

func (w *StreakDecayWorker) untilMidnight() time.Duration {
	now := w.clock.Now()
	return clock.NextMidnight(now).Sub(now)
}

// scheduleNext sleeps in two stages so an early timer never busy-loops
func (w *StreakDecayWorker) scheduleNext() {
	duration := w.untilMidnight()
	log := logger.FromContext(context.Background())

	w.mu.Lock()
	defer w.mu.Unlock()

	select {
	case <-w.shutdown:
		return
	default:
	}
	if w.timer != nil {
		w.timer.Stop()
	}

	if duration > StandbyThreshold {
		wait := duration - StandbyLead
		w.timer = time.AfterFunc(wait, w.scheduleNext)
		log.Info(LogMsgStreakDecayStandby, "next_check_at", w.clock.Now().Add(wait))
		return
	}

	w.timer = time.AfterFunc(duration, func() {
		select {
		case <-w.shutdown:
			return
		default:
		}

		// fired early: a remainder just under a day means midnight has passed
		rem := w.untilMidnight()
		if rem > EarlyFireTolerance && rem < 23*time.Hour {
			w.scheduleNext()
			return
		}

		w.executeDecay()
		w.scheduleNext()
	})
	log.Info(LogMsgStreakDecayScheduled, "next_decay_at", w.clock.Now().Add(duration))
}

// executeDecay starts a decay unless Shutdown has begun. The check and
// wg.Add share w.mu with Shutdown so wg.Wait never races an Add.
func (w *StreakDecayWorker) executeDecay() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	select {
	case <-w.shutdown:
		return false
	default:
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), DecayTimeout)
		defer cancel()
		_, _ = w.RunOnce(ctx)
	}()
	return true
}

// RunOnce resets every streak whose last activity is before yesterday (UTC)
func (w *StreakDecayWorker) RunOnce(ctx context.Context) (int64, error) {
	log := logger.FromContext(ctx)
	now := w.clock.Now()
	cutoff := clock.StartOfDay(now).AddDate(0, 0, -1)

	log.Info(LogMsgStreakDecayStarting, "cutoff", cutoff)
	affected, err := w.store.ResetStaleStreaks(ctx, cutoff)
	if err != nil {
		log.Error(LogMsgStreakDecayFailed, "error", err)
		return 0, err
	}
	log.Info(LogMsgStreakDecayCompleted, "records_affected", affected)

	if w.publisher != nil {
		w.publisher.PublishWithRetry(ctx, event.NewStreakDecayCompleteEvent(now, affected))
	}
	return affected, nil
}

// Shutdown cancels the pending timer and waits for an in-flight decay
func (w *StreakDecayWorker) Shutdown(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info("Shutting down streak decay worker")

	w.mu.Lock()
	select {
	case <-w.shutdown:
	default:
		close(w.shutdown)
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info("Streak decay worker shutdown complete")
		return nil
	case <-ctx.Done():
		log.Warn("Streak decay worker shutdown timeout, a decay may still be running")
		return ctx.Err()
	}
}
