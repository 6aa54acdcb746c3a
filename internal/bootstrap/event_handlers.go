package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Eloquas/Eloverit-sub002/internal/event"
	"github.com/Eloquas/Eloverit-sub002/internal/leaderboard"
	"github.com/Eloquas/Eloverit-sub002/internal/metrics"
	"github.com/Eloquas/Eloverit-sub002/internal/notify"
	"github.com/Eloquas/Eloverit-sub002/internal/repository"
	"github.com/Eloquas/Eloverit-sub002/internal/scheduler"
	"github.com/Eloquas/Eloverit-sub002/internal/sse"
	"github.com/Eloquas/Eloverit-sub002/internal/worker"
)

// EventHandlerDependencies holds what event subscribers need. Index,
// Cache, Announcer and Stream are optional.
type EventHandlerDependencies struct {
	EventBus  event.Bus
	Repo      repository.Achievement
	Index     *leaderboard.RedisIndex
	Cache     *leaderboard.Cache
	Announcer *notify.DiscordAnnouncer
	Stream    *sse.Hub
}

// RegisterEventHandlers subscribes the metrics collector and whichever
// sinks are configured. The Redis index is rebuilt from the store first so
// it never starts behind.
func RegisterEventHandlers(ctx context.Context, deps EventHandlerDependencies) error {
	metrics.NewEventMetricsCollector().Register(deps.EventBus)
	slog.Info(LogMsgMetricsCollectorRegistered)

	if deps.Index != nil {
		if deps.Cache != nil {
			deps.Index.PurgeOnUpdate(deps.Cache)
		}
		if err := RebuildIndex(ctx, deps.Repo, deps.Index); err != nil {
			return err
		}
		deps.EventBus.Subscribe(event.AchievementUnlocked, deps.Index.HandleUnlocked)
		deps.EventBus.Subscribe(event.ActivityRecorded, deps.Index.HandleActivity)
		slog.Info(LogMsgLeaderboardIndexRegistered)
	}

	if deps.Announcer != nil {
		deps.Announcer.Register(deps.EventBus)
		slog.Info(LogMsgAnnouncerRegistered)
	}

	if deps.Stream != nil {
		sse.NewSubscriber(deps.Stream).Register(deps.EventBus)
	}

	return nil
}

// RebuildIndex replaces the Redis index contents with the store's totals
func RebuildIndex(ctx context.Context, repo repository.Achievement, index *leaderboard.RedisIndex) error {
	stats, err := repo.ListStats(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRebuildIndex, err)
	}
	if err := index.Rebuild(ctx, stats); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRebuildIndex, err)
	}
	slog.Info(LogMsgLeaderboardIndexRebuilt, "users", len(stats))
	return nil
}

// Maintenance runs periodic upkeep jobs on a single worker
type Maintenance struct {
	pool      *worker.Pool
	scheduler *scheduler.Scheduler
}

// StartIndexResync rebuilds the index every interval so it recovers from a
// Redis restart or missed events. A non-positive interval returns nil.
func StartIndexResync(repo repository.Achievement, index *leaderboard.RedisIndex, interval time.Duration) *Maintenance {
	if index == nil || interval <= 0 {
		return nil
	}
	pool := worker.NewPool(MaintenancePoolWorkers, MaintenanceQueueSize)
	pool.Start()
	sched := scheduler.New(pool)
	sched.Schedule(JobNameIndexResync, interval, worker.JobFunc(func(ctx context.Context) error {
		return RebuildIndex(ctx, repo, index)
	}))
	slog.Info(LogMsgIndexResyncScheduled, "interval", interval)
	return &Maintenance{pool: pool, scheduler: sched}
}

// Stop halts the schedule and waits for a running job
func (m *Maintenance) Stop() {
	if m == nil {
		return
	}
	m.scheduler.Stop()
	m.pool.Stop()
}

// NewNotifyPool starts the worker pool that delivers Discord messages off
// the publishing goroutine.
func NewNotifyPool() *worker.Pool {
	pool := worker.NewPool(NotifyPoolWorkers, NotifyQueueSize)
	pool.Start()
	return pool
}
