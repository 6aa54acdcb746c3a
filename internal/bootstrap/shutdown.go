package bootstrap

import (
	"context"
	"log/slog"

	"github.com/Eloquas/Eloverit-sub002/internal/event"
	"github.com/Eloquas/Eloverit-sub002/internal/leaderboard"
	"github.com/Eloquas/Eloverit-sub002/internal/server"
	"github.com/Eloquas/Eloverit-sub002/internal/sse"
	"github.com/Eloquas/Eloverit-sub002/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
// Nil fields are skipped.
type ShutdownComponents struct {
	Server             *server.Server
	Stream             *sse.Hub
	DecayWorker        *worker.StreakDecayWorker
	Maintenance        *Maintenance
	NotifyPool         *worker.Pool
	ResilientPublisher *event.ResilientPublisher
	Index              *leaderboard.RedisIndex
	Store              *Store
}

// GracefulShutdown stops components in dependency order: open event
// streams close so the HTTP server can drain, the decay worker cancels its
// timer, the publisher flushes pending events, queued notifications drain,
// then connections close. Errors are logged and never stop the sequence.
func GracefulShutdown(ctx context.Context, c ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if c.Stream != nil {
		c.Stream.Stop()
	}

	if c.Server != nil {
		if err := c.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if c.DecayWorker != nil {
		if err := c.DecayWorker.Shutdown(ctx); err != nil {
			slog.Error(LogMsgDecayWorkerFailed, "error", err)
		}
	}

	c.Maintenance.Stop()

	if c.ResilientPublisher != nil {
		slog.Info(LogMsgShuttingDownEventPublisher)
		if err := c.ResilientPublisher.Shutdown(ctx); err != nil {
			slog.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	if c.NotifyPool != nil {
		c.NotifyPool.Stop()
	}

	if c.Index != nil {
		if err := c.Index.Close(); err != nil {
			slog.Error(LogMsgCloseFailed, "resource", ReadinessKeyLeaderboardIdx, "error", err)
		}
	}

	if c.Store != nil {
		c.Store.Close()
	}

	slog.Info(LogMsgServerStopped)
}
