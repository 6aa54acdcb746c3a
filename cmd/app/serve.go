package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Eloquas/Eloverit-sub002/internal/achievement"
	"github.com/Eloquas/Eloverit-sub002/internal/bootstrap"
	"github.com/Eloquas/Eloverit-sub002/internal/clock"
	"github.com/Eloquas/Eloverit-sub002/internal/handler"
	"github.com/Eloquas/Eloverit-sub002/internal/leaderboard"
	"github.com/Eloquas/Eloverit-sub002/internal/notify"
	"github.com/Eloquas/Eloverit-sub002/internal/server"
	"github.com/Eloquas/Eloverit-sub002/internal/sse"
	"github.com/Eloquas/Eloverit-sub002/internal/worker"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and background workers",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, cleanup, err := loadConfig()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bus, publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		return err
	}

	var (
		index  *leaderboard.RedisIndex
		ranker achievement.Ranker
	)
	if cfg.RedisAddr != "" {
		index, err = leaderboard.NewRedisIndex(ctx, cfg.RedisAddr)
		if err != nil {
			return err
		}
		ranker = index
	}

	eng, err := openEngine(ctx, cfg, publisher, ranker)
	if err != nil {
		return err
	}

	var (
		announcer  *notify.DiscordAnnouncer
		notifyPool *worker.Pool
	)
	if cfg.DiscordToken != "" {
		session, err := notify.NewSession(cfg.DiscordToken)
		if err != nil {
			return err
		}
		notifyPool = bootstrap.NewNotifyPool()
		announcer = notify.NewDiscordAnnouncer(session, cfg.DiscordChannelID, notifyPool)
	}

	stream := sse.NewHub()
	stream.Start()

	if err := bootstrap.RegisterEventHandlers(ctx, bootstrap.EventHandlerDependencies{
		EventBus:  bus,
		Repo:      eng.store.Repo,
		Index:     index,
		Cache:     eng.cache,
		Announcer: announcer,
		Stream:    stream,
	}); err != nil {
		return err
	}

	maintenance := bootstrap.StartIndexResync(eng.store.Repo, index, cfg.IndexResyncInterval)

	var decay *worker.StreakDecayWorker
	if cfg.StreakDecayEnabled {
		decay = worker.NewStreakDecayWorker(eng.store.Repo, publisher, clock.NewRealClock())
		decay.Start()
	}

	ready := map[string]handler.Pinger{bootstrap.ReadinessKeyStore: eng.store.Pinger}
	if index != nil {
		ready[bootstrap.ReadinessKeyLeaderboardIdx] = index
	}

	handler.Version = cfg.Version
	srv := server.NewServer(server.Options{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
		Service:        eng.svc,
		Ready:          ready,
		Stream:         stream,
	})

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case <-ctx.Done():
	case err = <-errCh:
		if err != nil {
			slog.Error("Server failed", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:             srv,
		Stream:             stream,
		DecayWorker:        decay,
		Maintenance:        maintenance,
		NotifyPool:         notifyPool,
		ResilientPublisher: publisher,
		Index:              index,
		Store:              eng.store,
	})

	if err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
