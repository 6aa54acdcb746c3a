package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Eloquas/Eloverit-sub002/internal/achievement"
	"github.com/Eloquas/Eloverit-sub002/internal/bootstrap"
	"github.com/Eloquas/Eloverit-sub002/internal/catalog"
	"github.com/Eloquas/Eloverit-sub002/internal/config"
	"github.com/Eloquas/Eloverit-sub002/internal/event"
	"github.com/Eloquas/Eloverit-sub002/internal/leaderboard"
)

const shutdownTimeout = 30 * time.Second

var rootCmd = &cobra.Command{
	Use:           "app",
	Short:         "Sales achievement and progression engine",
	SilenceUsage:  true,
	SilenceErrors: false,
}

// loadConfig loads configuration and installs the logger
func loadConfig() (*config.Config, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if logFile != nil {
			_ = logFile.Close()
		}
	}
	return cfg, cleanup, nil
}

// engine is everything a command needs to talk to the achievement service
type engine struct {
	svc   achievement.Service
	store *bootstrap.Store
	cache *leaderboard.Cache
}

// openEngine opens the configured store and builds the service on it.
// publisher and index may be nil.
func openEngine(ctx context.Context, cfg *config.Config, publisher event.Publisher, index achievement.Ranker) (*engine, error) {
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, err
	}

	store, err := bootstrap.OpenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	cache := leaderboard.NewCache(cfg.LeaderboardCacheSize, cfg.LeaderboardCacheTTL)
	svc, err := achievement.NewService(store.Repo, cat, publisher, cache, index, nil)
	if err != nil {
		store.Close()
		return nil, err
	}

	return &engine{svc: svc, store: store, cache: cache}, nil
}
