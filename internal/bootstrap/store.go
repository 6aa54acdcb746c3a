package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Eloquas/Eloverit-sub002/internal/config"
	"github.com/Eloquas/Eloverit-sub002/internal/database"
	"github.com/Eloquas/Eloverit-sub002/internal/database/memory"
	"github.com/Eloquas/Eloverit-sub002/internal/database/postgres"
	"github.com/Eloquas/Eloverit-sub002/internal/database/sqlite"
	"github.com/Eloquas/Eloverit-sub002/internal/handler"
	"github.com/Eloquas/Eloverit-sub002/internal/repository"
)

// Store is the opened stats store for the configured driver
type Store struct {
	Repo repository.Achievement
	// Pinger backs /readyz; nil for the memory driver
	Pinger handler.Pinger
	close  func()
}

// Close releases the underlying connection pool or file handle
func (s *Store) Close() {
	if s.close != nil {
		s.close()
	}
}

// OpenStore opens the store selected by cfg.DBDriver and brings its schema
// up to date.
func OpenStore(ctx context.Context, cfg *config.Config) (*Store, error) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		pool, err := database.NewPool(ctx, cfg.GetDBConnString(), database.DefaultMaxConnections, database.DefaultMaxConnIdleTime, database.DefaultMaxConnLifetime)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenStore, err)
		}
		if err := database.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenStore, err)
		}
		slog.Info(LogMsgStoreOpened, "driver", cfg.DBDriver, "host", cfg.DBHost, "db", cfg.DBName)
		return &Store{Repo: postgres.NewAchievementRepository(pool), Pinger: pool, close: pool.Close}, nil

	case config.DriverSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), DirPermission); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateDataDir, err)
		}
		st, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenStore, err)
		}
		slog.Info(LogMsgStoreOpened, "driver", cfg.DBDriver, "path", cfg.SQLitePath)
		return &Store{Repo: st, Pinger: st, close: func() { _ = st.Close() }}, nil

	case config.DriverMemory:
		slog.Info(LogMsgStoreOpened, "driver", cfg.DBDriver)
		return &Store{Repo: memory.NewStore()}, nil
	}

	return nil, fmt.Errorf("%s: %q", ErrMsgUnsupportedDriver, cfg.DBDriver)
}
