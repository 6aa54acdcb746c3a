package repository

import (
	"context"
	"time"

	"github.com/Eloquas/Eloverit-sub002/internal/domain"
)

// AchievementTx is scoped to a single user and runs inside that user's
// exclusive region. Nothing is visible to other callers until the
// surrounding WithinUserTx returns nil.
type AchievementTx interface {
	// Stats returns the user's stats, creating a zeroed record when absent
	Stats(ctx context.Context) (*domain.UserStats, error)
	SaveStats(ctx context.Context, stats *domain.UserStats) error
	Unlocks(ctx context.Context) ([]domain.UnlockRecord, error)
	// InsertUnlock is insert-if-absent; it reports false when the record already existed
	InsertUnlock(ctx context.Context, rec domain.UnlockRecord) (bool, error)
}

// Achievement defines persistence for user stats and unlock records.
// Implementations must serialize WithinUserTx calls for the same user.
type Achievement interface {
	WithinUserTx(ctx context.Context, userID string, fn func(tx AchievementTx) error) error

	ListStats(ctx context.Context) ([]domain.UserStats, error)
	SumPointsSince(ctx context.Context, since time.Time) ([]domain.PeriodPoints, error)
	// ResetStaleStreaks zeroes current streaks whose last activity is before cutoff
	ResetStaleStreaks(ctx context.Context, cutoff time.Time) (int64, error)
}
