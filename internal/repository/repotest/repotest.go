// Package repotest holds behavioural tests shared by every
// repository.Achievement implementation.
package repotest

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Eloquas/Eloverit-sub002/internal/domain"
	"github.com/Eloquas/Eloverit-sub002/internal/repository"
)

// Factory returns a ready store. Stores may be shared between subtests,
// so every subtest works on its own fresh user ids.
type Factory func(t *testing.T) repository.Achievement

var errAbort = errors.New("abort")

// Run exercises the repository contract against the store built by newStore
func Run(t *testing.T, newStore Factory) {
	t.Run("StatsGetOrCreate", func(t *testing.T) { testStatsGetOrCreate(t, newStore(t)) })
	t.Run("SaveStatsCommits", func(t *testing.T) { testSaveStatsCommits(t, newStore(t)) })
	t.Run("ErrorDiscardsWrites", func(t *testing.T) { testErrorDiscardsWrites(t, newStore(t)) })
	t.Run("InsertUnlockIdempotent", func(t *testing.T) { testInsertUnlockIdempotent(t, newStore(t)) })
	t.Run("ConcurrentSameUser", func(t *testing.T) { testConcurrentSameUser(t, newStore(t)) })
	t.Run("SumPointsSince", func(t *testing.T) { testSumPointsSince(t, newStore(t)) })
	t.Run("ResetStaleStreaks", func(t *testing.T) { testResetStaleStreaks(t, newStore(t)) })
}

func newUserID() string {
	return "user-" + uuid.NewString()
}

func baseTime() time.Time {
	return time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
}

func save(t *testing.T, store repository.Achievement, userID string, mutate func(st *domain.UserStats)) {
	t.Helper()
	err := store.WithinUserTx(context.Background(), userID, func(tx repository.AchievementTx) error {
		st, err := tx.Stats(context.Background())
		if err != nil {
			return err
		}
		mutate(st)
		return tx.SaveStats(context.Background(), st)
	})
	require.NoError(t, err)
}

func load(t *testing.T, store repository.Achievement, userID string) (*domain.UserStats, []domain.UnlockRecord) {
	t.Helper()
	var (
		stats   *domain.UserStats
		unlocks []domain.UnlockRecord
	)
	err := store.WithinUserTx(context.Background(), userID, func(tx repository.AchievementTx) error {
		var err error
		if stats, err = tx.Stats(context.Background()); err != nil {
			return err
		}
		unlocks, err = tx.Unlocks(context.Background())
		return err
	})
	require.NoError(t, err)
	return stats, unlocks
}

func findStats(t *testing.T, store repository.Achievement, userID string) (domain.UserStats, bool) {
	t.Helper()
	all, err := store.ListStats(context.Background())
	require.NoError(t, err)
	for _, st := range all {
		if st.UserID == userID {
			return st, true
		}
	}
	return domain.UserStats{}, false
}

func testStatsGetOrCreate(t *testing.T, store repository.Achievement) {
	userID := newUserID()

	stats, unlocks := load(t, store, userID)

	assert.Equal(t, userID, stats.UserID)
	assert.Zero(t, stats.TotalEmails)
	assert.Zero(t, stats.TotalPoints)
	assert.Nil(t, stats.LastActivityDate)
	assert.Empty(t, unlocks)
}

func testSaveStatsCommits(t *testing.T, store repository.Achievement) {
	userID := newUserID()
	last := baseTime()

	save(t, store, userID, func(st *domain.UserStats) {
		st.DisplayName = "Dana"
		st.TotalEmails = 3
		st.HighestTrustScore = 87.5
		st.CurrentStreak = 2
		st.LongestStreak = 4
		st.LastActivityDate = &last
		st.UpdatedAt = last
	})

	stats, _ := load(t, store, userID)
	assert.Equal(t, "Dana", stats.DisplayName)
	assert.Equal(t, 3, stats.TotalEmails)
	assert.InDelta(t, 87.5, stats.HighestTrustScore, 0.0001)
	assert.Equal(t, 2, stats.CurrentStreak)
	assert.Equal(t, 4, stats.LongestStreak)
	require.NotNil(t, stats.LastActivityDate)
	assert.True(t, last.Equal(*stats.LastActivityDate))

	listed, ok := findStats(t, store, userID)
	require.True(t, ok)
	assert.Equal(t, 3, listed.TotalEmails)
}

func testErrorDiscardsWrites(t *testing.T, store repository.Achievement) {
	userID := newUserID()
	save(t, store, userID, func(st *domain.UserStats) { st.TotalEmails = 1 })

	err := store.WithinUserTx(context.Background(), userID, func(tx repository.AchievementTx) error {
		st, err := tx.Stats(context.Background())
		if err != nil {
			return err
		}
		st.TotalEmails = 99
		if err := tx.SaveStats(context.Background(), st); err != nil {
			return err
		}
		if _, err := tx.InsertUnlock(context.Background(), domain.UnlockRecord{
			UserID: userID, AchievementID: "first_email", Points: 10, UnlockedAt: baseTime(),
		}); err != nil {
			return err
		}
		return errAbort
	})
	require.ErrorIs(t, err, errAbort)

	stats, unlocks := load(t, store, userID)
	assert.Equal(t, 1, stats.TotalEmails)
	assert.Empty(t, unlocks)
}

func testInsertUnlockIdempotent(t *testing.T, store repository.Achievement) {
	userID := newUserID()
	rec := domain.UnlockRecord{UserID: userID, AchievementID: "first_email", Points: 10, UnlockedAt: baseTime()}

	err := store.WithinUserTx(context.Background(), userID, func(tx repository.AchievementTx) error {
		inserted, err := tx.InsertUnlock(context.Background(), rec)
		require.NoError(t, err)
		assert.True(t, inserted)

		inserted, err = tx.InsertUnlock(context.Background(), rec)
		require.NoError(t, err)
		assert.False(t, inserted, "same transaction")
		return nil
	})
	require.NoError(t, err)

	err = store.WithinUserTx(context.Background(), userID, func(tx repository.AchievementTx) error {
		inserted, err := tx.InsertUnlock(context.Background(), rec)
		require.NoError(t, err)
		assert.False(t, inserted, "later transaction")
		return nil
	})
	require.NoError(t, err)

	_, unlocks := load(t, store, userID)
	require.Len(t, unlocks, 1)
	assert.Equal(t, "first_email", unlocks[0].AchievementID)
	assert.Equal(t, 10, unlocks[0].Points)
	assert.True(t, baseTime().Equal(unlocks[0].UnlockedAt))
}

func testConcurrentSameUser(t *testing.T, store repository.Achievement) {
	userID := newUserID()
	const workers = 16

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		inserted int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := store.WithinUserTx(context.Background(), userID, func(tx repository.AchievementTx) error {
				st, err := tx.Stats(context.Background())
				if err != nil {
					return err
				}
				st.TotalEmails++
				if err := tx.SaveStats(context.Background(), st); err != nil {
					return err
				}
				ok, err := tx.InsertUnlock(context.Background(), domain.UnlockRecord{
					UserID: userID, AchievementID: "first_email", Points: 10, UnlockedAt: baseTime(),
				})
				if err != nil {
					return err
				}
				if ok {
					mu.Lock()
					inserted++
					mu.Unlock()
				}
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	stats, unlocks := load(t, store, userID)
	assert.Equal(t, workers, stats.TotalEmails, "no lost updates")
	assert.Equal(t, 1, inserted, "exactly one winner")
	assert.Len(t, unlocks, 1)
}

func testSumPointsSince(t *testing.T, store repository.Achievement) {
	alice, bob := newUserID(), newUserID()
	since := baseTime()

	unlock := func(userID, id string, points int, at time.Time) {
		err := store.WithinUserTx(context.Background(), userID, func(tx repository.AchievementTx) error {
			_, err := tx.InsertUnlock(context.Background(), domain.UnlockRecord{
				UserID: userID, AchievementID: id, Points: points, UnlockedAt: at,
			})
			return err
		})
		require.NoError(t, err)
	}
	save(t, store, alice, func(st *domain.UserStats) { st.DisplayName = "Alice" })
	unlock(alice, "old", 500, since.Add(-time.Hour))
	unlock(alice, "new", 25, since)
	unlock(alice, "newer", 50, since.Add(time.Hour))
	unlock(bob, "old", 500, since.Add(-time.Minute))

	totals, err := store.SumPointsSince(context.Background(), since)
	require.NoError(t, err)

	got := make(map[string]domain.PeriodPoints)
	for _, p := range totals {
		got[p.UserID] = p
	}
	require.Contains(t, got, alice)
	assert.Equal(t, 75, got[alice].Points)
	assert.Equal(t, "Alice", got[alice].Name)
	assert.NotContains(t, got, bob, "users with nothing in the window are omitted")
}

func testResetStaleStreaks(t *testing.T, store repository.Achievement) {
	stale, fresh := newUserID(), newUserID()
	cutoff := baseTime()
	old := cutoff.Add(-48 * time.Hour)
	recent := cutoff.Add(time.Hour)

	save(t, store, stale, func(st *domain.UserStats) {
		st.CurrentStreak, st.LongestStreak, st.LastActivityDate = 5, 9, &old
	})
	save(t, store, fresh, func(st *domain.UserStats) {
		st.CurrentStreak, st.LongestStreak, st.LastActivityDate = 3, 3, &recent
	})

	affected, err := store.ResetStaleStreaks(context.Background(), cutoff)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, affected, int64(1))

	st, _ := load(t, store, stale)
	assert.Zero(t, st.CurrentStreak)
	assert.Equal(t, 9, st.LongestStreak, "longest streak survives decay")

	st, _ = load(t, store, fresh)
	assert.Equal(t, 3, st.CurrentStreak)
}
