package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Eloquas/Eloverit-sub002/internal/concurrency"
	"github.com/Eloquas/Eloverit-sub002/internal/domain"
	"github.com/Eloquas/Eloverit-sub002/internal/repository"
)

// Store is the in-process achievement repository. Per-user mutexes give
// the read-check-write region its atomicity; writes are staged on the
// transaction and applied only when the callback succeeds.
type Store struct {
	locks   *concurrency.LockManager
	mu      sync.RWMutex
	stats   map[string]domain.UserStats
	unlocks map[string][]domain.UnlockRecord
	now     func() time.Time
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		locks:   concurrency.NewLockManager(),
		stats:   make(map[string]domain.UserStats),
		unlocks: make(map[string][]domain.UnlockRecord),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

var _ repository.Achievement = (*Store)(nil)

// WithinUserTx runs fn holding userID's lock
func (s *Store) WithinUserTx(ctx context.Context, userID string, fn func(tx repository.AchievementTx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.locks.WithLock(userID, func() error {
		tx := &userTx{store: s, userID: userID}
		if err := fn(tx); err != nil {
			return err
		}
		s.commit(tx)
		return nil
	})
}

func (s *Store) commit(tx *userTx) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tx.dirty && tx.stats != nil {
		s.stats[tx.userID] = *tx.stats
	}
	if len(tx.pending) > 0 {
		s.unlocks[tx.userID] = append(s.unlocks[tx.userID], tx.pending...)
	}
}

// ListStats returns every user's stats ordered by user id
func (s *Store) ListStats(ctx context.Context) ([]domain.UserStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.UserStats, 0, len(s.stats))
	for _, st := range s.stats {
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

// SumPointsSince totals unlock points at or after since, per user
func (s *Store) SumPointsSince(ctx context.Context, since time.Time) ([]domain.PeriodPoints, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.PeriodPoints
	for userID, recs := range s.unlocks {
		total := 0
		for _, rec := range recs {
			if !rec.UnlockedAt.Before(since) {
				total += rec.Points
			}
		}
		if total == 0 {
			continue
		}
		name := userID
		if st, ok := s.stats[userID]; ok {
			name = st.Name()
		}
		out = append(out, domain.PeriodPoints{UserID: userID, Name: name, Points: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

// ResetStaleStreaks zeroes current streaks last touched before cutoff
func (s *Store) ResetStaleStreaks(ctx context.Context, cutoff time.Time) (int64, error) {
	s.mu.RLock()
	ids := make([]string, 0, len(s.stats))
	for id := range s.stats {
		ids = append(ids, id)
	}
	s.mu.RUnlock()

	var affected int64
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return affected, err
		}
		_ = s.locks.WithLock(id, func() error {
			s.mu.Lock()
			defer s.mu.Unlock()

			st := s.stats[id]
			if st.CurrentStreak == 0 {
				return nil
			}
			if st.LastActivityDate != nil && !st.LastActivityDate.Before(cutoff) {
				return nil
			}
			st.CurrentStreak = 0
			st.UpdatedAt = s.now()
			s.stats[id] = st
			affected++
			return nil
		})
	}
	return affected, nil
}

type userTx struct {
	store   *Store
	userID  string
	stats   *domain.UserStats
	dirty   bool
	known   map[string]bool
	pending []domain.UnlockRecord
}

func (tx *userTx) Stats(ctx context.Context) (*domain.UserStats, error) {
	if tx.stats == nil {
		tx.store.mu.RLock()
		st, ok := tx.store.stats[tx.userID]
		tx.store.mu.RUnlock()

		if !ok {
			st = *domain.NewUserStats(tx.userID, tx.store.now())
			tx.dirty = true
		}
		tx.stats = &st
	}
	cp := *tx.stats
	return &cp, nil
}

func (tx *userTx) SaveStats(ctx context.Context, stats *domain.UserStats) error {
	if stats.UserID != tx.userID {
		return fmt.Errorf("%w: transaction for %q cannot save stats of %q", domain.ErrInvalidInput, tx.userID, stats.UserID)
	}
	cp := *stats
	tx.stats = &cp
	tx.dirty = true
	return nil
}

func (tx *userTx) Unlocks(ctx context.Context) ([]domain.UnlockRecord, error) {
	tx.store.mu.RLock()
	committed := tx.store.unlocks[tx.userID]
	out := make([]domain.UnlockRecord, 0, len(committed)+len(tx.pending))
	out = append(out, committed...)
	tx.store.mu.RUnlock()

	return append(out, tx.pending...), nil
}

func (tx *userTx) InsertUnlock(ctx context.Context, rec domain.UnlockRecord) (bool, error) {
	if rec.UserID != tx.userID {
		return false, fmt.Errorf("%w: transaction for %q cannot unlock for %q", domain.ErrInvalidInput, tx.userID, rec.UserID)
	}
	if tx.known == nil {
		existing, err := tx.Unlocks(ctx)
		if err != nil {
			return false, err
		}
		tx.known = make(map[string]bool, len(existing))
		for _, e := range existing {
			tx.known[e.AchievementID] = true
		}
	}
	if tx.known[rec.AchievementID] {
		return false, nil
	}
	tx.known[rec.AchievementID] = true
	tx.pending = append(tx.pending, rec)
	return true, nil
}
