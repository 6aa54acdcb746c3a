package achievement

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/Eloquas/Eloverit-sub002/internal/domain"
	"github.com/Eloquas/Eloverit-sub002/internal/leaderboard"
	"github.com/Eloquas/Eloverit-sub002/internal/logger"
	"github.com/Eloquas/Eloverit-sub002/internal/progression"
	"github.com/Eloquas/Eloverit-sub002/internal/repository"
)

func (s *service) GetUserAchievements(ctx context.Context, userID string) (*domain.UserAchievements, error) {
	log := logger.FromContext(ctx)

	userID, err := normalizeUserID(userID)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()

	var (
		stats   *domain.UserStats
		records []domain.UnlockRecord
	)
	err = s.repo.WithinUserTx(ctx, userID, func(tx repository.AchievementTx) error {
		var err error
		if stats, err = tx.Stats(ctx); err != nil {
			return wrap(ErrMsgLoadStatsFailed, err)
		}
		if records, err = tx.Unlocks(ctx); err != nil {
			return wrap(ErrMsgLoadUnlocksFailed, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	unlockedAt := make(map[string]domain.UnlockRecord, len(records))
	for _, rec := range records {
		unlockedAt[rec.AchievementID] = rec
	}

	result := &domain.UserAchievements{
		Unlocked:   []domain.UnlockedAchievement{},
		InProgress: []domain.AchievementProgress{},
	}
	in := newProgressInput(stats, len(records), now)

	for _, def := range s.catalog.ListAll() {
		rarity := progression.Rarity(def)
		if rec, ok := unlockedAt[def.ID]; ok {
			result.Unlocked = append(result.Unlocked, domain.UnlockedAchievement{
				Achievement: def,
				Rarity:      rarity,
				UnlockedAt:  rec.UnlockedAt,
			})
			delete(unlockedAt, def.ID)
			continue
		}
		value, _ := criterionValue(def.Criterion.Type, in)
		result.InProgress = append(result.InProgress, domain.AchievementProgress{
			Achievement:     def,
			Rarity:          rarity,
			CurrentValue:    value,
			ProgressPercent: progressPercent(value, def.Criterion.Threshold),
		})
	}
	for id := range unlockedAt {
		log.Warn(LogMsgUnknownUnlockID, "user_id", userID, "achievement_id", id)
	}

	result.Stats = s.enhance(stats, len(result.Unlocked), now)
	return result, nil
}

func (s *service) enhance(stats *domain.UserStats, unlockedCount int, now time.Time) domain.EnhancedUserStats {
	view := *stats
	view.CurrentStreak = effectiveStreak(stats, now)

	total := s.catalog.Len()
	completion := 0
	if total > 0 {
		completion = int(math.Round(100 * float64(unlockedCount) / float64(total)))
	}

	return domain.EnhancedUserStats{
		UserStats:            view,
		LevelInfo:            progression.ForPoints(view.TotalPoints),
		Streak:               progression.ForStreak(view.CurrentStreak, view.LongestStreak),
		UnlockedCount:        unlockedCount,
		TotalAchievements:    total,
		CompletionPercentage: completion,
	}
}

func (s *service) GetLeaderboard(ctx context.Context, scope domain.LeaderboardScope) ([]domain.LeaderboardEntry, error) {
	if scope.Period == "" {
		scope.Period = domain.PeriodAllTime
	}
	if !scope.Period.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidPeriod, scope.Period)
	}
	if scope.Limit < 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgNegativeLeaderboardNo)
	}

	if s.cache != nil {
		if ranked, ok := s.cache.Get(scope.Period); ok {
			return leaderboard.Top(ranked, scope.Limit), nil
		}
	}

	var gen uint64
	if s.cache != nil {
		gen = s.cache.Generation()
	}
	ranked, err := s.rank(ctx, scope.Period)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.SetIfCurrent(gen, scope.Period, ranked)
	}
	return leaderboard.Top(ranked, scope.Limit), nil
}

func (s *service) rank(ctx context.Context, period domain.LeaderboardPeriod) ([]domain.LeaderboardEntry, error) {
	if period == domain.PeriodAllTime && s.index != nil {
		ranked, err := s.index.Top(ctx, 0)
		if err == nil {
			return ranked, nil
		}
		logger.FromContext(ctx).Warn(LogMsgLeaderboardIndexMiss, "error", err)
	}

	all, err := s.repo.ListStats(ctx)
	if err != nil {
		return nil, wrap(ErrMsgListStatsFailed, err)
	}
	if period == domain.PeriodAllTime {
		return leaderboard.Rank(leaderboard.FromStats(all)), nil
	}

	points, err := s.repo.SumPointsSince(ctx, period.Since(s.clock.Now()))
	if err != nil {
		return nil, wrap(ErrMsgPeriodPointsFailed, err)
	}
	sort.SliceStable(points, func(i, j int) bool { return points[i].UserID < points[j].UserID })

	totals := make(map[string]int, len(all))
	for i := range all {
		totals[all[i].UserID] = all[i].TotalPoints
	}
	return leaderboard.Rank(leaderboard.FromPeriodPoints(points, totals)), nil
}
