package achievement

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Eloquas/Eloverit-sub002/internal/domain"
	"github.com/Eloquas/Eloverit-sub002/internal/event"
	"github.com/Eloquas/Eloverit-sub002/internal/logger"
	"github.com/Eloquas/Eloverit-sub002/internal/progression"
	"github.com/Eloquas/Eloverit-sub002/internal/repository"
)

// evaluation is the committed outcome of one evaluator run
type evaluation struct {
	stats     domain.UserStats
	oldPoints int
	unlocked  []domain.UnlockEvent
	changed   bool
}

func (s *service) Evaluate(ctx context.Context, userID string) ([]domain.UnlockEvent, error) {
	userID, err := normalizeUserID(userID)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()

	var out evaluation
	err = s.repo.WithinUserTx(ctx, userID, func(tx repository.AchievementTx) error {
		stats, err := tx.Stats(ctx)
		if err != nil {
			return wrap(ErrMsgLoadStatsFailed, err)
		}
		out, err = s.evaluateLocked(ctx, tx, stats, now, false)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.afterCommit(ctx, out)
	return out.unlocked, nil
}

// evaluateLocked runs inside the user's exclusive region. It repeats the
// catalog scan until nothing new unlocks so composite criteria see the
// points and unlocks awarded earlier in the same run.
func (s *service) evaluateLocked(ctx context.Context, tx repository.AchievementTx, stats *domain.UserStats, now time.Time, changed bool) (evaluation, error) {
	records, err := tx.Unlocks(ctx)
	if err != nil {
		return evaluation{}, wrap(ErrMsgLoadUnlocksFailed, err)
	}
	// ids retired from the catalog stay in have but are not counted
	have := make(map[string]bool, len(records))
	known := 0
	for _, rec := range records {
		have[rec.AchievementID] = true
		if _, ok := s.catalog.GetByID(rec.AchievementID); ok {
			known++
		}
	}

	out := evaluation{oldPoints: stats.TotalPoints}
	defs := s.catalog.ListAll()

	for progressed := true; progressed; {
		progressed = false
		for _, def := range defs {
			if have[def.ID] {
				continue
			}
			value, _ := criterionValue(def.Criterion.Type, newProgressInput(stats, known, now))
			if value < def.Criterion.Threshold {
				continue
			}

			inserted, err := tx.InsertUnlock(ctx, domain.UnlockRecord{
				UserID:        stats.UserID,
				AchievementID: def.ID,
				Points:        def.Points,
				UnlockedAt:    now,
			})
			if err != nil {
				return evaluation{}, wrap(ErrMsgInsertUnlockFailed, err)
			}
			have[def.ID] = true
			known++
			if !inserted {
				continue
			}

			stats.TotalPoints += def.Points
			out.unlocked = append(out.unlocked, domain.UnlockEvent{
				Achievement: def,
				Rarity:      progression.Rarity(def),
				UnlockedAt:  now,
			})
			progressed = true
		}
	}

	sort.SliceStable(out.unlocked, func(i, j int) bool {
		pi, _ := s.catalog.Position(out.unlocked[i].Achievement.ID)
		pj, _ := s.catalog.Position(out.unlocked[j].Achievement.ID)
		return pi < pj
	})

	if changed || len(out.unlocked) > 0 {
		touchUpdated(stats, now)
		if err := tx.SaveStats(ctx, stats); err != nil {
			return evaluation{}, wrap(ErrMsgSaveStatsFailed, err)
		}
		out.changed = true
	}
	out.stats = *stats
	return out, nil
}

// afterCommit publishes events, then invalidates cached rankings so a
// board cached while subscribers were updating the index is dropped.
func (s *service) afterCommit(ctx context.Context, out evaluation) {
	if !out.changed {
		return
	}
	defer s.invalidateLeaderboards()

	log := logger.FromContext(ctx)
	for _, u := range out.unlocked {
		log.Info(LogMsgAchievementUnlocked,
			"user_id", out.stats.UserID,
			"achievement_id", u.Achievement.ID,
			"points", u.Achievement.Points,
			"rarity", u.Rarity)

		s.publish(ctx, event.NewAchievementUnlockedEvent(event.AchievementUnlockedPayloadV1{
			UserID:        out.stats.UserID,
			DisplayName:   out.stats.DisplayName,
			AchievementID: u.Achievement.ID,
			Name:          u.Achievement.Name,
			Icon:          u.Achievement.Icon,
			Category:      string(u.Achievement.Category),
			Tier:          string(u.Achievement.Tier),
			Rarity:        string(u.Rarity),
			Points:        u.Achievement.Points,
			TotalPoints:   out.stats.TotalPoints,
			UnlockedAt:    u.UnlockedAt,
		}))
	}

	oldLevel := progression.Level(out.oldPoints)
	newLevel := progression.Level(out.stats.TotalPoints)
	if newLevel > oldLevel {
		log.Info(LogMsgLevelUp, "user_id", out.stats.UserID, "old_level", oldLevel, "new_level", newLevel)
		s.publish(ctx, event.NewLevelUpEvent(event.LevelUpPayloadV1{
			UserID:      out.stats.UserID,
			DisplayName: out.stats.DisplayName,
			OldLevel:    oldLevel,
			NewLevel:    newLevel,
			Title:       progression.LevelTitle(newLevel),
			TotalPoints: out.stats.TotalPoints,
		}))
	}
}

func wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
