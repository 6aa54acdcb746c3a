package achievement

import (
	"context"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/Eloquas/Eloverit-sub002/internal/domain"
	"github.com/Eloquas/Eloverit-sub002/internal/event"
	"github.com/Eloquas/Eloverit-sub002/internal/logger"
	"github.com/Eloquas/Eloverit-sub002/internal/repository"
)

func (s *service) RecordActivity(ctx context.Context, userID, activityType string, metadata map[string]any) ([]domain.UnlockEvent, error) {
	log := logger.FromContext(ctx)

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

		changed := applyDisplayName(stats, metadata)
		if applyActivity(ctx, stats, activityType, metadata) {
			touchStreak(stats, now)
			changed = true
		} else {
			log.Debug(LogMsgUnknownActivity, "user_id", userID, "activity_type", activityType)
		}

		out, err = s.evaluateLocked(ctx, tx, stats, now, changed)
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Info(LogMsgActivityRecorded, "user_id", userID, "activity_type", activityType, "unlocked", len(out.unlocked))

	s.publish(ctx, event.NewActivityRecordedEvent(userID, activityType, now))
	s.afterCommit(ctx, out)
	return out.unlocked, nil
}

// applyActivity mutates stats for a recognized activity type and reports
// whether the type was recognized.
func applyActivity(ctx context.Context, stats *domain.UserStats, activityType string, metadata map[string]any) bool {
	switch activityType {
	case domain.ActivityEmailSent:
		stats.TotalEmails++
	case domain.ActivityLinkedInPost:
		stats.TotalLinkedInPosts++
	case domain.ActivityCallAnalyzed:
		stats.TotalCallsAnalyzed++
	case domain.ActivityCampaignCreated:
		stats.TotalCampaigns++
	case domain.ActivityAccountResearched:
		stats.AccountsResearched++
	case domain.ActivityTrustScore:
		raiseBest(ctx, &stats.HighestTrustScore, metadata, domain.MaxTrustScore)
	case domain.ActivityStoryScore:
		raiseBest(ctx, &stats.BestStoryScore, metadata, domain.MaxStoryScore)
	default:
		return false
	}
	return true
}

// raiseBest overwrites best only with a strictly greater in-range score
func raiseBest(ctx context.Context, best *float64, metadata map[string]any, limit float64) bool {
	score, ok := scoreFrom(metadata, limit)
	if !ok {
		logger.FromContext(ctx).Debug(LogMsgScoreIgnored, "score", metadata[domain.MetadataKeyScore], "max", limit)
		return false
	}
	if score <= *best {
		return false
	}
	*best = score
	return true
}

func scoreFrom(metadata map[string]any, limit float64) (float64, bool) {
	raw, ok := metadata[domain.MetadataKeyScore]
	if !ok {
		return 0, false
	}

	var score float64
	switch v := raw.(type) {
	case float64:
		score = v
	case float32:
		score = float64(v)
	case int:
		score = float64(v)
	case int64:
		score = float64(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		score = f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		score = f
	default:
		return 0, false
	}

	if math.IsNaN(score) || score < 0 || score > limit {
		return 0, false
	}
	return score, true
}

func applyDisplayName(stats *domain.UserStats, metadata map[string]any) bool {
	name, ok := metadata[domain.MetadataKeyUserName].(string)
	if !ok {
		return false
	}
	name = strings.TrimSpace(name)
	if name == "" || name == stats.DisplayName {
		return false
	}
	stats.DisplayName = name
	return true
}

func touchUpdated(stats *domain.UserStats, now time.Time) {
	if now.After(stats.UpdatedAt) {
		stats.UpdatedAt = now
	}
}
