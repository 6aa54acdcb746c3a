package achievement

import (
	"time"

	"github.com/Eloquas/Eloverit-sub002/internal/clock"
	"github.com/Eloquas/Eloverit-sub002/internal/domain"
)

// progressInput is everything a criterion can be measured against
type progressInput struct {
	stats    domain.UserStats
	streak   int
	unlocked int
}

func newProgressInput(stats *domain.UserStats, unlocked int, now time.Time) progressInput {
	return progressInput{
		stats:    *stats,
		streak:   effectiveStreak(stats, now),
		unlocked: unlocked,
	}
}

// criterionValue extracts the measured value for a criterion. The switch
// must stay exhaustive over domain.CriterionType.
func criterionValue(c domain.CriterionType, in progressInput) (float64, bool) {
	switch c {
	case domain.CriterionEmailsSent:
		return float64(in.stats.TotalEmails), true
	case domain.CriterionLinkedInPosts:
		return float64(in.stats.TotalLinkedInPosts), true
	case domain.CriterionTrustScore:
		return in.stats.HighestTrustScore, true
	case domain.CriterionStoryScore:
		return in.stats.BestStoryScore, true
	case domain.CriterionStreakDays:
		return float64(in.streak), true
	case domain.CriterionCallsAnalyzed:
		return float64(in.stats.TotalCallsAnalyzed), true
	case domain.CriterionCampaignsCreated:
		return float64(in.stats.TotalCampaigns), true
	case domain.CriterionAccountsResearched:
		return float64(in.stats.AccountsResearched), true
	case domain.CriterionTotalPoints:
		return float64(in.stats.TotalPoints), true
	case domain.CriterionAchievementsUnlocked:
		return float64(in.unlocked), true
	}
	return 0, false
}

// progressPercent is floor(100*value/threshold) clamped to [0,100]
func progressPercent(value, threshold float64) int {
	if threshold <= 0 {
		return 100
	}
	pct := int(100 * value / threshold)
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// effectiveStreak reports a streak as broken once a full UTC day has
// passed without activity, whether or not the decay job has run yet.
func effectiveStreak(stats *domain.UserStats, now time.Time) int {
	if stats.LastActivityDate == nil {
		return 0
	}
	yesterday := clock.StartOfDay(now).AddDate(0, 0, -1)
	if clock.StartOfDay(*stats.LastActivityDate).Before(yesterday) {
		return 0
	}
	return stats.CurrentStreak
}

// touchStreak advances the streak for activity at now
func touchStreak(stats *domain.UserStats, now time.Time) {
	today := clock.StartOfDay(now)

	switch {
	case stats.LastActivityDate == nil:
		stats.CurrentStreak = 1
	default:
		last := clock.StartOfDay(*stats.LastActivityDate)
		switch {
		case last.Equal(today):
			if stats.CurrentStreak == 0 {
				stats.CurrentStreak = 1
			}
		case last.AddDate(0, 0, 1).Equal(today):
			stats.CurrentStreak++
		case last.After(today):
			// clock moved backwards; keep the streak as is
		default:
			stats.CurrentStreak = 1
		}
	}

	if stats.CurrentStreak > stats.LongestStreak {
		stats.LongestStreak = stats.CurrentStreak
	}
	if stats.LastActivityDate == nil || now.After(*stats.LastActivityDate) {
		at := now
		stats.LastActivityDate = &at
	}
}
