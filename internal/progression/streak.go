package progression

import (
	"math"

	"github.com/Eloquas/Eloverit-sub002/internal/domain"
)

// Streak constants
const (
	StreakWeek          = 7
	StreakOnFireDays    = 7
	MaxStreakMultiplier = 2.0
)

type streakTier struct {
	minDays int
	level   string
	icon    string
}

// Checked top-down, first match wins
var streakTiers = []streakTier{
	{30, "Legendary", "👑"},
	{21, "Epic", "💎"},
	{14, "Amazing", "⚡"},
	{7, "On Fire", "🔥"},
	{3, "Building", "✨"},
	{0, "Starting", "🌱"},
}

func tierFor(days int) streakTier {
	for _, t := range streakTiers {
		if days >= t.minDays {
			return t
		}
	}
	return streakTiers[len(streakTiers)-1]
}

// StreakLevel names a streak length
func StreakLevel(days int) string {
	return tierFor(days).level
}

// StreakIcon is the emoji paired with StreakLevel
func StreakIcon(days int) string {
	return tierFor(days).icon
}

// StreakMultiplier adds 10% per full week, capped at 2x.
// Display only: point awards never apply it.
func StreakMultiplier(days int) float64 {
	if days < 0 {
		days = 0
	}
	return math.Min(float64(10+days/StreakWeek)/10, MaxStreakMultiplier)
}

// NextStreakMilestone rounds up to the next whole week, 7 for an empty streak
func NextStreakMilestone(days int) int {
	if days <= 0 {
		return StreakWeek
	}
	return (days + StreakWeek - 1) / StreakWeek * StreakWeek
}

// ForStreak derives the full streak state
func ForStreak(current, longest int) domain.StreakInfo {
	if current < 0 {
		current = 0
	}
	if longest < current {
		longest = current
	}
	milestone := NextStreakMilestone(current)
	tier := tierFor(current)

	return domain.StreakInfo{
		Current:             current,
		Longest:             longest,
		Level:               tier.level,
		Icon:                tier.icon,
		Multiplier:          StreakMultiplier(current),
		NextMilestone:       milestone,
		DaysToNextMilestone: milestone - current,
		IsOnFire:            current >= StreakOnFireDays,
	}
}
