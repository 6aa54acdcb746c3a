package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLeaderboardPeriod_Since(t *testing.T) {
	// Thursday afternoon
	now := time.Date(2024, 5, 16, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		period LeaderboardPeriod
		want   time.Time
	}{
		{PeriodDaily, time.Date(2024, 5, 16, 0, 0, 0, 0, time.UTC)},
		{PeriodWeekly, time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC)},
		{PeriodMonthly, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
		{PeriodAllTime, time.Time{}},
	}

	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.period.Since(now))
		})
	}
}

func TestLeaderboardPeriod_SinceOnSunday(t *testing.T) {
	sunday := time.Date(2024, 5, 19, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC), PeriodWeekly.Since(sunday))
}

func TestEnumValidity(t *testing.T) {
	assert.True(t, PeriodWeekly.Valid())
	assert.False(t, LeaderboardPeriod("yearly").Valid())
	assert.True(t, CategorySpecial.Valid())
	assert.False(t, Category("social").Valid())
	assert.True(t, TierPlatinum.Valid())
	assert.False(t, Tier("diamond").Valid())
}

func TestCriterionTypes(t *testing.T) {
	all := AllCriterionTypes()
	assert.Len(t, all, 10)

	seen := make(map[CriterionType]bool)
	for _, c := range all {
		assert.False(t, seen[c], "duplicate criterion %s", c)
		seen[c] = true
	}

	assert.True(t, CriterionTotalPoints.IsComposite())
	assert.True(t, CriterionAchievementsUnlocked.IsComposite())
	assert.False(t, CriterionEmailsSent.IsComposite())
}

func TestUserStatsName(t *testing.T) {
	stats := NewUserStats("u-42", time.Now())
	assert.Equal(t, "u-42", stats.Name())
	assert.Zero(t, stats.TotalPoints)

	stats.DisplayName = "Dana"
	assert.Equal(t, "Dana", stats.Name())
}
