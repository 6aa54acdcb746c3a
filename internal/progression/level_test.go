package progression

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevel(t *testing.T) {
	tests := []struct {
		name   string
		points int
		want   int
	}{
		{"zero points", 0, 1},
		{"first email", 10, 1},
		{"just below level 2", 99, 1},
		{"exactly level 2", 100, 2},
		{"just below level 3", 399, 2},
		{"exactly level 3", 400, 3},
		{"level 6 boundary", 2500, 6},
		{"level 11", 10000, 11},
		{"negative clamps", -50, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Level(tt.points))
		})
	}
}

func TestLevelRoundTrip(t *testing.T) {
	for p := 0; p <= 100000; p += 7 {
		l := Level(p)
		if PointsForLevel(l) > p || p >= PointsForLevel(l+1) {
			t.Fatalf("points %d level %d outside [%d, %d)", p, l, PointsForLevel(l), PointsForLevel(l+1))
		}
	}
}

func TestForPoints(t *testing.T) {
	tests := []struct {
		name   string
		points int
		want   int
		pct    int
		xp     int
	}{
		{"new user", 0, 1, 0, 100},
		{"first email", 10, 1, 10, 90},
		{"level 6 at zero progress", 2500, 6, 0, 1100},
		{"half way through level 2", 250, 2, 50, 150},
		{"rounding", 101, 2, 0, 299},
		{"rounding up", 102, 2, 1, 298},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := ForPoints(tt.points)
			assert.Equal(t, tt.want, info.Level)
			assert.Equal(t, tt.pct, info.LevelProgressPercentage)
			assert.Equal(t, tt.xp, info.XPToNextLevel)
			assert.Equal(t, PointsForLevel(info.Level), info.PointsForCurrentLevel)
			assert.Equal(t, PointsForLevel(info.Level+1), info.PointsForNextLevel)
		})
	}
}

func TestForPoints_Level6(t *testing.T) {
	info := ForPoints(2500)
	assert.Equal(t, 2500, info.PointsForCurrentLevel)
	assert.Equal(t, 3600, info.PointsForNextLevel)
	assert.Equal(t, "Sales Professional", info.Title)
}

func TestLevelTitle(t *testing.T) {
	tests := []struct {
		level int
		want  string
	}{
		{1, "Sales Apprentice"},
		{4, "Sales Apprentice"},
		{5, "Sales Professional"},
		{10, "Senior Sales Pro"},
		{20, "Sales Expert"},
		{30, "Elite Closer"},
		{40, "Sales Grandmaster"},
		{49, "Sales Grandmaster"},
		{50, "Legendary Sales Master"},
		{99, "Legendary Sales Master"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, LevelTitle(tt.level), "level %d", tt.level)
	}
}
