package progression

import (
	"math"

	"github.com/Eloquas/Eloverit-sub002/internal/domain"
)

// PointsPerLevelUnit scales the quadratic level curve: reaching level n takes (n-1)^2 units.
const PointsPerLevelUnit = 100

type levelTitle struct {
	minLevel int
	title    string
}

// Checked top-down, first match wins
var levelTitles = []levelTitle{
	{50, "Legendary Sales Master"},
	{40, "Sales Grandmaster"},
	{30, "Elite Closer"},
	{20, "Sales Expert"},
	{10, "Senior Sales Pro"},
	{5, "Sales Professional"},
	{0, "Sales Apprentice"},
}

// Level returns floor(sqrt(points/100)) + 1
func Level(points int) int {
	if points < 0 {
		points = 0
	}
	l := int(math.Sqrt(float64(points) / PointsPerLevelUnit))
	// guard the float result at perfect-square boundaries
	for (l+1)*(l+1)*PointsPerLevelUnit <= points {
		l++
	}
	for l > 0 && l*l*PointsPerLevelUnit > points {
		l--
	}
	return l + 1
}

// PointsForLevel is the cumulative total needed to reach level
func PointsForLevel(level int) int {
	if level <= 1 {
		return 0
	}
	return (level - 1) * (level - 1) * PointsPerLevelUnit
}

// LevelTitle names a level
func LevelTitle(level int) string {
	for _, lt := range levelTitles {
		if level >= lt.minLevel {
			return lt.title
		}
	}
	return levelTitles[len(levelTitles)-1].title
}

// ForPoints derives the full level state for a point total
func ForPoints(points int) domain.LevelInfo {
	if points < 0 {
		points = 0
	}
	level := Level(points)
	current := PointsForLevel(level)
	next := PointsForLevel(level + 1)

	pct := int(math.Round(100 * float64(points-current) / float64(next-current)))

	return domain.LevelInfo{
		Level:                   level,
		Title:                   LevelTitle(level),
		PointsForCurrentLevel:   current,
		PointsForNextLevel:      next,
		XPToNextLevel:           next - points,
		LevelProgressPercentage: clampPercent(pct),
	}
}

func clampPercent(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
