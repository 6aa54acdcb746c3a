// Package leaderboard ranks users by points. Ranking is a stable sort by
// points descending and rank is position + 1, so tied users receive
// distinct sequential ranks in their input order.
package leaderboard

import (
	"sort"

	"github.com/Eloquas/Eloverit-sub002/internal/domain"
	"github.com/Eloquas/Eloverit-sub002/internal/progression"
)

// Rank returns a ranked copy of entries
func Rank(entries []domain.LeaderboardEntry) []domain.LeaderboardEntry {
	out := make([]domain.LeaderboardEntry, len(entries))
	copy(out, entries)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Points > out[j].Points
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

// Top truncates a ranked slice; limit <= 0 keeps everything
func Top(entries []domain.LeaderboardEntry, limit int) []domain.LeaderboardEntry {
	if limit <= 0 || limit >= len(entries) {
		return entries
	}
	return entries[:limit]
}

// FromStats builds all-time entries from user stats
func FromStats(stats []domain.UserStats) []domain.LeaderboardEntry {
	out := make([]domain.LeaderboardEntry, 0, len(stats))
	for i := range stats {
		out = append(out, domain.LeaderboardEntry{
			UserID: stats[i].UserID,
			Name:   stats[i].Name(),
			Points: stats[i].TotalPoints,
			Level:  progression.Level(stats[i].TotalPoints),
		})
	}
	return out
}

// FromPeriodPoints builds windowed entries. Level still reflects the
// user's all-time total when it is present in totals.
func FromPeriodPoints(points []domain.PeriodPoints, totals map[string]int) []domain.LeaderboardEntry {
	out := make([]domain.LeaderboardEntry, 0, len(points))
	for _, p := range points {
		total, ok := totals[p.UserID]
		if !ok {
			total = p.Points
		}
		out = append(out, domain.LeaderboardEntry{
			UserID: p.UserID,
			Name:   p.Name,
			Points: p.Points,
			Level:  progression.Level(total),
		})
	}
	return out
}
