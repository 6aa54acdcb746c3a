package domain

import "time"

// LeaderboardPeriod selects which points count toward a ranking
type LeaderboardPeriod string

const (
	PeriodAllTime LeaderboardPeriod = "all"
	PeriodDaily   LeaderboardPeriod = "daily"
	PeriodWeekly  LeaderboardPeriod = "weekly"
	PeriodMonthly LeaderboardPeriod = "monthly"
)

// Valid reports whether p is a known period
func (p LeaderboardPeriod) Valid() bool {
	switch p {
	case PeriodAllTime, PeriodDaily, PeriodWeekly, PeriodMonthly:
		return true
	}
	return false
}

// Since returns the start of the window containing now, or the zero time for all-time.
// Weeks start on Monday, all boundaries are UTC midnight.
func (p LeaderboardPeriod) Since(now time.Time) time.Time {
	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	switch p {
	case PeriodDaily:
		return today
	case PeriodWeekly:
		offset := (int(today.Weekday()) + 6) % 7
		return today.AddDate(0, 0, -offset)
	case PeriodMonthly:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	case PeriodAllTime:
	}
	return time.Time{}
}

// LeaderboardScope narrows a leaderboard query
type LeaderboardScope struct {
	Period LeaderboardPeriod `json:"period"`
	Limit  int               `json:"limit"`
}

// LeaderboardEntry is one ranked row
type LeaderboardEntry struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Points int    `json:"points"`
	Level  int    `json:"level"`
	Rank   int    `json:"rank"`
}

// PeriodPoints is a user's point sum inside a period window
type PeriodPoints struct {
	UserID string
	Name   string
	Points int
}
