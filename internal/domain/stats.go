package domain

import "time"

// Activity types accepted by RecordActivity. Anything else is a no-op on counters.
const (
	ActivityEmailSent         = "email_sent"
	ActivityLinkedInPost      = "linkedin_post"
	ActivityTrustScore        = "trust_score"
	ActivityStoryScore        = "story_score"
	ActivityCallAnalyzed      = "call_analyzed"
	ActivityCampaignCreated   = "campaign_created"
	ActivityAccountResearched = "account_researched"
)

// Metadata keys read from RecordActivity metadata
const (
	MetadataKeyScore    = "score"
	MetadataKeyUserName = "user_name"
)

// Score ranges produced by the scoring pipeline
const (
	MaxTrustScore = 100.0
	MaxStoryScore = 20.0
)

// UserStats is the per-user running state
type UserStats struct {
	UserID             string     `json:"user_id"`
	DisplayName        string     `json:"display_name,omitempty"`
	TotalEmails        int        `json:"total_emails"`
	TotalLinkedInPosts int        `json:"total_linkedin_posts"`
	TotalCallsAnalyzed int        `json:"total_calls_analyzed"`
	TotalCampaigns     int        `json:"total_campaigns"`
	AccountsResearched int        `json:"accounts_researched"`
	TotalPoints        int        `json:"total_points"`
	HighestTrustScore  float64    `json:"highest_trust_score"`
	BestStoryScore     float64    `json:"best_story_score"`
	CurrentStreak      int        `json:"current_streak"`
	LongestStreak      int        `json:"longest_streak"`
	LastActivityDate   *time.Time `json:"last_activity_date,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// NewUserStats returns a zeroed record
func NewUserStats(userID string, now time.Time) *UserStats {
	return &UserStats{
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Name returns the display name, falling back to the user id
func (s *UserStats) Name() string {
	if s.DisplayName != "" {
		return s.DisplayName
	}
	return s.UserID
}

// UnlockRecord exists at most once per (user, achievement)
type UnlockRecord struct {
	UserID        string    `json:"user_id"`
	AchievementID string    `json:"achievement_id"`
	Points        int       `json:"points"`
	UnlockedAt    time.Time `json:"unlocked_at"`
}

// UnlockEvent is returned for each newly unlocked achievement
type UnlockEvent struct {
	Achievement Achievement `json:"achievement"`
	Rarity      Rarity      `json:"rarity"`
	UnlockedAt  time.Time   `json:"unlocked_at"`
}

// LevelInfo is the derived level state for a point total
type LevelInfo struct {
	Level                   int    `json:"level"`
	Title                   string `json:"level_title"`
	PointsForCurrentLevel   int    `json:"points_for_current_level"`
	PointsForNextLevel      int    `json:"points_for_next_level"`
	XPToNextLevel           int    `json:"xp_to_next_level"`
	LevelProgressPercentage int    `json:"level_progress_percentage"`
}

// StreakInfo is the derived streak state for a streak length
type StreakInfo struct {
	Current             int     `json:"current"`
	Longest             int     `json:"longest"`
	Level               string  `json:"level"`
	Icon                string  `json:"icon"`
	Multiplier          float64 `json:"multiplier"`
	NextMilestone       int     `json:"next_milestone"`
	DaysToNextMilestone int     `json:"days_to_next_milestone"`
	IsOnFire            bool    `json:"is_on_fire"`
}

// EnhancedUserStats merges raw stats with derived progression
type EnhancedUserStats struct {
	UserStats
	LevelInfo
	Streak               StreakInfo `json:"streak"`
	UnlockedCount        int        `json:"unlocked_count"`
	TotalAchievements    int        `json:"total_achievements"`
	CompletionPercentage int        `json:"completion_percentage"`
}

// UnlockedAchievement pairs a definition with when it was earned
type UnlockedAchievement struct {
	Achievement
	Rarity     Rarity    `json:"rarity"`
	UnlockedAt time.Time `json:"unlocked_at"`
}

// AchievementProgress describes a locked achievement
type AchievementProgress struct {
	Achievement     Achievement `json:"achievement"`
	Rarity          Rarity      `json:"rarity"`
	CurrentValue    float64     `json:"current_value"`
	ProgressPercent int         `json:"progress_percent"`
}

// UserAchievements is the full per-user view
type UserAchievements struct {
	Unlocked   []UnlockedAchievement `json:"unlocked"`
	InProgress []AchievementProgress `json:"in_progress"`
	Stats      EnhancedUserStats     `json:"stats"`
}
