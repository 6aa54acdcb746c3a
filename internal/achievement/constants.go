package achievement

// Log messages
const (
	LogMsgActivityRecorded     = "Activity recorded"
	LogMsgUnknownActivity      = "Unknown activity type, evaluating without counter change"
	LogMsgScoreIgnored         = "Score missing or out of range, best score unchanged"
	LogMsgAchievementUnlocked  = "Achievement unlocked"
	LogMsgLevelUp              = "User levelled up"
	LogMsgLeaderboardIndexMiss = "Leaderboard index unavailable, falling back to store"
	LogMsgUnknownUnlockID      = "Stored unlock references an achievement missing from the catalog"
)

// Error messages
const (
	ErrMsgLoadStatsFailed       = "failed to load user stats"
	ErrMsgSaveStatsFailed       = "failed to save user stats"
	ErrMsgLoadUnlocksFailed     = "failed to load unlocks"
	ErrMsgInsertUnlockFailed    = "failed to record unlock"
	ErrMsgListStatsFailed       = "failed to list user stats"
	ErrMsgPeriodPointsFailed    = "failed to sum period points"
	ErrMsgMissingExtractor      = "no progress extractor for criterion"
	ErrMsgNegativeLeaderboardNo = "leaderboard limit must not be negative"
)
