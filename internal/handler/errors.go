package handler

// Generic HTTP error messages for client responses.
// These never expose internal error details.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgInvalidLimit          = "Invalid limit parameter"

	ErrMsgRecordActivityFailed      = "Failed to record activity"
	ErrMsgEvaluateFailed            = "Failed to evaluate achievements"
	ErrMsgGetUserAchievementsFailed = "Failed to retrieve user achievements"
	ErrMsgGetLeaderboardFailed      = "Failed to retrieve leaderboard"
)

// User-facing messages derived from domain errors
const (
	ErrMsgGenericServerError     = "Something went wrong"
	ErrMsgUnknownError           = "Unknown error"
	ErrMsgInvalidRequestError    = "Invalid request. Please check your inputs."
	ErrMsgAuthFailedError        = "Authentication failed. Please check your API key."
	ErrMsgUserIDRequiredError    = "User id is required"
	ErrMsgInvalidPeriodError     = "Invalid period. Valid options: daily, weekly, monthly, all"
	ErrMsgAchievementNotFoundErr = "Achievement not found"
	ErrMsgUnavailableError       = "Server is temporarily unavailable. Please try again later."
)

// Log messages
const (
	LogMsgDecodeFailed      = "Failed to decode request"
	LogMsgValidationFailed  = "Request validation failed"
	LogMsgActivityRecorded  = "Activity recorded"
	LogMsgEvaluated         = "Achievements evaluated"
	LogMsgReadinessFailed   = "Readiness check failed"
	LogMsgServiceError      = "Service call failed"
	LogMsgEncodeFailed      = "Failed to encode JSON response"
	LogMsgWriteBufferFailed = "Failed to write response buffer"
)
