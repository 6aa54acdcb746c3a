package domain

import "errors"

// Error message string constants - single source of truth for error messages
const (
	ErrMsgInvalidInput      = "invalid input"
	ErrMsgUserIDRequired    = "user id is required"
	ErrMsgUnknownActivity   = "unknown activity type"
	ErrMsgInvalidPeriod     = "invalid leaderboard period"
	ErrMsgConnectionTimeout = "connection timeout"
	ErrMsgDatabaseError     = "database error"

	// Catalog configuration errors
	ErrMsgInvalidAchievement   = "invalid achievement definition"
	ErrMsgDuplicateAchievement = "duplicate achievement id"
	ErrMsgUnknownCriterion     = "unknown criterion type"
	ErrMsgCatalogSealed        = "catalog is sealed"
	ErrMsgAchievementNotFound  = "achievement not found"
)

// Wrap with fmt.Errorf("%w: %s", domain.ErrXxx, details) for context.
var (
	ErrInvalidInput      = errors.New(ErrMsgInvalidInput)
	ErrUserIDRequired    = errors.New(ErrMsgUserIDRequired)
	ErrInvalidPeriod     = errors.New(ErrMsgInvalidPeriod)
	ErrConnectionTimeout = errors.New(ErrMsgConnectionTimeout)
	ErrDatabaseError     = errors.New(ErrMsgDatabaseError)

	ErrInvalidAchievement   = errors.New(ErrMsgInvalidAchievement)
	ErrDuplicateAchievement = errors.New(ErrMsgDuplicateAchievement)
	ErrUnknownCriterion     = errors.New(ErrMsgUnknownCriterion)
	ErrCatalogSealed        = errors.New(ErrMsgCatalogSealed)
	ErrAchievementNotFound  = errors.New(ErrMsgAchievementNotFound)
)
