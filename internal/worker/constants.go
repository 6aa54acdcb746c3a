package worker

import "time"

// ============================================================================
// Log Messages - Worker Pool
// ============================================================================

// Log messages for pool operations
const (
	LogMsgWorkerJobFailed = "Worker job failed"
	LogMsgWorkerQueueFull = "Worker queue full, job dropped"
)

// ============================================================================
// Log Messages - Streak Decay Worker
// ============================================================================

// Log messages for streak decay worker operations
const (
	LogMsgStreakDecayStarting  = "Streak decay starting"
	LogMsgStreakDecayCompleted = "Streak decay completed"
	LogMsgStreakDecayFailed    = "Streak decay failed"
	LogMsgStreakDecayScheduled = "Streak decay scheduled"
	LogMsgStreakDecayStandby   = "Streak decay standby"
)

// ============================================================================
// Scheduling
// ============================================================================

const (
	// StandbyThreshold switches scheduling from standby to final approach
	StandbyThreshold = time.Hour
	// StandbyLead is how long before midnight the standby timer wakes
	StandbyLead = 45 * time.Minute
	// EarlyFireTolerance is how early a timer may fire before it is rescheduled
	EarlyFireTolerance = 10 * time.Second
	// DecayTimeout bounds a single decay run
	DecayTimeout = 5 * time.Minute
)

// ============================================================================
// Test Configuration
// ============================================================================

// Test pool configuration values used in pool_test.go
const (
	TestWorkerCount      = 2
	TestQueueSize        = 10
	TestExpectedJobCount = 2
)
