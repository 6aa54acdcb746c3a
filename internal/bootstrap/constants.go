package bootstrap

import "time"

// File system permissions
const (
	DirPermission     = 0755
	LogFilePermission = 0644
)

// Session log files
const (
	LogFileTimestampFormat = "2006-01-02_15-04-05"
	LogFileNamePattern     = "session_%s.log"
	LogFileExtension       = ".log"
	// LogFileRetentionCount is how many older session logs survive startup cleanup
	LogFileRetentionCount = 9
)

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStarting            = "Starting achievements engine"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgConfigWarning       = "Configuration warning"
	ErrMsgFailedCreateLogsDir = "failed to create logs directory"
	ErrMsgFailedOpenLogFile   = "failed to open log file"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file"
)

// Event system defaults
const (
	EventDefaultMaxRetries = 5
	EventDefaultRetryDelay = 2 * time.Second
)

// Log messages for event system initialization
const (
	LogMsgEventSystemInitialized         = "Event system initialized"
	ErrMsgFailedCreateDeadLetterDir      = "failed to create dead-letter directory"
	ErrMsgFailedCreateResilientPublisher = "failed to create resilient publisher"
)

// Store selection
const (
	LogMsgStoreOpened          = "Stats store opened"
	ErrMsgUnsupportedDriver    = "unsupported database driver"
	ErrMsgFailedOpenStore      = "failed to open stats store"
	ErrMsgFailedCreateDataDir  = "failed to create data directory"
	ReadinessKeyStore          = "store"
	ReadinessKeyLeaderboardIdx = "leaderboard_index"
)

// Event handler registration
const (
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
	LogMsgLeaderboardIndexRegistered = "Leaderboard index registered"
	LogMsgAnnouncerRegistered        = "Discord announcer registered"
	LogMsgLeaderboardIndexRebuilt    = "Leaderboard index rebuilt"
	ErrMsgFailedRebuildIndex         = "failed to rebuild leaderboard index"
	NotifyPoolWorkers                = 2
	NotifyQueueSize                  = 256
)

// Periodic maintenance
const (
	JobNameIndexResync         = "leaderboard_index_resync"
	LogMsgIndexResyncScheduled = "Leaderboard index resync scheduled"
	MaintenancePoolWorkers     = 1
	MaintenanceQueueSize       = 1
)

// Shutdown
const (
	LogMsgShuttingDownServer         = "Shutting down server..."
	LogMsgShuttingDownEventPublisher = "Shutting down event publisher..."
	LogMsgServerStopped              = "Server stopped"
	LogMsgServerForcedShutdown       = "Server forced to shutdown"
	LogMsgResilientPublisherFailed   = "Resilient publisher shutdown failed"
	LogMsgDecayWorkerFailed          = "Streak decay worker shutdown failed"
	LogMsgCloseFailed                = "Failed to close resource"
)
