package bootstrap

import "time"

// =============================================================================
// File System Permissions
// =============================================================================

const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0755

	// LogFilePermission is the permission for log files
	LogFilePermission = 0666
)

// =============================================================================
// Logger Configuration
// =============================================================================

const (
	// LogFileTimestampFormat is the timestamp format for log filenames (YYYY-MM-DD_HH-MM-SS)
	LogFileTimestampFormat = "2006-01-02_15-04-05"

	// LogFileNamePattern is the format string for log filenames
	LogFileNamePattern = "session_%s.log"

	// LogFileExtension is the file extension for log files
	LogFileExtension = ".log"

	// LogFileRetentionCount is the number of log files kept after cleanup
	LogFileRetentionCount = 9
)

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingCrateBot    = "Starting CrateBot"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file"
	ErrMsgFailedCreateLogsDir = "failed to create logs directory"
	ErrMsgFailedOpenLogFile   = "failed to open log file"
)

// =============================================================================
// Event System
// =============================================================================

const (
	LogMsgEventSystemInitialized     = "Event system initialized"
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
	ErrMsgFailedRegisterMetrics      = "failed to register metrics collector"
)

// =============================================================================
// Startup
// =============================================================================

const (
	// RedisPingTimeout bounds the connectivity check of the prompt store
	RedisPingTimeout = 5 * time.Second

	// KeyCacheTTL is how long key lookups stay cached
	KeyCacheTTL = 5 * time.Minute

	// MenuSessionTTL is how long an idle menu session survives
	MenuSessionTTL = 30 * time.Minute
)

const (
	LogMsgSyncingCrates         = "Syncing crates from JSON config..."
	LogMsgCratesSynced          = "Crates synced successfully"
	LogMsgCratesUnchanged       = "Crates config unchanged, sync skipped"
	LogMsgLanguageLoaded        = "Language file loaded"
	LogMsgLanguageDefault       = "Using embedded language file"
	LogMsgPromptStoreRedis      = "Prompt store backed by Redis"
	LogMsgPromptStoreMemory     = "Prompt store backed by memory"
	LogMsgServicesInitialized   = "Services initialized"
	ErrMsgFailedLoadCrates      = "failed to load crates config"
	ErrMsgInvalidCrates         = "invalid crates config"
	ErrMsgFailedSyncCrates      = "failed to sync crates to database"
	ErrMsgFailedLoadLanguage    = "failed to load language file"
	ErrMsgFailedConnectRedis    = "failed to connect to redis"
	ErrMsgFailedPrepareServices = "failed to prepare services"
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	LogMsgShuttingDownServer   = "Shutting down server..."
	LogMsgServerStopped        = "Server stopped"
	LogMsgServerForcedShutdown = "Server forced to shutdown"
	LogMsgRedisCloseFailed     = "Redis client close failed"

	// Service names for shutdown logging
	ServiceNamePlayer = "player"
)

// Shutdown log message format (service name will be prepended)
const (
	LogMsgServiceShutdownFailed = " service shutdown failed"
)
