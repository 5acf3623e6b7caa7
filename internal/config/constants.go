package config

import "time"

const (
	// Configuration file paths
	ConfigPathCrates = "configs/crates.json"
)

// Defaults
const (
	DefaultEnvironment   = "dev"
	DefaultVersion       = "dev"
	DefaultServiceName   = "cratebot"
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "text"
	DefaultDBMaxConns    = 10
	DefaultKeyMenuSize   = 54
	MaxKeyMenuSize       = 54
	DefaultCacheSize     = 256
	DefaultPromptTTL     = 60 * time.Second
	DefaultPresenceTTL   = 10 * time.Minute
	DefaultDBMaxIdleTime = 5 * time.Minute
	DefaultDBMaxConnLife = time.Hour
)
