package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	APIKey      string // API key for authentication
	Environment string
	Version     string
	ServiceName string
	LogLevel    string
	LogFormat   string
	LogDir      string

	DBUser         string
	DBPassword     string
	DBHost         string
	DBPort         string
	DBName         string
	DBMaxConns     int
	DBMaxIdleTime  time.Duration
	DBMaxConnLife  time.Duration
	TrustedProxies []string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	LangFile    string
	CratesFile  string
	KeyMenuSize int
	PromptTTL   time.Duration
	PresenceTTL time.Duration
	CacheSize   int
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		APIKey:      getEnv("API_KEY", ""),
		Environment: getEnv("ENVIRONMENT", DefaultEnvironment),
		Version:     getEnv("VERSION", DefaultVersion),
		ServiceName: getEnv("SERVICE_NAME", DefaultServiceName),
		LogLevel:    getEnv("LOG_LEVEL", DefaultLogLevel),
		LogFormat:   getEnv("LOG_FORMAT", DefaultLogFormat),
		LogDir:      getEnv("LOG_DIR", ""),

		DBUser:         getEnv("DB_USER", "postgres"),
		DBPassword:     getEnv("DB_PASSWORD", "postgres"),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBName:         getEnv("DB_NAME", "cratebot"),
		DBMaxConns:     getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),
		DBMaxIdleTime:  getEnvAsDuration("DB_MAX_IDLE_TIME", DefaultDBMaxIdleTime),
		DBMaxConnLife:  getEnvAsDuration("DB_MAX_CONN_LIFETIME", DefaultDBMaxConnLife),
		TrustedProxies: getEnvAsList("TRUSTED_PROXIES"),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		LangFile:    getEnv("LANG_FILE", ""),
		CratesFile:  getEnv("CRATES_FILE", ConfigPathCrates),
		KeyMenuSize: getEnvAsInt("KEY_MENU_SIZE", DefaultKeyMenuSize),
		PromptTTL:   getEnvAsDuration("PROMPT_TTL", DefaultPromptTTL),
		PresenceTTL: getEnvAsDuration("PRESENCE_TTL", DefaultPresenceTTL),
		CacheSize:   getEnvAsInt("CACHE_SIZE", DefaultCacheSize),
	}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	// Validate API key is set
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	if cfg.KeyMenuSize <= 0 || cfg.KeyMenuSize%9 != 0 || cfg.KeyMenuSize > MaxKeyMenuSize {
		return nil, fmt.Errorf("invalid KEY_MENU_SIZE %d: must be a multiple of 9 up to %d", cfg.KeyMenuSize, MaxKeyMenuSize)
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt parses an integer variable, falling back to the default when unset or invalid
func getEnvAsInt(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

// getEnvAsDuration parses a duration such as "90s" or "5m"
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}

// getEnvAsList splits a comma separated variable, dropping empty entries
func getEnvAsList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// RedisEnabled reports whether prompts should be stored in Redis
func (c *Config) RedisEnabled() bool {
	return c.RedisAddr != ""
}
