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
	LogLevel    string
	LogFormat   string
	LogDir      string
	ServiceName string
	Environment string
	Version     string
	APIKey      string

	TrustedProxies []string

	DBDriver   string
	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string
	SQLitePath string

	RedisAddr string
	// IndexResyncInterval rebuilds the Redis index periodically; 0 disables
	IndexResyncInterval time.Duration

	DiscordToken     string
	DiscordChannelID string

	// CatalogPath points at a JSON catalog file; empty uses the built-in catalog
	CatalogPath string

	LeaderboardCacheSize int
	LeaderboardCacheTTL  time.Duration
	DeadLetterPath       string
	StreakDecayEnabled   bool
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		LogDir:      getEnv("LOG_DIR", ""),
		ServiceName: getEnv("SERVICE_NAME", DefaultServiceName),
		Environment: getEnv("ENVIRONMENT", "dev"),
		Version:     getEnv("VERSION", "dev"),
		APIKey:      getEnv("API_KEY", ""),

		DBDriver:   getEnv("DB_DRIVER", DriverPostgres),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBName:     getEnv("DB_NAME", "eloverit"),
		SQLitePath: getEnv("SQLITE_PATH", DefaultSQLitePath),

		RedisAddr: getEnv("REDIS_ADDR", ""),

		DiscordToken:     getEnv("DISCORD_TOKEN", ""),
		DiscordChannelID: getEnv("DISCORD_CHANNEL_ID", ""),

		CatalogPath: getEnv("CATALOG_PATH", ""),

		LeaderboardCacheSize: getEnvAsInt("LEADERBOARD_CACHE_SIZE", DefaultLeaderboardCacheSize),
		DeadLetterPath:       getEnv("DEAD_LETTER_PATH", DefaultDeadLetterPath),
		StreakDecayEnabled:   getEnvAsBool("STREAK_DECAY_ENABLED", true),
	}

	port, err := strconv.Atoi(getEnv("PORT", strconv.Itoa(DefaultPort)))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	cfg.TrustedProxies = splitList(getEnv("TRUSTED_PROXIES", ""))

	ttl, err := time.ParseDuration(getEnv("LEADERBOARD_CACHE_TTL", DefaultLeaderboardCacheTTL))
	if err != nil {
		return nil, fmt.Errorf("invalid LEADERBOARD_CACHE_TTL value: %w", err)
	}
	cfg.LeaderboardCacheTTL = ttl

	resync, err := time.ParseDuration(getEnv("LEADERBOARD_INDEX_RESYNC", DefaultIndexResyncInterval))
	if err != nil {
		return nil, fmt.Errorf("invalid LEADERBOARD_INDEX_RESYNC value: %w", err)
	}
	cfg.IndexResyncInterval = resync

	if err := cfg.Validate(); err != nil {
		return nil, err
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

func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// splitList parses a comma separated list, dropping blanks
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
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
