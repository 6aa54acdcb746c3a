package config

import (
	"errors"
	"fmt"
)

// Validate reports every configuration problem at once
func (c *Config) Validate() error {
	var errs []error

	if c.APIKey == "" {
		errs = append(errs, errors.New("API_KEY environment variable must be set for security"))
	}

	switch c.DBDriver {
	case DriverPostgres:
		if c.DBHost == "" || c.DBName == "" {
			errs = append(errs, errors.New("DB_HOST and DB_NAME are required for the postgres driver"))
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			errs = append(errs, errors.New("SQLITE_PATH is required for the sqlite driver"))
		}
	case DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver))
	}

	if c.LeaderboardCacheSize <= 0 {
		errs = append(errs, fmt.Errorf("LEADERBOARD_CACHE_SIZE must be positive, got %d", c.LeaderboardCacheSize))
	}

	if c.DiscordToken != "" && c.DiscordChannelID == "" {
		errs = append(errs, errors.New("DISCORD_CHANNEL_ID is required when DISCORD_TOKEN is set"))
	}

	return errors.Join(errs...)
}

// Warnings lists settings that work but look unsafe
func (c *Config) Warnings() []string {
	var warnings []string

	if c.DBPassword == exampleDBPassword {
		warnings = append(warnings, "DB_PASSWORD appears to be using the example value - please use a secure password")
	}

	if c.APIKey == exampleAPIKey {
		warnings = append(warnings, "API_KEY appears to be using the example value - generate a secure key with: openssl rand -hex 32")
	}

	return warnings
}
