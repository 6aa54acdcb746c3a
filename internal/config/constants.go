package config

// Supported values for DB_DRIVER
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// Defaults applied when the environment is silent
const (
	DefaultPort                 = 8080
	DefaultServiceName          = "eloverit-achievements"
	DefaultSQLitePath           = "data/achievements.db"
	DefaultLeaderboardCacheSize = 64
	DefaultLeaderboardCacheTTL  = "30s"
	DefaultIndexResyncInterval  = "15m"
	DefaultDeadLetterPath       = "logs/deadletter.jsonl"
	DefaultLeaderboardLimit     = 10
)

// Placeholder values shipped in .env.example
const (
	exampleDBPassword = "change_this_secure_password"
	exampleAPIKey     = "generate_with_openssl_rand_hex_32"
)
