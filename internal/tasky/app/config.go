package app

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/taskyhq/tasky/pkg/jwtx"
)

type Config struct {
	JWTSecret string        // Required: HMAC secret for identity tokens
	Issuer    string        // Optional: issuer claim for tokens (default: tasky)
	TokenTTL  time.Duration // Optional: identity token lifetime (default: 7 days)
	HashCost  int           // Optional: bcrypt work factor (default: 10)

	DatabaseFile        string        // Optional: path to SQLite database file (default: ./tasky.db)
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 5000)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	// A local .env is a convenience for development; real deployments set
	// the environment directly.
	_ = godotenv.Load(".env")

	return Config{
		JWTSecret:           os.Getenv("JWT_SECRET"),
		Issuer:              getEnvOrDefault("TOKEN_ISSUER", "tasky"),
		TokenTTL:            getEnvDurationOrDefault("TOKEN_TTL", jwtx.DefaultTokenTTL),
		HashCost:            getEnvIntOrDefault("BCRYPT_COST", 10),
		DatabaseFile:        getEnvOrDefault("DATABASE_FILE", "tasky.db"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 5000),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Accept Go duration syntax ("168h", "30m") first.
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Fall back to plain integer hours for token lifetimes.
	if hours, err := strconv.Atoi(value); err == nil {
		return time.Duration(hours) * time.Hour
	}

	return defaultValue
}
