package app

import (
	"errors"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Issuer        string        // Issuer claim for session tokens (default: linkmark-auth)
	SessionSecret string        // Required: HMAC secret for session tokens; no fallback
	SessionTTL    time.Duration // Session token lifetime (default: 2h)

	UsersFile    string // Path to the JSON user store (default: ./users.json)
	AuditLogFile string // Path to the append-only audit log (default: ./app.log)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

// ErrMissingSecret means AUTH_SESSION_SECRET was not set. The secret guards
// every session token, so refusing to start beats a baked-in default.
var ErrMissingSecret = errors.New("app: AUTH_SESSION_SECRET must be set")

func LoadConfig() Config {
	return Config{
		Issuer:              getEnvOrDefault("AUTH_ISSUER", "linkmark-auth"),
		SessionSecret:       os.Getenv("AUTH_SESSION_SECRET"),
		SessionTTL:          getEnvDurationOrDefault("AUTH_SESSION_TTL", 2*time.Hour),
		UsersFile:           getEnvOrDefault("AUTH_USERS_FILE", "users.json"),
		AuditLogFile:        getEnvOrDefault("AUTH_AUDIT_LOG_FILE", "app.log"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

// Validate checks the parts of the config that have no safe default.
func (cfg Config) Validate() error {
	if cfg.SessionSecret == "" {
		return ErrMissingSecret
	}
	return nil
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
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}
	return defaultValue
}
