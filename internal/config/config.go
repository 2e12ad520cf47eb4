package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/vytor/mathsprint/internal/logger"
)

type Config struct {
	Addr         string
	DBPath       string
	LogLevel     string
	CatalogPath  string
	SessionTTL   time.Duration
	MaxSessions  int
	TickInterval time.Duration

	ArchiveWorkerCount int
	ArchiveQueueSize   int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:         envOr("ADDR", ":8080"),
		DBPath:       envOr("DB_PATH", "file:mathsprint.db"),
		LogLevel:     envOr("LOG_LEVEL", "INFO"),
		CatalogPath:  envOr("CATALOG_PATH", ""),
		SessionTTL:   envDurationOr("SESSION_TTL", 30*time.Minute),
		MaxSessions:  envIntOr("MAX_SESSIONS", 1000),
		TickInterval: envDurationOr("TICK_INTERVAL", time.Second),

		ArchiveWorkerCount: envIntOr("ARCHIVE_WORKER_COUNT", 1),
		ArchiveQueueSize:   envIntOr("ARCHIVE_QUEUE_SIZE", 256),
	}
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if c.Addr == "" {
		errs = append(errs, errors.New("ADDR cannot be empty"))
	}
	if c.DBPath == "" {
		errs = append(errs, errors.New("DB_PATH cannot be empty"))
	}
	if !logger.ValidLevel(c.LogLevel) {
		errs = append(errs, fmt.Errorf("LOG_LEVEL %q is not one of DEBUG, INFO, WARN, ERROR", c.LogLevel))
	}
	if c.CatalogPath != "" {
		if _, err := os.Stat(c.CatalogPath); err != nil {
			errs = append(errs, fmt.Errorf("CATALOG_PATH %q: %w", c.CatalogPath, err))
		}
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, fmt.Errorf("SESSION_TTL must be positive, got %s", c.SessionTTL))
	}
	if c.MaxSessions <= 0 {
		errs = append(errs, fmt.Errorf("MAX_SESSIONS must be positive, got %d", c.MaxSessions))
	}
	if c.TickInterval <= 0 {
		errs = append(errs, fmt.Errorf("TICK_INTERVAL must be positive, got %s", c.TickInterval))
	}
	if c.ArchiveWorkerCount <= 0 {
		errs = append(errs, fmt.Errorf("ARCHIVE_WORKER_COUNT must be positive, got %d", c.ArchiveWorkerCount))
	}
	if c.ArchiveQueueSize <= 0 {
		errs = append(errs, fmt.Errorf("ARCHIVE_QUEUE_SIZE must be positive, got %d", c.ArchiveQueueSize))
	}
	return errors.Join(errs...)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envDurationOr(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("invalid value for %s=%q, using default %s", key, v, def)
	}
	return def
}
