package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/undercity-game/undercity/internal/database"
)

// Config holds the application configuration
type Config struct {
	Port        int
	Environment string
	ServiceName string
	Version     string
	LogLevel    string
	LogFormat   string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	// Connection pool sizing, fed into database.PoolConfig
	DBMaxConns        int
	DBMinConns        int
	DBMaxConnIdleTime time.Duration
	DBMaxConnLifetime time.Duration

	APIKey         string   // API key for authentication
	TrustedProxies []string // IPs allowed to set X-Forwarded-For

	// Engine tuning
	LockTimeout     time.Duration // per-character row lock wait bound
	SweepInterval   time.Duration // contract expiration sweep cadence
	WorkerCount     int
	WorkerQueueSize int

	CatalogPath    string
	DeadLetterPath string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "dev"),
		ServiceName: getEnv("SERVICE_NAME", DefaultServiceName),
		Version:     getEnv("VERSION", "dev"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),

		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBName:     getEnv("DB_NAME", "undercity"),

		APIKey:         getEnv("API_KEY", ""),
		TrustedProxies: splitList(getEnv("TRUSTED_PROXIES", "")),

		CatalogPath:    getEnv("CATALOG_PATH", ConfigPathCatalog),
		DeadLetterPath: getEnv("DEAD_LETTER_PATH", DefaultDeadLetterPath),
	}

	port, err := getEnvInt("PORT", DefaultPort)
	if err != nil {
		return nil, err
	}
	cfg.Port = port

	cfg.DBMaxConns, err = getEnvInt("DB_MAX_CONNS", database.DefaultMaxConns)
	if err != nil {
		return nil, err
	}

	cfg.DBMinConns, err = getEnvInt("DB_MIN_CONNS", database.DefaultMinConns)
	if err != nil {
		return nil, err
	}

	cfg.DBMaxConnIdleTime, err = getEnvDuration("DB_MAX_CONN_IDLE_TIME", database.DefaultMaxConnIdleTime)
	if err != nil {
		return nil, err
	}

	cfg.DBMaxConnLifetime, err = getEnvDuration("DB_MAX_CONN_LIFETIME", database.DefaultMaxConnLifetime)
	if err != nil {
		return nil, err
	}

	cfg.LockTimeout, err = getEnvDuration("LOCK_TIMEOUT", DefaultLockTimeout)
	if err != nil {
		return nil, err
	}

	cfg.SweepInterval, err = getEnvDuration("SWEEP_INTERVAL", DefaultSweepInterval)
	if err != nil {
		return nil, err
	}

	cfg.WorkerCount, err = getEnvInt("WORKER_COUNT", DefaultWorkerCount)
	if err != nil {
		return nil, err
	}

	cfg.WorkerQueueSize, err = getEnvInt("WORKER_QUEUE_SIZE", DefaultWorkerQueueSize)
	if err != nil {
		return nil, err
	}

	// Validate API key is set
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	return cfg, nil
}

// splitList parses a comma-separated env value into a slice, dropping
// empty entries
func splitList(value string) []string {
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return d, nil
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

// PoolConfig assembles the connection pool settings from the loaded
// environment.
func (c *Config) PoolConfig() database.PoolConfig {
	return database.PoolConfig{
		ConnString:      c.GetDBConnString(),
		MaxConns:        int32(c.DBMaxConns),
		MinConns:        int32(c.DBMinConns),
		MaxConnIdleTime: c.DBMaxConnIdleTime,
		MaxConnLifetime: c.DBMaxConnLifetime,
	}
}
