package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/arcadehq/critique/pkg/catalog"
)

// Config holds all application configuration.
type Config struct {
	Server        ServerConfig
	Storage       catalog.Config
	Observability ObservabilityConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host            string
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	// Health/metrics server (separate port for probes and scraping).
	HealthPort string
}

// ObservabilityConfig holds logging, metrics, and tracing settings.
type ObservabilityConfig struct {
	LogLevel  string
	LogFormat string

	MetricsEnabled bool
	StatsSchedule  string

	OTelEnabled     bool
	OTelEndpoint    string
	OTelServiceName string
	OTelInsecure    bool
}

// Load builds configuration from defaults, an optional YAML file, and
// environment variables, then validates the result. An empty path falls back
// to CRITIQUE_CONFIG_FILE; no file at all is fine.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            "8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			HealthPort:      "9090",
		},
		Storage: catalog.DefaultConfig(),
		Observability: ObservabilityConfig{
			LogLevel:        "info",
			LogFormat:       "json",
			MetricsEnabled:  true,
			StatsSchedule:   "@every 1m",
			OTelEnabled:     false,
			OTelEndpoint:    "localhost:4317",
			OTelServiceName: "critique",
			OTelInsecure:    true,
		},
	}

	if path == "" {
		path = os.Getenv("CRITIQUE_CONFIG_FILE")
	}
	if path != "" {
		if err := applyFile(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// applyEnv overlays CRITIQUE_* environment variables.
func applyEnv(cfg *Config) {
	cfg.Server.Host = getEnv("CRITIQUE_HOST", cfg.Server.Host)
	cfg.Server.Port = getEnv("CRITIQUE_PORT", cfg.Server.Port)
	cfg.Server.HealthPort = getEnv("CRITIQUE_HEALTH_PORT", cfg.Server.HealthPort)
	cfg.Server.ReadTimeout = getEnvDuration("CRITIQUE_READ_TIMEOUT", cfg.Server.ReadTimeout)
	cfg.Server.WriteTimeout = getEnvDuration("CRITIQUE_WRITE_TIMEOUT", cfg.Server.WriteTimeout)
	cfg.Server.IdleTimeout = getEnvDuration("CRITIQUE_IDLE_TIMEOUT", cfg.Server.IdleTimeout)
	cfg.Server.ShutdownTimeout = getEnvDuration("CRITIQUE_SHUTDOWN_TIMEOUT", cfg.Server.ShutdownTimeout)

	cfg.Storage.Driver = getEnv("CRITIQUE_DB_DRIVER", cfg.Storage.Driver)
	cfg.Storage.DSN = getEnv("CRITIQUE_DB_DSN", cfg.Storage.DSN)
	cfg.Storage.MaxOpenConns = getEnvInt("CRITIQUE_DB_MAX_OPEN_CONNS", cfg.Storage.MaxOpenConns)
	cfg.Storage.MaxIdleConns = getEnvInt("CRITIQUE_DB_MAX_IDLE_CONNS", cfg.Storage.MaxIdleConns)
	cfg.Storage.ConnMaxLifetime = getEnvDuration("CRITIQUE_DB_CONN_MAX_LIFETIME", cfg.Storage.ConnMaxLifetime)
	cfg.Storage.ListLimit = getEnvInt("CRITIQUE_LIST_LIMIT", cfg.Storage.ListLimit)
	cfg.Storage.Cache = getEnv("CRITIQUE_CACHE", cfg.Storage.Cache)
	cfg.Storage.LRUSize = getEnvInt("CRITIQUE_LRU_SIZE", cfg.Storage.LRUSize)
	cfg.Storage.RedisAddr = getEnv("CRITIQUE_REDIS_ADDR", cfg.Storage.RedisAddr)
	cfg.Storage.RedisPassword = getEnv("CRITIQUE_REDIS_PASSWORD", cfg.Storage.RedisPassword)
	cfg.Storage.RedisDB = getEnvInt("CRITIQUE_REDIS_DB", cfg.Storage.RedisDB)
	cfg.Storage.RedisTTL = getEnvDuration("CRITIQUE_REDIS_TTL", cfg.Storage.RedisTTL)

	cfg.Observability.LogLevel = getEnv("CRITIQUE_LOG_LEVEL", cfg.Observability.LogLevel)
	cfg.Observability.LogFormat = getEnv("CRITIQUE_LOG_FORMAT", cfg.Observability.LogFormat)
	cfg.Observability.MetricsEnabled = getEnvBool("CRITIQUE_METRICS_ENABLED", cfg.Observability.MetricsEnabled)
	cfg.Observability.StatsSchedule = getEnv("CRITIQUE_STATS_SCHEDULE", cfg.Observability.StatsSchedule)
	cfg.Observability.OTelEnabled = getEnvBool("CRITIQUE_OTEL_ENABLED", cfg.Observability.OTelEnabled)
	cfg.Observability.OTelEndpoint = getEnv("CRITIQUE_OTEL_ENDPOINT", cfg.Observability.OTelEndpoint)
	cfg.Observability.OTelServiceName = getEnv("CRITIQUE_OTEL_SERVICE_NAME", cfg.Observability.OTelServiceName)
	cfg.Observability.OTelInsecure = getEnvBool("CRITIQUE_OTEL_INSECURE", cfg.Observability.OTelInsecure)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if c.Server.HealthPort == "" {
		return fmt.Errorf("health port is required")
	}
	if c.Server.Port == c.Server.HealthPort {
		return fmt.Errorf("server port and health port must be different")
	}

	switch c.Storage.Driver {
	case "sqlite3", "postgres":
	default:
		return fmt.Errorf("invalid database driver: %s (must be sqlite3 or postgres)", c.Storage.Driver)
	}
	if c.Storage.DSN == "" {
		return fmt.Errorf("database DSN is required")
	}
	if c.Storage.ListLimit <= 0 {
		return fmt.Errorf("list limit must be positive")
	}

	switch c.Storage.Cache {
	case catalog.CacheNone:
	case catalog.CacheLRU:
		if c.Storage.LRUSize <= 0 {
			return fmt.Errorf("LRU size must be positive for lru cache")
		}
	case catalog.CacheRedis:
		if c.Storage.RedisAddr == "" {
			return fmt.Errorf("redis address is required for redis cache")
		}
	default:
		return fmt.Errorf("invalid cache type: %s (must be none, lru, or redis)", c.Storage.Cache)
	}

	if c.Observability.OTelEnabled {
		if c.Observability.OTelEndpoint == "" {
			return fmt.Errorf("OpenTelemetry endpoint is required when OTel is enabled")
		}
		if c.Observability.OTelServiceName == "" {
			return fmt.Errorf("OpenTelemetry service name is required when OTel is enabled")
		}
	}

	return nil
}

// getEnv returns an environment variable value or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool returns a boolean environment variable or a default.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return strings.ToLower(value) == "true" || value == "1"
	}
	return defaultValue
}

// getEnvInt returns an integer environment variable or a default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvDuration returns a duration environment variable or a default.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
