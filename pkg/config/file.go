package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors Config with YAML tags. Durations are strings in
// time.ParseDuration syntax; pointers distinguish "absent" from zero values.
type fileConfig struct {
	Server struct {
		Host            string `yaml:"host"`
		Port            string `yaml:"port"`
		HealthPort      string `yaml:"health_port"`
		ReadTimeout     string `yaml:"read_timeout"`
		WriteTimeout    string `yaml:"write_timeout"`
		IdleTimeout     string `yaml:"idle_timeout"`
		ShutdownTimeout string `yaml:"shutdown_timeout"`
	} `yaml:"server"`

	Storage struct {
		Driver          string `yaml:"driver"`
		DSN             string `yaml:"dsn"`
		MaxOpenConns    *int   `yaml:"max_open_conns"`
		MaxIdleConns    *int   `yaml:"max_idle_conns"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime"`
		ListLimit       *int   `yaml:"list_limit"`
		Cache           string `yaml:"cache"`
		LRUSize         *int   `yaml:"lru_size"`
		RedisAddr       string `yaml:"redis_addr"`
		RedisPassword   string `yaml:"redis_password"`
		RedisDB         *int   `yaml:"redis_db"`
		RedisTTL        string `yaml:"redis_ttl"`
	} `yaml:"storage"`

	Observability struct {
		LogLevel        string `yaml:"log_level"`
		LogFormat       string `yaml:"log_format"`
		MetricsEnabled  *bool  `yaml:"metrics_enabled"`
		StatsSchedule   string `yaml:"stats_schedule"`
		OTelEnabled     *bool  `yaml:"otel_enabled"`
		OTelEndpoint    string `yaml:"otel_endpoint"`
		OTelServiceName string `yaml:"otel_service_name"`
		OTelInsecure    *bool  `yaml:"otel_insecure"`
	} `yaml:"observability"`
}

// applyFile overlays values from a YAML file onto cfg.
func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("invalid YAML: %w", err)
	}

	setString(&cfg.Server.Host, fc.Server.Host)
	setString(&cfg.Server.Port, fc.Server.Port)
	setString(&cfg.Server.HealthPort, fc.Server.HealthPort)
	if err := setDuration(&cfg.Server.ReadTimeout, fc.Server.ReadTimeout); err != nil {
		return err
	}
	if err := setDuration(&cfg.Server.WriteTimeout, fc.Server.WriteTimeout); err != nil {
		return err
	}
	if err := setDuration(&cfg.Server.IdleTimeout, fc.Server.IdleTimeout); err != nil {
		return err
	}
	if err := setDuration(&cfg.Server.ShutdownTimeout, fc.Server.ShutdownTimeout); err != nil {
		return err
	}

	setString(&cfg.Storage.Driver, fc.Storage.Driver)
	setString(&cfg.Storage.DSN, fc.Storage.DSN)
	setInt(&cfg.Storage.MaxOpenConns, fc.Storage.MaxOpenConns)
	setInt(&cfg.Storage.MaxIdleConns, fc.Storage.MaxIdleConns)
	if err := setDuration(&cfg.Storage.ConnMaxLifetime, fc.Storage.ConnMaxLifetime); err != nil {
		return err
	}
	setInt(&cfg.Storage.ListLimit, fc.Storage.ListLimit)
	setString(&cfg.Storage.Cache, fc.Storage.Cache)
	setInt(&cfg.Storage.LRUSize, fc.Storage.LRUSize)
	setString(&cfg.Storage.RedisAddr, fc.Storage.RedisAddr)
	setString(&cfg.Storage.RedisPassword, fc.Storage.RedisPassword)
	setInt(&cfg.Storage.RedisDB, fc.Storage.RedisDB)
	if err := setDuration(&cfg.Storage.RedisTTL, fc.Storage.RedisTTL); err != nil {
		return err
	}

	setString(&cfg.Observability.LogLevel, fc.Observability.LogLevel)
	setString(&cfg.Observability.LogFormat, fc.Observability.LogFormat)
	setBool(&cfg.Observability.MetricsEnabled, fc.Observability.MetricsEnabled)
	setString(&cfg.Observability.StatsSchedule, fc.Observability.StatsSchedule)
	setBool(&cfg.Observability.OTelEnabled, fc.Observability.OTelEnabled)
	setString(&cfg.Observability.OTelEndpoint, fc.Observability.OTelEndpoint)
	setString(&cfg.Observability.OTelServiceName, fc.Observability.OTelServiceName)
	setBool(&cfg.Observability.OTelInsecure, fc.Observability.OTelInsecure)

	return nil
}

func setString(dest *string, value string) {
	if value != "" {
		*dest = value
	}
}

func setInt(dest *int, value *int) {
	if value != nil {
		*dest = *value
	}
}

func setBool(dest *bool, value *bool) {
	if value != nil {
		*dest = *value
	}
}

func setDuration(dest *time.Duration, value string) error {
	if value == "" {
		return nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value, err)
	}
	*dest = parsed
	return nil
}
