package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	DB      DBConfig      `yaml:"db"`
	Log     LogConfig     `yaml:"log"`
	Billing BillingConfig `yaml:"billing"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// BillingConfig controls the daily billing tick.
type BillingConfig struct {
	// Schedule is a cron expression in the standard 5-field format.
	Schedule string `yaml:"schedule"`
	// Timezone is the IANA location the schedule is evaluated in.
	Timezone string `yaml:"timezone"`
	Enabled  bool   `yaml:"enabled"`
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		DB: DBConfig{
			Path: "pgdesk.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Billing: BillingConfig{
			Schedule: "0 9 * * *",
			Timezone: "Asia/Kolkata",
			Enabled:  true,
		},
	}

	if path := os.Getenv("PGDESK_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("PGDESK_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("PGDESK_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid PGDESK_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if dbPath := os.Getenv("PGDESK_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if level := os.Getenv("PGDESK_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if schedule := os.Getenv("PGDESK_BILLING_SCHEDULE"); schedule != "" {
		cfg.Billing.Schedule = schedule
	}
	if tz := os.Getenv("PGDESK_BILLING_TIMEZONE"); tz != "" {
		cfg.Billing.Timezone = tz
	}
	if enabled := os.Getenv("PGDESK_BILLING_ENABLED"); enabled != "" {
		v, err := strconv.ParseBool(enabled)
		if err != nil {
			return Config{}, fmt.Errorf("invalid PGDESK_BILLING_ENABLED: %w", err)
		}
		cfg.Billing.Enabled = v
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
