// Copyright 2026 Asma Gulbaz
//
// Configuration package for the ax inspection tooling

package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds the configuration for the ax command and inspection server.
type Config struct {
	SnapshotPath string
	AuditLogPath string
	LogLevel     string
	LogFormat    string
	WaitTimeout  time.Duration
	PollInterval time.Duration
	Debug        bool
}

// Load loads the configuration from environment variables.
func Load() (*Config, error) {
	waitTimeout, err := getEnvAsDuration("AX_WAIT_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}

	pollInterval, err := getEnvAsDuration("AX_POLL_INTERVAL", 200*time.Millisecond)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		SnapshotPath: os.Getenv("AX_SNAPSHOT"),
		AuditLogPath: os.Getenv("AX_AUDIT_LOG"),
		LogLevel:     getEnv("AX_LOG_LEVEL", "info"),
		LogFormat:    getEnv("AX_LOG_FORMAT", "text"),
		WaitTimeout:  waitTimeout,
		PollInterval: pollInterval,
		Debug:        getEnvAsBool("AX_DEBUG", false),
	}

	if cfg.PollInterval <= 0 {
		return nil, fmt.Errorf("poll interval must be positive, got %s", cfg.PollInterval)
	}
	if cfg.WaitTimeout <= 0 {
		return nil, fmt.Errorf("wait timeout must be positive, got %s", cfg.WaitTimeout)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: %q (expected duration, e.g., '30s', '5m')", key, value)
	}
	return d, nil
}
