// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Load reads configuration from environment variables.
// It attempts to load from .env file first (for local development),
// then parses environment variables into the Config struct.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Warnf("no .env file found or error loading it: %v (this is normal in production)", err)
	} else {
		logrus.Infof("loaded environment variables from .env file")
	}

	return parse()
}

func parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config from environment: %w", err)
	}

	return cfg, nil
}

// Validate performs range and consistency checks on the parsed configuration.
func (c *Config) Validate() error {
	if c.MetricsPort < 1 || c.MetricsPort > 65535 {
		return fmt.Errorf("invalid METRICS_PORT: %d (must be 1-65535)", c.MetricsPort)
	}

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	switch c.StoreBackend {
	case StoreBackendRedis, StoreBackendFile, StoreBackendMemory:
	default:
		return fmt.Errorf("invalid STORE_BACKEND: %q (must be redis, file or memory)", c.StoreBackend)
	}

	if c.StoreKey == "" {
		return fmt.Errorf("STORE_KEY is required")
	}

	if c.StoreBackend == StoreBackendFile && c.StateDir == "" {
		return fmt.Errorf("STATE_DIR is required for the file backend")
	}

	if c.MemoryCacheSizeMB < 1 {
		return fmt.Errorf("invalid MEMORY_CACHE_SIZE_MB: %d (must be positive)", c.MemoryCacheSizeMB)
	}

	if c.RedisTTL < 0 {
		return fmt.Errorf("invalid REDIS_TTL: %v (must be non-negative)", c.RedisTTL)
	}

	if c.RedisMaxRetries < 0 {
		return fmt.Errorf("invalid REDIS_MAX_RETRIES: %d (must be non-negative)", c.RedisMaxRetries)
	}

	if _, err := c.Location(); err != nil {
		return err
	}

	if c.ChallengeDurationDays < 1 {
		return fmt.Errorf("invalid CHALLENGE_DURATION_DAYS: %d (must be positive)", c.ChallengeDurationDays)
	}

	if c.RolloverCheckInterval < time.Second {
		return fmt.Errorf("invalid ROLLOVER_CHECK_INTERVAL: %v (must be at least 1s)", c.RolloverCheckInterval)
	}

	return nil
}

// Location resolves TIMEZONE. "Local" and empty mean the host zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}

	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// RedisAddr returns host:port for the Redis client.
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}

// MemoryCacheSizeBytes converts MEMORY_CACHE_SIZE_MB to bytes.
func (c *Config) MemoryCacheSizeBytes() int {
	return c.MemoryCacheSizeMB * 1024 * 1024
}
