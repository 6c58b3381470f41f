// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package config

import "time"

// Store backends selectable with STORE_BACKEND.
const (
	StoreBackendRedis  = "redis"
	StoreBackendFile   = "file"
	StoreBackendMemory = "memory"
)

// Config holds all application configuration loaded from environment variables.
// This struct uses github.com/caarlos0/env for automatic environment variable parsing.
type Config struct {
	// ============================================================
	// Process configuration
	// ============================================================
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	MetricsPort int    `env:"METRICS_PORT" envDefault:"8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"dev"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"HydrationChallenge"`

	// ============================================================
	// State storage
	// ============================================================
	StoreBackend      string `env:"STORE_BACKEND" envDefault:"file"`
	StoreKey          string `env:"STORE_KEY" envDefault:"hydration_challenge_state"`
	StateDir          string `env:"STATE_DIR" envDefault:"data"`
	StateCompress     bool   `env:"STATE_COMPRESS" envDefault:"false"`
	MemoryCacheSizeMB int    `env:"MEMORY_CACHE_SIZE_MB" envDefault:"16"`

	// ============================================================
	// Redis configuration
	// ============================================================
	RedisHost         string        `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort         string        `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword     string        `env:"REDIS_PASSWORD"`
	RedisKeyPrefix    string        `env:"REDIS_KEY_PREFIX" envDefault:"hydration:"`
	RedisTTL          time.Duration `env:"REDIS_TTL" envDefault:"0s"`
	RedisMaxRetries   int           `env:"REDIS_MAX_RETRIES" envDefault:"5"`
	RedisRetryDelayMs int           `env:"REDIS_RETRY_DELAY_MS" envDefault:"1000"`

	// ============================================================
	// Challenge configuration
	// ============================================================
	Timezone              string        `env:"TIMEZONE" envDefault:"Local"`
	ChallengeDurationDays int           `env:"CHALLENGE_DURATION_DAYS" envDefault:"90"`
	RolloverCheckInterval time.Duration `env:"ROLLOVER_CHECK_INTERVAL" envDefault:"1m"`
	RosterPath            string        `env:"ROSTER_PATH" envDefault:"config/challenge.yaml"`

	// ============================================================
	// Telemetry configuration
	// ============================================================
	OtelEnabled    bool   `env:"OTEL_ENABLED" envDefault:"true"`
	ZipkinEndpoint string `env:"ZIPKIN_ENDPOINT"`
}
