// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-hydration-challenge/internal/config"
	"github.com/AccelByte/extend-hydration-challenge/pkg/store"
)

// Storage is the selected backend plus anything that must be closed on shutdown.
type Storage struct {
	Backend store.Backend
	Store   *store.Store
	Health  *store.HealthChecker

	closers []func() error
}

// Close releases backend resources.
func (s *Storage) Close() error {
	var firstErr error
	for _, c := range s.closers {
		if err := c(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// InitStorage builds the state store for STORE_BACKEND.
//
// ============================================================
// Backends
// ============================================================
// - redis:  shared document under REDIS_KEY_PREFIX + STORE_KEY
// - file:   STATE_DIR/STORE_KEY.json, zstd compressed with STATE_COMPRESS
// - memory: process-local, lost on restart (demos and tests)
// ============================================================
func InitStorage(ctx context.Context, cfg *config.Config) (*Storage, error) {
	s := &Storage{}

	switch cfg.StoreBackend {
	case config.StoreBackendRedis:
		client, err := ConnectRedis(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		s.Backend = store.NewRedisBackend(client, store.RedisBackendConfig{
			KeyPrefix: cfg.RedisKeyPrefix,
			TTL:       cfg.RedisTTL,
		})
		s.closers = append(s.closers, client.Close)

	case config.StoreBackendFile:
		backend, err := store.NewFileBackend(store.FileBackendConfig{
			Dir:      cfg.StateDir,
			Compress: cfg.StateCompress,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to open state directory: %w", err)
		}
		s.Backend = backend
		s.closers = append(s.closers, func() error {
			backend.Close()
			return nil
		})

	case config.StoreBackendMemory:
		s.Backend = store.NewMemoryBackend(cfg.MemoryCacheSizeBytes())
		logrus.Warn("using in-memory state store, challenge data will not survive a restart")

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}

	s.Store = store.New(s.Backend, cfg.StoreKey)
	s.Health = store.NewHealthChecker(s.Backend)

	logrus.Infof("initialized %s state store (key %s)", cfg.StoreBackend, s.Store.Key())
	return s, nil
}

// ConnectRedis creates a Redis client and waits for it to answer a ping,
// retrying with exponential backoff.
func ConnectRedis(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr(),
		Password:     cfg.RedisPassword,
		DB:           0, // use default DB
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = time.Duration(cfg.RedisRetryDelayMs) * time.Millisecond
	policy := backoff.WithContext(backoff.WithMaxRetries(b, uint64(cfg.RedisMaxRetries)), ctx)

	err := backoff.Retry(
		func() error {
			_, err := client.Ping(ctx).Result()
			if err != nil {
				logrus.Warnf("Redis connection failed: %v, retrying...", err)
				return err
			}
			return nil
		},
		policy,
	)
	if err != nil {
		client.Close()
		return nil, err
	}

	logrus.Infof("Redis client connected to %s", cfg.RedisAddr())
	return client, nil
}
