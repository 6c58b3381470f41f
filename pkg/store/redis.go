// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// RedisBackend implements Backend using Redis.
type RedisBackend struct {
	client redis.UniversalClient
	cfg    RedisBackendConfig
}

type RedisBackendConfig struct {
	// KeyPrefix is prepended to every key.
	KeyPrefix string
	// TTL of written documents; zero keeps them forever.
	TTL time.Duration
}

// NewRedisBackend creates a new Redis-backed document slot.
func NewRedisBackend(client redis.UniversalClient, cfg RedisBackendConfig) *RedisBackend {
	return &RedisBackend{
		client: client,
		cfg:    cfg,
	}
}

// makeKey creates the Redis key for a document
func (r *RedisBackend) makeKey(key string) string {
	return fmt.Sprintf("%s%s", r.cfg.KeyPrefix, key)
}

// Get retrieves a document from Redis
func (r *RedisBackend) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, r.makeKey(key)).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		logrus.Errorf("failed to get %s from Redis: %v", key, err)
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	return data, nil
}

// Set writes a document to Redis
func (r *RedisBackend) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, r.makeKey(key), value, r.cfg.TTL).Err(); err != nil {
		logrus.Errorf("failed to set %s in Redis: %v", key, err)
		return fmt.Errorf("failed to set document: %w", err)
	}

	logrus.Debugf("wrote %s to Redis (%d bytes, TTL %v)", key, len(value), r.cfg.TTL)
	return nil
}

// Delete removes a document from Redis
func (r *RedisBackend) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.makeKey(key)).Err(); err != nil {
		logrus.Errorf("failed to delete %s from Redis: %v", key, err)
		return fmt.Errorf("failed to delete document: %w", err)
	}

	return nil
}

// Ping checks that Redis is reachable
func (r *RedisBackend) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
