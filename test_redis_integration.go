// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

//go:build integration
// +build integration

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-hydration-challenge/pkg/common"
	"github.com/AccelByte/extend-hydration-challenge/pkg/session"
	"github.com/AccelByte/extend-hydration-challenge/pkg/state"
	"github.com/AccelByte/extend-hydration-challenge/pkg/store"
)

// This is a manual integration test for the Redis state backend
// Run this with: go run -tags integration test_redis_integration.go
// Requires: Redis running on localhost:6379

func main() {
	logrus.SetLevel(logrus.DebugLevel)
	logrus.Infof("Starting Redis integration test...")

	ctx := context.Background()

	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	defer client.Close()

	if err := client.Ping(ctx).Err(); err != nil {
		logrus.Fatalf("Failed to reach Redis: %v", err)
	}

	key := fmt.Sprintf("integration-%d", time.Now().Unix())
	logrus.Infof("Testing with key: %s", key)

	backend := store.NewRedisBackend(client, store.RedisBackendConfig{KeyPrefix: "hydration-test:", TTL: time.Hour})
	stateStore := store.New(backend, key)
	clock := common.NewFixedClock(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))

	// Test 1: Register
	logrus.Infof("\n=== Test 1: Register challenge ===")
	s := session.New(stateStore, clock, session.Config{Location: time.UTC})
	if err := s.Open(ctx); err != nil {
		logrus.Fatalf("Open failed: %v", err)
	}
	a := state.ProfileInit{DisplayName: "Sam", AvatarID: state.DefaultAvatarA, DailyGoal: state.DefaultGoalA, QuickAddIncrement: state.DefaultQuickAddIncrement}
	b := state.ProfileInit{DisplayName: "Alex", AvatarID: state.DefaultAvatarB, DailyGoal: state.DefaultGoalB, QuickAddIncrement: state.DefaultQuickAddIncrement}
	if _, err := s.Register(ctx, a, b); err != nil {
		logrus.Fatalf("Register failed: %v", err)
	}
	logrus.Infof("✓ Registered")

	// Test 2: Log intake
	logrus.Infof("\n=== Test 2: Log intake ===")
	for i := 0; i < 7; i++ {
		if _, err := s.QuickAdd(ctx, state.ParticipantA); err != nil {
			logrus.Fatalf("QuickAdd failed: %v", err)
		}
	}
	logrus.Infof("✓ Logged 7 quick adds for participant A")

	// Test 3: Day change
	logrus.Infof("\n=== Test 3: Day change ===")
	clock.Advance(24 * time.Hour)
	result, err := s.CheckRollover(ctx)
	if err != nil {
		logrus.Fatalf("CheckRollover failed: %v", err)
	}
	if !result.Advanced || result.Entry.Outcome != state.OutcomeParticipantA {
		logrus.Fatalf("✗ Unexpected rollover: %+v", result)
	}
	logrus.Infof("✓ Archived %s: %s", result.Entry.Date, result.Entry.Outcome)

	// Test 4: Reload from Redis
	logrus.Infof("\n=== Test 4: Reload ===")
	reopened := session.New(stateStore, clock, session.Config{Location: time.UTC})
	if err := reopened.Open(ctx); err != nil {
		logrus.Fatalf("Open failed: %v", err)
	}
	current, _ := reopened.State()
	if len(current.History) != 1 || current.ParticipantA.TotalWinCount != 1 {
		logrus.Fatalf("✗ Reloaded state mismatch: %+v", current)
	}
	logrus.Infof("✓ Reloaded state matches")

	// Test 5: Reset
	logrus.Infof("\n=== Test 5: Reset ===")
	if err := reopened.Reset(ctx); err != nil {
		logrus.Fatalf("Reset failed: %v", err)
	}
	logrus.Infof("✓ Reset")

	logrus.Infof("\n=== All tests passed! ===")
}
