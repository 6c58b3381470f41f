package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/AccelByte/extend-hydration-challenge/internal/config"
	"github.com/AccelByte/extend-hydration-challenge/pkg/common"
	"github.com/AccelByte/extend-hydration-challenge/pkg/state"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		StoreBackend:          config.StoreBackendMemory,
		StoreKey:              "hydration_challenge_state",
		StateDir:              t.TempDir(),
		MemoryCacheSizeMB:     16,
		RedisKeyPrefix:        "test:",
		RedisMaxRetries:       1,
		RedisRetryDelayMs:     10,
		Timezone:              "UTC",
		ChallengeDurationDays: 30,
		RosterPath:            filepath.Join(t.TempDir(), "missing.yaml"),
	}
}

func writeRoster(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "challenge.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write roster: %v", err)
	}
	return path
}

func TestInitStorage_Backends(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(c *config.Config)
	}{
		{"memory", func(c *config.Config) {}},
		{"file", func(c *config.Config) { c.StoreBackend = config.StoreBackendFile }},
		{"file compressed", func(c *config.Config) {
			c.StoreBackend = config.StoreBackendFile
			c.StateCompress = true
		}},
		{"redis", func(c *config.Config) {
			c.StoreBackend = config.StoreBackendRedis
			c.RedisHost = mr.Host()
			c.RedisPort = mr.Port()
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			tt.mutate(cfg)

			storage, err := InitStorage(ctx, cfg)
			if err != nil {
				t.Fatalf("InitStorage() error = %v", err)
			}
			defer storage.Close()

			if !storage.Health.IsHealthy(ctx) {
				t.Error("backend reported unhealthy")
			}
			if got, err := storage.Store.Load(ctx); got != nil || err != nil {
				t.Errorf("Load() on fresh backend = %v, %v", got, err)
			}
		})
	}
}

func TestInitStorage_RedisUnavailable(t *testing.T) {
	cfg := testConfig(t)
	cfg.StoreBackend = config.StoreBackendRedis
	cfg.RedisHost = "127.0.0.1"
	cfg.RedisPort = "1"

	if _, err := InitStorage(context.Background(), cfg); err == nil {
		t.Error("expected error for unreachable Redis")
	}
}

func TestInitSession_RegistersFromRoster(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	cfg.RosterPath = writeRoster(t, `
durationDays: 45
participantA:
  displayName: Sam
participantB:
  displayName: Alex
`)

	storage, err := InitStorage(ctx, cfg)
	if err != nil {
		t.Fatalf("InitStorage() error = %v", err)
	}

	clock := common.NewFixedClock(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))
	s, err := InitSession(ctx, cfg, storage.Store, clock)
	if err != nil {
		t.Fatalf("InitSession() error = %v", err)
	}

	current, ok := s.State()
	if !ok || !current.IsActive {
		t.Fatal("expected a registered challenge")
	}
	if current.ParticipantA.DailyGoal != state.DefaultGoalA || current.ParticipantB.AvatarID != state.DefaultAvatarB {
		t.Errorf("roster defaults not applied: %+v / %+v", current.ParticipantA, current.ParticipantB)
	}

	left, _ := s.Countdown()
	if left.Days != 45 {
		t.Errorf("Countdown().Days = %d, expected roster duration 45", left.Days)
	}
}

func TestInitSession_ExistingChallengeRollsOver(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	cfg.RosterPath = writeRoster(t, `
participantA:
  displayName: Sam
participantB:
  displayName: Alex
`)

	storage, err := InitStorage(ctx, cfg)
	if err != nil {
		t.Fatalf("InitStorage() error = %v", err)
	}

	clock := common.NewFixedClock(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))
	if _, err := InitSession(ctx, cfg, storage.Store, clock); err != nil {
		t.Fatalf("first InitSession() error = %v", err)
	}

	clock.Advance(48 * time.Hour)
	s, err := InitSession(ctx, cfg, storage.Store, clock)
	if err != nil {
		t.Fatalf("second InitSession() error = %v", err)
	}

	current, _ := s.State()
	if current.LastProcessedDate != "2025-03-03" || len(current.History) != 1 {
		t.Errorf("state = %s with %d entries, expected 2025-03-03 with 1", current.LastProcessedDate, len(current.History))
	}
	if current.StartDate.Day() != 1 {
		t.Errorf("StartDate = %v, expected the original registration", current.StartDate)
	}

	left, _ := s.Countdown()
	if left.Days != 28 {
		t.Errorf("Countdown().Days = %d, expected configured duration 30 minus 2 days elapsed", left.Days)
	}
}

func TestInitSession_NoRoster(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)

	storage, err := InitStorage(ctx, cfg)
	if err != nil {
		t.Fatalf("InitStorage() error = %v", err)
	}

	s, err := InitSession(ctx, cfg, storage.Store, common.NewFixedClock(time.Now()))
	if err != nil {
		t.Fatalf("InitSession() error = %v", err)
	}
	if s.Registered() {
		t.Error("expected no registered challenge without a roster")
	}
}

func TestInitSession_InvalidRoster(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	cfg.RosterPath = writeRoster(t, "participantA:\n  displayName: Sam\n")

	storage, err := InitStorage(ctx, cfg)
	if err != nil {
		t.Fatalf("InitStorage() error = %v", err)
	}

	if _, err := InitSession(ctx, cfg, storage.Store, common.NewFixedClock(time.Now())); err == nil {
		t.Error("expected error for roster without participant B")
	}
}
