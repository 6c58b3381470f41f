// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-hydration-challenge/internal/config"
	"github.com/AccelByte/extend-hydration-challenge/pkg/common"
	"github.com/AccelByte/extend-hydration-challenge/pkg/roster"
	"github.com/AccelByte/extend-hydration-challenge/pkg/session"
	"github.com/AccelByte/extend-hydration-challenge/pkg/store"
)

// InitSession opens the saved challenge and, when none exists, registers one
// from the roster file.
//
// ============================================================
// Startup order
// ============================================================
// 1. Load the saved state (malformed documents are discarded)
// 2. Process any day boundary passed while the process was down
// 3. Seed a new challenge from ROSTER_PATH if nothing is registered
// ============================================================
func InitSession(ctx context.Context, cfg *config.Config, stateStore store.StateStore, clock common.Clock) (*session.Session, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	durationDays := cfg.ChallengeDurationDays
	r, err := loadRoster(cfg.RosterPath)
	if err != nil {
		return nil, err
	}
	if r != nil && r.DurationDays > 0 {
		durationDays = r.DurationDays
	}

	s := session.New(stateStore, clock, session.Config{
		Location:     loc,
		DurationDays: durationDays,
	})

	if err := s.Open(ctx); err != nil {
		return nil, err
	}

	if s.Registered() {
		if _, err := s.CheckRollover(ctx); err != nil {
			return nil, fmt.Errorf("failed to process pending day change: %w", err)
		}
		return s, nil
	}

	if r == nil {
		logrus.Warnf("no challenge registered and no roster at %s, waiting for registration", cfg.RosterPath)
		return s, nil
	}

	a, b := r.Profiles()
	if _, err := s.Register(ctx, a, b); err != nil {
		return nil, fmt.Errorf("failed to register challenge from roster: %w", err)
	}
	logrus.Infof("registered challenge from roster %s", cfg.RosterPath)

	return s, nil
}

// loadRoster returns nil without error when the file does not exist.
func loadRoster(path string) (*roster.Roster, error) {
	if path == "" {
		return nil, nil
	}

	r, err := roster.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load roster from %s: %w", path, err)
	}
	return r, nil
}
