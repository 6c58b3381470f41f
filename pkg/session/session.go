// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-hydration-challenge/pkg/common"
	"github.com/AccelByte/extend-hydration-challenge/pkg/metrics"
	"github.com/AccelByte/extend-hydration-challenge/pkg/state"
	"github.com/AccelByte/extend-hydration-challenge/pkg/store"
)

// Config controls calendar handling for a session.
type Config struct {
	// Location decides where calendar days begin. Nil means time.Local.
	Location *time.Location
	// DurationDays is the nominal challenge length used for countdowns.
	DurationDays int
}

// Session is the single writer of the challenge state. It keeps the current
// state in memory, runs the pure state operations against it and persists the
// result after every change.
//
// A new state only replaces the in-memory one after it was saved, so memory
// and storage never disagree.
type Session struct {
	mu      sync.Mutex
	store   store.StateStore
	clock   common.Clock
	cfg     Config
	current *state.ChallengeState
}

// New creates a session. Call Open before use.
func New(stateStore store.StateStore, clock common.Clock, cfg Config) *Session {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.DurationDays <= 0 {
		cfg.DurationDays = state.DefaultDurationDays
	}
	if clock == nil {
		clock = common.SystemClock{}
	}

	return &Session{
		store: stateStore,
		clock: clock,
		cfg:   cfg,
	}
}

// Open loads the saved state. A malformed document is treated as no saved
// state so the caller falls back to registration.
func (s *Session) Open(ctx context.Context) error {
	scope := common.NewScope(ctx, "session.open")
	defer scope.Finish()

	loaded, err := s.store.Load(scope.Ctx)
	if errors.Is(err, store.ErrMalformedPersistedState) {
		scope.Log.Warnf("discarding unreadable saved state: %v", err)
		scope.TraceEvent("malformed state discarded")
		loaded, err = nil, nil
	}
	if err != nil {
		scope.TraceError(err)
		return fmt.Errorf("failed to open session: %w", err)
	}

	s.mu.Lock()
	s.current = loaded
	s.mu.Unlock()

	if loaded != nil {
		metrics.HistoryLength.Set(float64(len(loaded.History)))
		scope.Log.Infof("session opened: %s vs %s, last processed %s",
			loaded.ParticipantA.DisplayName, loaded.ParticipantB.DisplayName, loaded.LastProcessedDate)
	} else {
		scope.Log.Info("session opened without a registered challenge")
	}
	return nil
}

// Today returns the current calendar date in the session location.
func (s *Session) Today() string {
	return state.DateOf(s.clock.Now(), s.cfg.Location)
}

// State returns a copy of the current state; false when nothing is registered.
func (s *Session) State() (state.ChallengeState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return state.ChallengeState{}, false
	}
	return s.current.Clone(), true
}

// Registered reports whether an active challenge is loaded.
func (s *Session) Registered() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil && s.current.IsActive
}

// Register starts a new challenge now.
func (s *Session) Register(ctx context.Context, a, b state.ProfileInit) (state.ChallengeState, error) {
	scope := common.NewScope(ctx, "session.register")
	defer scope.Finish()

	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := state.RegisterChallenge(s.current, a, b, s.clock.Now(), s.cfg.Location)
	if err != nil {
		return state.ChallengeState{}, s.fail(scope, "register", err)
	}

	if err := s.commit(scope, next); err != nil {
		return state.ChallengeState{}, s.fail(scope, "register", err)
	}

	metrics.HistoryLength.Set(0)
	return next.Clone(), nil
}

// Log adds amount to who's intake. A pending day boundary is processed first,
// so the log lands on today.
func (s *Session) Log(ctx context.Context, who state.ParticipantID, amount int) (state.LogResult, error) {
	scope := common.NewScope(ctx, "session.log")
	defer scope.Finish()
	scope.SetAttributes("participant", string(who))
	scope.SetAttributes("amount", amount)

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.logLocked(scope, who, func(st state.ChallengeState) (state.LogResult, error) {
		return state.ApplyIntake(st, who, amount)
	})
}

// QuickAdd logs who's configured quick-add increment.
func (s *Session) QuickAdd(ctx context.Context, who state.ParticipantID) (state.LogResult, error) {
	scope := common.NewScope(ctx, "session.quick_add")
	defer scope.Finish()
	scope.SetAttributes("participant", string(who))

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.logLocked(scope, who, func(st state.ChallengeState) (state.LogResult, error) {
		return state.QuickAdd(st, who)
	})
}

func (s *Session) logLocked(scope *common.Scope, who state.ParticipantID, apply func(state.ChallengeState) (state.LogResult, error)) (state.LogResult, error) {
	if !who.Valid() {
		return state.LogResult{}, s.fail(scope, "log", state.ErrUnknownParticipant)
	}
	if s.current == nil {
		return state.LogResult{}, s.fail(scope, "log", state.ErrNotRegistered)
	}

	if _, err := s.rolloverLocked(scope); err != nil {
		return state.LogResult{State: s.current.Clone()}, s.fail(scope, "log", err)
	}

	before := *s.current
	result, err := apply(before)
	if err != nil {
		return state.LogResult{State: before.Clone()}, s.fail(scope, "log", err)
	}

	if err := s.commit(scope, result.State); err != nil {
		return state.LogResult{State: before.Clone()}, s.fail(scope, "log", err)
	}

	prev, _ := before.Profile(who)
	next, _ := result.State.Profile(who)
	amount := next.CurrentIntake - prev.CurrentIntake

	metrics.IntakeLoggedTotal.WithLabelValues(string(who)).Inc()
	metrics.IntakeAmountTotal.WithLabelValues(string(who)).Add(float64(amount))
	if result.CrossedGoalThreshold {
		other, _ := result.State.Profile(who.Opponent())
		metrics.GoalReachedTotal.WithLabelValues(string(who)).Inc()
		scope.TraceEvent("goal reached")
		scope.Log.Infof("%s reached the daily goal (%d/%d), %s is at %.0f%%",
			next.DisplayName, next.CurrentIntake, next.DailyGoal, other.DisplayName, other.Progress()*100)
	}

	result.State = result.State.Clone()
	return result, nil
}

// UpdateProfile changes who's daily goal and/or quick-add increment.
func (s *Session) UpdateProfile(ctx context.Context, who state.ParticipantID, update state.ProfileUpdate) (state.ChallengeState, error) {
	scope := common.NewScope(ctx, "session.update_profile")
	defer scope.Finish()
	scope.SetAttributes("participant", string(who))

	s.mu.Lock()
	defer s.mu.Unlock()

	if !who.Valid() {
		return state.ChallengeState{}, s.fail(scope, "update_profile", state.ErrUnknownParticipant)
	}
	if s.current == nil {
		return state.ChallengeState{}, s.fail(scope, "update_profile", state.ErrNotRegistered)
	}

	next, err := state.UpdateProfile(*s.current, who, update)
	if err != nil {
		return s.current.Clone(), s.fail(scope, "update_profile", err)
	}

	if err := s.commit(scope, next); err != nil {
		return s.current.Clone(), s.fail(scope, "update_profile", err)
	}

	return next.Clone(), nil
}

// CheckRollover archives the previous day if the calendar date has changed.
func (s *Session) CheckRollover(ctx context.Context) (state.RolloverResult, error) {
	scope := common.NewScope(ctx, "session.check_rollover")
	defer scope.Finish()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return state.RolloverResult{}, nil
	}

	result, err := s.rolloverLocked(scope)
	if err != nil {
		return result, s.fail(scope, "rollover", err)
	}
	result.State = result.State.Clone()
	return result, nil
}

func (s *Session) rolloverLocked(scope *common.Scope) (state.RolloverResult, error) {
	result, err := state.EvaluateRollover(*s.current, s.Today())
	if err != nil || !result.Advanced {
		return result, err
	}

	if err := s.commit(scope, result.State); err != nil {
		return state.RolloverResult{State: *s.current}, err
	}

	s.recordRollover(scope, result)
	return result, nil
}

// AdvanceDay archives the current day and moves to the next calendar day
// without waiting for the clock.
func (s *Session) AdvanceDay(ctx context.Context) (state.RolloverResult, error) {
	scope := common.NewScope(ctx, "session.advance_day")
	defer scope.Finish()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return state.RolloverResult{}, s.fail(scope, "advance_day", state.ErrNotRegistered)
	}

	result, err := state.AdvanceDay(*s.current)
	if err != nil {
		return result, s.fail(scope, "advance_day", err)
	}
	if !result.Advanced {
		return result, nil
	}

	if err := s.commit(scope, result.State); err != nil {
		return state.RolloverResult{State: s.current.Clone()}, s.fail(scope, "advance_day", err)
	}

	s.recordRollover(scope, result)
	result.State = result.State.Clone()
	return result, nil
}

// Reset deletes the saved challenge entirely.
func (s *Session) Reset(ctx context.Context) error {
	scope := common.NewScope(ctx, "session.reset")
	defer scope.Finish()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Clear(scope.Ctx); err != nil {
		return s.fail(scope, "reset", err)
	}

	s.current = nil
	metrics.HistoryLength.Set(0)
	scope.Log.Warn("challenge data reset")
	return nil
}

// Countdown returns the time left in the challenge; false when nothing is registered.
func (s *Session) Countdown() (state.Countdown, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return state.Countdown{}, false
	}
	return state.Remaining(*s.current, s.clock.Now(), s.cfg.DurationDays), true
}

// commit persists next and then makes it current.
func (s *Session) commit(scope *common.Scope, next state.ChallengeState) error {
	start := time.Now()
	err := s.store.Save(scope.Ctx, next)
	metrics.StoreWriteDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return err
	}

	s.current = &next
	return nil
}

func (s *Session) recordRollover(scope *common.Scope, result state.RolloverResult) {
	metrics.RolloversTotal.WithLabelValues(string(result.Entry.Outcome)).Inc()
	metrics.HistoryLength.Set(float64(len(result.State.History)))

	scope.TraceEvent("day archived")
	scope.Log.WithFields(logrus.Fields{
		"date":    result.Entry.Date,
		"outcome": result.Entry.Outcome,
		"intakeA": result.Entry.IntakeA,
		"intakeB": result.Entry.IntakeB,
	}).Info("day archived")
}

func (s *Session) fail(scope *common.Scope, op string, err error) error {
	metrics.OperationErrorsTotal.WithLabelValues(op).Inc()
	scope.TraceError(err)
	scope.Log.Warnf("%s failed: %v", op, err)
	return err
}
