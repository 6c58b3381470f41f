// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-hydration-challenge/pkg/state"
)

// DefaultKey is the storage slot used when none is configured.
const DefaultKey = "hydration_challenge_state"

// StateStore defines the interface for accessing the challenge state.
// This allows for easier testing and different storage implementations.
type StateStore interface {
	Load(ctx context.Context) (*state.ChallengeState, error)
	Save(ctx context.Context, st state.ChallengeState) error
	Clear(ctx context.Context) error
}

// Store keeps the single challenge document in a Backend.
type Store struct {
	backend Backend
	key     string
}

// New creates a store over backend. An empty key uses DefaultKey.
func New(backend Backend, key string) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{
		backend: backend,
		key:     key,
	}
}

// Key returns the storage slot name.
func (s *Store) Key() string {
	return s.key
}

// Load retrieves the saved challenge state.
// It returns nil and no error when nothing is saved. A document that cannot
// be decoded yields an error wrapping ErrMalformedPersistedState.
func (s *Store) Load(ctx context.Context) (*state.ChallengeState, error) {
	data, err := s.backend.Get(ctx, s.key)
	if errors.Is(err, ErrNotFound) {
		logrus.Infof("no saved state under %s", s.key)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load state: %w", err)
	}

	st, err := decodeState(data)
	if err != nil {
		logrus.Warnf("saved state under %s is unusable: %v", s.key, err)
		return nil, err
	}

	logrus.Infof("loaded state from %s (%d history entries)", s.key, len(st.History))
	return st, nil
}

// Save overwrites the saved challenge state.
func (s *Store) Save(ctx context.Context, st state.ChallengeState) error {
	data, err := encodeState(st)
	if err != nil {
		logrus.Errorf("failed to marshal state: %v", err)
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := s.backend.Set(ctx, s.key, data); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}

	logrus.Debugf("saved state to %s", s.key)
	return nil
}

// Clear deletes the saved challenge state entirely.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.backend.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("failed to clear state: %w", err)
	}

	logrus.Infof("cleared state under %s", s.key)
	return nil
}
