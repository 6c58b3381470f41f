package state

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultGoalA is the suggested daily goal for the first participant.
	DefaultGoalA = 101
	// DefaultGoalB is the suggested daily goal for the second participant.
	DefaultGoalB = 91
	// DefaultQuickAddIncrement is the suggested quick-add size (one pint glass).
	DefaultQuickAddIncrement = 16
)

// ProfileInit holds the registration inputs for one participant.
type ProfileInit struct {
	DisplayName       string
	AvatarID          string
	DailyGoal         int
	QuickAddIncrement int
}

func (p ProfileInit) validate() error {
	if strings.TrimSpace(p.DisplayName) == "" {
		return fmt.Errorf("%w: display name is required", ErrInvalidSetting)
	}
	if p.DailyGoal <= 0 {
		return fmt.Errorf("%w: daily goal %d", ErrInvalidSetting, p.DailyGoal)
	}
	if p.QuickAddIncrement <= 0 {
		return fmt.Errorf("%w: quick add increment %d", ErrInvalidSetting, p.QuickAddIncrement)
	}
	return nil
}

func (p ProfileInit) profile() ParticipantProfile {
	return ParticipantProfile{
		DisplayName:       strings.TrimSpace(p.DisplayName),
		AvatarID:          p.AvatarID,
		DailyGoal:         p.DailyGoal,
		QuickAddIncrement: p.QuickAddIncrement,
	}
}

// RegisterChallenge creates a fresh active challenge starting at start.
// existing is the currently loaded state, if any; registering over an active
// challenge fails with ErrAlreadyRegistered.
func RegisterChallenge(existing *ChallengeState, a, b ProfileInit, start time.Time, loc *time.Location) (ChallengeState, error) {
	if existing != nil && existing.IsActive {
		return *existing, ErrAlreadyRegistered
	}

	if err := a.validate(); err != nil {
		return ChallengeState{}, fmt.Errorf("participant A: %w", err)
	}
	if err := b.validate(); err != nil {
		return ChallengeState{}, fmt.Errorf("participant B: %w", err)
	}

	st := ChallengeState{
		IsActive: true,
		// No monotonic reading or zone, so a reload from storage compares equal.
		StartDate:         start.Round(0).UTC(),
		LastProcessedDate: DateOf(start, loc),
		ParticipantA:      a.profile(),
		ParticipantB:      b.profile(),
		History:           []HistoryEntry{},
	}

	logrus.Infof("registered challenge: %s vs %s starting %s",
		st.ParticipantA.DisplayName, st.ParticipantB.DisplayName, st.LastProcessedDate)

	return st, nil
}
