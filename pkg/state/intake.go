package state

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// LogResult is returned by ApplyIntake.
// CrossedGoalThreshold is true only on the log that moves the participant
// from below the daily goal to at or above it.
type LogResult struct {
	State                ChallengeState
	CrossedGoalThreshold bool
}

// ApplyIntake adds amount to who's running total for the current day.
// On error the returned state is the unchanged input.
func ApplyIntake(st ChallengeState, who ParticipantID, amount int) (LogResult, error) {
	if amount <= 0 {
		return LogResult{State: st}, fmt.Errorf("%w: %d", ErrInvalidAmount, amount)
	}
	if !st.IsActive {
		return LogResult{State: st}, ErrNotRegistered
	}

	profile, err := st.Profile(who)
	if err != nil {
		return LogResult{State: st}, fmt.Errorf("%w: %q", err, who)
	}

	previous := profile.CurrentIntake
	profile.CurrentIntake = previous + amount
	crossed := previous < profile.DailyGoal && profile.DailyGoal <= profile.CurrentIntake

	if crossed {
		logrus.Debugf("%s reached daily goal: %d/%d", who, profile.CurrentIntake, profile.DailyGoal)
	}

	return LogResult{
		State:                st.withProfile(who, profile),
		CrossedGoalThreshold: crossed,
	}, nil
}

// QuickAdd logs who's configured quick-add increment.
func QuickAdd(st ChallengeState, who ParticipantID) (LogResult, error) {
	profile, err := st.Profile(who)
	if err != nil {
		return LogResult{State: st}, fmt.Errorf("%w: %q", err, who)
	}
	return ApplyIntake(st, who, profile.QuickAddIncrement)
}
