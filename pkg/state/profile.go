package state

import (
	"fmt"
)

// ProfileUpdate carries optional settings changes; nil fields are left as is.
type ProfileUpdate struct {
	DailyGoal         *int
	QuickAddIncrement *int
}

// UpdateProfile applies settings changes to who's profile.
// Intake and history are untouched, so a new goal only affects future rollovers.
func UpdateProfile(st ChallengeState, who ParticipantID, update ProfileUpdate) (ChallengeState, error) {
	profile, err := st.Profile(who)
	if err != nil {
		return st, fmt.Errorf("%w: %q", err, who)
	}

	if update.DailyGoal != nil {
		if *update.DailyGoal <= 0 {
			return st, fmt.Errorf("%w: daily goal %d", ErrInvalidSetting, *update.DailyGoal)
		}
		profile.DailyGoal = *update.DailyGoal
	}

	if update.QuickAddIncrement != nil {
		if *update.QuickAddIncrement <= 0 {
			return st, fmt.Errorf("%w: quick add increment %d", ErrInvalidSetting, *update.QuickAddIncrement)
		}
		profile.QuickAddIncrement = *update.QuickAddIncrement
	}

	return st.withProfile(who, profile), nil
}
