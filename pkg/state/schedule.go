package state

import (
	"time"
)

// DefaultDurationDays is the nominal length of a challenge. Nothing enforces it.
const DefaultDurationDays = 90

// Countdown is the time left until the challenge end date.
type Countdown struct {
	Days    int
	Hours   int
	Minutes int
	Seconds int
}

// Expired reports whether the countdown has reached zero.
func (c Countdown) Expired() bool {
	return c == Countdown{}
}

// EndDate returns the instant durationDays after the challenge start.
func EndDate(st ChallengeState, durationDays int) time.Time {
	return st.StartDate.AddDate(0, 0, durationDays)
}

// Remaining returns the countdown to the end date, or zero once it has passed.
func Remaining(st ChallengeState, now time.Time, durationDays int) Countdown {
	left := EndDate(st, durationDays).Sub(now)
	if left <= 0 {
		return Countdown{}
	}

	total := int(left / time.Second)
	return Countdown{
		Days:    total / 86400,
		Hours:   (total % 86400) / 3600,
		Minutes: (total % 3600) / 60,
		Seconds: total % 60,
	}
}

// DayNumber returns the 1-based challenge day that today falls on.
func DayNumber(st ChallengeState, today string, loc *time.Location) (int, error) {
	days, err := DaysBetween(DateOf(st.StartDate, loc), today)
	if err != nil {
		return 0, err
	}
	return days + 1, nil
}

// Standings returns the participant with more total wins.
// The second result is false when wins are level.
func Standings(st ChallengeState) (ParticipantID, bool) {
	switch {
	case st.ParticipantA.TotalWinCount > st.ParticipantB.TotalWinCount:
		return ParticipantA, true
	case st.ParticipantB.TotalWinCount > st.ParticipantA.TotalWinCount:
		return ParticipantB, true
	default:
		return "", false
	}
}
