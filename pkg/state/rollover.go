// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package state

import (
	"github.com/sirupsen/logrus"
)

// RolloverResult is the outcome of a day-boundary evaluation.
// Advanced is false when nothing changed (no day boundary, or inactive challenge).
type RolloverResult struct {
	Advanced bool
	Entry    HistoryEntry
	State    ChallengeState
}

// DecideOutcome computes the winner of a day from both profiles.
func DecideOutcome(a, b ParticipantProfile) Outcome {
	metA := a.GoalMet()
	metB := b.GoalMet()

	switch {
	case metA && metB:
		return OutcomeTie
	case metA:
		return OutcomeParticipantA
	case metB:
		return OutcomeParticipantB
	default:
		return OutcomeNone
	}
}

// EvaluateRollover checks whether today is a new calendar day for the challenge
// and, if so, archives the last processed day and resets the daily counters.
// The input state is never modified.
//
// Only one entry is produced no matter how many days have elapsed since
// LastProcessedDate; skipped days are not backfilled. A today earlier than
// LastProcessedDate (clock moved backward) is a no-op, and so is any today for
// an inactive challenge.
func EvaluateRollover(st ChallengeState, today string) (RolloverResult, error) {
	if !st.IsActive {
		return RolloverResult{State: st}, nil
	}

	if _, err := ParseDate(today); err != nil {
		return RolloverResult{State: st}, err
	}

	if st.LastProcessedDate == today {
		return RolloverResult{State: st}, nil
	}

	// Also the normal case after AdvanceDay moved past the wall clock.
	if today < st.LastProcessedDate {
		logrus.Debugf("rollover skipped: today %s is before last processed date %s", today, st.LastProcessedDate)
		return RolloverResult{State: st}, nil
	}

	if gap, err := DaysBetween(st.LastProcessedDate, today); err == nil && gap > 1 {
		logrus.Debugf("rollover after %d days, archiving %s only", gap, st.LastProcessedDate)
	}

	return archiveDay(st, today), nil
}

// AdvanceDay forces a day boundary: the current day is archived and the
// challenge moves to the calendar day after LastProcessedDate, regardless of
// the wall clock.
func AdvanceDay(st ChallengeState) (RolloverResult, error) {
	if !st.IsActive {
		return RolloverResult{State: st}, nil
	}

	next, err := NextDate(st.LastProcessedDate)
	if err != nil {
		return RolloverResult{State: st}, err
	}

	return archiveDay(st, next), nil
}

// archiveDay closes LastProcessedDate and opens newDate.
func archiveDay(st ChallengeState, newDate string) RolloverResult {
	outcome := DecideOutcome(st.ParticipantA, st.ParticipantB)

	entry := HistoryEntry{
		Date:    st.LastProcessedDate,
		Outcome: outcome,
		IntakeA: st.ParticipantA.CurrentIntake,
		IntakeB: st.ParticipantB.CurrentIntake,
		GoalA:   st.ParticipantA.DailyGoal,
		GoalB:   st.ParticipantB.DailyGoal,
	}

	next := st.Clone()
	next.History = append(next.History, entry)
	next.LastProcessedDate = newDate

	next.ParticipantA.CurrentIntake = 0
	next.ParticipantB.CurrentIntake = 0

	switch outcome {
	case OutcomeParticipantA:
		next.ParticipantA.TotalWinCount++
	case OutcomeParticipantB:
		next.ParticipantB.TotalWinCount++
	}

	logrus.Debugf("archived day %s: outcome=%s intakeA=%d/%d intakeB=%d/%d",
		entry.Date, entry.Outcome, entry.IntakeA, entry.GoalA, entry.IntakeB, entry.GoalB)

	return RolloverResult{
		Advanced: true,
		Entry:    entry,
		State:    next,
	}
}
