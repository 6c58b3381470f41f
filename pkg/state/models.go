// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package state

import (
	"time"
)

// ParticipantID identifies one of the two competitors.
type ParticipantID string

const (
	ParticipantA ParticipantID = "participantA"
	ParticipantB ParticipantID = "participantB"
)

// Outcome is the result of a single archived day.
type Outcome string

const (
	OutcomeParticipantA Outcome = "PARTICIPANT_A"
	OutcomeParticipantB Outcome = "PARTICIPANT_B"
	OutcomeTie          Outcome = "TIE"
	OutcomeNone         Outcome = "NONE"
)

// ChallengeState is the complete persisted record of a challenge.
type ChallengeState struct {
	IsActive          bool               `json:"isActive"`
	StartDate         time.Time          `json:"startDate"`
	LastProcessedDate string             `json:"lastProcessedDate"`
	ParticipantA      ParticipantProfile `json:"participantA"`
	ParticipantB      ParticipantProfile `json:"participantB"`
	History           []HistoryEntry     `json:"history"`
}

// ParticipantProfile tracks one competitor's settings and running totals
type ParticipantProfile struct {
	DisplayName       string `json:"displayName"`
	AvatarID          string `json:"avatarId"`
	CurrentIntake     int    `json:"currentIntake"`
	DailyGoal         int    `json:"dailyGoal"`
	QuickAddIncrement int    `json:"quickAddIncrement"`
	TotalWinCount     int    `json:"totalWinCount"`
}

// HistoryEntry is the archived snapshot of one finished day.
type HistoryEntry struct {
	Date    string  `json:"date"`
	Outcome Outcome `json:"outcome"`
	IntakeA int     `json:"intakeA"`
	IntakeB int     `json:"intakeB"`
	GoalA   int     `json:"goalA"`
	GoalB   int     `json:"goalB"`
}

// Valid reports whether id names one of the two participants.
func (id ParticipantID) Valid() bool {
	return id == ParticipantA || id == ParticipantB
}

// Opponent returns the other participant.
func (id ParticipantID) Opponent() ParticipantID {
	if id == ParticipantA {
		return ParticipantB
	}
	return ParticipantA
}

// GoalMet returns true once the current intake reaches the daily goal.
func (p ParticipantProfile) GoalMet() bool {
	return p.CurrentIntake >= p.DailyGoal
}

// Progress returns the fraction of the daily goal reached, capped at 1.
func (p ParticipantProfile) Progress() float64 {
	if p.DailyGoal <= 0 {
		return 0
	}
	ratio := float64(p.CurrentIntake) / float64(p.DailyGoal)
	if ratio > 1 {
		return 1
	}
	return ratio
}

// Profile returns a copy of the profile for the given participant.
func (s ChallengeState) Profile(who ParticipantID) (ParticipantProfile, error) {
	switch who {
	case ParticipantA:
		return s.ParticipantA, nil
	case ParticipantB:
		return s.ParticipantB, nil
	default:
		return ParticipantProfile{}, ErrUnknownParticipant
	}
}

// withProfile returns a copy of s with the given participant's profile replaced.
func (s ChallengeState) withProfile(who ParticipantID, p ParticipantProfile) ChallengeState {
	next := s.Clone()
	if who == ParticipantA {
		next.ParticipantA = p
	} else {
		next.ParticipantB = p
	}
	return next
}

// Clone returns a deep copy; the history slice is never shared.
func (s ChallengeState) Clone() ChallengeState {
	next := s
	next.History = make([]HistoryEntry, len(s.History))
	copy(next.History, s.History)
	return next
}

// WinsFor counts the archived days won outright by who.
func (s ChallengeState) WinsFor(who ParticipantID) int {
	want := outcomeFor(who)
	wins := 0
	for _, entry := range s.History {
		if entry.Outcome == want {
			wins++
		}
	}
	return wins
}

func outcomeFor(who ParticipantID) Outcome {
	if who == ParticipantA {
		return OutcomeParticipantA
	}
	return OutcomeParticipantB
}
