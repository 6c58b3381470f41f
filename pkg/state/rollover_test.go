// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package state

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func activeState(intakeA, goalA, intakeB, goalB int) ChallengeState {
	return ChallengeState{
		IsActive:          true,
		StartDate:         time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC),
		LastProcessedDate: "2025-03-01",
		ParticipantA: ParticipantProfile{
			DisplayName:       "Sam",
			AvatarID:          "frog-green",
			CurrentIntake:     intakeA,
			DailyGoal:         goalA,
			QuickAddIncrement: 16,
		},
		ParticipantB: ParticipantProfile{
			DisplayName:       "Alex",
			AvatarID:          "owl-purple",
			CurrentIntake:     intakeB,
			DailyGoal:         goalB,
			QuickAddIncrement: 16,
		},
		History: []HistoryEntry{},
	}
}

func TestEvaluateRollover_NoChange(t *testing.T) {
	inactive := activeState(50, 100, 50, 100)
	inactive.IsActive = false

	tests := []struct {
		name  string
		state ChallengeState
		today string
	}{
		{name: "inactive challenge, next day", state: inactive, today: "2025-03-02"},
		{name: "inactive challenge, far future", state: inactive, today: "2026-01-01"},
		{name: "inactive challenge, malformed today", state: inactive, today: "not-a-date"},
		{name: "inactive challenge, empty today", state: inactive, today: ""},
		{name: "same day", state: activeState(50, 100, 50, 100), today: "2025-03-01"},
		{name: "clock moved backward", state: activeState(50, 100, 50, 100), today: "2025-02-27"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := EvaluateRollover(tt.state, tt.today)
			if err != nil {
				t.Fatalf("EvaluateRollover() error = %v", err)
			}
			if result.Advanced {
				t.Errorf("EvaluateRollover() advanced, expected no change")
			}
			if !reflect.DeepEqual(result.State, tt.state) {
				t.Errorf("EvaluateRollover() state = %+v, expected unchanged %+v", result.State, tt.state)
			}
		})
	}
}

func TestEvaluateRollover_Outcomes(t *testing.T) {
	tests := []struct {
		name            string
		intakeA, goalA  int
		intakeB, goalB  int
		expectedOutcome Outcome
		expectedWinsA   int
		expectedWinsB   int
	}{
		{name: "only A met goal", intakeA: 100, goalA: 100, intakeB: 50, goalB: 100, expectedOutcome: OutcomeParticipantA, expectedWinsA: 1},
		{name: "only B met goal", intakeA: 99, goalA: 100, intakeB: 120, goalB: 91, expectedOutcome: OutcomeParticipantB, expectedWinsB: 1},
		{name: "both met goal", intakeA: 100, goalA: 100, intakeB: 100, goalB: 100, expectedOutcome: OutcomeTie},
		{name: "neither met goal", intakeA: 0, goalA: 100, intakeB: 0, goalB: 100, expectedOutcome: OutcomeNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := activeState(tt.intakeA, tt.goalA, tt.intakeB, tt.goalB)

			result, err := EvaluateRollover(st, "2025-03-02")
			if err != nil {
				t.Fatalf("EvaluateRollover() error = %v", err)
			}
			if !result.Advanced {
				t.Fatal("EvaluateRollover() did not advance")
			}
			if result.Entry.Outcome != tt.expectedOutcome {
				t.Errorf("Outcome = %s, expected %s", result.Entry.Outcome, tt.expectedOutcome)
			}
			if result.State.ParticipantA.TotalWinCount != tt.expectedWinsA {
				t.Errorf("ParticipantA.TotalWinCount = %d, expected %d", result.State.ParticipantA.TotalWinCount, tt.expectedWinsA)
			}
			if result.State.ParticipantB.TotalWinCount != tt.expectedWinsB {
				t.Errorf("ParticipantB.TotalWinCount = %d, expected %d", result.State.ParticipantB.TotalWinCount, tt.expectedWinsB)
			}
		})
	}
}

func TestEvaluateRollover_ArchivesPreviousDay(t *testing.T) {
	st := activeState(80, 101, 95, 91)

	result, err := EvaluateRollover(st, "2025-03-02")
	if err != nil {
		t.Fatalf("EvaluateRollover() error = %v", err)
	}

	expectedEntry := HistoryEntry{
		Date:    "2025-03-01",
		Outcome: OutcomeParticipantB,
		IntakeA: 80,
		IntakeB: 95,
		GoalA:   101,
		GoalB:   91,
	}
	if result.Entry != expectedEntry {
		t.Errorf("Entry = %+v, expected %+v", result.Entry, expectedEntry)
	}

	next := result.State
	if len(next.History) != 1 || next.History[0] != expectedEntry {
		t.Errorf("History = %+v, expected [%+v]", next.History, expectedEntry)
	}
	if next.LastProcessedDate != "2025-03-02" {
		t.Errorf("LastProcessedDate = %s, expected 2025-03-02", next.LastProcessedDate)
	}
	if next.ParticipantA.CurrentIntake != 0 || next.ParticipantB.CurrentIntake != 0 {
		t.Errorf("CurrentIntake = %d/%d, expected 0/0", next.ParticipantA.CurrentIntake, next.ParticipantB.CurrentIntake)
	}
	if next.ParticipantA.DailyGoal != 101 || next.ParticipantB.DailyGoal != 91 {
		t.Error("goals should survive the rollover")
	}
}

func TestEvaluateRollover_Idempotent(t *testing.T) {
	st := activeState(120, 100, 10, 100)

	first, err := EvaluateRollover(st, "2025-03-02")
	if err != nil {
		t.Fatalf("EvaluateRollover() error = %v", err)
	}

	second, err := EvaluateRollover(first.State, "2025-03-02")
	if err != nil {
		t.Fatalf("EvaluateRollover() error = %v", err)
	}
	if second.Advanced {
		t.Error("second evaluation on the same day should not advance")
	}
	if len(second.State.History) != 1 {
		t.Errorf("History length = %d, expected 1", len(second.State.History))
	}
	if second.State.ParticipantA.TotalWinCount != 1 {
		t.Errorf("TotalWinCount = %d, expected 1", second.State.ParticipantA.TotalWinCount)
	}
}

func TestEvaluateRollover_SkippedDaysNotBackfilled(t *testing.T) {
	st := activeState(100, 100, 0, 100)

	result, err := EvaluateRollover(st, "2025-03-06")
	if err != nil {
		t.Fatalf("EvaluateRollover() error = %v", err)
	}

	if len(result.State.History) != 1 {
		t.Fatalf("History length = %d, expected 1", len(result.State.History))
	}
	if result.State.History[0].Date != "2025-03-01" {
		t.Errorf("History[0].Date = %s, expected 2025-03-01", result.State.History[0].Date)
	}
	if result.State.LastProcessedDate != "2025-03-06" {
		t.Errorf("LastProcessedDate = %s, expected 2025-03-06", result.State.LastProcessedDate)
	}
}

func TestEvaluateRollover_DoesNotMutateInput(t *testing.T) {
	st := activeState(100, 100, 40, 100)
	st.History = append(make([]HistoryEntry, 0, 4), HistoryEntry{Date: "2025-02-28", Outcome: OutcomeNone})
	before := st.Clone()

	result, err := EvaluateRollover(st, "2025-03-02")
	if err != nil {
		t.Fatalf("EvaluateRollover() error = %v", err)
	}

	if !reflect.DeepEqual(st, before) {
		t.Errorf("input mutated: %+v, expected %+v", st, before)
	}
	if spare := st.History[:2]; spare[1] == result.Entry {
		t.Error("new entry written into the input's backing array")
	}
	if len(result.State.History) != 2 {
		t.Errorf("History length = %d, expected 2", len(result.State.History))
	}
}

func TestEvaluateRollover_InvalidDate(t *testing.T) {
	st := activeState(0, 100, 0, 100)

	for _, today := range []string{"", "03/02/2025", "2025-13-01", "tomorrow"} {
		result, err := EvaluateRollover(st, today)
		if !errors.Is(err, ErrInvalidDate) {
			t.Errorf("EvaluateRollover(%q) error = %v, expected ErrInvalidDate", today, err)
		}
		if result.Advanced {
			t.Errorf("EvaluateRollover(%q) advanced on invalid date", today)
		}
	}
}

func TestEvaluateRollover_WinCountsMatchHistory(t *testing.T) {
	st := activeState(0, 100, 0, 100)
	days := []struct {
		today  string
		a, b   int
		expect Outcome
	}{
		{"2025-03-02", 100, 0, OutcomeParticipantA},
		{"2025-03-03", 100, 100, OutcomeTie},
		{"2025-03-04", 0, 0, OutcomeNone},
		{"2025-03-05", 10, 150, OutcomeParticipantB},
		{"2025-03-06", 200, 20, OutcomeParticipantA},
	}

	for _, d := range days {
		st.ParticipantA.CurrentIntake = d.a
		st.ParticipantB.CurrentIntake = d.b

		result, err := EvaluateRollover(st, d.today)
		if err != nil {
			t.Fatalf("EvaluateRollover(%s) error = %v", d.today, err)
		}
		if result.Entry.Outcome != d.expect {
			t.Errorf("day before %s outcome = %s, expected %s", d.today, result.Entry.Outcome, d.expect)
		}
		st = result.State
	}

	if st.ParticipantA.TotalWinCount != st.WinsFor(ParticipantA) || st.ParticipantA.TotalWinCount != 2 {
		t.Errorf("ParticipantA.TotalWinCount = %d, history says %d, expected 2",
			st.ParticipantA.TotalWinCount, st.WinsFor(ParticipantA))
	}
	if st.ParticipantB.TotalWinCount != st.WinsFor(ParticipantB) || st.ParticipantB.TotalWinCount != 1 {
		t.Errorf("ParticipantB.TotalWinCount = %d, history says %d, expected 1",
			st.ParticipantB.TotalWinCount, st.WinsFor(ParticipantB))
	}

	for i := 1; i < len(st.History); i++ {
		if st.History[i-1].Date >= st.History[i].Date {
			t.Errorf("history dates not strictly increasing: %s then %s", st.History[i-1].Date, st.History[i].Date)
		}
	}
}

func TestAdvanceDay(t *testing.T) {
	st := activeState(101, 101, 30, 91)

	result, err := AdvanceDay(st)
	if err != nil {
		t.Fatalf("AdvanceDay() error = %v", err)
	}
	if !result.Advanced {
		t.Fatal("AdvanceDay() did not advance")
	}
	if result.State.LastProcessedDate != "2025-03-02" {
		t.Errorf("LastProcessedDate = %s, expected 2025-03-02", result.State.LastProcessedDate)
	}
	if result.Entry.Date != "2025-03-01" || result.Entry.Outcome != OutcomeParticipantA {
		t.Errorf("Entry = %+v, expected 2025-03-01 won by A", result.Entry)
	}

	inactive := st
	inactive.IsActive = false
	result, err = AdvanceDay(inactive)
	if err != nil {
		t.Fatalf("AdvanceDay() error = %v", err)
	}
	if result.Advanced {
		t.Error("AdvanceDay() should not advance an inactive challenge")
	}
}

func TestAdvanceDay_MonthBoundary(t *testing.T) {
	st := activeState(0, 100, 0, 100)
	st.LastProcessedDate = "2024-02-29"

	result, err := AdvanceDay(st)
	if err != nil {
		t.Fatalf("AdvanceDay() error = %v", err)
	}
	if result.State.LastProcessedDate != "2024-03-01" {
		t.Errorf("LastProcessedDate = %s, expected 2024-03-01", result.State.LastProcessedDate)
	}
}

func TestEvaluateRollover_AfterManualAdvanceIsQuiet(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	advanced, err := AdvanceDay(activeState(120, 100, 0, 100))
	if err != nil {
		t.Fatalf("AdvanceDay() error = %v", err)
	}
	hook.Reset()

	// The wall clock is still on the day that was just archived.
	for i := 0; i < 3; i++ {
		result, err := EvaluateRollover(advanced.State, "2025-03-01")
		if err != nil || result.Advanced {
			t.Fatalf("EvaluateRollover() = %+v, %v; expected no change", result, err)
		}
	}

	for _, entry := range hook.AllEntries() {
		if entry.Level <= logrus.WarnLevel {
			t.Errorf("unexpected %s log: %s", entry.Level, entry.Message)
		}
	}
}
