package store

import (
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-hydration-challenge/pkg/state"
)

// document mirrors state.ChallengeState with every field optional so that
// missing fields can be told apart from zero values.
type document struct {
	IsActive          *bool                `json:"isActive"`
	StartDate         *time.Time           `json:"startDate"`
	LastProcessedDate *string              `json:"lastProcessedDate"`
	ParticipantA      *profileDocument     `json:"participantA"`
	ParticipantB      *profileDocument     `json:"participantB"`
	History           []state.HistoryEntry `json:"history"`
}

type profileDocument struct {
	DisplayName       *string `json:"displayName"`
	AvatarID          *string `json:"avatarId"`
	CurrentIntake     *int    `json:"currentIntake"`
	DailyGoal         *int    `json:"dailyGoal"`
	QuickAddIncrement *int    `json:"quickAddIncrement"`
	TotalWinCount     *int    `json:"totalWinCount"`
}

// encodeState renders the persisted form of st.
func encodeState(st state.ChallengeState) ([]byte, error) {
	if st.History == nil {
		st.History = []state.HistoryEntry{}
	}
	return json.Marshal(st)
}

// decodeState parses a persisted document, upgrading older shapes.
func decodeState(data []byte) (*state.ChallengeState, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPersistedState, err)
	}

	upgradeDocument(&doc)

	if err := doc.validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPersistedState, err)
	}

	st := &state.ChallengeState{
		IsActive:          *doc.IsActive,
		StartDate:         *doc.StartDate,
		LastProcessedDate: *doc.LastProcessedDate,
		ParticipantA:      doc.ParticipantA.profile(),
		ParticipantB:      doc.ParticipantB.profile(),
		History:           doc.History,
	}
	return st, nil
}

// upgradeDocument fills defaults for fields added after the first release.
// Documents written before history tracking have no history field.
func upgradeDocument(doc *document) {
	if doc.History == nil {
		logrus.Infof("persisted state has no history, upgrading with empty history")
		doc.History = []state.HistoryEntry{}
	}
}

func (d *document) validate() error {
	switch {
	case d.IsActive == nil:
		return fmt.Errorf("missing isActive")
	case d.StartDate == nil:
		return fmt.Errorf("missing startDate")
	case d.LastProcessedDate == nil:
		return fmt.Errorf("missing lastProcessedDate")
	case d.ParticipantA == nil:
		return fmt.Errorf("missing participantA")
	case d.ParticipantB == nil:
		return fmt.Errorf("missing participantB")
	}

	if _, err := state.ParseDate(*d.LastProcessedDate); err != nil {
		return err
	}
	if err := d.ParticipantA.validate(); err != nil {
		return fmt.Errorf("participantA: %w", err)
	}
	if err := d.ParticipantB.validate(); err != nil {
		return fmt.Errorf("participantB: %w", err)
	}
	return nil
}

func (p *profileDocument) validate() error {
	switch {
	case p.DisplayName == nil:
		return fmt.Errorf("missing displayName")
	case p.AvatarID == nil:
		return fmt.Errorf("missing avatarId")
	case p.CurrentIntake == nil:
		return fmt.Errorf("missing currentIntake")
	case p.DailyGoal == nil:
		return fmt.Errorf("missing dailyGoal")
	case p.QuickAddIncrement == nil:
		return fmt.Errorf("missing quickAddIncrement")
	case p.TotalWinCount == nil:
		return fmt.Errorf("missing totalWinCount")
	}
	return nil
}

func (p *profileDocument) profile() state.ParticipantProfile {
	return state.ParticipantProfile{
		DisplayName:       *p.DisplayName,
		AvatarID:          *p.AvatarID,
		CurrentIntake:     *p.CurrentIntake,
		DailyGoal:         *p.DailyGoal,
		QuickAddIncrement: *p.QuickAddIncrement,
		TotalWinCount:     *p.TotalWinCount,
	}
}
