package roster

import (
	"fmt"
	"os"
	"strings"

	"github.com/gookit/validate"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/AccelByte/extend-hydration-challenge/pkg/state"
)

// Roster is the registration seed for a challenge. A zero DurationDays leaves
// the configured challenge length in place.
type Roster struct {
	DurationDays int           `yaml:"durationDays,omitempty"`
	ParticipantA ProfileConfig `yaml:"participantA"`
	ParticipantB ProfileConfig `yaml:"participantB"`
}

// ProfileConfig describes one participant. Zero goal or increment means the default.
type ProfileConfig struct {
	DisplayName       string `yaml:"displayName" validate:"required"`
	AvatarID          string `yaml:"avatarId,omitempty"`
	DailyGoal         int    `yaml:"dailyGoal,omitempty" validate:"required|min:1"`
	QuickAddIncrement int    `yaml:"quickAddIncrement,omitempty" validate:"required|min:1"`
}

// Load reads a roster from a YAML file.
// Supports environment variable expansion in the form ${VAR_NAME} or ${VAR_NAME:default}.
func Load(path string) (*Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates roster YAML, applying defaults.
func Parse(data []byte) (*Roster, error) {
	expanded := expandEnvVars(string(data))

	var r Roster
	if err := yaml.Unmarshal([]byte(expanded), &r); err != nil {
		return nil, fmt.Errorf("failed to parse roster YAML: %w", err)
	}

	r.applyDefaults()

	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("invalid roster: %w", err)
	}

	return &r, nil
}

func (r *Roster) applyDefaults() {
	r.ParticipantA.fill(state.DefaultAvatarA, state.DefaultGoalA)
	r.ParticipantB.fill(state.DefaultAvatarB, state.DefaultGoalB)
}

func (p *ProfileConfig) fill(avatar string, goal int) {
	if p.AvatarID == "" {
		p.AvatarID = avatar
	}
	if p.DailyGoal == 0 {
		p.DailyGoal = goal
	}
	if p.QuickAddIncrement == 0 {
		p.QuickAddIncrement = state.DefaultQuickAddIncrement
	}
}

// Validate checks the roster for values registration would reject.
// Avatars outside the catalog are allowed and only logged.
func (r *Roster) Validate() error {
	if r.DurationDays < 0 {
		return fmt.Errorf("durationDays must not be negative, got %d", r.DurationDays)
	}

	profiles := []struct {
		name string
		cfg  ProfileConfig
	}{
		{"participantA", r.ParticipantA},
		{"participantB", r.ParticipantB},
	}
	for _, p := range profiles {
		if strings.TrimSpace(p.cfg.DisplayName) == "" {
			return fmt.Errorf("%s has empty displayName", p.name)
		}

		v := validate.Struct(&p.cfg)
		if !v.Validate() {
			return fmt.Errorf("%s: %s", p.name, v.Errors.One())
		}

		if _, ok := state.LookupAvatar(p.cfg.AvatarID); !ok {
			logrus.Warnf("%s uses unknown avatar %q", p.name, p.cfg.AvatarID)
		}
	}

	return nil
}

// Profiles converts the roster to registration inputs.
func (r *Roster) Profiles() (a, b state.ProfileInit) {
	return r.ParticipantA.init(), r.ParticipantB.init()
}

func (p ProfileConfig) init() state.ProfileInit {
	return state.ProfileInit{
		DisplayName:       p.DisplayName,
		AvatarID:          p.AvatarID,
		DailyGoal:         p.DailyGoal,
		QuickAddIncrement: p.QuickAddIncrement,
	}
}

// expandEnvVars expands environment variables in the format ${VAR} or ${VAR:default}.
func expandEnvVars(s string) string {
	return os.Expand(s, func(key string) string {
		parts := strings.SplitN(key, ":", 2)
		varName := parts[0]
		defaultValue := ""
		if len(parts) == 2 {
			defaultValue = parts[1]
		}

		value := os.Getenv(varName)
		if value == "" {
			return defaultValue
		}
		return value
	})
}
