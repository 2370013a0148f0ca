package replay

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/danielpatrickdp/homunculus/internal/config"
	"github.com/danielpatrickdp/homunculus/internal/feedback"
	"github.com/danielpatrickdp/homunculus/internal/gate"
	"github.com/danielpatrickdp/homunculus/internal/logging"
)

// #region fixture-types

// Fixture is the top-level JSON structure for a replay fixture.
type Fixture struct {
	Description string          `json:"description"`
	Config      json.RawMessage `json:"config"`
	Expected    FixtureExpected `json:"expected"`
}

// FixtureExpected is what a replay of the fixture config must reproduce.
// Actions and Series are each optional.
type FixtureExpected struct {
	Actions   []FixtureAction `json:"actions"`
	Series    json.RawMessage `json:"series,omitempty"` // column-oriented feedback log
	Tolerance float64         `json:"tolerance,omitempty"`
}

// FixtureAction captures the expected gate action for one step.
type FixtureAction struct {
	Step   int    `json:"step"`
	Action string `json:"action"`
}

// #endregion fixture-types

// #region fixture-loader

// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return &f, nil
}

// ToConfig overlays the fixture config on the defaults and validates it.
func (f *Fixture) ToConfig() (*config.Config, error) {
	return ParseConfig(f.Config)
}

// ExpectedSeries decodes the expected log, or returns nil when the fixture has none.
func (f *Fixture) ExpectedSeries() (*feedback.Series, error) {
	if len(bytes.TrimSpace(f.Expected.Series)) == 0 {
		return nil, nil
	}
	s, err := feedback.Unmarshal(f.Expected.Series)
	if err != nil {
		return nil, fmt.Errorf("expected series: %w", err)
	}
	return s, nil
}

// ParseConfig decodes a JSON config over the defaults, as stored in fixtures
// and in the run archive.
func ParseConfig(data []byte) (*config.Config, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.Parse(".json", data)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// #endregion fixture-loader

// #region fixture-builder

// ActionsFromEvents rebuilds the per-step gate actions of a run from its
// escape events. Steps without an escape event continued.
func ActionsFromEvents(steps int, events []logging.Event) []FixtureAction {
	escaped := make(map[int]string)
	for _, ev := range events {
		switch ev.Kind {
		case logging.KindEscape:
			escaped[ev.Step] = gate.ActionEscape
		case logging.KindOlfactoryEscape:
			escaped[ev.Step] = gate.ActionOlfactoryEscape
		}
	}
	actions := make([]FixtureAction, steps)
	for i := range actions {
		actions[i] = FixtureAction{Step: i, Action: gate.ActionContinue}
		if a, ok := escaped[i]; ok {
			actions[i].Action = a
		}
	}
	return actions
}

// BuildFixture packages an archived run as a fixture.
func BuildFixture(description, configJSON string, steps int, series *feedback.Series, events []logging.Event) (*Fixture, error) {
	data, err := feedback.Marshal(series)
	if err != nil {
		return nil, fmt.Errorf("marshal series: %w", err)
	}
	if len(bytes.TrimSpace([]byte(configJSON))) == 0 {
		configJSON = "{}"
	}
	return &Fixture{
		Description: description,
		Config:      json.RawMessage(configJSON),
		Expected: FixtureExpected{
			Actions:   ActionsFromEvents(steps, events),
			Series:    data,
			Tolerance: DefaultTolerance,
		},
	}, nil
}

// WriteFixture writes f as indented JSON.
func WriteFixture(path string, f *Fixture) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal fixture: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write fixture %s: %w", path, err)
	}
	return nil
}

// #endregion fixture-builder
