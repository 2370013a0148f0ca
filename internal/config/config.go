// Package config loads the simulator configuration from JSON, YAML or TOML.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/danielpatrickdp/homunculus/internal/region"
	"github.com/danielpatrickdp/homunculus/internal/update"
	"gopkg.in/yaml.v3"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// #region types

// KalmanConfig holds the dopamine filter parameters.
type KalmanConfig struct {
	InitialUncertainty  float64 `json:"initial_uncertainty" yaml:"initial_uncertainty" toml:"initial_uncertainty"`
	ProcessVariance     float64 `json:"process_variance" yaml:"process_variance" toml:"process_variance"`
	ObservationVariance float64 `json:"observation_variance" yaml:"observation_variance" toml:"observation_variance"`
}

// Simulation holds the driver loop parameters.
type Simulation struct {
	Steps                int          `json:"steps" yaml:"steps" toml:"steps"`
	Dt                   float64      `json:"dt" yaml:"dt" toml:"dt"`
	DiscrepancyThreshold float64      `json:"discrepancy_threshold" yaml:"discrepancy_threshold" toml:"discrepancy_threshold"`
	EscapeDuration       int          `json:"escape_duration" yaml:"escape_duration" toml:"escape_duration"`
	Kalman               KalmanConfig `json:"kalman" yaml:"kalman" toml:"kalman"`
}

// Config is everything a run needs.
type Config struct {
	Neurotransmitters  region.Levels        `json:"neurotransmitters" yaml:"neurotransmitters" toml:"neurotransmitters"`
	InternalState      region.InternalState `json:"internal_state" yaml:"internal_state" toml:"internal_state"`
	ExternalStimuli    []Vec                `json:"external_stimuli" yaml:"external_stimuli" toml:"external_stimuli"`
	ImageSignals       []Vec                `json:"image_signals" yaml:"image_signals" toml:"image_signals"`
	LinguisticInputs   []Vec                `json:"linguistic_inputs" yaml:"linguistic_inputs" toml:"linguistic_inputs"`
	AuditoryInputs     []Vec                `json:"auditory_inputs" yaml:"auditory_inputs" toml:"auditory_inputs"`
	OlfactoryInputs    []Vec                `json:"olfactory_inputs" yaml:"olfactory_inputs" toml:"olfactory_inputs"`
	InitialInput       Vec                  `json:"initial_input" yaml:"initial_input" toml:"initial_input"`
	ObservedPain       map[string]float64   `json:"observed_pain" yaml:"observed_pain" toml:"observed_pain"`
	ConsumptionHistory []update.Consumption `json:"consumption_history" yaml:"consumption_history" toml:"consumption_history"`
	Simulation         Simulation           `json:"simulation" yaml:"simulation" toml:"simulation"`
}

// #endregion types

// #region defaults

// Modality fallbacks used when the matching input list is empty.
var (
	DefaultImage      = []float64{0.5, 0.5, 0.5}
	DefaultLinguistic = []float64{0.2, 0.3}
	DefaultAuditory   = []float64{0.1, 0.4}
	DefaultOlfactory  = []float64{0.0}
)

// DefaultConfig returns a runnable configuration.
func DefaultConfig() *Config {
	return &Config{
		Neurotransmitters: region.Levels{
			region.Dopamine:  1.0,
			region.Serotonin: 1.0,
		},
		InternalState:      region.InternalState{},
		ExternalStimuli:    []Vec{{0}},
		InitialInput:       Vec{0.1, 0.2, 0.3},
		ObservedPain:       map[string]float64{"pain": 0.6, "distress": 0.4},
		ConsumptionHistory: update.DefaultConsumptionHistory(),
		Simulation: Simulation{
			Steps:                10,
			Dt:                   0.1,
			DiscrepancyThreshold: 0.5,
			EscapeDuration:       3,
			Kalman: KalmanConfig{
				InitialUncertainty:  0.1,
				ProcessVariance:     0.01,
				ObservationVariance: 0.05,
			},
		},
	}
}

// #endregion defaults

// #region load

// Load reads a config file over the defaults. The extension selects the
// format: .json, .yaml/.yml or .toml.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg, err := Parse(filepath.Ext(path), data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes data in the format named by ext and validates the result.
// Scalars, lists and nested sections overlay the defaults. The
// neurotransmitters, internal_state and observed_pain maps replace theirs
// whole and fall back to the defaults only when the document omits them.
func Parse(ext string, data []byte) (*Config, error) {
	def := DefaultConfig()
	cfg := DefaultConfig()
	cfg.Neurotransmitters = nil
	cfg.InternalState = nil
	cfg.ObservedPain = nil

	if err := decode(ext, data, cfg); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if cfg.Neurotransmitters == nil {
		cfg.Neurotransmitters = def.Neurotransmitters
	}
	if cfg.InternalState == nil {
		cfg.InternalState = def.InternalState
	}
	if cfg.ObservedPain == nil {
		cfg.ObservedPain = def.ObservedPain
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(ext string, data []byte, cfg *Config) error {
	switch strings.ToLower(ext) {
	case ".json":
		return json.Unmarshal(data, cfg)
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, cfg)
	case ".toml":
		_, err := toml.Decode(string(data), cfg)
		return err
	default:
		return fmt.Errorf("unsupported config format %q", ext)
	}
}

// #endregion load

// #region validate

// Validate checks the configuration and reports the first problem found.
func (c *Config) Validate() error {
	sim := c.Simulation
	switch {
	case sim.Steps <= 0:
		return fmt.Errorf("%w: steps must be positive, got %d", ErrInvalid, sim.Steps)
	case sim.Dt <= 0:
		return fmt.Errorf("%w: dt must be positive, got %v", ErrInvalid, sim.Dt)
	case sim.EscapeDuration <= 0:
		return fmt.Errorf("%w: escape_duration must be positive, got %d", ErrInvalid, sim.EscapeDuration)
	case sim.Kalman.ProcessVariance < 0 || sim.Kalman.ObservationVariance < 0:
		return fmt.Errorf("%w: kalman variances must be non-negative", ErrInvalid)
	case sim.Kalman.ProcessVariance == 0 && sim.Kalman.ObservationVariance == 0:
		return fmt.Errorf("%w: kalman process and observation variance are both zero", ErrInvalid)
	case len(c.ExternalStimuli) == 0:
		return fmt.Errorf("%w: external_stimuli is empty", ErrInvalid)
	case len(c.InitialInput) == 0:
		return fmt.Errorf("%w: initial_input is empty", ErrInvalid)
	}

	for _, name := range []string{region.Dopamine, region.Serotonin} {
		if _, ok := c.Neurotransmitters[name]; !ok {
			return fmt.Errorf("%w: neurotransmitters.%s is required", ErrInvalid, name)
		}
	}
	for name, level := range c.Neurotransmitters {
		if level < 0 {
			return fmt.Errorf("%w: neurotransmitters.%s is negative (%v)", ErrInvalid, name, level)
		}
	}
	for i, s := range c.ExternalStimuli {
		if len(s) != 1 && len(s) != len(c.InitialInput) {
			return fmt.Errorf("%w: external_stimuli[%d] has %d elements, want 1 or %d",
				ErrInvalid, i, len(s), len(c.InitialInput))
		}
	}
	for i, h := range c.ConsumptionHistory {
		if h.DigestTime < 0 {
			return fmt.Errorf("%w: consumption_history[%d] (%s) has negative digest_time", ErrInvalid, i, h.Item)
		}
	}
	return nil
}

// #endregion validate

// #region modality

// Pick returns inputs[t mod len], or fallback when inputs is empty.
func Pick(inputs []Vec, t int, fallback []float64) []float64 {
	if len(inputs) == 0 {
		out := make([]float64, len(fallback))
		copy(out, fallback)
		return out
	}
	return inputs[t%len(inputs)].Clone()
}

// #endregion modality
