package update

import "github.com/danielpatrickdp/homunculus/internal/region"

// #region consumption
// Consumption is something eaten earlier that may still be digesting.
type Consumption struct {
	Item       string  `json:"item" yaml:"item" toml:"item"`
	OnsetTime  float64 `json:"time" yaml:"time" toml:"time"`
	DigestTime float64 `json:"digest_time" yaml:"digest_time" toml:"digest_time"`
	Symptom    string  `json:"symptom" yaml:"symptom" toml:"symptom"`
	Organ      string  `json:"organ,omitempty" yaml:"organ,omitempty" toml:"organ,omitempty"`
}

// Digesting reports whether the item is still inside its digestion window at t.
func (c Consumption) Digesting(t float64) bool {
	elapsed := t - c.OnsetTime
	return elapsed >= 0 && elapsed < c.DigestTime
}

// DefaultConsumptionHistory returns the built-in history.
func DefaultConsumptionHistory() []Consumption {
	return []Consumption{
		{Item: "milk", OnsetTime: 2.0, DigestTime: 4.0, Symptom: "abdominal pain", Organ: "stomach"},
		{Item: "shrimp", OnsetTime: 5.0, DigestTime: 6.0, Symptom: "itch", Organ: "skin"},
	}
}

// #endregion consumption

// #region update-input
// UpdateInput carries one committed step into the update function.
type UpdateInput struct {
	Time        float64
	Signal      []float64 // running input signal before blending
	Outputs     region.Outputs
	Consumption []Consumption
}

// #endregion update-input

// #region update-config
// UpdateConfig holds the rates applied while committing a step.
type UpdateConfig struct {
	Dt                     float64 // blend weight of the hippocampal trace
	ConsumptionSuppression float64 // serotonin factor per digesting item
	EscapeDopamine         float64 // dopamine factor on perceptual-gap escape
	OdorSerotonin          float64 // serotonin factor on olfactory escape
}

// DefaultUpdateConfig returns the simulator defaults.
func DefaultUpdateConfig() UpdateConfig {
	return UpdateConfig{
		Dt:                     0.1,
		ConsumptionSuppression: 0.8,
		EscapeDopamine:         0.5,
		OdorSerotonin:          0.7,
	}
}

// #endregion update-config

// #region metrics
// Metrics captures telemetry from an update.
type Metrics struct {
	Reward      float64 // striatal observation fed to the filter
	KalmanGain  float64
	Suppressed  []Consumption
	SignalDelta float64 // L2 norm of the blended signal change
}

// UpdateResult bundles everything returned by Update.
type UpdateResult struct {
	Signal   []float64
	Dopamine float64
	Metrics  Metrics
}

// #endregion metrics
