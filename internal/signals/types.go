package signals

import "github.com/danielpatrickdp/homunculus/internal/region"

// #region config

// ProducerConfig holds the adaptive-threshold coefficients.
type ProducerConfig struct {
	BaseThreshold     float64 // discrepancy threshold before modulation
	PrefrontalWeight  float64 // added per unit of prefrontal output
	SerotoninWeight   float64 // added per unit of serotonin above SerotoninBaseline
	SerotoninBaseline float64
	StreakBonus       float64 // subtracted as StreakBonus * exp(-streak)
	AngerOffset       float64 // visual-language discrepancy that starts to read as anger
	DefaultSerotonin  float64 // used when the serotonin level is missing
}

// DefaultProducerConfig returns the coefficients used by the simulator.
func DefaultProducerConfig() ProducerConfig {
	return ProducerConfig{
		BaseThreshold:     0.5,
		PrefrontalWeight:  0.2,
		SerotoninWeight:   0.3,
		SerotoninBaseline: 0.5,
		StreakBonus:       0.1,
		AngerOffset:       0.5,
		DefaultSerotonin:  1.0,
	}
}

// #endregion config

// #region signals

// Signals are the cross-modal measurements derived from one step's outputs.
type Signals struct {
	VisualLanguage      float64 // |visual - language|
	AuditoryLanguage    float64 // |auditory - language|
	OlfactoryDiscomfort float64
	Discrepancy         float64 // max of the two modality discrepancies
	FeedbackIntensity   float64 // max of the discrepancies and the discomfort
	Threshold           float64 // adaptive discrepancy threshold
	Prefrontal          float64 // reduced prefrontal output used by the threshold
}

// Exceeded reports whether the modality discrepancy is above the adaptive threshold.
func (s Signals) Exceeded() bool {
	return s.Discrepancy > s.Threshold
}

// #endregion signals

// #region input

// ProduceInput bundles what the producer needs from the current step.
type ProduceInput struct {
	Outputs region.Outputs
	Levels  region.Levels
	Streak  int // consecutive over-threshold steps so far
}

// #endregion input
