package gate

// #region veto-type
// VetoType enumerates the conditions that abort the rest of a step.
type VetoType string

const (
	VetoPerceptualGap VetoType = "perceptual_gap"
	VetoOdor          VetoType = "odor"
)

// #endregion veto-type

// #region veto-signal
// VetoSignal represents a detected escape condition.
type VetoSignal struct {
	Type   VetoType
	Reason string
}

// #endregion veto-signal

// #region actions
// Gate actions.
const (
	ActionContinue        = "continue"
	ActionEscape          = "escape"
	ActionOlfactoryEscape = "olfactory_escape"
)

// #endregion actions

// #region gate-config
// GateConfig holds the escape-mode thresholds.
type GateConfig struct {
	EscapeDuration int     // consecutive over-threshold steps that trigger escape
	OdorLimit      float64 // olfactory discomfort above this triggers olfactory escape
}

// DefaultGateConfig returns the simulator defaults.
func DefaultGateConfig() GateConfig {
	return GateConfig{
		EscapeDuration: 3,
		OdorLimit:      0.7,
	}
}

// #endregion gate-config

// #region gate-decision
// GateDecision is the output of the gate evaluation.
type GateDecision struct {
	Action      string // "continue" | "escape" | "olfactory_escape"
	Reason      string
	Vetoed      bool
	VetoSignals []VetoSignal
	Streak      int // consecutive over-threshold steps after this evaluation
}

// #endregion gate-decision
