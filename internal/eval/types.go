package eval

// #region eval-config
// EvalConfig holds bounds for the post-step check.
type EvalConfig struct {
	MaxSignalNorm float64 // fail if the running signal norm exceeds this (0 = disabled)
}

// DefaultEvalConfig checks finiteness only.
func DefaultEvalConfig() EvalConfig {
	return EvalConfig{}
}

// #endregion eval-config

// #region snapshot
// Snapshot is the state visible after a committed step.
type Snapshot struct {
	Signal []float64
	Levels map[string]float64
	Fields map[string]float64 // logged record fields
}

// #endregion snapshot

// #region eval-metric
// EvalMetric captures a single validation check result.
type EvalMetric struct {
	Name  string
	Value float64
	Pass  bool
}

// #endregion eval-metric

// #region eval-result
// EvalResult is the output of the post-step check.
type EvalResult struct {
	Passed  bool
	Metrics []EvalMetric
	Reason  string
}

// #endregion eval-result
