package eval

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// #region eval-harness
// EvalHarness checks a committed step for numeric faults.
type EvalHarness struct {
	config EvalConfig
}

// NewEvalHarness creates an eval harness with the given configuration.
func NewEvalHarness(config EvalConfig) *EvalHarness {
	return &EvalHarness{config: config}
}

// Run verifies that every value in the snapshot is finite and, when
// configured, that the signal norm stays bounded.
func (h *EvalHarness) Run(snap Snapshot) EvalResult {
	var metrics []EvalMetric
	var failReasons []string

	// 1. Running signal
	bad := countNonFinite(snap.Signal)
	metrics = append(metrics, EvalMetric{Name: "signal_non_finite", Value: float64(bad), Pass: bad == 0})
	if bad > 0 {
		failReasons = append(failReasons, fmt.Sprintf("%d non-finite signal elements", bad))
	}

	// 2. Neurotransmitter levels and record fields, in key order
	for _, group := range []struct {
		prefix string
		values map[string]float64
	}{
		{"level", snap.Levels},
		{"field", snap.Fields},
	} {
		for _, k := range sortedKeys(group.values) {
			v := group.values[k]
			if isFinite(v) {
				continue
			}
			metrics = append(metrics, EvalMetric{Name: group.prefix + "_" + k, Value: v, Pass: false})
			failReasons = append(failReasons, fmt.Sprintf("%s %s is %v", group.prefix, k, v))
		}
	}

	// 3. Signal norm bound
	if h.config.MaxSignalNorm > 0 && bad == 0 {
		norm := floats.Norm(snap.Signal, 2)
		pass := norm <= h.config.MaxSignalNorm
		metrics = append(metrics, EvalMetric{Name: "signal_norm", Value: norm, Pass: pass})
		if !pass {
			failReasons = append(failReasons, fmt.Sprintf("signal norm %.4f exceeds %.4f", norm, h.config.MaxSignalNorm))
		}
	}

	reason := "all checks passed"
	passed := len(failReasons) == 0
	if !passed {
		reason = fmt.Sprintf("eval failed: %s", failReasons[0])
		if len(failReasons) > 1 {
			reason = fmt.Sprintf("eval failed: %d checks: %s", len(failReasons), failReasons[0])
		}
	}

	return EvalResult{
		Passed:  passed,
		Metrics: metrics,
		Reason:  reason,
	}
}

// #endregion eval-harness

// #region helpers
func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func countNonFinite(v []float64) int {
	var n int
	for _, x := range v {
		if !isFinite(x) {
			n++
		}
	}
	return n
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// #endregion helpers
