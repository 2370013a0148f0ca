package update

import (
	"github.com/danielpatrickdp/homunculus/internal/gate"
	"github.com/danielpatrickdp/homunculus/internal/kalman"
	"github.com/danielpatrickdp/homunculus/internal/region"
	"gonum.org/v1/gonum/floats"
)

// #region update-function
// Update commits a step that passed the gate: digestion suppresses serotonin,
// the striatal reward drives the dopamine filter, and the hippocampal trace is
// blended into the running signal. Levels are mutated in place.
func Update(in UpdateInput, levels region.Levels, filter *kalman.Filter, config UpdateConfig) UpdateResult {
	// 1. Digestion
	var suppressed []Consumption
	for _, c := range in.Consumption {
		if c.Digesting(in.Time) {
			levels.Scale(region.Serotonin, config.ConsumptionSuppression)
			suppressed = append(suppressed, c)
		}
	}

	// 2. Dopamine estimate
	reward := in.Outputs.Striatum.Value()
	dopamine := filter.Update(reward)
	levels[region.Dopamine] = dopamine

	// 3. Hippocampal blend
	next := Blend(in.Signal, in.Outputs.Hippocampus.Values(), config.Dt)

	return UpdateResult{
		Signal:   next,
		Dopamine: dopamine,
		Metrics: Metrics{
			Reward:      reward,
			KalmanGain:  filter.Gain(),
			Suppressed:  suppressed,
			SignalDelta: floats.Distance(next, in.Signal, 2),
		},
	}
}

// #endregion update-function

// #region blend
// Blend returns trace*dt + signal*(1-dt). A one-element trace broadcasts.
func Blend(signal, trace []float64, dt float64) []float64 {
	out := make([]float64, len(signal))
	for i, s := range signal {
		var m float64
		switch {
		case len(trace) == 1:
			m = trace[0]
		case i < len(trace):
			m = trace[i]
		}
		out[i] = m*dt + s*(1-dt)
	}
	return out
}

// #endregion blend

// #region escape
// Escape applies an escape decision: the running signal is zeroed and the
// matching neuromodulator is penalized. Non-escape decisions return the signal
// unchanged.
func Escape(decision gate.GateDecision, signal []float64, levels region.Levels, config UpdateConfig) []float64 {
	switch decision.Action {
	case gate.ActionEscape:
		levels.Scale(region.Dopamine, config.EscapeDopamine)
	case gate.ActionOlfactoryEscape:
		levels.Scale(region.Serotonin, config.OdorSerotonin)
	default:
		return signal
	}
	return make([]float64, len(signal))
}

// #endregion escape
