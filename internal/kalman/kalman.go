package kalman

import "math"

// #region filter
// Filter is a one-dimensional Kalman filter with a random-walk process model.
type Filter struct {
	Estimate            float64
	Uncertainty         float64
	ProcessVariance     float64
	ObservationVariance float64

	gain float64
}

// New returns a filter seeded with an initial estimate and uncertainty.
func New(estimate, uncertainty, processVariance, observationVariance float64) *Filter {
	return &Filter{
		Estimate:            estimate,
		Uncertainty:         uncertainty,
		ProcessVariance:     processVariance,
		ObservationVariance: observationVariance,
	}
}

// Update folds one observation into the estimate and returns the new estimate.
// There is no guard against zero variances; the result is then NaN.
func (f *Filter) Update(observation float64) float64 {
	predicted := f.Uncertainty + f.ProcessVariance
	f.gain = predicted / (predicted + f.ObservationVariance)
	f.Estimate += f.gain * (observation - f.Estimate)
	f.Uncertainty = (1 - f.gain) * predicted
	return f.Estimate
}

// Gain is the gain used by the most recent Update.
func (f *Filter) Gain() float64 {
	return f.gain
}

// #endregion filter

// #region steady-state
// SteadyStateUncertainty is the fixed point the uncertainty converges to under
// repeated updates: the positive root of P^2 + QP - QR = 0.
func (f *Filter) SteadyStateUncertainty() float64 {
	q, r := f.ProcessVariance, f.ObservationVariance
	return (-q + math.Sqrt(q*q+4*q*r)) / 2
}

// SteadyStateGain is the gain at the uncertainty fixed point.
func (f *Filter) SteadyStateGain() float64 {
	predicted := f.SteadyStateUncertainty() + f.ProcessVariance
	return predicted / (predicted + f.ObservationVariance)
}

// #endregion steady-state
