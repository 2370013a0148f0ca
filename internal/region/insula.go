package region

import (
	"math"
	"sort"
)

// #region insula
// Insula turns observed distress in others into an empathy response, modulated
// by the matching "own_<label>" internal state.
type Insula struct {
	Weights map[string]float64
	Memory  *Memory
}

// NewInsula returns an insula with unit weights for the known distress labels.
func NewInsula() *Insula {
	return &Insula{
		Weights: map[string]float64{
			"pain":     1.0,
			"distress": 1.0,
			"fear":     1.0,
			"sadness":  1.0,
		},
		Memory: NewMemory(),
	}
}

func (i *Insula) Name() string { return "Insula" }

// Process reads in.Observed. Labels are visited in sorted order so the memory
// updates are deterministic.
func (i *Insula) Process(in Input, ctx *Context) Output {
	labels := make([]string, 0, len(in.Observed))
	for k := range in.Observed {
		labels = append(labels, k)
	}
	sort.Strings(labels)

	var total float64
	for _, label := range labels {
		modulation := ctx.Internal.Get("own_"+label, 1.0)
		weight, ok := i.Weights[label]
		if !ok {
			weight = 1.0
		}
		combined := in.Observed[label] * modulation * weight
		total += combined
		i.Memory.Update(label, combined)
	}
	return Scalar(math.Tanh(total))
}

// AdjustTrust moves an existing trust score toward the empathy response at the
// long-term memory rate. Internal states without a trust score are untouched.
func (i *Insula) AdjustTrust(internal InternalState, empathy float64) {
	trust, ok := internal[TrustScore]
	if !ok {
		return
	}
	internal[TrustScore] = trust + i.Memory.LongTermRate*(empathy-trust)
}

// #endregion insula
