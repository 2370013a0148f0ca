package region

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// #region reductions
// Empty signals reduce to 0 instead of NaN or a panic.

func mean(sig []float64) float64 {
	if len(sig) == 0 {
		return 0
	}
	return stat.Mean(sig, nil)
}

func sum(sig []float64) float64 {
	return floats.Sum(sig)
}

func maxOf(sig []float64) float64 {
	if len(sig) == 0 {
		return 0
	}
	return floats.Max(sig)
}

// scaled returns sig * factor as a new slice.
func scaled(sig []float64, factor float64) []float64 {
	out := make([]float64, len(sig))
	copy(out, sig)
	floats.Scale(factor, out)
	return out
}

// softmax normalizes exp(x) to sum to one. Shifted by logsumexp so large
// inputs do not overflow.
func softmax(x []float64) []float64 {
	out := make([]float64, len(x))
	if len(x) == 0 {
		return out
	}
	lse := floats.LogSumExp(x)
	for i, v := range x {
		out[i] = math.Exp(v - lse)
	}
	return out
}

// #endregion reductions
