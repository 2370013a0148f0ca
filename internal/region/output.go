package region

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// #region output-kind
// OutputKind tags the shape of a region output.
type OutputKind int

const (
	KindScalar OutputKind = iota
	KindVector
)

func (k OutputKind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindVector:
		return "vector"
	default:
		return "unknown"
	}
}

// #endregion output-kind

// #region output
// Output is either a scalar or a vector. Use Value for the scalar reduction.
type Output struct {
	Kind   OutputKind
	scalar float64
	vector []float64
}

// Scalar builds a scalar output.
func Scalar(v float64) Output {
	return Output{Kind: KindScalar, scalar: v}
}

// Vector builds a vector output. The slice is owned by the output afterwards.
func Vector(v []float64) Output {
	return Output{Kind: KindVector, vector: v}
}

// Value reduces the output to a scalar: a scalar is itself, a vector is its
// first element, an empty vector is 0.
func (o Output) Value() float64 {
	if o.Kind == KindScalar {
		return o.scalar
	}
	if len(o.vector) == 0 {
		return 0
	}
	return o.vector[0]
}

// Values returns the output as a slice. A scalar becomes a one-element slice.
func (o Output) Values() []float64 {
	if o.Kind == KindScalar {
		return []float64{o.scalar}
	}
	out := make([]float64, len(o.vector))
	copy(out, o.vector)
	return out
}

// Len is 1 for scalars and the vector length otherwise.
func (o Output) Len() int {
	if o.Kind == KindScalar {
		return 1
	}
	return len(o.vector)
}

// Distance is the Euclidean norm of a - b. A scalar broadcasts against a vector;
// two vectors of unequal length are padded with zeros.
func Distance(a, b Output) float64 {
	switch {
	case a.Kind == KindScalar && b.Kind == KindScalar:
		return math.Abs(a.scalar - b.scalar)
	case a.Kind == KindScalar:
		return broadcastNorm(a.scalar, b.vector)
	case b.Kind == KindScalar:
		return broadcastNorm(b.scalar, a.vector)
	}
	n := len(a.vector)
	if len(b.vector) > n {
		n = len(b.vector)
	}
	x := make([]float64, n)
	y := make([]float64, n)
	copy(x, a.vector)
	copy(y, b.vector)
	return floats.Distance(x, y, 2)
}

func broadcastNorm(s float64, v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	diff := make([]float64, len(v))
	for i, x := range v {
		diff[i] = x - s
	}
	return floats.Norm(diff, 2)
}

// #endregion output
