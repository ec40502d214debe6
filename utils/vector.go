package utils

import "math"

// Vector primitives for the style preference engine. All functions operate on
// plain float64 slices; dimension checks are the caller's responsibility except
// where noted.

// MeanVector returns the element-wise mean of all vectors whose length equals
// dim. Inputs of any other length are skipped. Returns nil when no input
// qualifies.
func MeanVector(vectors [][]float64, dim int) []float64 {
	if dim <= 0 {
		return nil
	}
	sum := make([]float64, dim)
	n := 0
	for _, v := range vectors {
		if len(v) != dim {
			continue
		}
		for i := range v {
			sum[i] += v[i]
		}
		n++
	}
	if n == 0 {
		return nil
	}
	inv := 1.0 / float64(n)
	for i := range sum {
		sum[i] *= inv
	}
	return sum
}

// Normalize scales v to unit L2 length in place and returns it. A vector with
// ~zero magnitude is left untouched rather than divided by zero.
func Normalize(v []float64) []float64 {
	var ss float64
	for _, x := range v {
		ss += x * x
	}
	mag := math.Sqrt(ss)
	if mag < 1e-12 {
		return v
	}
	for i := range v {
		v[i] /= mag
	}
	return v
}

// Magnitude returns the L2 norm of v.
func Magnitude(v []float64) float64 {
	var ss float64
	for _, x := range v {
		ss += x * x
	}
	return math.Sqrt(ss)
}

// BlendEMA applies the exponential moving average update
//
//	new[i] = alpha*old[i] + (1-alpha)*|weight|*sign(weight)*evidence[i]
//
// and returns a fresh slice. old may be nil, in which case it is treated as
// the zero vector. The |w|*sign(w) form is kept as written so results stay
// bit-identical with historically computed vectors.
func BlendEMA(old, evidence []float64, alpha, weight float64) []float64 {
	out := make([]float64, len(evidence))
	sign := 1.0
	if weight < 0 {
		sign = -1.0
	}
	mag := math.Abs(weight)
	for i := range evidence {
		var prev float64
		if i < len(old) {
			prev = old[i]
		}
		out[i] = alpha*prev + (1-alpha)*mag*sign*evidence[i]
	}
	return out
}
