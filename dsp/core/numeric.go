// Package core holds small numeric helpers shared by the dsp and measure packages.
package core

import "math"

const defaultEpsilon = 1e-12

// ClampInt limits value to the inclusive range [lo, hi].
func ClampInt(value, lo, hi int) int {
	if lo > hi {
		lo, hi = hi, lo
	}

	return min(max(value, lo), hi)
}

// NearlyEqual reports whether a and b are equal within eps, using an absolute
// test first and a relative test for large magnitudes.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))

	return largest != 0 && diff/largest <= eps
}

// Sign returns -1, 0 or +1 according to the sign of x. NaN maps to 0.
func Sign(x float64) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

// AllFinite reports whether every element of x is neither NaN nor Inf.
func AllFinite(x []float64) bool {
	for _, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}

	return true
}
