// Package testutil holds assertion helpers and deterministic fixtures shared
// by the package tests.
package testutil

import (
	"fmt"
	"math"
	"testing"
)

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair exceeds eps (absolute tolerance).
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}

	for i := range got {
		if diff := math.Abs(got[i] - want[i]); diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireRelative fails t if got deviates from want by more than rel
// relative to |want|.
func RequireRelative(t *testing.T, got, want, rel float64) {
	t.Helper()

	diff := math.Abs(got - want)
	if want != 0 {
		diff /= math.Abs(want)
	}

	if diff > rel || math.IsNaN(diff) {
		t.Fatalf("got %v, want %v (relative diff %v > %v)", got, want, diff, rel)
	}
}

// RequireAscending fails t unless x is strictly ascending.
func RequireAscending(t *testing.T, x []float64) {
	t.Helper()

	for i := 1; i < len(x); i++ {
		if x[i] <= x[i-1] {
			t.Fatalf("not strictly ascending at %d: %v after %v", i, x[i], x[i-1])
		}
	}
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()

	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// MaxAbsDiff returns the maximum absolute difference between two slices.
func MaxAbsDiff(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("length mismatch: %d vs %d", len(a), len(b))
	}

	maxDiff := 0.0
	for i := range a {
		maxDiff = math.Max(maxDiff, math.Abs(a[i]-b[i]))
	}

	return maxDiff, nil
}
