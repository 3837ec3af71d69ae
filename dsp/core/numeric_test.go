package core

import (
	"math"
	"testing"
)

func TestClampInt(t *testing.T) {
	if got := ClampInt(12, 0, 10); got != 10 {
		t.Fatalf("ClampInt() = %d, want 10", got)
	}

	if got := ClampInt(-3, 10, 0); got != 0 {
		t.Fatalf("ClampInt() swapped = %d, want 0", got)
	}
}

func TestNearlyEqual(t *testing.T) {
	if !NearlyEqual(1.0, 1.0+1e-13, 1e-12) {
		t.Fatal("expected values to be nearly equal")
	}

	if NearlyEqual(1.0, 1.1, 1e-3) {
		t.Fatal("expected values to differ")
	}

	if !NearlyEqual(1e12, 1e12+1, 1e-9) {
		t.Fatal("expected relative comparison to accept large magnitudes")
	}
}

func TestSign(t *testing.T) {
	cases := map[float64]int{-2: -1, 0: 0, 3.5: 1, math.NaN(): 0}
	for in, want := range cases {
		if got := Sign(in); got != want {
			t.Fatalf("Sign(%v) = %d, want %d", in, got, want)
		}
	}
}

func TestAllFinite(t *testing.T) {
	if !AllFinite([]float64{1, 2, 3}) {
		t.Fatal("finite slice reported as non-finite")
	}

	if AllFinite([]float64{1, math.Inf(1)}) {
		t.Fatal("Inf not detected")
	}

	if AllFinite([]float64{math.NaN()}) {
		t.Fatal("NaN not detected")
	}
}
