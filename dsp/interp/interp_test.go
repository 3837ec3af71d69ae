package interp

import (
	"math"
	"testing"
)

func TestLinear(t *testing.T) {
	xp := []float64{0, 1, 3}
	fp := []float64{0, 10, 30}

	tests := []struct {
		name string
		x    float64
		want float64
	}{
		{name: "left edge hold", x: -5, want: 0},
		{name: "exact sample", x: 1, want: 10},
		{name: "first segment", x: 0.25, want: 2.5},
		{name: "second segment", x: 2, want: 20},
		{name: "right edge hold", x: 99, want: 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Linear(xp, fp, tt.x); math.Abs(got-tt.want) > 1e-12 {
				t.Fatalf("Linear(%v) = %v, want %v", tt.x, got, tt.want)
			}
		})
	}
}

func TestLinearEmptyTable(t *testing.T) {
	if got := Linear(nil, nil, 1); got != 0 {
		t.Fatalf("empty table = %v, want 0", got)
	}
}

func TestLinearGridMatchesPointwise(t *testing.T) {
	xp := []float64{1, 2, 4, 8, 16}
	fp := []float64{5, -1, 3, 0, 2}
	sorted := []float64{0, 1, 1.5, 2, 3, 7.9, 8, 12, 20}
	unsorted := []float64{12, 0, 3, 1.5}

	for _, xq := range [][]float64{sorted, unsorted} {
		got := LinearGrid(xp, fp, xq)
		for i, x := range xq {
			want := Linear(xp, fp, x)
			if math.Abs(got[i]-want) > 1e-12 {
				t.Fatalf("LinearGrid at %v = %v, want %v", x, got[i], want)
			}
		}
	}
}
