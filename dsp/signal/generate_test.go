package signal

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/integrate"

	"github.com/cwbudde/algo-resonance/internal/testutil"
)

func TestResonanceAreaMatchesNumericIntegral(t *testing.T) {
	x, err := Grid(-200, 200, 40001)
	if err != nil {
		t.Fatal(err)
	}

	for _, r := range []Resonance{
		{Center: 3, Height: 2, Width: 1.5, Shape: ShapeGaussian},
		{Center: -1, Height: -4, Width: 0.5, Shape: ShapeGaussian},
	} {
		y := make([]float64, len(x))
		for i, xi := range x {
			y[i] = r.Eval(xi)
		}

		testutil.RequireRelative(t, integrate.Simpsons(x, y), r.Area(), 1e-9)
	}
}

func TestLorentzianHalfWidth(t *testing.T) {
	r := Resonance{Center: 10, Height: 8, Width: 2, Shape: ShapeLorentzian}
	if got := r.Eval(12); math.Abs(got-4) > 1e-12 {
		t.Fatalf("value at c+w = %v, want half height 4", got)
	}
}

func TestSpectrumDeterministicNoise(t *testing.T) {
	x, err := Grid(1, 100, 100)
	if err != nil {
		t.Fatal(err)
	}

	bg := Background{Offset: 5, InverseSqrt: 10}
	line := Resonance{Center: 50, Height: 100, Width: 3}

	a, err := NewGenerator(WithSeed(9), WithNoise(0.1)).Spectrum(x, bg, line)
	if err != nil {
		t.Fatal(err)
	}

	b, err := NewGenerator(WithSeed(9), WithNoise(0.1)).Spectrum(x, bg, line)
	if err != nil {
		t.Fatal(err)
	}

	testutil.RequireSliceNearlyEqual(t, a.Y(), b.Y(), 0)

	clean, err := NewGenerator().Spectrum(x, bg, line)
	if err != nil {
		t.Fatal(err)
	}

	d, err := testutil.MaxAbsDiff(a.Y(), clean.Y())
	if err != nil {
		t.Fatal(err)
	}

	if d == 0 || d > 0.1 {
		t.Fatalf("noise deviation = %v, want (0, 0.1]", d)
	}
}

func TestGridValidation(t *testing.T) {
	if _, err := Grid(1, 1, 10); !errors.Is(err, ErrInvalidGrid) {
		t.Fatalf("empty range err = %v", err)
	}

	if _, err := LogGrid(0, 10, 10); !errors.Is(err, ErrInvalidGrid) {
		t.Fatalf("non-positive log start err = %v", err)
	}

	g, err := LogGrid(1, 1000, 4)
	if err != nil {
		t.Fatal(err)
	}

	testutil.RequireSliceNearlyEqual(t, g, []float64{1, 10, 100, 1000}, 1e-9)
}

func TestGridEndpointsExact(t *testing.T) {
	tests := []struct {
		start, stop float64
		n           int
	}{
		{1, 60, 50},
		{1, 50, 300},
		{0.1, 0.7, 7},
		{-200, 200, 40001},
	}

	for _, tt := range tests {
		x, err := Grid(tt.start, tt.stop, tt.n)
		if err != nil {
			t.Fatal(err)
		}

		if x[0] != tt.start || x[len(x)-1] != tt.stop {
			t.Fatalf("Grid(%v, %v, %d) ends [%v, %v]", tt.start, tt.stop, tt.n, x[0], x[len(x)-1])
		}

		testutil.RequireAscending(t, x)

		lg, err := LogGrid(tt.stop/100, tt.stop, tt.n)
		if err != nil {
			t.Fatal(err)
		}

		if lg[0] != tt.stop/100 || lg[len(lg)-1] != tt.stop {
			t.Fatalf("LogGrid ends [%v, %v]", lg[0], lg[len(lg)-1])
		}
	}
}
