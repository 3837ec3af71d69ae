package blend

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-resonance/dsp/interp"
	"github.com/cwbudde/algo-resonance/dsp/series"
	"github.com/cwbudde/algo-resonance/dsp/signal"
	"github.com/cwbudde/algo-resonance/internal/testutil"
	"github.com/cwbudde/algo-resonance/measure/tof"
)

func isotope(t *testing.T, start, stop float64, n int, lines ...signal.Resonance) series.Series {
	t.Helper()

	x, err := signal.Grid(start, stop, n)
	if err != nil {
		t.Fatal(err)
	}

	s, err := signal.NewGenerator().Spectrum(x, signal.Background{Offset: 1, InverseSqrt: 2}, lines...)
	if err != nil {
		t.Fatal(err)
	}

	return s
}

func TestComposeLinearity(t *testing.T) {
	a := isotope(t, 1, 50, 300, signal.Resonance{Center: 6.67, Height: 40, Width: 0.3})
	b := isotope(t, 2, 60, 211, signal.Resonance{Center: 20.9, Height: 25, Width: 0.5, Shape: signal.ShapeLorentzian})

	got, err := Compose([]Contribution{
		{ID: "U-238", Fraction: 0.7, Series: a},
		{ID: "U-235", Fraction: 0.3, Series: b},
	})
	if err != nil {
		t.Fatal(err)
	}

	testutil.RequireAscending(t, got.X())

	for i, x := range got.X() {
		want := 0.7*interp.Linear(a.X(), a.Y(), x) + 0.3*interp.Linear(b.X(), b.Y(), x)
		if math.Abs(got.Y()[i]-want) > 1e-9 {
			t.Fatalf("y(%g) = %g, want %g", x, got.Y()[i], want)
		}
	}

	lo, hi := got.Range()
	if lo != 1 || hi != 60 {
		t.Fatalf("grid range [%g, %g], want [1, 60]", lo, hi)
	}
}

func TestComposeKeepsExtrema(t *testing.T) {
	a := isotope(t, 1, 50, 300, signal.Resonance{Center: 6.67, Height: 40, Width: 0.3})
	b := isotope(t, 1, 50, 77, signal.Resonance{Center: 36.68, Height: 30, Width: 0.4})

	got, err := Compose([]Contribution{{ID: "a", Fraction: 0.5, Series: a}, {ID: "b", Fraction: 0.5, Series: b}})
	if err != nil {
		t.Fatal(err)
	}

	for _, src := range []series.Series{a, b} {
		for _, pk := range []int{argmax(src.Y())} {
			if _, ok := got.IndexOf(src.X()[pk]); !ok {
				t.Fatalf("grid lost extremum at x=%g", src.X()[pk])
			}
		}
	}
}

func argmax(y []float64) int {
	best := 0
	for i, v := range y {
		if v > y[best] {
			best = i
		}
	}

	return best
}

func TestComposeSingleFullFraction(t *testing.T) {
	a := isotope(t, 1, 10, 11)

	got, err := Compose([]Contribution{{ID: "a", Fraction: 1, Series: a}, {ID: "b", Fraction: 0, Series: a}})
	if err != nil {
		t.Fatal(err)
	}

	for i, x := range got.X() {
		j, ok := a.IndexOf(x)
		if !ok {
			t.Fatalf("grid point %g not from the contributor", x)
		}

		if got.Y()[i] != a.Y()[j] {
			t.Fatalf("y(%g) = %g, want %g", x, got.Y()[i], a.Y()[j])
		}
	}
}

func TestComposeErrors(t *testing.T) {
	a := isotope(t, 1, 10, 11)

	if _, err := Compose(nil); !errors.Is(err, ErrNoContributions) {
		t.Fatalf("nil err = %v", err)
	}

	if _, err := Compose([]Contribution{{ID: "a", Fraction: 0, Series: a}}); !errors.Is(err, ErrNoContributions) {
		t.Fatalf("zero fraction err = %v", err)
	}

	for _, f := range []float64{-0.1, 1.5, math.NaN()} {
		if _, err := Compose([]Contribution{{ID: "a", Fraction: f, Series: a}}); !errors.Is(err, ErrFractionOutOfRange) {
			t.Fatalf("fraction %v err = %v", f, err)
		}
	}

	c, _ := tof.NewConverter(10)

	inTOF, err := c.ConvertSeries(a)
	if err != nil {
		t.Fatal(err)
	}

	_, err = Compose([]Contribution{{ID: "a", Fraction: 0.5, Series: a}, {ID: "b", Fraction: 0.5, Series: inTOF}})
	if !errors.Is(err, ErrMixedDomains) {
		t.Fatalf("mixed domain err = %v", err)
	}
}

func TestComposeWithTOF(t *testing.T) {
	a := isotope(t, 1, 50, 300, signal.Resonance{Center: 6.67, Height: 40, Width: 0.3})

	c, err := tof.ForMode(nil, tof.ModeNGamma)
	if err != nil {
		t.Fatal(err)
	}

	got, err := Compose([]Contribution{{ID: "a", Fraction: 1, Series: a}}, WithTOF(c))
	if err != nil {
		t.Fatal(err)
	}

	if got.Domain() != series.DomainTOF {
		t.Fatalf("domain = %v", got.Domain())
	}

	testutil.RequireAscending(t, got.X())

	want, _ := c.EnergyToTOF(50)
	testutil.RequireRelative(t, got.X()[0], want, 1e-12)
}

func TestEvenIndices(t *testing.T) {
	tests := []struct {
		n, m int
		want []int
	}{
		{n: 0, m: 0, want: nil},
		{n: 1, m: 0, want: []int{0}},
		{n: 3, m: 1, want: []int{0, 2}},
		{n: 11, m: 5, want: []int{0, 3, 5, 8, 10}},
	}

	for _, tt := range tests {
		got := evenIndices(tt.n, tt.m)
		if len(got) != len(tt.want) {
			t.Fatalf("evenIndices(%d, %d) = %v, want %v", tt.n, tt.m, got, tt.want)
		}

		for i := range got {
			if got[i] != tt.want[i] {
				t.Fatalf("evenIndices(%d, %d) = %v, want %v", tt.n, tt.m, got, tt.want)
			}
		}
	}
}

func TestDominant(t *testing.T) {
	if got := Dominant(nil); got != -1 {
		t.Fatalf("Dominant(nil) = %d", got)
	}

	if got := Dominant([]float64{1, -3, 3, 2}); got != 1 {
		t.Fatalf("Dominant = %d, want 1", got)
	}
}

func TestComposeSameGridIsScaled(t *testing.T) {
	s := isotope(t, 1, 50, 120, signal.Resonance{Center: 6.67, Height: 40, Width: 0.3})

	got, err := Compose([]Contribution{{ID: "a", Fraction: 0.25, Series: s}, {ID: "b", Fraction: 0.5, Series: s}})
	if err != nil {
		t.Fatal(err)
	}

	for i, x := range got.X() {
		j, ok := s.IndexOf(x)
		if !ok {
			t.Fatalf("grid point %g not on the shared grid", x)
		}

		if math.Abs(got.Y()[i]-0.75*s.Y()[j]) > 1e-12*math.Abs(s.Y()[j]) {
			t.Fatalf("y(%g) = %g, want %g", x, got.Y()[i], 0.75*s.Y()[j])
		}
	}
}
