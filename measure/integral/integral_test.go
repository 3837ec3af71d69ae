package integral

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-resonance/dsp/series"
	"github.com/cwbudde/algo-resonance/dsp/signal"
	"github.com/cwbudde/algo-resonance/internal/testutil"
	"github.com/cwbudde/algo-resonance/measure/blend"
	"github.com/cwbudde/algo-resonance/measure/boundary"
	"github.com/cwbudde/algo-resonance/measure/derivative"
	"github.com/cwbudde/algo-resonance/measure/peaks"
)

func lineSeries(t *testing.T, f func(float64) float64) series.Series {
	t.Helper()

	x, err := signal.Grid(0, 10, 101)
	if err != nil {
		t.Fatal(err)
	}

	y := make([]float64, len(x))
	for i, v := range x {
		y[i] = f(v)
	}

	s, err := series.New(x, y, series.DomainEnergy)
	if err != nil {
		t.Fatal(err)
	}

	return s
}

func TestIntegrateDegenerate(t *testing.T) {
	s := lineSeries(t, func(x float64) float64 { return 3 + x })

	for _, m := range []Method{Simpson, Trapezoid, Mean} {
		if got := Integrate(s, 4.2, 4.2, m); got != 0 {
			t.Fatalf("%v zero-width integral = %g", m, got)
		}

		if got := Integrate(s, 6, 2, m); got != 0 {
			t.Fatalf("%v reversed integral = %g", m, got)
		}
	}

	single, err := series.New([]float64{1}, []float64{5}, series.DomainEnergy)
	if err != nil {
		t.Fatal(err)
	}

	if got := Integrate(single, 0, 2, Simpson); got != 0 {
		t.Fatalf("single-sample integral = %g", got)
	}

	if got := TrapezoidBackground(s, 3, 3); got != 0 {
		t.Fatalf("zero-width background = %g", got)
	}
}

func TestIntegrateLinearExact(t *testing.T) {
	s := lineSeries(t, func(x float64) float64 { return 2*x + 1 })

	// Antiderivative x² + x between 1.5 and 7.25.
	const want = 56.0625

	for _, m := range []Method{Simpson, Trapezoid, Mean} {
		testutil.RequireRelative(t, Integrate(s, 1.5, 7.25, m), want, 1e-12)
	}

	testutil.RequireRelative(t, TrapezoidBackground(s, 1.5, 7.25), want, 1e-12)

	if net := Net(s, 1.5, 7.25, Simpson); math.Abs(net) > 1e-9 {
		t.Fatalf("net area of a straight line = %g", net)
	}
}

func TestIntegrateQuadratic(t *testing.T) {
	s := lineSeries(t, func(x float64) float64 { return x * x })

	testutil.RequireRelative(t, Integrate(s, 0, 10, Simpson), 1000.0/3, 1e-9)

	if trap := Integrate(s, 0, 10, Trapezoid); trap <= 1000.0/3 {
		t.Fatalf("trapezoid of a convex function should overestimate: %g", trap)
	}
}

func TestIntegrateShortWindowFallsBack(t *testing.T) {
	s := lineSeries(t, func(x float64) float64 { return x })

	// No sample lies strictly inside (0.02, 0.08).
	got := Integrate(s, 0.02, 0.08, Simpson)
	testutil.RequireRelative(t, got, (0.08*0.08-0.02*0.02)/2, 1e-12)
}

func TestNetAreaSingleGaussian(t *testing.T) {
	x, err := signal.Grid(0, 200, 201)
	if err != nil {
		t.Fatal(err)
	}

	line := signal.Resonance{Center: 100, Height: 490, Width: 5}

	s, err := signal.NewGenerator().Spectrum(x, signal.Background{Offset: 10}, line)
	if err != nil {
		t.Fatal(err)
	}

	found := peaks.LocateMaxima(s, 100, 50)
	if len(found) != 1 || found[0].Index != 100 {
		t.Fatalf("peaks = %+v", found)
	}

	res := boundary.Resolve(s, derivative.Analyze(s, derivative.DefaultSigma), found, peaks.Maximum, boundary.DefaultConfig())
	if !res[0].Resolved() {
		t.Fatal(res[0].Err)
	}

	b := res[0].Boundary
	testutil.RequireRelative(t, Net(s, b.Left.X, b.Right.X, Simpson), line.Area(), 0.02)
}

func TestParseMethod(t *testing.T) {
	for in, want := range map[string]Method{"": Simpson, "Simpson": Simpson, "trapz": Trapezoid, " mean ": Mean} {
		got, err := ParseMethod(in)
		if err != nil || got != want {
			t.Fatalf("ParseMethod(%q) = %v, %v", in, got, err)
		}
	}

	var m Method
	if err := m.UnmarshalText([]byte("romberg")); !errors.Is(err, ErrUnknownMethod) {
		t.Fatalf("err = %v, want ErrUnknownMethod", err)
	}

	if err := m.UnmarshalText([]byte("trapezoid")); err != nil || m != Trapezoid {
		t.Fatalf("UnmarshalText = %v, %v", m, err)
	}
}

func TestIntegrateBlended(t *testing.T) {
	a := lineSeries(t, func(x float64) float64 { return 1 })
	b := lineSeries(t, func(x float64) float64 { return 2 * x })

	contribs := []blend.Contribution{
		{ID: "a", Fraction: 0.6, Series: a},
		{ID: "skip", Fraction: 0, Series: a},
		{ID: "b", Fraction: 0.4, Series: b},
	}

	for _, workers := range []int{0, 1, 4} {
		got, err := IntegrateBlended(contribs, 2, 4, WithWorkers(workers), WithMethod(Trapezoid))
		if err != nil {
			t.Fatal(err)
		}

		// a: 2, b: 16 - 4 = 12.
		testutil.RequireRelative(t, got.Total, 0.6*2+0.4*12, 1e-12)

		if len(got.Parts) != 2 || got.Origin() != "b" {
			t.Fatalf("parts = %+v, origin %q", got.Parts, got.Origin())
		}
	}
}

func TestIntegrateBlendedErrors(t *testing.T) {
	a := lineSeries(t, func(x float64) float64 { return 1 })

	_, err := IntegrateBlended([]blend.Contribution{{ID: "a", Fraction: 1.2, Series: a}}, 0, 1)
	if !errors.Is(err, blend.ErrFractionOutOfRange) {
		t.Fatalf("err = %v, want ErrFractionOutOfRange", err)
	}

	got, err := IntegrateBlended(nil, 0, 1)
	if !errors.Is(err, blend.ErrNoContributions) || got.Origin() != "" {
		t.Fatalf("empty = %+v, %v", got, err)
	}
}
