// Package signal synthesises resonance spectra for tests, examples and
// benchmarks: analytic line shapes on a smooth background with optional
// deterministic noise.
package signal

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-resonance/dsp/series"
)

// ErrInvalidGrid is returned for grids with fewer than two points or an
// empty range.
var ErrInvalidGrid = errors.New("signal: invalid grid")

// Shape selects a resonance line shape.
type Shape int

const (
	// ShapeGaussian is exp(-(x-c)²/2w²); Width is the standard deviation.
	ShapeGaussian Shape = iota
	// ShapeLorentzian is w²/((x-c)²+w²); Width is the half width at half maximum.
	ShapeLorentzian
)

// Resonance is one analytic line. A negative Height produces a dip.
type Resonance struct {
	Center float64
	Height float64
	Width  float64
	Shape  Shape
}

// Eval returns the line's contribution at x.
func (r Resonance) Eval(x float64) float64 {
	d := x - r.Center

	switch r.Shape {
	case ShapeLorentzian:
		return r.Height * r.Width * r.Width / (d*d + r.Width*r.Width)
	default:
		return r.Height * math.Exp(-d*d/(2*r.Width*r.Width))
	}
}

// Area returns the analytic integral of the line over the real axis.
func (r Resonance) Area() float64 {
	switch r.Shape {
	case ShapeLorentzian:
		return r.Height * math.Pi * r.Width
	default:
		return r.Height * r.Width * math.Sqrt(2*math.Pi)
	}
}

// Background is Offset + Slope*x + InverseSqrt/sqrt(x). The last term models
// the 1/v fall-off of neutron cross sections and is skipped for x <= 0.
type Background struct {
	Offset      float64
	Slope       float64
	InverseSqrt float64
}

// Eval returns the background at x.
func (b Background) Eval(x float64) float64 {
	v := b.Offset + b.Slope*x
	if b.InverseSqrt != 0 && x > 0 {
		v += b.InverseSqrt / math.Sqrt(x)
	}

	return v
}

// Generator creates deterministic synthetic spectra.
type Generator struct {
	seed  int64
	noise float64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets the random seed used for noise.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// WithNoise adds uniform noise in [-amplitude, amplitude] to every sample.
func WithNoise(amplitude float64) Option {
	return func(g *Generator) {
		if amplitude >= 0 {
			g.noise = amplitude
		}
	}
}

// NewGenerator creates a generator; without options it is noise free.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{seed: 1}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}

	return g
}

// Spectrum evaluates background plus resonances on x and returns an energy
// domain series.
func (g *Generator) Spectrum(x []float64, bg Background, lines ...Resonance) (series.Series, error) {
	y := make([]float64, len(x))
	for i, xi := range x {
		v := bg.Eval(xi)
		for _, r := range lines {
			v += r.Eval(xi)
		}

		y[i] = v
	}

	if g.noise > 0 {
		rng := rand.New(rand.NewSource(g.seed))
		for i := range y {
			y[i] += (rng.Float64()*2 - 1) * g.noise
		}
	}

	s, err := series.New(x, y, series.DomainEnergy)
	if err != nil {
		return series.Series{}, fmt.Errorf("signal: spectrum: %w", err)
	}

	return s, nil
}

// Grid returns n evenly spaced points covering [start, stop].
func Grid(start, stop float64, n int) ([]float64, error) {
	if n < 2 || !(stop > start) {
		return nil, fmt.Errorf("%w: [%v, %v] with %d points", ErrInvalidGrid, start, stop, n)
	}

	x := floats.Span(make([]float64, n), start, stop)
	x[n-1] = stop

	return x, nil
}

// LogGrid returns n logarithmically spaced points covering [start, stop];
// both ends must be positive.
func LogGrid(start, stop float64, n int) ([]float64, error) {
	if n < 2 || start <= 0 || !(stop > start) {
		return nil, fmt.Errorf("%w: log [%v, %v] with %d points", ErrInvalidGrid, start, stop, n)
	}

	x := floats.LogSpan(make([]float64, n), start, stop)
	x[0], x[n-1] = start, stop

	return x, nil
}
