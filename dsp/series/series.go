// Package series provides the immutable spectral sample container used by all
// resonance analysis stages.
//
// A [Series] is an ordered list of (x, y) samples with strictly ascending,
// unique, finite x values. x is either neutron energy in eV or time of flight
// in µs, recorded by [Domain]. Constructors copy their input; operations that
// change x (for example a domain conversion through [Series.MapX]) return a new,
// re-sorted series.
package series

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/cwbudde/algo-resonance/dsp/core"
	"github.com/cwbudde/algo-resonance/dsp/interp"
)

// Errors returned by series constructors.
var (
	ErrLengthMismatch = errors.New("series: x and y length mismatch")
	ErrNotAscending   = errors.New("series: x must be strictly ascending")
	ErrNonFinite      = errors.New("series: non-finite sample")
)

// Domain identifies the physical meaning of the x axis.
type Domain int

const (
	// DomainEnergy means x is a neutron energy in eV.
	DomainEnergy Domain = iota
	// DomainTOF means x is a time of flight in µs.
	DomainTOF
)

// String returns a short name for the domain.
func (d Domain) String() string {
	switch d {
	case DomainEnergy:
		return "energy"
	case DomainTOF:
		return "tof"
	default:
		return fmt.Sprintf("Domain(%d)", int(d))
	}
}

// Point is a single (x, y) sample.
type Point struct {
	X float64
	Y float64
}

// Series is an immutable, x-sorted spectrum.
type Series struct {
	x      []float64
	y      []float64
	domain Domain
}

// New validates and copies x and y into a series of the given domain.
func New(x, y []float64, domain Domain) (Series, error) {
	if len(x) != len(y) {
		return Series{}, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(x), len(y))
	}

	if !core.AllFinite(x) || !core.AllFinite(y) {
		return Series{}, ErrNonFinite
	}

	for i := 1; i < len(x); i++ {
		if x[i] <= x[i-1] {
			return Series{}, fmt.Errorf("%w: x[%d]=%g after x[%d]=%g", ErrNotAscending, i, x[i], i-1, x[i-1])
		}
	}

	return Series{
		x:      append([]float64(nil), x...),
		y:      append([]float64(nil), y...),
		domain: domain,
	}, nil
}

// FromPoints sorts pts by x and builds a series. Duplicate x values are
// rejected rather than merged.
func FromPoints(pts []Point, domain Domain) (Series, error) {
	sorted := append([]Point(nil), pts...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].X < sorted[j].X })

	x := make([]float64, len(sorted))
	y := make([]float64, len(sorted))

	for i, p := range sorted {
		x[i] = p.X
		y[i] = p.Y
	}

	return New(x, y, domain)
}

// Len returns the number of samples.
func (s Series) Len() int { return len(s.x) }

// Domain returns the x-axis domain.
func (s Series) Domain() Domain { return s.domain }

// X returns the x values. The slice is shared and must not be modified.
func (s Series) X() []float64 { return s.x }

// Y returns the y values. The slice is shared and must not be modified.
func (s Series) Y() []float64 { return s.y }

// At returns sample i.
func (s Series) At(i int) Point { return Point{X: s.x[i], Y: s.y[i]} }

// Points returns a copy of all samples.
func (s Series) Points() []Point {
	out := make([]Point, len(s.x))
	for i := range s.x {
		out[i] = Point{X: s.x[i], Y: s.y[i]}
	}

	return out
}

// WithY returns a series sharing this series' x grid with new y values.
// It panics if len(y) differs from Len, which is a programming error.
func (s Series) WithY(y []float64) Series {
	if len(y) != len(s.x) {
		panic(fmt.Sprintf("series: WithY length %d, want %d", len(y), len(s.x)))
	}

	return Series{x: s.x, y: append([]float64(nil), y...), domain: s.domain}
}

// Negate returns the series with every y value negated.
func (s Series) Negate() Series {
	y := make([]float64, len(s.y))
	for i, v := range s.y {
		y[i] = -v
	}

	return Series{x: s.x, y: y, domain: s.domain}
}

// Slice returns samples [lo, hi) as a new series sharing storage.
func (s Series) Slice(lo, hi int) Series {
	lo = core.ClampInt(lo, 0, len(s.x))
	hi = core.ClampInt(hi, lo, len(s.x))

	return Series{x: s.x[lo:hi], y: s.y[lo:hi], domain: s.domain}
}

// IndexOf returns the index of the sample whose x equals x exactly.
func (s Series) IndexOf(x float64) (int, bool) {
	i := sort.SearchFloat64s(s.x, x)
	if i < len(s.x) && s.x[i] == x {
		return i, true
	}

	return -1, false
}

// Nearest returns the index of the sample closest to x, or -1 for an empty
// series. Ties resolve to the lower index.
func (s Series) Nearest(x float64) int {
	n := len(s.x)
	if n == 0 {
		return -1
	}

	i := sort.SearchFloat64s(s.x, x)

	switch {
	case i == 0:
		return 0
	case i == n:
		return n - 1
	case math.Abs(s.x[i]-x) < math.Abs(x-s.x[i-1]):
		return i
	default:
		return i - 1
	}
}

// Interpolate returns the linearly interpolated y at x, holding edge values
// outside the sampled range.
func (s Series) Interpolate(x float64) float64 {
	return interp.Linear(s.x, s.y, x)
}

// MapX applies f to every x value and returns the re-sorted result in the
// target domain. It fails when the mapped grid contains duplicates or
// non-finite values.
func (s Series) MapX(f func(float64) float64, domain Domain) (Series, error) {
	pts := make([]Point, len(s.x))
	for i := range s.x {
		pts[i] = Point{X: f(s.x[i]), Y: s.y[i]}
	}

	return FromPoints(pts, domain)
}

// Range returns the first and last x value. Both are 0 for an empty series.
func (s Series) Range() (lo, hi float64) {
	if len(s.x) == 0 {
		return 0, 0
	}

	return s.x[0], s.x[len(s.x)-1]
}
