package integral

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/integrate"

	"github.com/cwbudde/algo-resonance/dsp/series"
)

// ErrUnknownMethod is returned by ParseMethod.
var ErrUnknownMethod = errors.New("integral: unknown method")

const snapTolerance = 1e-9

// Method selects the quadrature rule.
type Method int

const (
	// Simpson is composite Simpson's rule on the (possibly non-uniform) grid.
	Simpson Method = iota
	// Trapezoid is the trapezoidal rule.
	Trapezoid
	// Mean averages Simpson and Trapezoid. It is meant for imported data
	// whose sampling has not been checked.
	Mean
)

// String returns the method name accepted by ParseMethod.
func (m Method) String() string {
	switch m {
	case Simpson:
		return "simpson"
	case Trapezoid:
		return "trapezoid"
	case Mean:
		return "mean"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ParseMethod parses "simpson", "trapezoid" or "mean". An empty string
// selects Simpson.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "simpson":
		return Simpson, nil
	case "trapezoid", "trapz":
		return Trapezoid, nil
	case "mean":
		return Mean, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Method) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Method) UnmarshalText(b []byte) error {
	v, err := ParseMethod(string(b))
	if err != nil {
		return err
	}

	*m = v

	return nil
}

// Integrate returns the area under s between leftX and rightX. Equal limits
// give exactly 0, as do reversed limits and series with fewer than two
// samples.
func Integrate(s series.Series, leftX, rightX float64, m Method) float64 {
	if s.Len() < 2 || !(leftX < rightX) {
		return 0
	}

	x, y := window(s, leftX, rightX)

	switch m {
	case Trapezoid:
		return integrate.Trapezoidal(x, y)
	case Mean:
		return (simpson(x, y) + integrate.Trapezoidal(x, y)) / 2
	default:
		return simpson(x, y)
	}
}

// TrapezoidBackground returns the area below the straight line joining the
// series at leftX and rightX. Integrate minus TrapezoidBackground is the net
// peak area.
func TrapezoidBackground(s series.Series, leftX, rightX float64) float64 {
	if s.Len() < 2 || !(leftX < rightX) {
		return 0
	}

	return (s.Interpolate(leftX) + s.Interpolate(rightX)) / 2 * (rightX - leftX)
}

// Net returns Integrate minus TrapezoidBackground.
func Net(s series.Series, leftX, rightX float64, m Method) float64 {
	return Integrate(s, leftX, rightX, m) - TrapezoidBackground(s, leftX, rightX)
}

func simpson(x, y []float64) float64 {
	if len(x) < 3 {
		return integrate.Trapezoidal(x, y)
	}

	return integrate.Simpsons(x, y)
}

// window returns the samples strictly inside (leftX, rightX) framed by the
// interpolated end points. Samples within rounding distance of a limit are
// treated as the limit itself so no near-zero interval reaches Simpson.
func window(s series.Series, leftX, rightX float64) ([]float64, []float64) {
	xs := s.X()
	ys := s.Y()
	tol := snapTolerance * (rightX - leftX)

	lo := sort.Search(len(xs), func(i int) bool { return xs[i] > leftX+tol })
	hi := sort.Search(len(xs), func(i int) bool { return xs[i] >= rightX-tol })

	x := make([]float64, 0, hi-lo+2)
	y := make([]float64, 0, hi-lo+2)

	x = append(x, leftX)
	y = append(y, s.Interpolate(leftX))

	if lo < hi {
		x = append(x, xs[lo:hi]...)
		y = append(y, ys[lo:hi]...)
	}

	x = append(x, rightX)
	y = append(y, s.Interpolate(rightX))

	return x, y
}
