// Package derivative smooths a spectrum and derives its first and second
// derivatives together with their zero crossings.
//
// The y values are smoothed with a Gaussian kernel whose width is given in
// samples; derivatives are taken with respect to x on the (possibly
// non-uniform) sample grid. The resulting [Profile] is a snapshot of one
// series and must be recomputed whenever the series changes.
package derivative

import (
	"github.com/cwbudde/algo-resonance/dsp/conv"
	"github.com/cwbudde/algo-resonance/dsp/core"
	"github.com/cwbudde/algo-resonance/dsp/series"
	"github.com/cwbudde/algo-resonance/dsp/window"
)

// DefaultSigma is the default smoothing width in samples.
const DefaultSigma = 12.0

// Profile holds the smoothed series, its derivatives and their zero crossings.
// Every series shares the x grid of the analysed input.
type Profile struct {
	Smoothed series.Series
	First    series.Series
	Second   series.Series

	// Inflections are indices i where the second derivative changes sign
	// between i and i+1.
	Inflections []int
	// Dips are rising zeros of the first derivative: sign(d[i]) <= 0 < sign(d[i+1]).
	Dips []int
	// Flats are falling zeros of the first derivative: sign(d[i]) >= 0 > sign(d[i+1]).
	Flats []int
}

// Analyze smooths s with a Gaussian of sigma samples and differentiates it.
// sigma <= 0 disables smoothing. Series with fewer than two samples produce
// an empty profile; fewer than three produce empty zero-crossing sets.
func Analyze(s series.Series, sigma float64) Profile {
	if s.Len() < 2 {
		return Profile{Smoothed: s, First: s.WithY(make([]float64, s.Len())), Second: s.WithY(make([]float64, s.Len()))}
	}

	smoothed := Smooth(s.Y(), sigma)
	first := Gradient(s.X(), smoothed)
	second := Gradient(s.X(), first)

	p := Profile{
		Smoothed: s.WithY(smoothed),
		First:    s.WithY(first),
		Second:   s.WithY(second),
	}

	if s.Len() >= 3 {
		p.Dips, p.Flats = zeroCrossings(first)
		p.Inflections = signChanges(second)
	}

	return p
}

// Smooth returns y convolved with a normalized Gaussian of sigma samples,
// reflecting the signal at its edges. sigma <= 0 returns a copy of y.
func Smooth(y []float64, sigma float64) []float64 {
	if sigma <= 0 || len(y) == 0 {
		return append([]float64(nil), y...)
	}

	kernel, err := window.Gaussian(sigma)
	if err != nil {
		return append([]float64(nil), y...)
	}

	out, err := conv.Filter(y, kernel, conv.ExtendReflect)
	if err != nil {
		return append([]float64(nil), y...)
	}

	return out
}

// Gradient differentiates y with respect to x. Interior points use the
// second-order central difference for non-uniform spacing, the end points
// one-sided first-order differences. Fewer than two samples yield zeros.
func Gradient(x, y []float64) []float64 {
	n := len(y)
	out := make([]float64, n)

	if n < 2 || len(x) != n {
		return out
	}

	out[0] = (y[1] - y[0]) / (x[1] - x[0])
	out[n-1] = (y[n-1] - y[n-2]) / (x[n-1] - x[n-2])

	for i := 1; i < n-1; i++ {
		hl := x[i] - x[i-1]
		hr := x[i+1] - x[i]
		out[i] = (hl*hl*y[i+1] - hr*hr*y[i-1] + (hr*hr-hl*hl)*y[i]) / (hl * hr * (hl + hr))
	}

	return out
}

func zeroCrossings(d []float64) (rising, falling []int) {
	for i := 0; i+1 < len(d); i++ {
		a, b := core.Sign(d[i]), core.Sign(d[i+1])

		switch {
		case a <= 0 && b > 0:
			rising = append(rising, i)
		case a >= 0 && b < 0:
			falling = append(falling, i)
		}
	}

	return rising, falling
}

func signChanges(d []float64) []int {
	var idx []int

	for i := 0; i+1 < len(d); i++ {
		a, b := core.Sign(d[i]), core.Sign(d[i+1])
		if (a <= 0 && b > 0) || (a >= 0 && b < 0) {
			idx = append(idx, i)
		}
	}

	return idx
}
