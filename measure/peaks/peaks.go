// Package peaks locates resonance maxima and minima in a spectrum.
//
// A maximum is a sample strictly higher than both neighbours and at least as
// high as the height threshold. Candidates are then filtered by topographic
// prominence: the drop from the peak to the higher of the two lowest points
// reached before meeting higher terrain (or the series edge) on each side.
// Minima are located by negating the series.
package peaks

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-resonance/dsp/series"
)

// ErrUnknownPolarity is returned by ParsePolarity.
var ErrUnknownPolarity = errors.New("peaks: unknown polarity")

// Polarity distinguishes maxima from minima.
type Polarity int

const (
	// Maximum marks a local maximum.
	Maximum Polarity = iota
	// Minimum marks a local minimum (a dip).
	Minimum
)

// String returns "maximum" or "minimum".
func (p Polarity) String() string {
	if p == Minimum {
		return "minimum"
	}

	return "maximum"
}

// ParsePolarity accepts "maximum"/"max" and "minimum"/"min". An empty string
// selects Maximum.
func ParsePolarity(s string) (Polarity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "maximum", "max":
		return Maximum, nil
	case "minimum", "min":
		return Minimum, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownPolarity, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p Polarity) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Polarity) UnmarshalText(b []byte) error {
	v, err := ParsePolarity(string(b))
	if err != nil {
		return err
	}

	*p = v

	return nil
}

// Sign returns +1 for maxima and -1 for minima.
func (p Polarity) Sign() float64 {
	if p == Minimum {
		return -1
	}

	return 1
}

// Peak is a located extremum. X and Y are copied verbatim from the sample at
// Index of the source series.
type Peak struct {
	Index      int
	X          float64
	Y          float64
	Polarity   Polarity
	Prominence float64
}

// LocateMaxima returns the local maxima of s with y >= heightThreshold and
// prominence >= prominence, in ascending index order.
func LocateMaxima(s series.Series, heightThreshold, prominence float64) []Peak {
	y := s.Y()
	if len(y) < 3 {
		return nil
	}

	var out []Peak

	for i := 1; i < len(y)-1; i++ {
		if !(y[i] > y[i-1] && y[i] > y[i+1]) || y[i] < heightThreshold {
			continue
		}

		prom := Prominence(y, i)
		if prom < prominence {
			continue
		}

		out = append(out, Peak{
			Index:      i,
			X:          s.X()[i],
			Y:          y[i],
			Polarity:   Maximum,
			Prominence: prom,
		})
	}

	return out
}

// LocateMinima returns the local minima of s whose depth prominence is at
// least prominence. Y keeps the original (non-negated) sample value.
func LocateMinima(s series.Series, prominence float64) []Peak {
	found := LocateMaxima(s.Negate(), math.Inf(-1), prominence)
	for i := range found {
		found[i].Y = -found[i].Y
		found[i].Polarity = Minimum
	}

	return found
}

// Locate dispatches to LocateMaxima or LocateMinima. heightThreshold is only
// used for maxima.
func Locate(s series.Series, pol Polarity, heightThreshold, prominence float64) []Peak {
	if pol == Minimum {
		return LocateMinima(s, prominence)
	}

	return LocateMaxima(s, heightThreshold, prominence)
}

// Prominence returns the topographic prominence of the sample at peak.
// Each side is scanned until a strictly higher sample or the edge; the base
// is the higher of the two side minima.
func Prominence(y []float64, peak int) float64 {
	h := y[peak]

	leftMin := h
	for i := peak - 1; i >= 0 && y[i] <= h; i-- {
		leftMin = math.Min(leftMin, y[i])
	}

	rightMin := h
	for i := peak + 1; i < len(y) && y[i] <= h; i++ {
		rightMin = math.Min(rightMin, y[i])
	}

	return h - math.Max(leftMin, rightMin)
}

// Indices returns the sample indices of peaks.
func Indices(found []Peak) []int {
	idx := make([]int, len(found))
	for i, p := range found {
		idx[i] = p.Index
	}

	return idx
}
