package boundary

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/cwbudde/algo-resonance/dsp/series"
	"github.com/cwbudde/algo-resonance/measure/derivative"
	"github.com/cwbudde/algo-resonance/measure/peaks"
)

// Errors reported per peak in [Resolution.Err].
var (
	ErrUnresolved     = errors.New("boundary: no boundary sample found")
	ErrNoWindow       = errors.New("boundary: empty search window")
	ErrProfile        = errors.New("boundary: derivative profile does not match series")
	ErrLimitUnmatched = errors.New("boundary: stored limit brackets no peak")
)

// Boundary is a resolved pair of integration limits. Left.X < peak X < Right.X.
type Boundary struct {
	Left  series.Point
	Right series.Point
}

// Width returns Right.X - Left.X.
func (b Boundary) Width() float64 { return b.Right.X - b.Left.X }

// Resolution is the outcome for a single peak.
type Resolution struct {
	Peak     peaks.Peak
	Boundary Boundary
	Err      error
}

// Resolved reports whether a boundary was found.
func (r Resolution) Resolved() bool { return r.Err == nil }

// Limit is a stored pair of boundary x coordinates.
type Limit struct {
	Left  float64
	Right float64
}

// Resolve finds the boundary of every peak in found. The result holds one
// entry per peak in input order; failures are reported per peak and do not
// stop the remaining peaks. The boundary samples are taken from s itself,
// not from the smoothed profile.
func Resolve(s series.Series, p derivative.Profile, found []peaks.Peak, pol peaks.Polarity, cfg Config) []Resolution {
	if len(found) == 0 {
		return nil
	}

	cfg = normalizeConfig(cfg)
	out := make([]Resolution, len(found))

	if p.First.Len() != s.Len() {
		for i, pk := range found {
			out[i] = Resolution{Peak: pk, Err: ErrProfile}
		}

		return out
	}

	sorted := sortedIndices(found)
	d := p.First.Y()

	for i, pk := range found {
		out[i] = resolveOne(s, d, pk, pol, sorted, cfg)
	}

	return out
}

func resolveOne(s series.Series, d []float64, pk peaks.Peak, pol peaks.Polarity, neighbours []int, cfg Config) Resolution {
	res := Resolution{Peak: pk}
	idx := pk.Index
	n := s.Len()

	if idx <= 0 || idx >= n-1 {
		res.Err = fmt.Errorf("%w: peak at index %d of %d", ErrNoWindow, idx, n)
		return res
	}

	r := min(cfg.MaxSearchRange, idx, n-1-idx)

	j := sort.SearchInts(neighbours, idx)
	if j > 0 {
		r = min(r, idx-neighbours[j-1])
	}

	for k := j; k < len(neighbours); k++ {
		if neighbours[k] > idx {
			r = min(r, neighbours[k]-idx)
			break
		}
	}

	if r < 1 {
		res.Err = fmt.Errorf("%w: peak at index %d", ErrNoWindow, idx)
		return res
	}

	w := append([]float64(nil), d[idx-r:idx+r+1]...)
	movingAverage(w, cfg.SmoothIterations)

	outer := OuterSlope(w, cfg.BoxDensity, cfg.MaxBoxSteps)
	steepest := 0.0

	for _, v := range w {
		steepest = math.Max(steepest, math.Abs(v))
	}

	left, okL := walk(w, r, -1, pol, capSlope(outer, cfg.MaxLeftSlope*steepest), cfg.SlopeDropRatio)
	right, okR := walk(w, r, +1, pol, capSlope(outer, cfg.MaxOuterSlope*steepest), cfg.SlopeDropRatio)

	switch {
	case !okL && !okR:
		res.Err = fmt.Errorf("%w: both flanks of peak at x=%g", ErrUnresolved, pk.X)
	case !okL:
		res.Err = fmt.Errorf("%w: left flank of peak at x=%g", ErrUnresolved, pk.X)
	case !okR:
		res.Err = fmt.Errorf("%w: right flank of peak at x=%g", ErrUnresolved, pk.X)
	default:
		res.Boundary = Boundary{Left: s.At(idx - r + left), Right: s.At(idx - r + right)}
	}

	return res
}

// capSlope discards an outer slope steeper than ceiling.
func capSlope(outer, ceiling float64) float64 {
	if math.Abs(outer) > ceiling {
		return 0
	}

	return outer
}

// walk steps from the window centre c in direction dir and returns the
// boundary position inside w. Slopes are normalised so that the flank of a
// maximum or a minimum both rise towards the peak: g = sign*(-dir)*w[i].
func walk(w []float64, c, dir int, pol peaks.Polarity, outer, ratio float64) (int, bool) {
	k := pol.Sign() * float64(-dir)
	gOuter := k * outer
	prev := k * w[c]

	var (
		locked bool
		gMax   float64
	)

	for step := 1; step <= c; step++ {
		i := c + dir*step
		g := k * w[i]

		if !locked {
			if g < prev && prev > gOuter {
				locked, gMax = true, prev
			} else {
				prev = g
				continue
			}
		}

		gMax = math.Max(gMax, g)
		diff := g - gOuter

		if diff <= 0 {
			return i, true
		}

		if den := gMax - gOuter; den != 0 && math.Abs(diff)/math.Abs(den) <= ratio {
			return i, true
		}

		prev = g
	}

	if locked {
		return c + dir*c, true
	}

	return 0, false
}

func sortedIndices(found []peaks.Peak) []int {
	idx := make([]int, len(found))
	for i, pk := range found {
		idx[i] = pk.Index
	}

	sort.Ints(idx)

	return idx
}

// FromLimits builds resolutions from stored limits. Each limit is assigned
// to the unclaimed peak it brackets, the most prominent one when it brackets
// several. Peaks without a limit report ErrUnresolved. A limit that brackets
// no peak means the limits belong to other data and fails with
// ErrLimitUnmatched.
func FromLimits(s series.Series, found []peaks.Peak, limits []Limit) ([]Resolution, error) {
	out := make([]Resolution, len(found))
	for i, pk := range found {
		out[i] = Resolution{Peak: pk, Err: fmt.Errorf("%w: no stored limit brackets x=%g", ErrUnresolved, pk.X)}
	}

	claimed := make([]bool, len(found))

	for _, l := range limits {
		best := -1

		for i, pk := range found {
			if claimed[i] || !(l.Left < pk.X && pk.X < l.Right) {
				continue
			}

			if best < 0 || pk.Prominence > found[best].Prominence {
				best = i
			}
		}

		if best < 0 {
			return nil, fmt.Errorf("%w: [%g, %g]", ErrLimitUnmatched, l.Left, l.Right)
		}

		claimed[best] = true
		out[best].Err = nil
		out[best].Boundary = Boundary{
			Left:  series.Point{X: l.Left, Y: s.Interpolate(l.Left)},
			Right: series.Point{X: l.Right, Y: s.Interpolate(l.Right)},
		}
	}

	return out, nil
}

// Limits returns the x limits of every resolved entry, in order.
func Limits(res []Resolution) []Limit {
	out := make([]Limit, 0, len(res))

	for _, r := range res {
		if r.Resolved() {
			out = append(out, Limit{Left: r.Boundary.Left.X, Right: r.Boundary.Right.X})
		}
	}

	return out
}
