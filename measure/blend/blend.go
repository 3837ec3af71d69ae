package blend

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-resonance/dsp/core"
	"github.com/cwbudde/algo-resonance/dsp/interp"
	"github.com/cwbudde/algo-resonance/dsp/series"
	"github.com/cwbudde/algo-resonance/measure/peaks"
	"github.com/cwbudde/algo-resonance/measure/tof"
)

// Errors returned by Compose.
var (
	ErrNoContributions    = errors.New("blend: no active contributions")
	ErrFractionOutOfRange = errors.New("blend: fraction outside [0, 1]")
	ErrMixedDomains       = errors.New("blend: contributions use different x domains")
)

const gridEpsilon = 1e-12

// Contribution is one isotope spectrum weighted by its abundance. A zero
// fraction excludes the contribution.
type Contribution struct {
	ID       string
	Fraction float64
	Series   series.Series
}

// Validate checks the fraction range.
func (c Contribution) Validate() error {
	if !(c.Fraction >= 0 && c.Fraction <= 1) {
		return fmt.Errorf("%w: %s has %v", ErrFractionOutOfRange, c.ID, c.Fraction)
	}

	return nil
}

// Active validates all contributions and returns those with a positive
// fraction and at least one sample.
func Active(contribs []Contribution) ([]Contribution, error) {
	var out []Contribution

	for _, c := range contribs {
		if err := c.Validate(); err != nil {
			return nil, err
		}

		if c.Fraction > 0 && c.Series.Len() > 0 {
			out = append(out, c)
		}
	}

	return out, nil
}

type config struct {
	converter  *tof.Converter
	prominence float64
}

// Option configures Compose.
type Option func(*config)

// WithTOF converts the composed energy spectrum to time of flight.
func WithTOF(c tof.Converter) Option {
	return func(cfg *config) {
		cfg.converter = &c
	}
}

// WithProminence only seeds the grid with extrema of at least prominence.
func WithProminence(p float64) Option {
	return func(cfg *config) {
		if p >= 0 {
			cfg.prominence = p
		}
	}
}

// Compose returns sum(fraction * contributor) on the union grid.
func Compose(contribs []Contribution, opts ...Option) (series.Series, error) {
	var cfg config

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	active, err := Active(contribs)
	if err != nil {
		return series.Series{}, err
	}

	if len(active) == 0 {
		return series.Series{}, ErrNoContributions
	}

	domain := active[0].Series.Domain()
	for _, c := range active[1:] {
		if c.Series.Domain() != domain {
			return series.Series{}, fmt.Errorf("%w: %s is %v, want %v", ErrMixedDomains, c.ID, c.Series.Domain(), domain)
		}
	}

	grid := Grid(active, cfg.prominence)
	y := make([]float64, len(grid))

	for _, c := range active {
		floats.AddScaled(y, c.Fraction, interp.LinearGrid(c.Series.X(), c.Series.Y(), grid))
	}

	out, err := series.New(grid, y, domain)
	if err != nil {
		return series.Series{}, fmt.Errorf("blend: compose: %w", err)
	}

	if cfg.converter != nil && domain == series.DomainEnergy {
		out, err = cfg.converter.ConvertSeries(out)
		if err != nil {
			return series.Series{}, fmt.Errorf("blend: compose: %w", err)
		}
	}

	return out, nil
}

// Grid returns the sorted, deduplicated union grid of the contributions:
// their local maxima and minima with at least the given prominence, plus
// floor(n/2) evenly spaced samples (at least both ends) of each.
func Grid(contribs []Contribution, prominence float64) []float64 {
	var grid []float64

	for _, c := range contribs {
		s := c.Series
		x := s.X()

		for _, p := range peaks.LocateMaxima(s, math.Inf(-1), prominence) {
			grid = append(grid, p.X)
		}

		for _, p := range peaks.LocateMinima(s, prominence) {
			grid = append(grid, p.X)
		}

		for _, i := range evenIndices(len(x), len(x)/2) {
			grid = append(grid, x[i])
		}
	}

	sort.Float64s(grid)

	return dedupe(grid)
}

// evenIndices returns m indices spread over [0, n-1], always including both
// ends when n >= 2.
func evenIndices(n, m int) []int {
	switch {
	case n == 0:
		return nil
	case n == 1:
		return []int{0}
	}

	m = max(m, 2)
	out := make([]int, m)

	for i := range m {
		out[i] = int(math.Round(float64(i) * float64(n-1) / float64(m-1)))
	}

	return out
}

// dedupe drops values that equal their predecessor up to rounding, so grids
// built from slightly different float spans do not produce near-zero steps.
func dedupe(sorted []float64) []float64 {
	if len(sorted) == 0 {
		return sorted
	}

	out := sorted[:1]
	for _, v := range sorted[1:] {
		if !core.NearlyEqual(v, out[len(out)-1], gridEpsilon) {
			out = append(out, v)
		}
	}

	return out
}

// Dominant returns the index of the contribution with the largest absolute
// weight, or -1 when weights is empty. Ties keep the first.
func Dominant(weights []float64) int {
	best := -1

	for i, w := range weights {
		if best < 0 || math.Abs(w) > math.Abs(weights[best]) {
			best = i
		}
	}

	return best
}
