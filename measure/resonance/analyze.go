package resonance

import (
	"fmt"

	"github.com/cwbudde/algo-resonance/dsp/series"
	"github.com/cwbudde/algo-resonance/measure/blend"
	"github.com/cwbudde/algo-resonance/measure/boundary"
	"github.com/cwbudde/algo-resonance/measure/derivative"
	"github.com/cwbudde/algo-resonance/measure/integral"
	"github.com/cwbudde/algo-resonance/measure/peaks"
	"github.com/cwbudde/algo-resonance/measure/rank"
	"github.com/cwbudde/algo-resonance/measure/tof"
)

// PeakResult is the analysis outcome for one detected peak.
type PeakResult struct {
	Resolution boundary.Resolution
	// Integral is the gross area between the boundaries.
	Integral float64
	// Background is the trapezoid below the straight line joining the
	// boundary samples.
	Background float64
	TOF        float64
	Origin     string
	// Blend holds per-contributor integrals for blended spectra.
	Blend *integral.Blended
}

// Net returns Integral minus Background.
func (p PeakResult) Net() float64 { return p.Integral - p.Background }

// Report is the result of one analysis.
type Report struct {
	Label   string
	Series  series.Series
	Profile derivative.Profile
	Peaks   []PeakResult
	// Rows is the peak table in detection order.
	Rows []rank.Row
	// Ranked holds only the resolved rows.
	Ranked []rank.Resolved
	// Limits are the boundaries of the resolved peaks, suitable for caching.
	Limits []boundary.Limit
	// FromLimits reports whether Config.Limits replaced boundary resolution.
	FromLimits bool
}

// Resolved returns the number of peaks with a boundary.
func (r Report) Resolved() int { return len(r.Ranked) }

type integrateFunc func(res boundary.Resolution) (area float64, origin string, b *integral.Blended, err error)

// Analyze locates, bounds, integrates and ranks the peaks of s.
func Analyze(s series.Series, cfg Config) (Report, error) {
	if err := cfg.Validate(); err != nil {
		return Report{}, err
	}

	return analyze(s, cfg, func(res boundary.Resolution) (float64, string, *integral.Blended, error) {
		return integral.Integrate(s, res.Boundary.Left.X, res.Boundary.Right.X, cfg.Method), cfg.Label, nil, nil
	})
}

// AnalyzeBlend composes the contributions and analyses the composite. Each
// resolved peak is integrated per contributor and attributed to the
// contributor with the largest weighted area.
func AnalyzeBlend(contribs []blend.Contribution, cfg Config) (Report, error) {
	if err := cfg.Validate(); err != nil {
		return Report{}, err
	}

	composed, err := blend.Compose(contribs)
	if err != nil {
		return Report{}, fmt.Errorf("resonance: %w", err)
	}

	return analyze(composed, cfg, func(res boundary.Resolution) (float64, string, *integral.Blended, error) {
		b, err := integral.IntegrateBlended(contribs, res.Boundary.Left.X, res.Boundary.Right.X, integral.WithMethod(cfg.Method))
		if err != nil {
			return 0, "", nil, err
		}

		return b.Total, b.Origin(), &b, nil
	})
}

func analyze(s series.Series, cfg Config, integrate integrateFunc) (Report, error) {
	conv, err := cfg.converter()
	if err != nil {
		return Report{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	rep := Report{
		Label:   cfg.Label,
		Series:  s,
		Profile: derivative.Analyze(s, cfg.SmoothingSigma),
	}

	found := peaks.Locate(s, cfg.Polarity, cfg.HeightThreshold, cfg.prominence())

	var resolutions []boundary.Resolution

	if len(cfg.Limits) > 0 {
		resolutions, err = boundary.FromLimits(s, found, cfg.Limits)
		rep.FromLimits = err == nil
	}

	if !rep.FromLimits {
		resolutions = boundary.Resolve(s, rep.Profile, found, cfg.Polarity, cfg.Boundary)
	}

	entries := make([]rank.Entry, len(resolutions))
	rep.Peaks = make([]PeakResult, len(resolutions))

	for i, res := range resolutions {
		pr := PeakResult{Resolution: res, TOF: peakTOF(conv, s.Domain(), res.Peak.X), Origin: cfg.Label}

		if res.Resolved() {
			area, origin, b, err := integrate(res)
			if err != nil {
				return Report{}, fmt.Errorf("resonance: peak at x=%g: %w", res.Peak.X, err)
			}

			pr.Integral, pr.Origin, pr.Blend = area, origin, b
			pr.Background = integral.TrapezoidBackground(s, res.Boundary.Left.X, res.Boundary.Right.X)
		}

		rep.Peaks[i] = pr
		entries[i] = rank.Entry{Resolution: res, Integral: pr.Integral, Domain: s.Domain(), TOF: pr.TOF, Origin: pr.Origin}
	}

	rep.Rows = rank.Table(entries)
	rep.Ranked = rank.Rank(entries)
	rep.Limits = boundary.Limits(resolutions)

	return rep, nil
}

// peakTOF returns the flight time of a peak position; positions already in
// the time domain are returned unchanged. Non-positive energies map to 0.
func peakTOF(c tof.Converter, d series.Domain, x float64) float64 {
	if d == series.DomainTOF {
		return x
	}

	t, err := c.EnergyToTOF(x)
	if err != nil {
		return 0
	}

	return t
}
