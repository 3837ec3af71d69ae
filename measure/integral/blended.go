package integral

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-resonance/measure/blend"
)

// Part is one contributor's share of a blended integral.
type Part struct {
	ID       string
	Fraction float64
	Integral float64
	Weighted float64
}

// Blended is the abundance-weighted integral of several contributors.
type Blended struct {
	Total float64
	Parts []Part
	// Dominant indexes the part with the largest absolute weighted integral, or -1
	// when there are no parts.
	Dominant int
}

// Origin returns the ID of the dominant contributor, or "" if there is none.
func (b Blended) Origin() string {
	if b.Dominant < 0 || b.Dominant >= len(b.Parts) {
		return ""
	}

	return b.Parts[b.Dominant].ID
}

type blendedConfig struct {
	method  Method
	workers int
}

// Option configures IntegrateBlended.
type Option func(*blendedConfig)

// WithMethod selects the quadrature rule. The default is Simpson.
func WithMethod(m Method) Option {
	return func(c *blendedConfig) {
		c.method = m
	}
}

// WithWorkers bounds the number of concurrent integrations. Values below 1
// select GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(c *blendedConfig) {
		c.workers = n
	}
}

// IntegrateBlended integrates every active contribution between leftX and
// rightX and sums the results weighted by fraction. Fractions are validated
// before any integration starts.
func IntegrateBlended(contribs []blend.Contribution, leftX, rightX float64, opts ...Option) (Blended, error) {
	cfg := blendedConfig{method: Simpson}

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if cfg.workers < 1 {
		cfg.workers = runtime.GOMAXPROCS(0)
	}

	active, err := blend.Active(contribs)
	if err != nil {
		return Blended{Dominant: -1}, err
	}

	if len(active) == 0 {
		return Blended{Dominant: -1}, blend.ErrNoContributions
	}

	parts := make([]Part, len(active))

	var g errgroup.Group
	g.SetLimit(cfg.workers)

	for i, c := range active {
		g.Go(func() error {
			area := Integrate(c.Series, leftX, rightX, cfg.method)
			parts[i] = Part{ID: c.ID, Fraction: c.Fraction, Integral: area, Weighted: c.Fraction * area}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Blended{Dominant: -1}, err
	}

	weights := make([]float64, len(parts))
	out := Blended{Parts: parts}

	for i, p := range parts {
		out.Total += p.Weighted
		weights[i] = p.Weighted
	}

	out.Dominant = blend.Dominant(weights)

	return out, nil
}
