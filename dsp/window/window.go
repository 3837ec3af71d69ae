// Package window generates smoothing kernels for spectral derivative analysis.
//
// The Gaussian kernel is parameterised in samples: sigma is the standard
// deviation and the kernel extends truncate*sigma samples to each side of its
// centre, so its length is always odd.
package window

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// DefaultTruncate is the number of standard deviations covered on each side.
const DefaultTruncate = 4.0

// Option configures kernel generation.
type Option func(*config)

type config struct {
	truncate  float64
	normalize bool
}

func defaultConfig() config {
	return config{
		truncate:  DefaultTruncate,
		normalize: true,
	}
}

// WithTruncate sets the half-width of the kernel in standard deviations.
// Values <= 0 are ignored.
func WithTruncate(v float64) Option {
	return func(c *config) {
		if v > 0 {
			c.truncate = v
		}
	}
}

// WithoutNormalization keeps the raw exp(-x²/2σ²) samples instead of scaling
// the kernel to unit sum.
func WithoutNormalization() Option {
	return func(c *config) {
		c.normalize = false
	}
}

// GaussianRadius returns the half-width in samples used for sigma.
func GaussianRadius(sigma float64, opts ...Option) int {
	cfg := applyOptions(opts)
	return int(cfg.truncate*sigma + 0.5)
}

// Gaussian returns a symmetric Gaussian kernel of length 2*radius+1.
func Gaussian(sigma float64, opts ...Option) ([]float64, error) {
	if err := validateSigma(sigma); err != nil {
		return nil, err
	}

	cfg := applyOptions(opts)
	radius := int(cfg.truncate*sigma + 0.5)

	out := make([]float64, 2*radius+1)
	denom := 2 * sigma * sigma

	for i := range out {
		d := float64(i - radius)
		out[i] = math.Exp(-d * d / denom)
	}

	if cfg.normalize {
		normalize(out)
	}

	return out, nil
}

func applyOptions(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

func normalize(k []float64) {
	if sum := floats.Sum(k); sum != 0 {
		floats.Scale(1/sum, k)
	}
}
