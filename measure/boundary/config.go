package boundary

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("boundary: invalid configuration")

const (
	defaultMaxSearchRange   = 200
	defaultBoxDensity       = 0.001
	defaultMaxOuterSlope    = 0.2
	defaultMaxLeftSlope     = 0.3
	defaultSlopeDropRatio   = 0.05
	defaultSmoothIterations = 1
)

// Config tunes the boundary search. Slope ceilings are relative to the
// largest derivative magnitude inside each peak's search window, which keeps
// them independent of the x and y units of the spectrum.
type Config struct {
	// MaxSearchRange caps the half-width of the search window in samples.
	MaxSearchRange int `json:"maxSearchRange"`
	// BoxDensity is the box-width increment of the consensus outer slope
	// search, as a fraction of the derivative span in the window.
	BoxDensity float64 `json:"boxDensity"`
	// MaxBoxSteps bounds the consensus search; 0 means ceil(1/BoxDensity).
	MaxBoxSteps int `json:"maxBoxSteps"`
	// MaxOuterSlope discards outer slope estimates steeper than this
	// fraction of the window's peak derivative (right-hand walk).
	MaxOuterSlope float64 `json:"maxOuterSlope"`
	// MaxLeftSlope is the same ceiling for the left-hand walk.
	MaxLeftSlope float64 `json:"maxLeftSlope"`
	// SlopeDropRatio ends the walk once |g-outer|/|gMax-outer| falls to it.
	SlopeDropRatio float64 `json:"slopeDropRatio"`
	// SmoothIterations is the number of 3-point moving-average passes over
	// the derivative window before walking.
	SmoothIterations int `json:"smoothIterations"`
}

// DefaultConfig returns the default boundary search settings.
func DefaultConfig() Config {
	return Config{
		MaxSearchRange:   defaultMaxSearchRange,
		BoxDensity:       defaultBoxDensity,
		MaxOuterSlope:    defaultMaxOuterSlope,
		MaxLeftSlope:     defaultMaxLeftSlope,
		SlopeDropRatio:   defaultSlopeDropRatio,
		SmoothIterations: defaultSmoothIterations,
	}
}

// Validate reports out-of-range settings. Zero values are accepted and
// replaced by defaults when resolving.
func (c Config) Validate() error {
	switch {
	case c.MaxSearchRange < 0:
		return fmt.Errorf("%w: maxSearchRange %d < 0", ErrInvalidConfig, c.MaxSearchRange)
	case c.BoxDensity < 0 || c.BoxDensity > 1:
		return fmt.Errorf("%w: boxDensity %v outside [0,1]", ErrInvalidConfig, c.BoxDensity)
	case c.MaxBoxSteps < 0:
		return fmt.Errorf("%w: maxBoxSteps %d < 0", ErrInvalidConfig, c.MaxBoxSteps)
	case c.MaxOuterSlope < 0 || c.MaxLeftSlope < 0:
		return fmt.Errorf("%w: slope ceilings must be >= 0", ErrInvalidConfig)
	case c.SlopeDropRatio < 0 || c.SlopeDropRatio > 1:
		return fmt.Errorf("%w: slopeDropRatio %v outside [0,1]", ErrInvalidConfig, c.SlopeDropRatio)
	case c.SmoothIterations < 0:
		return fmt.Errorf("%w: smoothIterations %d < 0", ErrInvalidConfig, c.SmoothIterations)
	}

	return nil
}

func normalizeConfig(c Config) Config {
	d := DefaultConfig()

	if c.MaxSearchRange <= 0 {
		c.MaxSearchRange = d.MaxSearchRange
	}

	if c.BoxDensity <= 0 || c.BoxDensity > 1 {
		c.BoxDensity = d.BoxDensity
	}

	if c.MaxOuterSlope <= 0 {
		c.MaxOuterSlope = d.MaxOuterSlope
	}

	if c.MaxLeftSlope <= 0 {
		c.MaxLeftSlope = d.MaxLeftSlope
	}

	if c.SlopeDropRatio <= 0 || c.SlopeDropRatio > 1 {
		c.SlopeDropRatio = d.SlopeDropRatio
	}

	c.SmoothIterations = max(c.SmoothIterations, 0)

	return c
}
