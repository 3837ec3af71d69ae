package resonance

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-resonance/measure/boundary"
	"github.com/cwbudde/algo-resonance/measure/derivative"
	"github.com/cwbudde/algo-resonance/measure/integral"
	"github.com/cwbudde/algo-resonance/measure/peaks"
	"github.com/cwbudde/algo-resonance/measure/tof"
)

// ErrInvalidConfig is returned for configuration that is rejected before
// any computation.
var ErrInvalidConfig = errors.New("resonance: invalid configuration")

// DefaultHeightThreshold is the default minimum peak height.
const DefaultHeightThreshold = 100.0

// Config holds every analysis option. The zero value is not useful; start
// from DefaultConfig.
type Config struct {
	SmoothingSigma  float64              `json:"smoothingSigma"`
	HeightThreshold float64              `json:"heightThreshold"`
	ProminenceMax   float64              `json:"prominenceMax"`
	ProminenceMin   float64              `json:"prominenceMin"`
	Polarity        peaks.Polarity       `json:"polarity"`
	Boundary        boundary.Config      `json:"boundary"`
	FlightLength    map[tof.Mode]float64 `json:"flightLength"`
	Mode            tof.Mode             `json:"mode"`
	Method          integral.Method      `json:"method"`
	// Label names the analysed substance in reports.
	Label string `json:"label,omitempty"`
	// Limits replaces boundary resolution when every entry brackets a
	// detected peak. Peaks left without an entry are reported unresolved.
	Limits []boundary.Limit `json:"limits,omitempty"`
}

// DefaultConfig returns the standard analysis settings.
func DefaultConfig() Config {
	return Config{
		SmoothingSigma:  derivative.DefaultSigma,
		HeightThreshold: DefaultHeightThreshold,
		Polarity:        peaks.Maximum,
		Boundary:        boundary.DefaultConfig(),
		FlightLength:    tof.DefaultFlightLengths(),
		Mode:            tof.ModeNGamma,
		Method:          integral.Simpson,
	}
}

// Validate rejects malformed configuration.
func (c Config) Validate() error {
	if !(c.SmoothingSigma >= 0) || math.IsInf(c.SmoothingSigma, 0) {
		return fmt.Errorf("%w: smoothingSigma %v", ErrInvalidConfig, c.SmoothingSigma)
	}

	if math.IsNaN(c.HeightThreshold) {
		return fmt.Errorf("%w: heightThreshold is NaN", ErrInvalidConfig)
	}

	if !(c.ProminenceMax >= 0) || !(c.ProminenceMin >= 0) {
		return fmt.Errorf("%w: prominence filters must be >= 0", ErrInvalidConfig)
	}

	if c.Polarity != peaks.Maximum && c.Polarity != peaks.Minimum {
		return fmt.Errorf("%w: polarity %d", ErrInvalidConfig, int(c.Polarity))
	}

	switch c.Method {
	case integral.Simpson, integral.Trapezoid, integral.Mean:
	default:
		return fmt.Errorf("%w: method %v", ErrInvalidConfig, c.Method)
	}

	if err := c.Boundary.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if _, err := c.converter(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	for i, l := range c.Limits {
		if !(l.Left < l.Right) {
			return fmt.Errorf("%w: limit %d [%v, %v] is empty", ErrInvalidConfig, i, l.Left, l.Right)
		}
	}

	return nil
}

func (c Config) converter() (tof.Converter, error) {
	return tof.ForMode(c.FlightLength, c.Mode)
}

func (c Config) prominence() float64 {
	if c.Polarity == peaks.Minimum {
		return c.ProminenceMin
	}

	return c.ProminenceMax
}
