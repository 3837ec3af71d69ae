package tof

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-resonance/dsp/series"
)

const (
	// NeutronMass is the CODATA 2018 neutron mass in kg.
	NeutronMass = 1.67492749804e-27
	// ElementaryCharge is the exact SI elementary charge in C (J per eV).
	ElementaryCharge = 1.602176634e-19
)

// Errors returned by converters.
var (
	ErrInvalidFlightLength = errors.New("tof: flight length must be positive and finite")
	ErrNonPositive         = errors.New("tof: value must be positive")
	ErrUnknownMode         = errors.New("tof: unknown detector mode")
)

// Mode names a detector station.
type Mode string

const (
	// ModeNGamma is the neutron-gamma (capture) station.
	ModeNGamma Mode = "n-gamma"
	// ModeNTotal is the neutron transmission (total cross section) station.
	ModeNTotal Mode = "n-tot"
)

// DefaultFlightLengths returns the flight length in metres for each mode.
func DefaultFlightLengths() map[Mode]float64 {
	return map[Mode]float64{
		ModeNGamma: 22.8,
		ModeNTotal: 23.404,
	}
}

// ForMode returns a converter for mode using lengths. A nil map falls back
// to DefaultFlightLengths.
func ForMode(lengths map[Mode]float64, mode Mode) (Converter, error) {
	if lengths == nil {
		lengths = DefaultFlightLengths()
	}

	l, ok := lengths[mode]
	if !ok {
		return Converter{}, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}

	return NewConverter(l)
}

// Converter maps energies to flight times for one flight length.
type Converter struct {
	length float64
	// scale = L*1e6*sqrt(m_n/(2e)); t = scale/sqrt(E) and E = (scale/t)².
	scale float64
}

// NewConverter returns a converter for a flight path of length metres.
func NewConverter(length float64) (Converter, error) {
	if !(length > 0) || math.IsInf(length, 0) {
		return Converter{}, fmt.Errorf("%w: %v", ErrInvalidFlightLength, length)
	}

	return Converter{
		length: length,
		scale:  length * 1e6 * math.Sqrt(0.5*NeutronMass/ElementaryCharge),
	}, nil
}

// FlightLength returns the flight length in metres.
func (c Converter) FlightLength() float64 { return c.length }

// EnergyToTOF returns the flight time in µs for energy in eV.
func (c Converter) EnergyToTOF(energy float64) (float64, error) {
	if !(energy > 0) {
		return 0, fmt.Errorf("%w: energy %v", ErrNonPositive, energy)
	}

	return c.scale / math.Sqrt(energy), nil
}

// TOFToEnergy returns the energy in eV for a flight time in µs.
func (c Converter) TOFToEnergy(tof float64) (float64, error) {
	if !(tof > 0) {
		return 0, fmt.Errorf("%w: time of flight %v", ErrNonPositive, tof)
	}

	r := c.scale / tof

	return r * r, nil
}

// EnergiesToTOF converts every energy. The first non-positive value aborts
// the conversion.
func (c Converter) EnergiesToTOF(energies []float64) ([]float64, error) {
	out := make([]float64, len(energies))

	for i, e := range energies {
		t, err := c.EnergyToTOF(e)
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", i, err)
		}

		out[i] = t
	}

	return out, nil
}

// ConvertSeries maps s to the other domain, re-sorted by x. Every x value
// must be positive.
func (c Converter) ConvertSeries(s series.Series) (series.Series, error) {
	lo, _ := s.Range()
	if s.Len() > 0 && !(lo > 0) {
		return series.Series{}, fmt.Errorf("%w: x starts at %v", ErrNonPositive, lo)
	}

	f, target := c.scale, series.DomainTOF
	if s.Domain() == series.DomainTOF {
		target = series.DomainEnergy
	}

	out, err := s.MapX(func(x float64) float64 {
		if target == series.DomainTOF {
			return f / math.Sqrt(x)
		}

		r := f / x

		return r * r
	}, target)
	if err != nil {
		return series.Series{}, fmt.Errorf("tof: convert series: %w", err)
	}

	return out, nil
}
