// Package spectrum summarises a spectral series: extent, extrema, moments
// of the y values and the total area.
package spectrum

import (
	"math"

	"gonum.org/v1/gonum/integrate"

	"github.com/cwbudde/algo-resonance/dsp/series"
)

// Stats holds summary statistics of a series.
type Stats struct {
	Length int
	Domain series.Domain
	XMin   float64
	XMax   float64
	Max    float64
	MaxX   float64
	MaxPos int
	Min    float64
	MinX   float64
	MinPos int
	Mean   float64
	RMS    float64
	// Variance, Skewness and Kurtosis (excess) are population moments of y.
	Variance float64
	Skewness float64
	Kurtosis float64
	// Area is the trapezoidal integral of y over x.
	Area float64
}

// Calculate computes all statistics in a single pass over y, using
// Welford's update for the higher-order moments.
func Calculate(s series.Series) Stats {
	n := s.Len()
	if n == 0 {
		return Stats{Domain: s.Domain()}
	}

	x, y := s.X(), s.Y()

	var (
		mean, m2, m3, m4 float64
		sumSq            float64
		maxPos, minPos   int
	)

	for i, v := range y {
		ni := float64(i + 1)
		delta := v - mean
		deltaN := delta / ni
		deltaN2 := deltaN * deltaN
		term1 := delta * deltaN * float64(i)

		// m4 before m3 before m2.
		m4 += term1*deltaN2*(ni*ni-3*ni+3) + 6*deltaN2*m2 - 4*deltaN*m3
		m3 += term1*deltaN*(float64(i)-1) - 3*deltaN*m2
		m2 += term1
		mean += deltaN

		sumSq += v * v

		if v > y[maxPos] {
			maxPos = i
		}

		if v < y[minPos] {
			minPos = i
		}
	}

	nf := float64(n)
	variance := m2 / nf

	var skewness, kurtosis float64
	if variance > 0 {
		skewness = (m3 / nf) / (variance * math.Sqrt(variance))
		kurtosis = (m4/nf)/(variance*variance) - 3
	}

	var area float64
	if n >= 2 {
		area = integrate.Trapezoidal(x, y)
	}

	return Stats{
		Length:   n,
		Domain:   s.Domain(),
		XMin:     x[0],
		XMax:     x[n-1],
		Max:      y[maxPos],
		MaxX:     x[maxPos],
		MaxPos:   maxPos,
		Min:      y[minPos],
		MinX:     x[minPos],
		MinPos:   minPos,
		Mean:     mean,
		RMS:      math.Sqrt(sumSq / nf),
		Variance: variance,
		Skewness: skewness,
		Kurtosis: kurtosis,
		Area:     area,
	}
}
