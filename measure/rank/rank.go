package rank

import (
	"sort"

	"github.com/cwbudde/algo-resonance/dsp/series"
	"github.com/cwbudde/algo-resonance/measure/boundary"
)

// NoPeakDataLabel is the label of table rows for unresolved peaks.
const NoPeakDataLabel = "no peak data"

// Entry is one detected peak with its integration results.
type Entry struct {
	Resolution boundary.Resolution
	// Integral is the gross area between the boundaries, background
	// included; IntegralRank orders by it.
	Integral float64
	// Domain is the x domain of the peak position. Energy ranks ascend with
	// energy, so they follow descending x in the time domain.
	Domain series.Domain
	// TOF is the peak position in µs.
	TOF float64
	// Origin names the contributor the peak is attributed to.
	Origin string
}

// Row is a peak table row: either Resolved or NoPeakData.
type Row interface {
	isRow()
}

// Resolved is a ranked table row.
type Resolved struct {
	IntegralRank int
	X            float64
	EnergyRank   int
	TOF          float64
	Integral     float64
	Width        float64
	WidthRank    int
	Height       float64
	HeightRank   int
	Origin       string
}

// NoPeakData marks a detected peak whose boundary could not be resolved.
type NoPeakData struct {
	X      float64
	Height float64
	Label  string
}

func (Resolved) isRow()   {}
func (NoPeakData) isRow() {}

// Rank returns a row for every resolved entry, in detection order. Heights
// are ranked by depth for minima.
func Rank(entries []Entry) []Resolved {
	var kept []Entry

	for _, e := range entries {
		if e.Resolution.Resolved() {
			kept = append(kept, e)
		}
	}

	if len(kept) == 0 {
		return nil
	}

	n := len(kept)
	integrals := make([]float64, n)
	widths := make([]float64, n)
	heights := make([]float64, n)
	xs := make([]float64, n)

	for i, e := range kept {
		pk := e.Resolution.Peak
		integrals[i] = e.Integral
		widths[i] = e.Resolution.Boundary.Width()
		heights[i] = pk.Polarity.Sign() * pk.Y
		xs[i] = -pk.X
		if e.Domain == series.DomainTOF {
			xs[i] = pk.X
		}
	}

	ir := Descending(integrals)
	wr := Descending(widths)
	hr := Descending(heights)
	er := Descending(xs)

	out := make([]Resolved, n)

	for i, e := range kept {
		pk := e.Resolution.Peak
		out[i] = Resolved{
			IntegralRank: ir[i],
			X:            pk.X,
			EnergyRank:   er[i],
			TOF:          e.TOF,
			Integral:     e.Integral,
			Width:        widths[i],
			WidthRank:    wr[i],
			Height:       pk.Y,
			HeightRank:   hr[i],
			Origin:       e.Origin,
		}
	}

	return out
}

// Table returns one row per entry in detection order.
func Table(entries []Entry) []Row {
	if len(entries) == 0 {
		return nil
	}

	ranked := Rank(entries)
	out := make([]Row, 0, len(entries))
	next := 0

	for _, e := range entries {
		if e.Resolution.Resolved() {
			out = append(out, ranked[next])
			next++

			continue
		}

		out = append(out, NoPeakData{
			X:      e.Resolution.Peak.X,
			Height: e.Resolution.Peak.Y,
			Label:  NoPeakDataLabel,
		})
	}

	return out
}

// Descending returns the 0-based rank of every value, 0 for the largest.
// Equal values are ranked in input order.
func Descending(values []float64) []int {
	order := make([]int, len(values))
	for i := range order {
		order[i] = i
	}

	sort.SliceStable(order, func(a, b int) bool { return values[order[a]] > values[order[b]] })

	ranks := make([]int, len(values))
	for r, i := range order {
		ranks[i] = r
	}

	return ranks
}
