package rank

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-resonance/dsp/series"
	"github.com/cwbudde/algo-resonance/measure/boundary"
	"github.com/cwbudde/algo-resonance/measure/peaks"
	"github.com/cwbudde/algo-resonance/measure/tof"
)

func entry(x, y, left, right, integral float64) Entry {
	return Entry{
		Resolution: boundary.Resolution{
			Peak: peaks.Peak{X: x, Y: y, Polarity: peaks.Maximum},
			Boundary: boundary.Boundary{
				Left:  series.Point{X: left},
				Right: series.Point{X: right},
			},
		},
		Integral: integral,
		TOF:      1000 / x,
	}
}

func unresolved(x, y float64) Entry {
	return Entry{Resolution: boundary.Resolution{
		Peak: peaks.Peak{X: x, Y: y},
		Err:  boundary.ErrUnresolved,
	}}
}

func TestRankPermutation(t *testing.T) {
	entries := []Entry{
		entry(5, 10, 4, 6, 3.5),
		entry(9, 40, 8.5, 9.2, 12),
		entry(2, 25, 1, 4, 0.7),
		entry(14, 15, 13, 15.5, 8),
	}

	rows := Rank(entries)
	if len(rows) != len(entries) {
		t.Fatalf("got %d rows", len(rows))
	}

	seen := make(map[int]bool)
	for _, r := range rows {
		seen[r.IntegralRank] = true
	}

	for i := range entries {
		if !seen[i] {
			t.Fatalf("integral ranks %v are not a permutation", rows)
		}
	}

	if rows[1].IntegralRank != 0 || rows[2].IntegralRank != 3 {
		t.Fatalf("integral ranks = %+v", rows)
	}

	if rows[3].WidthRank != 1 || rows[2].WidthRank != 0 {
		t.Fatalf("width ranks = %+v", rows)
	}

	if rows[1].HeightRank != 0 || rows[0].HeightRank != 3 {
		t.Fatalf("height ranks = %+v", rows)
	}

	if rows[2].EnergyRank != 0 || rows[3].EnergyRank != 3 {
		t.Fatalf("energy ranks = %+v", rows)
	}
}

func TestEnergyRankIndependentOfDomain(t *testing.T) {
	conv, err := tof.NewConverter(22.8)
	if err != nil {
		t.Fatal(err)
	}

	energies := []float64{10, 30}

	inEnergy := []Entry{
		entry(energies[0], 5, 9, 11, 1),
		entry(energies[1], 5, 29, 31, 1),
	}

	// Time of flight falls with energy, so detection order flips.
	var inTOF []Entry

	for i := len(energies) - 1; i >= 0; i-- {
		x, err := conv.EnergyToTOF(energies[i])
		if err != nil {
			t.Fatal(err)
		}

		e := entry(x, 5, x-1, x+1, 1)
		e.Domain = series.DomainTOF
		inTOF = append(inTOF, e)
	}

	byEnergy := Rank(inEnergy)
	byTOF := Rank(inTOF)

	if byEnergy[0].EnergyRank != 0 || byEnergy[1].EnergyRank != 1 {
		t.Fatalf("energy-domain ranks = %+v", byEnergy)
	}

	// inTOF[1] is the 10 eV peak.
	if byTOF[1].EnergyRank != 0 || byTOF[0].EnergyRank != 1 {
		t.Fatalf("time-domain ranks = %+v", byTOF)
	}
}

func TestIntegralRankUsesGrossArea(t *testing.T) {
	// Equal net areas on a falling background: the gross integral decides.
	low := entry(50, 20, 45, 55, 109)
	high := entry(5, 20, 4, 6, 127)

	rows := Rank([]Entry{low, high})
	if rows[1].IntegralRank != 0 || rows[0].IntegralRank != 1 || rows[1].Integral != 127 {
		t.Fatalf("integral ranks = %+v", rows)
	}
}

func TestRankTiesKeepDetectionOrder(t *testing.T) {
	got := Descending([]float64{2, 5, 2, 5})
	want := []int{2, 0, 3, 1}

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Descending = %v, want %v", got, want)
		}
	}
}

func TestRankMinimaByDepth(t *testing.T) {
	shallow := entry(1, 8, 0, 2, 1)
	deep := entry(3, 2, 2, 4, 1)
	shallow.Resolution.Peak.Polarity = peaks.Minimum
	deep.Resolution.Peak.Polarity = peaks.Minimum

	rows := Rank([]Entry{shallow, deep})
	if rows[1].HeightRank != 0 || rows[1].Height != 2 {
		t.Fatalf("deepest dip not ranked first: %+v", rows)
	}
}

func TestTableMarksUnresolved(t *testing.T) {
	entries := []Entry{
		entry(5, 10, 4, 6, 3.5),
		unresolved(7, 30),
		entry(9, 40, 8.5, 9.2, 12),
	}

	rows := Table(entries)
	if len(rows) != 3 {
		t.Fatalf("got %d rows", len(rows))
	}

	miss, ok := rows[1].(NoPeakData)
	if !ok || miss.X != 7 || miss.Label != NoPeakDataLabel {
		t.Fatalf("row 1 = %#v", rows[1])
	}

	last, ok := rows[2].(Resolved)
	if !ok || last.IntegralRank != 0 || last.X != 9 {
		t.Fatalf("row 2 = %#v", rows[2])
	}

	if !errors.Is(entries[1].Resolution.Err, boundary.ErrUnresolved) {
		t.Fatal("entry mutated")
	}
}

func TestRankEmpty(t *testing.T) {
	if got := Rank(nil); got != nil {
		t.Fatalf("Rank(nil) = %v", got)
	}

	if got := Table([]Entry{unresolved(1, 1)}); len(got) != 1 {
		t.Fatalf("Table of unresolved = %v", got)
	}

	if got := Table(nil); got != nil {
		t.Fatalf("Table(nil) = %v", got)
	}
}
