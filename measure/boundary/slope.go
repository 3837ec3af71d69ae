package boundary

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// OuterSlope estimates the background derivative of a derivative window by
// box fitting. Values are quantized to multiples of a box width that grows
// in steps of density*span; the search stops at the first width where the
// quantized values are no longer all distinct and a single most populated
// box exists, and returns that box's quantized value. If no width produces a
// unique majority box within maxSteps, the median is returned.
func OuterSlope(values []float64, density float64, maxSteps int) float64 {
	if len(values) == 0 {
		return 0
	}

	lo, hi := floats.Min(values), floats.Max(values)
	span := hi - lo

	if span == 0 {
		return lo
	}

	if density <= 0 || density > 1 {
		density = defaultBoxDensity
	}

	if maxSteps <= 0 {
		maxSteps = int(math.Ceil(1 / density))
	}

	counts := make(map[int64]int, len(values))

	for k := 1; k <= maxSteps; k++ {
		width := float64(k) * density * span

		clear(counts)

		for _, v := range values {
			counts[int64(math.Round(v/width))]++
		}

		if len(counts) == len(values) {
			continue
		}

		if key, ok := uniqueMode(counts); ok {
			return float64(key) * width
		}
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	return stat.Quantile(0.5, stat.Empirical, sorted, nil)
}

func uniqueMode(counts map[int64]int) (int64, bool) {
	var (
		best  int64
		count int
		tie   bool
	)

	for key, c := range counts {
		switch {
		case c > count:
			best, count, tie = key, c, false
		case c == count:
			tie = true
		}
	}

	return best, count >= 2 && !tie
}

// movingAverage applies passes of a 3-point mean to the interior of d in
// place; the two end samples are left unchanged.
func movingAverage(d []float64, passes int) {
	if len(d) < 3 {
		return
	}

	tmp := make([]float64, len(d))

	for range passes {
		copy(tmp, d)

		for i := 1; i < len(d)-1; i++ {
			d[i] = (tmp[i-1] + tmp[i] + tmp[i+1]) / 3
		}
	}
}
