package interp

import "sort"

// Linear evaluates the piecewise-linear interpolant through (xp, fp) at x.
// xp must be strictly ascending and have the same length as fp. Queries
// outside [xp[0], xp[n-1]] return the corresponding edge value. An empty
// table yields 0.
func Linear(xp, fp []float64, x float64) float64 {
	n := len(xp)
	if n == 0 || len(fp) != n {
		return 0
	}

	if x <= xp[0] {
		return fp[0]
	}

	if x >= xp[n-1] {
		return fp[n-1]
	}

	// First index with xp[i] >= x; otherwise x lies in (xp[i-1], xp[i]).
	i := sort.SearchFloat64s(xp, x)
	if xp[i] == x {
		return fp[i]
	}

	return segment(xp[i-1], fp[i-1], xp[i], fp[i], x)
}

// LinearGrid evaluates the interpolant at every point of xq. When xq is
// ascending the table is walked once; unsorted queries fall back to a
// binary search per point.
func LinearGrid(xp, fp, xq []float64) []float64 {
	out := make([]float64, len(xq))
	if len(xp) == 0 || len(fp) != len(xp) {
		return out
	}

	if !sort.Float64sAreSorted(xq) {
		for i, x := range xq {
			out[i] = Linear(xp, fp, x)
		}

		return out
	}

	n := len(xp)
	j := 0

	for i, x := range xq {
		switch {
		case x <= xp[0]:
			out[i] = fp[0]
		case x >= xp[n-1]:
			out[i] = fp[n-1]
		default:
			for j+1 < n && xp[j+1] <= x {
				j++
			}

			if xp[j] == x {
				out[i] = fp[j]
				continue
			}

			out[i] = segment(xp[j], fp[j], xp[j+1], fp[j+1], x)
		}
	}

	return out
}

func segment(x0, y0, x1, y1, x float64) float64 {
	t := (x - x0) / (x1 - x0)
	return y0 + t*(y1-y0)
}
