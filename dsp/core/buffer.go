package core

// Reversed returns a reversed copy of x.
func Reversed(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[len(x)-1-i] = v
	}

	return out
}
