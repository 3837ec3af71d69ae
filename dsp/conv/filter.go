package conv

import "fmt"

// Extension selects how a signal is continued beyond its edges before
// filtering.
type Extension int

const (
	// ExtendReflect mirrors about the outer sample edge (d c b a | a b c d | d c b a).
	ExtendReflect Extension = iota
	// ExtendNearest repeats the edge sample.
	ExtendNearest
	// ExtendZero pads with zeros.
	ExtendZero
)

// directMaxKernel is the longest kernel filtered in the time domain.
const directMaxKernel = 64

// Filter convolves signal with kernel and returns len(signal) samples aligned
// with the input: output i is centred on signal[i] at kernel index len(kernel)/2.
func Filter(signal, kernel []float64, ext Extension) ([]float64, error) {
	if len(signal) == 0 {
		return nil, ErrEmptyInput
	}

	if len(kernel) == 0 {
		return nil, ErrEmptyKernel
	}

	m := len(kernel)
	left := m / 2
	extended := extend(signal, left, m-1-left, ext)
	out := make([]float64, len(signal))

	if m <= directMaxKernel {
		directValid(out, extended, kernel)
		return out, nil
	}

	oa, err := NewOverlapAdd(kernel, 0)
	if err != nil {
		return nil, err
	}

	full, err := oa.Process(extended)
	if err != nil {
		return nil, fmt.Errorf("conv: filter: %w", err)
	}

	copy(out, full[m-1:m-1+len(signal)])

	return out, nil
}

func extend(signal []float64, left, right int, ext Extension) []float64 {
	n := len(signal)
	out := make([]float64, left+n+right)

	for i := range out {
		src := i - left

		switch {
		case src >= 0 && src < n:
			out[i] = signal[src]
		case ext == ExtendZero:
			out[i] = 0
		case ext == ExtendNearest:
			if src < 0 {
				out[i] = signal[0]
			} else {
				out[i] = signal[n-1]
			}
		default:
			out[i] = signal[reflectIndex(src, n)]
		}
	}

	return out
}

// reflectIndex folds i into [0, n) with period 2n, repeating edge samples.
func reflectIndex(i, n int) int {
	period := 2 * n

	i %= period
	if i < 0 {
		i += period
	}

	if i >= n {
		i = period - 1 - i
	}

	return i
}
