package conv

import (
	"errors"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-resonance/dsp/core"
)

// Errors returned by convolution functions.
var (
	ErrEmptyInput     = errors.New("conv: empty input")
	ErrEmptyKernel    = errors.New("conv: empty kernel")
	ErrLengthMismatch = errors.New("conv: buffer length mismatch")
)

// Direct performs time-domain linear convolution of a and b and returns a
// new slice of length len(a)+len(b)-1.
func Direct(a, b []float64) ([]float64, error) {
	if len(a) == 0 {
		return nil, ErrEmptyInput
	}

	if len(b) == 0 {
		return nil, ErrEmptyKernel
	}

	out := make([]float64, len(a)+len(b)-1)
	for i, av := range a {
		for j, bv := range b {
			out[i+j] += av * bv
		}
	}

	return out, nil
}

// directValid computes the fully overlapping part of conv(ext, kernel):
// dst[i] = sum_k ext[i+k] * kernel[m-1-k] for i in [0, len(ext)-m].
func directValid(dst, ext, kernel []float64) {
	m := len(kernel)
	rev := core.Reversed(kernel)

	scratch := make([]float64, m)

	for i := range dst {
		vecmath.MulBlock(scratch, ext[i:i+m], rev)
		dst[i] = floats.Sum(scratch)
	}
}

func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
