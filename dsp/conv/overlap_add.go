package conv

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// minBlockSize is the smallest automatically chosen input block.
const minBlockSize = 256

// OverlapAdd implements FFT-based linear convolution with the overlap-add
// method: the input is cut into blocks, each block is convolved with the
// kernel in the frequency domain, and the partial results are summed at their
// block offsets.
type OverlapAdd struct {
	kernelFFT []complex128
	kernelLen int
	blockSize int
	fftSize   int

	plan *algofft.Plan[complex128]

	block []complex128
}

// NewOverlapAdd prepares a convolver for kernel. A blockSize <= 0 selects a
// power of two at least as long as the kernel.
func NewOverlapAdd(kernel []float64, blockSize int) (*OverlapAdd, error) {
	if len(kernel) == 0 {
		return nil, ErrEmptyKernel
	}

	kernelLen := len(kernel)
	if blockSize <= 0 {
		blockSize = max(nextPowerOf2(kernelLen), minBlockSize)
	}

	fftSize := nextPowerOf2(blockSize + kernelLen - 1)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("conv: failed to create FFT plan: %w", err)
	}

	oa := &OverlapAdd{
		kernelFFT: make([]complex128, fftSize),
		kernelLen: kernelLen,
		blockSize: blockSize,
		fftSize:   fftSize,
		plan:      plan,
		block:     make([]complex128, fftSize),
	}

	padded := make([]complex128, fftSize)
	for i, v := range kernel {
		padded[i] = complex(v, 0)
	}

	if err := plan.Forward(oa.kernelFFT, padded); err != nil {
		return nil, fmt.Errorf("conv: failed to compute kernel FFT: %w", err)
	}

	return oa, nil
}

// BlockSize returns the input block size.
func (oa *OverlapAdd) BlockSize() int { return oa.blockSize }

// FFTSize returns the transform length.
func (oa *OverlapAdd) FFTSize() int { return oa.fftSize }

// Process returns the full linear convolution of input with the kernel,
// len(input)+kernelLen-1 samples long.
func (oa *OverlapAdd) Process(input []float64) ([]float64, error) {
	if len(input) == 0 {
		return nil, ErrEmptyInput
	}

	outLen := len(input) + oa.kernelLen - 1
	out := make([]float64, outLen)

	for start := 0; start < len(input); start += oa.blockSize {
		end := min(start+oa.blockSize, len(input))

		for i := range oa.block {
			oa.block[i] = 0
		}

		for i := start; i < end; i++ {
			oa.block[i-start] = complex(input[i], 0)
		}

		if err := oa.plan.Forward(oa.block, oa.block); err != nil {
			return nil, fmt.Errorf("conv: forward FFT failed: %w", err)
		}

		for i := range oa.block {
			oa.block[i] *= oa.kernelFFT[i]
		}

		if err := oa.plan.Inverse(oa.block, oa.block); err != nil {
			return nil, fmt.Errorf("conv: inverse FFT failed: %w", err)
		}

		n := end - start + oa.kernelLen - 1
		for i := 0; i < n && start+i < outLen; i++ {
			out[start+i] += real(oa.block[i])
		}
	}

	return out, nil
}
