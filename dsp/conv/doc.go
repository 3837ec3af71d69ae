// Package conv provides the convolution engine behind spectral smoothing.
//
// Two strategies are available:
//
//   - Direct: time-domain convolution, best for short kernels
//   - Overlap-add: FFT-based block convolution for long kernels
//
// [Filter] wraps both: it extends the signal at its edges according to an
// [Extension] mode and returns an output aligned with, and as long as, the
// input. The strategy is picked from the kernel length.
//
// # Usage
//
//	kernel, _ := window.Gaussian(12)
//	smoothed, err := conv.Filter(y, kernel, conv.ExtendReflect)
package conv
