package window

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidSigma is returned for non-positive or non-finite standard deviations.
var ErrInvalidSigma = errors.New("window: gaussian sigma must be finite and > 0")

func validateSigma(sigma float64) error {
	if sigma <= 0 || math.IsNaN(sigma) || math.IsInf(sigma, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidSigma, sigma)
	}

	return nil
}
