// Package integral computes resonance areas between boundary limits.
//
// Areas are evaluated on the samples strictly inside the limits plus the
// linearly interpolated values at the limits themselves, so the result does
// not depend on whether a limit falls on a sample. Composite Simpson is the
// default rule; windows with fewer than three points fall back to the
// trapezoidal rule.
package integral
