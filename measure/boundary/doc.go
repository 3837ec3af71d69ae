// Package boundary resolves the left and right integration limits of each
// located resonance from the first derivative of the smoothed spectrum.
//
// For every peak a symmetric search window is cut from the derivative,
// bounded by [Config.MaxSearchRange], the neighbouring peaks and the series
// edges. A consensus estimate of the background ("outer") slope is obtained
// by box fitting ([OuterSlope]). Each flank is then walked outward from the
// peak: the walk locks once the slope magnitude stops growing and ends at the
// first sample whose slope has fallen back to the outer slope, either by
// crossing it or by coming within [Config.SlopeDropRatio] of it relative to
// the steepest slope seen. A flank that never locks leaves the peak
// unresolved.
package boundary
