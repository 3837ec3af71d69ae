// Package interp provides piecewise-linear interpolation on non-uniform,
// strictly ascending sample grids.
//
// Outside the sampled range the nearest edge value is held, which matches
// the behaviour expected when resampling cross-section tables onto a wider
// shared grid:
//
//   - [Linear]:     evaluate one query point
//   - [LinearGrid]: evaluate a sorted batch of query points in one pass
package interp
