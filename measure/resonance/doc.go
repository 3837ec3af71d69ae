// Package resonance runs the complete resonance analysis of one spectrum:
// peak location, derivative analysis, boundary resolution, integration and
// ranking.
//
// Each call is self contained. Nothing computed for one spectrum is reused
// for the next, so changing the threshold, the abundance distribution or
// the flight length simply means calling [Analyze] or [AnalyzeBlend] again.
package resonance
