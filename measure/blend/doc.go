// Package blend composes the spectrum of a natural element from the spectra
// of its isotopes, each weighted by its abundance fraction.
//
// The contributors need not share a sampling grid. The composed grid keeps
// every local extremum of every active contributor, so no resonance is lost
// to resampling, plus an evenly spaced subsample of each contributor. Values
// outside a contributor's range hold its edge value.
package blend
