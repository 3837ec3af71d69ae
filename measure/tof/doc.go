// Package tof converts between neutron kinetic energy and time of flight
// over a fixed flight path.
//
// For a flight length L in metres and an energy E in eV the flight time in
// microseconds is
//
//	t = L * 1e6 * sqrt(m_n / (2 * E * e))
//
// with the CODATA neutron mass m_n and elementary charge e. Flight lengths
// depend on the beamline detector; [DefaultFlightLengths] lists the two
// standard stations.
package tof
