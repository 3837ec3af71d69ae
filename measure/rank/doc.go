// Package rank orders resolved resonances by integral, width and height and
// assembles the reportable peak table.
//
// Ranks are 0-based with 0 for the largest value; equal values keep their
// detection order. Peaks without a resolved boundary take no part in the
// ranking and appear in the table as [NoPeakData] rows.
package rank
