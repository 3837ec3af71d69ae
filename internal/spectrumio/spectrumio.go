// Package spectrumio reads two-column spectrum files and reads and writes
// the peak-limit interchange file.
//
// Both formats are plain text with one row per line and two numeric columns
// separated by whitespace or a comma. Blank lines and lines starting with
// '#' are skipped.
package spectrumio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-resonance/dsp/series"
	"github.com/cwbudde/algo-resonance/measure/boundary"
)

// ErrMalformedRow is returned for rows that do not hold two numbers.
var ErrMalformedRow = errors.New("spectrumio: malformed row")

// ReadSeries parses a two-column (x, y) table into a series. Rows need not
// be sorted; duplicate x values are rejected.
func ReadSeries(r io.Reader, domain series.Domain) (series.Series, error) {
	var pts []series.Point

	err := scanPairs(r, func(a, b float64) {
		pts = append(pts, series.Point{X: a, Y: b})
	})
	if err != nil {
		return series.Series{}, err
	}

	s, err := series.FromPoints(pts, domain)
	if err != nil {
		return series.Series{}, fmt.Errorf("spectrumio: %w", err)
	}

	return s, nil
}

// ReadSeriesFile opens path and calls ReadSeries.
func ReadSeriesFile(path string, domain series.Domain) (series.Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return series.Series{}, fmt.Errorf("spectrumio: %w", err)
	}
	defer f.Close()

	s, err := ReadSeries(f, domain)
	if err != nil {
		return series.Series{}, fmt.Errorf("%s: %w", path, err)
	}

	return s, nil
}

// ReadLimits parses a (leftX, rightX) table, keeping row order.
func ReadLimits(r io.Reader) ([]boundary.Limit, error) {
	var out []boundary.Limit

	err := scanPairs(r, func(a, b float64) {
		out = append(out, boundary.Limit{Left: a, Right: b})
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// ReadLimitsFile opens path and calls ReadLimits. A missing file yields
// os.ErrNotExist so callers can fall back to resolving boundaries.
func ReadLimitsFile(path string) ([]boundary.Limit, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("spectrumio: %w", err)
	}
	defer f.Close()

	return ReadLimits(f)
}

// WriteLimits writes one tab-separated (leftX, rightX) row per limit.
func WriteLimits(w io.Writer, limits []boundary.Limit) error {
	bw := bufio.NewWriter(w)

	for _, l := range limits {
		if _, err := fmt.Fprintf(bw, "%s\t%s\n", formatFloat(l.Left), formatFloat(l.Right)); err != nil {
			return fmt.Errorf("spectrumio: write limits: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("spectrumio: write limits: %w", err)
	}

	return nil
}

// WriteLimitsFile creates path and calls WriteLimits.
func WriteLimitsFile(path string, limits []boundary.Limit) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("spectrumio: %w", err)
	}

	if err := WriteLimits(f, limits); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

// WriteSeries writes s as a tab-separated two-column table.
func WriteSeries(w io.Writer, s series.Series) error {
	bw := bufio.NewWriter(w)
	x, y := s.X(), s.Y()

	if _, err := fmt.Fprintf(bw, "# %s\tvalue\n", s.Domain()); err != nil {
		return fmt.Errorf("spectrumio: write series: %w", err)
	}

	for i := range x {
		if _, err := fmt.Fprintf(bw, "%s\t%s\n", formatFloat(x[i]), formatFloat(y[i])); err != nil {
			return fmt.Errorf("spectrumio: write series: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("spectrumio: write series: %w", err)
	}

	return nil
}

func scanPairs(r io.Reader, emit func(a, b float64)) error {
	sc := bufio.NewScanner(r)
	lineNum := 0

	for sc.Scan() {
		lineNum++
		line := strings.TrimSpace(sc.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(strings.ReplaceAll(line, ",", " "))
		if len(fields) < 2 {
			return fmt.Errorf("%w: line %d: %q", ErrMalformedRow, lineNum, line)
		}

		a, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return fmt.Errorf("%w: line %d: %w", ErrMalformedRow, lineNum, err)
		}

		b, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return fmt.Errorf("%w: line %d: %w", ErrMalformedRow, lineNum, err)
		}

		emit(a, b)
	}

	if err := sc.Err(); err != nil {
		return fmt.Errorf("spectrumio: %w", err)
	}

	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
