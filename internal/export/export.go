// Package export writes peak tables to CSV, XLSX workbooks and SQLite
// databases.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/cwbudde/algo-resonance/measure/rank"
)

// Columns is the header shared by every output format.
var Columns = []string{
	"IntegralRank", "X", "EnergyRank", "TOF", "Integral",
	"Width", "WidthRank", "Height", "HeightRank", "Origin",
}

// values returns the cells of one row. NoPeakData rows carry X, Height and
// the label; the remaining cells are nil.
func values(row rank.Row) []any {
	switch r := row.(type) {
	case rank.Resolved:
		return []any{
			r.IntegralRank, r.X, r.EnergyRank, r.TOF, r.Integral,
			r.Width, r.WidthRank, r.Height, r.HeightRank, r.Origin,
		}
	case rank.NoPeakData:
		return []any{nil, r.X, nil, nil, nil, nil, nil, r.Height, nil, r.Label}
	default:
		return make([]any, len(Columns))
	}
}

func cellString(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case int:
		return strconv.Itoa(v)
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// WriteCSV writes a header line and one record per row.
func WriteCSV(w io.Writer, rows []rank.Row) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("export: csv header: %w", err)
	}

	record := make([]string, len(Columns))

	for i, row := range rows {
		for j, v := range values(row) {
			record[j] = cellString(v)
		}

		if err := cw.Write(record); err != nil {
			return fmt.Errorf("export: csv row %d: %w", i, err)
		}
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return fmt.Errorf("export: csv: %w", err)
	}

	return nil
}
