package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/cwbudde/algo-resonance/measure/rank"
)

// DefaultSheet is the worksheet name used when none is given.
const DefaultSheet = "Peaks"

// WriteXLSX saves rows as a single-sheet workbook at path.
func WriteXLSX(path, sheet string, rows []rank.Row) error {
	if sheet == "" {
		sheet = DefaultSheet
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("export: xlsx sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return fmt.Errorf("export: xlsx stream: %w", err)
	}

	header := make([]any, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}

	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("export: xlsx header: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("export: xlsx row %d: %w", i, err)
		}

		if err := sw.SetRow(cell, values(row)); err != nil {
			return fmt.Errorf("export: xlsx row %d: %w", i, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("export: xlsx flush: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("export: xlsx save: %w", err)
	}

	return nil
}
