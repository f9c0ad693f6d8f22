package export

import (
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/roamerv/dealer-backend/internal/errs"
)

const defaultSheet = "Sheet1"

// Column width bounds, in Excel character units.
const (
	minColumnWidth = 10.0
	maxColumnWidth = 48.0
)

// WriteXLSX encodes the table as a single-sheet workbook. Column widths
// are sized from the header text, bounded so short headers still get a
// readable column and long ones do not blow the sheet out.
func WriteXLSX(w io.Writer, sheetName string, t Table) error {
	f := excelize.NewFile()
	defer f.Close()

	if sheetName == "" {
		sheetName = defaultSheet
	}
	if sheetName != defaultSheet {
		if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
			return errs.NewValidationError("failed to name sheet: " + err.Error())
		}
	}

	header := make([]any, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c

		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return errs.NewValidationError("failed to resolve column name: " + err.Error())
		}
		width := float64(len(c)) + 4
		if width < minColumnWidth {
			width = minColumnWidth
		}
		if width > maxColumnWidth {
			width = maxColumnWidth
		}
		if err := f.SetColWidth(sheetName, col, col, width); err != nil {
			return errs.NewValidationError("failed to size column: " + err.Error())
		}
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return errs.NewValidationError("failed to write header row: " + err.Error())
	}

	for i, row := range t.Rows {
		cells := make([]any, len(t.Columns))
		for j := range cells {
			if j < len(row) {
				cells[j] = Stringify(row[j])
			} else {
				cells[j] = ""
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errs.NewValidationError("failed to resolve cell name: " + err.Error())
		}
		if err := f.SetSheetRow(sheetName, cell, &cells); err != nil {
			return errs.NewValidationError("failed to write row: " + err.Error())
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return errs.NewValidationError("failed to write workbook: " + err.Error())
	}
	return nil
}
