package report

import (
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// SheetWriter is a Renderable that can be exported as a workbook.
type SheetWriter interface {
	Tables() []*Table
}

// WriteXLSX writes one worksheet per table of sw.
func WriteXLSX(w io.Writer, sw SheetWriter) error {
	f := excelize.NewFile()
	defer f.Close()

	tables := sw.Tables()
	first := f.GetSheetName(0)
	for i, t := range tables {
		name := sheetName(t.Title)
		if i == 0 {
			if err := f.SetSheetName(first, name); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return err
		}

		if err := f.SetSheetRow(name, "A1", &t.Headers); err != nil {
			return err
		}
		for r, row := range t.Rows {
			cell, err := excelize.CoordinatesToCellName(1, r+2)
			if err != nil {
				return err
			}
			values := cellValues(row)
			if err := f.SetSheetRow(name, cell, &values); err != nil {
				return err
			}
		}
	}

	_, err := f.WriteTo(w)
	return err
}

// sheetName truncates a title to the 31 characters a worksheet name allows
func sheetName(title string) string {
	if len(title) > 31 {
		return title[:31]
	}
	return title
}

// cellValues converts numeric cells to float64
func cellValues(row []string) []any {
	values := make([]any, len(row))
	for i, cell := range row {
		if v, err := strconv.ParseFloat(cell, 64); err == nil {
			values[i] = v
		} else {
			values[i] = cell
		}
	}
	return values
}
