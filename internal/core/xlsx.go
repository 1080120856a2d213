package core

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// excelSheetName is the sheet written by encodeXLSX.
const excelSheetName = "Sheet1"

// decodeXLSX reads the first worksheet with its first row as header.
// Raw cell values are used so numbers keep full precision instead of the
// display format applied in the workbook.
func decodeXLSX(data []byte, opts ParseOptions) (*Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyFile
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}

	// GetRows trims trailing empty cells, so the header may be narrower than
	// the data. Widen it; blank names become "Unnamed: N".
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	header := make([]string, width)
	copy(header, rows[0])

	return TableFromRecords(header, rows[1:], opts)
}

// encodeXLSX writes the table to a single-sheet workbook with a header row
// and no index column. Missing cells are left empty.
func encodeXLSX(t *Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sw, err := f.NewStreamWriter(excelSheetName)
	if err != nil {
		return nil, err
	}

	header := make([]interface{}, t.NumCols())
	for i, name := range t.Names() {
		header[i] = name
	}
	if err := sw.SetRow("A1", header); err != nil {
		return nil, err
	}

	for r := 0; r < t.NumRows(); r++ {
		values := make([]interface{}, t.NumCols())
		for c, col := range t.Columns() {
			switch cell := col.Cells[r]; cell.Kind {
			case CellNumber:
				values[c] = cell.Num
			case CellText:
				values[c] = cell.Text
			default:
				values[c] = nil
			}
		}
		axis, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return nil, err
		}
		if err := sw.SetRow(axis, values); err != nil {
			return nil, err
		}
	}

	if err := sw.Flush(); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
