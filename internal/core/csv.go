package core

// csv.go decodes and encodes comma-separated text.
//
// Input is held in memory in full: a UTF-8 BOM is stripped and invalid UTF-8
// is replaced before parsing, so Windows exports and Latin-1 stragglers load
// instead of failing the whole file.

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"unicode/utf8"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// sanitizeText strips a leading BOM and replaces invalid UTF-8 sequences.
func sanitizeText(data []byte) []byte {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return data
	}
	return bytes.ToValidUTF8(data, []byte("�"))
}

// decodeCSV parses CSV bytes with the first record as header.
func decodeCSV(data []byte, opts ParseOptions) (*Table, error) {
	r := csv.NewReader(bytes.NewReader(sanitizeText(data)))
	// Row width is checked against the header in TableFromRecords.
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, err
	}

	var records [][]string
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return TableFromRecords(header, records, opts)
}

// encodeCSV writes the table with a header row and no index column.
// Missing cells are written as empty fields.
func encodeCSV(t *Table) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(t.Names()); err != nil {
		return nil, err
	}

	record := make([]string, t.NumCols())
	for r := 0; r < t.NumRows(); r++ {
		for c, col := range t.Columns() {
			record[c] = col.Cells[r].String()
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
