package core

import (
	"errors"
	"path/filepath"
	"strings"
)

// ExportResult is a converted file ready for download.
type ExportResult struct {
	Data     []byte
	FileName string
	MIME     string
	Format   Format
}

// OutputName replaces the extension of the original file name with the
// target format's extension: "report.xlsx" -> "report.csv".
func OutputName(original string, f Format) string {
	return strings.TrimSuffix(original, filepath.Ext(original)) + f.Ext
}

// Export serializes t in format f. On failure it returns an *ExportError and
// no partial result.
func Export(t *Table, f Format, originalName string) (*ExportResult, error) {
	if f.Encode == nil {
		return nil, &ExportError{FileName: originalName, Format: f.Label, Err: errors.New("format cannot be written")}
	}

	data, err := f.Encode(t)
	if err != nil {
		return nil, &ExportError{FileName: originalName, Format: f.Label, Err: err}
	}

	return &ExportResult{
		Data:     data,
		FileName: OutputName(originalName, f),
		MIME:     f.MIME,
		Format:   f,
	}, nil
}
