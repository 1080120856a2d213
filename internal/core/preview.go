package core

import "fmt"

// PreviewRows is how many leading rows a preview shows.
const PreviewRows = 5

// ColumnSummary describes one column in a preview.
type ColumnSummary struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Missing int    `json:"missing"`
}

// Preview is the read-only overview shown for each loaded file.
type Preview struct {
	FileName   string          `json:"fileName"`
	Size       string          `json:"size"`
	TotalRows  int             `json:"totalRows"`
	Columns    []ColumnSummary `json:"columns"`
	Header     []string        `json:"header"`
	Head       [][]string      `json:"head"`
	Duplicates int             `json:"duplicates"`
}

// BuildPreview summarizes t for display.
func BuildPreview(file UploadedFile, t *Table) Preview {
	p := Preview{
		FileName:   file.Name,
		Size:       fmt.Sprintf("%.2f KB", file.SizeKB()),
		TotalRows:  t.NumRows(),
		Header:     t.Names(),
		Duplicates: DuplicateCount(t),
	}

	for _, col := range t.Columns() {
		p.Columns = append(p.Columns, ColumnSummary{
			Name:    col.Name,
			Type:    col.Type.String(),
			Missing: col.MissingCount(),
		})
	}

	head := t.Head(PreviewRows)
	for r := 0; r < head.NumRows(); r++ {
		row := make([]string, head.NumCols())
		for c, cell := range head.Row(r) {
			row[c] = cell.String()
		}
		p.Head = append(p.Head, row)
	}

	return p
}
