package core

// table.go defines the in-memory tabular model shared by the loader, the
// cleaning operations, the projector and the exporter.
//
// A Table is an ordered list of uniquely named columns. Every column holds the
// same number of cells. Cells are numeric, text, or missing.

import (
	"errors"
	"fmt"
	"strconv"
)

// CellKind identifies what a Cell holds.
type CellKind uint8

const (
	CellMissing CellKind = iota
	CellNumber
	CellText
)

// Cell is a single table value.
type Cell struct {
	Kind CellKind
	Num  float64
	Text string
}

// MissingCell returns a cell with no value.
func MissingCell() Cell { return Cell{Kind: CellMissing} }

// NumberCell returns a numeric cell.
func NumberCell(f float64) Cell { return Cell{Kind: CellNumber, Num: f} }

// TextCell returns a text cell.
func TextCell(s string) Cell { return Cell{Kind: CellText, Text: s} }

// IsMissing reports whether the cell has no value.
func (c Cell) IsMissing() bool { return c.Kind == CellMissing }

// String formats the cell for display and text export.
// Missing cells render as the empty string.
func (c Cell) String() string {
	switch c.Kind {
	case CellNumber:
		return formatNumber(c.Num)
	case CellText:
		return c.Text
	default:
		return ""
	}
}

// Equal reports whether two cells hold the same value.
// Two missing cells are equal.
func (c Cell) Equal(o Cell) bool {
	if c.Kind != o.Kind {
		return false
	}
	switch c.Kind {
	case CellNumber:
		return c.Num == o.Num
	case CellText:
		return c.Text == o.Text
	default:
		return true
	}
}

// ColumnType is the declared type of a column.
type ColumnType int

const (
	ColumnText ColumnType = iota
	ColumnNumeric
)

func (t ColumnType) String() string {
	if t == ColumnNumeric {
		return "numeric"
	}
	return "text"
}

// Column is a named, typed sequence of cells.
type Column struct {
	Name  string
	Type  ColumnType
	Cells []Cell
}

// MissingCount returns the number of missing cells in the column.
func (c Column) MissingCount() int {
	n := 0
	for _, cell := range c.Cells {
		if cell.IsMissing() {
			n++
		}
	}
	return n
}

func (c Column) clone() Column {
	cells := make([]Cell, len(c.Cells))
	copy(cells, c.Cells)
	return Column{Name: c.Name, Type: c.Type, Cells: cells}
}

// ErrDuplicateColumn is returned when a table would contain two columns with the same name.
var ErrDuplicateColumn = errors.New("duplicate column name")

// ErrRaggedColumns is returned when columns of a table differ in length.
var ErrRaggedColumns = errors.New("columns have different row counts")

// Table is an ordered set of uniquely named columns of equal length.
type Table struct {
	columns []Column
	index   map[string]int
	rows    int
}

// NewTable builds a table from columns, enforcing unique names and equal lengths.
func NewTable(columns []Column) (*Table, error) {
	t := &Table{
		columns: columns,
		index:   make(map[string]int, len(columns)),
	}
	for i, col := range columns {
		if _, exists := t.index[col.Name]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, col.Name)
		}
		t.index[col.Name] = i
		if i == 0 {
			t.rows = len(col.Cells)
		} else if len(col.Cells) != t.rows {
			return nil, fmt.Errorf("%w: %q has %d, expected %d", ErrRaggedColumns, col.Name, len(col.Cells), t.rows)
		}
	}
	return t, nil
}

// MustTable is NewTable that panics on error. Intended for tests and literals.
func MustTable(columns ...Column) *Table {
	t, err := NewTable(columns)
	if err != nil {
		panic(err)
	}
	return t
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int { return t.rows }

// NumCols returns the number of columns.
func (t *Table) NumCols() int { return len(t.columns) }

// Names returns the column names in order.
func (t *Table) Names() []string {
	names := make([]string, len(t.columns))
	for i, col := range t.columns {
		names[i] = col.Name
	}
	return names
}

// Columns returns the table's columns. Callers must not modify the cells.
func (t *Table) Columns() []Column { return t.columns }

// Column looks up a column by name.
func (t *Table) Column(name string) (Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return Column{}, false
	}
	return t.columns[i], true
}

// Row returns a copy of row i across all columns.
func (t *Table) Row(i int) []Cell {
	row := make([]Cell, len(t.columns))
	for c, col := range t.columns {
		row[c] = col.Cells[i]
	}
	return row
}

// NumericColumns returns the numeric columns in table order.
func (t *Table) NumericColumns() []Column {
	var out []Column
	for _, col := range t.columns {
		if col.Type == ColumnNumeric {
			out = append(out, col)
		}
	}
	return out
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	cols := make([]Column, len(t.columns))
	for i, col := range t.columns {
		cols[i] = col.clone()
	}
	return &Table{columns: cols, index: cloneIndex(t.index), rows: t.rows}
}

// Head returns a copy of the first n rows.
func (t *Table) Head(n int) *Table {
	if n > t.rows {
		n = t.rows
	}
	if n < 0 {
		n = 0
	}
	keep := make([]int, n)
	for i := range keep {
		keep[i] = i
	}
	return t.keepRows(keep)
}

// Equal reports whether both tables have the same columns (name, type, order)
// and the same cell values.
func (t *Table) Equal(o *Table) bool {
	if t.rows != o.rows || len(t.columns) != len(o.columns) {
		return false
	}
	for i, col := range t.columns {
		other := o.columns[i]
		if col.Name != other.Name || col.Type != other.Type {
			return false
		}
		for r := range col.Cells {
			if !col.Cells[r].Equal(other.Cells[r]) {
				return false
			}
		}
	}
	return true
}

// keepRows returns a new table holding only the given row indexes, in order.
func (t *Table) keepRows(rows []int) *Table {
	cols := make([]Column, len(t.columns))
	for i, col := range t.columns {
		cells := make([]Cell, len(rows))
		for j, r := range rows {
			cells[j] = col.Cells[r]
		}
		cols[i] = Column{Name: col.Name, Type: col.Type, Cells: cells}
	}
	return &Table{columns: cols, index: cloneIndex(t.index), rows: len(rows)}
}

func cloneIndex(idx map[string]int) map[string]int {
	out := make(map[string]int, len(idx))
	for k, v := range idx {
		out[k] = v
	}
	return out
}

// formatNumber renders a float without trailing zeros or exponent noise.
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
