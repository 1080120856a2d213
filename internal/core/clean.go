package core

import (
	"math"
	"strconv"
	"strings"
)

// RemoveDuplicates returns a table without rows that exactly repeat an
// earlier row. First occurrences are kept in their original order.
// Missing cells compare equal to each other.
func RemoveDuplicates(t *Table) *Table {
	keep := uniqueRowIndexes(t)
	if len(keep) == t.NumRows() {
		return t.Clone()
	}
	return t.keepRows(keep)
}

// DuplicateCount returns how many rows RemoveDuplicates would drop.
func DuplicateCount(t *Table) int {
	return t.NumRows() - len(uniqueRowIndexes(t))
}

func uniqueRowIndexes(t *Table) []int {
	seen := make(map[string]struct{}, t.NumRows())
	keep := make([]int, 0, t.NumRows())
	var b strings.Builder
	for r := 0; r < t.NumRows(); r++ {
		b.Reset()
		for _, col := range t.Columns() {
			writeCellKey(&b, col.Cells[r])
		}
		key := b.String()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		keep = append(keep, r)
	}
	return keep
}

// writeCellKey appends an unambiguous encoding of a cell: a kind tag, the
// value's length, and the value.
func writeCellKey(b *strings.Builder, c Cell) {
	var v string
	switch c.Kind {
	case CellNumber:
		b.WriteByte('n')
		v = strconv.FormatFloat(c.Num, 'g', -1, 64)
	case CellText:
		b.WriteByte('t')
		v = c.Text
	default:
		b.WriteByte('m')
	}
	b.WriteString(strconv.Itoa(len(v)))
	b.WriteByte(':')
	b.WriteString(v)
}

// FillMissingNumeric returns a table where missing cells of numeric columns
// are replaced by the mean of that column's present values. Text columns are
// untouched. A numeric column with no present values stays missing.
func FillMissingNumeric(t *Table) *Table {
	out := t.Clone()
	for i := range out.columns {
		col := &out.columns[i]
		if col.Type != ColumnNumeric {
			continue
		}
		mean, ok := columnMean(*col)
		if !ok {
			continue
		}
		for r, cell := range col.Cells {
			if cell.IsMissing() {
				col.Cells[r] = NumberCell(mean)
			}
		}
	}
	return out
}

// columnMean returns the mean of the present numeric cells.
// Returns false when the column has none.
// The running form keeps the mean finite for values near the float64 limits.
func columnMean(col Column) (float64, bool) {
	var mean float64
	n := 0
	for _, cell := range col.Cells {
		if cell.Kind == CellNumber {
			n++
			mean += (cell.Num - mean) / float64(n)
		}
	}
	if n == 0 {
		return math.NaN(), false
	}
	return mean, true
}
