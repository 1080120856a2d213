package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoveDuplicates(t *testing.T) {
	tests := []struct {
		name  string
		input *Table
		want  *Table
	}{
		{
			name:  "drops later exact repeats",
			input: MustTable(numCol("a", 1, 1, 2), textCol("b", "A", "A", "B")),
			want:  MustTable(numCol("a", 1, 2), textCol("b", "A", "B")),
		},
		{
			name:  "keeps first occurrence order",
			input: MustTable(numCol("a", 3, 1, 3, 2, 1)),
			want:  MustTable(numCol("a", 3, 1, 2)),
		},
		{
			name:  "missing cells compare equal",
			input: MustTable(numCol("a", nil, nil), textCol("b", "x", "x")),
			want:  MustTable(numCol("a", nil), textCol("b", "x")),
		},
		{
			name:  "rows differing in one column are kept",
			input: MustTable(numCol("a", 1, 1), textCol("b", "x", "y")),
			want:  MustTable(numCol("a", 1, 1), textCol("b", "x", "y")),
		},
		{
			name:  "no rows",
			input: MustTable(numCol("a")),
			want:  MustTable(numCol("a")),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RemoveDuplicates(tt.input)
			assert.True(t, tt.want.Equal(got), "got %v", got.Names())
			assert.Equal(t, tt.want.NumRows(), got.NumRows())
		})
	}
}

func TestRemoveDuplicates_Idempotent(t *testing.T) {
	tbl := MustTable(numCol("a", 1, 1, 2, 2, nil, nil))
	once := RemoveDuplicates(tbl)
	twice := RemoveDuplicates(once)

	assert.True(t, once.Equal(twice))
	assert.Equal(t, 0, DuplicateCount(once))
	assert.Equal(t, 3, DuplicateCount(tbl))
}

func TestRemoveDuplicates_TextVersusNumber(t *testing.T) {
	// A number and a text cell with the same rendering are distinct values.
	tbl := MustTable(
		Column{Name: "v", Type: ColumnText, Cells: []Cell{NumberCell(1), TextCell("1")}},
	)
	assert.Equal(t, 2, RemoveDuplicates(tbl).NumRows())
}

func TestRemoveDuplicates_DoesNotModifyInput(t *testing.T) {
	tbl := MustTable(numCol("a", 1, 1))
	RemoveDuplicates(tbl)
	assert.Equal(t, 2, tbl.NumRows())
}

func TestFillMissingNumeric(t *testing.T) {
	tbl := MustTable(numCol("a", 10, nil, 20), textCol("b", "x", "", "y"))

	got := FillMissingNumeric(tbl)

	a, _ := got.Column("a")
	assert.Equal(t, []Cell{NumberCell(10), NumberCell(15), NumberCell(20)}, a.Cells)

	b, _ := got.Column("b")
	assert.True(t, b.Cells[1].IsMissing(), "text columns are untouched")

	orig, _ := tbl.Column("a")
	assert.True(t, orig.Cells[1].IsMissing(), "input is not modified")
}

func TestFillMissingNumeric_AllMissingStaysMissing(t *testing.T) {
	tbl := MustTable(numCol("a", nil, nil), numCol("b", 1, nil))

	got := FillMissingNumeric(tbl)

	a, _ := got.Column("a")
	assert.Equal(t, 2, a.MissingCount())
	b, _ := got.Column("b")
	assert.Equal(t, 0, b.MissingCount())
	assert.Equal(t, NumberCell(1), b.Cells[1])
}

func TestFillMissingNumeric_NoMissingUnchanged(t *testing.T) {
	tbl := MustTable(numCol("a", 1.5, 2.5))
	assert.True(t, tbl.Equal(FillMissingNumeric(tbl)))
}

func TestFillMissingNumeric_Idempotent(t *testing.T) {
	tbl := MustTable(numCol("a", 1, nil, 4))
	once := FillMissingNumeric(tbl)
	assert.True(t, once.Equal(FillMissingNumeric(once)))
}

func TestFillMissingNumeric_LargeValuesStayFinite(t *testing.T) {
	tbl := MustTable(numCol("a", math.MaxFloat64, nil, math.MaxFloat64))

	a, _ := FillMissingNumeric(tbl).Column("a")
	assert.Equal(t, NumberCell(math.MaxFloat64), a.Cells[1])
}
