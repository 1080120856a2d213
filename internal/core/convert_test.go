package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ----------------------------------------------------------------------------
// ParseNumber Tests
// ----------------------------------------------------------------------------

func TestParseNumber(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		loose  bool
		want   float64
		wantOK bool
	}{
		// Plain numbers parse in either mode
		{name: "integer", input: "123", want: 123, wantOK: true},
		{name: "negative decimal", input: "-456.78", want: -456.78, wantOK: true},
		{name: "leading decimal point", input: ".99", want: 0.99, wantOK: true},
		{name: "exponent", input: "1.5e3", want: 1500, wantOK: true},
		{name: "surrounding whitespace", input: "  42  ", want: 42, wantOK: true},

		// Strict mode rejects formatted numbers
		{name: "strict dollar", input: "$1,234.56", wantOK: false},
		{name: "strict accounting", input: "(12.50)", wantOK: false},
		{name: "strict thousands", input: "1,000", wantOK: false},

		// Loose mode accepts them
		{name: "loose dollar", input: "$1,234.56", loose: true, want: 1234.56, wantOK: true},
		{name: "loose euro", input: "€1234.56", loose: true, want: 1234.56, wantOK: true},
		{name: "loose pound", input: "£99", loose: true, want: 99, wantOK: true},
		{name: "loose accounting negative", input: "(123.45)", loose: true, want: -123.45, wantOK: true},
		{name: "loose accounting currency", input: "($1,000.00)", loose: true, want: -1000, wantOK: true},

		// Never numbers
		{name: "empty", input: "", loose: true, wantOK: false},
		{name: "word", input: "abc", loose: true, wantOK: false},
		{name: "two points", input: "1.2.3", loose: true, wantOK: false},
		{name: "lone dollar", input: "$", loose: true, wantOK: false},

		// Non-finite values are not numbers
		{name: "inf", input: "inf", wantOK: false},
		{name: "negative infinity", input: "-Infinity", loose: true, wantOK: false},
		{name: "upper NAN", input: "NAN", wantOK: false},
		{name: "overflow", input: "1e400", loose: true, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseNumber(tt.input, ParseOptions{LooseNumbers: tt.loose})
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestIsMissingValue(t *testing.T) {
	for _, s := range []string{"", "  ", "NA", "N/A", "null", "NULL", "NaN", "nan", "None", "#N/A", "<NA>"} {
		assert.True(t, IsMissingValue(s), "%q should be missing", s)
	}
	for _, s := range []string{"0", "none", "missing", "-", "n.a."} {
		assert.False(t, IsMissingValue(s), "%q should not be missing", s)
	}
}

// ----------------------------------------------------------------------------
// TableFromRecords Tests
// ----------------------------------------------------------------------------

func TestTableFromRecords_InfersTypes(t *testing.T) {
	header := []string{"id", "name", "score", "empty"}
	records := [][]string{
		{"1", "Ann", "10", ""},
		{"2", "Bob", "NA", ""},
		{"3", "", "20.5", ""},
	}

	tbl, err := TableFromRecords(header, records, ParseOptions{})
	require.NoError(t, err)
	assert.Equal(t, 3, tbl.NumRows())
	assert.Equal(t, header, tbl.Names())

	id, _ := tbl.Column("id")
	assert.Equal(t, ColumnNumeric, id.Type)

	name, _ := tbl.Column("name")
	assert.Equal(t, ColumnText, name.Type)
	assert.True(t, name.Cells[2].IsMissing())

	score, _ := tbl.Column("score")
	assert.Equal(t, ColumnNumeric, score.Type)
	assert.Equal(t, 1, score.MissingCount())
	assert.Equal(t, 20.5, score.Cells[2].Num)

	empty, _ := tbl.Column("empty")
	assert.Equal(t, ColumnNumeric, empty.Type, "all-missing column is numeric")
	assert.Equal(t, 3, empty.MissingCount())
}

func TestTableFromRecords_MixedColumnKeepsRawText(t *testing.T) {
	tbl, err := TableFromRecords([]string{"v"}, [][]string{{"1"}, {"x"}, {"2.50"}}, ParseOptions{})
	require.NoError(t, err)

	col, _ := tbl.Column("v")
	assert.Equal(t, ColumnText, col.Type)
	assert.Equal(t, []Cell{TextCell("1"), TextCell("x"), TextCell("2.50")}, col.Cells)
}

func TestTableFromRecords_NonFiniteIsText(t *testing.T) {
	tbl, err := TableFromRecords([]string{"a", "b"}, [][]string{{"1", "NAN"}, {"inf", "3"}}, ParseOptions{})
	require.NoError(t, err)

	a, _ := tbl.Column("a")
	assert.Equal(t, ColumnText, a.Type)
	assert.Equal(t, TextCell("inf"), a.Cells[1])

	b, _ := tbl.Column("b")
	assert.Equal(t, ColumnText, b.Type)
	assert.Equal(t, TextCell("NAN"), b.Cells[0])
}

func TestTableFromRecords_LooseNumbers(t *testing.T) {
	records := [][]string{{"$1,000"}, {"(250)"}}

	strict, err := TableFromRecords([]string{"amount"}, records, ParseOptions{})
	require.NoError(t, err)
	col, _ := strict.Column("amount")
	assert.Equal(t, ColumnText, col.Type)

	loose, err := TableFromRecords([]string{"amount"}, records, ParseOptions{LooseNumbers: true})
	require.NoError(t, err)
	col, _ = loose.Column("amount")
	assert.Equal(t, ColumnNumeric, col.Type)
	assert.Equal(t, []Cell{NumberCell(1000), NumberCell(-250)}, col.Cells)
}

func TestTableFromRecords_ShortRowsPadded(t *testing.T) {
	tbl, err := TableFromRecords([]string{"a", "b"}, [][]string{{"1"}, {"2", "3"}}, ParseOptions{})
	require.NoError(t, err)

	b, _ := tbl.Column("b")
	assert.True(t, b.Cells[0].IsMissing())
	assert.Equal(t, NumberCell(3), b.Cells[1])
}

func TestTableFromRecords_LongRowRejected(t *testing.T) {
	_, err := TableFromRecords([]string{"a"}, [][]string{{"1"}, {"2", "3"}}, ParseOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 3")
}

func TestTableFromRecords_HeaderNames(t *testing.T) {
	tests := []struct {
		name   string
		header []string
		want   []string
	}{
		{"unchanged", []string{"a", "b"}, []string{"a", "b"}},
		{"blank header", []string{"a", "", "c"}, []string{"a", "Unnamed: 1", "c"}},
		{"duplicates", []string{"x", "x", "x"}, []string{"x", "x.1", "x.2"}},
		{"trimmed", []string{" a ", "b"}, []string{"a", "b"}},
		{"suffix collision", []string{"x", "x.1", "x"}, []string{"x", "x.1", "x.2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := TableFromRecords(tt.header, nil, ParseOptions{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, tbl.Names())
			assert.Equal(t, 0, tbl.NumRows())
		})
	}
}
