package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// xlsxFixture builds a workbook whose first sheet holds rows.
func xlsxFixture(t *testing.T, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		axis, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", axis, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestLoad_CSV(t *testing.T) {
	file := NewUploadedFile("people.csv", []byte("\xEF\xBB\xBFname,age\nAnn,30\nBob,\n"))

	tbl, format, err := Load(file, ParseOptions{})
	require.NoError(t, err)
	assert.Equal(t, "csv", format.Key)
	assert.Equal(t, []string{"name", "age"}, tbl.Names(), "BOM is stripped from the first header")

	age, _ := tbl.Column("age")
	assert.Equal(t, ColumnNumeric, age.Type)
	assert.True(t, age.Cells[1].IsMissing())
}

func TestLoad_CSVInvalidUTF8(t *testing.T) {
	file := NewUploadedFile("latin.csv", []byte("city\nM\xfcnchen\n"))

	tbl, _, err := Load(file, ParseOptions{})
	require.NoError(t, err)
	city, _ := tbl.Column("city")
	assert.Equal(t, "M�nchen", city.Cells[0].Text)
}

func TestLoad_XLSX(t *testing.T) {
	data := xlsxFixture(t, [][]any{
		{"id", "label", "amount"},
		{1, "a", 1.5},
		{2, "b", nil},
	})

	tbl, format, err := Load(NewUploadedFile("book.xlsx", data), ParseOptions{})
	require.NoError(t, err)
	assert.Equal(t, "excel", format.Key)
	assert.Equal(t, 2, tbl.NumRows())

	amount, _ := tbl.Column("amount")
	assert.Equal(t, ColumnNumeric, amount.Type)
	assert.Equal(t, NumberCell(1.5), amount.Cells[0])
	assert.True(t, amount.Cells[1].IsMissing())
}

func TestLoad_UnsupportedFormat(t *testing.T) {
	tests := []string{"notes.txt", "data.CSV", "book.xls", "noext"}
	for _, name := range tests {
		t.Run(name, func(t *testing.T) {
			_, _, err := Load(NewUploadedFile(name, []byte("a\n1\n")), ParseOptions{})
			assert.ErrorIs(t, err, ErrUnsupportedFormat)
			assert.Equal(t, "FILE002", MapError(err).Code)
		})
	}
}

func TestLoad_Malformed(t *testing.T) {
	tests := []struct {
		name string
		file UploadedFile
	}{
		{"unterminated quote", NewUploadedFile("bad.csv", []byte("a,b\n\"1,2\n"))},
		{"row wider than header", NewUploadedFile("wide.csv", []byte("a\n1,2\n"))},
		{"not a workbook", NewUploadedFile("fake.xlsx", []byte("plain text"))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Load(tt.file, ParseOptions{})
			var loadErr *LoadError
			require.ErrorAs(t, err, &loadErr)
			assert.Equal(t, tt.file.Name, loadErr.FileName)
			assert.Contains(t, err.Error(), "error loading file "+tt.file.Name)
		})
	}
}

func TestLoad_EmptyFile(t *testing.T) {
	_, _, err := Load(NewUploadedFile("empty.csv", nil), ParseOptions{})
	assert.ErrorIs(t, err, ErrEmptyFile)
	assert.Equal(t, "FILE005", MapError(err).Code)
}

func TestUploadedFile(t *testing.T) {
	f := NewUploadedFile("report.final.xlsx", make([]byte, 2048))
	assert.Equal(t, ".xlsx", f.Ext())
	assert.Equal(t, 2.0, f.SizeKB())
	assert.Equal(t, int64(2048), f.Size)
}
