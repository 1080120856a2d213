package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustFormat(t *testing.T, key string) Format {
	t.Helper()
	f, ok := FormatByKey(key)
	require.True(t, ok, "format %q not registered", key)
	return f
}

func TestOutputName(t *testing.T) {
	csv := mustFormat(t, "csv")
	excel := mustFormat(t, "excel")

	assert.Equal(t, "report.csv", OutputName("report.xlsx", csv))
	assert.Equal(t, "report.xlsx", OutputName("report.csv", excel))
	assert.Equal(t, "a.csv.csv", OutputName("a.csv.xlsx", csv))
	assert.Equal(t, "data.xlsx", OutputName("data", excel))
}

func TestExport_CSV(t *testing.T) {
	tbl := MustTable(numCol("a", 1, 15), textCol("b", "x", ""))

	res, err := Export(tbl, mustFormat(t, "CSV"), "report.xlsx")
	require.NoError(t, err)
	assert.Equal(t, "report.csv", res.FileName)
	assert.Equal(t, "text/csv", res.MIME)
	assert.Equal(t, "a,b\n1,x\n15,\n", string(res.Data))
}

func TestExport_ExcelRoundTrip(t *testing.T) {
	tbl := MustTable(numCol("a", 1.5, nil), textCol("b", "x", "y"))

	res, err := Export(tbl, mustFormat(t, "Excel"), "data.csv")
	require.NoError(t, err)
	assert.Equal(t, "data.xlsx", res.FileName)
	assert.Equal(t, MIMEExcel, res.MIME)

	back, _, err := Load(NewUploadedFile(res.FileName, res.Data), ParseOptions{})
	require.NoError(t, err)
	assert.True(t, tbl.Equal(back))
}

func TestExport_CSVRoundTrip(t *testing.T) {
	tbl := MustTable(numCol("n", 0.25, -3), textCol("s", "with,comma", "quote\"d"))

	res, err := Export(tbl, mustFormat(t, "csv"), "x.csv")
	require.NoError(t, err)

	back, _, err := Load(NewUploadedFile(res.FileName, res.Data), ParseOptions{})
	require.NoError(t, err)
	assert.True(t, tbl.Equal(back))
}

func TestExport_NoEncoder(t *testing.T) {
	_, err := Export(MustTable(numCol("a", 1)), Format{Key: "pdf", Label: "PDF", Ext: ".pdf"}, "a.csv")

	var exportErr *ExportError
	require.ErrorAs(t, err, &exportErr)
	assert.Equal(t, "PDF", exportErr.Format)
	assert.Equal(t, "CNV001", MapError(err).Code)
}

func TestFormatRegistry(t *testing.T) {
	_, ok := FormatByExt(".CSV")
	assert.False(t, ok, "extension match is case-sensitive")

	f, ok := FormatByExt(".xlsx")
	require.True(t, ok)
	assert.Equal(t, "excel", f.Key)

	assert.Equal(t, []string{".csv", ".xlsx"}, SupportedExtensions())

	assert.Panics(t, func() {
		RegisterFormat(Format{Key: "csv", Ext: ".tsv"})
	})
}
