package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/JonMunkholm/sweeper/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out, &out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestConvertCSVToExcel(t *testing.T) {
	in := t.TempDir()
	outDir := t.TempDir()
	src := writeFile(t, in, "sales.csv", "name,price,qty\nA,1,2\nA,1,2\nB,,4\n")

	out, err := runCLI(t, "convert", src, "--to", "excel", "--dedupe", "--fill", "--columns", "price,name", "--out", outDir, "--seed", "0")
	require.NoError(t, err, out)

	assert.Contains(t, out, "✅ Removed Duplicates from sales.csv")
	assert.Contains(t, out, "✅ Filled Missing Values")
	assert.Contains(t, out, "wrote")
	assert.Contains(t, out, "All files processed!")
	assert.Contains(t, out, "Your XP: 40")

	data, err := os.ReadFile(filepath.Join(outDir, "sales.xlsx"))
	require.NoError(t, err)
	tbl, _, err := core.Load(core.NewUploadedFile("sales.xlsx", data), core.ParseOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"price", "name"}, tbl.Names())
	assert.Equal(t, 2, tbl.NumRows())
}

func TestConvertIsolatesFailures(t *testing.T) {
	in := t.TempDir()
	outDir := t.TempDir()
	good := writeFile(t, in, "good.csv", "x\n1\n")
	bad := writeFile(t, in, "notes.txt", "hello")

	out, err := runCLI(t, "convert", good, bad, filepath.Join(in, "missing.csv"), "--to", "csv", "--out", outDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 of 3 files failed")
	assert.Contains(t, out, "Invalid file type")
	assert.Contains(t, out, "Your XP: 20")

	data, err := os.ReadFile(filepath.Join(outDir, "good.csv"))
	require.NoError(t, err)
	assert.Equal(t, "x\n1\n", string(data))
}

func TestConvertRefusesToOverwriteInput(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "data.csv", "x\n1\n")

	out, err := runCLI(t, "convert", src, "--to", "csv", "--out", dir)
	require.Error(t, err)
	assert.Contains(t, out, "refusing to overwrite")

	_, err = runCLI(t, "convert", src, "--to", "csv", "--out", dir, "--overwrite")
	require.NoError(t, err)
}

func TestConvertUnknownColumn(t *testing.T) {
	in := t.TempDir()
	src := writeFile(t, in, "a.csv", "x\n1\n")

	out, err := runCLI(t, "convert", src, "--to", "csv", "--columns", "nope", "--out", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, out, "CNV002")
	assert.Contains(t, out, "Your XP: 0")
}

func TestConvertChart(t *testing.T) {
	in := t.TempDir()
	src := writeFile(t, in, "n.csv", "a,b\n1,-2\n3,\n")

	out, err := runCLI(t, "convert", src, "--to", "csv", "--chart", "--out", t.TempDir(), "--seed", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "█")
	assert.Contains(t, out, "missing")
	assert.Contains(t, out, core.Encouragements[0])
	assert.Contains(t, out, "Your XP: 35")
}

func TestConvertRequiresValidFormat(t *testing.T) {
	src := writeFile(t, t.TempDir(), "a.csv", "x\n1\n")

	_, err := runCLI(t, "convert", src)
	require.Error(t, err)

	_, err = runCLI(t, "convert", src, "--to", "pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --to")
}

func TestPreview(t *testing.T) {
	src := writeFile(t, t.TempDir(), "p.csv", "name,price\nA,1\nA,1\nB,\n")

	out, err := runCLI(t, "preview", src)
	require.NoError(t, err)
	assert.Contains(t, out, "p.csv")
	assert.Contains(t, out, "3 rows")
	assert.Contains(t, out, "1 duplicate rows")
	assert.Contains(t, out, "price (numeric, 1 missing)")
	assert.Contains(t, out, "NaN")
}

func TestRenderProgress(t *testing.T) {
	assert.Contains(t, renderProgress(150, 1), "100%")
	assert.Contains(t, renderProgress(25, 0.25), "25%")
}

func TestRenderChartEmpty(t *testing.T) {
	assert.Contains(t, renderChart(core.Chart{}), "No numeric columns")
}

func TestConvertSameNameInDifferentDirectories(t *testing.T) {
	root := t.TempDir()
	outDir := t.TempDir()
	first := writeFile(t, mkdir(t, root, "a"), "data.csv", "x\n1\n")
	second := writeFile(t, mkdir(t, root, "b"), "data.csv", "x\n2\n")

	out, err := runCLI(t, "convert", first, second, "--to", "csv", "--out", outDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 files failed")
	assert.Contains(t, out, "both convert to")
	assert.Contains(t, out, "Your XP: 20")

	data, err := os.ReadFile(filepath.Join(outDir, "data.csv"))
	require.NoError(t, err)
	assert.Equal(t, "x\n1\n", string(data), "the first file's output is kept")
}

func TestConvertRefusesToOverwriteOtherInput(t *testing.T) {
	dir := t.TempDir()
	xlsxSrc := writeFile(t, dir, "report.xlsx", "not read")
	csvSrc := writeFile(t, dir, "report.csv", "x\n1\n")

	// report.csv converts to report.xlsx, which is also an input.
	out, err := runCLI(t, "convert", csvSrc, "--to", "excel", "--out", dir, "--seed", "0")
	require.NoError(t, err, out)

	out, err = runCLI(t, "convert", xlsxSrc, csvSrc, "--to", "csv", "--out", dir)
	require.Error(t, err)
	assert.Contains(t, out, "refusing to overwrite")
}

func TestConvertWriteFailureEarnsNothing(t *testing.T) {
	src := writeFile(t, t.TempDir(), "data.csv", "x\n1\n")
	outDir := t.TempDir()
	mkdir(t, outDir, "data.xlsx") // the target path is a directory

	out, err := runCLI(t, "convert", src, "--to", "excel", "--out", outDir)
	require.Error(t, err)
	assert.Contains(t, out, "CNV001")
	assert.NotContains(t, out, "wrote")
	assert.Contains(t, out, "Your XP: 0")
}

func mkdir(t *testing.T, parent, name string) string {
	t.Helper()
	p := filepath.Join(parent, name)
	require.NoError(t, os.Mkdir(p, 0o755))
	return p
}
