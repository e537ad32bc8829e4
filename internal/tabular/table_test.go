package tabular

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReadDelimited(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.txt")
	content := "Name\tPin code\tAddress\n" +
		"A Sharma\t110001\t12, Janpath\n" +
		"\t\t\n" + // empty row skipped
		"B Rao\t560001\n" // short row padded
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	table, err := ReadDelimited(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Name", "Pin code", "Address"}, table.Headers)
	require.Equal(t, 2, table.Len())
	assert.Equal(t, "12, Janpath", table.Rows[0]["Address"])
	assert.Equal(t, "", table.Rows[1]["Address"])
}

func TestReadDelimitedEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	_, err := ReadDelimited(path)
	assert.Error(t, err)
}

func TestReadWorkbook(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName(f.GetSheetName(0), "March"))
	require.NoError(t, f.SetSheetRow("March", "A1", &[]interface{}{"Name", "", "City"}))
	require.NoError(t, f.SetSheetRow("March", "A2", &[]interface{}{"A Sharma", "x", "Delhi"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	table, sheet, err := ReadWorkbook(path)
	require.NoError(t, err)

	assert.Equal(t, "March", sheet)
	// Blank headers become addressable placeholder names.
	assert.Equal(t, []string{"Name", "Column_2", "City"}, table.Headers)
	require.Equal(t, 1, table.Len())
	assert.Equal(t, "Delhi", table.Rows[0]["City"])
}

// Repeated headers get pandas-style suffixes instead of collapsing onto one
// map key; both columns keep their values.
func TestReadDelimitedDuplicateHeaders(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.txt")
	content := "add1\tadd1\tName\n" +
		"12 MG Road\tBangalore\tB Rao\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	table, err := ReadDelimited(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"add1", "add1.1", "Name"}, table.Headers)
	assert.Equal(t, "12 MG Road", table.Rows[0]["add1"])
	assert.Equal(t, "Bangalore", table.Rows[0]["add1.1"])
}

func TestCleanHeadersSuffixCollision(t *testing.T) {
	// A literal "X.1" already present must not be overwritten by the
	// generated suffix for the duplicate "X".
	got := cleanHeaders([]string{"X", "X.1", "X"})
	assert.Equal(t, []string{"X", "X.1", "X.2"}, got)
}

func TestReadWorkbookCorrupt(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("not a workbook"), 0644))

	_, _, err := ReadWorkbook(path)
	assert.Error(t, err)
}

// An OLE2 signature alone is not a readable workbook; the open must fail
// cleanly rather than hand the container to excelize.
func TestReadLegacyWorkbookTruncated(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "old.xls")
	ole2Magic := []byte{0xd0, 0xcf, 0x11, 0xe0, 0xa1, 0xb1, 0x1a, 0xe1}
	require.NoError(t, os.WriteFile(path, ole2Magic, 0644))

	_, _, err := ReadLegacyWorkbook(path)
	assert.Error(t, err)
}

func TestReadLegacyWorkbookMissingFile(t *testing.T) {
	_, _, err := ReadLegacyWorkbook(filepath.Join(t.TempDir(), "nope.xls"))
	assert.Error(t, err)
}

func TestProjectFillsMissingColumns(t *testing.T) {
	table := &Table{
		Headers: []string{"A", "B"},
		Rows:    []map[string]string{{"A": "1", "B": "2"}},
	}

	out := table.Project([]string{"B", "C"})

	assert.Equal(t, []string{"B", "C"}, out.Headers)
	assert.Equal(t, "2", out.Rows[0]["B"])
	assert.Equal(t, "", out.Rows[0]["C"])
}

func TestRenameColumn(t *testing.T) {
	table := &Table{
		Headers: []string{"Pin code", "City"},
		Rows:    []map[string]string{{"Pin code": "110001", "City": "Delhi"}},
	}

	table.RenameColumn("Pin code", "AddrePincode")

	assert.Equal(t, []string{"AddrePincode", "City"}, table.Headers)
	assert.Equal(t, "110001", table.Rows[0]["AddrePincode"])
	_, exists := table.Rows[0]["Pin code"]
	assert.False(t, exists)
}

func TestAppend(t *testing.T) {
	a := &Table{}
	b := &Table{Headers: []string{"X"}, Rows: []map[string]string{{"X": "1"}}}
	c := &Table{Headers: []string{"X"}, Rows: []map[string]string{{"X": "2"}}}

	a.Append(b)
	a.Append(c)

	assert.Equal(t, []string{"X"}, a.Headers)
	require.Equal(t, 2, a.Len())
	assert.Equal(t, "1", a.Rows[0]["X"])
	assert.Equal(t, "2", a.Rows[1]["X"])
}
