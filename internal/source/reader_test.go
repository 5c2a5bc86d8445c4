package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

func writeTestWorkbook(t *testing.T, headers []string, rows [][]string) string {
	t.Helper()

	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Links")
	require.NoError(t, err)

	hr := sheet.AddRow()
	for _, h := range headers {
		hr.AddCell().SetString(h)
	}
	for _, row := range rows {
		r := sheet.AddRow()
		for _, v := range row {
			r.AddCell().SetString(v)
		}
	}

	path := filepath.Join(t.TempDir(), "links.xlsx")
	require.NoError(t, f.Save(path))
	return path
}

func TestReadIdentifiers_TextFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job_links.txt")
	content := "https://example.com/jobs/1\n\n  https://example.com/jobs/2  \n\t\nhttps://example.com/jobs/3\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	ids, err := ReadIdentifiers(path)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://example.com/jobs/1",
		"https://example.com/jobs/2",
		"https://example.com/jobs/3",
	}, ids)
}

func TestReadIdentifiers_MissingFile(t *testing.T) {
	ids, err := ReadIdentifiers(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
	assert.Empty(t, ids)
}

func TestReadIdentifiers_WorkbookURLColumn(t *testing.T) {
	path := writeTestWorkbook(t,
		[]string{"Company", "Job URL"},
		[][]string{
			{"Acme", "https://example.com/jobs/1"},
			{"Globex", "https://example.com/jobs/2"},
			{"Blank", ""},
		},
	)

	ids, err := ReadIdentifiers(path)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://example.com/jobs/1",
		"https://example.com/jobs/2",
	}, ids)
}

func TestReadIdentifiers_WorkbookNoURLHeader(t *testing.T) {
	// Without a "url" header the first column is used.
	path := writeTestWorkbook(t,
		[]string{"Link", "Notes"},
		[][]string{
			{"https://example.com/jobs/1", "senior role"},
		},
	)

	ids, err := ReadIdentifiers(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/jobs/1"}, ids)
}

func TestReadIdentifiers_WorkbookShortRows(t *testing.T) {
	path := writeTestWorkbook(t,
		[]string{"Company", "URL"},
		[][]string{
			{"Acme"}, // no URL cell at all
			{"Globex", "https://example.com/jobs/2"},
		},
	)

	ids, err := ReadIdentifiers(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/jobs/2"}, ids)
}
