// Package source loads the list of input identifiers (job URLs or company
// names) from a plain text file or an XLSX workbook.
package source

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"
)

// ReadIdentifiers loads identifiers from path. .xlsx/.xls files are read
// from the first sheet, preferring the first column whose header contains
// "url" (case-insensitive) and falling back to column 0; anything else is
// read as one trimmed identifier per line. Blank entries are dropped.
// Failure returns an empty slice and the error; the caller logs it and the
// run continues with no identifiers.
func ReadIdentifiers(path string) ([]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xls":
		return readWorkbook(path)
	default:
		return readLines(path)
	}
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "source: open file")
	}
	defer func() { _ = f.Close() }()

	var ids []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			ids = append(ids, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, eris.Wrap(err, "source: scan file")
	}

	zap.L().Info("loaded identifiers from text file",
		zap.String("file", path),
		zap.Int("count", len(ids)),
	)
	return ids, nil
}

func readWorkbook(path string) ([]string, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "source: open workbook")
	}
	if len(f.Sheets) == 0 {
		return nil, eris.Errorf("source: workbook %q has no sheets", path)
	}

	sheet := f.Sheets[0]
	if len(sheet.Rows) == 0 {
		return nil, eris.Errorf("source: workbook %q first sheet is empty", path)
	}

	col := urlColumn(sheet.Rows[0])

	var ids []string
	for _, row := range sheet.Rows[1:] {
		if col >= len(row.Cells) {
			continue
		}
		v := strings.TrimSpace(row.Cells[col].String())
		if v != "" {
			ids = append(ids, v)
		}
	}

	zap.L().Info("loaded identifiers from workbook",
		zap.String("file", path),
		zap.Int("column", col),
		zap.Int("count", len(ids)),
	)
	return ids, nil
}

// urlColumn returns the index of the first header cell containing "url",
// or 0 when no header matches.
func urlColumn(header *xlsx.Row) int {
	for i, cell := range header.Cells {
		if strings.Contains(strings.ToLower(cell.String()), "url") {
			return i
		}
	}
	return 0
}
