package testsupport

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// WriteWorkbook saves rows as the only sheet of a new xlsx file in a fresh
// temp directory and returns its path. Rows start at A1.
func WriteWorkbook(t testing.TB, sheetName string, rows [][]any) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	if sheetName != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheetName); err != nil {
			t.Fatalf("rename sheet: %v", err)
		}
	}
	for i, row := range rows {
		cellName, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		values := row
		if err := f.SetSheetRow(sheetName, cellName, &values); err != nil {
			t.Fatalf("set row %d: %v", i, err)
		}
	}
	path := filepath.Join(t.TempDir(), "book.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

// StringRows converts a text matrix into workbook rows.
func StringRows(rows [][]string) [][]any {
	out := make([][]any, len(rows))
	for i, row := range rows {
		out[i] = make([]any, len(row))
		for j, v := range row {
			out[i][j] = v
		}
	}
	return out
}
