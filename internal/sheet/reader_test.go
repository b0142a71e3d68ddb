package sheet_test

import (
	"os"
	"strings"
	"testing"

	"golang.org/x/text/unicode/norm"

	"timetable/internal/sheet"
	"timetable/internal/testsupport"
)

func TestReadFileNormalizesCells(t *testing.T) {
	decomposed := norm.NFD.String("정보처리 3반 A301")
	path := testsupport.WriteWorkbook(t, "수강", [][]any{
		{"header", "ignored"},
		{"51203 홍길동", "3 학점", "   ", "nan"},
		{decomposed, "１,２(1분반)"},
	})

	g, err := sheet.ReadFile(path, sheet.Options{Sheet: "수강", HeaderRows: 1, NullTokens: []string{"nan"}})
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if g.Height() != 2 || g.Width() != 4 {
		t.Fatalf("unexpected shape %dx%d", g.Height(), g.Width())
	}
	if got := g.At(0, 0); got != "51203 홍길동" {
		t.Fatalf("unexpected student cell: %q", got)
	}
	if got := g.At(0, 2); got != sheet.Empty {
		t.Fatalf("expected whitespace-only cell to be empty, got %q", got)
	}
	if got := g.At(0, 3); got != sheet.Empty {
		t.Fatalf("expected null token to be empty, got %q", got)
	}
	if got := g.At(1, 0); got != "정보처리 3반 A301" {
		t.Fatalf("expected NFC text, got %q", got)
	}
	if got := g.At(1, 1); got != "1,2(1분반)" {
		t.Fatalf("expected full-width digits folded, got %q", got)
	}
}

func TestReadDefaultsToFirstSheet(t *testing.T) {
	path := testsupport.WriteWorkbook(t, "Sheet1", [][]any{{"수학", "김철수", "301"}})
	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer file.Close()

	g, err := sheet.Read(file, sheet.Options{})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if g.Height() != 1 || g.At(0, 2) != "301" {
		t.Fatalf("unexpected grid: %v", g.Rows())
	}
}

func TestReadFileUnknownSheet(t *testing.T) {
	path := testsupport.WriteWorkbook(t, "Sheet1", [][]any{{"x"}})
	_, err := sheet.ReadFile(path, sheet.Options{Sheet: "missing"})
	if err == nil || !strings.Contains(err.Error(), `"missing"`) {
		t.Fatalf("expected unknown sheet error, got %v", err)
	}
}

func TestReadFileHeaderLongerThanSheet(t *testing.T) {
	path := testsupport.WriteWorkbook(t, "Sheet1", [][]any{{"only header"}})
	g, err := sheet.ReadFile(path, sheet.Options{HeaderRows: 3})
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if g.Height() != 0 {
		t.Fatalf("expected empty grid, got %d rows", g.Height())
	}
}
