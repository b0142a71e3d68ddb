package sheet

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Options controls how a workbook sheet becomes a Grid.
type Options struct {
	// Sheet selects a sheet by name; empty selects the first sheet.
	Sheet string
	// HeaderRows leading rows are dropped before the grid is built.
	HeaderRows int
	// NullTokens are cell values treated as blank (e.g. "nan", "#N/A").
	NullTokens []string
}

// ReadFile opens an xlsx workbook and converts the selected sheet into a Grid.
func ReadFile(path string, opts Options) (*Grid, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	grid, err := fromWorkbook(f, opts)
	if err != nil {
		return nil, fmt.Errorf("read workbook %s: %w", path, err)
	}
	return grid, nil
}

// Read converts the selected sheet of an xlsx stream into a Grid.
func Read(r io.Reader, opts Options) (*Grid, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	return fromWorkbook(f, opts)
}

func fromWorkbook(f *excelize.File, opts Options) (*Grid, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	name := strings.TrimSpace(opts.Sheet)
	if name == "" {
		name = sheets[0]
	} else if !slices.Contains(sheets, name) {
		return nil, fmt.Errorf("sheet %q not found (available: %s)", name, strings.Join(sheets, ", "))
	}

	rows, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("get rows of %q: %w", name, err)
	}
	rows = padToUsedRange(f, name, rows)
	if opts.HeaderRows > 0 {
		if opts.HeaderRows >= len(rows) {
			rows = nil
		} else {
			rows = rows[opts.HeaderRows:]
		}
	}

	nulls := make(map[string]struct{}, len(opts.NullTokens))
	for _, token := range opts.NullTokens {
		nulls[token] = struct{}{}
	}
	normalized := make([][]string, len(rows))
	for i, row := range rows {
		out := make([]string, len(row))
		for j, text := range row {
			out[j] = NormalizeCell(text, nulls)
		}
		normalized[i] = out
	}
	return New(normalized), nil
}

// padToUsedRange extends rows to the sheet's declared dimension. GetRows drops
// trailing blank rows and cells, but a block at the bottom edge of a sheet
// still needs its blank period rows to fit a template.
func padToUsedRange(f *excelize.File, name string, rows [][]string) [][]string {
	dim, err := f.GetSheetDimension(name)
	if err != nil || dim == "" {
		return rows
	}
	_, end, found := strings.Cut(dim, ":")
	if !found {
		return rows
	}
	cols, height, err := excelize.CellNameToCoordinates(end)
	if err != nil {
		return rows
	}
	for len(rows) < height {
		rows = append(rows, nil)
	}
	if last := len(rows) - 1; last >= 0 && len(rows[last]) < cols {
		rows[last] = append(rows[last], make([]string, cols-len(rows[last]))...)
	}
	return rows
}

// NormalizeCell maps blank text and null tokens to Empty. Other text is folded
// to narrow ASCII forms, composed to NFC and gets CRLF line breaks unified;
// surrounding whitespace is preserved.
func NormalizeCell(text string, nulls map[string]struct{}) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Empty
	}
	if _, ok := nulls[trimmed]; ok {
		return Empty
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return norm.NFC.String(width.Fold.String(text))
}
