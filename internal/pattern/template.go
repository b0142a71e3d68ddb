package pattern

import (
	"errors"
	"fmt"

	"timetable/internal/cell"
	"timetable/internal/sheet"
)

// Template is a fixed-shape matrix of matchers describing one record block.
// A Template is immutable once built.
type Template struct {
	rows   [][]cell.Matcher
	height int
	width  int
}

// Hit is one interpreted cell of a matched window. Key is the name of the
// matcher at that position; Value carries the category that actually matched,
// which differs from Key when a variant list fell through to a later variant.
type Hit struct {
	Key   cell.Category
	Value cell.Value
	Row   int
	Col   int
}

// Empty reports whether the hit interpreted a blank cell.
func (h Hit) Empty() bool { return cell.IsEmpty(h.Value) }

// Stamp is the interpreted content of one matched window. X is the column and
// Y the row of the window's top-left corner. Hits are row-major; cells that
// fall outside the grid are omitted.
type Stamp struct {
	X    int
	Y    int
	Hits []Hit
}

// Find returns the first hit with the given key.
func (s Stamp) Find(key cell.Category) (Hit, bool) {
	for _, h := range s.Hits {
		if h.Key == key {
			return h, true
		}
	}
	return Hit{}, false
}

// New builds a template from a row-major matcher matrix.
func New(rows [][]cell.Matcher) (*Template, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, errors.New("template requires at least one cell")
	}
	width := len(rows[0])
	copied := make([][]cell.Matcher, len(rows))
	for j, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("template row %d has %d cells, want %d", j, len(row), width)
		}
		for i, m := range row {
			if m == nil {
				return nil, fmt.Errorf("template cell (%d,%d) has no matcher", j, i)
			}
		}
		copied[j] = append([]cell.Matcher(nil), row...)
	}
	return &Template{rows: copied, height: len(rows), width: width}, nil
}

// MustNew is New for package-level layouts; it panics on a malformed matrix.
func MustNew(rows [][]cell.Matcher) *Template {
	t, err := New(rows)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Template) Height() int { return t.height }
func (t *Template) Width() int  { return t.width }

// At returns the matcher at template position (row, col).
func (t *Template) At(row, col int) cell.Matcher { return t.rows[row][col] }

// MatchAt reports whether every matcher accepts the grid cell under it when
// the template's top-left corner sits at column x, row y. Cells past the grid
// edge read as empty.
func (t *Template) MatchAt(grid *sheet.Grid, x, y int) bool {
	for j := 0; j < t.height; j++ {
		for i := 0; i < t.width; i++ {
			if !t.rows[j][i].Match(grid.At(y+j, x+i)) {
				return false
			}
		}
	}
	return true
}

// Stamp interprets the window at (x, y). The boolean is false when the window
// does not match.
func (t *Template) Stamp(grid *sheet.Grid, x, y int) (Stamp, bool, error) {
	if !t.MatchAt(grid, x, y) {
		return Stamp{}, false, nil
	}
	stamp := Stamp{X: x, Y: y, Hits: make([]Hit, 0, t.height*t.width)}
	for j := 0; j < t.height; j++ {
		for i := 0; i < t.width; i++ {
			if !grid.InBounds(y+j, x+i) {
				continue
			}
			m := t.rows[j][i]
			value, err := m.Interpret(grid.At(y+j, x+i))
			if err != nil {
				return Stamp{}, false, fmt.Errorf("interpret cell (%d,%d) of window (%d,%d): %w", j, i, x, y, err)
			}
			stamp.Hits = append(stamp.Hits, Hit{Key: m.Name(), Value: value, Row: j, Col: i})
		}
	}
	return stamp, true, nil
}

// Convolute scans every offset where the template fits inside the grid and
// returns the matching windows ordered by row, then column.
func (t *Template) Convolute(grid *sheet.Grid) ([]Stamp, error) {
	h, w := grid.Height(), grid.Width()
	if h < t.height || w < t.width {
		return nil, nil
	}
	var stamps []Stamp
	for y := 0; y <= h-t.height; y++ {
		for x := 0; x <= w-t.width; x++ {
			stamp, ok, err := t.Stamp(grid, x, y)
			if err != nil {
				return nil, err
			}
			if ok {
				stamps = append(stamps, stamp)
			}
		}
	}
	return stamps, nil
}
