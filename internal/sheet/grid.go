package sheet

// Empty is the sentinel every blank or null cell is normalized to. Reads
// outside the grid also return it.
const Empty = ""

// Grid is an immutable rectangular matrix of cell text, row-major with the
// origin at the top-left cell.
type Grid struct {
	cells  [][]string
	height int
	width  int
}

// New builds a grid from rows. Short rows are padded with Empty so the result
// is rectangular; the input is copied.
func New(rows [][]string) *Grid {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	cells := make([][]string, len(rows))
	for i, row := range rows {
		padded := make([]string, width)
		copy(padded, row)
		cells[i] = padded
	}
	return &Grid{cells: cells, height: len(rows), width: width}
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	if g == nil {
		return 0
	}
	return g.height
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	if g == nil {
		return 0
	}
	return g.width
}

// At returns the text at (row, col), or Empty when out of bounds.
func (g *Grid) At(row, col int) string {
	if g == nil || row < 0 || col < 0 || row >= g.height || col >= g.width {
		return Empty
	}
	return g.cells[row][col]
}

// InBounds reports whether (row, col) addresses a cell of the grid.
func (g *Grid) InBounds(row, col int) bool {
	return g != nil && row >= 0 && col >= 0 && row < g.height && col < g.width
}

// Rows returns a copy of the grid contents.
func (g *Grid) Rows() [][]string {
	if g == nil {
		return nil
	}
	out := make([][]string, g.height)
	for i, row := range g.cells {
		out[i] = append([]string(nil), row...)
	}
	return out
}
