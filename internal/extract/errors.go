package extract

import (
	"fmt"

	"timetable/internal/cell"
	"timetable/internal/faults"
)

// FormatError reports a matched window whose content cannot be turned into a
// record, such as a teacher with no room after it.
type FormatError struct {
	Sheet  string
	X, Y   int
	Text   string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s sheet: window (%d,%d): %s: %q", e.Sheet, e.X, e.Y, e.Reason, e.Text)
}

func (e *FormatError) Unwrap() error { return faults.ErrFormat }

// ShapeError reports a matched window missing a required category.
type ShapeError struct {
	Sheet   string
	X, Y    int
	Missing cell.Category
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s sheet: window (%d,%d): no %s cell", e.Sheet, e.X, e.Y, e.Missing)
}

func (e *ShapeError) Unwrap() error { return faults.ErrShape }
