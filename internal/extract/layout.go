package extract

import (
	"timetable/internal/cell"
	"timetable/internal/pattern"
)

const (
	// DefaultUnknownTeacher attributes the placeholder periods derived from
	// the enrollment sheet until the reconciler assigns a real teacher.
	DefaultUnknownTeacher = "Unknown"
	// DefaultPeriodStartCol is the first period column of the period row.
	DefaultPeriodStartCol = 2

	enrollmentRows = 9
	weekdays       = 5
	lectureSlots   = 3
)

// Layouts holds the templates and their parameters for the three sheet kinds.
type Layouts struct {
	Enrollment *pattern.Template
	Lecture    *pattern.Template
	Period     *pattern.Template

	// PeriodStartCol is the window column holding Monday's period list.
	PeriodStartCol int
	UnknownTeacher string
}

// DefaultLayouts returns the layouts of the school's export format. The
// cohort converts student grade digits into generations.
func DefaultLayouts(c cell.Cohort) Layouts {
	return Layouts{
		Enrollment:     enrollmentTemplate(c),
		Lecture:        lectureTemplate(),
		Period:         periodTemplate(),
		PeriodStartCol: DefaultPeriodStartCol,
		UnknownTeacher: DefaultUnknownTeacher,
	}
}

// enrollmentTemplate: a student header row followed by eight period rows of
// five weekday columns.
func enrollmentTemplate(c cell.Cohort) *pattern.Template {
	empty := cell.EmptyMatcher()
	rows := make([][]cell.Matcher, 0, enrollmentRows)
	rows = append(rows, []cell.Matcher{cell.StudentMatcher(c), cell.CreditMatcher(), empty, empty, empty})
	class := cell.OneOf(cell.ClassMatcher(), empty)
	for len(rows) < enrollmentRows {
		row := make([]cell.Matcher, weekdays)
		for i := range row {
			row[i] = class
		}
		rows = append(rows, row)
	}
	return pattern.MustNew(rows)
}

func lectureTemplate() *pattern.Template {
	empty := cell.EmptyMatcher()
	row := []cell.Matcher{cell.SubjectMatcher()}
	for range lectureSlots {
		row = append(row,
			cell.OneOf(cell.TeacherMatcher(), empty),
			cell.OneOf(cell.RoomMatcher(), empty),
		)
	}
	return pattern.MustNew([][]cell.Matcher{row})
}

func periodTemplate() *pattern.Template {
	empty := cell.EmptyMatcher()
	row := []cell.Matcher{
		cell.OneOf(cell.SubjectMatcher(), empty),
		cell.OneOf(cell.TeacherMatcher(), empty),
	}
	period := cell.OneOf(cell.PeriodMatcher(), empty)
	for range weekdays {
		row = append(row, period)
	}
	return pattern.MustNew([][]cell.Matcher{row})
}

func (l Layouts) unknownTeacher() string {
	if l.UnknownTeacher == "" {
		return DefaultUnknownTeacher
	}
	return l.UnknownTeacher
}

func (l Layouts) periodStartCol() int {
	if l.PeriodStartCol <= 0 {
		return DefaultPeriodStartCol
	}
	return l.PeriodStartCol
}
