package extract

import (
	"fmt"
	"strings"
)

// ClassRef names one (subject, division) pairing a student is enrolled in.
type ClassRef struct {
	Subject  string `json:"subject" validate:"notblank"`
	Division int    `json:"division" validate:"gt=0"`
}

func (c ClassRef) String() string { return fmt.Sprintf("%s %d반", c.Subject, c.Division) }

// ClassRefs is the ordered, de-duplicated class list of one student.
type ClassRefs []ClassRef

// MarshalCSV renders the list as a single "; "-separated column.
func (c ClassRefs) MarshalCSV() (string, error) {
	parts := make([]string, len(c))
	for i, ref := range c {
		parts[i] = ref.String()
	}
	return strings.Join(parts, "; "), nil
}

// EnrollmentInfo is one student block of the enrollment sheet.
type EnrollmentInfo struct {
	Generation int       `json:"generation" csv:"generation" validate:"gt=0"`
	Section    int       `json:"section" csv:"section" validate:"gte=0"`
	SeatNumber int       `json:"seat_number" csv:"seat_number" validate:"gte=0"`
	Name       string    `json:"name" csv:"name" validate:"notblank"`
	Credit     int       `json:"credit" csv:"credit" validate:"gte=0"`
	Subjects   ClassRefs `json:"subjects" csv:"subjects" validate:"dive"`
}

// LectureInfo is one (subject, teacher, room) assignment. Teacher may hold a
// comma-joined list of names.
type LectureInfo struct {
	Subject string `json:"subject" csv:"subject" validate:"notblank"`
	Teacher string `json:"teacher" csv:"teacher" validate:"notblank"`
	Room    string `json:"room" csv:"room" validate:"notblank"`
}

// PeriodInfo is one weekly slot of a class. Day is 1-based with 1 = Monday.
type PeriodInfo struct {
	Subject  string `json:"subject" csv:"subject" validate:"notblank"`
	Teacher  string `json:"teacher" csv:"teacher" validate:"notblank"`
	Division int    `json:"division" csv:"division" validate:"gt=0"`
	Day      int    `json:"day" csv:"day" validate:"gt=0,lte=7"`
	Period   int    `json:"period" csv:"period" validate:"gt=0"`
}

// SlotKey identifies the weekly slot of a period regardless of teacher.
type SlotKey struct {
	Subject  string
	Division int
	Day      int
	Period   int
}

func (p PeriodInfo) Slot() SlotKey {
	return SlotKey{Subject: p.Subject, Division: p.Division, Day: p.Day, Period: p.Period}
}

var dayNames = [...]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// DayName returns the short weekday label for a day index, where 0 and 7 are
// Sunday and 1 is Monday.
func DayName(day int) string {
	if day < 0 {
		return fmt.Sprintf("day%d", day)
	}
	return dayNames[day%len(dayNames)]
}
