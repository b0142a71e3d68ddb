package ingest

import (
	"fmt"
	"strings"
	"time"

	"timetable/internal/cell"
	"timetable/internal/config"
	"timetable/internal/extract"
	"timetable/internal/sheet"
)

// Kind names one of the three source sheets.
type Kind string

const (
	KindEnrollments Kind = "enrollments"
	KindLectures    Kind = "lectures"
	KindPeriods     Kind = "periods"
)

// ParseKind accepts the plural kind names and their singular forms.
func ParseKind(value string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "enrollments", "enrollment":
		return KindEnrollments, nil
	case "lectures", "lecture":
		return KindLectures, nil
	case "periods", "period":
		return KindPeriods, nil
	default:
		return "", fmt.Errorf("unknown sheet kind %q (want enrollments, lectures or periods)", value)
	}
}

// Sources are the workbook paths of one run.
type Sources struct {
	Enrollment string `json:"enrollment"`
	Lecture    string `json:"lecture"`
	Period     string `json:"period"`
}

func (s Sources) validate() error {
	var missing []string
	if strings.TrimSpace(s.Enrollment) == "" {
		missing = append(missing, "enrollment")
	}
	if strings.TrimSpace(s.Lecture) == "" {
		missing = append(missing, "lecture")
	}
	if strings.TrimSpace(s.Period) == "" {
		missing = append(missing, "period")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing workbook path for %s", strings.Join(missing, ", "))
	}
	return nil
}

// LayoutsFor builds the extraction layouts from configuration.
func LayoutsFor(cfg *config.Config, now time.Time) extract.Layouts {
	layouts := extract.DefaultLayouts(cell.Cohort{
		EpochYear: cfg.Ingest.EpochYear,
		Year:      cfg.SchoolYear(now),
	})
	if cfg.Ingest.PeriodStartCol > 0 {
		layouts.PeriodStartCol = cfg.Ingest.PeriodStartCol
	}
	if cfg.Ingest.UnknownTeacher != "" {
		layouts.UnknownTeacher = cfg.Ingest.UnknownTeacher
	}
	return layouts
}

// SheetOptions returns the reader options for a sheet kind. A non-empty
// sheetName overrides the configured sheet.
func SheetOptions(cfg *config.Config, kind Kind, sheetName string) sheet.Options {
	opts := sheet.Options{
		HeaderRows: cfg.Sheets.HeaderRows,
		NullTokens: cfg.Sheets.NullTokens,
	}
	switch kind {
	case KindEnrollments:
		opts.Sheet = cfg.Sheets.EnrollmentSheet
	case KindLectures:
		opts.Sheet = cfg.Sheets.LectureSheet
	case KindPeriods:
		opts.Sheet = cfg.Sheets.PeriodSheet
	}
	if sheetName = strings.TrimSpace(sheetName); sheetName != "" {
		opts.Sheet = sheetName
	}
	return opts
}
