package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"timetable/internal/extract"
	"timetable/internal/ingest"
	"timetable/internal/sheet"
)

func newExtractCommand(ctx *commandContext) *cobra.Command {
	var sheetName string
	var format string

	cmd := &cobra.Command{
		Use:   "extract {enrollments|lectures|periods} FILE",
		Short: "Preview the records one workbook yields without loading them",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			kind, err := ingest.ParseKind(args[0])
			if err != nil {
				return err
			}
			outFmt, err := parseFormat(format)
			if err != nil {
				return err
			}

			grid, err := sheet.ReadFile(args[1], ingest.SheetOptions(cfg, kind, sheetName))
			if err != nil {
				return err
			}
			layouts := ingest.LayoutsFor(cfg, time.Now())

			switch kind {
			case ingest.KindEnrollments:
				students, periods, err := extract.Enrollments(grid, layouts)
				if err != nil {
					return err
				}
				switch outFmt {
				case formatJSON:
					return writeJSON(cmd, struct {
						Students []extract.EnrollmentInfo `json:"students"`
						Periods  []extract.PeriodInfo     `json:"periods"`
					}{students, periods})
				case formatCSV:
					return writeCSV(cmd, students)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, enrollmentTable(students))
				fmt.Fprintln(out, periodTable("Enrollment periods", periods))
			case ingest.KindLectures:
				lectures, err := extract.Lectures(grid, layouts)
				if err != nil {
					return err
				}
				switch outFmt {
				case formatJSON:
					return writeJSON(cmd, lectures)
				case formatCSV:
					return writeCSV(cmd, lectures)
				}
				fmt.Fprintln(cmd.OutOrStdout(), lectureTable(lectures))
			case ingest.KindPeriods:
				periods, err := extract.Periods(grid, layouts)
				if err != nil {
					return err
				}
				switch outFmt {
				case formatJSON:
					return writeJSON(cmd, periods)
				case formatCSV:
					return writeCSV(cmd, periods)
				}
				fmt.Fprintln(cmd.OutOrStdout(), periodTable("Periods", periods))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sheetName, "sheet", "", "Sheet name (defaults to the configured or first sheet)")
	cmd.Flags().StringVar(&format, "format", "table", "Output format: table, json or csv")
	return cmd
}

func enrollmentTable(students []extract.EnrollmentInfo) string {
	rows := make([][]string, 0, len(students))
	for _, s := range students {
		classes, _ := s.Subjects.MarshalCSV()
		rows = append(rows, []string{
			strconv.Itoa(s.Generation),
			strconv.Itoa(s.Section),
			strconv.Itoa(s.SeatNumber),
			s.Name,
			strconv.Itoa(s.Credit),
			classes,
		})
	}
	return renderTable(fmt.Sprintf("Students (%d)", len(students)), []column{
		{header: "Gen", align: alignRight},
		{header: "Section", align: alignRight},
		{header: "Seat", align: alignRight},
		{header: "Name"},
		{header: "Credit", align: alignRight},
		{header: "Classes"},
	}, rows)
}

func lectureTable(lectures []extract.LectureInfo) string {
	rows := make([][]string, 0, len(lectures))
	for _, l := range lectures {
		rows = append(rows, []string{l.Subject, l.Teacher, l.Room})
	}
	return renderTable(fmt.Sprintf("Lectures (%d)", len(lectures)), []column{
		{header: "Subject"},
		{header: "Teacher"},
		{header: "Room"},
	}, rows)
}

func periodTable(title string, periods []extract.PeriodInfo) string {
	rows := make([][]string, 0, len(periods))
	for _, p := range periods {
		rows = append(rows, []string{
			p.Subject,
			p.Teacher,
			strconv.Itoa(p.Division),
			extract.DayName(p.Day),
			strconv.Itoa(p.Period),
		})
	}
	return renderTable(fmt.Sprintf("%s (%d)", title, len(periods)), []column{
		{header: "Subject"},
		{header: "Teacher"},
		{header: "Division", align: alignRight},
		{header: "Day"},
		{header: "Period", align: alignRight},
	}, rows)
}

