package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"timetable/internal/ingest"
	"timetable/internal/loader"
	"timetable/internal/store"
)

func newIngestCommand(ctx *commandContext) *cobra.Command {
	var src ingest.Sources
	var dryRun bool
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Load the enrollment, lecture and period workbooks into the database",
		Example: "  timetable ingest --enrollment enroll.xlsx --lecture lectures.xlsx --period periods.xlsx\n" +
			"  timetable ingest --enrollment enroll.xlsx --lecture lectures.xlsx --period periods.xlsx --dry-run",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger()
			if err != nil {
				return err
			}

			run := func(db loader.TxRunner) error {
				runner := ingest.NewRunner(cfg, db, logger)
				report, err := runner.Run(cmd.Context(), src, ingest.Options{DryRun: dryRun})
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, report)
				}
				printReport(cmd.OutOrStdout(), report)
				return nil
			}

			if dryRun {
				return run(nil)
			}
			return ctx.withStore(func(db *store.Store) error {
				return run(db)
			})
		},
	}

	cmd.Flags().StringVar(&src.Enrollment, "enrollment", "", "Enrollment workbook (.xlsx)")
	cmd.Flags().StringVar(&src.Lecture, "lecture", "", "Lecture workbook (.xlsx)")
	cmd.Flags().StringVar(&src.Period, "period", "", "Period workbook (.xlsx)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Extract and reconcile without writing to the database")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the run report as JSON")
	for _, name := range []string{"enrollment", "lecture", "period"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func printReport(out io.Writer, report ingest.Report) {
	title := "Ingestion " + report.RunID
	if report.DryRun {
		title += " (dry run)"
	}
	rows := [][]string{
		{"students", strconv.Itoa(report.Enrollments)},
		{"lectures", strconv.Itoa(report.Lectures)},
		{"periods (enrollment sheet)", strconv.Itoa(report.EnrollmentPeriods)},
		{"periods (period sheet)", strconv.Itoa(report.SheetPeriods)},
		{"periods (unified)", strconv.Itoa(report.Periods)},
	}
	fmt.Fprintln(out, renderTable(title, []column{{header: "Extracted"}, {header: "Count", align: alignRight}}, rows))

	if report.DryRun {
		fmt.Fprintln(out, "Dry run: database not modified")
		return
	}
	s := report.Load
	loaded := [][]string{
		{"teachers created", strconv.Itoa(s.TeachersCreated)},
		{"students created", strconv.Itoa(s.StudentsCreated)},
		{"students updated", strconv.Itoa(s.StudentsUpdated)},
		{"subjects created", strconv.Itoa(s.SubjectsCreated)},
		{"lectures created", strconv.Itoa(s.LecturesCreated)},
		{"classes created", strconv.Itoa(s.ClassesCreated)},
		{"periods added", strconv.Itoa(s.PeriodsAdded)},
		{"enrollments added", strconv.Itoa(s.EnrollmentsAdded)},
		{"administrator created", yesNo(s.AdminCreated)},
	}
	fmt.Fprintln(out, renderTable("", []column{{header: "Loaded"}, {header: "Count", align: alignRight}}, loaded))
	fmt.Fprintf(out, "Finished in %s\n", report.Elapsed.Round(time.Millisecond))
}
