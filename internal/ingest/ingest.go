package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"timetable/internal/config"
	"timetable/internal/extract"
	"timetable/internal/faults"
	"timetable/internal/loader"
	"timetable/internal/logging"
	"timetable/internal/reconcile"
	"timetable/internal/sheet"
)

// ErrLocked is returned when another run holds the ingestion lock.
var ErrLocked = errors.New("another ingestion run is in progress")

// Options adjust one run.
type Options struct {
	// DryRun extracts and reconciles without touching the database.
	DryRun bool
}

// Report describes a finished run.
type Report struct {
	RunID             string         `json:"run_id"`
	DryRun            bool           `json:"dry_run"`
	Sources           Sources        `json:"sources"`
	Enrollments       int            `json:"enrollments"`
	Lectures          int            `json:"lectures"`
	EnrollmentPeriods int            `json:"enrollment_periods"`
	SheetPeriods      int            `json:"sheet_periods"`
	Periods           int            `json:"periods"`
	Load              loader.Summary `json:"load"`
	ElapsedMS         int64          `json:"elapsed_ms"`

	Elapsed time.Duration `json:"-"`
	Batch   loader.Batch  `json:"-"`
}

// Runner executes ingestion runs for one configuration.
type Runner struct {
	cfg    *config.Config
	db     loader.TxRunner
	base   *slog.Logger
	logger *slog.Logger
	now    func() time.Time
}

// NewRunner constructs a Runner. db may be nil when only dry runs are used.
func NewRunner(cfg *config.Config, db loader.TxRunner, logger *slog.Logger) *Runner {
	return &Runner{
		cfg:    cfg,
		db:     db,
		base:   logger,
		logger: logging.NewComponentLogger(logger, "ingest"),
		now:    time.Now,
	}
}

// Run reads the three workbooks, extracts and reconciles their records and,
// unless opts.DryRun is set, loads them in one transaction. Only one run per
// data directory proceeds at a time.
func (r *Runner) Run(ctx context.Context, src Sources, opts Options) (Report, error) {
	if err := src.validate(); err != nil {
		return Report{}, faults.Wrap(faults.ErrConfiguration, "ingest", "sources", "", err)
	}
	if !opts.DryRun && r.db == nil {
		return Report{}, errors.New("ingest: no database configured")
	}
	if err := r.cfg.EnsureDirectories(); err != nil {
		return Report{}, fmt.Errorf("ensure directories: %w", err)
	}

	lock := flock.New(r.cfg.LockPath())
	ok, err := lock.TryLock()
	if err != nil {
		return Report{}, fmt.Errorf("acquire ingest lock: %w", err)
	}
	if !ok {
		return Report{}, fmt.Errorf("%w (lock %s)", ErrLocked, r.cfg.LockPath())
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			r.logger.Warn("failed to release ingest lock", logging.Error(err))
		}
	}()

	started := r.now()
	report := Report{RunID: uuid.NewString(), DryRun: opts.DryRun, Sources: src}
	ctx = logging.WithRunID(ctx, report.RunID)
	logging.WithContext(ctx, r.logger).Info("ingestion started",
		logging.Bool("dry_run", opts.DryRun),
		logging.String("enrollment", src.Enrollment),
		logging.String("lecture", src.Lecture),
		logging.String("period", src.Period),
	)

	batch, err := r.prepare(logging.WithStage(ctx, "extract"), src, &report)
	if err != nil {
		r.fail(ctx, err)
		return report, err
	}
	report.Batch = batch

	if !opts.DryRun {
		ctx := logging.WithStage(ctx, "load")
		l := loader.New(r.db,
			loader.WithLogger(r.base),
			loader.WithAdminName(r.cfg.Ingest.AdminName),
		)
		summary, err := l.Load(ctx, batch)
		if err != nil {
			r.fail(ctx, err)
			return report, err
		}
		report.Load = summary
	}

	report.Elapsed = r.now().Sub(started)
	report.ElapsedMS = report.Elapsed.Milliseconds()
	logging.WithContext(ctx, r.logger).Info("ingestion finished",
		logging.Int("enrollments", report.Enrollments),
		logging.Int("lectures", report.Lectures),
		logging.Int("periods", report.Periods),
		logging.Duration("elapsed", report.Elapsed),
	)
	return report, nil
}

// prepare runs extraction and reconciliation.
func (r *Runner) prepare(ctx context.Context, src Sources, report *Report) (loader.Batch, error) {
	logger := logging.WithContext(ctx, r.logger)
	layouts := LayoutsFor(r.cfg, r.now())

	grid, err := r.read(src.Enrollment, KindEnrollments)
	if err != nil {
		return loader.Batch{}, err
	}
	enrollments, primary, err := extract.Enrollments(grid, layouts)
	if err != nil {
		return loader.Batch{}, fmt.Errorf("extract %s: %w", src.Enrollment, err)
	}
	logger.Info("sheet extracted", logging.String(logging.FieldSheet, src.Enrollment),
		logging.Int("students", len(enrollments)), logging.Int("periods", len(primary)))

	if grid, err = r.read(src.Lecture, KindLectures); err != nil {
		return loader.Batch{}, err
	}
	lectures, err := extract.Lectures(grid, layouts)
	if err != nil {
		return loader.Batch{}, fmt.Errorf("extract %s: %w", src.Lecture, err)
	}
	logger.Info("sheet extracted", logging.String(logging.FieldSheet, src.Lecture),
		logging.Int("lectures", len(lectures)))

	if grid, err = r.read(src.Period, KindPeriods); err != nil {
		return loader.Batch{}, err
	}
	secondary, err := extract.Periods(grid, layouts)
	if err != nil {
		return loader.Batch{}, fmt.Errorf("extract %s: %w", src.Period, err)
	}
	logger.Info("sheet extracted", logging.String(logging.FieldSheet, src.Period),
		logging.Int("periods", len(secondary)))

	periods, err := reconcile.UnifyPeriods(primary, secondary, lectures)
	if err != nil {
		return loader.Batch{}, err
	}

	report.Enrollments = len(enrollments)
	report.Lectures = len(lectures)
	report.EnrollmentPeriods = len(primary)
	report.SheetPeriods = len(secondary)
	report.Periods = len(periods)
	return loader.Batch{Enrollments: enrollments, Lectures: lectures, Periods: periods}, nil
}

func (r *Runner) read(path string, kind Kind) (*sheet.Grid, error) {
	grid, err := sheet.ReadFile(path, SheetOptions(r.cfg, kind, ""))
	if err != nil {
		return nil, fmt.Errorf("read %s sheet: %w", kind, err)
	}
	return grid, nil
}

func (r *Runner) fail(ctx context.Context, err error) {
	kind := faults.Classify(err)
	logging.ErrorWithContext(logging.WithContext(ctx, r.logger), "ingestion failed", "ingest_failed",
		logging.Error(err),
		logging.String("fault", string(kind)),
		logging.String(logging.FieldErrorHint, faults.Hint(kind)),
	)
}
