package loader

import (
	"context"
	"log/slog"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"timetable/internal/extract"
	"timetable/internal/logging"
	"timetable/internal/store"
)

// DefaultAdminName is the administrator account ensured after every load.
const DefaultAdminName = "administrator"

const stage = "load"

// TxRunner runs a function inside one database transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(*store.Tx) error) error
}

// Batch is the reconciled output of one ingestion run.
type Batch struct {
	Enrollments []extract.EnrollmentInfo
	Lectures    []extract.LectureInfo
	Periods     []extract.PeriodInfo
}

// Summary counts what a load created or changed.
type Summary struct {
	TeachersCreated  int  `json:"teachers_created"`
	StudentsCreated  int  `json:"students_created"`
	StudentsUpdated  int  `json:"students_updated"`
	SubjectsCreated  int  `json:"subjects_created"`
	LecturesCreated  int  `json:"lectures_created"`
	ClassesCreated   int  `json:"classes_created"`
	PeriodsAdded     int  `json:"periods_added"`
	EnrollmentsAdded int  `json:"enrollments_added"`
	AdminCreated     bool `json:"admin_created"`
}

// Loader maps extracted records onto stored entities.
type Loader struct {
	db         TxRunner
	logger     *slog.Logger
	adminName  string
	validate   *validator.Validate
	translator ut.Translator
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets the logger used for progress messages.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// WithAdminName overrides the administrator account name.
func WithAdminName(name string) Option {
	return func(l *Loader) {
		if name != "" {
			l.adminName = name
		}
	}
}

// New constructs a Loader writing through db.
func New(db TxRunner, opts ...Option) *Loader {
	l := &Loader{db: db, adminName: DefaultAdminName}
	for _, opt := range opts {
		opt(l)
	}
	l.logger = logging.NewComponentLogger(l.logger, "loader")
	l.validate, l.translator = newValidator()
	return l
}

// Load validates the batch and writes it in one transaction: teachers,
// students, lectures, periods, enrollments and finally the administrator
// account. Any error rolls back every write of the run.
func (l *Loader) Load(ctx context.Context, batch Batch) (Summary, error) {
	if err := l.validateBatch(batch); err != nil {
		return Summary{}, err
	}

	logger := logging.WithContext(ctx, l.logger)
	started := time.Now()
	var summary Summary
	err := l.db.WithTx(ctx, func(tx *store.Tx) error {
		r := newRun(tx, logger)
		steps := []struct {
			name string
			fn   func(context.Context, Batch) error
		}{
			{"teachers", r.loadTeachers},
			{"students", r.loadStudents},
			{"lectures", r.loadLectures},
			{"periods", r.loadPeriods},
			{"enrollments", r.loadEnrollments},
			{"administrator", func(ctx context.Context, _ Batch) error { return r.ensureAdmin(ctx, l.adminName) }},
		}
		for _, step := range steps {
			if err := step.fn(ctx, batch); err != nil {
				return err
			}
			logger.Debug("load step complete", logging.String("step", step.name))
		}
		summary = r.summary
		return nil
	})
	if err != nil {
		return Summary{}, err
	}

	logger.Info("load committed",
		logging.Int("teachers_created", summary.TeachersCreated),
		logging.Int("students_created", summary.StudentsCreated),
		logging.Int("lectures_created", summary.LecturesCreated),
		logging.Int("classes_created", summary.ClassesCreated),
		logging.Int("periods_added", summary.PeriodsAdded),
		logging.Int("enrollments_added", summary.EnrollmentsAdded),
		logging.Duration("elapsed", time.Since(started)),
	)
	return summary, nil
}
