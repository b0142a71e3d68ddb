package loader

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"timetable/internal/extract"
	"timetable/internal/faults"
	"timetable/internal/logging"
	"timetable/internal/store"
)

type seatKey struct {
	generation int
	section    int
	seat       int
}

type lectureKey struct {
	subject string
	teacher string
}

type classKey struct {
	lectureID string
	division  int
}

// run holds the per-load lookup caches. Everything it caches was read or
// written through the same transaction.
type run struct {
	tx      *store.Tx
	logger  *slog.Logger
	summary Summary

	teachers       map[string]*store.UserInfo
	subjects       map[string]*store.Subject
	lectures       map[lectureKey]string
	classes        map[classKey]string
	subjectClasses map[extract.ClassRef]string
}

func newRun(tx *store.Tx, logger *slog.Logger) *run {
	return &run{
		tx:             tx,
		logger:         logger,
		teachers:       make(map[string]*store.UserInfo),
		subjects:       make(map[string]*store.Subject),
		lectures:       make(map[lectureKey]string),
		classes:        make(map[classKey]string),
		subjectClasses: make(map[extract.ClassRef]string),
	}
}

// teacherNames splits a comma-joined teacher cell.
func teacherNames(cell string) []string {
	var names []string
	for _, name := range strings.Split(cell, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// leadTeacher is the teacher a lecture or period is attributed to.
func leadTeacher(cell string) string {
	name, _, _ := strings.Cut(cell, ",")
	return strings.TrimSpace(name)
}

func (r *run) loadTeachers(ctx context.Context, b Batch) error {
	for _, lecture := range b.Lectures {
		for _, name := range teacherNames(lecture.Teacher) {
			if _, ok := r.teachers[name]; ok {
				continue
			}
			teacher, err := r.teacher(ctx, name)
			if err != nil {
				return err
			}
			if teacher == nil {
				teacher, err = r.tx.CreateUser(ctx, store.UserInfo{Name: name, Role: store.RoleTeacher})
				if err != nil {
					return err
				}
				r.summary.TeachersCreated++
				r.logger.Debug("teacher created", logging.String("teacher", name))
			}
			r.teachers[name] = teacher
		}
	}
	return nil
}

// teacher returns the teacher account named name, nil when absent.
func (r *run) teacher(ctx context.Context, name string) (*store.UserInfo, error) {
	if t, ok := r.teachers[name]; ok {
		return t, nil
	}
	found, err := r.tx.TeachersByName(ctx, name)
	if err != nil {
		return nil, err
	}
	switch len(found) {
	case 0:
		return nil, nil
	case 1:
		r.teachers[name] = &found[0]
		return &found[0], nil
	default:
		return nil, faults.Wrap(faults.ErrAmbiguous, stage, "teachers",
			fmt.Sprintf("%d teacher accounts are named %q", len(found), name), nil)
	}
}

func (r *run) loadStudents(ctx context.Context, b Batch) error {
	for _, e := range b.Enrollments {
		found, err := r.tx.StudentsBySeat(ctx, e.Generation, e.Section, e.SeatNumber)
		if err != nil {
			return err
		}
		switch len(found) {
		case 0:
			if _, err := r.tx.CreateUser(ctx, store.NewStudent(e.Name, e.Generation, e.Section, e.SeatNumber, e.Credit)); err != nil {
				return err
			}
			r.summary.StudentsCreated++
		case 1:
			existing := found[0]
			if existing.Name != e.Name {
				return faults.Wrap(faults.ErrConflict, stage, "students",
					fmt.Sprintf("seat %d-%d-%d belongs to %q, sheet names %q",
						e.Generation, e.Section, e.SeatNumber, existing.Name, e.Name), nil)
			}
			if !existing.Credit.Valid || int(existing.Credit.Int64) != e.Credit {
				if err := r.tx.UpdateCredit(ctx, existing.ID, e.Credit); err != nil {
					return err
				}
				r.summary.StudentsUpdated++
			}
		default:
			return faults.Wrap(faults.ErrAmbiguous, stage, "students",
				fmt.Sprintf("%d students share seat %d-%d-%d", len(found), e.Generation, e.Section, e.SeatNumber), nil)
		}
	}
	return nil
}

func (r *run) subject(ctx context.Context, name string) (*store.Subject, error) {
	if s, ok := r.subjects[name]; ok {
		return s, nil
	}
	s, err := r.tx.SubjectByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if s == nil {
		if s, err = r.tx.CreateSubject(ctx, name); err != nil {
			return nil, err
		}
		r.summary.SubjectsCreated++
	}
	r.subjects[name] = s
	return s, nil
}

func (r *run) loadLectures(ctx context.Context, b Batch) error {
	for _, lecture := range b.Lectures {
		subject, err := r.subject(ctx, lecture.Subject)
		if err != nil {
			return err
		}
		name := leadTeacher(lecture.Teacher)
		teacher, err := r.teacher(ctx, name)
		if err != nil {
			return err
		}
		if teacher == nil {
			return faults.Wrap(faults.ErrMissingReference, stage, "lectures",
				fmt.Sprintf("teacher %q of %s (room %s) does not exist", name, lecture.Subject, lecture.Room), nil)
		}
		existing, err := r.tx.FindLecture(ctx, subject.ID, teacher.ID, lecture.Room)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		if _, err := r.tx.CreateLecture(ctx, subject.ID, teacher.ID, lecture.Room); err != nil {
			return err
		}
		r.summary.LecturesCreated++
	}
	return nil
}

func (r *run) lectureFor(ctx context.Context, p extract.PeriodInfo) (string, error) {
	key := lectureKey{subject: p.Subject, teacher: leadTeacher(p.Teacher)}
	if id, ok := r.lectures[key]; ok {
		return id, nil
	}
	found, err := r.tx.LecturesFor(ctx, key.subject, key.teacher)
	if err != nil {
		return "", err
	}
	switch len(found) {
	case 0:
		return "", faults.Wrap(faults.ErrMissingReference, stage, "periods",
			fmt.Sprintf("no lecture of %q by %q for division %d", key.subject, key.teacher, p.Division), nil)
	case 1:
		r.lectures[key] = found[0].ID
		return found[0].ID, nil
	default:
		return "", faults.Wrap(faults.ErrAmbiguous, stage, "periods",
			fmt.Sprintf("%d lectures of %q by %q", len(found), key.subject, key.teacher), nil)
	}
}

func (r *run) classFor(ctx context.Context, lectureID string, division int) (string, error) {
	key := classKey{lectureID: lectureID, division: division}
	if id, ok := r.classes[key]; ok {
		return id, nil
	}
	class, err := r.tx.ClassFor(ctx, lectureID, division)
	if err != nil {
		return "", err
	}
	if class == nil {
		if class, err = r.tx.CreateClass(ctx, lectureID, division); err != nil {
			return "", err
		}
		r.summary.ClassesCreated++
	}
	r.classes[key] = class.ID
	return class.ID, nil
}

func (r *run) loadPeriods(ctx context.Context, b Batch) error {
	for _, p := range b.Periods {
		lectureID, err := r.lectureFor(ctx, p)
		if err != nil {
			return err
		}
		classID, err := r.classFor(ctx, lectureID, p.Division)
		if err != nil {
			return err
		}
		added, err := r.tx.AddPeriod(ctx, classID, p.Day, p.Period)
		if err != nil {
			return err
		}
		if added {
			r.summary.PeriodsAdded++
		}
	}
	return nil
}

func (r *run) classOf(ctx context.Context, ref extract.ClassRef) (string, error) {
	if id, ok := r.subjectClasses[ref]; ok {
		return id, nil
	}
	found, err := r.tx.ClassesBySubject(ctx, ref.Subject, ref.Division)
	if err != nil {
		return "", err
	}
	switch len(found) {
	case 0:
		return "", faults.Wrap(faults.ErrMissingReference, stage, "enrollments",
			fmt.Sprintf("no class for %s", ref), nil)
	case 1:
		r.subjectClasses[ref] = found[0].ID
		return found[0].ID, nil
	default:
		return "", faults.Wrap(faults.ErrAmbiguous, stage, "enrollments",
			fmt.Sprintf("%d classes match %s", len(found), ref), nil)
	}
}

func (r *run) loadEnrollments(ctx context.Context, b Batch) error {
	for _, e := range b.Enrollments {
		student, err := r.student(ctx, e)
		if err != nil {
			return err
		}
		for _, ref := range e.Subjects {
			classID, err := r.classOf(ctx, ref)
			if err != nil {
				return fmt.Errorf("enroll %s: %w", e.Name, err)
			}
			added, err := r.tx.AddEnrollment(ctx, classID, student.ID)
			if err != nil {
				return err
			}
			if added {
				r.summary.EnrollmentsAdded++
			}
		}
	}
	return nil
}

func (r *run) student(ctx context.Context, e extract.EnrollmentInfo) (*store.UserInfo, error) {
	found, err := r.tx.StudentsBySeat(ctx, e.Generation, e.Section, e.SeatNumber)
	if err != nil {
		return nil, err
	}
	for i := range found {
		if found[i].Name == e.Name {
			return &found[i], nil
		}
	}
	return nil, faults.Wrap(faults.ErrMissingReference, stage, "enrollments",
		fmt.Sprintf("student %s at %d-%d-%d does not exist", e.Name, e.Generation, e.Section, e.SeatNumber), nil)
}

func (r *run) ensureAdmin(ctx context.Context, name string) error {
	admin, err := r.tx.UserWithRole(ctx, name, store.RoleAdministrator)
	if err != nil {
		return err
	}
	if admin != nil {
		return nil
	}
	if _, err := r.tx.CreateUser(ctx, store.UserInfo{Name: name, Role: store.RoleAdministrator}); err != nil {
		return err
	}
	r.summary.AdminCreated = true
	return nil
}
