package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const (
	userColumns = "user_info_id, name, role, generation, section, seat_number, credit, created_at"
	tokenLength = 8
)

// Tx exposes natural-key lookups and inserts inside one transaction. Lookups
// return nil without error when no row matches. Rows written through a Tx
// are visible to later lookups on the same Tx.
type Tx struct {
	tx *sqlx.Tx
}

func (t *Tx) get(ctx context.Context, dest any, query string, args ...any) (bool, error) {
	err := t.tx.GetContext(ctx, dest, t.tx.Rebind(query), args...)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (t *Tx) selectAll(ctx context.Context, dest any, query string, args ...any) error {
	return t.tx.SelectContext(ctx, dest, t.tx.Rebind(query), args...)
}

func (t *Tx) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	var (
		res     sql.Result
		execErr error
	)
	if err := retryOnBusy(ensureContext(ctx), func() error {
		res, execErr = t.tx.ExecContext(ctx, t.tx.Rebind(query), args...)
		return execErr
	}); err != nil {
		return nil, err
	}
	return res, nil
}

// TeachersByName returns accounts with the given name and the teacher role.
func (t *Tx) TeachersByName(ctx context.Context, name string) ([]UserInfo, error) {
	var users []UserInfo
	err := t.selectAll(ctx, &users,
		"SELECT "+userColumns+" FROM user_infos WHERE name = ? AND (role & ?) <> 0 ORDER BY created_at, user_info_id",
		name, int(RoleTeacher))
	if err != nil {
		return nil, fmt.Errorf("query teachers %q: %w", name, err)
	}
	return users, nil
}

// StudentsBySeat returns students registered at (generation, section, seat).
func (t *Tx) StudentsBySeat(ctx context.Context, generation, section, seat int) ([]UserInfo, error) {
	var users []UserInfo
	err := t.selectAll(ctx, &users,
		"SELECT "+userColumns+" FROM user_infos WHERE generation = ? AND section = ? AND seat_number = ? AND (role & ?) <> 0 ORDER BY created_at, user_info_id",
		generation, section, seat, int(RoleStudent))
	if err != nil {
		return nil, fmt.Errorf("query students at %d-%d-%d: %w", generation, section, seat, err)
	}
	return users, nil
}

// UserWithRole returns the first account named name holding role.
func (t *Tx) UserWithRole(ctx context.Context, name string, role Role) (*UserInfo, error) {
	var user UserInfo
	found, err := t.get(ctx, &user,
		"SELECT "+userColumns+" FROM user_infos WHERE name = ? AND (role & ?) = ? ORDER BY created_at, user_info_id LIMIT 1",
		name, int(role), int(role))
	if err != nil {
		return nil, fmt.Errorf("query user %q: %w", name, err)
	}
	if !found {
		return nil, nil
	}
	return &user, nil
}

// CreateUser inserts the account together with its identify token and returns
// the stored row.
func (t *Tx) CreateUser(ctx context.Context, user UserInfo) (*UserInfo, error) {
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now().UTC().Format(time.RFC3339Nano)
	if _, err := t.exec(ctx,
		"INSERT INTO user_infos ("+userColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		user.ID, user.Name, int(user.Role), user.Generation, user.Section, user.SeatNumber, user.Credit, user.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("insert user %q: %w", user.Name, err)
	}
	if _, err := t.exec(ctx,
		"INSERT INTO identify_tokens (token, user_info_id, created_at) VALUES (?, ?, ?)",
		newToken(), user.ID, user.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("insert identify token for %q: %w", user.Name, err)
	}
	return &user, nil
}

// UpdateCredit stores a new credit count for a student.
func (t *Tx) UpdateCredit(ctx context.Context, userID string, credit int) error {
	if _, err := t.exec(ctx, "UPDATE user_infos SET credit = ? WHERE user_info_id = ?", credit, userID); err != nil {
		return fmt.Errorf("update credit: %w", err)
	}
	return nil
}

func (t *Tx) SubjectByName(ctx context.Context, name string) (*Subject, error) {
	var subject Subject
	found, err := t.get(ctx, &subject, "SELECT subject_id, name FROM subjects WHERE name = ?", name)
	if err != nil {
		return nil, fmt.Errorf("query subject %q: %w", name, err)
	}
	if !found {
		return nil, nil
	}
	return &subject, nil
}

func (t *Tx) CreateSubject(ctx context.Context, name string) (*Subject, error) {
	subject := Subject{ID: uuid.NewString(), Name: name}
	if _, err := t.exec(ctx, "INSERT INTO subjects (subject_id, name) VALUES (?, ?)", subject.ID, subject.Name); err != nil {
		return nil, fmt.Errorf("insert subject %q: %w", name, err)
	}
	return &subject, nil
}

// FindLecture looks a lecture up by its natural key.
func (t *Tx) FindLecture(ctx context.Context, subjectID, teacherID, room string) (*Lecture, error) {
	var lecture Lecture
	found, err := t.get(ctx, &lecture,
		"SELECT lecture_id, subject_id, teacher_info_id, room FROM lectures WHERE subject_id = ? AND teacher_info_id = ? AND room = ?",
		subjectID, teacherID, room)
	if err != nil {
		return nil, fmt.Errorf("query lecture: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &lecture, nil
}

func (t *Tx) CreateLecture(ctx context.Context, subjectID, teacherID, room string) (*Lecture, error) {
	lecture := Lecture{ID: uuid.NewString(), SubjectID: subjectID, TeacherID: teacherID, Room: room}
	if _, err := t.exec(ctx,
		"INSERT INTO lectures (lecture_id, subject_id, teacher_info_id, room) VALUES (?, ?, ?, ?)",
		lecture.ID, lecture.SubjectID, lecture.TeacherID, lecture.Room,
	); err != nil {
		return nil, fmt.Errorf("insert lecture: %w", err)
	}
	return &lecture, nil
}

// LecturesFor returns the lectures of a subject taught by the named teacher.
func (t *Tx) LecturesFor(ctx context.Context, subject, teacher string) ([]Lecture, error) {
	var lectures []Lecture
	err := t.selectAll(ctx, &lectures, `
		SELECT l.lecture_id, l.subject_id, l.teacher_info_id, l.room
		FROM lectures l
		JOIN subjects s ON s.subject_id = l.subject_id
		JOIN user_infos u ON u.user_info_id = l.teacher_info_id
		WHERE s.name = ? AND u.name = ?
		ORDER BY l.room, l.lecture_id`, subject, teacher)
	if err != nil {
		return nil, fmt.Errorf("query lectures of %q by %q: %w", subject, teacher, err)
	}
	return lectures, nil
}

func (t *Tx) ClassFor(ctx context.Context, lectureID string, division int) (*Class, error) {
	var class Class
	found, err := t.get(ctx, &class,
		"SELECT class_id, lecture_id, division FROM classes WHERE lecture_id = ? AND division = ?",
		lectureID, division)
	if err != nil {
		return nil, fmt.Errorf("query class: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &class, nil
}

func (t *Tx) CreateClass(ctx context.Context, lectureID string, division int) (*Class, error) {
	class := Class{ID: uuid.NewString(), LectureID: lectureID, Division: division}
	if _, err := t.exec(ctx,
		"INSERT INTO classes (class_id, lecture_id, division) VALUES (?, ?, ?)",
		class.ID, class.LectureID, class.Division,
	); err != nil {
		return nil, fmt.Errorf("insert class: %w", err)
	}
	return &class, nil
}

// ClassesBySubject returns every class of the named subject with division.
func (t *Tx) ClassesBySubject(ctx context.Context, subject string, division int) ([]Class, error) {
	var classes []Class
	err := t.selectAll(ctx, &classes, `
		SELECT c.class_id, c.lecture_id, c.division
		FROM classes c
		JOIN lectures l ON l.lecture_id = c.lecture_id
		JOIN subjects s ON s.subject_id = l.subject_id
		WHERE s.name = ? AND c.division = ?
		ORDER BY c.class_id`, subject, division)
	if err != nil {
		return nil, fmt.Errorf("query classes of %q division %d: %w", subject, division, err)
	}
	return classes, nil
}

// AddPeriod records a weekly slot of a class. It reports false when the slot
// already existed.
func (t *Tx) AddPeriod(ctx context.Context, classID string, day, period int) (bool, error) {
	res, err := t.exec(ctx,
		"INSERT INTO periods (class_id, day, period) VALUES (?, ?, ?) ON CONFLICT DO NOTHING",
		classID, day, period)
	if err != nil {
		return false, fmt.Errorf("insert period: %w", err)
	}
	return affected(res)
}

// AddEnrollment enrolls a user in a class. It reports false when the
// enrollment already existed.
func (t *Tx) AddEnrollment(ctx context.Context, classID, userID string) (bool, error) {
	res, err := t.exec(ctx,
		"INSERT INTO enrollments (class_id, user_info_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
		classID, userID)
	if err != nil {
		return false, fmt.Errorf("insert enrollment: %w", err)
	}
	return affected(res)
}

func affected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

func newToken() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:tokenLength])
}
