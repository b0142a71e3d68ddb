package store

import (
	"database/sql"
	"strings"
)

// Role is a bit set of account capabilities.
type Role int

const (
	RoleStudent Role = 1 << iota
	RoleTeacher
	RoleManager
	RoleAdministrator
)

// Has reports whether every bit of flag is set.
func (r Role) Has(flag Role) bool { return r&flag == flag }

func (r Role) String() string {
	names := []struct {
		flag Role
		name string
	}{
		{RoleStudent, "student"},
		{RoleTeacher, "teacher"},
		{RoleManager, "manager"},
		{RoleAdministrator, "administrator"},
	}
	var parts []string
	for _, n := range names {
		if r.Has(n.flag) {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// UserInfo is a student, teacher or administrative account. Seat fields are
// only set for students.
type UserInfo struct {
	ID         string        `db:"user_info_id"`
	Name       string        `db:"name"`
	Role       Role          `db:"role"`
	Generation sql.NullInt64 `db:"generation"`
	Section    sql.NullInt64 `db:"section"`
	SeatNumber sql.NullInt64 `db:"seat_number"`
	Credit     sql.NullInt64 `db:"credit"`
	CreatedAt  string        `db:"created_at"`
}

// NewStudent builds an unsaved student account.
func NewStudent(name string, generation, section, seat, credit int) UserInfo {
	return UserInfo{
		Name:       name,
		Role:       RoleStudent,
		Generation: nullInt(generation),
		Section:    nullInt(section),
		SeatNumber: nullInt(seat),
		Credit:     nullInt(credit),
	}
}

type Subject struct {
	ID   string `db:"subject_id"`
	Name string `db:"name"`
}

type Lecture struct {
	ID        string `db:"lecture_id"`
	SubjectID string `db:"subject_id"`
	TeacherID string `db:"teacher_info_id"`
	Room      string `db:"room"`
}

type Class struct {
	ID        string `db:"class_id"`
	LectureID string `db:"lecture_id"`
	Division  int    `db:"division"`
}

// IdentifyToken is the short code a user signs in with, joined with its owner.
type IdentifyToken struct {
	Token      string `db:"token" json:"token"`
	UserInfoID string `db:"user_info_id" json:"user_info_id"`
	Name       string `db:"name" json:"name"`
	Role       Role   `db:"role" json:"role"`
}

// Health captures diagnostic information about the database.
type Health struct {
	Driver           string   `json:"driver"`
	Location         string   `json:"location"`
	DatabaseExists   bool     `json:"database_exists"`
	DatabaseReadable bool     `json:"database_readable"`
	SchemaVersion    string   `json:"schema_version"`
	TablesPresent    []string `json:"tables_present"`
	MissingTables    []string `json:"missing_tables,omitempty"`
	IntegrityCheck   bool     `json:"integrity_check"`
	Error            string   `json:"error,omitempty"`
}

// TableCount is the row count of one entity kind.
type TableCount struct {
	Name string `json:"name"`
	Rows int    `json:"rows"`
}

func nullInt(v int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(v), Valid: true}
}
