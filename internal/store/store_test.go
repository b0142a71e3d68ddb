package store_test

import (
	"context"
	"errors"
	"testing"

	"timetable/internal/store"
	"timetable/internal/testsupport"
)

func TestOpenAppliesMigrations(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	health, err := st.CheckHealth(context.Background())
	if err != nil {
		t.Fatalf("CheckHealth: %v", err)
	}
	if !health.DatabaseExists || !health.DatabaseReadable || !health.IntegrityCheck {
		t.Fatalf("unexpected health: %+v", health)
	}
	if len(health.MissingTables) != 0 {
		t.Fatalf("missing tables: %v", health.MissingTables)
	}
	if health.SchemaVersion != "001_init" {
		t.Fatalf("schema version = %q", health.SchemaVersion)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// Reopening must not re-run applied migrations.
	reopened := testsupport.MustOpenStore(t, cfg)
	if _, err := reopened.Stats(context.Background()); err != nil {
		t.Fatalf("Stats after reopen: %v", err)
	}
}

func TestWithTxReadYourWrites(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	err := st.WithTx(ctx, func(tx *store.Tx) error {
		teacher, err := tx.CreateUser(ctx, store.UserInfo{Name: "김철수", Role: store.RoleTeacher})
		if err != nil {
			return err
		}
		subject, err := tx.CreateSubject(ctx, "국어")
		if err != nil {
			return err
		}
		lecture, err := tx.CreateLecture(ctx, subject.ID, teacher.ID, "101")
		if err != nil {
			return err
		}

		found, err := tx.FindLecture(ctx, subject.ID, teacher.ID, "101")
		if err != nil || found == nil || found.ID != lecture.ID {
			t.Fatalf("FindLecture = %+v, %v", found, err)
		}
		lectures, err := tx.LecturesFor(ctx, "국어", "김철수")
		if err != nil || len(lectures) != 1 {
			t.Fatalf("LecturesFor = %+v, %v", lectures, err)
		}

		class, err := tx.CreateClass(ctx, lecture.ID, 2)
		if err != nil {
			return err
		}
		added, err := tx.AddPeriod(ctx, class.ID, 1, 3)
		if err != nil || !added {
			t.Fatalf("AddPeriod = %v, %v", added, err)
		}
		added, err = tx.AddPeriod(ctx, class.ID, 1, 3)
		if err != nil || added {
			t.Fatalf("duplicate AddPeriod = %v, %v", added, err)
		}
		classes, err := tx.ClassesBySubject(ctx, "국어", 2)
		if err != nil || len(classes) != 1 || classes[0].ID != class.ID {
			t.Fatalf("ClassesBySubject = %+v, %v", classes, err)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithTx: %v", err)
	}

	counts := statsByName(t, st)
	if counts["teachers"] != 1 || counts["lectures"] != 1 || counts["periods"] != 1 || counts["identify_tokens"] != 1 {
		t.Fatalf("unexpected counts: %v", counts)
	}
}

func TestWithTxRollsBackOnError(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()
	boom := errors.New("boom")

	err := st.WithTx(ctx, func(tx *store.Tx) error {
		if _, err := tx.CreateSubject(ctx, "국어"); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if counts := statsByName(t, st); counts["subjects"] != 0 {
		t.Fatalf("subject survived rollback: %v", counts)
	}
}

func TestLookupsReturnNilWhenAbsent(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	err := st.WithTx(ctx, func(tx *store.Tx) error {
		subject, err := tx.SubjectByName(ctx, "없음")
		if err != nil || subject != nil {
			t.Fatalf("SubjectByName = %+v, %v", subject, err)
		}
		user, err := tx.UserWithRole(ctx, "administrator", store.RoleAdministrator)
		if err != nil || user != nil {
			t.Fatalf("UserWithRole = %+v, %v", user, err)
		}
		teachers, err := tx.TeachersByName(ctx, "김철수")
		if err != nil || len(teachers) != 0 {
			t.Fatalf("TeachersByName = %+v, %v", teachers, err)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithTx: %v", err)
	}
}

func TestStudentsBySeatAndTokens(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	err := st.WithTx(ctx, func(tx *store.Tx) error {
		student, err := tx.CreateUser(ctx, store.NewStudent("홍길동", 38, 12, 3, 10))
		if err != nil {
			return err
		}
		if err := tx.UpdateCredit(ctx, student.ID, 12); err != nil {
			return err
		}
		if _, err := tx.CreateUser(ctx, store.UserInfo{Name: "관리자", Role: store.RoleAdministrator}); err != nil {
			return err
		}
		found, err := tx.StudentsBySeat(ctx, 38, 12, 3)
		if err != nil || len(found) != 1 {
			t.Fatalf("StudentsBySeat = %+v, %v", found, err)
		}
		if found[0].Credit.Int64 != 12 || found[0].Name != "홍길동" {
			t.Fatalf("student = %+v", found[0])
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithTx: %v", err)
	}

	tokens, err := st.Tokens(ctx, "")
	if err != nil {
		t.Fatalf("Tokens: %v", err)
	}
	if len(tokens) != 2 {
		t.Fatalf("tokens = %+v", tokens)
	}
	if tokens[0].Name != "관리자" || !tokens[0].Role.Has(store.RoleAdministrator) {
		t.Fatalf("administrator should sort first: %+v", tokens)
	}
	for _, tok := range tokens {
		if len(tok.Token) != 8 {
			t.Fatalf("token %q is not 8 characters", tok.Token)
		}
	}

	filtered, err := st.Tokens(ctx, "홍길동")
	if err != nil || len(filtered) != 1 || filtered[0].Name != "홍길동" {
		t.Fatalf("filtered tokens = %+v, %v", filtered, err)
	}
}

func TestRoleString(t *testing.T) {
	if got := (store.RoleTeacher | store.RoleAdministrator).String(); got != "teacher|administrator" {
		t.Fatalf("String = %q", got)
	}
	if got := store.Role(0).String(); got != "none" {
		t.Fatalf("String = %q", got)
	}
}

func statsByName(t *testing.T, st *store.Store) map[string]int {
	t.Helper()
	counts, err := st.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	out := make(map[string]int, len(counts))
	for _, c := range counts {
		out[c.Name] = c.Rows
	}
	return out
}
