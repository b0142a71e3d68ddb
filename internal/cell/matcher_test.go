package cell_test

import (
	"errors"
	"reflect"
	"testing"

	"timetable/internal/cell"
)

func TestStudentMatcher(t *testing.T) {
	m := cell.StudentMatcher(cell.Cohort{EpochYear: 1983, Year: 2025})

	got, err := m.Interpret("51203 홍길동")
	if err != nil {
		t.Fatalf("Interpret: %v", err)
	}
	want := cell.Student{Generation: 38, Section: 12, SeatNumber: 3, Name: "홍길동"}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}

	for _, text := range []string{"", "1203 홍길동", "5120A 홍길동", "홍길동 51203", "512034 홍길동"} {
		if m.Match(text) {
			t.Errorf("Match(%q) = true", text)
		}
	}
}

func TestCohortGeneration(t *testing.T) {
	c := cell.Cohort{EpochYear: 1983, Year: 2025}
	if got := c.Generation(1); got != 42 {
		t.Fatalf("grade 1 generation = %d, want 42", got)
	}
	if got := c.Generation(3); got != 40 {
		t.Fatalf("grade 3 generation = %d, want 40", got)
	}
}

func TestCreditMatcher(t *testing.T) {
	m := cell.CreditMatcher()
	got, err := m.Interpret("12 학점")
	if err != nil {
		t.Fatalf("Interpret: %v", err)
	}
	if got != cell.Credit(12) {
		t.Fatalf("got %v, want 12", got)
	}
	for _, text := range []string{"12학점", "12 점", "x 학점", " 학점", ""} {
		if m.Match(text) {
			t.Errorf("Match(%q) = true", text)
		}
	}
}

func TestClassMatcher(t *testing.T) {
	m := cell.ClassMatcher()
	tests := []struct {
		text string
		want cell.ClassAssignment
	}{
		{"정보처리 3반", cell.ClassAssignment{Subject: "정보처리", Division: 3}},
		{"인공 지능 2반", cell.ClassAssignment{Subject: "인공 지능", Division: 2}},
		{"물리학 1반 A실", cell.ClassAssignment{Subject: "물리학", Division: 1}},
		{"  화학   4반 ", cell.ClassAssignment{Subject: "화학", Division: 4}},
		{"정보처리 3 반", cell.ClassAssignment{Subject: "정보처리", Division: 3}},
		{"인공 지능 2 반 B실", cell.ClassAssignment{Subject: "인공 지능", Division: 2}},
	}
	for _, tt := range tests {
		got, err := m.Interpret(tt.text)
		if err != nil {
			t.Fatalf("Interpret(%q): %v", tt.text, err)
		}
		if got != tt.want {
			t.Errorf("Interpret(%q) = %+v, want %+v", tt.text, got, tt.want)
		}
	}
	for _, text := range []string{"정보처리", "3반", "3 반", "정보처리 셋반", "정보처리 3", "정보처리 반", ""} {
		if m.Match(text) {
			t.Errorf("Match(%q) = true", text)
		}
	}
}

func TestPeriodMatcher(t *testing.T) {
	m := cell.PeriodMatcher()
	got, err := m.Interpret("1,2(1분반)\n3(2분반)")
	if err != nil {
		t.Fatalf("Interpret: %v", err)
	}
	want := cell.PeriodList{{Division: 1, Period: 1}, {Division: 1, Period: 2}, {Division: 2, Period: 3}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}

	lenient, err := m.Interpret(" 5, 6 (3분반 ")
	if err != nil {
		t.Fatalf("Interpret lenient: %v", err)
	}
	if !reflect.DeepEqual(lenient, cell.PeriodList{{Division: 3, Period: 5}, {Division: 3, Period: 6}}) {
		t.Fatalf("lenient = %+v", lenient)
	}

	doubled, err := m.Interpret("1,2(1분반))")
	if err != nil {
		t.Fatalf("Interpret doubled paren: %v", err)
	}
	if !reflect.DeepEqual(doubled, cell.PeriodList{{Division: 1, Period: 1}, {Division: 1, Period: 2}}) {
		t.Fatalf("doubled = %+v", doubled)
	}

	for _, text := range []string{"", "월요일", "1,2", "(1분반)", "1(1분반)\n자습"} {
		if m.Match(text) {
			t.Errorf("Match(%q) = true", text)
		}
	}
}

func TestTextMatchersRejectBlank(t *testing.T) {
	for _, m := range []cell.Matcher{cell.SubjectMatcher(), cell.TeacherMatcher(), cell.RoomMatcher()} {
		if m.Match("") || m.Match("   ") {
			t.Errorf("%s matched blank text", m.Name())
		}
		v, err := m.Interpret(" 김철수 ")
		if err != nil {
			t.Fatalf("%s Interpret: %v", m.Name(), err)
		}
		if v.Category() != m.Name() {
			t.Errorf("%s produced %s value", m.Name(), v.Category())
		}
	}
}

func TestEmptyMatcher(t *testing.T) {
	m := cell.EmptyMatcher()
	if !m.Match("") {
		t.Fatal("empty sentinel not matched")
	}
	if m.Match(" ") || m.Match("x") {
		t.Fatal("non-empty text matched")
	}
	v, err := m.Interpret("")
	if err != nil || !cell.IsEmpty(v) {
		t.Fatalf("Interpret(\"\") = %v, %v", v, err)
	}
}

func TestInterpretReportsNoMatch(t *testing.T) {
	_, err := cell.CreditMatcher().Interpret("abc")
	if !errors.Is(err, cell.ErrNoMatch) {
		t.Fatalf("expected ErrNoMatch, got %v", err)
	}
}

func TestVariants(t *testing.T) {
	v := cell.OneOf(cell.ClassMatcher(), cell.EmptyMatcher())
	if v.Name() != cell.CategoryClass {
		t.Fatalf("name = %s, want class", v.Name())
	}

	got, err := v.Interpret("")
	if err != nil || !cell.IsEmpty(got) {
		t.Fatalf("blank interpreted as %v, %v", got, err)
	}
	got, err = v.Interpret("화학 2반")
	if err != nil {
		t.Fatalf("Interpret: %v", err)
	}
	if got != (cell.ClassAssignment{Subject: "화학", Division: 2}) {
		t.Fatalf("got %+v", got)
	}

	if v.Match("화학") {
		t.Fatal("unexpected match")
	}
	if _, err := v.Interpret("화학"); !errors.Is(err, cell.ErrNoMatch) {
		t.Fatalf("expected ErrNoMatch, got %v", err)
	}
}

func TestVariantsFirstMatchWins(t *testing.T) {
	v := cell.OneOf(cell.SubjectMatcher(), cell.TeacherMatcher())
	got, err := v.Interpret("국어")
	if err != nil {
		t.Fatal(err)
	}
	if got.Category() != cell.CategorySubject {
		t.Fatalf("category = %s, want subject", got.Category())
	}
}
