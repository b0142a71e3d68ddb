package reconcile_test

import (
	"errors"
	"reflect"
	"testing"

	"timetable/internal/extract"
	"timetable/internal/faults"
	"timetable/internal/reconcile"
)

func TestUnifyPeriods(t *testing.T) {
	primary := []extract.PeriodInfo{
		{Subject: "국어", Teacher: "Unknown", Division: 1, Day: 1, Period: 1},
		{Subject: "정보처리", Teacher: "Unknown", Division: 3, Day: 2, Period: 4},
	}
	secondary := []extract.PeriodInfo{
		{Subject: "정보처리", Teacher: "박민수", Division: 3, Day: 2, Period: 4},
		{Subject: "정보처리", Teacher: "최지원", Division: 4, Day: 3, Period: 1},
	}
	lectures := []extract.LectureInfo{
		{Subject: "국어", Teacher: "김철수", Room: "101"},
		{Subject: "정보처리", Teacher: "박민수", Room: "실습실"},
		{Subject: "정보처리", Teacher: "최지원", Room: "실습실"},
	}

	got, err := reconcile.UnifyPeriods(primary, secondary, lectures)
	if err != nil {
		t.Fatalf("UnifyPeriods: %v", err)
	}
	want := []extract.PeriodInfo{
		{Subject: "정보처리", Teacher: "박민수", Division: 3, Day: 2, Period: 4},
		{Subject: "정보처리", Teacher: "최지원", Division: 4, Day: 3, Period: 1},
		{Subject: "국어", Teacher: "김철수", Division: 1, Day: 1, Period: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}

	if primary[0].Teacher != "Unknown" {
		t.Fatal("primary input was modified")
	}
	got[0].Teacher = "changed"
	if secondary[0].Teacher != "박민수" {
		t.Fatal("output aliases the secondary input")
	}
}

func TestUnifyPeriodsMissingLecture(t *testing.T) {
	primary := []extract.PeriodInfo{{Subject: "체육", Teacher: "Unknown", Division: 1, Day: 1, Period: 1}}
	_, err := reconcile.UnifyPeriods(primary, nil, []extract.LectureInfo{{Subject: "국어", Teacher: "김철수", Room: "101"}})
	if !errors.Is(err, faults.ErrMissingReference) {
		t.Fatalf("expected missing reference, got %v", err)
	}
}

func TestUnifyPeriodsConflictingTeachers(t *testing.T) {
	primary := []extract.PeriodInfo{{Subject: "국어", Teacher: "Unknown", Division: 1, Day: 1, Period: 1}}
	lectures := []extract.LectureInfo{
		{Subject: "국어", Teacher: "김철수", Room: "101"},
		{Subject: "국어", Teacher: "이영희", Room: "102"},
	}
	_, err := reconcile.UnifyPeriods(primary, nil, lectures)
	if !errors.Is(err, faults.ErrAmbiguous) {
		t.Fatalf("expected ambiguity, got %v", err)
	}
}

func TestUnifyPeriodsSlotTaughtTwice(t *testing.T) {
	secondary := []extract.PeriodInfo{
		{Subject: "정보처리", Teacher: "박민수", Division: 3, Day: 2, Period: 4},
		{Subject: "정보처리", Teacher: "최지원", Division: 3, Day: 2, Period: 4},
	}
	_, err := reconcile.UnifyPeriods(nil, secondary, nil)
	if !errors.Is(err, faults.ErrAmbiguous) {
		t.Fatalf("expected ambiguity, got %v", err)
	}
}

func TestUnifyPeriodsCollapsesDuplicates(t *testing.T) {
	primary := []extract.PeriodInfo{
		{Subject: "국어", Teacher: "Unknown", Division: 1, Day: 1, Period: 1},
		{Subject: "국어", Teacher: "Unknown", Division: 1, Day: 1, Period: 1},
	}
	lectures := []extract.LectureInfo{
		{Subject: "국어", Teacher: "김철수", Room: "101"},
		{Subject: "국어", Teacher: "김철수", Room: "102"},
	}
	got, err := reconcile.UnifyPeriods(primary, nil, lectures)
	if err != nil {
		t.Fatalf("UnifyPeriods: %v", err)
	}
	if len(got) != 1 || got[0].Teacher != "김철수" {
		t.Fatalf("got %+v", got)
	}
}
