package reconcile

import (
	"fmt"

	"github.com/tiendc/go-deepcopy"

	"timetable/internal/extract"
	"timetable/internal/faults"
)

const stage = "reconcile"

// UnifyPeriods merges the placeholder periods of the enrollment sheet
// (primary) with the teacher-attributed periods of the period sheet
// (secondary). Subjects present in secondary are taken from it verbatim; every
// other primary record is attributed to its subject's single lecture teacher.
// Neither input is modified.
func UnifyPeriods(primary, secondary []extract.PeriodInfo, lectures []extract.LectureInfo) ([]extract.PeriodInfo, error) {
	var copied []extract.PeriodInfo
	if err := deepcopy.Copy(&copied, &secondary); err != nil {
		return nil, fmt.Errorf("copy period sheet records: %w", err)
	}

	multiTeacher := make(map[string]struct{}, len(secondary))
	for _, p := range secondary {
		multiTeacher[p.Subject] = struct{}{}
	}

	teachers := make(map[string]string)
	conflicts := make(map[string][]string)
	for _, lecture := range lectures {
		if _, ok := multiTeacher[lecture.Subject]; ok {
			continue
		}
		current, ok := teachers[lecture.Subject]
		switch {
		case !ok:
			teachers[lecture.Subject] = lecture.Teacher
		case current != lecture.Teacher:
			if len(conflicts[lecture.Subject]) == 0 {
				conflicts[lecture.Subject] = []string{current}
			}
			conflicts[lecture.Subject] = append(conflicts[lecture.Subject], lecture.Teacher)
		}
	}

	out := newPeriodSet(len(copied) + len(primary))
	for _, p := range copied {
		if err := out.add(p); err != nil {
			return nil, err
		}
	}
	for _, p := range primary {
		if _, ok := multiTeacher[p.Subject]; ok {
			continue
		}
		if names, ok := conflicts[p.Subject]; ok {
			return nil, faults.Wrap(faults.ErrAmbiguous, stage, "unify periods",
				fmt.Sprintf("subject %q has lectures by several teachers %q but no period sheet rows", p.Subject, names), nil)
		}
		teacher, ok := teachers[p.Subject]
		if !ok {
			return nil, faults.Wrap(faults.ErrMissingReference, stage, "unify periods",
				fmt.Sprintf("subject %q (division %d) has no lecture", p.Subject, p.Division), nil)
		}
		p.Teacher = teacher
		if err := out.add(p); err != nil {
			return nil, err
		}
	}
	return out.records, nil
}

// periodSet keeps records in insertion order, collapsing exact duplicates and
// rejecting a second teacher for an occupied slot.
type periodSet struct {
	records []extract.PeriodInfo
	slots   map[extract.SlotKey]string
}

func newPeriodSet(capacity int) *periodSet {
	return &periodSet{
		records: make([]extract.PeriodInfo, 0, capacity),
		slots:   make(map[extract.SlotKey]string, capacity),
	}
}

func (s *periodSet) add(p extract.PeriodInfo) error {
	key := p.Slot()
	if teacher, ok := s.slots[key]; ok {
		if teacher == p.Teacher {
			return nil
		}
		return faults.Wrap(faults.ErrAmbiguous, stage, "unify periods",
			fmt.Sprintf("%s division %d on %s period %d is taught by both %q and %q",
				p.Subject, p.Division, extract.DayName(p.Day), p.Period, teacher, p.Teacher), nil)
	}
	s.slots[key] = p.Teacher
	s.records = append(s.records, p)
	return nil
}
