package extract

import (
	"fmt"
	"strings"

	"timetable/internal/cell"
	"timetable/internal/pattern"
	"timetable/internal/sheet"
)

const (
	sheetEnrollment = "enrollment"
	sheetLecture    = "lecture"
	sheetPeriod     = "period"

	// subjectCacheSeed is the subject used by period rows that precede any
	// labelled row.
	subjectCacheSeed = "None"
)

// Enrollments extracts one EnrollmentInfo per student block, plus the
// placeholder periods proven by each class cell's weekday/period position.
func Enrollments(grid *sheet.Grid, l Layouts) ([]EnrollmentInfo, []PeriodInfo, error) {
	stamps, err := l.Enrollment.Convolute(grid)
	if err != nil {
		return nil, nil, fmt.Errorf("scan enrollment sheet: %w", err)
	}

	var (
		students []EnrollmentInfo
		periods  []PeriodInfo
		seen     = make(map[PeriodInfo]struct{})
	)
	for _, stamp := range stamps {
		var (
			student    *cell.Student
			credit     *cell.Credit
			subjects   ClassRefs
			subjectSet = make(map[ClassRef]struct{})
		)
		for _, hit := range stamp.Hits {
			switch v := hit.Value.(type) {
			case cell.Student:
				if student == nil {
					student = &v
				}
			case cell.Credit:
				if credit == nil {
					credit = &v
				}
			case cell.ClassAssignment:
				p := PeriodInfo{
					Subject:  v.Subject,
					Teacher:  l.unknownTeacher(),
					Division: v.Division,
					Day:      hit.Col + 1,
					Period:   hit.Row,
				}
				if _, dup := seen[p]; !dup {
					seen[p] = struct{}{}
					periods = append(periods, p)
				}
				ref := ClassRef{Subject: v.Subject, Division: v.Division}
				if _, dup := subjectSet[ref]; !dup {
					subjectSet[ref] = struct{}{}
					subjects = append(subjects, ref)
				}
			}
		}
		if student == nil {
			return nil, nil, &ShapeError{Sheet: sheetEnrollment, X: stamp.X, Y: stamp.Y, Missing: cell.CategoryStudent}
		}
		if credit == nil {
			return nil, nil, &ShapeError{Sheet: sheetEnrollment, X: stamp.X, Y: stamp.Y, Missing: cell.CategoryCredit}
		}
		students = append(students, EnrollmentInfo{
			Generation: student.Generation,
			Section:    student.Section,
			SeatNumber: student.SeatNumber,
			Name:       student.Name,
			Credit:     int(*credit),
			Subjects:   subjects,
		})
	}
	return students, periods, nil
}

// Lectures extracts the (subject, teacher, room) assignments of the lecture
// sheet. Each teacher cell is paired with the cell right after it.
func Lectures(grid *sheet.Grid, l Layouts) ([]LectureInfo, error) {
	stamps, err := l.Lecture.Convolute(grid)
	if err != nil {
		return nil, fmt.Errorf("scan lecture sheet: %w", err)
	}

	var (
		lectures []LectureInfo
		seen     = make(map[LectureInfo]struct{})
	)
	for _, stamp := range stamps {
		hit, ok := stamp.Find(cell.CategorySubject)
		if !ok || hit.Empty() {
			return nil, &ShapeError{Sheet: sheetLecture, X: stamp.X, Y: stamp.Y, Missing: cell.CategorySubject}
		}
		subject := strings.ReplaceAll(strings.TrimSpace(string(hit.Value.(cell.Subject))), "\n", "")

		for idx, h := range stamp.Hits {
			teacher, ok := h.Value.(cell.Teacher)
			if !ok {
				continue
			}
			room, ok := roomAfter(stamp.Hits, idx)
			if !ok {
				return nil, &FormatError{
					Sheet:  sheetLecture,
					X:      stamp.X,
					Y:      stamp.Y,
					Text:   string(teacher),
					Reason: "teacher has no room",
				}
			}
			lecture := LectureInfo{Subject: subject, Teacher: string(teacher), Room: string(room)}
			if _, dup := seen[lecture]; dup {
				continue
			}
			seen[lecture] = struct{}{}
			lectures = append(lectures, lecture)
		}
	}
	return lectures, nil
}

func roomAfter(hits []pattern.Hit, idx int) (cell.Room, bool) {
	if idx+1 >= len(hits) {
		return "", false
	}
	room, ok := hits[idx+1].Value.(cell.Room)
	return room, ok
}

// Periods extracts one PeriodInfo per (division, period) slot of the period
// sheet. A row without a subject continues the most recent labelled row; the
// carried subject starts over on every call.
func Periods(grid *sheet.Grid, l Layouts) ([]PeriodInfo, error) {
	stamps, err := l.Period.Convolute(grid)
	if err != nil {
		return nil, fmt.Errorf("scan period sheet: %w", err)
	}

	startCol := l.periodStartCol()
	subjectCache := subjectCacheSeed
	var periods []PeriodInfo
	for _, stamp := range stamps {
		subject, teacher := "", ""
		var slots []PeriodInfo
		for _, hit := range stamp.Hits {
			switch hit.Key {
			case cell.CategorySubject:
				if v, ok := hit.Value.(cell.Subject); ok {
					subject = string(v)
					subjectCache = subject
				} else {
					subject = subjectCache
				}
			case cell.CategoryTeacher:
				if v, ok := hit.Value.(cell.Teacher); ok {
					teacher = string(v)
				}
			case cell.CategoryPeriod:
				list, ok := hit.Value.(cell.PeriodList)
				if !ok {
					continue
				}
				day := hit.Col - startCol + 1
				for _, slot := range list {
					slots = append(slots, PeriodInfo{Division: slot.Division, Day: day, Period: slot.Period})
				}
			}
		}
		for _, p := range slots {
			p.Subject = subject
			p.Teacher = teacher
			periods = append(periods, p)
		}
	}
	return periods, nil
}
