package cell

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"timetable/internal/sheet"
)

// ErrNoMatch is returned by Interpret when the text does not belong to the
// matcher's category.
var ErrNoMatch = errors.New("cell does not match")

// Matcher recognizes one category of cell text and interprets it.
type Matcher interface {
	Name() Category
	Match(text string) bool
	// Interpret returns the typed value, or an error wrapping ErrNoMatch when
	// Match would report false.
	Interpret(text string) (Value, error)
}

// parser is the single function each concrete matcher provides; Match and
// Interpret are both derived from it so they cannot disagree.
type parser func(text string) (Value, bool)

type matcher struct {
	name  Category
	parse parser
}

func (m matcher) Name() Category { return m.name }

func (m matcher) Match(text string) bool {
	_, ok := m.parse(text)
	return ok
}

func (m matcher) Interpret(text string) (Value, error) {
	v, ok := m.parse(text)
	if !ok {
		return nil, fmt.Errorf("%s %q: %w", m.name, text, ErrNoMatch)
	}
	return v, nil
}

const (
	creditSuffix   = "학점"
	divisionSuffix = "반"
	studentIDLen   = 5
)

// StudentMatcher matches "<5 digits> <name>" row headers. The cohort turns
// the grade digit into a generation number.
func StudentMatcher(c Cohort) Matcher {
	return matcher{name: CategoryStudent, parse: func(text string) (Value, bool) {
		fields := strings.Fields(text)
		if len(fields) == 0 {
			return nil, false
		}
		id := fields[0]
		if len(id) != studentIDLen || !isDigits(id) {
			return nil, false
		}
		rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(text), id))
		grade := int(id[0] - '0')
		section, _ := strconv.Atoi(id[1:3])
		seat, _ := strconv.Atoi(id[3:5])
		return Student{
			Generation: c.Generation(grade),
			Section:    section,
			SeatNumber: seat,
			Name:       rest,
		}, true
	}}
}

// CreditMatcher matches "<digits> 학점".
func CreditMatcher() Matcher {
	return matcher{name: CategoryCredit, parse: func(text string) (Value, bool) {
		count, suffix, ok := strings.Cut(text, " ")
		if !ok || strings.TrimSpace(suffix) != creditSuffix {
			return nil, false
		}
		count = strings.TrimSpace(count)
		if !isDigits(count) {
			return nil, false
		}
		n, err := strconv.Atoi(count)
		if err != nil {
			return nil, false
		}
		return Credit(n), true
	}}
}

// ClassMatcher matches "<subject label> <n>반 [...]". With three or more
// tokens the division is the second-to-last token; otherwise, or when that
// token is not a division, the last token is used.
func ClassMatcher() Matcher {
	return matcher{name: CategoryClass, parse: func(text string) (Value, bool) {
		tokens := joinDivisionSuffix(strings.Fields(text))
		if len(tokens) < 2 {
			return nil, false
		}
		candidates := []int{len(tokens) - 1}
		if len(tokens) >= 3 {
			candidates = []int{len(tokens) - 2, len(tokens) - 1}
		}
		for _, idx := range candidates {
			division, ok := parseDivision(tokens[idx])
			if !ok {
				continue
			}
			return ClassAssignment{
				Subject:  strings.Join(tokens[:idx], " "),
				Division: division,
			}, true
		}
		return nil, false
	}}
}

// joinDivisionSuffix glues a detached "반" onto the token before it, so
// "정보처리 3 반" tokenizes like "정보처리 3반".
func joinDivisionSuffix(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if tok == divisionSuffix && len(out) > 0 && isDigits(out[len(out)-1]) {
			out[len(out)-1] += tok
			continue
		}
		out = append(out, tok)
	}
	return out
}

func parseDivision(token string) (int, bool) {
	digits, ok := strings.CutSuffix(token, divisionSuffix)
	if !ok {
		return 0, false
	}
	if !isDigits(digits) {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	return n, err == nil
}

// SubjectMatcher matches any non-blank text.
func SubjectMatcher() Matcher {
	return matcher{name: CategorySubject, parse: func(text string) (Value, bool) {
		trimmed, ok := nonBlank(text)
		return Subject(trimmed), ok
	}}
}

// TeacherMatcher matches any non-blank text.
func TeacherMatcher() Matcher {
	return matcher{name: CategoryTeacher, parse: func(text string) (Value, bool) {
		trimmed, ok := nonBlank(text)
		return Teacher(trimmed), ok
	}}
}

// RoomMatcher matches any non-blank text.
func RoomMatcher() Matcher {
	return matcher{name: CategoryRoom, parse: func(text string) (Value, bool) {
		trimmed, ok := nonBlank(text)
		return Room(trimmed), ok
	}}
}

// periodLine accepts "1,2(1분반)", "3 (2분반", "4(1))"; group 1 holds the
// periods and group 2 the division.
var periodLine = regexp.MustCompile(`^(\d+(?:\s*,\s*\d+)*)\s*\(\s*(\d+)\s*(?:분반)?\s*\)*$`)

// PeriodMatcher matches one or more lines of "<periods>(<division>분반)".
func PeriodMatcher() Matcher {
	return matcher{name: CategoryPeriod, parse: func(text string) (Value, bool) {
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			return nil, false
		}
		var slots PeriodList
		for _, line := range strings.Split(trimmed, "\n") {
			groups := periodLine.FindStringSubmatch(strings.TrimSpace(line))
			if groups == nil {
				return nil, false
			}
			division, err := strconv.Atoi(groups[2])
			if err != nil {
				return nil, false
			}
			for _, p := range strings.Split(groups[1], ",") {
				period, err := strconv.Atoi(strings.TrimSpace(p))
				if err != nil {
					return nil, false
				}
				slots = append(slots, Slot{Division: division, Period: period})
			}
		}
		return slots, true
	}}
}

// EmptyMatcher matches the blank sentinel only.
func EmptyMatcher() Matcher {
	return matcher{name: CategoryEmpty, parse: func(text string) (Value, bool) {
		if text != sheet.Empty {
			return nil, false
		}
		return Empty{}, true
	}}
}

func nonBlank(text string) (string, bool) {
	trimmed := strings.TrimSpace(text)
	return trimmed, trimmed != ""
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
