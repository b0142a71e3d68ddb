package cell

// Category names the semantic kind of a cell. The string form is the stable
// key extractors use to pick hits out of a stamp.
type Category string

const (
	CategoryStudent Category = "student"
	CategoryCredit  Category = "credit"
	CategoryClass   Category = "class"
	CategorySubject Category = "subject"
	CategoryTeacher Category = "teacher"
	CategoryRoom    Category = "room"
	CategoryPeriod  Category = "period"
	CategoryEmpty   Category = "empty"
)

// Value is the interpreted content of a matched cell. The set of
// implementations is closed; switch on the concrete type.
type Value interface {
	Category() Category
	sealed()
}

// Student is a row header such as "51203 홍길동".
type Student struct {
	Generation int
	Section    int
	SeatNumber int
	Name       string
}

// Credit is the credit count of a student block.
type Credit int

// ClassAssignment is a "<subject> <n>반" cell.
type ClassAssignment struct {
	Subject  string
	Division int
}

type Subject string

type Teacher string

type Room string

// Slot is one (division, period) pair of a period list.
type Slot struct {
	Division int
	Period   int
}

// PeriodList is the ordered expansion of a cell such as "1,2(1분반)".
type PeriodList []Slot

// Empty is the value of a blank cell.
type Empty struct{}

func (Student) Category() Category         { return CategoryStudent }
func (Credit) Category() Category          { return CategoryCredit }
func (ClassAssignment) Category() Category { return CategoryClass }
func (Subject) Category() Category         { return CategorySubject }
func (Teacher) Category() Category         { return CategoryTeacher }
func (Room) Category() Category            { return CategoryRoom }
func (PeriodList) Category() Category      { return CategoryPeriod }
func (Empty) Category() Category           { return CategoryEmpty }

func (Student) sealed()         {}
func (Credit) sealed()          {}
func (ClassAssignment) sealed() {}
func (Subject) sealed()         {}
func (Teacher) sealed()         {}
func (Room) sealed()            {}
func (PeriodList) sealed()      {}
func (Empty) sealed()           {}

// IsEmpty reports whether v is the value of a blank cell.
func IsEmpty(v Value) bool {
	_, ok := v.(Empty)
	return v == nil || ok
}
