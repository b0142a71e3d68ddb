package cell

import "time"

// DefaultEpochYear anchors generation numbers: a first grader in
// DefaultEpochYear+1 belongs to generation 1.
const DefaultEpochYear = 1983

// Cohort converts grade levels into generation numbers for a school year.
type Cohort struct {
	EpochYear int
	Year      int
}

// CurrentCohort returns the cohort for the current calendar year.
func CurrentCohort() Cohort {
	return Cohort{EpochYear: DefaultEpochYear, Year: time.Now().Year()}
}

// Generation returns Year - EpochYear - (grade - 1).
func (c Cohort) Generation(grade int) int {
	epoch := c.EpochYear
	if epoch == 0 {
		epoch = DefaultEpochYear
	}
	year := c.Year
	if year == 0 {
		year = time.Now().Year()
	}
	return year - epoch - (grade - 1)
}
