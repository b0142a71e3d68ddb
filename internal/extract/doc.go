// Package extract folds template stamps into flat domain records.
//
// Three extractors cover the three sheet kinds: Enrollments (student blocks,
// which also prove placeholder periods), Lectures (subject/teacher/room rows)
// and Periods (weekly rows per teacher). Extractors keep no state between
// calls; Layouts carries the templates they scan with.
package extract
