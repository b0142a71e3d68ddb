// Package cell recognizes and interprets the text of individual spreadsheet
// cells.
//
// Each Matcher is bound to one Category and derives both Match and Interpret
// from a single parse function, so a successful match always interprets.
// Values form a closed set of types (Student, Credit, ClassAssignment,
// Subject, Teacher, Room, PeriodList, Empty). Variants composes matchers as an
// ordered list, used by layouts for "class or blank" style slots.
package cell
