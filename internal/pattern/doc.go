// Package pattern scans a sheet.Grid for every placement of a fixed-shape
// matcher Template.
//
// Convolute tests each top-left offset where the template fits and returns one
// Stamp per matching window. Out-of-bounds cells read as empty during matching
// so trailing Empty matchers act as boundary guards.
package pattern
