// Package reconcile merges period records from independent sheets into one
// teacher-attributed list.
package reconcile
