// Package ingest runs the whole pipeline for one snapshot of the three source
// workbooks: read, extract, reconcile and load.
//
// A Runner takes an advisory file lock for the duration of a run so two runs
// never load into the same database concurrently. Every run gets a run id
// that is attached to its log lines.
package ingest
