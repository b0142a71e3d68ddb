// Package main hosts the timetable CLI entrypoint and command graph.
//
// The Cobra command tree loads configuration once, opens the configured store
// on demand and surfaces the ingestion pipeline: full runs (ingest), per-sheet
// previews (extract) and database inspection (db, tokens). Extraction,
// reconciliation and loading live in internal packages; commands here only
// parse flags and render results.
package main
