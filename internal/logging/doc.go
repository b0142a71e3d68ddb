// Package logging builds the slog loggers used by the CLI and the ingestion
// pipeline.
//
// Two encodings are supported: a human-oriented console format that prints a
// header line (time, level, component, run/stage) followed by indented fields,
// and JSON for machine consumption. When a log directory is configured every
// record is also appended as JSON to timetable.log so failed runs can be
// inspected after the fact.
//
// Use NewComponentLogger to tag a subsystem and WithContext to attach the run
// identifier and stage carried on a context.
package logging
