// Package faults defines the error taxonomy shared by the ingestion stages.
//
// Extraction, reconciliation and loading tag their failures with one of the
// sentinel markers (format, shape, ambiguity, missing reference, conflict,
// validation, configuration) so the CLI can classify a failed run and point
// the operator at the sheet that needs correcting. Every marked error aborts
// the whole batch; there are no recoverable kinds.
package faults
