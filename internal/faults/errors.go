package faults

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrFormat           = errors.New("format error")
	ErrShape            = errors.New("shape mismatch")
	ErrAmbiguous        = errors.New("ambiguous reference")
	ErrMissingReference = errors.New("missing reference")
	ErrConflict         = errors.New("conflicting record")
	ErrValidation       = errors.New("validation error")
	ErrConfiguration    = errors.New("configuration error")
)

// Kind names the class of a batch failure.
type Kind string

const (
	KindFormat           Kind = "format"
	KindShape            Kind = "shape"
	KindAmbiguous        Kind = "ambiguous"
	KindMissingReference Kind = "missing_reference"
	KindConflict         Kind = "conflict"
	KindValidation       Kind = "validation"
	KindConfiguration    Kind = "configuration"
	KindInternal         Kind = "internal"
)

// Wrap builds an error message that includes stage context while tagging it with
// the provided marker for later classification. The marker should be one of
// the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		if err == nil {
			return errors.New(detail)
		}
		return fmt.Errorf("%s: %w", detail, err)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Classify maps an error to its Kind. Errors carrying none of the markers are
// reported as internal.
func Classify(err error) Kind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrFormat):
		return KindFormat
	case errors.Is(err, ErrShape):
		return KindShape
	case errors.Is(err, ErrAmbiguous):
		return KindAmbiguous
	case errors.Is(err, ErrMissingReference):
		return KindMissingReference
	case errors.Is(err, ErrConflict):
		return KindConflict
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrConfiguration):
		return KindConfiguration
	default:
		return KindInternal
	}
}

// Hint returns operator guidance for a failure kind.
func Hint(kind Kind) string {
	switch kind {
	case KindFormat, KindShape:
		return "fix the offending cell in the source sheet and re-run"
	case KindAmbiguous:
		return "make the named subject/division unique across the sheets"
	case KindMissingReference:
		return "add the missing subject, teacher or student to the sheet that defines it"
	case KindConflict:
		return "an existing record disagrees with the sheet; correct the sheet or the stored record"
	case KindValidation:
		return "a record has blank or out-of-range fields; check the sheet row"
	case KindConfiguration:
		return "check the config file (timetable config validate)"
	default:
		return "check logs for details"
	}
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "ingestion failure"
	}
	return strings.Join(parts, ": ")
}
