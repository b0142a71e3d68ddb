package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/spf13/cobra"
)

type outputFormat string

const (
	formatTable outputFormat = "table"
	formatJSON  outputFormat = "json"
	formatCSV   outputFormat = "csv"
)

func parseFormat(value string) (outputFormat, error) {
	switch f := outputFormat(strings.ToLower(strings.TrimSpace(value))); f {
	case "", formatTable:
		return formatTable, nil
	case formatJSON, formatCSV:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported format %q (want table, json or csv)", value)
	}
}

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeCSV encodes a slice of csv-tagged records with a header line.
func writeCSV(cmd *cobra.Command, records any) error {
	if err := gocsv.Marshal(records, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("encode csv: %w", err)
	}
	return nil
}
