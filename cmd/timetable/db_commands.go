package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"timetable/internal/store"
)

func newDBCommand(ctx *commandContext) *cobra.Command {
	dbCmd := &cobra.Command{
		Use:   "db",
		Short: "Inspect the timetable database",
	}
	dbCmd.AddCommand(newDBHealthCommand(ctx))
	dbCmd.AddCommand(newDBStatsCommand(ctx))
	return dbCmd
}

func newDBHealthCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check database reachability, schema and integrity",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(db *store.Store) error {
				health, err := db.CheckHealth(cmd.Context())
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, health)
				}

				out := cmd.OutOrStdout()
				color := shouldColorize(out)
				fmt.Fprintf(out, "Database: %s (%s)\n", health.Location, health.Driver)
				fmt.Fprintln(out, renderStatusLine("Exists", okOr(health.DatabaseExists, statusError), "", color))
				fmt.Fprintln(out, renderStatusLine("Readable", okOr(health.DatabaseReadable, statusError), "", color))
				fmt.Fprintln(out, renderStatusLine("Schema version", statusInfo, health.SchemaVersion, color))
				if len(health.MissingTables) > 0 {
					fmt.Fprintln(out, renderStatusLine("Tables", statusError, "missing "+strings.Join(health.MissingTables, ", "), color))
				} else {
					fmt.Fprintln(out, renderStatusLine("Tables", statusOK, fmt.Sprintf("%d present", len(health.TablesPresent)), color))
				}
				fmt.Fprintln(out, renderStatusLine("Integrity check", okOr(health.IntegrityCheck, statusWarn), "", color))
				if health.Error != "" {
					fmt.Fprintln(out, renderStatusLine("Error", statusError, health.Error, color))
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the health report as JSON")
	return cmd
}

func newDBStatsCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show row counts per entity",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(db *store.Store) error {
				counts, err := db.Stats(cmd.Context())
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, counts)
				}
				rows := make([][]string, 0, len(counts))
				for _, c := range counts {
					rows = append(rows, []string{c.Name, strconv.Itoa(c.Rows)})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(db.Location(), []column{
					{header: "Entity"},
					{header: "Rows", align: alignRight},
				}, rows))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit counts as JSON")
	return cmd
}
