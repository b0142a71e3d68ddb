package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"timetable/internal/store"
)

func newTokensCommand(ctx *commandContext) *cobra.Command {
	var name string
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "tokens",
		Short: "List identify tokens handed out to users",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(db *store.Store) error {
				tokens, err := db.Tokens(cmd.Context(), name)
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, tokens)
				}
				out := cmd.OutOrStdout()
				if len(tokens) == 0 {
					fmt.Fprintln(out, "No tokens found")
					return nil
				}
				rows := make([][]string, 0, len(tokens))
				for _, t := range tokens {
					rows = append(rows, []string{t.Token, t.Name, t.Role.String()})
				}
				fmt.Fprintln(out, renderTable("", []column{
					{header: "Token"},
					{header: "Name"},
					{header: "Role"},
				}, rows))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Only show tokens owned by this user name")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit tokens as JSON")
	return cmd
}
