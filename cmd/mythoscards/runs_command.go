package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"mythoscards/internal/runlog"
)

func newRunsCommand(ctx *commandContext) *cobra.Command {
	var limitFlag int

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Show recent pipeline runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRunStore(func(runs *runlog.Store) error {
				recent, err := runs.Recent(cmd.Context(), limitFlag)
				if err != nil {
					return err
				}
				if len(recent) == 0 {
					printStatus(cmd.OutOrStdout(), statusInfo, "no runs recorded yet")
					return nil
				}

				headers := []string{"Started", "Kind", "Status", "Cards", "Found", "Missing", "Conflicts", "Source"}
				var rows [][]string
				for _, run := range recent {
					rows = append(rows, []string{
						run.StartedAt.Local().Format(time.DateTime),
						run.Kind,
						run.Status,
						fmt.Sprint(run.TotalCards),
						fmt.Sprint(run.Found),
						fmt.Sprint(run.Missing),
						fmt.Sprint(run.Conflicts),
						run.ChecklistPath,
					})
				}
				aligns := []columnAlignment{
					alignLeft, alignLeft, alignLeft,
					alignRight, alignRight, alignRight, alignRight,
					alignLeft,
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, aligns))
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limitFlag, "limit", "n", 20, "Number of runs to show")
	return cmd
}
