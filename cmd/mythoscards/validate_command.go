package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mythoscards/internal/checklist"
	"mythoscards/internal/sheet"
)

func newValidateCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <checklist.xlsx>",
		Short: "Validate a checklist without writing anything",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := sheet.ReadChecklist(args[0])
			if err != nil {
				return err
			}

			hs := checklist.ClassifyHeaders(table.Headers)
			report := checklist.ValidateTable(table, hs)

			out := cmd.OutOrStdout()
			printValidation(out, report)

			if report.IsProcessable() {
				printStatus(out, statusOK, fmt.Sprintf("checklist is processable (%d rows, %d warnings)",
					report.Summary.TotalRows, report.Summary.TotalWarnings))
				return nil
			}
			return fmt.Errorf("checklist has %d blocking errors", report.Summary.BlockingErrors)
		},
	}
	return cmd
}
