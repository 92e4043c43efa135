package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mythoscards/internal/pipeline"
)

func newShortenCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shorten <output.xlsx> <image-dir>",
		Short: "Shorten over-long image filenames on disk and in the workbook",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputPath, imageDir := args[0], args[1]
			if !fileExists(outputPath) {
				return fmt.Errorf("output workbook not found: %s (run the images command first)", outputPath)
			}
			return ctx.withPipeline(func(p *pipeline.Pipeline) error {
				report, err := p.ShortenNames(cmd.Context(), outputPath, imageDir)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				printStatus(out, statusOK, fmt.Sprintf("%d of %d filenames shortened", report.Shortened, report.Total))
				if report.BackupDir != "" {
					printStatus(out, statusInfo, "originals backed up to "+report.BackupDir)
				}
				return nil
			})
		},
	}
	return cmd
}
