package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"mythoscards/internal/imagematch"
	"mythoscards/internal/pipeline"
)

func newImagesCommand(ctx *commandContext) *cobra.Command {
	var outputFlag string
	var detailFlag bool

	cmd := &cobra.Command{
		Use:   "images <checklist.xlsx> <image-dir>",
		Short: "Match card records against an image directory",
		Long: "Expands the checklist, matches every card against the image files, " +
			"stamps matched files with a date prefix (after backing them up), and " +
			"writes the resolved filenames into the output workbook.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			checklistPath, imageDir := args[0], args[1]
			return ctx.withPipeline(func(p *pipeline.Pipeline) error {
				cfg, _ := ctx.ensureConfig()
				outputPath := resolveOutputPath(outputFlag, checklistPath, cfg.Paths.OutputDir)

				report, err := p.MatchImages(cmd.Context(), checklistPath, outputPath, imageDir)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				printStatus(out, statusOK, fmt.Sprintf("%d of %d cards matched", report.Found, len(report.Rows)))
				if report.Missing > 0 {
					printStatus(out, statusWarn, fmt.Sprintf("%d cards have no image", report.Missing))
				}
				if report.Conflicts > 0 {
					printStatus(out, statusWarn, fmt.Sprintf("%d cards have tied candidates", report.Conflicts))
				}
				if report.BackupDir != "" {
					printStatus(out, statusInfo, "originals backed up to "+report.BackupDir)
				}

				if detailFlag {
					printMatchRows(out, report.Rows)
				}
				printStatus(out, statusInfo, "results written to "+outputPath)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output workbook path")
	cmd.Flags().BoolVar(&detailFlag, "detail", false, "Print the outcome of every card")
	return cmd
}

func printMatchRows(out io.Writer, rows []pipeline.MatchRow) {
	headers := []string{"Row", "Card", "Status", "Image"}
	var tableRows [][]string
	for _, row := range rows {
		image := row.Result.MatchedFile
		switch row.Result.Status {
		case imagematch.StatusMissing:
			image = row.Result.Diagnostic
		case imagematch.StatusConflict:
			image = row.Result.Diagnostic
		}
		tableRows = append(tableRows, []string{
			fmt.Sprint(row.Row),
			row.Card.Text,
			string(row.Result.Status),
			image,
		})
	}
	fmt.Fprintln(out, renderTable(headers, tableRows, []columnAlignment{alignRight, alignLeft, alignLeft, alignLeft}))
}
