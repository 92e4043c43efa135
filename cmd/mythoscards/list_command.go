package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"mythoscards/internal/pipeline"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var outputFlag string
	var forceFlag bool

	cmd := &cobra.Command{
		Use:   "list <checklist.xlsx>",
		Short: "Expand a checklist into the card list workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			checklistPath := args[0]
			return ctx.withPipeline(func(p *pipeline.Pipeline) error {
				cfg, _ := ctx.ensureConfig()
				outputPath := resolveOutputPath(outputFlag, checklistPath, cfg.Paths.OutputDir)

				report, err := p.ExpandChecklist(cmd.Context(), checklistPath, outputPath, forceFlag)
				if report != nil {
					printValidation(cmd.OutOrStdout(), report.Validation)
				}
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				printStatus(out, statusOK, fmt.Sprintf("%d cards written to %s", len(report.Cards), outputPath))
				printSummary(out, report.Summary)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output workbook path")
	cmd.Flags().BoolVar(&forceFlag, "force", false, "Export even when validation reports blocking errors")
	return cmd
}

// resolveOutputPath derives the output workbook location: an explicit flag
// wins, otherwise the checklist's name gains a _cards suffix under the
// configured output directory.
func resolveOutputPath(flag, checklistPath, outputDir string) string {
	if strings.TrimSpace(flag) != "" {
		return flag
	}
	base := filepath.Base(checklistPath)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext) + "_cards.xlsx"
	if outputDir == "" {
		return filepath.Join(filepath.Dir(checklistPath), name)
	}
	return filepath.Join(outputDir, name)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
