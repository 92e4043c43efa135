package pipeline

import (
	"context"
	"fmt"

	"mythoscards/internal/checklist"
	"mythoscards/internal/collate"
	"mythoscards/internal/errs"
	"mythoscards/internal/logging"
	"mythoscards/internal/runlog"
	"mythoscards/internal/sheet"
)

// ExpandReport is the outcome of turning one checklist into a card
// workbook.
type ExpandReport struct {
	OutputPath string
	Cards      []checklist.Card
	Summary    checklist.Summary
	Validation checklist.Report
	Expansion  checklist.ExpansionResult
}

// ExpandChecklist reads a checklist workbook, validates it, expands every
// row into card records, and writes the output workbook with the card
// list, summary, and issue sheets. Validation errors block the export
// unless force is set; warnings never do.
func (p *Pipeline) ExpandChecklist(ctx context.Context, checklistPath, outputPath string, force bool) (*ExpandReport, error) {
	run := p.beginRun(ctx, runlog.KindList, checklistPath, "")

	report, err := p.expand(checklistPath, outputPath, force)
	if err != nil {
		p.failRun(ctx, run, err)
		return report, err
	}

	if run != nil {
		run.TotalCards = len(report.Cards)
		run.Errors = len(report.Validation.Errors)
		p.completeRun(ctx, run)
	}
	return report, nil
}

func (p *Pipeline) expand(checklistPath, outputPath string, force bool) (*ExpandReport, error) {
	table, err := sheet.ReadChecklist(checklistPath)
	if err != nil {
		return nil, err
	}

	hs := checklist.ClassifyHeaders(table.Headers)
	validation := checklist.ValidateTable(table, hs)

	report := &ExpandReport{OutputPath: outputPath, Validation: validation}
	if !validation.IsProcessable() && !force {
		return report, errs.Wrap(errs.ErrValidation, "pipeline", "expand",
			fmt.Sprintf("checklist has %d blocking errors", validation.Summary.BlockingErrors), nil)
	}

	expansion := checklist.Expand(table, hs, p.logger)
	report.Expansion = expansion
	report.Cards = expansion.Cards

	collate.New(p.cfg.Sorting.Locale).SortCards(report.Cards)
	report.Summary = checklist.Summarize(report.Cards)

	if err := sheet.WriteWorkbook(outputPath, report.Cards, report.Summary, validation); err != nil {
		return report, err
	}

	p.logger.Info("checklist expanded",
		logging.String("checklist", checklistPath),
		logging.String("output", outputPath),
		logging.Int("cards", len(report.Cards)),
		logging.Int("errors", len(validation.Errors)),
		logging.Int("warnings", len(validation.Warnings)))
	return report, nil
}
