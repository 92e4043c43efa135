package pipeline

import (
	"context"
	"strings"

	"mythoscards/internal/checklist"
	"mythoscards/internal/imagematch"
	"mythoscards/internal/logging"
	"mythoscards/internal/organizer"
	"mythoscards/internal/runlog"
	"mythoscards/internal/sheet"
)

// conflictPrefix marks an image cell holding tied candidates instead of a
// resolved filename. Later stages skip these cells.
const conflictPrefix = "CONFLICT"

// MatchRow pairs one card with its match outcome and its row in the
// output workbook.
type MatchRow struct {
	Row    int
	Card   checklist.Card
	Result imagematch.Result
}

// MatchReport is the outcome of one image matching pass.
type MatchReport struct {
	Rows      []MatchRow
	Found     int
	Missing   int
	Conflicts int
	Empty     int
	BackupDir string
	Renamed   int
}

// MatchImages re-expands the checklist, matches every card against the
// image directory, stamps matched files with a date-prefix rename (after
// backing up the originals), and writes the resolved filenames into the
// output workbook's image column.
//
// The output workbook must have been produced from the same checklist;
// cards are matched in sorted order so row n+2 of the output sheet is
// card n.
func (p *Pipeline) MatchImages(ctx context.Context, checklistPath, outputPath, imageDir string) (*MatchReport, error) {
	run := p.beginRun(ctx, runlog.KindImages, checklistPath, imageDir)

	report, err := p.matchImages(checklistPath, outputPath, imageDir)
	if err != nil {
		p.failRun(ctx, run, err)
		return report, err
	}

	if run != nil {
		run.TotalCards = len(report.Rows)
		run.Found = report.Found
		run.Missing = report.Missing
		run.Conflicts = report.Conflicts
		p.completeRun(ctx, run)
	}
	return report, nil
}

func (p *Pipeline) matchImages(checklistPath, outputPath, imageDir string) (*MatchReport, error) {
	expand, err := p.expand(checklistPath, outputPath, true)
	if err != nil {
		return nil, err
	}

	org := organizer.New(imageDir, p.cfg.Paths.BackupDir, p.logger)
	if err := org.Lock(); err != nil {
		return nil, err
	}
	defer org.Unlock()

	images, err := org.ScanImages()
	if err != nil {
		return nil, err
	}

	matcher := imagematch.NewMatcher(images, p.thresholds(), p.logger)

	report := &MatchReport{}
	var matchedFiles []string
	for i, card := range expand.Cards {
		result := matcher.Match(card)
		report.Rows = append(report.Rows, MatchRow{Row: i + 2, Card: card, Result: result})

		switch result.Status {
		case imagematch.StatusFound:
			report.Found++
			matchedFiles = append(matchedFiles, result.MatchedFile)
		case imagematch.StatusMissing:
			report.Missing++
		case imagematch.StatusConflict:
			report.Conflicts++
		case imagematch.StatusEmpty:
			report.Empty++
		}
	}

	// Matched files are stamped with today's date so a later pass can tell
	// resolved pools apart; originals are copied aside first.
	backupDir, _, err := org.Backup("", matchedFiles, true)
	if err != nil {
		return report, err
	}
	report.BackupDir = backupDir

	applied, err := org.Rename(org.DatePrefixRenames(matchedFiles))
	if err != nil {
		return report, err
	}
	report.Renamed = len(applied)

	cells := make(map[int]string)
	for i := range report.Rows {
		row := &report.Rows[i]
		switch row.Result.Status {
		case imagematch.StatusFound:
			if renamed, ok := applied[row.Result.MatchedFile]; ok {
				row.Result.MatchedFile = renamed
			}
			cells[row.Row] = row.Result.MatchedFile
		case imagematch.StatusConflict:
			cells[row.Row] = conflictPrefix + ": " + strings.Join(row.Result.ConflictFiles, " | ")
		}
	}
	if err := sheet.UpdateImageColumn(outputPath, cells); err != nil {
		return report, err
	}

	p.logger.Info("image matching finished",
		logging.String("image_dir", imageDir),
		logging.Int("found", report.Found),
		logging.Int("missing", report.Missing),
		logging.Int("conflicts", report.Conflicts),
		logging.Int("renamed", report.Renamed))
	return report, nil
}
