package pipeline

import (
	"context"
	"strings"

	"mythoscards/internal/logging"
	"mythoscards/internal/organizer"
	"mythoscards/internal/runlog"
	"mythoscards/internal/sheet"
	"mythoscards/internal/shorten"
)

// ShortenReport is the outcome of one filename shortening pass.
type ShortenReport struct {
	Total     int
	Shortened int
	Skipped   int
	BackupDir string
	Items     []shorten.Item
}

// ShortenNames reads the image column of an output workbook, shortens
// every over-long filename on disk and in the workbook, and backs up the
// whole pool first. Conflict placeholders and blank cells are ignored.
func (p *Pipeline) ShortenNames(ctx context.Context, outputPath, imageDir string) (*ShortenReport, error) {
	run := p.beginRun(ctx, runlog.KindShorten, outputPath, imageDir)

	report, err := p.shortenNames(outputPath, imageDir)
	if err != nil {
		p.failRun(ctx, run, err)
		return report, err
	}

	if run != nil {
		run.TotalCards = report.Total
		run.Found = report.Shortened
		p.completeRun(ctx, run)
	}
	return report, nil
}

func (p *Pipeline) shortenNames(outputPath, imageDir string) (*ShortenReport, error) {
	images, err := sheet.ReadImageColumn(outputPath)
	if err != nil {
		return nil, err
	}

	names := make(map[int]string, len(images))
	for row, name := range images {
		if strings.HasPrefix(name, conflictPrefix) {
			continue
		}
		names[row] = name
	}

	items := shorten.Plan(names, p.cfg.Shorten.MaxLength)
	report := &ShortenReport{Total: len(items), Items: items}

	org := organizer.New(imageDir, p.cfg.Paths.BackupDir, p.logger)
	if err := org.Lock(); err != nil {
		return report, err
	}
	defer org.Unlock()

	all, err := org.ScanImages()
	if err != nil {
		return report, err
	}
	backupDir, _, err := org.Backup("shorten", all, false)
	if err != nil {
		return report, err
	}
	report.BackupDir = backupDir

	renames := make(map[string]string)
	cells := make(map[int]string)
	for _, item := range items {
		if !item.Needed {
			report.Skipped++
			continue
		}
		renames[item.Original] = item.New
		cells[item.Row] = item.New
	}

	applied, err := org.Rename(renames)
	if err != nil {
		return report, err
	}
	report.Shortened = len(applied)

	// Only update cells whose file actually moved.
	for row, name := range cells {
		found := false
		for _, newName := range applied {
			if newName == name {
				found = true
				break
			}
		}
		if !found {
			delete(cells, row)
		}
	}
	if err := sheet.UpdateImageColumn(outputPath, cells); err != nil {
		return report, err
	}

	p.logger.Info("filename shortening finished",
		logging.Int("total", report.Total),
		logging.Int("shortened", report.Shortened),
		logging.Int("skipped", report.Skipped))
	return report, nil
}
