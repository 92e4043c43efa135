// Package pipeline wires the processing stages together: checklist in,
// card workbook out, then image matching, renaming, and name shortening
// over that workbook. Each stage is recorded in the run history.
package pipeline

import (
	"context"
	"log/slog"

	"mythoscards/internal/config"
	"mythoscards/internal/imagematch"
	"mythoscards/internal/logging"
	"mythoscards/internal/runlog"
)

// Pipeline executes the processing stages against one configuration.
type Pipeline struct {
	cfg    *config.Config
	logger *slog.Logger
	runs   *runlog.Store
}

// New builds a pipeline. The run store may be nil, in which case history
// recording is skipped; every stage still works.
func New(cfg *config.Config, logger *slog.Logger, runs *runlog.Store) *Pipeline {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Pipeline{
		cfg:    cfg,
		logger: logging.WithComponent(logger, "pipeline"),
		runs:   runs,
	}
}

func (p *Pipeline) beginRun(ctx context.Context, kind, checklistPath, imageDir string) *runlog.Run {
	if p.runs == nil {
		return nil
	}
	run, err := p.runs.Begin(ctx, kind, checklistPath, imageDir)
	if err != nil {
		p.logger.Warn("record run start", logging.Error(err))
		return nil
	}
	return run
}

func (p *Pipeline) completeRun(ctx context.Context, run *runlog.Run) {
	if run == nil {
		return
	}
	if err := p.runs.Complete(ctx, run); err != nil {
		p.logger.Warn("record run completion", logging.Error(err))
	}
}

func (p *Pipeline) failRun(ctx context.Context, run *runlog.Run, cause error) {
	if run == nil {
		return
	}
	if err := p.runs.Fail(ctx, run, cause.Error()); err != nil {
		p.logger.Warn("record run failure", logging.Error(err))
	}
}

func (p *Pipeline) thresholds() imagematch.Thresholds {
	return imagematch.Thresholds{
		Similarity:   p.cfg.Matching.SimilarityThreshold,
		LengthWindow: p.cfg.Matching.LengthWindow,
		BaseScore:    p.cfg.Matching.BaseScore,
		ExtraPenalty: p.cfg.Matching.ExtraPenalty,
	}
}
