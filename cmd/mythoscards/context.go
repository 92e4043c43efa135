package main

import (
	"log/slog"
	"strings"
	"sync"

	"mythoscards/internal/config"
	"mythoscards/internal/logging"
	"mythoscards/internal/pipeline"
	"mythoscards/internal/runlog"
)

type commandContext struct {
	configFlag  *string
	verboseFlag *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag *string, verboseFlag *bool) *commandContext {
	return &commandContext{
		configFlag:  configFlag,
		verboseFlag: verboseFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil || cfg == nil {
			c.logger = logging.NewNop()
			return
		}
		logCfg := *cfg
		if c.verboseFlag != nil && *c.verboseFlag {
			logCfg.Logging.Level = "debug"
		}
		logger, logErr := logging.NewFromConfig(&logCfg)
		if logErr != nil {
			c.logger = logging.NewNop()
			return
		}
		c.logger = logger
	})
	return c.logger
}

// withPipeline runs fn with a pipeline wired to the run history store. The
// store is opened per invocation and closed when the command finishes.
func (c *commandContext) withPipeline(fn func(*pipeline.Pipeline) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	logger := c.ensureLogger()

	runs, err := runlog.Open(cfg)
	if err != nil {
		logger.Warn("open run history", logging.Error(err))
		runs = nil
	}
	if runs != nil {
		defer func() { _ = runs.Close() }()
	}

	return fn(pipeline.New(cfg, logger, runs))
}

func (c *commandContext) withRunStore(fn func(*runlog.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	runs, err := runlog.Open(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = runs.Close() }()
	return fn(runs)
}
