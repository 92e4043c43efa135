package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLogging()
	c.normalizeMatching()
	c.normalizeShorten()
	c.normalizeSorting()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.BackupDir) == "" {
		c.Paths.BackupDir = defaultBackupDir
	}
	if c.Paths.BackupDir, err = expandPath(c.Paths.BackupDir); err != nil {
		return fmt.Errorf("paths.backup_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func (c *Config) normalizeMatching() {
	if c.Matching.SimilarityThreshold == 0 {
		c.Matching.SimilarityThreshold = defaultSimilarityThreshold
	}
	if c.Matching.LengthWindow == 0 {
		c.Matching.LengthWindow = defaultLengthWindow
	}
	if c.Matching.BaseScore == 0 {
		c.Matching.BaseScore = defaultBaseScore
	}
	if c.Matching.ExtraPenalty == 0 {
		c.Matching.ExtraPenalty = defaultExtraPenalty
	}
}

func (c *Config) normalizeShorten() {
	if c.Shorten.MaxLength == 0 {
		c.Shorten.MaxLength = defaultShortenMaxLength
	}
}

func (c *Config) normalizeSorting() {
	c.Sorting.Locale = strings.TrimSpace(c.Sorting.Locale)
	if c.Sorting.Locale == "" {
		c.Sorting.Locale = defaultSortLocale
	}
}
