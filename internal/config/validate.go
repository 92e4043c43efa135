package config

import (
	"errors"
	"fmt"

	"golang.org/x/text/language"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateMatching(); err != nil {
		return err
	}
	if err := c.validateShorten(); err != nil {
		return err
	}
	return c.validateSorting()
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be \"console\" or \"json\", got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error, got %q", c.Logging.Level)
	}
	return nil
}

func (c *Config) validateMatching() error {
	if c.Matching.SimilarityThreshold < 0 || c.Matching.SimilarityThreshold > 1 {
		return errors.New("matching.similarity_threshold must be between 0 and 1")
	}
	if c.Matching.LengthWindow < 0 {
		return errors.New("matching.length_window must not be negative")
	}
	if c.Matching.BaseScore <= 0 {
		return errors.New("matching.base_score must be positive")
	}
	if c.Matching.ExtraPenalty < 0 {
		return errors.New("matching.extra_penalty must not be negative")
	}
	return nil
}

func (c *Config) validateShorten() error {
	// Shorter than this and the fixed suffix parts alone can exceed the limit.
	if c.Shorten.MaxLength < 20 {
		return errors.New("shorten.max_length must be at least 20")
	}
	return nil
}

func (c *Config) validateSorting() error {
	if _, err := language.Parse(c.Sorting.Locale); err != nil {
		return fmt.Errorf("sorting.locale: invalid BCP 47 tag %q: %w", c.Sorting.Locale, err)
	}
	return nil
}

// FormatValidationError renders a config error with the file it came from.
func FormatValidationError(path string, err error) string {
	if err == nil {
		return ""
	}
	if path == "" {
		return err.Error()
	}
	return fmt.Sprintf("%s (config: %s)", err.Error(), path)
}
