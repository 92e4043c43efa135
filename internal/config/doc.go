// Package config loads and validates the application's TOML configuration.
//
// Configuration covers directory layout (outputs, backups, logs), logging
// format and level, the tunable matching thresholds used by the image
// matcher, filename shortening limits, and the collation locale used for
// display ordering. Load applies defaults for missing values, expands paths,
// and validates the result, so callers always receive a usable Config.
package config
