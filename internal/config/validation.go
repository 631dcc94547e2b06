package config

import (
	"fmt"
	"slices"

	"github.com/Cyclone1070/fglob/internal/settings"
)

var (
	logLevels = []string{"debug", "info", "warn", "error"}
	colors    = []string{"auto", "always", "never"}
	modes     = []string{"sync", "async", "stream"}
)

// Validate checks config values for correctness.
// Returns an error listing every invalid value.
func (c *Config) Validate() error {
	var errs []string

	if !slices.Contains(logLevels, c.CLI.LogLevel) {
		errs = append(errs, fmt.Sprintf("cli.log_level must be one of %v", logLevels))
	}
	if !slices.Contains(colors, c.CLI.Color) {
		errs = append(errs, fmt.Sprintf("cli.color must be one of %v", colors))
	}
	if !slices.Contains(modes, c.CLI.Mode) {
		errs = append(errs, fmt.Sprintf("cli.mode must be one of %v", modes))
	}

	if _, err := c.GlobOptions(); err != nil {
		errs = append(errs, fmt.Sprintf("options: %v", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %v", errs)
	}

	return nil
}

// GlobOptions decodes Options over the default glob options.
func (c *Config) GlobOptions() (*settings.Options, error) {
	opts, err := settings.DecodeOptions(c.Options)
	if err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}
