package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/leapstack-labs/articlecheck/internal/cli/output"
	"github.com/leapstack-labs/articlecheck/pkg/fit"
)

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if _, err := output.ParseMode(c.OutputFormat); err != nil {
		return err
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("concurrency must not be negative, got %d", c.Concurrency)
	}
	if _, err := fit.ConfigFrom(c.Fit.Disabled, c.Fit.Severity); err != nil {
		return fmt.Errorf("fit.%w", err)
	}
	return nil
}

// ValidateCatalog checks that the guideline catalog exists.
func (c *Config) ValidateCatalog() error {
	if _, err := os.Stat(c.Catalog); errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("guideline catalog does not exist: %s\nHint: create it or use --catalog to specify a different path", c.Catalog)
	}
	return nil
}

// FitRules builds the rule configuration from the fit section.
// Unknown rule IDs are rejected by Validate when the config is loaded;
// a config that skipped validation falls back to the defaults.
func (c *Config) FitRules() *fit.Config {
	rules, err := fit.ConfigFrom(c.Fit.Disabled, c.Fit.Severity)
	if err != nil {
		return fit.NewConfig()
	}
	return rules
}
