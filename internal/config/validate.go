package config

import (
	"fmt"
	"slices"

	"go.uber.org/zap/zapcore"
)

var storageDrivers = []string{"none", "json", "yaml", "sqlite"}

// Validate performs business-rule validation on the loaded configuration.
// Load calls it automatically.
func (c *Config) Validate() error {
	if c.Dictionary.CMUDictPath == "" {
		return fmt.Errorf("dictionary.cmudict_path must be set")
	}

	if !slices.Contains(storageDrivers, c.Storage.Driver) {
		return fmt.Errorf("storage.driver must be one of %v (got %q)", storageDrivers, c.Storage.Driver)
	}
	if c.Storage.Driver != "none" && c.Storage.Path == "" {
		return fmt.Errorf("storage.path must be set for driver %q", c.Storage.Driver)
	}

	if c.Analysis.MaxInterpretations < 0 {
		return fmt.Errorf("analysis.max_interpretations must be >= 0 (got %d)", c.Analysis.MaxInterpretations)
	}

	if c.Datamuse.Enabled {
		if c.Datamuse.BaseURL == "" {
			return fmt.Errorf("datamuse.base_url must be set when datamuse is enabled")
		}
		if c.Datamuse.RequestsPerSecond < 0 {
			return fmt.Errorf("datamuse.requests_per_second must be >= 0 (got %v)", c.Datamuse.RequestsPerSecond)
		}
	}

	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}

	return nil
}
