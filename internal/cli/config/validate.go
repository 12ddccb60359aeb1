package config

import (
	"fmt"
	"os"
)

// validOutputs are the accepted values for the output key.
var validOutputs = map[string]struct{}{
	"":         {},
	"auto":     {},
	"text":     {},
	"console":  {},
	"markdown": {},
	"md":       {},
	"json":     {},
	"github":   {},
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, ok := validOutputs[c.OutputFormat]; !ok {
		return fmt.Errorf("unknown output format: %s", c.OutputFormat)
	}
	if c.Jobs < 0 {
		return fmt.Errorf("jobs must not be negative, got %d", c.Jobs)
	}
	return nil
}

// ValidateSchemaPath checks that an explicitly configured schema file exists.
// The embedded default schema is used when no path is set.
func (c *Config) ValidateSchemaPath() error {
	if c.Schema == "" {
		return nil
	}
	if _, err := os.Stat(c.Schema); os.IsNotExist(err) {
		return fmt.Errorf("schema file does not exist: %s\nHint: Pass --schema with a readable YAML schema or remove the setting", c.Schema)
	}
	return nil
}
