// Package config provides configuration management for the kernelint CLI.
//
// Configuration is layered: built-in defaults, then a kernelint.yaml (or
// .yml) config file, then KERNELINT_-prefixed environment variables, then
// explicitly-set command line flags.
package config

// Config holds all CLI configuration options.
type Config struct {
	Schema       string        `koanf:"schema"`
	Verbose      bool          `koanf:"verbose"`
	OutputFormat string        `koanf:"output"`
	Jobs         int           `koanf:"jobs"`
	Lint         *LintSettings `koanf:"lint"`

	// ProjectRoot is the directory the config file was found in, or the
	// working directory when no file exists. Not itself a config key.
	ProjectRoot string `koanf:"-"`
}

// LintSettings selects which rules run and how their findings are ranked.
type LintSettings struct {
	Disabled []string          `koanf:"disabled"`
	Severity map[string]string `koanf:"severity"`
}

// GetLintSettings returns the lint settings block, never nil.
func (c *Config) GetLintSettings() *LintSettings {
	if c.Lint == nil {
		return &LintSettings{}
	}
	return c.Lint
}

// Default configuration values.
const (
	DefaultOutput = "auto" // Auto-detect: TTY=text, non-TTY=markdown
)
