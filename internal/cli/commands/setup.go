package commands

import (
	"cmp"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/newton-physics/kernelint/internal/cli/config"
	"github.com/newton-physics/kernelint/internal/cli/output"
	"github.com/newton-physics/kernelint/pkg/schema"
)

// CommandContext bundles what every subcommand needs: the effective config,
// the context logger, and a renderer on the command's streams.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext assembles a CommandContext for cmd.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	return &CommandContext{
		Cfg:      cfg,
		Logger:   config.GetLogger(cmd.Context()),
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.ParseMode(cfg.OutputFormat)),
	}
}

// getConfig prefers the configuration the root command loaded. Commands run
// without that (tests, direct construction) fall back to environment
// variables so they stay usable standalone.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return &config.Config{
		Schema:       os.Getenv("KERNELINT_SCHEMA"),
		Verbose:      os.Getenv("KERNELINT_VERBOSE") == "true",
		OutputFormat: getEnvOrDefault("KERNELINT_OUTPUT", config.DefaultOutput),
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	return cmp.Or(os.Getenv(key), defaultVal)
}

// loadSchema resolves the field schema the analyzer checks against: the
// configured YAML file when one is set, the embedded default otherwise.
// A configured file that fails to load is fatal.
func loadSchema(cfg *config.Config) (*schema.Schema, error) {
	if cfg != nil && cfg.Schema != "" {
		return schema.Load(cfg.Schema)
	}
	return schema.Default(), nil
}
