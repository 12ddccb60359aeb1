// Package cli provides the command-line interface for kernelint.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/newton-physics/kernelint/internal/cli/commands"
	"github.com/newton-physics/kernelint/internal/cli/config"
)

var (
	cfgFile string
	cfg     *config.Config
)

// Build metadata, overridden via -ldflags on release builds.
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd builds the kernelint command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "kernelint",
		Short: "kernelint - Kernel signature linter",
		Long: `kernelint checks compute-kernel functions in Python sources against the
Model/Data parameter conventions used by Newton-style physics engines.

Kernels are functions decorated with @kernel. Their parameters must name
real Model or Data fields, carry matching type annotations, keep Model
params ahead of Data params, and sit under the # Model / # Data in /
# Data out section comments.`,
		Version:           Version,
		PersistentPreRunE: setup,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
Kernel signature linter for Newton physics engines
`)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: ./kernelint.yaml)")
	pf.String("schema", "", "Path to a field schema YAML (default: built-in Newton schema)")
	pf.BoolP("verbose", "v", false, "Verbose output")
	pf.StringP("output", "o", "", "Output format (auto|text|markdown|json|github)")

	_ = rootCmd.MarkPersistentFlagFilename("config", "yaml", "yml")
	_ = rootCmd.MarkPersistentFlagFilename("schema", "yaml", "yml")
	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"auto", "text", "markdown", "json", "github"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(
		commands.NewVersionCommand(Version, BuildDate, GitCommit),
		commands.NewLintCommand(),
		commands.NewRulesCommand(),
		commands.NewLSPCommand(),
		NewCompletionCommand(),
	)

	return rootCmd
}

// setup runs before every subcommand: it loads the layered configuration
// and stores a logger in the command context. Help and completion skip it
// so they work in broken projects.
func setup(cmd *cobra.Command, _ []string) error {
	switch cmd.Name() {
	case "help", "completion", "__complete":
		return nil
	}

	var err error
	cfg, err = config.LoadConfig(cfgFile, cmd.Root().PersistentFlags())
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	cmd.SetContext(context.WithValue(cmd.Context(), config.LoggerKey(), logger))

	if cfg.Verbose {
		if used := config.GetConfigFileUsed(); used != "" {
			fmt.Fprintf(os.Stderr, "Using config file: %s\n", used)
		}
	}
	return nil
}

// Execute runs the CLI and reports the error once, for main to turn into
// an exit code.
func Execute() error {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// NewCompletionCommand creates the completion generator.
func NewCompletionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Emit a completion script for your shell",
		Long: `Generate a completion script for your shell.

Load it once per session, for example:

  source <(kernelint completion bash)
  kernelint completion fish | source

or install it permanently:

  kernelint completion bash > /etc/bash_completion.d/kernelint
  kernelint completion zsh > "${fpath[1]}/_kernelint"
  kernelint completion fish > ~/.config/fish/completions/kernelint.fish

PowerShell users can pipe the output into Invoke-Expression or source it
from their profile:

  kernelint completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
}
