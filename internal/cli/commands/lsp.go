package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/newton-physics/kernelint/internal/cli/config"
	"github.com/newton-physics/kernelint/internal/lsp"
	"github.com/newton-physics/kernelint/pkg/lint"
)

// NewLSPCommand runs kernelint as a language server.
func NewLSPCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Run the language server over stdio",
		Long: `Run kernelint as a language server for editor integration.

JSON-RPC messages are exchanged on stdin/stdout. Kernel diagnostics
are published for Python documents as they are opened and edited. The
field schema is resolved from --schema or the config file, falling
back to the built-in Newton schema.`,
		Example: `  # Usually launched by an editor, not by hand
  kernelint lsp`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLSP(cmd)
		},
	}

	return cmd
}

func runLSP(cmd *cobra.Command) error {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	sch, err := loadSchema(cfg)
	if err != nil {
		return err
	}

	analyzer := lint.New(sch, buildLintConfig(cfg, &LintOptions{}), logger)
	server := lsp.NewServerWithLogger(os.Stdin, os.Stdout, analyzer, logger)
	return server.Run()
}
