package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "kernelint.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	ResetConfig()
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, "auto", cfg.OutputFormat)
	assert.False(t, cfg.Verbose)
	assert.Equal(t, 0, cfg.Jobs)
	assert.Empty(t, cfg.Schema)
	assert.Nil(t, cfg.Lint)
	assert.NotEmpty(t, cfg.ProjectRoot)
	assert.Empty(t, GetConfigFileUsed())
}

func TestLoadConfig_FileValues(t *testing.T) {
	ResetConfig()
	tmpDir := t.TempDir()
	cfgPath := writeConfigFile(t, tmpDir, `schema: schemas/newton.yaml
output: json
jobs: 4
verbose: true
lint:
  disabled:
    - KA0002
  severity:
    KA0001: error
`)

	cfg, err := LoadConfig(cfgPath, nil)
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.OutputFormat)
	assert.Equal(t, 4, cfg.Jobs)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, filepath.Join(tmpDir, "schemas", "newton.yaml"), cfg.Schema)
	assert.Equal(t, tmpDir, cfg.ProjectRoot)
	require.NotNil(t, cfg.Lint)
	assert.Equal(t, []string{"KA0002"}, cfg.Lint.Disabled)
	assert.Equal(t, "error", cfg.Lint.Severity["KA0001"])
	assert.Equal(t, cfgPath, GetConfigFileUsed())
	assert.Same(t, cfg, GetCurrentConfig())
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	ResetConfig()
	tmpDir := t.TempDir()

	_, err := LoadConfig(filepath.Join(tmpDir, "nope.yaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	ResetConfig()
	tmpDir := t.TempDir()
	cfgPath := writeConfigFile(t, tmpDir, "output: json\n")

	t.Setenv("KERNELINT_OUTPUT", "github")

	cfg, err := LoadConfig(cfgPath, nil)
	require.NoError(t, err)
	assert.Equal(t, "github", cfg.OutputFormat)
}

func TestLoadConfig_EnvListValue(t *testing.T) {
	ResetConfig()
	t.Chdir(t.TempDir())

	t.Setenv("KERNELINT_LINT_DISABLED", "KA0001,KA0003")

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	require.NotNil(t, cfg.Lint)
	assert.Equal(t, []string{"KA0001", "KA0003"}, cfg.Lint.Disabled)
}

func TestLoadConfig_EnvSchema(t *testing.T) {
	ResetConfig()
	t.Chdir(t.TempDir())

	t.Setenv("KERNELINT_SCHEMA", "/opt/schemas/newton.yaml")

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, "/opt/schemas/newton.yaml", cfg.Schema)
}

func TestLoadConfig_FlagPrecedence(t *testing.T) {
	ResetConfig()
	tmpDir := t.TempDir()
	cfgPath := writeConfigFile(t, tmpDir, "output: markdown\n")

	t.Setenv("KERNELINT_OUTPUT", "json")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.StringP("output", "o", "", "output format")
	require.NoError(t, flags.Set("output", "github"))

	cfg, err := LoadConfig(cfgPath, flags)
	require.NoError(t, err)

	// Flag should win over env var and config file
	assert.Equal(t, "github", cfg.OutputFormat)
}

func TestLoadConfig_FlagNotSetUsesEnv(t *testing.T) {
	ResetConfig()
	tmpDir := t.TempDir()
	cfgPath := writeConfigFile(t, tmpDir, "output: markdown\n")

	t.Setenv("KERNELINT_OUTPUT", "json")

	// Flag defined but not set, so Changed is false
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.StringP("output", "o", "", "output format")

	cfg, err := LoadConfig(cfgPath, flags)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.OutputFormat)
}

func TestLoadConfig_SchemaFlagResolvedFromCWD(t *testing.T) {
	ResetConfig()
	t.Chdir(t.TempDir())

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("schema", "", "schema file")
	require.NoError(t, flags.Set("schema", "sch.yaml"))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(cfg.Schema))
	assert.True(t, strings.HasSuffix(cfg.Schema, "sch.yaml"))
}

func TestFindProjectRootUpward(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfigFile(t, tmpDir, "output: json\n")
	nested := filepath.Join(tmpDir, "src", "kernels")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	assert.Equal(t, tmpDir, findProjectRootUpward(nested))
}

func TestConfig_Validate(t *testing.T) {
	for _, output := range []string{"", "auto", "text", "console", "markdown", "md", "json", "github"} {
		cfg := &Config{OutputFormat: output}
		assert.NoError(t, cfg.Validate(), "output %q", output)
	}

	err := (&Config{OutputFormat: "yaml"}).Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")

	err = (&Config{Jobs: -1}).Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jobs")
}

func TestConfig_ValidateSchemaPath(t *testing.T) {
	assert.NoError(t, (&Config{}).ValidateSchemaPath())

	tmpDir := t.TempDir()
	existing := filepath.Join(tmpDir, "schema.yaml")
	require.NoError(t, os.WriteFile(existing, []byte("model_class: Model\n"), 0o600))
	assert.NoError(t, (&Config{Schema: existing}).ValidateSchemaPath())

	err := (&Config{Schema: filepath.Join(tmpDir, "missing.yaml")}).ValidateSchemaPath()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema file does not exist")
}

func TestGetLintSettings(t *testing.T) {
	cfg := &Config{}
	require.NotNil(t, cfg.GetLintSettings())
	assert.Empty(t, cfg.GetLintSettings().Disabled)

	settings := &LintSettings{Disabled: []string{"KA0001"}}
	cfg = &Config{Lint: settings}
	assert.Same(t, settings, cfg.GetLintSettings())
}

func TestGetLogger(t *testing.T) {
	// Fallback logger when context has none
	assert.NotNil(t, GetLogger(context.Background()))

	logger := slog.New(slog.DiscardHandler)
	ctx := context.WithValue(context.Background(), LoggerKey(), logger)
	assert.Same(t, logger, GetLogger(ctx))
}
