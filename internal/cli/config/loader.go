package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// loggerKey carries the logger through command contexts. root.go stores
// under the same type via LoggerKey().
type loggerKey struct{}

// maxUpwardSearchLevels caps the walk from CWD toward the filesystem root
// when looking for a project config.
const maxUpwardSearchLevels = 10

// configNames are probed in order; the .yaml spelling wins.
var configNames = []string{"kernelint.yaml", "kernelint.yml"}

var (
	k              = koanf.New(".")
	configFileUsed string
	currentConfig  *Config
)

// locateConfig returns the path of the config file in dir, or "" when dir
// has none.
func locateConfig(dir string) string {
	for _, name := range configNames {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// findProjectRootUpward walks from startDir toward the root until a
// directory holding a kernelint config appears. Returns "" when the walk
// runs out of levels or hits the filesystem root.
func findProjectRootUpward(startDir string) string {
	dir := startDir
	for range maxUpwardSearchLevels {
		if locateConfig(dir) != "" {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// inferProjectRoot picks the directory that anchors relative config paths:
// the nearest ancestor with a kernelint config, else the CWD.
func inferProjectRoot() string {
	cwd, err := os.Getwd()
	if err != nil || cwd == "" {
		return "."
	}
	if root := findProjectRootUpward(cwd); root != "" {
		return root
	}
	return cwd
}

// resolveAgainst joins path onto base unless path is empty or already
// absolute.
func resolveAgainst(path, base string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

// ResetConfig clears the package state between test loads.
func ResetConfig() {
	k = koanf.New(".")
	configFileUsed = ""
	currentConfig = nil
}

// LoadConfig builds the effective configuration. Layers, lowest to
// highest: built-in defaults, the project config file, KERNELINT_*
// environment variables, then flags the user actually set.
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k = koanf.New(".")

	projectRoot := inferProjectRoot()

	// A schema path from the command line is CWD-relative; pin it down
	// before project-root resolution would rewrite it.
	var flagSchema string
	if flags != nil && flags.Changed("schema") {
		if v, _ := flags.GetString("schema"); v != "" {
			flagSchema, _ = filepath.Abs(v)
		}
	}

	// An explicit config file moves the project root to its directory.
	if cfgFile != "" {
		if abs, err := filepath.Abs(cfgFile); err == nil {
			projectRoot = filepath.Dir(abs)
		}
	}

	if err := k.Load(confmap.Provider(map[string]interface{}{
		"schema":  "",
		"output":  DefaultOutput,
		"verbose": false,
		"jobs":    0,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if cfgFile == "" {
		cfgFile = locateConfig(projectRoot)
	}
	configFileUsed = cfgFile
	if configFileUsed != "" {
		if err := k.Load(file.Provider(configFileUsed), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFileUsed, err)
		}
	}

	// KERNELINT_LINT_DISABLED becomes lint.disabled.
	if err := k.Load(env.Provider("KERNELINT_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "KERNELINT_")), "_", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			// Unset flags would clobber file and env values with their
			// defaults; --config selects the file and is not a value.
			if !f.Changed || f.Name == "config" {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("applying flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	cfg.ProjectRoot = projectRoot
	if flagSchema != "" {
		cfg.Schema = flagSchema
	} else {
		cfg.Schema = resolveAgainst(cfg.Schema, projectRoot)
	}

	currentConfig = &cfg
	return &cfg, nil
}

// GetConfigFileUsed reports which config file the last load read, if any.
func GetConfigFileUsed() string {
	return configFileUsed
}

// GetCurrentConfig returns the configuration from the last LoadConfig.
func GetCurrentConfig() *Config {
	return currentConfig
}

// LoggerKey exposes the context key so the cli package can store the logger
// without an import cycle.
func LoggerKey() interface{} {
	return loggerKey{}
}

// GetLogger pulls the logger from a command context, discarding when the
// context never got one.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.New(slog.DiscardHandler)
}
