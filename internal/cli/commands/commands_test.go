// Package commands_test provides tests for CLI command creation.
package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/newton-physics/kernelint/internal/cli/config"
)

func TestNewLSPCommand(t *testing.T) {
	cmd := NewLSPCommand()

	assert.Equal(t, "lsp", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")
}

func TestGetEnvOrDefault(t *testing.T) {
	t.Run("unset returns default", func(t *testing.T) {
		assert.Equal(t, "auto", getEnvOrDefault("KERNELINT_TEST_UNSET", "auto"))
	})

	t.Run("set returns value", func(t *testing.T) {
		t.Setenv("KERNELINT_TEST_SET", "github")
		assert.Equal(t, "github", getEnvOrDefault("KERNELINT_TEST_SET", "auto"))
	})
}

func TestLoadSchema(t *testing.T) {
	t.Run("empty path uses built-in schema", func(t *testing.T) {
		sch, err := loadSchema(&config.Config{})
		assert.NoError(t, err)
		assert.NotNil(t, sch)
	})

	t.Run("missing file is fatal", func(t *testing.T) {
		sch, err := loadSchema(&config.Config{Schema: "/nonexistent/schema.yaml"})
		assert.Error(t, err)
		assert.Nil(t, sch)
	})
}
