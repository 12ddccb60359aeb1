// Package main provides tests for the kernelint CLI.
package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/newton-physics/kernelint/internal/cli"
)

const cleanKernel = `import warp as wp

from newton.warp_util import kernel


@kernel
def integrate(
    # Model:
    qpos0: wp.array(dtype=wp.float32, ndim=1),
    # Data in:
    qvel_in: wp.array(dtype=wp.float32, ndim=2),
    # Data out:
    act_out: wp.array(dtype=wp.float32, ndim=2),
):
    x = qpos0
`

const defaultParamKernel = `@kernel
def fwd(foo: float = 1.0):
    pass
`

func writeKernelFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

func TestVersionCommand(t *testing.T) {
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"version"})

	err := cmd.Execute()
	if err != nil {
		t.Errorf("version command error = %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "kernelint") {
		t.Errorf("version output should contain 'kernelint', got: %s", output)
	}
}

func TestHelpCommand(t *testing.T) {
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--help"})

	err := cmd.Execute()
	if err != nil {
		t.Errorf("help command error = %v", err)
	}

	output := buf.String()
	expectedCommands := []string{"lint", "rules", "lsp", "version", "completion"}
	for _, expected := range expectedCommands {
		if !strings.Contains(output, expected) {
			t.Errorf("help output should contain '%s', got: %s", expected, output)
		}
	}
}

func TestLintCommandCleanFile(t *testing.T) {
	t.Chdir(t.TempDir())
	tmpDir := t.TempDir()
	path := writeKernelFile(t, tmpDir, "integrate.py", cleanKernel)

	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"lint", path})

	err := cmd.Execute()
	if err != nil {
		t.Errorf("lint command error = %v", err)
	}
}

func TestLintCommandReportsIssues(t *testing.T) {
	t.Chdir(t.TempDir())
	tmpDir := t.TempDir()
	path := writeKernelFile(t, tmpDir, "fwd.py", defaultParamKernel)

	cmd := cli.NewRootCmd()
	errBuf := new(bytes.Buffer)
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(errBuf)
	cmd.SetArgs([]string{"lint", path})

	err := cmd.Execute()
	if err == nil {
		t.Error("lint command should fail when issues are found")
	}

	output := errBuf.String()
	if !strings.Contains(output, "has default params") {
		t.Errorf("lint output should report the default param, got: %s", output)
	}
	if !strings.Contains(output, path+":2:") {
		t.Errorf("lint output should carry path and line, got: %s", output)
	}
}

func TestLintCommandGitHubFormat(t *testing.T) {
	t.Chdir(t.TempDir())
	tmpDir := t.TempDir()
	path := writeKernelFile(t, tmpDir, "fwd.py", defaultParamKernel)

	cmd := cli.NewRootCmd()
	outBuf := new(bytes.Buffer)
	cmd.SetOut(outBuf)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"lint", "--output", "github", path})

	err := cmd.Execute()
	if err == nil {
		t.Error("lint command should fail when issues are found")
	}

	output := outBuf.String()
	want := "::error title=Kernel Analyzer,file=" + path + ",line=2::"
	if !strings.Contains(output, want) {
		t.Errorf("github output should contain %q, got: %s", want, output)
	}
}

func TestRulesCommand(t *testing.T) {
	t.Chdir(t.TempDir())

	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"rules"})

	err := cmd.Execute()
	if err != nil {
		t.Errorf("rules command error = %v", err)
	}

	output := buf.String()
	for _, id := range []string{"KA0001", "KA0010"} {
		if !strings.Contains(output, id) {
			t.Errorf("rules output should contain '%s', got: %s", id, output)
		}
	}
}

func TestRulesShowCommand(t *testing.T) {
	t.Chdir(t.TempDir())

	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"rules", "KA0004"})

	err := cmd.Execute()
	if err != nil {
		t.Errorf("rules show command error = %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "KA0004") {
		t.Errorf("rules show output should contain the rule ID, got: %s", output)
	}
}

func TestUnknownCommand(t *testing.T) {
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"frobnicate"})

	if err := cmd.Execute(); err == nil {
		t.Error("unknown command should return an error")
	}
}
