// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/newton-physics/kernelint/internal/cli/output"
)

// CleanKernel is a kernel source that satisfies every convention under
// the built-in Newton schema.
const CleanKernel = `import warp as wp

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

// DefaultParamKernel is a kernel source that violates the no-defaults
// convention and nothing else.
const DefaultParamKernel = `@kernel
def fwd(foo: float = 1.0):
    pass
`

// SetupKernelTree creates a temporary source tree with kernel files for
// lint command tests. It returns the tree root; clean.py is conforming,
// kernels/fwd.py carries a default param, and notes.txt is not Python.
func SetupKernelTree(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(tmpDir, "kernels"), 0o750); err != nil {
		t.Fatalf("failed to create kernels directory: %v", err)
	}

	files := map[string]string{
		"clean.py":       CleanKernel,
		"kernels/fwd.py": DefaultParamKernel,
		"notes.txt":      "not python\n",
	}
	for name, content := range files {
		path := filepath.Join(tmpDir, name)
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("failed to write %s: %v", path, err)
		}
	}

	return tmpDir
}

// TestRenderer is a Renderer writing into buffers, so assertions can read
// back what a command printed to each stream.
type TestRenderer struct {
	*output.Renderer
	Out    *bytes.Buffer
	ErrOut *bytes.Buffer
}

// NewTestRenderer builds a renderer in the given mode over fresh buffers.
// Buffers are never terminals, so ModeAuto resolves to markdown.
func NewTestRenderer(mode output.Mode) *TestRenderer {
	tr := &TestRenderer{Out: new(bytes.Buffer), ErrOut: new(bytes.Buffer)}
	tr.Renderer = output.NewRenderer(tr.Out, tr.ErrOut, mode)
	return tr
}

// Output is everything written to the stdout stream so far.
func (tr *TestRenderer) Output() string { return tr.Out.String() }

// ErrorOutput is everything written to the stderr stream so far.
func (tr *TestRenderer) ErrorOutput() string { return tr.ErrOut.String() }

// Reset empties both streams between assertions.
func (tr *TestRenderer) Reset() {
	tr.Out.Reset()
	tr.ErrOut.Reset()
}

var ansiRe = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI fails the test when s carries terminal escape sequences.
// Markdown, JSON, and github outputs must stay machine-readable.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if loc := ansiRe.FindString(s); loc != "" {
		t.Errorf("output contains ANSI escape %q in %q", loc, s)
	}
}

// AssertValidMarkdown applies cheap structural checks: code fences must be
// balanced and headers must have text.
func AssertValidMarkdown(t *testing.T, md string) {
	t.Helper()

	if fences := strings.Count(md, "```"); fences%2 != 0 {
		t.Errorf("markdown has %d code fence markers, want an even count", fences)
	}

	for i, line := range strings.Split(md, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") && strings.TrimLeft(trimmed, "# ") == "" {
			t.Errorf("markdown line %d is a header with no text: %q", i+1, line)
		}
	}
}
