// Package output renders command results for terminals, pipes, and CI.
//
// A Renderer owns the stdout/stderr writers and the output mode. ModeAuto
// picks text on an interactive terminal and markdown when piped, so the
// same command reads well in a shell and in a captured log.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

// Mode selects the output format.
type Mode string

// Supported output modes.
const (
	ModeAuto     Mode = "auto"
	ModeText     Mode = "text"
	ModeMarkdown Mode = "markdown"
	ModeJSON     Mode = "json"
	ModeGitHub   Mode = "github"
)

// ParseMode normalizes a user-supplied format string. "console" is the
// historical name for plain per-line output and maps to text; empty and
// unknown values fall back to auto.
func ParseMode(s string) Mode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "console":
		return ModeText
	case "markdown", "md":
		return ModeMarkdown
	case "json":
		return ModeJSON
	case "github":
		return ModeGitHub
	default:
		return ModeAuto
	}
}

// Renderer writes command output in the selected mode.
type Renderer struct {
	stdout io.Writer
	stderr io.Writer
	mode   Mode
	isTTY  bool
	styles *Styles
}

// NewRenderer creates a renderer for the given writers. The mode string is
// normalized with ParseMode, so any user-supplied value is safe to pass.
func NewRenderer(stdout, stderr io.Writer, mode Mode) *Renderer {
	return &Renderer{
		stdout: stdout,
		stderr: stderr,
		mode:   ParseMode(string(mode)),
		isTTY:  termenv.NewOutput(stdout).Profile != termenv.Ascii,
		styles: newStyles(),
	}
}

// EffectiveMode resolves ModeAuto against the terminal: text when stdout is
// an interactive terminal, markdown otherwise.
func (r *Renderer) EffectiveMode() Mode {
	if r.mode != ModeAuto {
		return r.mode
	}
	if r.isTTY {
		return ModeText
	}
	return ModeMarkdown
}

// Styles returns the renderer's style set.
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Writer returns the stdout writer, for callers that stream their own
// output (JSON encoders, table writers).
func (r *Renderer) Writer() io.Writer {
	return r.stdout
}

// ErrWriter returns the stderr writer.
func (r *Renderer) ErrWriter() io.Writer {
	return r.stderr
}

// Printf writes formatted output to stdout.
func (r *Renderer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.stdout, format, args...)
}

// Println writes a line to stdout.
func (r *Renderer) Println(s string) {
	_, _ = fmt.Fprintln(r.stdout, s)
}

// Errorf writes formatted output to stderr.
func (r *Renderer) Errorf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.stderr, format, args...)
}

// Success prints a confirmation message to stdout, styled in text mode.
func (r *Renderer) Success(msg string) {
	if r.EffectiveMode() == ModeText {
		_, _ = fmt.Fprintln(r.stdout, r.styles.Success.Render("✓ "+msg))
		return
	}
	_, _ = fmt.Fprintln(r.stdout, msg)
}

// JSON encodes v to stdout with two-space indentation.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
