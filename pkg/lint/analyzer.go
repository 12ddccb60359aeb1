package lint

import (
	"context"
	"log/slog"
	"strings"

	"github.com/newton-physics/kernelint/pkg/parser"
	"github.com/newton-physics/kernelint/pkg/schema"
)

// Analyzer runs the registered kernel rules over Python source buffers.
// It holds no per-file state and may serve many files concurrently.
type Analyzer struct {
	schema *schema.Schema
	config *Config
	logger *slog.Logger
}

// New creates an analyzer. A nil config enables every rule; a nil logger
// discards.
func New(s *schema.Schema, config *Config, logger *slog.Logger) *Analyzer {
	if config == nil {
		config = NewConfig()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Analyzer{schema: s, config: config, logger: logger}
}

// Analyze lints one file's source and returns every finding, kernels in
// source order and rules in ascending ID order within each kernel. It
// never fails: source that does not parse logs and yields nothing, and a
// panicking rule is contained to the kernel it was inspecting. The
// filename is used for logging only.
func (a *Analyzer) Analyze(src []byte, filename string) []Issue {
	a.logger.Debug("analyzing", "file", filename)

	tree, err := parser.Parse(context.Background(), src)
	if err != nil {
		a.logger.Error("failed to parse", "file", filename, "error", err)
		return nil
	}
	defer tree.Close()

	if tree.HasError() {
		a.logger.Error("syntax error", "file", filename)
		return nil
	}

	lines := strings.Split(string(src), "\n")

	var issues []Issue
	for _, fn := range tree.Kernels() {
		issues = append(issues, a.analyzeKernel(fn, src, lines)...)
	}

	a.logger.Debug("analysis complete", "file", filename, "issues", len(issues))
	return issues
}

// analyzeKernel runs every enabled rule against one kernel. The deferred
// recover keeps a rule bug from taking down the caller: findings gathered
// before the panic survive.
func (a *Analyzer) analyzeKernel(fn parser.Function, src []byte, lines []string) (issues []Issue) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("rule panicked", "kernel", fn.Name, "panic", r)
		}
	}()

	ctx := &Context{
		Function: fn,
		Params:   Classify(fn, a.schema),
		Schema:   a.schema,
		Source:   src,
		Lines:    lines,
		Logger:   a.logger,
	}

	for _, rule := range All() {
		if a.config.IsDisabled(rule.ID) {
			continue
		}
		issues = append(issues, rule.Check(ctx)...)
	}
	return issues
}

// Severity resolves the effective severity for a finding, applying any
// configured override to the owning rule's default.
func (a *Analyzer) Severity(issue Issue) Severity {
	def := SeverityWarning
	if rule, ok := Lookup(issue.Code()); ok {
		def = rule.Severity
	}
	return a.config.Severity(issue.Code(), def)
}
