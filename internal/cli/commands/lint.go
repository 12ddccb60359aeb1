package commands

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/newton-physics/kernelint/internal/cli/config"
	"github.com/newton-physics/kernelint/internal/cli/output"
	"github.com/newton-physics/kernelint/internal/discover"
	"github.com/newton-physics/kernelint/internal/watch"
	"github.com/newton-physics/kernelint/pkg/lint"
	_ "github.com/newton-physics/kernelint/pkg/lint/rules" // register kernel rules
)

// LintOptions holds options for the lint command.
type LintOptions struct {
	Paths   []string // Files or directories to analyze
	Disable []string // Rule IDs to disable
	Rules   []string // Run only specific rules
	Jobs    int      // Parallel file analyses
	Watch   bool     // Re-lint files as they change
}

// NewLintCommand creates the lint command.
func NewLintCommand() *cobra.Command {
	opts := &LintOptions{}
	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Check kernel signatures in Python sources",
		Long: `Analyze compute kernels for signature convention violations.

Checks every @kernel function in the given Python files (directories are
walked for .py files) against the Model/Data parameter conventions:
ordering, type annotations, _in/_out suffixes, section comments, and
writes to read-only fields.

Output adapts to environment:
  - console: one "path:line:issue" line per finding on stderr
  - github: workflow error annotations for CI
  - json: machine-readable summary and diagnostics`,
		Example: `  # Lint specific files
  kernelint lint solver.py kernels/integrate.py

  # Lint every .py file under a directory
  kernelint lint ./newton

  # Annotate a GitHub Actions run
  kernelint lint -o github ./newton

  # Disable specific rules
  kernelint lint --disable KA0006,KA0007 ./newton

  # Re-lint files as they change
  kernelint lint --watch ./newton`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Paths = args
			return runLint(cmd, opts)
		},
	}

	cmd.Flags().StringSliceVar(&opts.Disable, "disable", nil, "Rule IDs to disable")
	cmd.Flags().StringSliceVar(&opts.Rules, "rule", nil, "Run only specific rules")
	cmd.Flags().IntVar(&opts.Jobs, "jobs", 0, "Files analyzed in parallel (default GOMAXPROCS)")
	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "Watch for changes and re-lint")

	return cmd
}

func runLint(cmd *cobra.Command, opts *LintOptions) error {
	cmdCtx := NewCommandContext(cmd)
	cfg := cmdCtx.Cfg
	r := cmdCtx.Renderer

	sch, err := loadSchema(cfg)
	if err != nil {
		return err
	}
	analyzer := lint.New(sch, buildLintConfig(cfg, opts), cmdCtx.Logger)

	files, skipped, failed := expandPaths(r, opts.Paths)
	results := analyzeFiles(analyzer, files, resolveJobs(cfg, opts))
	hasIssues, readFailures := renderLintResults(r, analyzer, results)

	if opts.Watch {
		return runLintWatch(cmd, cmdCtx, analyzer, opts.Paths)
	}

	// Exit with code 1 if issues found
	if hasIssues {
		return fmt.Errorf("lint issues found")
	}
	if skipped > 0 || failed > 0 || readFailures > 0 {
		return fmt.Errorf("some files could not be analyzed")
	}
	return nil
}

// buildLintConfig layers rule selection: project config first, then CLI
// flags on top.
func buildLintConfig(cfg *config.Config, opts *LintOptions) *lint.Config {
	lintCfg := lint.NewConfig()

	if cfg != nil && cfg.Lint != nil {
		for _, id := range cfg.Lint.Disabled {
			lintCfg.Disable(normalizeRuleID(id))
		}
		for id, sev := range cfg.Lint.Severity {
			if s, err := lint.ParseSeverity(sev); err == nil {
				lintCfg.SetSeverity(normalizeRuleID(id), s)
			}
		}
	}

	for _, id := range opts.Disable {
		lintCfg.Disable(normalizeRuleID(id))
	}

	// If --rule specified, disable all others
	if len(opts.Rules) > 0 {
		enabled := make(map[string]bool)
		for _, id := range opts.Rules {
			enabled[normalizeRuleID(id)] = true
		}
		for _, rule := range lint.All() {
			if !enabled[rule.ID] {
				lintCfg.Disable(rule.ID)
			}
		}
	}

	return lintCfg
}

// normalizeRuleID accepts the lowercase IDs env vars and lazy typing produce.
func normalizeRuleID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

// resolveJobs picks the parallelism: lint flag, then config, then GOMAXPROCS.
func resolveJobs(cfg *config.Config, opts *LintOptions) int {
	if opts.Jobs > 0 {
		return opts.Jobs
	}
	if cfg != nil && cfg.Jobs > 0 {
		return cfg.Jobs
	}
	return runtime.GOMAXPROCS(0)
}

// lintFileResult holds lint results for a single file.
type lintFileResult struct {
	Path   string
	Issues []lint.Issue
	Err    error // read failure
}

// expandPaths resolves lint arguments to the .py files they name.
// Directory arguments are walked via discover; non-Python file arguments
// are skipped with a warning. Files come back in sorted order.
func expandPaths(r *output.Renderer, paths []string) (files []string, skipped, failed int) {
	seen := make(map[string]struct{})
	add := func(path string) {
		if _, dup := seen[path]; !dup {
			seen[path] = struct{}{}
			files = append(files, path)
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			r.Errorf("Error processing file %s: %v\n", path, err)
			failed++
			continue
		}
		if info.IsDir() {
			found, err := discover.Files(path)
			if err != nil {
				r.Errorf("Error processing file %s: %v\n", path, err)
				failed++
				continue
			}
			for _, f := range found {
				add(f)
			}
			continue
		}
		if !strings.HasSuffix(path, ".py") {
			r.Errorf("Skipping non-Python file: %s\n", path)
			skipped++
			continue
		}
		add(path)
	}

	sort.Strings(files)
	return files, skipped, failed
}

// analyzeFiles runs the analyzer over files, jobs at a time. Results come
// back in the same order as files regardless of scheduling.
func analyzeFiles(analyzer *lint.Analyzer, files []string, jobs int) []lintFileResult {
	results := make([]lintFileResult, len(files))

	var g errgroup.Group
	g.SetLimit(jobs)
	for i, path := range files {
		g.Go(func() error {
			results[i] = analyzeFile(analyzer, path)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func analyzeFile(analyzer *lint.Analyzer, path string) lintFileResult {
	src, err := os.ReadFile(path)
	if err != nil {
		return lintFileResult{Path: path, Err: err}
	}
	return lintFileResult{Path: path, Issues: analyzer.Analyze(src, path)}
}

// renderLintResults prints results in the renderer's effective mode and
// reports whether any issues were found plus the number of files that
// could not be read.
func renderLintResults(r *output.Renderer, analyzer *lint.Analyzer, results []lintFileResult) (bool, int) {
	summary := output.LintSummary{FilesAnalyzed: len(results)}
	readFailures := 0
	withIssues := make([]lintFileResult, 0, len(results))

	for _, res := range results {
		if res.Err != nil {
			readFailures++
			r.Errorf("Error processing file %s: %v\n", res.Path, res.Err)
			continue
		}
		if len(res.Issues) == 0 {
			continue
		}
		withIssues = append(withIssues, res)
		summary.TotalIssues += len(res.Issues)
		for _, iss := range res.Issues {
			switch analyzer.Severity(iss) {
			case lint.SeverityError:
				summary.Errors++
			case lint.SeverityWarning:
				summary.Warnings++
			case lint.SeverityInfo:
				summary.Info++
			case lint.SeverityHint:
				summary.Hints++
			}
		}
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		jsonOutput := output.LintOutput{Summary: summary}
		for _, res := range withIssues {
			fileResult := output.LintFileResult{Path: res.Path}
			for _, iss := range res.Issues {
				fileResult.Diagnostics = append(fileResult.Diagnostics, output.LintDiagnostic{
					Code:     iss.Code(),
					Severity: analyzer.Severity(iss).String(),
					Line:     iss.Line(),
					Kernel:   iss.Kernel(),
					Message:  iss.String(),
				})
			}
			jsonOutput.Files = append(jsonOutput.Files, fileResult)
		}
		_ = r.JSON(jsonOutput)

	case output.ModeGitHub:
		for _, res := range withIssues {
			for _, iss := range res.Issues {
				r.Printf("::error title=Kernel Analyzer,file=%s,line=%d::%s\n", res.Path, iss.Line(), iss)
			}
		}

	default:
		for _, res := range withIssues {
			for _, iss := range res.Issues {
				r.Errorf("%s:%d:%s\n", res.Path, iss.Line(), iss)
			}
		}
		if len(withIssues) == 0 && readFailures == 0 {
			r.Success("No lint issues found")
		} else if len(withIssues) > 0 {
			r.Printf("Summary: %s in %d files\n", summarize(summary), len(withIssues))
		}
	}

	return len(withIssues) > 0, readFailures
}

func summarize(summary output.LintSummary) string {
	parts := []string{fmt.Sprintf("%d issues", summary.TotalIssues)}
	if summary.Errors > 0 {
		parts = append(parts, fmt.Sprintf("%d errors", summary.Errors))
	}
	if summary.Warnings > 0 {
		parts = append(parts, fmt.Sprintf("%d warnings", summary.Warnings))
	}
	if summary.Info > 0 {
		parts = append(parts, fmt.Sprintf("%d info", summary.Info))
	}
	if summary.Hints > 0 {
		parts = append(parts, fmt.Sprintf("%d hints", summary.Hints))
	}
	return strings.Join(parts, ", ")
}

// runLintWatch re-lints changed files until interrupted. Watch mode always
// exits cleanly; findings only go to the output streams.
func runLintWatch(cmd *cobra.Command, cmdCtx *CommandContext, analyzer *lint.Analyzer, paths []string) error {
	r := cmdCtx.Renderer

	roots, fileArgs := watchRoots(paths)
	if len(roots) == 0 {
		return fmt.Errorf("no watchable paths")
	}

	onChange := func(path string) {
		// When only explicit files were named, stay scoped to them.
		if len(fileArgs) > 0 {
			if _, ok := fileArgs[path]; !ok {
				return
			}
		}
		res := analyzeFile(analyzer, path)
		if res.Err != nil {
			r.Errorf("Error processing file %s: %v\n", res.Path, res.Err)
			return
		}
		for _, iss := range res.Issues {
			r.Errorf("%s:%d:%s\n", res.Path, iss.Line(), iss)
		}
		if len(res.Issues) == 0 {
			r.Success(fmt.Sprintf("%s: no issues", res.Path))
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r.Errorf("Watching for changes. Press Ctrl+C to stop.\n")
	w := watch.New(roots, cmdCtx.Logger, onChange)
	return w.Run(ctx)
}

// watchRoots maps lint arguments to watchable directories. File arguments
// watch their parent directory but are remembered so unrelated siblings
// don't trigger re-lints; once any directory is named, everything under
// the watched roots is fair game.
func watchRoots(paths []string) ([]string, map[string]struct{}) {
	rootSet := make(map[string]struct{})
	fileArgs := make(map[string]struct{})
	sawDir := false

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if info.IsDir() {
			rootSet[path] = struct{}{}
			sawDir = true
			continue
		}
		if strings.HasSuffix(path, ".py") {
			rootSet[filepath.Dir(path)] = struct{}{}
			fileArgs[path] = struct{}{}
		}
	}

	roots := make([]string, 0, len(rootSet))
	for root := range rootSet {
		roots = append(roots, root)
	}
	sort.Strings(roots)

	if sawDir {
		fileArgs = nil
	}
	return roots, fileArgs
}
