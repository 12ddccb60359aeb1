package commands

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/newton-physics/kernelint/internal/cli/output"
	"github.com/newton-physics/kernelint/pkg/lint"
	_ "github.com/newton-physics/kernelint/pkg/lint/rules" // register kernel rules
)

// RulesOptions contains options for the rules command.
type RulesOptions struct {
	Group  string
	Format string
}

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	opts := &RulesOptions{}

	cmd := &cobra.Command{
		Use:   "rules [rule-id]",
		Short: "List kernel lint rules or show documentation for one rule",
		Long: `Display the lint rules kernelint checks kernel signatures against.

Without arguments, lists every rule with its ID, name, group, severity,
and description. With a rule ID (for example KA0004), shows the full
documentation for that rule including rationale and examples.`,
		Example: `  # List all rules
  kernelint rules

  # List only the ordering rules
  kernelint rules --group ordering

  # Show full documentation for one rule
  kernelint rules KA0004

  # Machine-readable listing
  kernelint rules --format json`,
		Args: cobra.MaximumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) != 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			var ids []string
			for _, rule := range lint.All() {
				ids = append(ids, rule.ID)
			}
			return ids, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return showRule(cmd, opts, args[0])
			}
			return listRules(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Group, "group", "g", "", "Filter rules by group (signature, typing, naming, ordering, comments, mutation)")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")

	return cmd
}

// RuleInfo is the serializable view of a rule definition.
type RuleInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Group       string `json:"group"`
	Severity    string `json:"severity"`
	Description string `json:"description"`
	Rationale   string `json:"rationale,omitempty"`
	BadExample  string `json:"bad_example,omitempty"`
	GoodExample string `json:"good_example,omitempty"`
	Fix         string `json:"fix,omitempty"`
}

// RulesListOutput is the JSON envelope for a rules listing.
type RulesListOutput struct {
	Rules []RuleInfo `json:"rules"`
	Count int        `json:"count"`
}

func ruleInfo(rule lint.RuleDef, full bool) RuleInfo {
	info := RuleInfo{
		ID:          rule.ID,
		Name:        rule.Name,
		Group:       rule.Group,
		Severity:    rule.Severity.String(),
		Description: rule.Description,
	}
	if full {
		info.Rationale = rule.Rationale
		info.BadExample = rule.BadExample
		info.GoodExample = rule.GoodExample
		info.Fix = rule.Fix
	}
	return info
}

// rulesRenderer builds the renderer for rules output, honoring the
// --format flag over the global output setting.
func rulesRenderer(cmd *cobra.Command, opts *RulesOptions) *output.Renderer {
	cmdCtx := NewCommandContext(cmd)
	if opts.Format == "" {
		return cmdCtx.Renderer
	}
	return output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.ParseMode(opts.Format))
}

func listRules(cmd *cobra.Command, opts *RulesOptions) error {
	r := rulesRenderer(cmd, opts)

	rules := lint.All()
	if opts.Group != "" {
		rules = lint.ByGroup(strings.ToLower(strings.TrimSpace(opts.Group)))
		if len(rules) == 0 {
			return fmt.Errorf("no rules in group %q", opts.Group)
		}
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return listRulesJSON(r, rules)
	case output.ModeMarkdown:
		listRulesMarkdown(r, rules)
		return nil
	default:
		listRulesText(r, rules)
		return nil
	}
}

func listRulesJSON(r *output.Renderer, rules []lint.RuleDef) error {
	out := RulesListOutput{Count: len(rules)}
	for _, rule := range rules {
		out.Rules = append(out.Rules, ruleInfo(rule, false))
	}
	return r.JSON(out)
}

func listRulesMarkdown(r *output.Renderer, rules []lint.RuleDef) {
	r.Printf("# Kernel Lint Rules\n\n")

	for _, group := range groupOrder(rules) {
		r.Printf("## %s\n\n", capitalizeFirst(group))
		for _, rule := range rules {
			if rule.Group != group {
				continue
			}
			r.Printf("- **%s** - %s (`%s`): %s\n", rule.ID, rule.Name, rule.Severity, rule.Description)
		}
		r.Printf("\n")
	}

	r.Printf("*%d rules total*\n", len(rules))
}

func listRulesText(r *output.Renderer, rules []lint.RuleDef) {
	styles := r.Styles()
	r.Println(styles.Header1.Render("Kernel Lint Rules"))
	r.Println("")

	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Name", "Group", "Severity", "Description"})
	for _, rule := range rules {
		t.AppendRow(table.Row{
			rule.ID,
			rule.Name,
			rule.Group,
			rule.Severity.String(),
			truncateOneLine(rule.Description, 60),
		})
	}
	t.Render()

	r.Println("")
	r.Println(styles.Muted.Render("Use 'kernelint rules <rule-id>' for detailed documentation"))
}

// groupOrder returns the distinct groups in the order their first rule
// appears, so listings stay stable across runs.
func groupOrder(rules []lint.RuleDef) []string {
	seen := make(map[string]bool)
	var groups []string
	for _, rule := range rules {
		if !seen[rule.Group] {
			seen[rule.Group] = true
			groups = append(groups, rule.Group)
		}
	}
	return groups
}

func showRule(cmd *cobra.Command, opts *RulesOptions, ruleID string) error {
	r := rulesRenderer(cmd, opts)

	rule, ok := lint.Lookup(normalizeRuleID(ruleID))
	if !ok {
		return fmt.Errorf("rule %q not found (run 'kernelint rules' to list available rules)", ruleID)
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(ruleInfo(rule, true))
	case output.ModeMarkdown:
		showRuleMarkdown(r, rule)
		return nil
	default:
		showRuleText(r, rule)
		return nil
	}
}

func showRuleText(r *output.Renderer, rule lint.RuleDef) {
	styles := r.Styles()

	r.Println(styles.Header1.Render(fmt.Sprintf("%s - %s", rule.ID, rule.Name)))
	r.Println("")
	r.Printf("%s %s\n", styles.Bold.Render("Group:"), rule.Group)
	r.Printf("%s %s\n", styles.Bold.Render("Severity:"), getSeverityStyle(styles, rule.Severity).Render(rule.Severity.String()))
	r.Println("")
	r.Println(rule.Description)

	if rule.Rationale != "" {
		r.Println("")
		r.Println(styles.Header2.Render("Why This Matters"))
		r.Println(rule.Rationale)
	}

	if rule.BadExample != "" {
		r.Println("")
		r.Println(styles.Header2.Render("Bad Example"))
		for _, line := range strings.Split(strings.TrimRight(rule.BadExample, "\n"), "\n") {
			r.Println(styles.Muted.Render("  " + line))
		}
	}

	if rule.GoodExample != "" {
		r.Println("")
		r.Println(styles.Header2.Render("Good Example"))
		for _, line := range strings.Split(strings.TrimRight(rule.GoodExample, "\n"), "\n") {
			r.Println(styles.Success.Render("  " + line))
		}
	}

	if rule.Fix != "" {
		r.Println("")
		r.Println(styles.Header2.Render("How to Fix"))
		r.Println(rule.Fix)
	}
}

func showRuleMarkdown(r *output.Renderer, rule lint.RuleDef) {
	r.Printf("## %s - %s\n\n", rule.ID, rule.Name)
	r.Printf("**Group:** %s\n", rule.Group)
	r.Printf("**Severity:** %s\n\n", rule.Severity)
	r.Printf("%s\n", rule.Description)

	if rule.Rationale != "" {
		r.Printf("\n### Why This Matters\n\n%s\n", rule.Rationale)
	}
	if rule.BadExample != "" {
		r.Printf("\n### Bad Example\n\n```python\n%s\n```\n", strings.TrimRight(rule.BadExample, "\n"))
	}
	if rule.GoodExample != "" {
		r.Printf("\n### Good Example\n\n```python\n%s\n```\n", strings.TrimRight(rule.GoodExample, "\n"))
	}
	if rule.Fix != "" {
		r.Printf("\n### How to Fix\n\n%s\n", rule.Fix)
	}
}

func getSeverityStyle(styles *output.Styles, sev lint.Severity) lipgloss.Style {
	switch sev {
	case lint.SeverityError:
		return styles.Error
	case lint.SeverityWarning:
		return styles.Warning
	case lint.SeverityInfo:
		return styles.Info
	default:
		return styles.Muted
	}
}

// truncateOneLine flattens s to a single line and caps it at maxLen runes.
func truncateOneLine(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
