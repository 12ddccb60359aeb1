package rules

import (
	"github.com/newton-physics/kernelint/pkg/lint"
	"github.com/newton-physics/kernelint/pkg/schema"
)

func init() {
	lint.Register(ModelSuffix)
}

// ModelSuffix flags Model field names carrying an _in or _out suffix.
// Model fields are immutable inputs, so the direction suffixes that
// distinguish Data access modes never apply to them.
var ModelSuffix = lint.RuleDef{
	ID:          "KA0006",
	Name:        "naming.model_suffix",
	Group:       "naming",
	Description: "Model fields must not end with _in or _out.",
	Severity:    lint.SeverityWarning,
	Check:       checkModelSuffix,

	BadExample: `@kernel
def fwd(geom_pos_in: wp.array(dtype=wp.vec3, ndim=1)):
    ...`,

	GoodExample: `@kernel
def fwd(geom_pos: wp.array(dtype=wp.vec3, ndim=1)):
    ...`,
}

func checkModelSuffix(ctx *lint.Context) []lint.Issue {
	var issues []lint.Issue
	fn := ctx.Function
	for _, p := range ctx.Params {
		base, suffix := schema.Canonical(p.Name)
		if suffix != "" && ctx.Schema.IsModelField(base) {
			issues = append(issues, lint.NewModelFieldSuffixIssue(fn.Line, fn.Name, p.Name, suffix))
		}
	}
	return issues
}
