package rules

import (
	"github.com/newton-physics/kernelint/pkg/lint"
	"github.com/newton-physics/kernelint/pkg/parser"
	"github.com/newton-physics/kernelint/pkg/schema"
)

func init() {
	lint.Register(FieldTypeMatch)
}

// FieldTypeMatch compares parameter annotations against the registered
// type of the schema field the parameter names. Parameters without an
// annotation are KA0004's problem and are skipped here.
var FieldTypeMatch = lint.RuleDef{
	ID:          "KA0005",
	Name:        "typing.field_match",
	Group:       "typing",
	Description: "Parameter annotations must match the registered field type.",
	Severity:    lint.SeverityWarning,
	Check:       checkFieldTypeMatch,

	Rationale: `A parameter named after a registry field is bound to that field's
storage at launch. An annotation that disagrees with the registered type either
reinterprets the buffer or fails at compile time, so the two must match
character for character.`,

	BadExample: `@kernel
def fwd(qpos0: array):
    ...`,

	GoodExample: `@kernel
def fwd(qpos0: wp.array(dtype=wp.float32, ndim=1)):
    ...`,
}

func checkFieldTypeMatch(ctx *lint.Context) []lint.Issue {
	var issues []lint.Issue
	fn := ctx.Function
	for _, p := range ctx.Params {
		if p.Annotation == nil {
			continue
		}

		base, _ := schema.Canonical(p.Name)
		var expected, family string
		if t, ok := ctx.Schema.ModelType(base); ok {
			expected, family = t, lint.FamilyModel
		} else if t, ok := ctx.Schema.DataType(base); ok {
			expected, family = t, lint.FamilyData
		} else {
			continue
		}

		actual := parser.ExprString(p.Annotation, ctx.Source)
		if actual != expected {
			issues = append(issues, lint.NewTypeMismatchIssue(fn.Line, fn.Name, p.Name, actual, expected, family))
		}
	}
	return issues
}
