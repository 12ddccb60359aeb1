package rules

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/newton-physics/kernelint/pkg/lint"
	"github.com/newton-physics/kernelint/pkg/parser"
)

func init() {
	lint.Register(ReadOnlyWrite)
}

// ReadOnlyWrite flags assignments whose target is a Model or Data-input
// parameter. Both plain and augmented assignments count, and subscripted
// targets (qpos_in[i] = ...) resolve to the subscripted name. Repeated
// writes to the same field report once per kernel.
var ReadOnlyWrite = lint.RuleDef{
	ID:          "KA0010",
	Name:        "mutation.readonly_write",
	Group:       "mutation",
	Description: "Kernels must not write to Model or Data-input parameters.",
	Severity:    lint.SeverityWarning,
	Check:       checkReadOnlyWrite,

	Rationale: `Model fields are shared constants and _in arrays are the previous step's
state; writing to either corrupts every kernel launched after this one
in the same step. The convention is load-bearing: the scheduler relies
on _out being the only mutated arrays when it overlaps kernel launches.`,

	BadExample: `@kernel
def fwd(
    # Data in
    qpos_in: wp.array(dtype=wp.float32, ndim=2),
):
    qpos_in[0] = 1.0`,

	GoodExample: `@kernel
def fwd(
    # Data in
    qpos_in: wp.array(dtype=wp.float32, ndim=2),
    # Data out
    qpos_out: wp.array(dtype=wp.float32, ndim=2),
):
    qpos_out[0] = qpos_in[0]`,
}

func checkReadOnlyWrite(ctx *lint.Context) []lint.Issue {
	readonly := make(map[string]string)
	for _, p := range ctx.Params {
		switch p.Class {
		case lint.ClassModel:
			readonly[p.Name] = lint.FamilyModel
		case lint.ClassDataIn:
			readonly[p.Name] = lint.FamilyDataInput
		}
	}
	fn := ctx.Function
	if len(readonly) == 0 || fn.Body == nil {
		return nil
	}

	var issues []lint.Issue
	seen := make(map[string]bool)
	walkWrites(fn.Body, func(left *sitter.Node) {
		name := writeTarget(left, ctx.Source)
		family, ok := readonly[name]
		if !ok {
			return
		}
		issue := lint.NewWriteToReadOnlyFieldIssue(fn.Line, fn.Name, family, name)
		if seen[issue.String()] {
			return
		}
		seen[issue.String()] = true
		issues = append(issues, issue)
	})
	return issues
}

// walkWrites visits the assignment target of every assignment and
// augmented assignment under n, descending into the assignments
// themselves so chained forms (a = b = ...) are covered.
func walkWrites(n *sitter.Node, visit func(left *sitter.Node)) {
	switch n.Type() {
	case "assignment", "augmented_assignment":
		if left := n.ChildByFieldName("left"); left != nil {
			visit(left)
		}
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		walkWrites(n.NamedChild(i), visit)
	}
}

// writeTarget resolves an assignment target to the parameter name it
// mutates: a bare identifier is itself, a subscript resolves to the
// subscripted identifier, anything else is not a parameter write.
func writeTarget(left *sitter.Node, src []byte) string {
	switch left.Type() {
	case "identifier":
		return parser.Text(left, src)
	case "subscript":
		if value := left.ChildByFieldName("value"); value != nil && value.Type() == "identifier" {
			return parser.Text(value, src)
		}
	}
	return ""
}
