package rules

import (
	"slices"

	"github.com/newton-physics/kernelint/pkg/lint"
	"github.com/newton-physics/kernelint/pkg/parser"
)

func init() {
	lint.Register(ParamAnnotation)
}

// ParamAnnotation requires every kernel parameter to carry a permitted
// type annotation.
var ParamAnnotation = lint.RuleDef{
	ID:          "KA0004",
	Name:        "typing.annotation",
	Group:       "typing",
	Description: "Kernel parameters must carry a permitted type annotation.",
	Severity:    lint.SeverityWarning,
	Check:       checkParamAnnotation,

	Rationale: `Kernel parameters compile to typed device memory. A missing or
unrecognized annotation means the launch will fail late, inside the compiler,
with an error pointing nowhere near the kernel. Catching it here keeps the
diagnostic on the signature that caused it.`,

	BadExample: `@kernel
def solve(qpos, jac: np.ndarray):
    ...`,

	GoodExample: `@kernel
def solve(qpos: wp.array(dtype=wp.float32, ndim=2), jac: array2d):
    ...`,
}

func checkParamAnnotation(ctx *lint.Context) []lint.Issue {
	var issues []lint.Issue
	fn := ctx.Function
	for _, p := range ctx.Params {
		if p.Annotation == nil {
			issues = append(issues, lint.NewTypeIssue(fn.Line, fn.Name, p.Name, ""))
			continue
		}
		name := parser.TypeName(p.Annotation, ctx.Source)
		if !slices.Contains(lint.PermittedAnnotations, name) {
			issues = append(issues, lint.NewTypeIssue(fn.Line, fn.Name, p.Name, name))
		}
	}
	return issues
}
