package rules

import (
	"github.com/newton-physics/kernelint/pkg/lint"
)

func init() {
	lint.Register(VarArgs)
}

// VarArgs flags kernels declaring *args.
var VarArgs = lint.RuleDef{
	ID:          "KA0002",
	Name:        "signature.varargs",
	Group:       "signature",
	Description: "Kernels must not declare *args.",
	Severity:    lint.SeverityWarning,
	Check:       checkVarArgs,
}

func checkVarArgs(ctx *lint.Context) []lint.Issue {
	if !ctx.Function.HasVarArg {
		return nil
	}
	return []lint.Issue{lint.NewVarArgsIssue(ctx.Function.Line, ctx.Function.Name)}
}
