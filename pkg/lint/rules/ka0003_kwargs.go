package rules

import (
	"github.com/newton-physics/kernelint/pkg/lint"
)

func init() {
	lint.Register(KwArgs)
}

// KwArgs flags kernels declaring **kwargs.
var KwArgs = lint.RuleDef{
	ID:          "KA0003",
	Name:        "signature.kwargs",
	Group:       "signature",
	Description: "Kernels must not declare **kwargs.",
	Severity:    lint.SeverityWarning,
	Check:       checkKwArgs,
}

func checkKwArgs(ctx *lint.Context) []lint.Issue {
	if !ctx.Function.HasKwArg {
		return nil
	}
	return []lint.Issue{lint.NewKwArgsIssue(ctx.Function.Line, ctx.Function.Name)}
}
