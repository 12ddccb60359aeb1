package rules

import (
	"github.com/newton-physics/kernelint/pkg/lint"
)

func init() {
	lint.Register(DefaultParams)
}

// DefaultParams flags kernels whose signature declares default values.
var DefaultParams = lint.RuleDef{
	ID:          "KA0001",
	Name:        "signature.defaults",
	Group:       "signature",
	Description: "Kernel parameters must not declare default values.",
	Severity:    lint.SeverityWarning,
	Check:       checkDefaultParams,

	Rationale: `Kernels are launched with every argument supplied by the dispatch
machinery; a default value is dead code at best and at worst hides a missing
argument at a call site. Keeping signatures explicit keeps launches auditable.`,

	BadExample: `@kernel
def integrate(qpos0: wp.array(dtype=wp.float32, ndim=1), dt: float = 0.002):
    ...`,

	GoodExample: `@kernel
def integrate(qpos0: wp.array(dtype=wp.float32, ndim=1), dt: float):
    ...`,
}

func checkDefaultParams(ctx *lint.Context) []lint.Issue {
	if !ctx.Function.HasDefaults {
		return nil
	}
	return []lint.Issue{lint.NewDefaultsParamsIssue(ctx.Function.Line, ctx.Function.Name)}
}
