package rules

import (
	"strings"

	"github.com/newton-physics/kernelint/pkg/lint"
	"github.com/newton-physics/kernelint/pkg/schema"
)

func init() {
	lint.Register(DataSuffix)
}

// DataSuffix flags names that look like a Data field reference but carry
// neither the _in nor the _out suffix. The lookalike test is a plain
// "<field>_" prefix match with no identifier boundary, so a name like
// qvel_scale is flagged against qvel. That looseness is deliberate:
// near-miss names are almost always a misspelled access-mode suffix.
var DataSuffix = lint.RuleDef{
	ID:          "KA0007",
	Name:        "naming.data_suffix",
	Group:       "naming",
	Description: "Data-like parameter names must end with _in or _out.",
	Severity:    lint.SeverityWarning,
	Check:       checkDataSuffix,

	BadExample: `@kernel
def fwd(qvel_invalid: wp.array(dtype=wp.float32, ndim=2)):
    ...`,

	GoodExample: `@kernel
def fwd(qvel_in: wp.array(dtype=wp.float32, ndim=2)):
    ...`,
}

func checkDataSuffix(ctx *lint.Context) []lint.Issue {
	var issues []lint.Issue
	fn := ctx.Function
	for _, p := range ctx.Params {
		if p.Class != lint.ClassOther {
			continue
		}
		if strings.HasSuffix(p.Name, schema.SuffixIn) || strings.HasSuffix(p.Name, schema.SuffixOut) {
			continue
		}
		if field, ok := ctx.Schema.DataPrefixMatch(p.Name); ok {
			issues = append(issues, lint.NewDataFieldSuffixIssue(fn.Line, fn.Name, p.Name, field))
		}
	}
	return issues
}
