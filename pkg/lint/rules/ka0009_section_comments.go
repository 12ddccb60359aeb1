package rules

import (
	"sort"
	"strings"

	"github.com/newton-physics/kernelint/pkg/lint"
)

func init() {
	lint.Register(SectionComments)
}

// SectionComments requires a marker comment on the line above the first
// parameter of each Model/Data section. The marker only has to appear
// somewhere on that line, so trailing text ("# Model fields") passes.
var SectionComments = lint.RuleDef{
	ID:          "KA0009",
	Name:        "comments.sections",
	Group:       "comments",
	Description: "Each Model/Data parameter section must be introduced by a marker comment.",
	Severity:    lint.SeverityWarning,
	Check:       checkSectionComments,

	Rationale: `Long kernel signatures are read top to bottom. The section markers give
the reader the same table of contents in every kernel, which matters
most in the forward/inverse dynamics kernels where a signature can run
past twenty parameters.`,

	BadExample: `@kernel
def fwd(
    qpos0: wp.array(dtype=wp.float32, ndim=1),
    # Data in
    qpos_in: wp.array(dtype=wp.float32, ndim=2),
):
    ...`,

	GoodExample: `@kernel
def fwd(
    # Model
    qpos0: wp.array(dtype=wp.float32, ndim=1),
    # Data in
    qpos_in: wp.array(dtype=wp.float32, ndim=2),
):
    ...`,
}

// sectionMarkers orders the categories the way a conforming signature
// lays them out. The check reports in first-parameter order instead when
// the signature itself is shuffled.
var sectionMarkers = []struct {
	class  lint.ParamClass
	marker string
}{
	{lint.ClassModel, "# Model"},
	{lint.ClassData, "# Data"},
	{lint.ClassDataIn, "# Data in"},
	{lint.ClassDataOut, "# Data out"},
}

func checkSectionComments(ctx *lint.Context) []lint.Issue {
	type section struct {
		first  lint.Param
		marker string
	}
	var sections []section
	for _, sm := range sectionMarkers {
		for _, p := range ctx.Params {
			if p.Class == sm.class {
				sections = append(sections, section{first: p, marker: sm.marker})
				break
			}
		}
	}
	sort.SliceStable(sections, func(i, j int) bool {
		return sections[i].first.Row < sections[j].first.Row
	})

	var issues []lint.Issue
	fn := ctx.Function
	for _, s := range sections {
		row := s.first.Row
		if row > 0 && row-1 < len(ctx.Lines) && strings.Contains(ctx.Lines[row-1], s.marker) {
			continue
		}
		issues = append(issues, lint.NewMissingCommentIssue(fn.Line, fn.Name, s.first.Name, s.first.Class.String(), s.marker))
	}
	return issues
}
