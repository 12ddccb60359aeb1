package rules

import (
	"fmt"
	"slices"

	"github.com/newton-physics/kernelint/pkg/lint"
)

func init() {
	lint.Register(ParamOrder)
}

// ParamOrder enforces the canonical parameter layout: Model fields first,
// then Data, then Data inputs, then Data outputs, with unrelated params
// kept outside the Model/Data span entirely.
var ParamOrder = lint.RuleDef{
	ID:          "KA0008",
	Name:        "ordering.params",
	Group:       "ordering",
	Description: "Kernel parameters must be ordered Model, Data, Data in, Data out.",
	Severity:    lint.SeverityWarning,
	Check:       checkParamOrder,

	Rationale: `Kernels across the codebase share one signature shape so that a reader
can skim any kernel and know where the model constants stop and the
mutable state begins. Scratch parameters wedged between Model and Data
params break that scan, and out-of-order sections make call sites
error-prone to review.`,

	BadExample: `@kernel
def fwd(
    qpos_out: wp.array(dtype=wp.float32, ndim=2),
    scratch: int,
    qpos0: wp.array(dtype=wp.float32, ndim=1),
):
    ...`,

	GoodExample: `@kernel
def fwd(
    qpos0: wp.array(dtype=wp.float32, ndim=1),
    qpos_out: wp.array(dtype=wp.float32, ndim=2),
    scratch: int,
):
    ...`,
}

func checkParamOrder(ctx *lint.Context) []lint.Issue {
	var model, data, dataIn, dataOut []int
	for _, p := range ctx.Params {
		switch p.Class {
		case lint.ClassModel:
			model = append(model, p.Index)
		case lint.ClassData:
			data = append(data, p.Index)
		case lint.ClassDataIn:
			dataIn = append(dataIn, p.Index)
		case lint.ClassDataOut:
			dataOut = append(dataOut, p.Index)
		}
	}

	var issues []lint.Issue
	fn := ctx.Function

	// Unrelated params may lead or trail the signature but must not sit
	// inside the span covered by Model/Data params.
	span := slices.Concat(model, data, dataIn, dataOut)
	if len(span) > 0 {
		lo, hi := slices.Min(span), slices.Max(span)
		for _, p := range ctx.Params {
			if p.Class != lint.ClassOther {
				continue
			}
			if lo < p.Index && p.Index < hi {
				detail := fmt.Sprintf("param: %s should not be between Model/Data params", p.Name)
				issues = append(issues, lint.NewArgPositionIssue(fn.Line, fn.Name, detail))
			}
		}
	}

	allData := slices.Concat(data, dataIn, dataOut)
	if len(model) > 0 && len(allData) > 0 && slices.Max(model) > slices.Min(allData) {
		issues = append(issues, lint.NewArgPositionIssue(fn.Line, fn.Name, "has Model params after Data params"))
	}
	if len(data) > 0 && len(dataIn) > 0 && slices.Max(data) > slices.Min(dataIn) {
		issues = append(issues, lint.NewArgPositionIssue(fn.Line, fn.Name, "has Data params after Data in params"))
	}
	if len(dataIn) > 0 && len(dataOut) > 0 && slices.Max(dataIn) > slices.Min(dataOut) {
		issues = append(issues, lint.NewArgPositionIssue(fn.Line, fn.Name, "has Data in params after Data out params"))
	}
	if len(data) > 0 && len(dataOut) > 0 && slices.Max(data) > slices.Min(dataOut) {
		issues = append(issues, lint.NewArgPositionIssue(fn.Line, fn.Name, "has Data params after Data out params"))
	}
	return issues
}
