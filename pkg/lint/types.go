package lint

import (
	"fmt"
	"log/slog"

	"github.com/newton-physics/kernelint/pkg/parser"
	"github.com/newton-physics/kernelint/pkg/schema"
)

// Severity indicates the importance of a finding.
type Severity int

// Severity levels for findings.
const (
	// SeverityError indicates a critical issue that should be fixed.
	SeverityError Severity = iota
	// SeverityWarning indicates a potential issue that should be reviewed.
	SeverityWarning
	// SeverityInfo indicates informational feedback.
	SeverityInfo
	// SeverityHint indicates a suggestion for improvement.
	SeverityHint
)

// String returns the string representation of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	case SeverityHint:
		return "hint"
	default:
		return "unknown"
	}
}

// ParseSeverity converts a configuration string to a Severity.
func ParseSeverity(s string) (Severity, error) {
	switch s {
	case "error":
		return SeverityError, nil
	case "warning":
		return SeverityWarning, nil
	case "info":
		return SeverityInfo, nil
	case "hint":
		return SeverityHint, nil
	default:
		return SeverityWarning, fmt.Errorf("unknown severity %q", s)
	}
}

// ParamClass partitions kernel parameters by their role in the
// Model / Data convention. The partition is total: every parameter gets
// exactly one class.
type ParamClass int

const (
	// ClassModel marks an exact Model field name.
	ClassModel ParamClass = iota
	// ClassData marks an exact Data field name with no suffix.
	ClassData
	// ClassDataIn marks a Data field name carrying the _in suffix.
	ClassDataIn
	// ClassDataOut marks a Data field name carrying the _out suffix.
	ClassDataOut
	// ClassOther marks everything else.
	ClassOther
)

// String returns the display name of the class.
func (c ParamClass) String() string {
	switch c {
	case ClassModel:
		return "Model"
	case ClassData:
		return "Data"
	case ClassDataIn:
		return "Data in"
	case ClassDataOut:
		return "Data out"
	case ClassOther:
		return "Other"
	default:
		return "unknown"
	}
}

// Param is a kernel parameter with its resolved class.
type Param struct {
	parser.Param
	Class ParamClass
}

// RuleDef is a data-driven rule definition. Rules are stateless: all
// context arrives via the Check function parameters.
type RuleDef struct {
	ID          string    // Stable identifier, e.g. "KA0004"
	Name        string    // Human-readable name, e.g. "typing.annotation"
	Group       string    // Category: signature, typing, naming, ordering, comments, mutation
	Description string    // One-line description
	Severity    Severity  // Default severity
	Check       CheckFunc // The check function

	// Documentation fields for the rules command
	Rationale   string // Why this rule exists, what problems it prevents
	BadExample  string // Kernel showing the violation
	GoodExample string // Kernel showing the convention
	Fix         string // How to fix violations (when not obvious)
}

// CheckFunc inspects one kernel and returns its findings.
type CheckFunc func(ctx *Context) []Issue

// Context carries everything a check needs for one kernel. Checks treat
// it as read-only.
type Context struct {
	// Function is the kernel under analysis.
	Function parser.Function

	// Params are the kernel's parameters with resolved classes, in
	// declaration order. Checks never re-derive class membership.
	Params []Param

	// Schema is the Model/Data field registry.
	Schema *schema.Schema

	// Source is the raw content of the file the kernel was parsed from.
	Source []byte

	// Lines are the raw source lines, for the comment-marker scan.
	Lines []string

	// Logger receives analyzer diagnostics. Never nil.
	Logger *slog.Logger
}
