package lint

import (
	"fmt"
	"strings"
)

// Issue is a single finding about one kernel. Implementations form a
// closed set of immutable value types; the rendered form is always one
// line:
//
//	<line>: Kernel '<name>' <description>
type Issue interface {
	// Line returns the 1-based source line of the kernel's def statement.
	Line() int
	// Kernel returns the kernel function name.
	Kernel() string
	// Code returns the stable diagnostic code, e.g. "KA0004".
	Code() string
	// String returns the canonical one-line rendering.
	String() string
}

// PermittedAnnotations lists the short type names a kernel parameter
// annotation may reduce to.
var PermittedAnnotations = []string{
	"int", "float", "bool",
	"array", "array2d", "array2df", "array3d", "array3df",
}

// Field families named in findings.
const (
	FamilyModel     = "Model"
	FamilyData      = "Data"
	FamilyDataInput = "Data input"
)

type issueBase struct {
	line   int
	kernel string
}

func (b issueBase) Line() int      { return b.line }
func (b issueBase) Kernel() string { return b.kernel }

func (b issueBase) prefix() string {
	return fmt.Sprintf("%d: Kernel '%s' ", b.line, b.kernel)
}

// DefaultsParamsIssue reports a kernel declaring parameter defaults.
type DefaultsParamsIssue struct {
	issueBase
}

// NewDefaultsParamsIssue builds a DefaultsParamsIssue.
func NewDefaultsParamsIssue(line int, kernel string) DefaultsParamsIssue {
	return DefaultsParamsIssue{issueBase{line, kernel}}
}

func (i DefaultsParamsIssue) Code() string   { return "KA0001" }
func (i DefaultsParamsIssue) String() string { return i.prefix() + "has default params" }

// VarArgsIssue reports a kernel declaring *args.
type VarArgsIssue struct {
	issueBase
}

// NewVarArgsIssue builds a VarArgsIssue.
func NewVarArgsIssue(line int, kernel string) VarArgsIssue {
	return VarArgsIssue{issueBase{line, kernel}}
}

func (i VarArgsIssue) Code() string   { return "KA0002" }
func (i VarArgsIssue) String() string { return i.prefix() + "has varargs" }

// KwArgsIssue reports a kernel declaring **kwargs.
type KwArgsIssue struct {
	issueBase
}

// NewKwArgsIssue builds a KwArgsIssue.
func NewKwArgsIssue(line int, kernel string) KwArgsIssue {
	return KwArgsIssue{issueBase{line, kernel}}
}

func (i KwArgsIssue) Code() string   { return "KA0003" }
func (i KwArgsIssue) String() string { return i.prefix() + "has kwargs" }

// TypeIssue reports a parameter with no annotation, or with an annotation
// outside the permitted set. Annotation is empty in the missing case.
type TypeIssue struct {
	issueBase
	Param      string
	Annotation string
}

// NewTypeIssue builds a TypeIssue. Pass an empty annotation for a
// parameter that declares none.
func NewTypeIssue(line int, kernel, param, annotation string) TypeIssue {
	return TypeIssue{issueBase{line, kernel}, param, annotation}
}

func (i TypeIssue) Code() string { return "KA0004" }

func (i TypeIssue) String() string {
	s := i.prefix() + "param: " + i.Param + " "
	if i.Annotation != "" {
		return s + fmt.Sprintf("has unexpected annotation: %s (expected: %s)",
			i.Annotation, strings.Join(PermittedAnnotations, ", "))
	}
	return s + "missing type annotation"
}

// TypeMismatchIssue reports a parameter whose annotation disagrees with
// the registered type of the schema field it names.
type TypeMismatchIssue struct {
	issueBase
	Param    string
	Actual   string
	Expected string
	Family   string // FamilyModel or FamilyData
}

// NewTypeMismatchIssue builds a TypeMismatchIssue.
func NewTypeMismatchIssue(line int, kernel, param, actual, expected, family string) TypeMismatchIssue {
	return TypeMismatchIssue{issueBase{line, kernel}, param, actual, expected, family}
}

func (i TypeMismatchIssue) Code() string { return "KA0005" }

func (i TypeMismatchIssue) String() string {
	return i.prefix() + fmt.Sprintf("param: %s has annotation '%s' but %s field expects '%s'",
		i.Param, i.Actual, i.Family, i.Expected)
}

// ModelFieldSuffixIssue reports a Model field name carrying an _in or
// _out suffix.
type ModelFieldSuffixIssue struct {
	issueBase
	Param  string
	Suffix string
}

// NewModelFieldSuffixIssue builds a ModelFieldSuffixIssue.
func NewModelFieldSuffixIssue(line int, kernel, param, suffix string) ModelFieldSuffixIssue {
	return ModelFieldSuffixIssue{issueBase{line, kernel}, param, suffix}
}

func (i ModelFieldSuffixIssue) Code() string { return "KA0006" }

func (i ModelFieldSuffixIssue) String() string {
	return i.prefix() + fmt.Sprintf("param: %s is a Model field and must not end with '%s'",
		i.Param, i.Suffix)
}

// DataFieldSuffixIssue reports a name that looks like a Data field but
// carries neither the _in nor the _out suffix.
type DataFieldSuffixIssue struct {
	issueBase
	Param string
	Field string
}

// NewDataFieldSuffixIssue builds a DataFieldSuffixIssue.
func NewDataFieldSuffixIssue(line int, kernel, param, field string) DataFieldSuffixIssue {
	return DataFieldSuffixIssue{issueBase{line, kernel}, param, field}
}

func (i DataFieldSuffixIssue) Code() string { return "KA0007" }

func (i DataFieldSuffixIssue) String() string {
	return i.prefix() + fmt.Sprintf("param: %s looks like Data field '%s' but does not end with '_in' or '_out'",
		i.Param, i.Field)
}

// ArgPositionIssue reports parameters ordered against the
// Model / Data / Data-in / Data-out convention. Detail carries the
// specific violation text.
type ArgPositionIssue struct {
	issueBase
	Detail string
}

// NewArgPositionIssue builds an ArgPositionIssue.
func NewArgPositionIssue(line int, kernel, detail string) ArgPositionIssue {
	return ArgPositionIssue{issueBase{line, kernel}, detail}
}

func (i ArgPositionIssue) Code() string   { return "KA0008" }
func (i ArgPositionIssue) String() string { return i.prefix() + i.Detail }

// MissingCommentIssue reports a parameter group whose first member lacks
// the section marker comment on the preceding line.
type MissingCommentIssue struct {
	issueBase
	Param    string
	Category string
	Marker   string
}

// NewMissingCommentIssue builds a MissingCommentIssue.
func NewMissingCommentIssue(line int, kernel, param, category, marker string) MissingCommentIssue {
	return MissingCommentIssue{issueBase{line, kernel}, param, category, marker}
}

func (i MissingCommentIssue) Code() string { return "KA0009" }

func (i MissingCommentIssue) String() string {
	return i.prefix() + fmt.Sprintf("param: %s (%s) missing comment '%s' on preceding line",
		i.Param, i.Category, i.Marker)
}

// WriteToReadOnlyFieldIssue reports a kernel body write to a Model or
// Data-input parameter.
type WriteToReadOnlyFieldIssue struct {
	issueBase
	Family string // FamilyModel or FamilyDataInput
	Field  string
}

// NewWriteToReadOnlyFieldIssue builds a WriteToReadOnlyFieldIssue.
func NewWriteToReadOnlyFieldIssue(line int, kernel, family, field string) WriteToReadOnlyFieldIssue {
	return WriteToReadOnlyFieldIssue{issueBase{line, kernel}, family, field}
}

func (i WriteToReadOnlyFieldIssue) Code() string { return "KA0010" }

func (i WriteToReadOnlyFieldIssue) String() string {
	return i.prefix() + fmt.Sprintf("writes to read-only %s field '%s'", i.Family, i.Field)
}
