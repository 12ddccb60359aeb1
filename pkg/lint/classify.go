package lint

import (
	"github.com/newton-physics/kernelint/pkg/parser"
	"github.com/newton-physics/kernelint/pkg/schema"
)

// Classify resolves every parameter of a kernel against the schema.
// Precedence: exact Model field, exact Data field, Data field with _in,
// Data field with _out, then Other. Classification happens once per
// kernel; every check consumes this list.
func Classify(fn parser.Function, s *schema.Schema) []Param {
	params := make([]Param, 0, len(fn.Params))
	for _, p := range fn.Params {
		params = append(params, Param{Param: p, Class: classOf(p.Name, s)})
	}
	return params
}

func classOf(name string, s *schema.Schema) ParamClass {
	if s.IsModelField(name) {
		return ClassModel
	}
	if s.IsDataField(name) {
		return ClassData
	}
	base, suffix := schema.Canonical(name)
	if s.IsDataField(base) {
		switch suffix {
		case schema.SuffixIn:
			return ClassDataIn
		case schema.SuffixOut:
			return ClassDataOut
		}
	}
	return ClassOther
}
