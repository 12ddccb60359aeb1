package parser

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// Function is a kernel function definition extracted from a source tree.
type Function struct {
	// Name is the function name.
	Name string

	// Line is the 1-based source line of the def statement.
	Line int

	// Params holds the declared parameters in order, across all three
	// parameter sections (positional-only, regular, keyword-only). The
	// bare * and / separators and the *args/**kwargs splats are excluded.
	Params []Param

	// HasDefaults is true when any parameter declares a default value.
	HasDefaults bool

	// HasVarArg is true when the signature declares *args.
	HasVarArg bool

	// HasKwArg is true when the signature declares **kwargs.
	HasKwArg bool

	// Body is the function body block, for body-level checks.
	Body *sitter.Node
}

// Param is a single declared parameter.
type Param struct {
	// Name is the parameter name.
	Name string

	// Annotation is the annotation expression, nil when the source
	// declares none. The node points into the owning Tree and is only
	// valid until that Tree is closed.
	Annotation *sitter.Node

	// Index is the zero-based position among the declared parameters.
	Index int

	// Row is the zero-based source row the parameter is declared on.
	Row int
}

// Kernels returns every function in the tree carrying a bare @kernel
// decorator, in depth-first source order. Nested and method definitions
// are visited; async definitions and decorators that are calls or
// attribute accesses (wp.kernel, kernel(...)) never match.
func (t *Tree) Kernels() []Function {
	var fns []Function
	collectKernels(t.tree.RootNode(), t.src, &fns)
	return fns
}

func collectKernels(node *sitter.Node, src []byte, out *[]Function) {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() == "decorated_definition" {
			if fn, ok := kernelDef(child, src); ok {
				*out = append(*out, fn)
			}
		}
		collectKernels(child, src, out)
	}
}

// kernelDef inspects a decorated_definition and extracts it as a kernel
// when one of its decorators is the bare identifier "kernel".
func kernelDef(dec *sitter.Node, src []byte) (Function, bool) {
	marked := false
	var def *sitter.Node

	for i := 0; i < int(dec.NamedChildCount()); i++ {
		child := dec.NamedChild(i)
		switch child.Type() {
		case "decorator":
			if decoratorIsKernel(child, src) {
				marked = true
			}
		case "function_definition":
			def = child
		}
	}

	if !marked || def == nil || isAsync(def) {
		return Function{}, false
	}
	return newFunction(def, src), true
}

func decoratorIsKernel(dec *sitter.Node, src []byte) bool {
	for i := 0; i < int(dec.NamedChildCount()); i++ {
		child := dec.NamedChild(i)
		if child.Type() == "identifier" && Text(child, src) == "kernel" {
			return true
		}
	}
	return false
}

// isAsync reports whether the definition carries the async keyword, which
// appears as an anonymous child token of function_definition.
func isAsync(def *sitter.Node) bool {
	for i := 0; i < int(def.ChildCount()); i++ {
		if def.Child(i).Type() == "async" {
			return true
		}
	}
	return false
}

func newFunction(def *sitter.Node, src []byte) Function {
	fn := Function{
		Line: int(def.StartPoint().Row) + 1,
		Body: def.ChildByFieldName("body"),
	}
	if name := def.ChildByFieldName("name"); name != nil {
		fn.Name = Text(name, src)
	}

	params := def.ChildByFieldName("parameters")
	if params == nil {
		return fn
	}

	for i := 0; i < int(params.NamedChildCount()); i++ {
		p := params.NamedChild(i)
		switch p.Type() {
		case "identifier":
			fn.addParam(p, nil, src)

		case "typed_parameter":
			// The annotated target is the first named child; splats can
			// carry annotations too (*args: int).
			target := typedParamTarget(p)
			if target == nil {
				continue
			}
			switch target.Type() {
			case "list_splat_pattern":
				fn.HasVarArg = true
			case "dictionary_splat_pattern":
				fn.HasKwArg = true
			default:
				fn.addParam(target, unwrapType(p.ChildByFieldName("type")), src)
			}

		case "default_parameter":
			fn.HasDefaults = true
			if name := p.ChildByFieldName("name"); name != nil && name.Type() == "identifier" {
				fn.addParam(name, nil, src)
			}

		case "typed_default_parameter":
			fn.HasDefaults = true
			if name := p.ChildByFieldName("name"); name != nil && name.Type() == "identifier" {
				fn.addParam(name, unwrapType(p.ChildByFieldName("type")), src)
			}

		case "list_splat_pattern":
			fn.HasVarArg = true

		case "dictionary_splat_pattern":
			fn.HasKwArg = true
		}
	}
	return fn
}

func (f *Function) addParam(name, annotation *sitter.Node, src []byte) {
	f.Params = append(f.Params, Param{
		Name:       Text(name, src),
		Annotation: annotation,
		Index:      len(f.Params),
		Row:        int(name.StartPoint().Row),
	})
}

func typedParamTarget(p *sitter.Node) *sitter.Node {
	for i := 0; i < int(p.NamedChildCount()); i++ {
		child := p.NamedChild(i)
		switch child.Type() {
		case "identifier", "list_splat_pattern", "dictionary_splat_pattern":
			return child
		}
	}
	return nil
}

// unwrapType peels the grammar's type wrapper off an annotation, leaving
// the underlying expression node.
func unwrapType(t *sitter.Node) *sitter.Node {
	if t == nil {
		return nil
	}
	if t.Type() == "type" && t.NamedChildCount() > 0 {
		return t.NamedChild(0)
	}
	return t
}
