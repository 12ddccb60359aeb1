package parser

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// Text returns the source text covered by a node.
func Text(n *sitter.Node, src []byte) string {
	return string(src[n.StartByte():n.EndByte()])
}

// TypeName reduces an annotation expression to the short type name the
// permitted-annotation check understands: a bare identifier is taken
// verbatim and a constructor call like wp.array(dtype=...) reduces to the
// rightmost name of its callee. Anything else renders opaquely via
// ExprString so the caller still has something to report.
func TypeName(n *sitter.Node, src []byte) string {
	if n == nil {
		return ""
	}
	switch n.Type() {
	case "identifier":
		return Text(n, src)
	case "call":
		if fn := n.ChildByFieldName("function"); fn != nil {
			switch fn.Type() {
			case "identifier":
				return Text(fn, src)
			case "attribute":
				if attr := fn.ChildByFieldName("attribute"); attr != nil {
					return Text(attr, src)
				}
			}
		}
	}
	return ExprString(n, src)
}

// ExprString renders an annotation expression back to a compact canonical
// form: identifiers and literals verbatim, attribute access as value.attr,
// calls as fn(arg, kw=val, ...). Shapes outside that set render as the
// grammar node type instead of failing, so a surprising annotation still
// produces a reportable string.
func ExprString(n *sitter.Node, src []byte) string {
	if n == nil {
		return ""
	}
	switch n.Type() {
	case "identifier", "integer", "float", "string", "true", "false", "none":
		return Text(n, src)

	case "attribute":
		obj := n.ChildByFieldName("object")
		attr := n.ChildByFieldName("attribute")
		if obj == nil || attr == nil {
			return Text(n, src)
		}
		return ExprString(obj, src) + "." + Text(attr, src)

	case "call":
		fn := n.ChildByFieldName("function")
		if fn == nil {
			return Text(n, src)
		}
		return ExprString(fn, src) + "(" + argList(n.ChildByFieldName("arguments"), src) + ")"

	case "keyword_argument":
		name := n.ChildByFieldName("name")
		value := n.ChildByFieldName("value")
		if name == nil || value == nil {
			return Text(n, src)
		}
		return Text(name, src) + "=" + ExprString(value, src)

	case "type":
		if n.NamedChildCount() > 0 {
			return ExprString(n.NamedChild(0), src)
		}
		return Text(n, src)

	default:
		return n.Type()
	}
}

func argList(args *sitter.Node, src []byte) string {
	if args == nil {
		return ""
	}
	parts := make([]string, 0, args.NamedChildCount())
	for i := 0; i < int(args.NamedChildCount()); i++ {
		parts = append(parts, ExprString(args.NamedChild(i), src))
	}
	return strings.Join(parts, ", ")
}
