// Package rules contains all kernel convention rules.
//
// Rules are organized by group, one file per rule:
//
//   - ka0001..ka0003: signature rules (defaults, *args, **kwargs)
//   - ka0004..ka0005: typing rules (annotation presence and field agreement)
//   - ka0006..ka0007: naming rules (the _in/_out suffix convention)
//   - ka0008: ordering rule (Model / Data / Data-in / Data-out order)
//   - ka0009: comment rule (section markers above parameter groups)
//   - ka0010: mutation rule (writes to read-only parameters)
//
// Import this package to register all rules:
//
//	import _ "github.com/newton-physics/kernelint/pkg/lint/rules"
package rules
