// Package lint provides the kernel convention analyzer and its rule
// framework.
//
// # Architecture
//
// The package splits into two layers:
//
//  1. Root package (pkg/lint/): the Issue variants, parameter
//     classification, the rule registry, and the Analyzer driver
//  2. Rules (pkg/lint/rules/): one file per rule, registered via init()
//
// # Rule Registration
//
// Rules register themselves when their package is imported:
//
//	import _ "github.com/newton-physics/kernelint/pkg/lint/rules"
//
// # Rule Groups
//
//   - signature: the shape of the parameter list (defaults, *args, **kwargs)
//   - typing: annotation presence and agreement with the field registry
//   - naming: the _in/_out suffix convention
//   - ordering: Model / Data / Data-in / Data-out parameter order
//   - comments: the section marker comments above each parameter group
//   - mutation: writes to read-only parameters in kernel bodies
//
// # Configuration
//
// Config controls which rules run and how their findings are classified:
//
//	config := lint.NewConfig()
//	config.Disable("KA0009")
//	config.SetSeverity("KA0010", lint.SeverityError)
//
// # Running
//
// The Analyzer owns a schema and a config and lints one source buffer at a
// time. It holds no per-file state, so one Analyzer may serve many files
// concurrently:
//
//	analyzer := lint.New(schema.Default(), nil, logger)
//	issues := analyzer.Analyze(src, "integrate.py")
package lint
