package lsp

import (
	"strings"

	"github.com/newton-physics/kernelint/pkg/lint"
	_ "github.com/newton-physics/kernelint/pkg/lint/rules" // register kernel rules
)

// diagnosticSource labels published diagnostics in the editor UI.
const diagnosticSource = "Kernel Analyzer"

// publishDiagnostics analyzes a document and publishes the complete
// finding set. Publishing replaces whatever the client holds for the URI,
// so a clean run clears stale squiggles.
func (s *Server) publishDiagnostics(uri string) {
	doc := s.documents.Get(uri)
	if doc == nil {
		return
	}

	diagnostics := []Diagnostic{}

	// Only Python documents are analyzed; everything else publishes empty.
	if strings.HasSuffix(URIToPath(uri), ".py") {
		for _, issue := range s.analyzer.Analyze([]byte(doc.Content), URIToPath(uri)) {
			diagnostics = append(diagnostics, s.issueToDiagnostic(issue))
		}
	}

	s.logger.Info("Publishing diagnostics", "uri", uri, "count", len(diagnostics))
	s.sendNotification("textDocument/publishDiagnostics", &PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

// issueToDiagnostic maps a finding to an LSP diagnostic. Finding lines are
// 1-based; the published range covers the kernel's def line in the
// protocol's 0-based terms.
func (s *Server) issueToDiagnostic(issue lint.Issue) Diagnostic {
	line := issue.Line()
	if line < 1 {
		line = 1
	}

	return Diagnostic{
		Range: Range{
			Start: Position{Line: uint32(line - 1), Character: 0},
			End:   Position{Line: uint32(line), Character: 0},
		},
		Severity: severityToLSP(s.analyzer.Severity(issue)),
		Code:     issue.Code(),
		Source:   diagnosticSource,
		Message:  issue.String(),
	}
}

// severityToLSP converts an analyzer severity to the protocol's numbering.
func severityToLSP(sev lint.Severity) DiagnosticSeverity {
	switch sev {
	case lint.SeverityError:
		return DiagnosticSeverityError
	case lint.SeverityWarning:
		return DiagnosticSeverityWarning
	case lint.SeverityInfo:
		return DiagnosticSeverityInformation
	case lint.SeverityHint:
		return DiagnosticSeverityHint
	default:
		return DiagnosticSeverityWarning
	}
}
