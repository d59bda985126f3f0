package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"
	"sumi/internal/errors"
)

// ConvertDiagnostics transforms compiler diagnostics into LSP diagnostics
// for IDE display. Parse failures, structural errors and optimizer notices
// all share the CompilerError shape, so one converter covers every producer.
func ConvertDiagnostics(errs []errors.CompilerError) []protocol.Diagnostic {
	diagnostics := make([]protocol.Diagnostic, 0, len(errs))

	for _, e := range errs {
		length := e.Length
		if length <= 0 {
			length = 1
		}

		code := protocol.IntegerOrString{Value: e.Code}
		diagnostic := protocol.Diagnostic{
			Range: protocol.Range{
				Start: protocol.Position{
					Line:      uint32(e.Position.Line - 1),   // Convert to 0-based indexing
					Character: uint32(e.Position.Column - 1), // Convert to 0-based indexing
				},
				End: protocol.Position{
					Line:      uint32(e.Position.Line - 1),
					Character: uint32(e.Position.Column - 1 + length),
				},
			},
			Severity: ptrSeverity(severityFor(e.Level)),
			Code:     &code,
			Source:   ptrString("sumi"),
			Message:  e.Message,
		}
		diagnostics = append(diagnostics, diagnostic)
	}

	return diagnostics
}

// severityFor maps diagnostic levels onto the LSP severity scale. Warnings
// stay warnings so editors do not block on removable-binding notices.
func severityFor(level errors.ErrorLevel) protocol.DiagnosticSeverity {
	switch level {
	case errors.Warning:
		return protocol.DiagnosticSeverityWarning
	case errors.Note, errors.Help:
		return protocol.DiagnosticSeverityInformation
	default:
		return protocol.DiagnosticSeverityError
	}
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func ptrString(s string) *string {
	return &s
}
