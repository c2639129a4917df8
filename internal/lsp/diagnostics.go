package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"packfmt/internal/analysis"
	"packfmt/internal/errors"
)

// ConvertDiagnostics transforms analysis diagnostics into LSP diagnostics.
// Positions are converted to 0-based lines and UTF-16 characters.
func ConvertDiagnostics(result *analysis.Result) []protocol.Diagnostic {
	diagnostics := make([]protocol.Diagnostic, 0, len(result.Diagnostics))

	for _, d := range result.Diagnostics {
		start := protocol.Position{
			Line:      uint32(d.Position.Line - 1),
			Character: utf16Column(result.Source, d.Position.Offset),
		}
		width := max(utf16Width(result.Source, d.Position.Offset, max(d.Length, 1)), 1)

		diagnostic := protocol.Diagnostic{
			Range: protocol.Range{
				Start: start,
				End: protocol.Position{
					Line:      start.Line,
					Character: start.Character + width,
				},
			},
			Severity: ptrSeverity(severity(d.Level)),
			Code:     &protocol.IntegerOrString{Value: d.Code},
			Source:   ptrString("packfmt"),
			Message:  message(d),
		}
		diagnostics = append(diagnostics, diagnostic)
	}

	return diagnostics
}

func severity(level errors.ErrorLevel) protocol.DiagnosticSeverity {
	switch level {
	case errors.Warning:
		return protocol.DiagnosticSeverityWarning
	case errors.Note:
		return protocol.DiagnosticSeverityInformation
	case errors.Help:
		return protocol.DiagnosticSeverityHint
	default:
		return protocol.DiagnosticSeverityError
	}
}

// message appends the first suggestion, if any, since editors show only
// the message text.
func message(d errors.CompilerError) string {
	if len(d.Suggestions) == 0 {
		return d.Message
	}
	msg := d.Message + " (" + d.Suggestions[0].Message
	if d.Suggestions[0].Replacement != "" {
		msg += ": " + d.Suggestions[0].Replacement
	}
	return msg + ")"
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func ptrString(s string) *string {
	return &s
}
