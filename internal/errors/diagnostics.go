package errors

import (
	"fmt"
	"strings"
	"unicode"

	"packfmt/token"
)

// DiagnosticBuilder provides a fluent interface for creating diagnostics with suggestions
type DiagnosticBuilder struct {
	err CompilerError
}

func NewDiagnostic(code, message string, pos token.Position) *DiagnosticBuilder {
	return &DiagnosticBuilder{
		err: CompilerError{
			Level:    Error,
			Code:     code,
			Message:  message,
			Position: pos,
			Length:   1,
		},
	}
}

func NewWarning(code, message string, pos token.Position) *DiagnosticBuilder {
	b := NewDiagnostic(code, message, pos)
	b.err.Level = Warning
	return b
}

func (b *DiagnosticBuilder) WithLength(length int) *DiagnosticBuilder {
	b.err.Length = length
	return b
}

func (b *DiagnosticBuilder) WithSuggestion(message string) *DiagnosticBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{Message: message})
	return b
}

func (b *DiagnosticBuilder) WithReplacement(message, replacement string) *DiagnosticBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{Message: message, Replacement: replacement})
	return b
}

func (b *DiagnosticBuilder) WithNote(note string) *DiagnosticBuilder {
	b.err.Notes = append(b.err.Notes, note)
	return b
}

func (b *DiagnosticBuilder) WithHelp(help string) *DiagnosticBuilder {
	b.err.HelpText = help
	return b
}

func (b *DiagnosticBuilder) Build() CompilerError {
	return b.err
}

// FromTokenError converts the error carried by a failed token.
func FromTokenError(tok token.Token) CompilerError {
	switch tok.Err.Kind {
	case token.DisallowedModifier:
		return DisallowedModifier(tok)
	case token.CountOverflow:
		return CountOverflow(tok)
	}
	return NewDiagnostic("", tok.Err.Message, tok.Err.Position).Build()
}

// DisallowedModifier reports an endianness or native-size modifier on a
// directive outside the allowed set.
func DisallowedModifier(tok token.Token) CompilerError {
	builder := NewDiagnostic(ErrorDisallowedModifier, tok.Err.Message, tok.Err.Position).
		WithNote(fmt.Sprintf("'%c' is applied to directive '%c'", tok.Err.Modifier, tok.Directive))

	if info, ok := token.LookupDirective(tok.Directive); ok && info.Kind == token.IntegerDirective && info.Size > 0 {
		if alt := sizedAlternative(info, tok.Err.Modifier); alt != "" && alt != string(tok.Directive) {
			builder = builder.WithSuggestion(fmt.Sprintf("use '%s' for a %d-byte integer with an explicit byte order", alt, info.Size))
		}
	}

	return builder.WithHelp("endianness ('<', '>') and native size ('_', '!') apply only to integer directives " + token.AllowedModifierTypes).
		Build()
}

// CountOverflow reports a count that does not fit.
func CountOverflow(tok token.Token) CompilerError {
	return NewDiagnostic(ErrorCountOverflow, tok.Err.Message, tok.Err.Position).
		WithNote(fmt.Sprintf("counts are limited to %d", token.MaxCount)).
		WithSuggestion(fmt.Sprintf("use '%c*' to consume all remaining elements", tok.Directive)).
		Build()
}

// CountAndStar warns about a directive carrying both a count and '*'.
func CountAndStar(tok token.Token, length int) CompilerError {
	withoutStar := tok
	withoutStar.Star = false
	withoutCount := tok
	withoutCount.Count = token.NoCount

	return NewWarning(WarningCountAndStar, fmt.Sprintf("directive '%c' has both a count and '*'", tok.Directive), tok.Position).
		WithLength(length).
		WithReplacement("keep the explicit count", withoutStar.String()).
		WithReplacement("or consume all remaining elements", withoutCount.String()).
		WithNote("the count and '*' are both kept; which one wins is up to pack/unpack").
		Build()
}

// UnknownDirective warns about a directive missing from the pack dialect.
func UnknownDirective(tok token.Token) CompilerError {
	builder := NewWarning(WarningUnknownDirective, fmt.Sprintf("unknown directive '%c'", tok.Directive), tok.Position)

	if similar := similarDirectives(tok.Directive); len(similar) > 0 {
		builder = builder.WithSuggestion(fmt.Sprintf("did you mean '%s'?", strings.Join(similar, "', '")))
	}

	return builder.WithHelp("unknown directives are passed through to pack/unpack unchanged").Build()
}

// sizedAlternative names the fixed byte-order directive matching a width,
// e.g. 'n' for a big-endian 16-bit integer.
func sizedAlternative(info token.DirectiveInfo, modifier rune) string {
	if info.Signed {
		return ""
	}
	switch {
	case info.Size == 2 && modifier == '>':
		return "n"
	case info.Size == 4 && modifier == '>':
		return "N"
	case info.Size == 2 && modifier == '<':
		return "v"
	case info.Size == 4 && modifier == '<':
		return "V"
	}
	return ""
}

func similarDirectives(d rune) []string {
	var similar []string
	for _, candidate := range []rune{unicode.ToLower(d), unicode.ToUpper(d)} {
		if candidate == d {
			continue
		}
		if _, ok := token.LookupDirective(candidate); ok {
			similar = append(similar, string(candidate))
		}
	}
	return similar
}
