package analysis

import (
	"unicode/utf8"

	"packfmt/internal/errors"
	"packfmt/internal/tokenizer"
	"packfmt/token"
)

// Result holds the tokens of one format together with its diagnostics.
type Result struct {
	Source      string
	Tokens      []token.Token
	Diagnostics []errors.CompilerError
}

// HasErrors reports whether any diagnostic is error level.
func (r *Result) HasErrors() bool {
	for _, d := range r.Diagnostics {
		if d.Level == errors.Error {
			return true
		}
	}
	return false
}

// Errors returns the error-level diagnostics.
func (r *Result) Errors() []errors.CompilerError {
	return r.filter(errors.Error)
}

// Warnings returns the warning-level diagnostics.
func (r *Result) Warnings() []errors.CompilerError {
	return r.filter(errors.Warning)
}

func (r *Result) filter(level errors.ErrorLevel) []errors.CompilerError {
	var out []errors.CompilerError
	for _, d := range r.Diagnostics {
		if d.Level == level {
			out = append(out, d)
		}
	}
	return out
}

type Analyzer struct {
	source      string
	diagnostics []errors.CompilerError
}

func NewAnalyzer() *Analyzer {
	return &Analyzer{
		diagnostics: make([]errors.CompilerError, 0),
	}
}

// Analyze tokenizes format with a fresh Tokenizer and checks every token.
func Analyze(format string) *Result {
	return NewAnalyzer().Analyze(format)
}

func (a *Analyzer) Analyze(format string) *Result {
	a.source = format
	a.diagnostics = make([]errors.CompilerError, 0) // reset for each analysis

	tokens := tokenizer.Tokenize(format)
	for _, tok := range tokens {
		a.analyzeToken(tok)
	}

	return &Result{
		Source:      format,
		Tokens:      tokens,
		Diagnostics: a.diagnostics,
	}
}

// GetErrors returns the diagnostics of the last analysis
func (a *Analyzer) GetErrors() []errors.CompilerError {
	return a.diagnostics
}

func (a *Analyzer) analyzeToken(tok token.Token) {
	if _, ok := token.LookupDirective(tok.Directive); !ok {
		a.addDiagnostic(errors.UnknownDirective(tok))
	}

	if tok.HasCount() && tok.Star && !tok.Failed() {
		a.addDiagnostic(errors.CountAndStar(tok, a.columns(tok)))
	}

	// An error token is always last; report it after its warnings.
	if tok.Failed() {
		a.addDiagnostic(errors.FromTokenError(tok))
	}
}

func (a *Analyzer) addDiagnostic(err errors.CompilerError) {
	a.diagnostics = append(a.diagnostics, err)
}

// columns is the rune width of a token's span, used for underlining.
func (a *Analyzer) columns(tok token.Token) int {
	end := tok.Position.Offset + tok.Length
	if end > len(a.source) {
		end = len(a.source)
	}
	return utf8.RuneCountInString(a.source[tok.Position.Offset:end])
}
