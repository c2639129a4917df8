package errors

import (
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"packfmt/token"
)

func failed(directive rune, err *token.Error) token.Token {
	tok := token.New(directive, token.Position{Line: 1, Column: 1})
	tok.Err = err
	return tok
}

func TestErrorReporter(t *testing.T) {
	color.NoColor = true

	source := "C2\na<"
	reporter := NewErrorReporter("layout.pack", source)

	tok := failed('a', token.DisallowedModifierErr('<', token.Position{Line: 2, Column: 2, Offset: 4}))
	formatted := reporter.FormatError(FromTokenError(tok))

	assert.Contains(t, formatted, "error[E0001]: '<' allowed only after types sSiIlLqQjJ")
	assert.Contains(t, formatted, "layout.pack:2:2")
	assert.Contains(t, formatted, "  2 │ a<")
	assert.Contains(t, formatted, "│  ^")
	assert.Contains(t, formatted, "help: endianness")
}

func TestDisallowedModifierSuggestsFixedOrder(t *testing.T) {
	tok := failed('S', nil)
	tok.Directive = 'n'
	tok.Err = token.DisallowedModifierErr('<', token.Position{Line: 1, Column: 2, Offset: 1})

	err := DisallowedModifier(tok)
	assert.Equal(t, ErrorDisallowedModifier, err.Code)
	assert.Equal(t, Error, err.Level)
	require.Len(t, err.Suggestions, 1)
	assert.Contains(t, err.Suggestions[0].Message, "use 'v'")

	tok.Err = token.DisallowedModifierErr('>', token.Position{Line: 1, Column: 2, Offset: 1})
	err = DisallowedModifier(tok)
	assert.Empty(t, err.Suggestions)

	tok = failed('a', token.DisallowedModifierErr('!', token.Position{}))
	err = DisallowedModifier(tok)
	assert.Empty(t, err.Suggestions)
	assert.Contains(t, err.Notes[0], "'!' is applied to directive 'a'")
}

func TestCountOverflowDiagnostic(t *testing.T) {
	tok := failed('a', token.CountOverflowErr(token.Position{Line: 1, Column: 2, Offset: 1}))
	err := FromTokenError(tok)
	assert.Equal(t, ErrorCountOverflow, err.Code)
	assert.Equal(t, "pack length too big", err.Message)
	assert.Contains(t, err.Suggestions[0].Message, "'a*'")
}

func TestCountAndStarWarning(t *testing.T) {
	tok := token.New('a', token.Position{Line: 1, Column: 1})
	tok.Count = 3
	tok.Star = true

	err := CountAndStar(tok, 3)
	assert.Equal(t, Warning, err.Level)
	assert.Equal(t, WarningCountAndStar, err.Code)
	assert.Equal(t, 3, err.Length)
	require.Len(t, err.Suggestions, 2)
	assert.Equal(t, "a3", err.Suggestions[0].Replacement)
	assert.Equal(t, "a*", err.Suggestions[1].Replacement)
}

func TestUnknownDirectiveWarning(t *testing.T) {
	err := UnknownDirective(token.New('z', token.Position{Line: 1, Column: 1}))
	assert.Equal(t, WarningUnknownDirective, err.Code)
	require.Len(t, err.Suggestions, 1)
	assert.Equal(t, "did you mean 'Z'?", err.Suggestions[0].Message)

	err = UnknownDirective(token.New('%', token.Position{Line: 1, Column: 1}))
	assert.Empty(t, err.Suggestions)
}

func TestWarningFormatting(t *testing.T) {
	color.NoColor = true

	tok := token.New('a', token.Position{Line: 1, Column: 3, Offset: 2})
	tok.Count = 3
	tok.Star = true

	reporter := NewErrorReporter("fmt", "C a3*")
	formatted := reporter.FormatError(CountAndStar(tok, 3))

	assert.Contains(t, formatted, "warning[W0001]")
	assert.Contains(t, formatted, "│   ^^^")
	assert.Contains(t, formatted, "help try: keep the explicit count")
	assert.Contains(t, formatted, "a3")
}

func TestFormatAll(t *testing.T) {
	color.NoColor = true

	reporter := NewErrorReporter("fmt", "zz")
	out := reporter.FormatAll([]CompilerError{
		UnknownDirective(token.New('z', token.Position{Line: 1, Column: 1})),
		UnknownDirective(token.New('z', token.Position{Line: 1, Column: 2, Offset: 1})),
	})
	assert.Equal(t, 2, strings.Count(out, "warning[W0002]"))
}

func TestCompilerErrorString(t *testing.T) {
	err := NewDiagnostic(ErrorCountOverflow, "pack length too big", token.Position{}).Build()
	assert.Equal(t, "error[E0002]: pack length too big", err.Error())

	plain := NewDiagnostic("", "plain", token.Position{}).Build()
	assert.Equal(t, "plain", plain.Error())
}

func TestErrorCodes(t *testing.T) {
	assert.True(t, IsWarning(WarningCountAndStar))
	assert.False(t, IsWarning(ErrorDisallowedModifier))
	assert.False(t, IsWarning(""))
	assert.Equal(t, "Tokenizer", GetErrorCategory(ErrorCountOverflow))
	assert.Equal(t, "Warning", GetErrorCategory(WarningUnknownDirective))
	assert.Equal(t, "Count is too large", GetErrorDescription(ErrorCountOverflow))
	assert.Equal(t, "Unknown error code", GetErrorDescription("E9999"))
}
