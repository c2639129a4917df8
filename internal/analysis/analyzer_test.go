package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"packfmt/internal/errors"
)

func TestCleanFormat(t *testing.T) {
	result := Analyze("C2 n a10 # header\nN* x3")
	assert.Len(t, result.Tokens, 5)
	assert.Empty(t, result.Diagnostics)
	assert.False(t, result.HasErrors())
}

func TestDisallowedModifierIsError(t *testing.T) {
	result := Analyze("C2 a< i")
	require.Len(t, result.Tokens, 2)
	require.True(t, result.HasErrors())
	require.Len(t, result.Errors(), 1)

	err := result.Errors()[0]
	assert.Equal(t, errors.ErrorDisallowedModifier, err.Code)
	assert.Equal(t, "'<' allowed only after types sSiIlLqQjJ", err.Message)
	assert.Equal(t, 5, err.Position.Column)
}

func TestCountOverflowIsError(t *testing.T) {
	result := Analyze("a4294967296")
	require.True(t, result.HasErrors())
	assert.Equal(t, errors.ErrorCountOverflow, result.Errors()[0].Code)
}

func TestCountAndStarWarning(t *testing.T) {
	result := Analyze("a 3 *")
	assert.False(t, result.HasErrors())
	warnings := result.Warnings()
	require.Len(t, warnings, 1)
	assert.Equal(t, errors.WarningCountAndStar, warnings[0].Code)
	assert.Equal(t, 5, warnings[0].Length)
}

func TestUnknownDirectiveWarning(t *testing.T) {
	result := Analyze("C z K")
	assert.False(t, result.HasErrors())
	warnings := result.Warnings()
	require.Len(t, warnings, 2)
	assert.Equal(t, errors.WarningUnknownDirective, warnings[0].Code)
	assert.Equal(t, 3, warnings[0].Position.Column)
	assert.Equal(t, "did you mean 'Z'?", warnings[0].Suggestions[0].Message)
	assert.Empty(t, warnings[1].Suggestions)
}

func TestWarningsPrecedeError(t *testing.T) {
	result := Analyze("y!")
	require.Len(t, result.Diagnostics, 2)
	assert.Equal(t, errors.WarningUnknownDirective, result.Diagnostics[0].Code)
	assert.Equal(t, errors.ErrorDisallowedModifier, result.Diagnostics[1].Code)
}

func TestAnalyzerReset(t *testing.T) {
	a := NewAnalyzer()
	a.Analyze("a<")
	assert.Len(t, a.GetErrors(), 1)

	result := a.Analyze("C")
	assert.Empty(t, result.Diagnostics)
	assert.Empty(t, a.GetErrors())
}
