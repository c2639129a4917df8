package grammar_test

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"packfmt/grammar"
	"packfmt/internal/tokenizer"
	"packfmt/token"
)

// Positions of errors and token spans are computed differently by the two
// recognizers; everything else must agree.
var tokenCmp = cmp.Options{
	cmpopts.IgnoreFields(token.Token{}, "Length"),
	cmpopts.IgnoreFields(token.Error{}, "Position"),
}

func TestParseDirectives(t *testing.T) {
	format, err := grammar.ParseString("fmt", "i!< 4* # trailer\nC2")
	require.NoError(t, err)
	require.Len(t, format.Directives, 2)

	d := format.Directives[0]
	assert.Equal(t, "i", d.Char)
	assert.Equal(t, "!", d.Native)
	assert.Equal(t, "<", d.EndianAfter)
	assert.Equal(t, "4", d.Count)
	assert.True(t, d.Star)

	c := format.Directives[1]
	assert.Equal(t, "C", c.Char)
	assert.Equal(t, "2", c.Count)
	assert.Equal(t, 2, c.Pos.Line)
	assert.Equal(t, 1, c.Pos.Column)

	assert.Equal(t, "i<!4*C2", format.String())
}

func TestParseEmpty(t *testing.T) {
	for _, src := range []string{"", "  \x00", "# only\n# comments"} {
		format, err := grammar.ParseString("fmt", src)
		require.NoError(t, err, "source %q", src)
		assert.Empty(t, format.Tokens())
	}
}

func TestAgreesWithTokenizer(t *testing.T) {
	inputs := []string{
		"i",
		"i<2",
		"i!< 4*",
		"s_>3 S! l L< q> Q_ j J*",
		"a3* A Z* B8 b h2 H u m0 M p P",
		"C c n N v V U* w",
		"d D f F e E g G",
		"@4 x2 X",
		"i # comment\nl",
		"i<<",
		"a<",
		"C2 a> i<2 s",
		"n!",
		"é3",
		"a99999999999",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			format, err := grammar.ParseString("fmt", input)
			require.NoError(t, err)

			expected := tokenizer.Tokenize(input)
			if diff := cmp.Diff(expected, format.Tokens(), tokenCmp); diff != "" {
				t.Errorf("grammar and tokenizer disagree (-tokenizer +grammar):\n%s", diff)
			}
		})
	}
}

func TestRejectsModifierDirective(t *testing.T) {
	// The tokenizer reads '<' as a directive here; the grammar cannot.
	_, err := grammar.ParseString("fmt", "i<<<")
	require.Error(t, err)

	color.NoColor = true
	var out bytes.Buffer
	grammar.ReportParseError(&out, "i<<<", err)
	assert.Contains(t, out.String(), "Syntax error in fmt at line 1, column 4")
	assert.Contains(t, out.String(), "   ^")
}
