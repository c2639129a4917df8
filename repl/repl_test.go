package repl_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"packfmt/repl"
)

func TestStartEvaluatesEachLine(t *testing.T) {
	color.NoColor = true

	in := strings.NewReader("i<2 C\n\n# nothing\nexit\nn\n")
	var out bytes.Buffer
	repl.Start(in, &out, false)

	expected := "" +
		"i<2      integer, 4 bytes, little endian\n" +
		"C        integer, 1 byte\n" +
		"(no directives)\n"
	assert.Equal(t, expected, out.String())
}

func TestStartPrompts(t *testing.T) {
	var out bytes.Buffer
	repl.Start(strings.NewReader("x\n"), &out, true)

	assert.True(t, strings.HasPrefix(out.String(), repl.PROMPT+"x "))
	assert.True(t, strings.HasSuffix(out.String(), repl.PROMPT), "prompt is shown again before EOF")
}

func TestEvalReportsDiagnostics(t *testing.T) {
	color.NoColor = true

	var out bytes.Buffer
	repl.Eval(&out, "s_ a>")

	got := out.String()
	assert.Contains(t, got, "s!       integer, 2 bytes, native size\n")
	assert.Contains(t, got, "a>       string, big endian\n")
	assert.Contains(t, got, "error[E0001]: '>' allowed only after types sSiIlLqQjJ")
	assert.Contains(t, got, "--> <repl>:1:5")
}

func TestEvalUnknownDirective(t *testing.T) {
	color.NoColor = true

	var out bytes.Buffer
	repl.Eval(&out, "y")

	assert.Contains(t, out.String(), "y        unknown\n")
	assert.Contains(t, out.String(), "warning[W0002]: unknown directive 'y'")
}
