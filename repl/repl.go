// Package repl SPDX-License-Identifier: Apache-2.0
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"packfmt/internal/analysis"
	"packfmt/internal/errors"
	"packfmt/token"
)

const PROMPT = ">> "

// Start reads one format per line from in until EOF or "exit", writing
// each token and any diagnostics to out. The prompt is written only when
// prompt is set.
func Start(in io.Reader, out io.Writer, prompt bool) {
	scanner := bufio.NewScanner(in)

	for {
		if prompt {
			fmt.Fprint(out, PROMPT)
		}
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				fmt.Fprintf(out, "read error: %v\n", err)
			}
			return
		}

		line := scanner.Text()
		switch strings.TrimSpace(line) {
		case "":
			continue
		case "exit", "quit":
			return
		}

		Eval(out, line)
	}
}

// Eval tokenizes a single format and writes the result to out.
func Eval(out io.Writer, format string) {
	result := analysis.Analyze(format)

	for _, tok := range result.Tokens {
		fmt.Fprintf(out, "%-8s %s\n", tok.String(), describe(tok))
	}
	if len(result.Tokens) == 0 {
		fmt.Fprintln(out, "(no directives)")
	}

	if len(result.Diagnostics) > 0 {
		reporter := errors.NewErrorReporter("<repl>", format)
		fmt.Fprint(out, reporter.FormatAll(result.Diagnostics))
	}
}

func describe(tok token.Token) string {
	info, ok := token.LookupDirective(tok.Directive)
	if !ok {
		return "unknown"
	}

	parts := []string{info.Kind.String()}
	switch {
	case info.Size == 1:
		parts = append(parts, "1 byte")
	case info.Size > 1:
		parts = append(parts, fmt.Sprintf("%d bytes", info.Size))
	}
	if tok.Endianness != token.Native {
		parts = append(parts, tok.Endianness.String()+" endian")
	}
	if tok.NativeSize {
		parts = append(parts, "native size")
	}
	return strings.Join(parts, ", ")
}
