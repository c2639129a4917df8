// SPDX-License-Identifier: Apache-2.0
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/goccy/go-yaml"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"packfmt/grammar"
	"packfmt/internal/analysis"
	"packfmt/internal/errors"
	"packfmt/internal/tokenizer"
	"packfmt/token"
)

const usage = `Usage: packfmt <command> [options] <format>

Commands:
  tokens [-o text|json|yaml] [-f file] <format>   print the tokens of a format
  check <file>                                    report diagnostics for a format file
  fmt [-f file] <format>                          print the canonical form
  verify [-f file] <format>                       compare tokenizer and grammar
`

// Spans and error positions are computed differently by the grammar.
var tokenComparison = cmp.Options{
	cmpopts.IgnoreFields(token.Token{}, "Length"),
	cmpopts.IgnoreFields(token.Error{}, "Position"),
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		fmt.Fprint(stderr, usage)
		return 1
	}

	switch args[0] {
	case "tokens":
		return runTokens(args[1:], stdout, stderr)
	case "check":
		return runCheck(args[1:], stdout, stderr)
	case "fmt":
		return runFmt(args[1:], stdout, stderr)
	case "verify":
		return runVerify(args[1:], stdout, stderr)
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n", args[0])
		fmt.Fprint(stderr, usage)
		return 1
	}
}

type tokenRecord struct {
	Directive  string `json:"directive" yaml:"directive"`
	Endianness string `json:"endianness" yaml:"endianness"`
	NativeSize bool   `json:"native_size,omitempty" yaml:"native_size,omitempty"`
	Count      *int   `json:"count,omitempty" yaml:"count,omitempty"`
	Star       bool   `json:"star,omitempty" yaml:"star,omitempty"`
	Line       int    `json:"line" yaml:"line"`
	Column     int    `json:"column" yaml:"column"`
	Offset     int    `json:"offset" yaml:"offset"`
	Error      string `json:"error,omitempty" yaml:"error,omitempty"`
}

func records(tokens []token.Token) []tokenRecord {
	out := make([]tokenRecord, 0, len(tokens))
	for _, tok := range tokens {
		rec := tokenRecord{
			Directive:  string(tok.Directive),
			Endianness: tok.Endianness.String(),
			NativeSize: tok.NativeSize,
			Star:       tok.Star,
			Line:       tok.Position.Line,
			Column:     tok.Position.Column,
			Offset:     tok.Position.Offset,
		}
		if tok.HasCount() {
			count := tok.Count
			rec.Count = &count
		}
		if tok.Failed() {
			rec.Error = tok.Err.Message
		}
		out = append(out, rec)
	}
	return out
}

func runTokens(args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("tokens", stderr)
	output := fs.String("o", "text", "output format: text, json or yaml")
	file := fs.String("f", "", "read the format from `file`")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	source, err := readFormat(fs, *file)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	tokens := tokenizer.Tokenize(source)

	switch *output {
	case "text":
		for _, tok := range tokens {
			fmt.Fprintf(stdout, "%d:%d\t%s", tok.Position.Line, tok.Position.Column, tok.String())
			if tok.Failed() {
				fmt.Fprintf(stdout, "\terror: %s", tok.Err)
			}
			fmt.Fprintln(stdout)
		}
	case "json":
		data, err := json.MarshalIndent(records(tokens), "", "  ")
		if err != nil {
			fmt.Fprintf(stderr, "failed to encode tokens: %v\n", err)
			return 1
		}
		fmt.Fprintln(stdout, string(data))
	case "yaml":
		data, err := yaml.Marshal(records(tokens))
		if err != nil {
			fmt.Fprintf(stderr, "failed to encode tokens: %v\n", err)
			return 1
		}
		fmt.Fprint(stdout, string(data))
	default:
		fmt.Fprintf(stderr, "unknown output format %q\n", *output)
		return 2
	}

	return 0
}

func runCheck(args []string, stdout, stderr io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(stderr, "Usage: packfmt check <file>")
		return 1
	}

	startTime := time.Now()
	path := args[0]

	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(stderr, "failed to read file: %v\n", err)
		return 1
	}

	result := analysis.Analyze(string(source))

	reporter := errors.NewErrorReporter(path, string(source))
	fmt.Fprint(stdout, reporter.FormatAll(result.Diagnostics))

	formattedDuration := formatDuration(time.Since(startTime))

	if result.HasErrors() {
		color.New(color.FgRed).Fprintf(stdout, "Check failed after %s\n", formattedDuration)
		return 1
	}

	fmt.Fprintln(stdout, token.Join(result.Tokens))
	color.New(color.FgGreen).Fprintf(stdout, "Successfully checked %s in %s\n", path, formattedDuration)
	return 0
}

func runFmt(args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("fmt", stderr)
	file := fs.String("f", "", "read the format from `file`")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	source, err := readFormat(fs, *file)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	// invalid bytes decode to U+FFFD and would not survive the rewrite
	if !utf8.ValidString(source) {
		fmt.Fprintln(stderr, "format is not valid UTF-8")
		return 1
	}

	tokens := tokenizer.Tokenize(source)
	fmt.Fprintln(stdout, token.Join(tokens))

	if n := len(tokens); n > 0 && tokens[n-1].Failed() {
		last := tokens[n-1]
		color.New(color.FgRed).Fprintf(stderr, "error: %s at line %d, column %d\n",
			last.Err, last.Err.Position.Line, last.Err.Position.Column)
		return 1
	}
	return 0
}

func runVerify(args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("verify", stderr)
	file := fs.String("f", "", "read the format from `file`")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	source, err := readFormat(fs, *file)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	var parsed *grammar.Format
	if *file != "" {
		parsed, err = grammar.ParseFile(*file)
	} else {
		parsed, err = grammar.ParseString("<format>", source)
	}
	if err != nil {
		grammar.ReportParseError(stderr, source, err)
		return 1
	}

	tokens := tokenizer.Tokenize(source)
	if diff := cmp.Diff(tokens, parsed.Tokens(), tokenComparison); diff != "" {
		color.New(color.FgRed).Fprintf(stdout, "tokenizer and grammar disagree (-tokenizer +grammar):\n%s", diff)
		return 1
	}

	color.New(color.FgGreen).Fprintf(stdout, "tokenizer and grammar agree on %d tokens\n", len(tokens))
	return 0
}

func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

// readFormat returns the format named by -f, or else the single
// positional argument.
func readFormat(fs *flag.FlagSet, file string) (string, error) {
	if file != "" {
		if fs.NArg() != 0 {
			return "", fmt.Errorf("-f and a format argument are mutually exclusive")
		}
		source, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read file: %w", err)
		}
		return string(source), nil
	}

	if fs.NArg() != 1 {
		return "", fmt.Errorf("expected exactly one format argument, got %d", fs.NArg())
	}
	return fs.Arg(0), nil
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%.2fmin", d.Minutes())
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
