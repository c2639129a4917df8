package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// PackLexer splits a format into directive and modifier tokens. Rules are
// tried in order, so modifier characters never lex as directives.
var PackLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		// Comments run through the end of the line
		{Name: "Comment", Pattern: `#[^\n]*\n?`, Action: nil},

		// Whitespace and NUL
		{Name: "Whitespace", Pattern: `[ \t\n\v\f\r\x00]+`, Action: nil},

		// Modifiers
		{Name: "Count", Pattern: `[0-9]+`, Action: nil},
		{Name: "Endian", Pattern: `[<>]`, Action: nil},
		{Name: "Native", Pattern: `[_!]`, Action: nil},
		{Name: "Star", Pattern: `\*`, Action: nil},

		// Anything else is a directive character
		{Name: "Directive", Pattern: `.`, Action: nil},
	},
})
