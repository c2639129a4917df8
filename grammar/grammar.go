package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Format is the reference parse of a pack/unpack format string.
type Format struct {
	Pos        lexer.Position
	Directives []*Directive `parser:"@@*"`
}

// Directive mirrors the tokenizer's state progression: endianness, native
// size, endianness again, count, star.
type Directive struct {
	Pos         lexer.Position
	EndPos      lexer.Position
	Char        string `parser:"@Directive"`
	Endian      string `parser:"@Endian?"`
	Native      string `parser:"@Native?"`
	EndianAfter string `parser:"@Endian?"`
	Count       string `parser:"@Count?"`
	Star        bool   `parser:"@Star?"`
}
