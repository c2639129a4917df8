package grammar

import (
	"strconv"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2/lexer"

	"packfmt/token"
)

// Tokens converts the parse into tokens, applying the same modifier
// validation and truncation as the tokenizer.
func (f *Format) Tokens() []token.Token {
	tokens := make([]token.Token, 0, len(f.Directives))
	for _, d := range f.Directives {
		tok := d.Token()
		tokens = append(tokens, tok)
		if tok.Failed() {
			break
		}
	}
	return tokens
}

// String renders the parse in canonical form.
func (f *Format) String() string {
	return token.Join(f.Tokens())
}

func (d *Directive) Token() token.Token {
	r, _ := utf8.DecodeRuneInString(d.Char)
	tok := token.New(r, position(d.Pos))
	tok.Length = d.EndPos.Offset - d.Pos.Offset

	d.applyEndian(&tok, d.Endian)
	if d.Native != "" {
		d.reject(&tok, d.Native)
		tok.NativeSize = true
	}
	d.applyEndian(&tok, d.EndianAfter)

	if d.Count != "" {
		n, err := strconv.Atoi(d.Count)
		if err != nil || n > token.MaxCount {
			n = token.MaxCount
			if tok.Err == nil {
				tok.Err = token.CountOverflowErr(tok.Position)
			}
		}
		tok.Count = n
	}
	tok.Star = d.Star
	return tok
}

func (d *Directive) applyEndian(tok *token.Token, endian string) {
	switch endian {
	case "<":
		d.reject(tok, endian)
		tok.Endianness = token.Little
	case ">":
		d.reject(tok, endian)
		tok.Endianness = token.Big
	}
}

func (d *Directive) reject(tok *token.Token, modifier string) {
	if token.ModifierAllowed(tok.Directive) || tok.Err != nil {
		return
	}
	m, _ := utf8.DecodeRuneInString(modifier)
	tok.Err = token.DisallowedModifierErr(m, tok.Position)
}

func position(p lexer.Position) token.Position {
	return token.Position{Line: p.Line, Column: p.Column, Offset: p.Offset}
}
