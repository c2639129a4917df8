package tokenizer

import (
	"unicode/utf8"

	"packfmt/token"
)

// Tokenizer scans a pack/unpack format string one directive at a time.
// It is single use: the cursor only moves forward.
type Tokenizer struct {
	source  string
	current int // byte offset of the character under the cursor
	line    int
	column  int

	// end of the last character consumed as part of a token
	consumed int
}

func New(format string) *Tokenizer {
	return &Tokenizer{
		source: format,
		line:   1,
		column: 1,
	}
}

// Tokenize scans format with a fresh Tokenizer.
func Tokenize(format string) []token.Token {
	return New(format).Tokenize()
}

// Tokenize returns the tokens of the format in source order. Scanning stops
// after the first token that carries an error; that token is included.
func (t *Tokenizer) Tokenize() []token.Token {
	tokens := make([]token.Token, 0)
	for tok, ok := t.nextToken(); ok; tok, ok = t.nextToken() {
		tokens = append(tokens, tok)
		if tok.Failed() {
			break
		}
	}
	return tokens
}

// nextToken reads a directive followed by, in order: endianness, native
// size, endianness again, a count and a star. Each step is optional. A
// character matching none of them is left for the next directive.
func (t *Tokenizer) nextToken() (token.Token, bool) {
	directive := t.currentChar()
	if directive == 0 {
		return token.Token{}, false
	}

	start := t.current
	tok := token.New(directive, t.position())

	modifier := t.nextChar()

	if t.applyEndianness(&tok, modifier) {
		modifier = t.nextChar()
	}

	if modifier == '_' || modifier == '!' {
		t.rejectModifier(&tok, modifier)
		tok.NativeSize = true
		modifier = t.nextChar()
	}

	if t.applyEndianness(&tok, modifier) {
		modifier = t.nextChar()
	}

	if isDigit(modifier) {
		modifier = t.scanCount(&tok, modifier)
	}

	if modifier == '*' {
		t.nextChar()
		tok.Star = true
	}

	tok.Length = t.consumed - start
	return tok, true
}

func (t *Tokenizer) applyEndianness(tok *token.Token, modifier rune) bool {
	switch modifier {
	case '<':
		t.rejectModifier(tok, modifier)
		tok.Endianness = token.Little
		return true
	case '>':
		t.rejectModifier(tok, modifier)
		tok.Endianness = token.Big
		return true
	}
	return false
}

// rejectModifier flags modifier unless the directive accepts it. The first
// error on a token is kept.
func (t *Tokenizer) rejectModifier(tok *token.Token, modifier rune) {
	if token.ModifierAllowed(tok.Directive) || tok.Err != nil {
		return
	}
	tok.Err = token.DisallowedModifierErr(modifier, t.position())
}

// scanCount accumulates a decimal run starting at c and returns the first
// character after it. Counts above token.MaxCount saturate and fail the token.
func (t *Tokenizer) scanCount(tok *token.Token, c rune) rune {
	pos := t.position()
	count := 0
	overflow := false

	for isDigit(c) {
		d := int(c - '0')
		if overflow || count > (token.MaxCount-d)/10 {
			overflow = true
			count = token.MaxCount
		} else {
			count = count*10 + d
		}
		c = t.nextChar()
	}

	tok.Count = count
	if overflow && tok.Err == nil {
		tok.Err = token.CountOverflowErr(pos)
	}
	return c
}

// currentChar skips whitespace, NUL and comments, then returns the
// character under the cursor without consuming it. 0 means end of input.
func (t *Tokenizer) currentChar() rune {
	for !t.isAtEnd() {
		c := t.peek()
		switch {
		case isSkip(c):
			t.advance()
		case c == '#':
			t.skipComment()
		default:
			return c
		}
	}
	return 0
}

// nextChar consumes the character under the cursor and returns the next
// effective one.
func (t *Tokenizer) nextChar() rune {
	if t.isAtEnd() {
		return 0
	}
	t.advance()
	t.consumed = t.current
	return t.currentChar()
}

// skipComment consumes from '#' through the next newline or end of input.
func (t *Tokenizer) skipComment() {
	for !t.isAtEnd() {
		if t.advance() == '\n' {
			return
		}
	}
}

func (t *Tokenizer) advance() rune {
	c, size := utf8.DecodeRuneInString(t.source[t.current:])
	t.current += size
	if c == '\n' {
		t.line++
		t.column = 1
	} else {
		t.column++
	}
	return c
}

func (t *Tokenizer) peek() rune {
	if t.isAtEnd() {
		return 0
	}
	c, _ := utf8.DecodeRuneInString(t.source[t.current:])
	return c
}

func (t *Tokenizer) position() token.Position {
	return token.Position{Line: t.line, Column: t.column, Offset: t.current}
}

func (t *Tokenizer) isAtEnd() bool {
	return t.current >= len(t.source)
}

// Helper functions.

func isDigit(c rune) bool {
	return '0' <= c && c <= '9'
}

func isSkip(c rune) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r', 0:
		return true
	}
	return false
}
