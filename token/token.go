// Package token SPDX-License-Identifier: Apache-2.0
package token

import (
	"math"
	"strconv"
	"strings"
)

// NoCount marks a token whose count was not written in the format.
const NoCount = -1

// MaxCount is the largest explicit count a directive may carry.
const MaxCount = math.MaxInt32

// AllowedModifierTypes lists the directives that accept '<', '>', '_' and '!'.
const AllowedModifierTypes = "sSiIlLqQjJ"

type Endianness int

const (
	Native Endianness = iota
	Little
	Big
)

func (e Endianness) String() string {
	switch e {
	case Little:
		return "little"
	case Big:
		return "big"
	default:
		return "native"
	}
}

type Position struct {
	Line   int // 1-based
	Column int // 1-based, in runes
	Offset int // 0-based byte index in input
}

// Token is one directive together with the modifiers written after it.
type Token struct {
	Directive  rune
	Count      int
	Star       bool
	NativeSize bool
	Endianness Endianness
	Err        *Error

	Position Position
	Length   int // bytes from the directive through its last modifier
}

// New returns a token for directive with every modifier at its default.
func New(directive rune, pos Position) Token {
	return Token{
		Directive: directive,
		Count:     NoCount,
		Position:  pos,
	}
}

func (t Token) HasCount() bool {
	return t.Count != NoCount
}

func (t Token) Failed() bool {
	return t.Err != nil
}

// String renders the token in canonical modifier order, e.g. "i<!4*".
// Directives that are not valid UTF-8 render as U+FFFD.
func (t Token) String() string {
	var b strings.Builder
	t.render(&b, false)
	return b.String()
}

// Join renders a token sequence as a canonical format string. Tokenizing
// the result yields the same tokens.
func Join(tokens []Token) string {
	var b strings.Builder
	for i, t := range tokens {
		t.render(&b, i+1 < len(tokens) && t.absorbs(tokens[i+1].Directive))
	}
	return b.String()
}

// absorbs reports whether rescanning the canonical form of t would read
// next as one of t's own modifiers. Only the second byte-order slot can
// be open: a following digit or '*' directive implies t ended with '*'.
func (t Token) absorbs(next rune) bool {
	if t.Endianness == Native || t.HasCount() || t.Star {
		return false
	}
	switch next {
	case '<', '>', '_', '!':
		return true
	}
	return false
}

// render writes the token; closeEndianness repeats the byte order after
// the native size so no modifier step is left open.
func (t Token) render(b *strings.Builder, closeEndianness bool) {
	b.WriteRune(t.Directive)
	t.writeEndianness(b)
	if t.NativeSize {
		b.WriteByte('!')
	}
	if closeEndianness {
		t.writeEndianness(b)
	}
	if t.HasCount() {
		b.WriteString(strconv.Itoa(t.Count))
	}
	if t.Star {
		b.WriteByte('*')
	}
}

func (t Token) writeEndianness(b *strings.Builder) {
	switch t.Endianness {
	case Little:
		b.WriteByte('<')
	case Big:
		b.WriteByte('>')
	}
}

// ModifierAllowed reports whether directive accepts endianness and
// native-size modifiers.
func ModifierAllowed(directive rune) bool {
	switch directive {
	case 's', 'S', 'i', 'I', 'l', 'L', 'q', 'Q', 'j', 'J':
		return true
	}
	return false
}
