package lsp

import "packfmt/token"

// SemanticToken represents a single LSP semantic token entry
// Line and StartChar are 0-based; StartChar and Length count UTF-16 units
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int // index into SemanticTokenTypes
	TokenModifiers int // bitmask over SemanticTokenModifiers
}

func collectSemanticTokens(source string, tokens []token.Token) []SemanticToken {
	out := make([]SemanticToken, 0, len(tokens))

	for _, tok := range tokens {
		tokenType := "variable"
		modifiers := 0
		if _, ok := token.LookupDirective(tok.Directive); ok {
			tokenType = "type"
			modifiers |= 1 << indexOf("defaultLibrary", SemanticTokenModifiers)
		}
		if hasModifiers(tok) {
			modifiers |= 1 << indexOf("modification", SemanticTokenModifiers)
		}

		out = append(out, SemanticToken{
			Line:           uint32(tok.Position.Line - 1),
			StartChar:      utf16Column(source, tok.Position.Offset),
			Length:         utf16Width(source, tok.Position.Offset, 1),
			TokenType:      indexOf(tokenType, SemanticTokenTypes),
			TokenModifiers: modifiers,
		})
	}

	return out
}

// encodeSemanticTokens applies the LSP delta-line, delta-start compression
func encodeSemanticTokens(tokens []SemanticToken) []uint32 {
	data := make([]uint32, 0, len(tokens)*5)
	var prevLine, prevStart uint32

	for _, tok := range tokens {
		deltaLine := tok.Line - prevLine
		deltaStart := tok.StartChar
		if deltaLine == 0 {
			deltaStart = tok.StartChar - prevStart
		}

		data = append(data, deltaLine, deltaStart, tok.Length, uint32(tok.TokenType), uint32(tok.TokenModifiers))

		prevLine = tok.Line
		prevStart = tok.StartChar
	}

	return data
}

func hasModifiers(tok token.Token) bool {
	return tok.HasCount() || tok.Star || tok.NativeSize || tok.Endianness != token.Native
}

// indexOf returns the index of a string in a slice, or 0 if not found
func indexOf(target string, list []string) int {
	for i, v := range list {
		if v == target {
			return i
		}
	}
	return 0
}
