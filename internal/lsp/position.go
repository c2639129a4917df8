package lsp

import (
	"strings"
	"unicode/utf16"
)

// LSP character offsets count UTF-16 code units, while token columns
// count runes. These helpers convert using the document source.

// utf16Column returns the 0-based UTF-16 column of a byte offset within its line
func utf16Column(source string, offset int) uint32 {
	offset = min(max(offset, 0), len(source))
	start := strings.LastIndexByte(source[:offset], '\n') + 1
	return utf16Len(source[start:offset])
}

// utf16Width returns the UTF-16 length of up to runes characters starting
// at offset, stopping at the end of the line
func utf16Width(source string, offset, runes int) uint32 {
	offset = min(max(offset, 0), len(source))

	var width uint32
	for _, r := range source[offset:] {
		if runes == 0 || r == '\n' {
			break
		}
		width += uint32(utf16.RuneLen(r))
		runes--
	}
	return width
}

func utf16Len(s string) uint32 {
	var n uint32
	for _, r := range s {
		n += uint32(utf16.RuneLen(r))
	}
	return n
}
