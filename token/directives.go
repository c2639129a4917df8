package token

import "strconv"

type DirectiveKind int

const (
	IntegerDirective DirectiveKind = iota
	FloatDirective
	StringDirective
	PositionDirective
)

func (k DirectiveKind) String() string {
	switch k {
	case IntegerDirective:
		return "integer"
	case FloatDirective:
		return "float"
	case StringDirective:
		return "string"
	case PositionDirective:
		return "position"
	}
	return "unknown"
}

// DirectiveInfo describes how the pack/unpack layer treats a directive.
// Size is the default width in bytes, 0 for variable-width directives.
type DirectiveInfo struct {
	Directive   rune
	Kind        DirectiveKind
	Size        int
	Signed      bool
	Description string
}

var pointerSize = strconv.IntSize / 8

var directives = map[rune]DirectiveInfo{
	'C': {'C', IntegerDirective, 1, false, "8-bit unsigned (unsigned char)"},
	'S': {'S', IntegerDirective, 2, false, "16-bit unsigned, native endian (uint16_t)"},
	'L': {'L', IntegerDirective, 4, false, "32-bit unsigned, native endian (uint32_t)"},
	'Q': {'Q', IntegerDirective, 8, false, "64-bit unsigned, native endian (uint64_t)"},
	'J': {'J', IntegerDirective, pointerSize, false, "pointer width unsigned, native endian (uintptr_t)"},
	'c': {'c', IntegerDirective, 1, true, "8-bit signed (signed char)"},
	's': {'s', IntegerDirective, 2, true, "16-bit signed, native endian (int16_t)"},
	'l': {'l', IntegerDirective, 4, true, "32-bit signed, native endian (int32_t)"},
	'q': {'q', IntegerDirective, 8, true, "64-bit signed, native endian (int64_t)"},
	'j': {'j', IntegerDirective, pointerSize, true, "pointer width signed, native endian (intptr_t)"},
	'I': {'I', IntegerDirective, 4, false, "unsigned int, native endian"},
	'i': {'i', IntegerDirective, 4, true, "signed int, native endian"},
	'n': {'n', IntegerDirective, 2, false, "16-bit unsigned, network (big-endian) byte order"},
	'N': {'N', IntegerDirective, 4, false, "32-bit unsigned, network (big-endian) byte order"},
	'v': {'v', IntegerDirective, 2, false, "16-bit unsigned, VAX (little-endian) byte order"},
	'V': {'V', IntegerDirective, 4, false, "32-bit unsigned, VAX (little-endian) byte order"},
	'U': {'U', IntegerDirective, 0, false, "UTF-8 character"},
	'w': {'w', IntegerDirective, 0, false, "BER-compressed integer"},

	'D': {'D', FloatDirective, 8, true, "double-precision, native format"},
	'd': {'d', FloatDirective, 8, true, "double-precision, native format"},
	'F': {'F', FloatDirective, 4, true, "single-precision, native format"},
	'f': {'f', FloatDirective, 4, true, "single-precision, native format"},
	'E': {'E', FloatDirective, 8, true, "double-precision, little-endian byte order"},
	'e': {'e', FloatDirective, 4, true, "single-precision, little-endian byte order"},
	'G': {'G', FloatDirective, 8, true, "double-precision, network (big-endian) byte order"},
	'g': {'g', FloatDirective, 4, true, "single-precision, network (big-endian) byte order"},

	'A': {'A', StringDirective, 0, false, "arbitrary binary string (space padded)"},
	'a': {'a', StringDirective, 0, false, "arbitrary binary string (null padded)"},
	'Z': {'Z', StringDirective, 0, false, "null-terminated string"},
	'B': {'B', StringDirective, 0, false, "bit string (MSB first)"},
	'b': {'b', StringDirective, 0, false, "bit string (LSB first)"},
	'H': {'H', StringDirective, 0, false, "hex string (high nibble first)"},
	'h': {'h', StringDirective, 0, false, "hex string (low nibble first)"},
	'u': {'u', StringDirective, 0, false, "UU-encoded string"},
	'M': {'M', StringDirective, 0, false, "quoted printable, MIME encoding"},
	'm': {'m', StringDirective, 0, false, "base64 encoded string"},
	'P': {'P', StringDirective, pointerSize, false, "pointer to a structure (fixed-length string)"},
	'p': {'p', StringDirective, pointerSize, false, "pointer to a null-terminated string"},

	'@': {'@', PositionDirective, 0, false, "moves to absolute position"},
	'X': {'X', PositionDirective, 1, false, "back up a byte"},
	'x': {'x', PositionDirective, 1, false, "null byte"},
}

// LookupDirective returns the description of a known directive.
func LookupDirective(r rune) (DirectiveInfo, bool) {
	info, ok := directives[r]
	return info, ok
}
