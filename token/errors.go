package token

import "fmt"

type ErrorKind int

const (
	// DisallowedModifier is an endianness or native-size modifier after a
	// directive outside AllowedModifierTypes.
	DisallowedModifier ErrorKind = iota + 1
	// CountOverflow is a digit run larger than MaxCount.
	CountOverflow
)

func (k ErrorKind) String() string {
	switch k {
	case DisallowedModifier:
		return "disallowed modifier"
	case CountOverflow:
		return "count overflow"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is the diagnostic attached to the last token of a failed scan.
type Error struct {
	Kind     ErrorKind
	Modifier rune // offending character, 0 if none
	Message  string
	Position Position
}

func (e *Error) Error() string {
	return e.Message
}

func DisallowedModifierErr(modifier rune, pos Position) *Error {
	return &Error{
		Kind:     DisallowedModifier,
		Modifier: modifier,
		Message:  fmt.Sprintf("'%c' allowed only after types %s", modifier, AllowedModifierTypes),
		Position: pos,
	}
}

func CountOverflowErr(pos Position) *Error {
	return &Error{
		Kind:     CountOverflow,
		Message:  "pack length too big",
		Position: pos,
	}
}
