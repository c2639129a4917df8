package errors

// Error codes for packfmt diagnostics.
//
// Error code ranges:
// E0001-E0099: Tokenizer errors
// E0100-E0199: Reserved for the pack/unpack layer
// W0001-W0099: Format warnings

const (
	// E0001: Endianness or native-size modifier after a directive that
	// does not accept it
	ErrorDisallowedModifier = "E0001"

	// E0002: Explicit count does not fit the count field
	ErrorCountOverflow = "E0002"

	// W0001: Directive carries both an explicit count and '*'
	WarningCountAndStar = "W0001"

	// W0002: Directive is not part of the pack dialect
	WarningUnknownDirective = "W0002"
)

// GetErrorDescription returns a human-readable description of the error code
func GetErrorDescription(code string) string {
	switch code {
	case ErrorDisallowedModifier:
		return "Modifier is not allowed after this directive"
	case ErrorCountOverflow:
		return "Count is too large"
	case WarningCountAndStar:
		return "Count and '*' used together"
	case WarningUnknownDirective:
		return "Directive is not recognized by pack/unpack"
	default:
		return "Unknown error code"
	}
}

// IsWarning returns true if the error code represents a warning rather than an error
func IsWarning(code string) bool {
	return len(code) > 0 && code[0] == 'W'
}

// GetErrorCategory returns the category of the error based on its code
func GetErrorCategory(code string) string {
	switch {
	case code >= "E0001" && code < "E0100":
		return "Tokenizer"
	case code >= "E0100" && code < "E0200":
		return "Pack"
	case IsWarning(code):
		return "Warning"
	default:
		return "Unknown"
	}
}
