package markup

import "github.com/samber/oops"

// ValidateName reports whether name is an acceptable markup identifier.
// Identifiers are non-empty and composed only of ASCII letters, digits,
// '.', '-', '_', and ':'. Every name-carrying setter in this package routes
// through this check and fails immediately on violation.
func ValidateName(name string) error {
	if name == "" {
		return oops.
			Code("INVALID_NAME").
			Hint("Names must contain at least one character").
			Errorf("name must not be empty")
	}

	for _, r := range name {
		if !isNameRune(r) {
			return oops.
				Code("INVALID_NAME").
				With("name", name).
				Hint("Allowed characters: letters, digits, '.', '-', '_', ':'").
				Errorf("invalid character %q in name %q", r, name)
		}
	}

	return nil
}

func isNameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '.', r == '-', r == '_', r == ':':
		return true
	default:
		return false
	}
}

// isWordByte matches the characters that may start an element name after
// '<'. Punctuation name characters ('.', '-', ':') intentionally do not
// qualify so that '<' followed by one of them is not mistaken for a tag.
func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9' || b == '_'
}

func isNameByte(b byte) bool {
	return isWordByte(b) || b == '.' || b == '-' || b == ':'
}
