package markup

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

var (
	decimalRefRegex = regexp.MustCompile(`&#([0-9]+);`)
	hexRefRegex     = regexp.MustCompile(`&#x([0-9a-fA-F]+);`)
)

// Escape replaces the three reserved markup characters with their entity
// forms. The ampersand is replaced first so the ampersands introduced by
// the later replacements are not themselves escaped again.
func Escape(text string) string {
	text = strings.ReplaceAll(text, "&", "&amp;")
	text = strings.ReplaceAll(text, "<", "&lt;")
	text = strings.ReplaceAll(text, ">", "&gt;")
	return text
}

// EscapeValue escapes text for use inside a double-quoted attribute or pair
// value. On top of Escape it replaces quotes, apostrophes, and bare line
// breaks with entity forms so the value stays on one line.
func EscapeValue(text string) string {
	text = Escape(text)
	text = strings.ReplaceAll(text, `"`, "&quot;")
	text = strings.ReplaceAll(text, "'", "&apos;")
	text = strings.ReplaceAll(text, "\n", "&#10;")
	text = strings.ReplaceAll(text, "\r", "&#13;")
	return text
}

// Unescape reverses Escape and EscapeValue, and additionally resolves
// decimal and hexadecimal numeric character references. "&amp;" is resolved
// last so entity markers produced by the earlier steps are never
// misinterpreted as fresh escapes.
func Unescape(text string) string {
	text = strings.ReplaceAll(text, "&lt;", "<")
	text = strings.ReplaceAll(text, "&gt;", ">")
	text = strings.ReplaceAll(text, "&quot;", `"`)
	text = strings.ReplaceAll(text, "&apos;", "'")

	text = decimalRefRegex.ReplaceAllStringFunc(text, func(ref string) string {
		return resolveNumericRef(ref[2:len(ref)-1], 10)
	})
	text = hexRefRegex.ReplaceAllStringFunc(text, func(ref string) string {
		return resolveNumericRef(ref[3:len(ref)-1], 16)
	})

	text = strings.ReplaceAll(text, "&amp;", "&")
	return text
}

// resolveNumericRef maps the digits of a numeric character reference to the
// code point they denote. Unrepresentable references are left untouched so
// malformed input survives a round trip instead of being corrupted.
func resolveNumericRef(digits string, base int) string {
	n, err := strconv.ParseInt(digits, base, 32)
	if err != nil || n < 0 || n > utf8.MaxRune || !utf8.ValidRune(rune(n)) {
		if base == 16 {
			return "&#x" + digits + ";"
		}
		return "&#" + digits + ";"
	}
	return string(rune(n))
}
