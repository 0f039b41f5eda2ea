package markup

import "strings"

// skipSpace drops leading whitespace from text.
func skipSpace(text string) string {
	return strings.TrimLeft(text, " \t\r\n")
}

// readName returns the longest prefix of text made of name characters.
func readName(text string) string {
	end := 0
	for end < len(text) && isNameByte(text[end]) {
		end++
	}
	return text[:end]
}

// readQuoted reads a double-quoted value starting at text[0] == '"'. It
// returns the raw interior and the text after the closing quote. A missing
// closing quote consumes the remainder, matching the tolerant consumption
// rules of the other constructs.
func readQuoted(text string) (string, string) {
	body := text[1:]

	end := strings.IndexByte(body, '"')
	if end < 0 {
		return body, ""
	}

	return body[:end], body[end+1:]
}
