package markup

import "strings"

// Text is a run of plain character data. Content is stored unescaped and
// escaped again on serialization.
type Text struct {
	leaf
	content string
}

func NewText(content string) *Text {
	return &Text{content: content}
}

func (t *Text) Content() string { return t.content }

func (t *Text) SetContent(content string) { t.content = content }

func (t *Text) String() string {
	var sb strings.Builder
	t.encode(&sb)
	return sb.String()
}

func (t *Text) encode(sb *strings.Builder) {
	sb.WriteString(Escape(t.content))
}

// TextParser matches any input that does not start a tag. It must sit
// first in the registry so it only ever wins on non-'<' input.
type TextParser struct{}

func NewTextParser() *TextParser {
	return &TextParser{}
}

func (p *TextParser) CanParse(text string) bool {
	return text != "" && text[0] != '<'
}

// Parse consumes up to, but not including, the next '<', or the whole
// remainder when none follows.
func (p *TextParser) Parse(text string, _ *Registry) (Node, string, error) {
	end := strings.IndexByte(text, '<')
	if end < 0 {
		end = len(text)
	}

	return NewText(Unescape(text[:end])), text[end:], nil
}
