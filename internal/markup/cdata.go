package markup

import "strings"

const (
	cdataOpen  = "<![CDATA["
	cdataClose = "]]>"
)

// CData is a raw character data section. The payload is verbatim: it is
// never escaped or unescaped.
type CData struct {
	leaf
	content string
}

func NewCData(content string) *CData {
	return &CData{content: content}
}

func (c *CData) Content() string { return c.content }

func (c *CData) SetContent(content string) { c.content = content }

func (c *CData) String() string {
	var sb strings.Builder
	c.encode(&sb)
	return sb.String()
}

// encode writes the section back out. A literal "]]>" inside the payload
// would terminate the section early, so it is rewritten to "]]&gt;".
func (c *CData) encode(sb *strings.Builder) {
	sb.WriteString(cdataOpen)
	sb.WriteString(strings.ReplaceAll(c.content, cdataClose, "]]&gt;"))
	sb.WriteString(cdataClose)
}

type CDataParser struct{}

func NewCDataParser() *CDataParser {
	return &CDataParser{}
}

func (p *CDataParser) CanParse(text string) bool {
	return strings.HasPrefix(text, cdataOpen)
}

// Parse consumes through the first "]]>", or the whole remainder when the
// section is unterminated.
func (p *CDataParser) Parse(text string, _ *Registry) (Node, string, error) {
	body := text[len(cdataOpen):]

	end := strings.Index(body, cdataClose)
	if end < 0 {
		return NewCData(body), "", nil
	}

	return NewCData(body[:end]), body[end+len(cdataClose):], nil
}
