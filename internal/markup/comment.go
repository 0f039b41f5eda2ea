package markup

import "strings"

const (
	commentOpen  = "<!--"
	commentClose = "-->"
)

// Comment is a markup comment. The body is stored unescaped.
type Comment struct {
	leaf
	content string
}

func NewComment(content string) *Comment {
	return &Comment{content: content}
}

func (c *Comment) Content() string { return c.content }

func (c *Comment) SetContent(content string) { c.content = content }

func (c *Comment) String() string {
	var sb strings.Builder
	c.encode(&sb)
	return sb.String()
}

func (c *Comment) encode(sb *strings.Builder) {
	sb.WriteString(commentOpen)
	sb.WriteString(Escape(c.content))
	sb.WriteString(commentClose)
}

type CommentParser struct{}

func NewCommentParser() *CommentParser {
	return &CommentParser{}
}

func (p *CommentParser) CanParse(text string) bool {
	return strings.HasPrefix(text, commentOpen)
}

// Parse consumes through the first "-->". An unterminated comment swallows
// the whole remainder rather than failing.
func (p *CommentParser) Parse(text string, _ *Registry) (Node, string, error) {
	body := text[len(commentOpen):]

	end := strings.Index(body, commentClose)
	if end < 0 {
		return NewComment(Unescape(body)), "", nil
	}

	return NewComment(Unescape(body[:end])), body[end+len(commentClose):], nil
}
