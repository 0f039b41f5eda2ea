package markup

import (
	"fmt"
	"strings"

	"github.com/samber/oops"
)

// Parser recognizes and consumes one markup construct at the head of the
// remaining input.
type Parser interface {
	// CanParse is a fast, non-consuming test of whether this parser can
	// start parsing at the head of text.
	CanParse(text string) bool

	// Parse consumes a prefix of text and returns the constructed node
	// and the unconsumed remainder. The remainder must be strictly
	// shorter than the input; reg is available for recursive descent
	// into child constructs.
	Parse(text string, reg *Registry) (Node, string, error)
}

// Registry is an ordered set of parsers. Dispatch always picks the first
// parser whose CanParse accepts the remaining text, so relative order is
// significant: the CData, Comment, Metadata, and Declaration parsers all
// claim "<!"- or "<?"-prefixed input and must be tried most-specific first.
type Registry struct {
	parsers []Parser
}

func NewRegistry(parsers ...Parser) *Registry {
	return &Registry{parsers: parsers}
}

// DefaultRegistry returns the standard parser order: Text, CData, Comment,
// Metadata, Declaration, Element.
func DefaultRegistry() *Registry {
	return NewRegistry(
		NewTextParser(),
		NewCDataParser(),
		NewCommentParser(),
		NewMetadataParser(),
		NewDeclarationParser(),
		NewElementParser(),
	)
}

// Parse converts text into a document tree using the default registry.
func Parse(text string) (*Document, error) {
	return ParseWith(text, DefaultRegistry())
}

// ParseWith converts text into a document tree using reg's parsers.
func ParseWith(text string, reg *Registry) (*Document, error) {
	doc := NewDocument()
	if _, err := reg.parseInto(text, doc, false); err != nil {
		return nil, err
	}
	return doc, nil
}

// parseInto runs the dispatch loop over text, appending each parsed node to
// parent. With stopAtClose set it returns as soon as the remaining text
// begins a closing tag, leaving that tag unconsumed for the caller.
func (r *Registry) parseInto(text string, parent Container, stopAtClose bool) (string, error) {
	for text != "" {
		if stopAtClose && strings.HasPrefix(text, "</") {
			return text, nil
		}

		parser := r.match(text)
		if parser == nil {
			return text, oops.
				Code("NO_PARSER").
				With("at", snippet(text)).
				Hint("Register a parser that accepts this construct, or sanitize the input").
				Errorf("no parser matches input at %q", snippet(text))
		}

		node, rest, err := parser.Parse(text, r)
		if err != nil {
			return text, err
		}

		if rest == text {
			return text, oops.
				Code("PARSER_STALLED").
				With("parser", fmt.Sprintf("%T", parser)).
				With("at", snippet(text)).
				Errorf("parser consumed no input at %q", snippet(text))
		}

		parent.Add(node)
		text = rest
	}

	return "", nil
}

func (r *Registry) match(text string) Parser {
	for _, parser := range r.parsers {
		if parser.CanParse(text) {
			return parser
		}
	}
	return nil
}

const snippetLen = 24

func snippet(text string) string {
	if len(text) <= snippetLen {
		return text
	}
	return text[:snippetLen] + "..."
}
