package markup

import (
	"maps"
	"slices"
	"strings"
)

// Element is a named tag with attributes and, optionally, children. The
// attribute mapping is unordered; serialization emits keys sorted so output
// is deterministic.
type Element struct {
	branch
	name  string
	attrs map[string]string
}

// NewElement builds a childless element with a validated name.
func NewElement(name string) (*Element, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	return newElement(name), nil
}

// newElement skips validation; parsing only produces names made of name
// characters, so the check would be redundant there.
func newElement(name string) *Element {
	el := &Element{name: name, attrs: map[string]string{}}
	el.self = el
	return el
}

func (e *Element) Name() string { return e.name }

func (e *Element) SetName(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	e.name = name
	return nil
}

// SetAttr stores an attribute. The key is validated; the value may be any
// string and is stored unescaped.
func (e *Element) SetAttr(key, value string) error {
	if err := ValidateName(key); err != nil {
		return err
	}

	e.attrs[key] = value
	return nil
}

// Attr returns the value of an attribute and whether it is set.
func (e *Element) Attr(key string) (string, bool) {
	value, ok := e.attrs[key]
	return value, ok
}

// DelAttr removes an attribute. Removing an absent key is a no-op.
func (e *Element) DelAttr(key string) {
	delete(e.attrs, key)
}

// Attrs returns a fresh copy of the attribute mapping.
func (e *Element) Attrs() map[string]string {
	return maps.Clone(e.attrs)
}

func (e *Element) String() string {
	var sb strings.Builder
	e.encode(&sb)
	return sb.String()
}

// encode writes the element in self-closing form when it has no children,
// regardless of how the source spelled it. Re-serialization normalizes; it
// is not guaranteed byte-identical to the input.
func (e *Element) encode(sb *strings.Builder) {
	sb.WriteByte('<')
	sb.WriteString(e.name)

	for _, key := range slices.Sorted(maps.Keys(e.attrs)) {
		sb.WriteByte(' ')
		sb.WriteString(key)
		sb.WriteString(`="`)
		sb.WriteString(EscapeValue(e.attrs[key]))
		sb.WriteByte('"')
	}

	if len(e.children) == 0 {
		sb.WriteString("/>")
		return
	}

	sb.WriteByte('>')
	e.encodeChildren(sb)
	sb.WriteString("</")
	sb.WriteString(e.name)
	sb.WriteByte('>')
}

type ElementParser struct{}

func NewElementParser() *ElementParser {
	return &ElementParser{}
}

// CanParse requires '<' followed by a word character, so "<!", "<?", "</",
// and stray '<' never reach the element path.
func (p *ElementParser) CanParse(text string) bool {
	return len(text) >= 2 && text[0] == '<' && isWordByte(text[1])
}

// Parse reads the open tag with its attributes, then recursively parses
// children until a closing tag or the end of input. Any "</...>" token is
// consumed as this element's close without checking the name inside it:
// mismatched and orphaned closing tags are tolerated, not errors. Input
// that runs out mid-element yields the element with whatever was parsed.
func (p *ElementParser) Parse(text string, reg *Registry) (Node, string, error) {
	rest := text[1:]
	name := readName(rest)
	rest = rest[len(name):]

	el := newElement(name)

	rest, selfClosed := p.parseAttrs(el, rest)
	if selfClosed || rest == "" {
		return el, rest, nil
	}

	rest, err := reg.parseInto(rest, el, true)
	if err != nil {
		return nil, text, err
	}

	if strings.HasPrefix(rest, "</") {
		if end := strings.IndexByte(rest, '>'); end >= 0 {
			rest = rest[end+1:]
		} else {
			rest = ""
		}
	}

	return el, rest, nil
}

// parseAttrs consumes attributes up to and including the open tag's
// terminator. It reports whether the tag was self-closing; an exhausted
// input is treated the same way.
func (p *ElementParser) parseAttrs(el *Element, text string) (string, bool) {
	for {
		text = skipSpace(text)

		switch {
		case text == "":
			return "", true
		case strings.HasPrefix(text, "/>"):
			return text[2:], true
		case text[0] == '>':
			return text[1:], false
		}

		key := readName(text)
		if key == "" {
			text = text[1:]
			continue
		}

		text = text[len(key):]
		if strings.HasPrefix(text, `="`) {
			var value string
			value, text = readQuoted(text[1:])
			el.attrs[key] = Unescape(value)
			continue
		}

		// A bare token stores itself as its own value, the boolean
		// attribute convention.
		el.attrs[key] = key
	}
}
