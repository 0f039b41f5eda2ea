package markup

import "strings"

// DefaultMetadataType is the type a Metadata node carries until one is
// assigned explicitly.
const DefaultMetadataType = "METADATA"

// Metadata is a "<!...>" construct such as a DOCTYPE. It records the bare
// tokens of the interior ("names") and the double-quoted strings
// ("values") as two independent, append-only sequences in parse order. It
// is always a leaf.
type Metadata struct {
	leaf
	metaType string
	names    []string
	values   []string
}

func NewMetadata() *Metadata {
	return &Metadata{metaType: DefaultMetadataType}
}

func (m *Metadata) Type() string { return m.metaType }

func (m *Metadata) SetType(metaType string) error {
	if err := ValidateName(metaType); err != nil {
		return err
	}

	m.metaType = metaType
	return nil
}

// AddName appends a bare token. Tokens are validated names.
func (m *Metadata) AddName(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	m.names = append(m.names, name)
	return nil
}

// AddValue appends a quoted string value. Values are arbitrary strings.
func (m *Metadata) AddValue(value string) {
	m.values = append(m.values, value)
}

// Names returns a fresh copy of the bare token sequence.
func (m *Metadata) Names() []string {
	names := make([]string, len(m.names))
	copy(names, m.names)
	return names
}

// Values returns a fresh copy of the quoted value sequence.
func (m *Metadata) Values() []string {
	values := make([]string, len(m.values))
	copy(values, m.values)
	return values
}

func (m *Metadata) String() string {
	var sb strings.Builder
	m.encode(&sb)
	return sb.String()
}

// encode writes names first and values after, which matches the DOCTYPE
// convention the construct is parsed from. The type label is metadata about
// the node itself and is not serialized.
func (m *Metadata) encode(sb *strings.Builder) {
	sb.WriteString("<!")

	for i, name := range m.names {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(name)
	}

	for i, value := range m.values {
		if i > 0 || len(m.names) > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte('"')
		sb.WriteString(EscapeValue(value))
		sb.WriteByte('"')
	}

	sb.WriteByte('>')
}

// MetadataParser matches any "<!" construct. It must sit after the comment
// and CData parsers in the registry, which claim the more specific "<!--"
// and "<![CDATA[" prefixes.
type MetadataParser struct{}

func NewMetadataParser() *MetadataParser {
	return &MetadataParser{}
}

func (p *MetadataParser) CanParse(text string) bool {
	return strings.HasPrefix(text, "<!")
}

// Parse consumes through the next '>' outside of quotes, or the whole
// remainder when none follows. Quoted substrings become values; the
// remaining bare tokens become names.
func (p *MetadataParser) Parse(text string, _ *Registry) (Node, string, error) {
	body := text[2:]
	rest := ""

	if end := indexUnquoted(body, '>'); end >= 0 {
		body, rest = body[:end], body[end+1:]
	}

	meta := NewMetadata()

	for body != "" {
		body = skipSpace(body)
		if body == "" {
			break
		}

		if body[0] == '"' {
			var value string
			value, body = readQuoted(body)
			meta.values = append(meta.values, Unescape(value))
			continue
		}

		name := readName(body)
		if name == "" {
			body = body[1:]
			continue
		}

		meta.names = append(meta.names, name)
		body = body[len(name):]
	}

	return meta, rest, nil
}

// indexUnquoted returns the index of the first ch outside double quotes,
// or -1.
func indexUnquoted(text string, ch byte) int {
	inQuote := false
	for i := 0; i < len(text); i++ {
		switch {
		case text[i] == '"':
			inQuote = !inQuote
		case text[i] == ch && !inQuote:
			return i
		}
	}
	return -1
}
