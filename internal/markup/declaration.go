package markup

import "strings"

// DefaultDeclarationType is the type a Declaration carries until one is
// assigned explicitly or parsed from input.
const DefaultDeclarationType = "declaration"

// Pair is a single key/value entry of a Declaration. Pairs keep their
// insertion order.
type Pair struct {
	Key   string
	Value string
}

// Declaration is a processing-instruction style construct such as
// `<?xml version="1.0"?>`. It is always a leaf.
type Declaration struct {
	leaf
	declType string
	pairs    []Pair
}

func NewDeclaration() *Declaration {
	return &Declaration{declType: DefaultDeclarationType}
}

func (d *Declaration) Type() string { return d.declType }

func (d *Declaration) SetType(declType string) error {
	if err := ValidateName(declType); err != nil {
		return err
	}

	d.declType = declType
	return nil
}

// AddPair appends a key/value pair. The key is validated; the value may be
// any string and is escaped on serialization.
func (d *Declaration) AddPair(key, value string) error {
	if err := ValidateName(key); err != nil {
		return err
	}

	d.pairs = append(d.pairs, Pair{Key: key, Value: value})
	return nil
}

// Pair returns the value of the first pair with the given key.
func (d *Declaration) Pair(key string) (string, bool) {
	for _, pair := range d.pairs {
		if pair.Key == key {
			return pair.Value, true
		}
	}
	return "", false
}

// Pairs returns a fresh copy of the pair sequence in insertion order.
func (d *Declaration) Pairs() []Pair {
	pairs := make([]Pair, len(d.pairs))
	copy(pairs, d.pairs)
	return pairs
}

func (d *Declaration) String() string {
	var sb strings.Builder
	d.encode(&sb)
	return sb.String()
}

func (d *Declaration) encode(sb *strings.Builder) {
	sb.WriteString("<?")
	sb.WriteString(d.declType)

	for _, pair := range d.pairs {
		sb.WriteByte(' ')
		sb.WriteString(pair.Key)
		sb.WriteString(`="`)
		sb.WriteString(EscapeValue(pair.Value))
		sb.WriteByte('"')
	}

	sb.WriteString("?>")
}

type DeclarationParser struct{}

func NewDeclarationParser() *DeclarationParser {
	return &DeclarationParser{}
}

func (p *DeclarationParser) CanParse(text string) bool {
	return strings.HasPrefix(text, "<?")
}

// Parse consumes through "?>" (or the whole remainder when unterminated).
// The leading name token becomes the declaration type; the rest of the
// interior is scanned for key="value" pairs and other tokens are ignored.
func (p *DeclarationParser) Parse(text string, _ *Registry) (Node, string, error) {
	body := text[2:]
	rest := ""

	if end := strings.Index(body, "?>"); end >= 0 {
		body, rest = body[:end], body[end+2:]
	}

	decl := NewDeclaration()

	body = skipSpace(body)
	if declType := readName(body); declType != "" {
		decl.declType = declType
		body = body[len(declType):]
	}

	for body != "" {
		body = skipSpace(body)

		key := readName(body)
		if key == "" {
			if body != "" {
				body = body[1:]
			}
			continue
		}

		body = body[len(key):]
		if !strings.HasPrefix(body, `="`) {
			continue
		}

		var value string
		value, body = readQuoted(body[1:])
		decl.pairs = append(decl.pairs, Pair{Key: key, Value: Unescape(value)})
	}

	return decl, rest, nil
}
