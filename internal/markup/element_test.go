package markup_test

import (
	"strings"
	"testing"

	"github.com/g5becks/marq/internal/markup"
)

func parseElement(t *testing.T, text string) *markup.Element {
	t.Helper()

	doc := parseDoc(t, text)
	if doc.Len() == 0 {
		t.Fatalf("Parse(%q) produced no children", text)
	}

	el, ok := doc.Children()[0].(*markup.Element)
	if !ok {
		t.Fatalf("child is %T, want *markup.Element", doc.Children()[0])
	}
	return el
}

func TestParseElementAttributes(t *testing.T) {
	el := parseElement(t, `<root attr1="value1" attr2="value2"/>`)

	attrs := el.Attrs()
	if len(attrs) != 2 {
		t.Fatalf("Attrs() = %v, want 2 entries", attrs)
	}

	if attrs["attr1"] != "value1" {
		t.Errorf("attr1 = %q, want %q", attrs["attr1"], "value1")
	}

	if attrs["attr2"] != "value2" {
		t.Errorf("attr2 = %q, want %q", attrs["attr2"], "value2")
	}
}

func TestParseElementBareAttribute(t *testing.T) {
	el := parseElement(t, `<input disabled/>`)

	value, ok := el.Attr("disabled")
	if !ok {
		t.Fatalf("Attr(disabled) not set")
	}

	if value != "disabled" {
		t.Errorf("Attr(disabled) = %q, want the attribute's own name", value)
	}
}

func TestParseElementAttributeValueUnescaped(t *testing.T) {
	el := parseElement(t, `<a title="fish &amp; chips &#10;second line"/>`)

	value, _ := el.Attr("title")
	want := "fish & chips \nsecond line"
	if value != want {
		t.Errorf("Attr(title) = %q, want %q", value, want)
	}
}

func TestParseElementLenientClosingTag(t *testing.T) {
	// The closing tag name is not checked against the opening name; any
	// "</...>" token closes the innermost open element.
	doc := parseDoc(t, "<outer><inner>text</wrong></outer>")

	outer := doc.Children()[0].(*markup.Element)
	if outer.Name() != "outer" {
		t.Fatalf("Name() = %q, want %q", outer.Name(), "outer")
	}

	if outer.Len() != 1 {
		t.Fatalf("outer.Len() = %d, want 1", outer.Len())
	}

	inner := outer.Children()[0].(*markup.Element)
	if inner.Name() != "inner" {
		t.Errorf("inner.Name() = %q, want %q", inner.Name(), "inner")
	}

	if inner.Len() != 1 {
		t.Errorf("inner.Len() = %d, want 1", inner.Len())
	}
}

func TestParseElementUnterminatedVariants(t *testing.T) {
	tests := []struct {
		name         string
		in           string
		wantName     string
		wantChildren int
	}{
		{"open tag only", "<root>", "root", 0},
		{"open tag cut mid attribute", `<root attr`, "root", 0},
		{"children but no close", "<root><child/>", "root", 1},
		{"text child no close", "<root>dangling", "root", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el := parseElement(t, tt.in)

			if el.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", el.Name(), tt.wantName)
			}

			if el.Len() != tt.wantChildren {
				t.Errorf("Len() = %d, want %d", el.Len(), tt.wantChildren)
			}
		})
	}
}

func TestParseElementDeepNesting(t *testing.T) {
	doc := parseDoc(t, "<a><b><c><d/></c></b></a>")

	current := doc.Children()[0].(*markup.Element)
	for _, want := range []string{"b", "c", "d"} {
		if current.Len() != 1 {
			t.Fatalf("element %q Len() = %d, want 1", current.Name(), current.Len())
		}

		current = current.Children()[0].(*markup.Element)
		if current.Name() != want {
			t.Fatalf("Name() = %q, want %q", current.Name(), want)
		}
	}

	if current.Len() != 0 {
		t.Errorf("innermost Len() = %d, want 0", current.Len())
	}
}

func TestElementSerializeSortsAttributes(t *testing.T) {
	el := mustElement(t, "item")
	if err := el.SetAttr("zeta", "1"); err != nil {
		t.Fatalf("SetAttr() error = %v", err)
	}
	if err := el.SetAttr("alpha", "2"); err != nil {
		t.Fatalf("SetAttr() error = %v", err)
	}

	want := `<item alpha="2" zeta="1"/>`
	if got := el.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestElementSerializeEscapesAttributeValues(t *testing.T) {
	el := mustElement(t, "a")
	if err := el.SetAttr("title", `say "hi" & bye`); err != nil {
		t.Fatalf("SetAttr() error = %v", err)
	}

	want := `<a title="say &quot;hi&quot; &amp; bye"/>`
	if got := el.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestElementNameValidation(t *testing.T) {
	if _, err := markup.NewElement(""); err == nil {
		t.Errorf("NewElement(\"\") error = nil, want INVALID_NAME")
	}

	el := mustElement(t, "ok")

	if err := el.SetName("not ok"); err == nil {
		t.Errorf("SetName() error = nil, want INVALID_NAME")
	} else if !strings.Contains(err.Error(), "invalid character") {
		t.Errorf("SetName() error = %q, want invalid-character failure", err.Error())
	}

	if el.Name() != "ok" {
		t.Errorf("Name() after failed SetName = %q, want %q", el.Name(), "ok")
	}

	if err := el.SetAttr("bad key", "v"); err == nil {
		t.Errorf("SetAttr() error = nil, want INVALID_NAME")
	}
}

func TestElementDelAttr(t *testing.T) {
	el := parseElement(t, `<a hidden="yes"/>`)

	el.DelAttr("hidden")
	if _, ok := el.Attr("hidden"); ok {
		t.Errorf("Attr(hidden) still set after DelAttr")
	}

	// Deleting an absent key is harmless.
	el.DelAttr("hidden")
}
