package markup_test

import (
	"testing"

	"github.com/g5becks/marq/internal/markup"
)

func TestEscape(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text untouched", "hello world", "hello world"},
		{"empty", "", ""},
		{"ampersand", "a & b", "a &amp; b"},
		{"angle brackets", "<tag>", "&lt;tag&gt;"},
		{"ampersand before brackets", "&<>", "&amp;&lt;&gt;"},
		{"already escaped gains another level", "&amp;", "&amp;amp;"},
		{"quotes untouched", `say "hi"`, `say "hi"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := markup.Escape(tt.in); got != tt.want {
				t.Errorf("Escape(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestEscapeValue(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"double quote", `a"b`, "a&quot;b"},
		{"apostrophe", "a'b", "a&apos;b"},
		{"newline", "a\nb", "a&#10;b"},
		{"carriage return", "a\rb", "a&#13;b"},
		{"reserved characters first", `<&>"`, "&lt;&amp;&gt;&quot;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := markup.EscapeValue(tt.in); got != tt.want {
				t.Errorf("EscapeValue(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestUnescape(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text untouched", "hello world", "hello world"},
		{"basic entities", "&lt;a&gt; &amp; &quot;b&quot; &apos;c&apos;", `<a> & "b" 'c'`},
		{"ampersand resolved last", "&amp;lt;", "&lt;"},
		{"decimal reference", "&#65;&#66;", "AB"},
		{"decimal newline", "line&#10;break", "line\nbreak"},
		{"hex reference", "&#x48;&#x49;", "HI"},
		{"hex uppercase digits", "&#x1F600;", "\U0001F600"},
		{"multibyte decimal", "&#955;", "λ"},
		{"malformed reference kept", "&#abc;", "&#abc;"},
		{"out of range kept", "&#1114112;", "&#1114112;"},
		{"surrogate kept", "&#xD800;", "&#xD800;"},
		{"bare ampersand kept", "fish & chips", "fish & chips"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := markup.Unescape(tt.in); got != tt.want {
				t.Errorf("Unescape(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestEscapeRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"plain text",
		"a & b < c > d",
		"&amp; already escaped",
		"&#10; literal reference text",
		"mixed <tags> & entities &lt;",
	}

	for _, in := range inputs {
		if got := markup.Unescape(markup.Escape(in)); got != in {
			t.Errorf("Unescape(Escape(%q)) = %q, want original", in, got)
		}
	}
}

func TestEscapeValueRoundTrip(t *testing.T) {
	inputs := []string{
		`attribute with "quotes" and 'apostrophes'`,
		"line\nbreaks\rand & ampersands < >",
	}

	for _, in := range inputs {
		if got := markup.Unescape(markup.EscapeValue(in)); got != in {
			t.Errorf("Unescape(EscapeValue(%q)) = %q, want original", in, got)
		}
	}
}
