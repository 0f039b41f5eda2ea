package ui_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/g5becks/marq/internal/markup"
	"github.com/g5becks/marq/internal/ui"
)

func TestCollect(t *testing.T) {
	input := `<?xml version="1.0"?><!DOCTYPE doc><root a="1">` +
		`<!-- note --><inner>text<![CDATA[raw]]></inner></root>`

	doc, err := markup.Parse(input)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	stats := ui.Collect("doc.xml", doc)

	if stats.Path != "doc.xml" {
		t.Errorf("Path = %q, want %q", stats.Path, "doc.xml")
	}

	if stats.Elements != 2 {
		t.Errorf("Elements = %d, want 2", stats.Elements)
	}

	if stats.TextNodes != 1 {
		t.Errorf("TextNodes = %d, want 1", stats.TextNodes)
	}

	if stats.Comments != 1 {
		t.Errorf("Comments = %d, want 1", stats.Comments)
	}

	if stats.CDataBlocks != 1 {
		t.Errorf("CDataBlocks = %d, want 1", stats.CDataBlocks)
	}

	if stats.Declarations != 1 {
		t.Errorf("Declarations = %d, want 1", stats.Declarations)
	}

	if stats.Metadata != 1 {
		t.Errorf("Metadata = %d, want 1", stats.Metadata)
	}

	if stats.MaxDepth != 3 {
		t.Errorf("MaxDepth = %d, want 3", stats.MaxDepth)
	}

	if stats.Bytes == 0 {
		t.Errorf("Bytes = 0, want serialized length")
	}
}

func TestRenderStatsJSON(t *testing.T) {
	var buf bytes.Buffer
	stats := []ui.DocStats{{Path: "a.xml", Elements: 3}}

	if err := ui.RenderStats(&buf, stats, ui.StatsOptions{JSON: true}); err != nil {
		t.Fatalf("RenderStats() error = %v", err)
	}

	var decoded []ui.DocStats
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if len(decoded) != 1 || decoded[0].Path != "a.xml" || decoded[0].Elements != 3 {
		t.Errorf("decoded = %+v, want original stats", decoded)
	}
}

func TestRenderStatsTable(t *testing.T) {
	var buf bytes.Buffer
	stats := []ui.DocStats{{Path: "a.xml", Elements: 3, MaxDepth: 2}}

	if err := ui.RenderStats(&buf, stats, ui.StatsOptions{}); err != nil {
		t.Fatalf("RenderStats() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"FILE", "a.xml", "ELEMENTS"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderTree(t *testing.T) {
	doc, err := markup.Parse(`<root lang="en">hi<!-- note --></root>`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	var buf bytes.Buffer
	ui.RenderTree(&buf, doc, ui.TreeOptions{NoColor: true})

	out := buf.String()
	for _, want := range []string{"<root>", `lang="en"`, `text "hi"`, `comment "note"`} {
		if !strings.Contains(out, want) {
			t.Errorf("tree output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderTreeCollapsesWhitespace(t *testing.T) {
	doc, err := markup.Parse("<root>  a \n\t b  </root>")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	var buf bytes.Buffer
	ui.RenderTree(&buf, doc, ui.TreeOptions{NoColor: true})

	out := buf.String()
	if !strings.Contains(out, `text "a b"`) {
		t.Errorf("tree output missing %q:\n%s", `text "a b"`, out)
	}
}
