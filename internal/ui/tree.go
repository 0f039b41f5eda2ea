package ui

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/g5becks/marq/internal/markup"
)

const treeIndent = "  "

// TreeOptions controls tree rendering.
type TreeOptions struct {
	NoColor bool
}

// RenderTree writes an indented outline of a document's node structure,
// one node per line.
func RenderTree(w io.Writer, doc *markup.Document, opts TreeOptions) {
	elementColor := color.New(color.FgCyan, color.Bold)
	attrColor := color.New(color.FgYellow)
	kindColor := color.New(color.FgGreen)

	if opts.NoColor {
		elementColor.DisableColor()
		attrColor.DisableColor()
		kindColor.DisableColor()
	}

	var render func(nodes []markup.Node, depth int)
	render = func(nodes []markup.Node, depth int) {
		indent := strings.Repeat(treeIndent, depth)

		for _, node := range nodes {
			switch n := node.(type) {
			case *markup.Element:
				line := indent + elementColor.Sprintf("<%s>", n.Name())
				if attrs := formatAttrs(n, attrColor); attrs != "" {
					line += " " + attrs
				}
				_, _ = fmt.Fprintln(w, line)
				render(n.Children(), depth+1)
			case *markup.Text:
				_, _ = fmt.Fprintf(w, "%s%s %s\n", indent, kindColor.Sprint("text"), summarize(n.Content()))
			case *markup.Comment:
				_, _ = fmt.Fprintf(w, "%s%s %s\n", indent, kindColor.Sprint("comment"), summarize(n.Content()))
			case *markup.CData:
				_, _ = fmt.Fprintf(w, "%s%s %s\n", indent, kindColor.Sprint("cdata"), summarize(n.Content()))
			case *markup.Declaration:
				_, _ = fmt.Fprintf(w, "%s%s %s\n", indent, kindColor.Sprint("declaration"), n.Type())
			case *markup.Metadata:
				_, _ = fmt.Fprintf(w, "%s%s %s\n", indent, kindColor.Sprint("metadata"), strings.Join(n.Names(), " "))
			}
		}
	}

	render(doc.Children(), 0)
}

func formatAttrs(el *markup.Element, attrColor *color.Color) string {
	attrs := el.Attrs()
	if len(attrs) == 0 {
		return ""
	}

	keys := make([]string, 0, len(attrs))
	for key := range attrs {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, attrColor.Sprintf("%s=%q", key, attrs[key]))
	}

	return strings.Join(parts, " ")
}

const summaryLen = 40

func summarize(content string) string {
	content = strings.Join(strings.Fields(content), " ")
	if len(content) > summaryLen {
		return fmt.Sprintf("%q...", content[:summaryLen])
	}
	return fmt.Sprintf("%q", content)
}
