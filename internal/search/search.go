// Package search finds elements inside parsed markup documents.
package search

import (
	"strings"

	"github.com/g5becks/marq/internal/markup"
)

// Options selects which elements match. Zero-valued criteria are ignored;
// all set criteria must match.
type Options struct {
	// Name matches the element name exactly.
	Name string
	// Attr requires the attribute key to be present.
	Attr string
	// Text matches a substring of the element's direct text content.
	Text string
	// Limit caps the number of results; 0 means unlimited.
	Limit int
}

// Result is one matching element.
type Result struct {
	Path    string            `json:"path"`
	Element string            `json:"element"`
	Depth   int               `json:"depth"`
	Attrs   map[string]string `json:"attrs,omitempty"`
	Snippet string            `json:"snippet,omitempty"`
}

// Document walks one parsed document and returns its matching elements in
// document order.
func Document(path string, doc *markup.Document, opts Options) []Result {
	var results []Result
	walk(path, doc.Children(), 1, opts, &results)
	return results
}

func walk(path string, nodes []markup.Node, depth int, opts Options, results *[]Result) {
	for _, node := range nodes {
		el, ok := node.(*markup.Element)
		if !ok {
			continue
		}

		if opts.Limit > 0 && len(*results) >= opts.Limit {
			return
		}

		if matches(el, opts) {
			*results = append(*results, Result{
				Path:    path,
				Element: el.Name(),
				Depth:   depth,
				Attrs:   el.Attrs(),
				Snippet: directText(el),
			})
		}

		walk(path, el.Children(), depth+1, opts, results)
	}
}

func matches(el *markup.Element, opts Options) bool {
	if opts.Name != "" && el.Name() != opts.Name {
		return false
	}

	if opts.Attr != "" {
		if _, ok := el.Attr(opts.Attr); !ok {
			return false
		}
	}

	if opts.Text != "" && !strings.Contains(directText(el), opts.Text) {
		return false
	}

	return true
}

// directText concatenates the element's immediate text children,
// whitespace-normalized.
func directText(el *markup.Element) string {
	var parts []string
	for _, child := range el.Children() {
		if text, ok := child.(*markup.Text); ok {
			parts = append(parts, text.Content())
		}
	}

	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}
