// Package convert builds markup trees from other document formats.
package convert

import (
	"bytes"
	"strconv"

	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/parser"

	"github.com/g5becks/marq/internal/markup"
	"github.com/g5becks/marq/internal/scan"
)

// FromMarkdown parses markdown and rebuilds it as a markup tree with
// HTML-shaped elements. YAML frontmatter and a UTF-8 BOM are stripped
// before parsing.
func FromMarkdown(content []byte) (*markup.Document, error) {
	body := stripFrontmatter(scan.StripBOM(content))

	mdParser := parser.NewWithExtensions(parser.CommonExtensions)
	tree := mdParser.Parse(body)

	builder := &treeBuilder{doc: markup.NewDocument()}
	builder.stack = []markup.Container{builder.doc}

	ast.WalkFunc(tree, builder.visit)

	return builder.doc, nil
}

type treeBuilder struct {
	doc   *markup.Document
	stack []markup.Container
}

func (b *treeBuilder) top() markup.Container {
	return b.stack[len(b.stack)-1]
}

func (b *treeBuilder) push(el *markup.Element) {
	b.top().Add(el)
	b.stack = append(b.stack, el)
}

func (b *treeBuilder) pop() {
	if len(b.stack) > 1 {
		b.stack = b.stack[:len(b.stack)-1]
	}
}

// element builds an element with a literal, always-valid name.
func element(name string) *markup.Element {
	el, _ := markup.NewElement(name)
	return el
}

func (b *treeBuilder) visit(node ast.Node, entering bool) ast.WalkStatus {
	switch n := node.(type) {
	case *ast.Text:
		if entering && len(n.Literal) > 0 {
			b.top().Add(markup.NewText(string(n.Literal)))
		}

	case *ast.Softbreak:
		if entering {
			b.top().Add(markup.NewText("\n"))
		}

	case *ast.Hardbreak:
		if entering {
			b.top().Add(element("br"))
		}

	case *ast.Code:
		if entering {
			code := element("code")
			code.Add(markup.NewText(string(n.Literal)))
			b.top().Add(code)
		}

	case *ast.CodeBlock:
		if entering {
			pre := element("pre")
			if lang := string(n.Info); lang != "" {
				_ = pre.SetAttr("lang", lang)
			}
			pre.Add(markup.NewCData(string(n.Literal)))
			b.top().Add(pre)
		}

	case *ast.HorizontalRule:
		if entering {
			b.top().Add(element("hr"))
		}

	case *ast.HTMLSpan:
		b.addRawHTML(entering, n.Literal)

	case *ast.HTMLBlock:
		b.addRawHTML(entering, n.Literal)

	case *ast.Heading:
		b.container(entering, func() *markup.Element {
			return element("h" + strconv.Itoa(n.Level))
		})

	case *ast.Paragraph:
		b.container(entering, func() *markup.Element { return element("p") })

	case *ast.Emph:
		b.container(entering, func() *markup.Element { return element("em") })

	case *ast.Strong:
		b.container(entering, func() *markup.Element { return element("strong") })

	case *ast.Del:
		b.container(entering, func() *markup.Element { return element("del") })

	case *ast.BlockQuote:
		b.container(entering, func() *markup.Element { return element("blockquote") })

	case *ast.Link:
		b.container(entering, func() *markup.Element {
			a := element("a")
			_ = a.SetAttr("href", string(n.Destination))
			return a
		})

	case *ast.Image:
		b.container(entering, func() *markup.Element {
			img := element("img")
			_ = img.SetAttr("src", string(n.Destination))
			return img
		})

	case *ast.List:
		b.container(entering, func() *markup.Element {
			if n.ListFlags&ast.ListTypeOrdered != 0 {
				return element("ol")
			}
			return element("ul")
		})

	case *ast.ListItem:
		b.container(entering, func() *markup.Element { return element("li") })

	case *ast.Table:
		b.container(entering, func() *markup.Element { return element("table") })

	case *ast.TableHeader:
		b.container(entering, func() *markup.Element { return element("thead") })

	case *ast.TableBody:
		b.container(entering, func() *markup.Element { return element("tbody") })

	case *ast.TableRow:
		b.container(entering, func() *markup.Element { return element("tr") })

	case *ast.TableCell:
		b.container(entering, func() *markup.Element {
			if n.IsHeader {
				return element("th")
			}
			return element("td")
		})
	}

	return ast.GoToNext
}

func (b *treeBuilder) container(entering bool, build func() *markup.Element) {
	if entering {
		b.push(build())
		return
	}
	b.pop()
}

// addRawHTML re-parses inline HTML with the tolerant markup parser so it
// lands in the tree as real nodes. Input the parser refuses is kept as
// text.
func (b *treeBuilder) addRawHTML(entering bool, literal []byte) {
	if !entering || len(literal) == 0 {
		return
	}

	doc, err := markup.Parse(string(bytes.TrimSpace(literal)))
	if err != nil {
		b.top().Add(markup.NewText(string(literal)))
		return
	}

	for _, child := range doc.Children() {
		b.top().Add(child)
	}
}

// stripFrontmatter removes a leading "---" delimited YAML block.
func stripFrontmatter(content []byte) []byte {
	if !bytes.HasPrefix(content, []byte("---\n")) && !bytes.HasPrefix(content, []byte("---\r\n")) {
		return content
	}

	start := bytes.Index(content, []byte("\n"))
	if start == -1 {
		return content
	}
	start++

	skipBytes := 5 // "\n---\n"
	end := bytes.Index(content[start:], []byte("\n---\n"))
	if end == -1 {
		end = bytes.Index(content[start:], []byte("\n---\r\n"))
		if end == -1 {
			return content
		}
		skipBytes = 6
	}

	return content[start+end+skipBytes:]
}
