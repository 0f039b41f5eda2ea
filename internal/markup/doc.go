// Package markup parses loosely structured XML-like markup into a tree of
// typed nodes and serializes such trees back to text. It is a tolerant,
// best-effort structural parser: unterminated constructs and mismatched
// closing tags are accepted, not rejected.
package markup
