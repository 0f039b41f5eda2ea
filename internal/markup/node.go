package markup

import "strings"

// Node is a single element of a parsed markup tree. The parent link is a
// back-reference only; ownership always runs parent to child.
type Node interface {
	// Parent returns the node that currently owns this one, or nil for a
	// detached node and for the document root.
	Parent() Node

	// String returns the serialized markup for this node and, for
	// container nodes, everything beneath it.
	String() string

	setParent(parent Node)
	encode(sb *strings.Builder)
}

// Container is a Node that owns an ordered sequence of children. Document
// and Element are the only containers; every other node kind is a leaf.
type Container interface {
	Node

	// Add appends child to this container and returns the child. A child
	// that already has a parent is detached from it first, so a node is
	// owned by at most one container at a time. Adding a container to
	// itself or to one of its own descendants is a no-op; a node never
	// contains itself.
	Add(child Node) Node

	// Remove detaches child from this container. It is a no-op when child
	// is not currently one of this container's children.
	Remove(child Node)

	// Children returns a fresh copy of the child sequence in order.
	Children() []Node

	// Len returns the number of direct children.
	Len() int
}

// branch carries the shared container state. self points at the embedding
// node so children record the real container, not the embedded struct, as
// their parent.
type branch struct {
	self     Node
	parent   Node
	children []Node
}

func (b *branch) Parent() Node { return b.parent }

func (b *branch) setParent(parent Node) { b.parent = parent }

func (b *branch) Add(child Node) Node {
	// Refuse links that would cycle: child must not be this container or
	// any of its ancestors.
	for node := b.self; node != nil; node = node.Parent() {
		if node == child {
			return child
		}
	}

	if prior := child.Parent(); prior != nil {
		if container, ok := prior.(Container); ok {
			container.Remove(child)
		}
	}

	b.children = append(b.children, child)
	child.setParent(b.self)
	return child
}

func (b *branch) Remove(child Node) {
	if child.Parent() != b.self {
		return
	}

	for i, current := range b.children {
		if current == child {
			b.children = append(b.children[:i], b.children[i+1:]...)
			child.setParent(nil)
			return
		}
	}
}

func (b *branch) Children() []Node {
	children := make([]Node, len(b.children))
	copy(children, b.children)
	return children
}

func (b *branch) Len() int { return len(b.children) }

func (b *branch) encodeChildren(sb *strings.Builder) {
	for _, child := range b.children {
		child.encode(sb)
	}
}

// leaf carries the parent back-reference for childless node kinds.
type leaf struct {
	parent Node
}

func (l *leaf) Parent() Node { return l.parent }

func (l *leaf) setParent(parent Node) { l.parent = parent }

// Document is the root container produced by Parse. It has no markup of its
// own; its serialization is the concatenation of its children.
type Document struct {
	branch
}

func NewDocument() *Document {
	doc := &Document{}
	doc.self = doc
	return doc
}

func (d *Document) String() string {
	var sb strings.Builder
	d.encode(&sb)
	return sb.String()
}

func (d *Document) encode(sb *strings.Builder) {
	d.encodeChildren(sb)
}
