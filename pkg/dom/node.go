package dom

import (
	"maps"
	"slices"
)

// NodeType distinguishes elements from text nodes.
type NodeType uint8

const (
	ElementNode NodeType = iota
	TextNode
)

// String returns the string representation of the NodeType.
func (t NodeType) String() string {
	switch t {
	case ElementNode:
		return "Element"
	case TextNode:
		return "Text"
	default:
		return "Unknown"
	}
}

// Handler is an event handler stored in a node's handler table.
type Handler func(*Event)

// Node is a live element or text node.
type Node struct {
	id   uint64
	doc  *Document
	typ  NodeType
	tag  string
	text string

	parent   *Node
	children []*Node

	attrs    map[string]string
	props    map[string]string
	style    map[string]string
	handlers map[string]Handler
}

// ID returns the node's document-unique identifier.
func (n *Node) ID() uint64 { return n.id }

// Type returns the node type.
func (n *Node) Type() NodeType { return n.typ }

// Tag returns the element tag, or "#text" for text nodes.
func (n *Node) Tag() string {
	if n.typ == TextNode {
		return "#text"
	}
	return n.tag
}

// Text returns the value of a text node.
func (n *Node) Text() string { return n.text }

// Document returns the owning document.
func (n *Node) Document() *Document { return n.doc }

// Parent returns the parent node, or nil if detached or the root.
func (n *Node) Parent() *Node { return n.parent }

// Children returns a copy of the child list.
func (n *Node) Children() []*Node { return slices.Clone(n.children) }

// ChildCount returns the number of children.
func (n *Node) ChildCount() int { return len(n.children) }

// ChildAt returns the child at index i, or nil when i is out of range.
func (n *Node) ChildAt(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// IndexOf returns the position of child, or -1.
func (n *Node) IndexOf(child *Node) int {
	return slices.Index(n.children, child)
}

// Contains reports whether child is a direct child of n.
func (n *Node) Contains(child *Node) bool {
	return child != nil && child.parent == n
}

// TextContent returns the concatenated text of the subtree.
func (n *Node) TextContent() string {
	if n.typ == TextNode {
		return n.text
	}
	var out []byte
	for _, c := range n.children {
		out = append(out, c.TextContent()...)
	}
	return string(out)
}

// AppendChild attaches child as the last child of n. A child that is
// attached elsewhere is detached first.
func (n *Node) AppendChild(child *Node) {
	if child.parent == n {
		n.moveChild(child, len(n.children)-1)
		return
	}
	n.detach(child)
	n.children = append(n.children, child)
	child.parent = n
	n.doc.register(child)
	n.doc.emit(Mutation{Op: OpAppend, Target: child.id, Parent: n.id, Index: len(n.children) - 1, Node: child})
}

// InsertBefore inserts child before ref. A nil or foreign ref appends.
// Inserting a node that is already a child of n moves it.
func (n *Node) InsertBefore(child, ref *Node) {
	if child == ref {
		return
	}
	if ref == nil || ref.parent != n {
		n.AppendChild(child)
		return
	}
	if child.parent == n {
		from := n.IndexOf(child)
		to := n.IndexOf(ref)
		if from < to {
			to--
		}
		n.moveChild(child, to)
		return
	}
	n.detach(child)
	idx := n.IndexOf(ref)
	n.children = slices.Insert(n.children, idx, child)
	child.parent = n
	n.doc.register(child)
	n.doc.emit(Mutation{Op: OpInsert, Target: child.id, Parent: n.id, Index: idx, Node: child})
}

// moveChild repositions an existing child to index to.
func (n *Node) moveChild(child *Node, to int) {
	from := n.IndexOf(child)
	if from == to || from < 0 {
		return
	}
	n.children = slices.Delete(n.children, from, from+1)
	n.children = slices.Insert(n.children, to, child)
	n.doc.emit(Mutation{Op: OpMove, Target: child.id, Parent: n.id, Index: to})
}

// RemoveChild detaches child from n. It reports false when child is not a
// child of n.
func (n *Node) RemoveChild(child *Node) bool {
	idx := n.IndexOf(child)
	if idx < 0 {
		return false
	}
	n.children = slices.Delete(n.children, idx, idx+1)
	child.parent = nil
	n.doc.unregister(child)
	n.doc.emit(Mutation{Op: OpRemove, Target: child.id, Parent: n.id, Index: idx})
	return true
}

// ReplaceChild puts next where old is. It reports false when old is not a
// child of n.
func (n *Node) ReplaceChild(next, old *Node) bool {
	if n.IndexOf(old) < 0 {
		return false
	}
	if next == old {
		return true
	}
	n.detach(next)
	idx := n.IndexOf(old)
	n.children[idx] = next
	next.parent = n
	old.parent = nil
	n.doc.unregister(old)
	n.doc.register(next)
	n.doc.emit(Mutation{Op: OpReplace, Target: old.id, Parent: n.id, Index: idx, Node: next})
	return true
}

// detach removes child from its current parent, if any.
func (n *Node) detach(child *Node) {
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
}

// Attribute returns a literal attribute.
func (n *Node) Attribute(key string) (string, bool) {
	v, ok := n.attrs[key]
	return v, ok
}

// Attributes returns a copy of the literal attributes.
func (n *Node) Attributes() map[string]string { return maps.Clone(n.attrs) }

// SetAttribute sets a literal attribute.
func (n *Node) SetAttribute(key, value string) {
	if n.attrs == nil {
		n.attrs = make(map[string]string)
	}
	n.attrs[key] = value
	n.doc.emit(Mutation{Op: OpSetAttr, Target: n.id, Key: key, Value: value})
}

// RemoveAttribute removes a literal attribute.
func (n *Node) RemoveAttribute(key string) {
	if _, ok := n.attrs[key]; !ok {
		return
	}
	delete(n.attrs, key)
	n.doc.emit(Mutation{Op: OpRemoveAttr, Target: n.id, Key: key})
}

// Property returns a live property such as value or checked.
func (n *Node) Property(key string) (string, bool) {
	v, ok := n.props[key]
	return v, ok
}

// SetProperty sets a live property. Properties reflect current interactive
// state and take precedence over the attribute of the same name.
func (n *Node) SetProperty(key, value string) {
	if n.props == nil {
		n.props = make(map[string]string)
	}
	n.props[key] = value
	n.doc.emit(Mutation{Op: OpSetProp, Target: n.id, Key: key, Value: value})
}

// Style returns a copy of the live style.
func (n *Node) Style() map[string]string { return maps.Clone(n.style) }

// SetStyle sets one style property.
func (n *Node) SetStyle(prop, value string) {
	if n.style == nil {
		n.style = make(map[string]string)
	}
	n.style[prop] = value
	n.doc.emit(Mutation{Op: OpSetStyle, Target: n.id, Key: prop, Value: value})
}

// RemoveStyle removes one style property.
func (n *Node) RemoveStyle(prop string) {
	if _, ok := n.style[prop]; !ok {
		return
	}
	delete(n.style, prop)
	n.doc.emit(Mutation{Op: OpRemoveStyle, Target: n.id, Key: prop})
}

// ClearStyle removes every style property.
func (n *Node) ClearStyle() {
	for _, prop := range slices.Sorted(maps.Keys(n.style)) {
		n.RemoveStyle(prop)
	}
}

// Handler returns the handler registered for an event kind.
func (n *Node) Handler(kind string) (Handler, bool) {
	h, ok := n.handlers[kind]
	return h, ok
}

// SetHandler registers h for kind, replacing any previous handler.
func (n *Node) SetHandler(kind string, h Handler) {
	if n.handlers == nil {
		n.handlers = make(map[string]Handler)
	}
	n.handlers[kind] = h
	n.doc.emit(Mutation{Op: OpSetHandler, Target: n.id, Key: kind})
}

// RemoveHandler clears the handler for kind.
func (n *Node) RemoveHandler(kind string) {
	if _, ok := n.handlers[kind]; !ok {
		return
	}
	delete(n.handlers, kind)
	n.doc.emit(Mutation{Op: OpRemoveHandler, Target: n.id, Key: kind})
}

// HandlerKinds returns the registered event kinds in sorted order.
func (n *Node) HandlerKinds() []string {
	return slices.Sorted(maps.Keys(n.handlers))
}
