package vdom

import "strings"

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement VKind = iota // <div>, <button>, etc.
	KindText                 // Plain text node
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	default:
		return "Unknown"
	}
}

// VNode is one node of the tree description.
//
// A VNode is never mutated by the reconciler. A given *VNode must occupy at
// most one position in a rendered tree, because its pointer is the identity
// the live-element table is keyed by.
type VNode struct {
	Kind     VKind    // Node type
	Tag      string   // Element tag name (e.g., "div")
	Attrs    Attrs    // Attributes, handlers and style bundles
	Children []*VNode // Child nodes
	Text     string   // For KindText
}

// Text creates a text node.
func Text(content string) *VNode {
	return &VNode{
		Kind: KindText,
		Text: content,
	}
}

// Element creates an element node from already classified attributes.
// Nil children are dropped.
func Element(tag string, attrs Attrs, children ...*VNode) *VNode {
	node := &VNode{
		Kind:     KindElement,
		Tag:      strings.ToLower(tag),
		Attrs:    attrs,
		Children: make([]*VNode, 0, len(children)),
	}
	for _, c := range children {
		if c != nil {
			node.Children = append(node.Children, c)
		}
	}
	return node
}

// Key returns the node's reconciliation key.
// Only a literal attribute named "key" counts.
func (v *VNode) Key() (string, bool) {
	if v == nil || v.Kind != KindElement {
		return "", false
	}
	a, ok := v.Attrs["key"]
	if !ok || a.Kind != AttrLiteral {
		return "", false
	}
	return a.Literal, true
}

// SameType reports whether prev and next can share one live element:
// text nodes with the same value, or elements with the same tag.
func SameType(prev, next *VNode) bool {
	if prev == nil || next == nil || prev.Kind != next.Kind {
		return false
	}
	if prev.Kind == KindText {
		return prev.Text == next.Text
	}
	return prev.Tag == next.Tag
}

// IsInteractive returns true if this node has event handlers.
func (v *VNode) IsInteractive() bool {
	if v == nil || v.Kind != KindElement {
		return false
	}
	for _, a := range v.Attrs {
		if a.Kind == AttrHandler {
			return true
		}
	}
	return false
}

// Count returns the number of nodes in the subtree rooted at v.
func (v *VNode) Count() int {
	if v == nil {
		return 0
	}
	n := 1
	for _, c := range v.Children {
		n += c.Count()
	}
	return n
}
