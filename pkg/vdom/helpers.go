package vdom

import (
	"fmt"
	"maps"
)

// Textf creates a formatted text node.
func Textf(format string, args ...any) *VNode {
	return Text(fmt.Sprintf(format, args...))
}

// Show returns node when cond holds and nil otherwise. Nil children are
// dropped, so a hidden node leaves no placeholder behind.
func Show(cond bool, node *VNode) *VNode {
	if cond {
		return node
	}
	return nil
}

// Keyed renders one child per item and stamps each element with the key
// returned by key, so reordering items moves live elements instead of
// rewriting them. Keys must be unique within items. Nil results are
// skipped and text results stay unkeyed.
func Keyed[T any](items []T, key func(T) string, render func(T) *VNode) []*VNode {
	out := make([]*VNode, 0, len(items))
	for _, item := range items {
		n := render(item)
		if n == nil {
			continue
		}
		if n.Kind == KindElement {
			attrs := maps.Clone(n.Attrs)
			if attrs == nil {
				attrs = Attrs{}
			}
			attrs["key"] = Lit(key(item))
			n = &VNode{Kind: KindElement, Tag: n.Tag, Attrs: attrs, Children: n.Children}
		}
		out = append(out, n)
	}
	return out
}

// Keys returns the key of each child, "" for unkeyed children.
func Keys(children []*VNode) []string {
	out := make([]string, len(children))
	for i, c := range children {
		out[i], _ = c.Key()
	}
	return out
}
