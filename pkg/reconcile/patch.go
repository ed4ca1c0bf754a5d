package reconcile

import (
	"github.com/feather-dev/feather/pkg/dom"
	"github.com/feather-dev/feather/pkg/vdom"
)

// NoIndex is passed to Patch when the node has no position to honor.
const NoIndex = -1

// Patcher reconciles descriptions against one document.
// It is not safe for concurrent use.
type Patcher struct {
	doc  *dom.Document
	refs *Refs
}

// NewPatcher creates a Patcher writing to doc and recording into refs.
func NewPatcher(doc *dom.Document, refs *Refs) *Patcher {
	if refs == nil {
		refs = NewRefs()
	}
	return &Patcher{doc: doc, refs: refs}
}

// Refs returns the back-reference table.
func (p *Patcher) Refs() *Refs { return p.refs }

// Patch moves parent's live child for prev to represent next, returning the
// live node now representing next (nil when next is nil).
//
//  1. prev nil: materialize next; insert at index if a child occupies it,
//     else append.
//  2. next nil: remove prev's live node.
//  3. different tag, kind, or text value: materialize next and replace.
//  4. equal text: reuse the live node untouched.
//  5. same tag: reuse the live node, diff attributes, patch children.
func (p *Patcher) Patch(parent *dom.Node, prev, next *vdom.VNode, index int) *dom.Node {
	if prev == nil && next == nil {
		return nil
	}

	if prev == nil {
		return p.create(parent, next, index)
	}

	live := p.refs.Get(prev)

	if next == nil {
		if live != nil {
			parent.RemoveChild(live)
		}
		p.refs.forget(prev, live)
		return nil
	}

	// prev was never materialized; nothing to reuse.
	if live == nil {
		return p.create(parent, next, index)
	}

	if !vdom.SameType(prev, next) {
		fresh := p.Materialize(next)
		if !parent.ReplaceChild(fresh, live) {
			p.insert(parent, fresh, index)
		}
		p.refs.forget(prev, live)
		return fresh
	}

	p.refs.transfer(prev, next)
	if next.Kind == vdom.KindText {
		return live
	}

	p.patchAttrs(live, prev.Attrs, next.Attrs)
	p.PatchChildren(live, prev.Children, next.Children)
	return live
}

func (p *Patcher) create(parent *dom.Node, next *vdom.VNode, index int) *dom.Node {
	n := p.Materialize(next)
	p.insert(parent, n, index)
	return n
}

// insert places n at index, appending when nothing occupies the index.
func (p *Patcher) insert(parent, n *dom.Node, index int) {
	if ref := parent.ChildAt(index); index >= 0 && ref != nil {
		parent.InsertBefore(n, ref)
		return
	}
	parent.AppendChild(n)
}
