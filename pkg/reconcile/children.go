package reconcile

import (
	"github.com/feather-dev/feather/pkg/dom"
	"github.com/feather-dev/feather/pkg/vdom"
)

type keyedChild struct {
	node  *vdom.VNode
	index int
}

// PatchChildren reconciles parent's children from prev to next.
//
// A keyed next child reuses the prev child with the same key and is moved
// into place if needed. A keyed child without a match is created; it is
// never paired with an unkeyed sibling. An unkeyed child is patched against
// the prev child at the same index when that child is unkeyed and unused.
// Prev children left unused are removed, last first.
func (p *Patcher) PatchChildren(parent *dom.Node, prev, next []*vdom.VNode) {
	keyed := make(map[string]keyedChild)
	for i, c := range prev {
		if k, ok := c.Key(); ok {
			keyed[k] = keyedChild{node: c, index: i}
		}
	}
	used := make([]bool, len(prev))

	// Patching can hand a reused description node a different live node, so
	// removal works from the live nodes prev had before this pass.
	olds := make([]*dom.Node, len(prev))
	for i, c := range prev {
		olds[i] = p.refs.Get(c)
	}
	placed := make(map[*dom.Node]bool, len(next))

	pos := 0
	for _, nc := range next {
		if nc == nil {
			continue
		}
		var live *dom.Node
		if k, ok := nc.Key(); ok {
			if m, found := keyed[k]; found && !used[m.index] {
				used[m.index] = true
				live = p.Patch(parent, m.node, nc, pos)
			} else {
				live = p.Patch(parent, nil, nc, pos)
			}
		} else if p.positional(prev, used, pos) {
			used[pos] = true
			live = p.Patch(parent, prev[pos], nc, pos)
		} else {
			live = p.Patch(parent, nil, nc, pos)
		}
		place(parent, live, pos)
		if live != nil {
			placed[live] = true
		}
		pos++
	}

	for i := len(prev) - 1; i >= 0; i-- {
		old := olds[i]
		if used[i] || old == nil || placed[old] {
			continue
		}
		if parent.Contains(old) {
			parent.RemoveChild(old)
		}
		p.refs.forget(prev[i], old)
	}
}

// positional reports whether prev[i] can be matched by position.
func (p *Patcher) positional(prev []*vdom.VNode, used []bool, i int) bool {
	if i >= len(prev) || used[i] || prev[i] == nil {
		return false
	}
	_, keyed := prev[i].Key()
	return !keyed
}

// place moves live to index i unless it is already there.
func place(parent, live *dom.Node, i int) {
	if live == nil || parent.ChildAt(i) == live {
		return
	}
	parent.InsertBefore(live, parent.ChildAt(i))
}
