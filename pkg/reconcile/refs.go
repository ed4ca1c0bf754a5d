package reconcile

import (
	"github.com/feather-dev/feather/pkg/dom"
	"github.com/feather-dev/feather/pkg/vdom"
)

// Refs maps description nodes to the live nodes they produced. Each entry
// is set once at materialization and moved, never recreated, when an update
// reuses the live node.
type Refs struct {
	m map[*vdom.VNode]*dom.Node
}

// NewRefs creates an empty table.
func NewRefs() *Refs {
	return &Refs{m: make(map[*vdom.VNode]*dom.Node)}
}

// Get returns the live node for v, or nil.
func (r *Refs) Get(v *vdom.VNode) *dom.Node {
	if v == nil {
		return nil
	}
	return r.m[v]
}

// Len returns the number of tracked description nodes.
func (r *Refs) Len() int { return len(r.m) }

func (r *Refs) set(v *vdom.VNode, n *dom.Node) { r.m[v] = n }

// transfer hands old's live node to next.
func (r *Refs) transfer(old, next *vdom.VNode) {
	if old == next {
		return
	}
	if n, ok := r.m[old]; ok {
		r.m[next] = n
		delete(r.m, old)
	}
}

// forget drops the entries of v and its subtree that point into gone, the
// live subtree just taken out of the document. A description node reused
// elsewhere in the next tree keeps the entry it was given there.
func (r *Refs) forget(v *vdom.VNode, gone *dom.Node) {
	if v == nil || gone == nil {
		return
	}
	if n, ok := r.m[v]; ok && within(n, gone) {
		delete(r.m, v)
	}
	for _, c := range v.Children {
		r.forget(c, gone)
	}
}

// within reports whether n is root or one of its descendants.
func within(n, root *dom.Node) bool {
	for ; n != nil; n = n.Parent() {
		if n == root {
			return true
		}
	}
	return false
}
