package reconcile

import (
	"maps"
	"slices"

	"github.com/feather-dev/feather/pkg/dom"
	"github.com/feather-dev/feather/pkg/vdom"
)

// Materialize builds the live subtree for v and records the back-references.
// It never fails for a well-formed description; a nil v yields nil.
func (p *Patcher) Materialize(v *vdom.VNode) *dom.Node {
	if v == nil {
		return nil
	}
	if v.Kind == vdom.KindText {
		n := p.doc.CreateTextNode(v.Text)
		p.refs.set(v, n)
		return n
	}

	n := p.doc.CreateElement(v.Tag)
	p.refs.set(v, n)
	for _, key := range v.Attrs.SortedKeys() {
		p.applyAttr(n, key, v.Attrs[key], vdom.AttrValue{}, false)
	}
	for _, c := range v.Children {
		if child := p.Materialize(c); child != nil {
			n.AppendChild(child)
		}
	}
	return n
}

// liveProperties are literals written as live properties on update, so they
// reflect current interactive state rather than the initial declaration.
var liveProperties = map[string]bool{
	"value":   true,
	"checked": true,
}

// applyAttr writes one attribute value. prev is the value being replaced
// (zero when update is false).
func (p *Patcher) applyAttr(n *dom.Node, key string, v, prev vdom.AttrValue, update bool) {
	switch v.Kind {
	case vdom.AttrHandler:
		n.SetHandler(v.Event, v.Handler)
	case vdom.AttrStyle:
		for _, prop := range slices.Sorted(maps.Keys(v.Style)) {
			if update && prev.Kind == vdom.AttrStyle {
				if old, ok := prev.Style[prop]; ok && old == v.Style[prop] {
					continue
				}
			}
			n.SetStyle(prop, v.Style[prop])
		}
	default:
		if update && liveProperties[key] {
			n.SetProperty(key, v.Literal)
			return
		}
		n.SetAttribute(key, v.Literal)
	}
}

// removeAttr undoes one attribute value.
func (p *Patcher) removeAttr(n *dom.Node, key string, v vdom.AttrValue) {
	switch v.Kind {
	case vdom.AttrHandler:
		n.RemoveHandler(v.Event)
	case vdom.AttrStyle:
		for _, prop := range slices.Sorted(maps.Keys(v.Style)) {
			n.RemoveStyle(prop)
		}
	default:
		n.RemoveAttribute(key)
	}
}

// patchAttrs diffs two attribute sets onto n. Unchanged keys are not
// written. Handlers never compare equal and are always rewritten.
func (p *Patcher) patchAttrs(n *dom.Node, prev, next vdom.Attrs) {
	for _, key := range prev.SortedKeys() {
		if _, ok := next[key]; !ok {
			p.removeAttr(n, key, prev[key])
		}
	}
	for _, key := range next.SortedKeys() {
		nv := next[key]
		ov, had := prev[key]
		if had && ov.Equal(nv) {
			continue
		}
		if had {
			switch {
			case ov.Kind != nv.Kind:
				p.removeAttr(n, key, ov)
				had = false
			case ov.Kind == vdom.AttrHandler && ov.Event != nv.Event:
				n.RemoveHandler(ov.Event)
			case ov.Kind == vdom.AttrStyle:
				for _, prop := range slices.Sorted(maps.Keys(ov.Style)) {
					if _, keep := nv.Style[prop]; !keep {
						n.RemoveStyle(prop)
					}
				}
			}
		}
		if !had {
			ov = vdom.AttrValue{}
		}
		p.applyAttr(n, key, nv, ov, true)
	}
}
