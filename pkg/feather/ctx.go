package feather

import (
	"log/slog"

	"github.com/feather-dev/feather/pkg/vdom"
)

// Component is a function component. It receives its attributes and
// children and returns the tree it renders, or nil for nothing.
type Component func(c *Ctx, props vdom.Attrs, children []*vdom.VNode) *vdom.VNode

// Ctx is the render context of one component instance. It is only valid
// during that instance's render.
type Ctx struct {
	root *Root
	inst *instance
}

// Root returns the root this instance is mounted under.
func (c *Ctx) Root() *Root { return c.root }

// H builds an element from a tag, or invokes a component.
//
// A string is forwarded to vdom.H. A Component is rendered as a child
// instance of the caller; its hook state is keyed by call position and
// function, or by its "key" attribute when one is given.
func (c *Ctx) H(tagOrComponent any, attrs any, children ...any) *vdom.VNode {
	switch t := tagOrComponent.(type) {
	case string:
		return vdom.H(t, attrs, children...)
	case Component:
		return c.render(t, attrs, children)
	case func(*Ctx, vdom.Attrs, []*vdom.VNode) *vdom.VNode:
		return c.render(t, attrs, children)
	case *vdom.VNode:
		return t
	}
	c.root.log.Warn("unsupported element type", slog.Any("type", tagOrComponent))
	return nil
}

func (c *Ctx) render(fn Component, attrs any, children []any) *vdom.VNode {
	r, parent := c.root, c.inst
	props := vdom.AttrsOf(attrs)

	key := childKey{fn: funcID(fn), index: parent.callIdx}
	parent.callIdx++
	if k, ok := props["key"]; ok && k.Kind == vdom.AttrLiteral {
		key.key, key.index = k.Literal, -1
		if inst, ok := parent.children[key]; ok && inst.seen == r.gen {
			r.log.Warn("duplicate component key", slog.String("key", k.Literal),
				slog.String("instance", inst.name))
			key.key, key.index = "", parent.callIdx-1
		}
	}

	return r.invoke(r.child(parent, key), fn, props, vdom.Children(children...))
}
