package dom

import (
	"maps"
	"slices"
	"strings"
)

// DefaultEventKinds are the kinds a Router subscribes to unless configured
// otherwise.
var DefaultEventKinds = []string{
	"click", "dblclick", "input", "change", "submit",
	"keydown", "keyup", "focusin", "focusout",
}

// Event is an interaction event delivered through the Router.
type Event struct {
	// Type is the normalized event kind ("click", "input").
	Type string

	// Target is the node the event originated at.
	Target *Node

	// CurrentTarget is the node whose handler is running.
	CurrentTarget *Node

	// Value carries the input value for input/change events.
	Value string

	// Data carries extra event fields (key codes, coordinates).
	Data map[string]string
}

// Router delegates events for one document. It holds one subscription per
// event kind and finds handlers by walking ancestors.
type Router struct {
	doc   *Document
	kinds map[string]bool
}

func newRouter(d *Document) *Router {
	r := &Router{doc: d, kinds: make(map[string]bool)}
	r.Listen(DefaultEventKinds...)
	return r
}

// Listen subscribes the router to additional event kinds. Subscribing an
// already subscribed kind is a no-op.
func (r *Router) Listen(kinds ...string) {
	for _, k := range kinds {
		r.kinds[strings.ToLower(k)] = true
	}
}

// Only replaces the subscribed kinds.
func (r *Router) Only(kinds ...string) {
	clear(r.kinds)
	r.Listen(kinds...)
}

// Listening reports whether the router is subscribed to kind.
func (r *Router) Listening(kind string) bool {
	return r.kinds[strings.ToLower(kind)]
}

// Kinds returns the subscribed kinds in sorted order.
func (r *Router) Kinds() []string {
	return slices.Sorted(maps.Keys(r.kinds))
}

// Dispatch delivers ev to the nearest handler for ev.Type, starting at
// ev.Target and walking toward the root. Exactly one handler runs. It
// reports whether a handler was found.
func (r *Router) Dispatch(ev *Event) bool {
	if ev == nil || ev.Target == nil || ev.Target.doc != r.doc {
		return false
	}
	ev.Type = strings.ToLower(ev.Type)
	if !r.kinds[ev.Type] {
		return false
	}
	for n := ev.Target; n != nil; n = n.parent {
		if h, ok := n.handlers[ev.Type]; ok && h != nil {
			ev.CurrentTarget = n
			h(ev)
			return true
		}
	}
	return false
}

// Resolve returns the node whose handler Dispatch would invoke, without
// invoking it.
func (r *Router) Resolve(target *Node, kind string) *Node {
	kind = strings.ToLower(kind)
	if target == nil || !r.kinds[kind] {
		return nil
	}
	for n := target; n != nil; n = n.parent {
		if h, ok := n.handlers[kind]; ok && h != nil {
			return n
		}
	}
	return nil
}
