package vdom

import "github.com/feather-dev/feather/pkg/dom"

// event creates a handler Attr. The key keeps the on* form so that Props
// and factory-built nodes diff against each other key for key.
func event(name string, handler dom.Handler) Attr {
	return Attr{Key: "on" + name, Value: On(name, handler)}
}

// OnEvent handles an arbitrary event kind.
func OnEvent(name string, handler dom.Handler) Attr { return event(NormalizeEvent(name), handler) }

// Mouse events

// OnClick handles click events.
func OnClick(handler dom.Handler) Attr { return event("click", handler) }

// OnDblClick handles double-click events.
func OnDblClick(handler dom.Handler) Attr { return event("dblclick", handler) }

// OnMouseDown handles mousedown events.
func OnMouseDown(handler dom.Handler) Attr { return event("mousedown", handler) }

// OnMouseUp handles mouseup events.
func OnMouseUp(handler dom.Handler) Attr { return event("mouseup", handler) }

// Keyboard events

// OnKeyDown handles keydown events.
func OnKeyDown(handler dom.Handler) Attr { return event("keydown", handler) }

// OnKeyUp handles keyup events.
func OnKeyUp(handler dom.Handler) Attr { return event("keyup", handler) }

// Form events

// OnInput handles input events (fired when value changes).
func OnInput(handler dom.Handler) Attr { return event("input", handler) }

// OnChange handles change events (fired when value is committed).
func OnChange(handler dom.Handler) Attr { return event("change", handler) }

// OnSubmit handles form submit events.
func OnSubmit(handler dom.Handler) Attr { return event("submit", handler) }

// OnFocusIn handles focusin events (bubbles, unlike focus).
func OnFocusIn(handler dom.Handler) Attr { return event("focusin", handler) }

// OnFocusOut handles focusout events (bubbles, unlike blur).
func OnFocusOut(handler dom.Handler) Attr { return event("focusout", handler) }
