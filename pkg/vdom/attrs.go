package vdom

import (
	"fmt"
	"maps"
	"sort"
	"strconv"
	"strings"

	"github.com/feather-dev/feather/pkg/dom"
)

// AttrKind discriminates attribute values.
type AttrKind uint8

const (
	AttrLiteral AttrKind = iota // Written as a literal attribute
	AttrHandler                 // Stored in the element's handler table
	AttrStyle                   // Merged onto the element's live style
)

// String returns the string representation of the AttrKind.
func (k AttrKind) String() string {
	switch k {
	case AttrLiteral:
		return "Literal"
	case AttrHandler:
		return "Handler"
	case AttrStyle:
		return "Style"
	default:
		return "Unknown"
	}
}

// StyleMap is a bundle of style properties.
type StyleMap map[string]string

// AttrValue is one attribute value. Exactly one of Literal, Handler or
// Style is meaningful, selected by Kind.
type AttrValue struct {
	Kind    AttrKind
	Literal string
	Event   string // Normalized event kind, for AttrHandler
	Handler dom.Handler
	Style   StyleMap
}

// Lit creates a literal attribute value.
func Lit(s string) AttrValue {
	return AttrValue{Kind: AttrLiteral, Literal: s}
}

// On creates a handler value for the given event kind ("click", "input").
func On(event string, h dom.Handler) AttrValue {
	return AttrValue{Kind: AttrHandler, Event: strings.ToLower(event), Handler: h}
}

// StyleOf creates a style bundle value. The map is copied.
func StyleOf(s StyleMap) AttrValue {
	return AttrValue{Kind: AttrStyle, Style: maps.Clone(s)}
}

// Equal reports whether two values would produce the same live state.
// Handlers are functions and never compare equal.
func (v AttrValue) Equal(o AttrValue) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case AttrLiteral:
		return v.Literal == o.Literal
	case AttrStyle:
		return maps.Equal(v.Style, o.Style)
	default:
		return false
	}
}

// Attrs maps attribute keys to classified values.
type Attrs map[string]AttrValue

// SortedKeys returns the attribute keys in lexical order.
func (a Attrs) SortedKeys() []string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Props is the loose attribute form accepted by H.
// Values are classified by ToAttrs.
type Props map[string]any

// ToAttrs classifies every prop into an AttrValue.
func (p Props) ToAttrs() Attrs {
	if len(p) == 0 {
		return Attrs{}
	}
	out := make(Attrs, len(p))
	for k, v := range p {
		if v == nil {
			continue
		}
		out[k] = Classify(k, v)
	}
	return out
}

// NormalizeEvent strips an "on" prefix and lowercases the event kind:
// "onClick" and "click" both become "click".
func NormalizeEvent(name string) string {
	if isHandlerKey(name) {
		name = name[2:]
	}
	return strings.ToLower(name)
}

// isHandlerKey returns true if the key names an event handler (starts with "on").
// Case-insensitive to catch onclick, ONCLICK, onClick, OnLoad, etc.
func isHandlerKey(key string) bool {
	return len(key) > 2 && strings.EqualFold(key[:2], "on")
}

// Classify decides the AttrValue kind for a raw value under key.
//
// Functions under an on* key become handlers, StyleMap and map[string]string
// become style bundles, and everything else becomes a literal. Values of an
// unsupported kind are formatted and kept as literals rather than rejected.
func Classify(key string, v any) AttrValue {
	switch val := v.(type) {
	case AttrValue:
		return val
	case string:
		return Lit(val)
	case StyleMap:
		return StyleOf(val)
	case map[string]string:
		return StyleOf(val)
	case bool:
		return Lit(strconv.FormatBool(val))
	case int:
		return Lit(strconv.Itoa(val))
	case int64:
		return Lit(strconv.FormatInt(val, 10))
	case float64:
		return Lit(strconv.FormatFloat(val, 'f', -1, 64))
	case fmt.Stringer:
		return Lit(val.String())
	}

	if isHandlerKey(key) {
		if h := asHandler(v); h != nil {
			return AttrValue{Kind: AttrHandler, Event: NormalizeEvent(key), Handler: h}
		}
	}
	return Lit(fmt.Sprintf("%v", v))
}

// asHandler adapts the supported handler signatures.
func asHandler(v any) dom.Handler {
	switch h := v.(type) {
	case dom.Handler:
		return h
	case func(*dom.Event):
		return h
	case func():
		return func(*dom.Event) { h() }
	}
	return nil
}

// AttrsOf converts any attribute mapping H accepts into Attrs.
// The result is always a fresh map.
func AttrsOf(attrs any) Attrs { return toAttrs(attrs) }

// toAttrs accepts the attribute argument forms H supports.
func toAttrs(attrs any) Attrs {
	switch a := attrs.(type) {
	case nil:
		return Attrs{}
	case Attrs:
		if a == nil {
			return Attrs{}
		}
		return maps.Clone(a)
	case Props:
		return a.ToAttrs()
	case map[string]any:
		return Props(a).ToAttrs()
	case []Attr:
		out := make(Attrs, len(a))
		for _, at := range a {
			if !at.IsEmpty() {
				out[at.Key] = at.Value
			}
		}
		return out
	}
	return Attrs{}
}
