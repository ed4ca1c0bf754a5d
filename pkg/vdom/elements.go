package vdom

import (
	"fmt"
	"strconv"
)

// H builds an element from a tag, an attribute mapping and children.
//
// attrs may be nil, Attrs, Props, map[string]any or []Attr. Children may be
// *VNode, []*VNode, strings, numbers, or nested []any; nil entries are
// dropped and strings and numbers become text nodes. Function components
// are invoked through feather.Ctx.H, which forwards plain tags here.
func H(tag string, attrs any, children ...any) *VNode {
	node := Element(tag, toAttrs(attrs))
	for _, c := range children {
		node.Children = appendChild(node.Children, c)
	}
	return node
}

// Children flattens child arguments the way H does.
func Children(args ...any) []*VNode {
	var out []*VNode
	for _, c := range args {
		out = appendChild(out, c)
	}
	return out
}

// appendChild flattens one child argument onto children.
func appendChild(children []*VNode, child any) []*VNode {
	switch v := child.(type) {
	case nil:
		return children
	case *VNode:
		if v != nil {
			children = append(children, v)
		}
	case []*VNode:
		for _, c := range v {
			if c != nil {
				children = append(children, c)
			}
		}
	case []any:
		for _, c := range v {
			children = appendChild(children, c)
		}
	case string:
		children = append(children, Text(v))
	case int:
		children = append(children, Text(strconv.Itoa(v)))
	case int64:
		children = append(children, Text(strconv.FormatInt(v, 10)))
	case float64:
		children = append(children, Text(strconv.FormatFloat(v, 'f', -1, 64)))
	case fmt.Stringer:
		children = append(children, Text(v.String()))
	default:
		children = append(children, Text(fmt.Sprintf("%v", v)))
	}
	return children
}

// createElement creates a new VNode with the given tag and arguments.
// Arguments can be: nil, Attr, []Attr, Attrs, Props, or any child form H accepts.
func createElement(tag string, args []any) *VNode {
	node := Element(tag, make(Attrs))

	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			// Ignore nil (allows conditional attributes)
			continue
		case Attr:
			if !v.IsEmpty() {
				node.Attrs[v.Key] = v.Value
			}
		case []Attr:
			for _, a := range v {
				if !a.IsEmpty() {
					node.Attrs[a.Key] = a.Value
				}
			}
		case Attrs:
			for k, a := range v {
				node.Attrs[k] = a
			}
		case Props:
			for k, a := range v.ToAttrs() {
				node.Attrs[k] = a
			}
		default:
			node.Children = appendChild(node.Children, v)
		}
	}

	return node
}

// Content sectioning elements

func Header(args ...any) *VNode  { return createElement("header", args) }
func Footer(args ...any) *VNode  { return createElement("footer", args) }
func Main(args ...any) *VNode    { return createElement("main", args) }
func Nav(args ...any) *VNode     { return createElement("nav", args) }
func Section(args ...any) *VNode { return createElement("section", args) }
func H1(args ...any) *VNode      { return createElement("h1", args) }
func H2(args ...any) *VNode      { return createElement("h2", args) }
func H3(args ...any) *VNode      { return createElement("h3", args) }

// Text content elements

func Div(args ...any) *VNode    { return createElement("div", args) }
func P(args ...any) *VNode      { return createElement("p", args) }
func Span(args ...any) *VNode   { return createElement("span", args) }
func Pre(args ...any) *VNode    { return createElement("pre", args) }
func Ul(args ...any) *VNode     { return createElement("ul", args) }
func Ol(args ...any) *VNode     { return createElement("ol", args) }
func Li(args ...any) *VNode     { return createElement("li", args) }
func Hr(args ...any) *VNode     { return createElement("hr", args) }
func A(args ...any) *VNode      { return createElement("a", args) }
func Strong(args ...any) *VNode { return createElement("strong", args) }
func Em(args ...any) *VNode     { return createElement("em", args) }
func Code(args ...any) *VNode   { return createElement("code", args) }
func Br(args ...any) *VNode     { return createElement("br", args) }

// Form elements

func Form(args ...any) *VNode     { return createElement("form", args) }
func Input(args ...any) *VNode    { return createElement("input", args) }
func Textarea(args ...any) *VNode { return createElement("textarea", args) }
func Select(args ...any) *VNode   { return createElement("select", args) }
func Option(args ...any) *VNode   { return createElement("option", args) }
func Button(args ...any) *VNode   { return createElement("button", args) }
func Label(args ...any) *VNode    { return createElement("label", args) }

// Table elements

func Table(args ...any) *VNode { return createElement("table", args) }
func Tbody(args ...any) *VNode { return createElement("tbody", args) }
func Tr(args ...any) *VNode    { return createElement("tr", args) }
func Td(args ...any) *VNode    { return createElement("td", args) }

// Media elements

func Img(args ...any) *VNode { return createElement("img", args) }
func Svg(args ...any) *VNode { return createElement("svg", args) }

// CustomElement creates an element with a custom tag name.
func CustomElement(tag string, args ...any) *VNode {
	return createElement(tag, args)
}
