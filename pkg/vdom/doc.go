// Package vdom provides the tree description Feather reconciles against.
//
// A render produces a tree of VNode values: elements with a tag, attributes
// and ordered children, or text nodes. The tree is plain data. Nothing in
// this package touches live elements; the reconcile package owns the mapping
// from a VNode to the live node it produced.
//
// # Attributes
//
// Attribute values are a tagged variant decided when the tree is built:
//
//	Lit("card")                  // literal attribute
//	On("click", handler)         // entry in the element's handler table
//	StyleOf(StyleMap{"gap": "1rem"}) // style bundle merged onto the live style
//
// Props (map[string]any) is the loose, hyperscript-style input form. It is
// classified into Attrs once, so the diff never sniffs key prefixes.
//
// # Element API
//
// Elements are created with H or the variadic factory functions:
//
//	H("div", Props{"class": "card"}, "Count: ", 3)
//
//	Div(Class("card"), ID("main"),
//	    H1(Text("Title")),
//	    Button(OnClick(inc), Text("+")),
//	)
//
// # Keys
//
// A literal attribute named "key" identifies a child across renders so that
// reordered lists keep their live elements.
package vdom
