// Package demo holds the counter application served by the CLI.
package demo

import (
	"github.com/feather-dev/feather/pkg/dom"
	"github.com/feather-dev/feather/pkg/feather"
	"github.com/feather-dev/feather/pkg/vdom"
)

var styles = struct {
	container, header, h1, h3, card, counterDisplay, btnGroup vdom.StyleMap
	btnPrimary, btnSecondary, footer, btnText                 vdom.StyleMap
}{
	container: vdom.StyleMap{
		"display":        "flex",
		"flexDirection":  "column",
		"justifyContent": "center",
		"alignItems":     "center",
		"maxWidth":       "600px",
		"width":          "100%",
		"padding":        "0 20px",
		"fontFamily":     "-apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif",
	},
	header: vdom.StyleMap{
		"textAlign":    "center",
		"marginBottom": "3rem",
	},
	h1: vdom.StyleMap{
		"fontSize":             "4rem",
		"fontWeight":           "800",
		"letterSpacing":        "-0.05em",
		"margin":               "0",
		"background":           "linear-gradient(to bottom, #000000, #444444)",
		"webkitBackgroundClip": "text",
		"webkitTextFillColor":  "transparent",
		"color":                "black",
	},
	h3: vdom.StyleMap{
		"fontSize":   "1.2rem",
		"color":      "#666666",
		"fontWeight": "400",
		"marginTop":  "1rem",
	},
	card: vdom.StyleMap{
		"background":    "#ffffff",
		"border":        "1px solid #eaeaea",
		"borderRadius":  "12px",
		"padding":       "2rem 4rem",
		"display":       "flex",
		"flexDirection": "column",
		"alignItems":    "center",
		"boxShadow":     "0 4px 12px rgba(0, 0, 0, 0.05)",
		"transition":    "boxShadow 0.2s ease",
	},
	counterDisplay: vdom.StyleMap{
		"fontSize":           "6rem",
		"fontWeight":         "700",
		"letterSpacing":      "-0.05em",
		"marginBottom":       "2rem",
		"fontVariantNumeric": "tabular-nums",
	},
	btnGroup: vdom.StyleMap{
		"display": "flex",
		"gap":     "1rem",
	},
	btnPrimary: vdom.StyleMap{
		"padding":         "12px 32px",
		"borderRadius":    "6px",
		"cursor":          "pointer",
		"fontSize":        "1rem",
		"fontWeight":      "500",
		"transition":      "all 0.2s ease",
		"border":          "1px solid transparent",
		"backgroundColor": "#000000",
		"color":           "#ffffff",
	},
	btnSecondary: vdom.StyleMap{
		"padding":         "12px 32px",
		"borderRadius":    "6px",
		"cursor":          "pointer",
		"fontSize":        "1rem",
		"fontWeight":      "500",
		"transition":      "all 0.2s ease",
		"backgroundColor": "transparent",
		"border":          "1px solid #eaeaea",
		"color":           "#000000",
	},
	footer: vdom.StyleMap{
		"marginTop":     "3rem",
		"display":       "flex",
		"flexDirection": "column",
		"alignItems":    "center",
		"color":         "#666666",
		"fontSize":      "0.9rem",
	},
	btnText: vdom.StyleMap{
		"background":     "none",
		"border":         "none",
		"color":          "#666666",
		"padding":        "0",
		"marginTop":      "1rem",
		"fontSize":       "0.9rem",
		"cursor":         "pointer",
		"textDecoration": "underline",
	},
}

// Counter returns the counter component. notify receives the message of
// the Documentation button; nil discards it.
func Counter(notify func(string)) feather.Component {
	if notify == nil {
		notify = func(string) {}
	}
	return func(c *feather.Ctx, _ vdom.Attrs, _ []*vdom.VNode) *vdom.VNode {
		count, setCount := feather.UseState(c, 0)

		return c.H("div", vdom.Props{"style": styles.container},
			c.H("div", vdom.Props{"style": styles.header},
				c.H("h1", vdom.Props{"style": styles.h1}, "FeatherJSX"),
				c.H("h3", vdom.Props{"style": styles.h3}, "The lightweight renderer for the future."),
			),
			c.H("svg", vdom.Props{"src": "http://www.w3.org/2000/svg"}, ""),
			c.H("div", vdom.Props{"style": styles.card},
				c.H("div", vdom.Props{"style": styles.counterDisplay}, count),
				c.H("div", vdom.Props{"style": styles.btnGroup},
					c.H("button", vdom.Props{"style": styles.btnSecondary, "onClick": func() { setCount(count - 1) }}, "-"),
					c.H("button", vdom.Props{"style": styles.btnPrimary, "onClick": func() { setCount(count + 1) }}, "+"),
				),
			),
			c.H("div", vdom.Props{"style": styles.footer},
				c.H("p", nil, "Built with vanilla JS & custom VDOM."),
				c.H("button", vdom.Props{"style": styles.btnText, "onClick": func() { notify("Clicked") }}, "Documentation"),
			),
		)
	}
}

// FindButton returns the first button under n whose text is label.
func FindButton(n *dom.Node, label string) *dom.Node {
	if n == nil {
		return nil
	}
	if n.Tag() == "button" && n.TextContent() == label {
		return n
	}
	for _, c := range n.Children() {
		if b := FindButton(c, label); b != nil {
			return b
		}
	}
	return nil
}
