package dom

import (
	"bytes"
	"html"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// voidElements are elements that cannot have children.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// HTMLConfig configures HTML snapshots.
type HTMLConfig struct {
	// IDs writes each element's node ID as a data-fid attribute so remote
	// viewers can address events to it.
	IDs bool

	// Pretty enables indented output.
	Pretty bool

	// Indent is the string used for each indentation level in pretty mode.
	// Defaults to two spaces if not specified.
	Indent string
}

// WriteHTML serializes the subtree rooted at n. Attributes and style
// properties are written in sorted order so output is deterministic. Live
// properties override attributes of the same name.
func WriteHTML(w io.Writer, n *Node, cfg HTMLConfig) error {
	if cfg.Indent == "" {
		cfg.Indent = "  "
	}
	var buf bytes.Buffer
	writeNode(&buf, n, cfg, 0)
	_, err := w.Write(buf.Bytes())
	return err
}

// OuterHTML returns the HTML of the subtree rooted at n.
func (n *Node) OuterHTML() string {
	var buf bytes.Buffer
	writeNode(&buf, n, HTMLConfig{Indent: "  "}, 0)
	return buf.String()
}

// InnerHTML returns the HTML of n's children.
func (n *Node) InnerHTML() string {
	var buf bytes.Buffer
	for _, c := range n.children {
		writeNode(&buf, c, HTMLConfig{Indent: "  "}, 0)
	}
	return buf.String()
}

func writeNode(buf *bytes.Buffer, n *Node, cfg HTMLConfig, depth int) {
	if n == nil {
		return
	}
	if n.typ == TextNode {
		buf.WriteString(html.EscapeString(n.text))
		return
	}

	if cfg.Pretty && depth > 0 {
		buf.WriteByte('\n')
		buf.WriteString(strings.Repeat(cfg.Indent, depth))
	}
	buf.WriteByte('<')
	buf.WriteString(n.tag)

	attrs := maps.Clone(n.attrs)
	if attrs == nil {
		attrs = make(map[string]string)
	}
	for k, v := range n.props {
		attrs[k] = v
	}
	if len(n.style) > 0 {
		attrs["style"] = styleString(n.style)
	}
	if cfg.IDs {
		attrs["data-fid"] = strconv.FormatUint(n.id, 10)
	}
	for _, k := range slices.Sorted(maps.Keys(attrs)) {
		buf.WriteByte(' ')
		buf.WriteString(k)
		buf.WriteString(`="`)
		buf.WriteString(html.EscapeString(attrs[k]))
		buf.WriteByte('"')
	}
	buf.WriteByte('>')

	if voidElements[n.tag] {
		return
	}
	for _, c := range n.children {
		writeNode(buf, c, cfg, depth+1)
	}
	if cfg.Pretty && len(n.children) > 0 && n.children[len(n.children)-1].typ == ElementNode {
		buf.WriteByte('\n')
		buf.WriteString(strings.Repeat(cfg.Indent, depth))
	}
	buf.WriteString("</")
	buf.WriteString(n.tag)
	buf.WriteByte('>')
}

// styleString renders a style map as a CSS declaration list.
func styleString(style map[string]string) string {
	var sb strings.Builder
	for i, k := range slices.Sorted(maps.Keys(style)) {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(cssProperty(k))
		sb.WriteString(": ")
		sb.WriteString(style[k])
		sb.WriteByte(';')
	}
	return sb.String()
}

// cssProperty converts camelCase property names to their CSS form:
// "fontSize" becomes "font-size", "webkitTextFillColor" becomes
// "-webkit-text-fill-color".
func cssProperty(name string) string {
	if strings.Contains(name, "-") {
		return name
	}
	var sb strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			sb.WriteByte('-')
			sb.WriteRune(r + ('a' - 'A'))
			continue
		}
		if i == 0 && strings.HasPrefix(name, "webkit") {
			sb.WriteByte('-')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
