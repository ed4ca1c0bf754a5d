package dom

import (
	"github.com/goccy/go-json"
)

// NodeSnapshot is the JSON form of a live subtree.
type NodeSnapshot struct {
	ID       uint64            `json:"id"`
	Type     string            `json:"type"`
	Tag      string            `json:"tag,omitempty"`
	Text     string            `json:"text,omitempty"`
	Attrs    map[string]string `json:"attrs,omitempty"`
	Props    map[string]string `json:"props,omitempty"`
	Style    map[string]string `json:"style,omitempty"`
	Events   []string          `json:"events,omitempty"`
	Children []*NodeSnapshot   `json:"children,omitempty"`
}

// Snapshot captures the subtree rooted at n.
func (n *Node) Snapshot() *NodeSnapshot {
	s := &NodeSnapshot{ID: n.id, Type: n.typ.String()}
	if n.typ == TextNode {
		s.Text = n.text
		return s
	}
	s.Tag = n.tag
	if len(n.attrs) > 0 {
		s.Attrs = n.Attributes()
	}
	if len(n.props) > 0 {
		s.Props = make(map[string]string, len(n.props))
		for k, v := range n.props {
			s.Props[k] = v
		}
	}
	if len(n.style) > 0 {
		s.Style = n.Style()
	}
	if len(n.handlers) > 0 {
		s.Events = n.HandlerKinds()
	}
	for _, c := range n.children {
		s.Children = append(s.Children, c.Snapshot())
	}
	return s
}

// MarshalJSON encodes the node as its snapshot.
func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.Snapshot())
}
