package protocol

import (
	"fmt"

	"github.com/feather-dev/feather/pkg/dom"
)

// Mirror rebuilds a remote tree from wire mutations. It is what a viewer
// does with the mutation stream, and lets tests compare the result against
// the live tree.
type Mirror struct {
	doc   *dom.Document
	nodes map[uint64]*dom.Node
	root  uint64
}

// NewMirror returns an empty mirror.
func NewMirror() *Mirror {
	return &Mirror{doc: dom.NewDocument(), nodes: make(map[uint64]*dom.Node)}
}

// Root returns the first node created that was never attached, which is
// the root of a replayed subtree.
func (m *Mirror) Root() *dom.Node {
	return m.nodes[m.root]
}

// Node returns the mirrored node for a remote id.
func (m *Mirror) Node(id uint64) (*dom.Node, bool) {
	n, ok := m.nodes[id]
	return n, ok
}

// Apply applies mutations in order. It stops at the first mutation that
// references an unknown node.
func (m *Mirror) Apply(muts []Mutation) error {
	for i, mu := range muts {
		if err := m.apply(mu); err != nil {
			return malformed(fmt.Sprintf("mutation %d (%s)", i, mu.Op), err)
		}
	}
	return nil
}

func (m *Mirror) apply(mu Mutation) error {
	if mu.Op == dom.OpCreate {
		var n *dom.Node
		if mu.Key == "#text" {
			n = m.doc.CreateTextNode(mu.Value)
		} else {
			n = m.doc.CreateElement(mu.Key)
		}
		m.nodes[mu.Target] = n
		if m.root == 0 {
			m.root = mu.Target
		}
		return nil
	}

	n, ok := m.nodes[mu.Target]
	if !ok {
		return fmt.Errorf("unknown node %d", mu.Target)
	}
	var parent *dom.Node
	if mu.IsStructural() {
		if parent, ok = m.nodes[mu.Parent]; !ok {
			return fmt.Errorf("unknown parent %d", mu.Parent)
		}
	}

	switch mu.Op {
	case dom.OpAppend:
		parent.AppendChild(n)
	case dom.OpInsert:
		parent.InsertBefore(n, parent.ChildAt(mu.Index))
	case dom.OpMove:
		parent.RemoveChild(n)
		parent.InsertBefore(n, parent.ChildAt(mu.Index))
	case dom.OpRemove:
		parent.RemoveChild(n)
		delete(m.nodes, mu.Target)
	case dom.OpReplace:
		next, ok := m.nodes[mu.Node]
		if !ok {
			return fmt.Errorf("unknown replacement %d", mu.Node)
		}
		parent.ReplaceChild(next, n)
		delete(m.nodes, mu.Target)
	case dom.OpSetAttr:
		n.SetAttribute(mu.Key, mu.Value)
	case dom.OpRemoveAttr:
		n.RemoveAttribute(mu.Key)
	case dom.OpSetProp:
		n.SetProperty(mu.Key, mu.Value)
	case dom.OpSetStyle:
		n.SetStyle(mu.Key, mu.Value)
	case dom.OpRemoveStyle:
		n.RemoveStyle(mu.Key)
	case dom.OpSetHandler:
		n.SetHandler(mu.Key, func(*dom.Event) {})
	case dom.OpRemoveHandler:
		n.RemoveHandler(mu.Key)
	default:
		return fmt.Errorf("unknown op %s", mu.Op)
	}
	return nil
}
