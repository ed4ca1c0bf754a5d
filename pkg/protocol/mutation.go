package protocol

import (
	"fmt"
	"maps"
	"slices"

	"github.com/feather-dev/feather/pkg/dom"
)

// Mutation is the wire form of a dom.Mutation: node references are ids.
type Mutation struct {
	Op     dom.MutationOp
	Target uint64
	Parent uint64
	Index  int
	Node   uint64 // Replace: the replacement node
	Key    string
	Value  string
}

// FromDOM converts a live mutation record to its wire form.
func FromDOM(m dom.Mutation) Mutation {
	w := Mutation{
		Op:     m.Op,
		Target: m.Target,
		Parent: m.Parent,
		Index:  m.Index,
		Key:    m.Key,
		Value:  m.Value,
	}
	if m.Op == dom.OpReplace && m.Node != nil {
		w.Node = m.Node.ID()
	}
	return w
}

// IsStructural reports whether the op changes tree shape.
func (m Mutation) IsStructural() bool {
	switch m.Op {
	case dom.OpAppend, dom.OpInsert, dom.OpRemove, dom.OpReplace, dom.OpMove:
		return true
	}
	return false
}

// Batch is a sequence-numbered group of mutations from one update cycle.
type Batch struct {
	Seq       uint64
	Mutations []Mutation
}

// EncodeBatch encodes b as a FrameMutations payload.
func EncodeBatch(b *Batch) []byte {
	e := NewEncoder()
	EncodeBatchTo(e, b)
	return e.Bytes()
}

// EncodeBatchTo encodes b using the provided encoder.
func EncodeBatchTo(e *Encoder, b *Batch) {
	e.WriteUvarint(b.Seq)
	e.WriteUvarint(uint64(len(b.Mutations)))
	for _, m := range b.Mutations {
		encodeMutation(e, m)
	}
}

func encodeMutation(e *Encoder, m Mutation) {
	e.WriteByte(byte(m.Op))
	e.WriteUvarint(m.Target)
	switch m.Op {
	case dom.OpCreate:
		e.WriteString(m.Key)
		if m.Key == "#text" {
			e.WriteString(m.Value)
		}
	case dom.OpAppend, dom.OpInsert, dom.OpRemove, dom.OpMove:
		e.WriteUvarint(m.Parent)
		e.WriteUvarint(uint64(m.Index))
	case dom.OpReplace:
		e.WriteUvarint(m.Parent)
		e.WriteUvarint(uint64(m.Index))
		e.WriteUvarint(m.Node)
	case dom.OpSetAttr, dom.OpSetProp, dom.OpSetStyle:
		e.WriteString(m.Key)
		e.WriteString(m.Value)
	case dom.OpRemoveAttr, dom.OpRemoveStyle, dom.OpSetHandler, dom.OpRemoveHandler:
		e.WriteString(m.Key)
	}
}

// DecodeBatch decodes a FrameMutations payload.
func DecodeBatch(data []byte) (*Batch, error) {
	d := NewDecoder(data)
	seq, err := d.ReadUvarint()
	if err != nil {
		return nil, malformed("batch header", err)
	}
	// Every mutation takes at least an op byte and a target byte.
	count, err := d.ReadCount(2)
	if err != nil {
		return nil, malformed("batch header", err)
	}
	b := &Batch{Seq: seq, Mutations: make([]Mutation, 0, count)}
	for i := 0; i < count; i++ {
		m, err := decodeMutation(d)
		if err != nil {
			return nil, malformed(fmt.Sprintf("mutation %d", i), err)
		}
		b.Mutations = append(b.Mutations, m)
	}
	if !d.EOF() {
		return nil, malformed("batch", fmt.Errorf("%d trailing bytes", d.Remaining()))
	}
	return b, nil
}

func decodeMutation(d *Decoder) (m Mutation, err error) {
	op, err := d.ReadByte()
	if err != nil {
		return m, err
	}
	m.Op = dom.MutationOp(op)
	if m.Target, err = d.ReadUvarint(); err != nil {
		return m, err
	}

	switch m.Op {
	case dom.OpCreate:
		if m.Key, err = d.ReadString(); err != nil {
			return m, err
		}
		if m.Key == "#text" {
			m.Value, err = d.ReadString()
		}
	case dom.OpAppend, dom.OpInsert, dom.OpRemove, dom.OpMove, dom.OpReplace:
		if m.Parent, err = d.ReadUvarint(); err != nil {
			return m, err
		}
		var idx uint64
		if idx, err = d.ReadUvarint(); err != nil {
			return m, err
		}
		m.Index = int(idx)
		if m.Op == dom.OpReplace {
			m.Node, err = d.ReadUvarint()
		}
	case dom.OpSetAttr, dom.OpSetProp, dom.OpSetStyle:
		if m.Key, err = d.ReadString(); err != nil {
			return m, err
		}
		m.Value, err = d.ReadString()
	case dom.OpRemoveAttr, dom.OpRemoveStyle, dom.OpSetHandler, dom.OpRemoveHandler:
		m.Key, err = d.ReadString()
	default:
		err = fmt.Errorf("unknown op 0x%02x", op)
	}
	return m, err
}

// Replay returns the mutations that build n's subtree from nothing, in the
// order a fresh document would record them. A viewer that connects after
// the tree was mounted applies them to catch up.
func Replay(n *dom.Node) []Mutation {
	var out []Mutation
	replay(n, &out)
	return out
}

func replay(n *dom.Node, out *[]Mutation) {
	id := n.ID()
	if n.Type() == dom.TextNode {
		*out = append(*out, Mutation{Op: dom.OpCreate, Target: id, Key: "#text", Value: n.Text()})
		return
	}
	*out = append(*out, Mutation{Op: dom.OpCreate, Target: id, Key: n.Tag()})

	attrs := n.Attributes()
	for _, k := range slices.Sorted(maps.Keys(attrs)) {
		*out = append(*out, Mutation{Op: dom.OpSetAttr, Target: id, Key: k, Value: attrs[k]})
	}
	for _, k := range []string{"checked", "value"} {
		if v, ok := n.Property(k); ok {
			*out = append(*out, Mutation{Op: dom.OpSetProp, Target: id, Key: k, Value: v})
		}
	}
	style := n.Style()
	for _, k := range slices.Sorted(maps.Keys(style)) {
		*out = append(*out, Mutation{Op: dom.OpSetStyle, Target: id, Key: k, Value: style[k]})
	}
	for _, kind := range n.HandlerKinds() {
		*out = append(*out, Mutation{Op: dom.OpSetHandler, Target: id, Key: kind})
	}
	for i, c := range n.Children() {
		replay(c, out)
		*out = append(*out, Mutation{Op: dom.OpAppend, Target: c.ID(), Parent: id, Index: i})
	}
}
