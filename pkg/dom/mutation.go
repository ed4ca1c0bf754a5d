package dom

import "fmt"

// MutationOp is the kind of change applied to a live tree.
type MutationOp uint8

// Mutation operation constants. The values are part of the live wire format.
const (
	OpCreate        MutationOp = 0x01 // Node created (detached)
	OpAppend        MutationOp = 0x02 // Child appended
	OpInsert        MutationOp = 0x03 // Child inserted before a sibling
	OpRemove        MutationOp = 0x04 // Child removed
	OpReplace       MutationOp = 0x05 // Child replaced by another node
	OpMove          MutationOp = 0x06 // Existing child moved
	OpSetAttr       MutationOp = 0x07 // Literal attribute set
	OpRemoveAttr    MutationOp = 0x08 // Literal attribute removed
	OpSetProp       MutationOp = 0x09 // Live property set (value, checked)
	OpSetStyle      MutationOp = 0x0A // Style property set
	OpRemoveStyle   MutationOp = 0x0B // Style property removed
	OpSetHandler    MutationOp = 0x0C // Handler table entry written
	OpRemoveHandler MutationOp = 0x0D // Handler table entry cleared
)

// String returns the string representation of the MutationOp.
func (op MutationOp) String() string {
	switch op {
	case OpCreate:
		return "Create"
	case OpAppend:
		return "Append"
	case OpInsert:
		return "Insert"
	case OpRemove:
		return "Remove"
	case OpReplace:
		return "Replace"
	case OpMove:
		return "Move"
	case OpSetAttr:
		return "SetAttr"
	case OpRemoveAttr:
		return "RemoveAttr"
	case OpSetProp:
		return "SetProp"
	case OpSetStyle:
		return "SetStyle"
	case OpRemoveStyle:
		return "RemoveStyle"
	case OpSetHandler:
		return "SetHandler"
	case OpRemoveHandler:
		return "RemoveHandler"
	default:
		return "Unknown"
	}
}

// Mutation records one change to the live tree.
type Mutation struct {
	Op     MutationOp
	Target uint64 // Node the change applies to (for Replace: the old node)
	Parent uint64 // Parent for structural ops
	Index  int    // Position for structural ops
	Key    string // Attribute, property, style or event key; tag for Create
	Value  string // New value
	Node   *Node  // Created, attached or replacement node
}

// IsStructural reports whether the op changes tree shape.
func (m Mutation) IsStructural() bool {
	switch m.Op {
	case OpAppend, OpInsert, OpRemove, OpReplace, OpMove:
		return true
	}
	return false
}

// String returns a compact description used in test failures and debug logs.
func (m Mutation) String() string {
	switch m.Op {
	case OpCreate:
		return fmt.Sprintf("Create(%d %s)", m.Target, m.Key)
	case OpAppend, OpInsert, OpRemove, OpReplace, OpMove:
		return fmt.Sprintf("%s(%d in %d @%d)", m.Op, m.Target, m.Parent, m.Index)
	default:
		return fmt.Sprintf("%s(%d %s=%q)", m.Op, m.Target, m.Key, m.Value)
	}
}

// Recorder accumulates mutations from a document.
type Recorder struct {
	muts   []Mutation
	cancel func()
}

// NewRecorder starts recording mutations of d.
func NewRecorder(d *Document) *Recorder {
	r := &Recorder{}
	r.cancel = d.Observe(func(m Mutation) { r.muts = append(r.muts, m) })
	return r
}

// Mutations returns the recorded mutations.
func (r *Recorder) Mutations() []Mutation { return r.muts }

// Count returns how many recorded mutations have op.
func (r *Recorder) Count(op MutationOp) int {
	n := 0
	for _, m := range r.muts {
		if m.Op == op {
			n++
		}
	}
	return n
}

// Filter returns the recorded mutations with op.
func (r *Recorder) Filter(op MutationOp) []Mutation {
	var out []Mutation
	for _, m := range r.muts {
		if m.Op == op {
			out = append(out, m)
		}
	}
	return out
}

// Reset discards recorded mutations.
func (r *Recorder) Reset() { r.muts = nil }

// Stop detaches the recorder from its document.
func (r *Recorder) Stop() {
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
}
