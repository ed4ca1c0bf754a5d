package protocol

import (
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/feather-dev/feather/pkg/dom"
	"github.com/feather-dev/feather/pkg/reconcile"
	. "github.com/feather-dev/feather/pkg/vdom"
)

// stream returns a fresh document and a function draining the wire
// mutations recorded since the previous call.
func stream(t *testing.T) (*dom.Document, func() []Mutation) {
	t.Helper()
	doc := dom.NewDocument()
	rec := dom.NewRecorder(doc)
	t.Cleanup(rec.Stop)
	return doc, func() []Mutation {
		var out []Mutation
		for _, m := range rec.Mutations() {
			out = append(out, FromDOM(m))
		}
		rec.Reset()
		return out
	}
}

func TestBatchRoundTrip(t *testing.T) {
	doc, drain := stream(t)
	p := reconcile.NewPatcher(doc, nil)
	prev := Ul(Li(Key("a"), Class("x"), "a"), Li(Key("b"), Input(Value("v"))), Li(Key("c"), "c"))
	p.Patch(doc.Body(), nil, prev, reconcile.NoIndex)
	drain()

	next := Ul(Li(Key("c"), "c"), Li(Key("a"), Style(StyleMap{"color": "red"}), "A"), Li(Key("b"), Input(Value("w"), OnInput(func(*dom.Event) {}))))
	p.Patch(doc.Body(), prev, next, reconcile.NoIndex)
	muts := drain()

	ops := map[dom.MutationOp]bool{}
	for _, m := range muts {
		ops[m.Op] = true
	}
	for _, op := range []dom.MutationOp{dom.OpMove, dom.OpReplace, dom.OpCreate, dom.OpRemoveAttr, dom.OpSetStyle, dom.OpSetProp, dom.OpSetHandler} {
		if !ops[op] {
			t.Errorf("fixture did not produce %s; got %v", op, muts)
		}
	}

	in := &Batch{Seq: 42, Mutations: muts}
	out, err := DecodeBatch(EncodeBatch(in))
	if err != nil {
		t.Fatalf("DecodeBatch() error = %v", err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("round trip (-want +got):\n%s", diff)
	}
}

func TestFromDOMReplace(t *testing.T) {
	doc := dom.NewDocument()
	old, next := doc.CreateElement("p"), doc.CreateElement("div")
	doc.Body().AppendChild(old)

	rec := dom.NewRecorder(doc)
	doc.Body().ReplaceChild(next, old)
	m := FromDOM(rec.Mutations()[0])

	want := Mutation{Op: dom.OpReplace, Target: old.ID(), Parent: doc.Body().ID(), Index: 0, Node: next.ID()}
	if diff := cmp.Diff(want, m); diff != "" {
		t.Errorf("FromDOM (-want +got):\n%s", diff)
	}
}

func TestDecodeBatchErrors(t *testing.T) {
	valid := EncodeBatch(&Batch{Seq: 1, Mutations: []Mutation{{Op: dom.OpSetAttr, Target: 3, Key: "k", Value: "v"}}})

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"missing count", []byte{0x01}},
		{"truncated", valid[:len(valid)-1]},
		{"trailing", append(append([]byte(nil), valid...), 0x00)},
		{"unknown op", []byte{0x01, 0x01, 0x7f, 0x03}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeBatch(tt.data); err == nil {
				t.Error("DecodeBatch() should fail")
			}
		})
	}

	_, err := DecodeBatch(valid[:len(valid)-1])
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("truncated error = %v, want it to wrap ErrUnexpectedEOF", err)
	}
}

func TestReplayAndStreamMirror(t *testing.T) {
	doc, drain := stream(t)
	p := reconcile.NewPatcher(doc, nil)
	prev := Div(Class("app"),
		H1(Style(StyleMap{"fontSize": "2rem"}), "Title"),
		Ul(Li(Key("a"), "a"), Li(Key("b"), "b"), Li(Key("c"), "c")),
		Input(Value("x")),
		Button(OnClick(func(*dom.Event) {}), "go"),
	)
	p.Patch(doc.Body(), nil, prev, reconcile.NoIndex)
	drain()

	// A viewer joining now catches up from a replay of the live tree.
	m := NewMirror()
	if err := m.Apply(Replay(doc.Body())); err != nil {
		t.Fatalf("Apply(Replay) error = %v", err)
	}
	if got, want := m.Root().InnerHTML(), doc.Body().InnerHTML(); got != want {
		t.Fatalf("replayed HTML = %q, want %q", got, want)
	}

	next := Div(Class("app", "dark"),
		H2("Title"),
		Ul(Li(Key("c"), "c"), Li(Key("a"), "A"), Li(Key("d"), "d")),
		Input(Value("y")),
		Button("go"),
	)
	p.Patch(doc.Body(), prev, next, reconcile.NoIndex)

	// Live updates arrive as encoded batches.
	batch, err := DecodeBatch(EncodeBatch(&Batch{Seq: 1, Mutations: drain()}))
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Apply(batch.Mutations); err != nil {
		t.Fatalf("Apply(batch) error = %v", err)
	}
	if got, want := m.Root().InnerHTML(), doc.Body().InnerHTML(); got != want {
		t.Errorf("mirrored HTML = %q, want %q", got, want)
	}

	btn := doc.Body().ChildAt(0).ChildAt(3)
	mb, ok := m.Node(btn.ID())
	if !ok {
		t.Fatal("button not mirrored")
	}
	if len(mb.HandlerKinds()) != 0 {
		t.Errorf("handler kinds = %v, want none after removal", mb.HandlerKinds())
	}
}

func TestMirrorUnknownNode(t *testing.T) {
	m := NewMirror()
	err := m.Apply([]Mutation{{Op: dom.OpSetAttr, Target: 99, Key: "k"}})
	if err == nil {
		t.Fatal("Apply() should fail for an unknown node")
	}
}
