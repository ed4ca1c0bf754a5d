package feather

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/feather-dev/feather/pkg/dom"
	"github.com/feather-dev/feather/pkg/vdom"
)

type recordObserver struct {
	renders []RenderInfo
	commits []CommitInfo
	errors  []string
}

func (o *recordObserver) ObserveRender(info RenderInfo) { o.renders = append(o.renders, info) }
func (o *recordObserver) ObserveCommit(info CommitInfo) { o.commits = append(o.commits, info) }
func (o *recordObserver) ObserveError(code string)      { o.errors = append(o.errors, code) }

func (o *recordObserver) count(code string) int {
	n := 0
	for _, c := range o.errors {
		if c == code {
			n++
		}
	}
	return n
}

func mountTest(t *testing.T, root any, opts Options) (*Root, *bytes.Buffer, *recordObserver) {
	t.Helper()
	var buf bytes.Buffer
	obs := &recordObserver{}
	opts.Logger = slog.New(slog.NewTextHandler(&buf, nil))
	opts.Observer = obs
	r := MountWith(opts, dom.NewDocument().Body(), root, nil)
	return r, &buf, obs
}

func find(n *dom.Node, match func(*dom.Node) bool) *dom.Node {
	if n == nil {
		return nil
	}
	if match(n) {
		return n
	}
	for _, c := range n.Children() {
		if f := find(c, match); f != nil {
			return f
		}
	}
	return nil
}

func byTag(n *dom.Node, tag string) *dom.Node {
	return find(n, func(x *dom.Node) bool { return x.Tag() == tag })
}

func byText(n *dom.Node, tag, text string) *dom.Node {
	return find(n, func(x *dom.Node) bool { return x.Tag() == tag && x.TextContent() == text })
}

func click(t *testing.T, r *Root, n *dom.Node) {
	t.Helper()
	if n == nil {
		t.Fatal("click on nil node")
	}
	if !r.Dispatch(&dom.Event{Type: "click", Target: n}) {
		t.Fatalf("click on <%s> found no handler", n.Tag())
	}
}

func counter(c *Ctx, _ vdom.Attrs, _ []*vdom.VNode) *vdom.VNode {
	count, setCount := UseState(c, 0)
	return c.H("div", nil,
		c.H("span", nil, count),
		c.H("button", vdom.Props{"onClick": func() { setCount(count + 1) }}, "+"),
	)
}

func TestCounterEndToEnd(t *testing.T) {
	r, _, _ := mountTest(t, counter, Options{})
	rec := dom.NewRecorder(r.Document())

	span := byTag(r.Node(), "span")
	btn := byText(r.Node(), "button", "+")
	if span.TextContent() != "0" {
		t.Fatalf("initial text = %q, want 0", span.TextContent())
	}

	for i := 0; i < 3; i++ {
		click(t, r, btn)
	}

	if got := span.TextContent(); got != "3" {
		t.Errorf("text after 3 clicks = %q, want 3", got)
	}
	if byTag(r.Node(), "span") != span || byText(r.Node(), "button", "+") != btn {
		t.Error("static elements were recreated")
	}
	for _, m := range rec.Filter(dom.OpCreate) {
		if m.Key != "#text" {
			t.Errorf("unexpected element creation %v", m)
		}
	}
	if got := rec.Count(dom.OpReplace); got != 3 {
		t.Errorf("Replace count = %d, want 3", got)
	}
	if got := r.Renders(); got != 4 {
		t.Errorf("Renders() = %d, want 4", got)
	}
}

func TestMountTagRoot(t *testing.T) {
	doc := dom.NewDocument()
	r := Mount(doc.Body(), "section", vdom.Props{"class": "x"}, "hello")

	if got := doc.Body().InnerHTML(); got != `<section class="x">hello</section>` {
		t.Errorf("InnerHTML() = %q", got)
	}
	if r.Node() == nil || r.Node().Tag() != "section" {
		t.Errorf("Node() = %v", r.Node())
	}
}

func TestMountStaticTree(t *testing.T) {
	doc := dom.NewDocument()
	tree := vdom.Div(vdom.Class("static"), vdom.P("text"))
	r := Mount(doc.Body(), tree, nil)

	if r.Tree() != tree {
		t.Error("Tree() should be the mounted tree")
	}
	if got := doc.Body().InnerHTML(); got != `<div class="static"><p>text</p></div>` {
		t.Errorf("InnerHTML() = %q", got)
	}
}

func TestDispatchUnhandled(t *testing.T) {
	r, _, _ := mountTest(t, counter, Options{})
	span := byTag(r.Node(), "span")

	if r.Dispatch(&dom.Event{Type: "click", Target: span}) {
		t.Error("click on <span> should not find a handler")
	}
	if r.Renders() != 1 {
		t.Errorf("Renders() = %d, want 1", r.Renders())
	}
}

func TestEventKindsOption(t *testing.T) {
	r, _, _ := mountTest(t, counter, Options{EventKinds: []string{"input"}})
	btn := byText(r.Node(), "button", "+")

	if r.Dispatch(&dom.Event{Type: "click", Target: btn}) {
		t.Error("click should be ignored when only input is subscribed")
	}
	if got := r.Document().Router().Kinds(); len(got) != 1 || got[0] != "input" {
		t.Errorf("Kinds() = %v, want [input]", got)
	}
}

func TestUnmount(t *testing.T) {
	var cleaned int
	var set func(int)
	comp := func(c *Ctx, _ vdom.Attrs, _ []*vdom.VNode) *vdom.VNode {
		_, set = UseState(c, 0)
		UseEffect(c, func() Cleanup {
			return func() { cleaned++ }
		}, []any{})
		return c.H("p", nil, "x")
	}
	r, _, _ := mountTest(t, comp, Options{})
	body := r.Container()

	r.Unmount()
	if body.ChildCount() != 0 {
		t.Errorf("container still has %d children", body.ChildCount())
	}
	if cleaned != 1 {
		t.Errorf("cleanup ran %d times, want 1", cleaned)
	}

	set(1)
	r.Unmount()
	if r.Renders() != 1 || cleaned != 1 {
		t.Errorf("after Unmount: renders=%d cleaned=%d", r.Renders(), cleaned)
	}
	if r.Dispatch(&dom.Event{Type: "click", Target: body}) {
		t.Error("Dispatch after Unmount should report false")
	}
}

func TestObserverReceivesRenders(t *testing.T) {
	r, _, obs := mountTest(t, counter, Options{})
	click(t, r, byText(r.Node(), "button", "+"))

	if len(obs.renders) != 2 {
		t.Fatalf("renders observed = %d, want 2", len(obs.renders))
	}
	first, second := obs.renders[0], obs.renders[1]
	if first.Mutations == 0 {
		t.Error("initial render reported no mutations")
	}
	if second.Mutations >= first.Mutations {
		t.Errorf("update mutations = %d, want fewer than mount (%d)", second.Mutations, first.Mutations)
	}
	if first.Instances != 1 || first.Pass != 1 {
		t.Errorf("RenderInfo = %+v", first)
	}
}

func TestBadElementTypeLogged(t *testing.T) {
	comp := func(c *Ctx, _ vdom.Attrs, _ []*vdom.VNode) *vdom.VNode {
		return c.H("div", nil, c.H(42, nil))
	}
	r, buf, _ := mountTest(t, comp, Options{})

	if r.Node().ChildCount() != 0 {
		t.Error("unsupported element should render nothing")
	}
	if !strings.Contains(buf.String(), "unsupported element type") {
		t.Errorf("log = %q", buf.String())
	}
}
