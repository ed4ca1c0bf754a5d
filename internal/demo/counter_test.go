package demo

import (
	"strings"
	"testing"

	"github.com/feather-dev/feather/pkg/dom"
	"github.com/feather-dev/feather/pkg/feather"
)

func TestCounter(t *testing.T) {
	var notes []string
	doc := dom.NewDocument()
	root := feather.Mount(doc.Body(), Counter(func(s string) { notes = append(notes, s) }), nil)

	// container > card > display
	display := root.Node().ChildAt(2).ChildAt(0)
	if got := display.TextContent(); got != "0" {
		t.Fatalf("initial count = %q, want 0", got)
	}

	rec := dom.NewRecorder(doc)
	plus := FindButton(root.Node(), "+")
	minus := FindButton(root.Node(), "-")
	for i := 0; i < 3; i++ {
		root.Dispatch(&dom.Event{Type: "click", Target: plus})
	}
	if got := display.TextContent(); got != "3" {
		t.Errorf("count after 3 increments = %q, want 3", got)
	}
	for _, m := range rec.Filter(dom.OpCreate) {
		if m.Key != "#text" {
			t.Errorf("static structure recreated: %v", m)
		}
	}
	if got := rec.Count(dom.OpSetStyle); got != 0 {
		t.Errorf("unchanged styles rewritten %d times", got)
	}

	root.Dispatch(&dom.Event{Type: "click", Target: minus})
	if got := display.TextContent(); got != "2" {
		t.Errorf("count after decrement = %q, want 2", got)
	}

	// The handler sits on the button; clicking its text child bubbles to it.
	docs := FindButton(root.Node(), "Documentation")
	root.Dispatch(&dom.Event{Type: "click", Target: docs.ChildAt(0)})
	if len(notes) != 1 || notes[0] != "Clicked" {
		t.Errorf("notes = %v", notes)
	}
	if root.Renders() != 5 {
		t.Errorf("Renders() = %d, want 5", root.Renders())
	}
}

func TestCounterHTML(t *testing.T) {
	doc := dom.NewDocument()
	feather.Mount(doc.Body(), Counter(nil), nil)
	html := doc.Body().InnerHTML()

	for _, want := range []string{
		`<h1 style="`,
		`-webkit-background-clip: text;`,
		`font-variant-numeric: tabular-nums;`,
		`<svg src="http://www.w3.org/2000/svg"></svg>`,
		`<p>Built with vanilla JS &amp; custom VDOM.</p>`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("HTML missing %q:\n%s", want, html)
		}
	}
}
