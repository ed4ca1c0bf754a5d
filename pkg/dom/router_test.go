package dom

import "testing"

func TestRouterDispatch(t *testing.T) {
	d := NewDocument()
	outer := d.CreateElement("div")
	inner := d.CreateElement("span")
	leaf := d.CreateTextNode("x")
	d.Body().AppendChild(outer)
	outer.AppendChild(inner)
	inner.AppendChild(leaf)

	var log []string
	outer.SetHandler("click", func(e *Event) { log = append(log, "outer") })
	d.Body().SetHandler("click", func(e *Event) { log = append(log, "body") })

	ev := &Event{Type: "CLICK", Target: leaf}
	if !d.Router().Dispatch(ev) {
		t.Fatal("Dispatch() = false, want true")
	}
	if len(log) != 1 || log[0] != "outer" {
		t.Errorf("handlers run = %v, want [outer]", log)
	}
	if ev.CurrentTarget != outer {
		t.Errorf("CurrentTarget = %v, want outer", ev.CurrentTarget)
	}

	// Target inclusive.
	log = nil
	inner.SetHandler("click", func(e *Event) { log = append(log, "inner") })
	d.Router().Dispatch(&Event{Type: "click", Target: inner})
	if len(log) != 1 || log[0] != "inner" {
		t.Errorf("handlers run = %v, want [inner]", log)
	}
}

func TestRouterIgnores(t *testing.T) {
	d := NewDocument()
	n := d.CreateElement("div")
	d.Body().AppendChild(n)
	called := false
	n.SetHandler("wheel", func(*Event) { called = true })

	if d.Router().Dispatch(&Event{Type: "wheel", Target: n}) {
		t.Error("unsubscribed kind was dispatched")
	}
	if d.Router().Dispatch(&Event{Type: "click", Target: n}) {
		t.Error("event with no handler reported handled")
	}
	if d.Router().Dispatch(nil) {
		t.Error("nil event reported handled")
	}
	other := NewDocument()
	if other.Router().Dispatch(&Event{Type: "wheel", Target: n}) {
		t.Error("foreign node dispatched through another document's router")
	}

	d.Router().Listen("Wheel")
	if !d.Router().Dispatch(&Event{Type: "wheel", Target: n}) || !called {
		t.Error("wheel not dispatched after Listen")
	}
	if got := d.Router().Resolve(n, "wheel"); got != n {
		t.Errorf("Resolve() = %v, want n", got)
	}

	d.Router().Only("click")
	if d.Router().Listening("wheel") {
		t.Error("Only() kept a previous kind")
	}
}
