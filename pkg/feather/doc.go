// Package feather binds components to a live document and runs their hooks.
//
// A component is a plain function that returns a tree description:
//
//	func Counter(c *feather.Ctx, props vdom.Attrs, children []*vdom.VNode) *vdom.VNode {
//	    count, setCount := feather.UseState(c, 0)
//	    return c.H("button", vdom.Props{"onClick": func() { setCount(count + 1) }}, count)
//	}
//
//	root := feather.Mount(doc.Body(), Counter, nil)
//
// Every state change re-invokes the root component and patches the live
// tree against the previous description. Hook state lives in a per-instance
// arena indexed by call order, so hooks must be called unconditionally and
// in the same order on every render.
//
// # Scheduling
//
// Work is synchronous. A setter marks the root dirty; the render, patch and
// effect commit happen when the outermost operation returns (Mount, Dispatch,
// Batch, or the bare setter call itself). Several updates inside one
// operation coalesce into one render. Effects that set state cause further
// passes, bounded by Options.MaxFlushPasses.
//
// A Root is not safe for concurrent use. Callers that share one across
// goroutines serialize access themselves.
package feather
