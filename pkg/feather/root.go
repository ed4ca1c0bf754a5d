package feather

import (
	"fmt"
	"log/slog"
	"maps"
	"time"

	"github.com/feather-dev/feather/internal/errors"
	"github.com/feather-dev/feather/pkg/dom"
	"github.com/feather-dev/feather/pkg/reconcile"
	"github.com/feather-dev/feather/pkg/vdom"
)

// Root is a mounted tree: the root component (or tag), its attributes and
// children, the container it renders into and the tree currently live.
type Root struct {
	opts Options
	log  *slog.Logger

	doc       *dom.Document
	container *dom.Node
	patcher   *reconcile.Patcher

	tag       string
	component Component
	static    []*vdom.VNode
	attrs     vdom.Attrs
	children  []any

	top          *instance
	nextInstance uint64
	gen          uint64

	current *vdom.VNode
	live    *dom.Node

	cleanups []queuedCleanup
	effects  []queuedEffect

	depth    int
	dirty    bool
	disposed bool

	renders   int
	mutations int
	unobserve func()
}

type queuedEffect struct {
	fn   func() Cleanup
	cell *effectCell
	inst *instance
	slot int
}

type queuedCleanup struct {
	fn   Cleanup
	inst *instance
	slot int
}

// Mount renders root into container with default options.
// See MountWith.
func Mount(container *dom.Node, root any, attrs any, children ...any) *Root {
	return MountWith(Options{}, container, root, attrs, children...)
}

// MountWith renders root into container and returns the bound Root.
//
// root is a tag name, a Component, or a prebuilt *vdom.VNode. attrs and
// children are passed to it on every render. The first render, patch and
// effect commit complete before MountWith returns.
func MountWith(opts Options, container *dom.Node, root any, attrs any, children ...any) *Root {
	if container == nil {
		panic("feather: Mount with nil container")
	}
	opts = opts.withDefaults()
	doc := container.Document()
	if len(opts.EventKinds) > 0 {
		doc.Router().Only(opts.EventKinds...)
	}

	r := &Root{
		opts:      opts,
		log:       opts.Logger.With(slog.String("component", "feather")),
		doc:       doc,
		container: container,
		patcher:   reconcile.NewPatcher(doc, nil),
		attrs:     vdom.AttrsOf(attrs),
		children:  children,
	}
	r.unobserve = doc.Observe(func(dom.Mutation) { r.mutations++ })

	switch t := root.(type) {
	case string:
		r.tag = t
	case Component:
		r.component = t
	case func(*Ctx, vdom.Attrs, []*vdom.VNode) *vdom.VNode:
		r.component = t
	case *vdom.VNode:
		r.static = []*vdom.VNode{t}
	default:
		r.static = vdom.Children(fmt.Sprint(root))
	}
	if r.component != nil {
		r.top = r.newInstance(nil, funcID(r.component))
	}

	r.dirty = true
	r.enter()
	r.exit()
	return r
}

// Document returns the document the root renders into.
func (r *Root) Document() *dom.Document { return r.doc }

// Container returns the node the root was mounted into.
func (r *Root) Container() *dom.Node { return r.container }

// Node returns the live node of the rendered tree, or nil.
func (r *Root) Node() *dom.Node { return r.live }

// Tree returns the most recently rendered tree description.
func (r *Root) Tree() *vdom.VNode { return r.current }

// Refs returns the back-reference table of the root's patcher.
func (r *Root) Refs() *reconcile.Refs { return r.patcher.Refs() }

// Renders returns the number of completed render passes.
func (r *Root) Renders() int { return r.renders }

// Disposed reports whether Unmount was called.
func (r *Root) Disposed() bool { return r.disposed }

// Dispatch routes ev through the document's event router. State updates
// made by the handler are rendered and committed before Dispatch returns.
func (r *Root) Dispatch(ev *dom.Event) bool {
	if r.disposed {
		return false
	}
	r.enter()
	defer r.exit()
	return r.doc.Router().Dispatch(ev)
}

// Batch runs fn and defers rendering until it returns, so every state
// update made inside fn produces a single render.
func (r *Root) Batch(fn func()) {
	r.enter()
	defer r.exit()
	fn()
}

// Unmount removes the rendered tree, runs every outstanding cleanup and
// detaches the root from its document. Later setters are ignored.
func (r *Root) Unmount() {
	if r.disposed {
		return
	}
	r.depth++
	if r.top != nil {
		r.dispose(r.top)
	}
	r.patcher.Patch(r.container, r.current, nil, reconcile.NoIndex)
	r.current, r.live = nil, nil
	r.effects = nil
	r.commit()
	r.depth--
	r.disposed = true
	r.dirty = false
	r.unobserve()
}

func (r *Root) enter() { r.depth++ }

// exit leaves an operation; the outermost exit is the checkpoint.
func (r *Root) exit() {
	r.depth--
	if r.depth == 0 && !r.disposed {
		r.flush()
	}
}

func (r *Root) setState(inst *instance, cell *stateCell, v any) {
	if r.disposed || inst.disposed {
		r.log.Debug("state update ignored", slog.String("instance", inst.name),
			slog.Any("error", errors.New("E105")))
		return
	}
	cell.value = v
	r.dirty = true
	r.enter()
	r.exit()
}

func (r *Root) queueEffect(inst *instance, slot int, cell *effectCell, fn func() Cleanup) {
	if cell.cleanup != nil {
		r.cleanups = append(r.cleanups, queuedCleanup{fn: cell.cleanup, inst: inst, slot: slot})
		cell.cleanup = nil
	}
	r.effects = append(r.effects, queuedEffect{fn: fn, cell: cell, inst: inst, slot: slot})
}

// flush renders and commits until nothing is dirty or pending.
func (r *Root) flush() {
	r.depth++
	defer func() { r.depth-- }()

	passes := 0
	for r.dirty || len(r.effects) > 0 || len(r.cleanups) > 0 {
		if passes == r.opts.MaxFlushPasses {
			r.dirty = false
			r.report(errors.New("E103").WithDetailf("stopped after %d passes", passes).
				WithSuggestion("Guard state updates inside effects with a dependency list or a comparison"),
				slog.Int("passes", passes))
			return
		}
		passes++
		if r.dirty {
			r.render(passes)
		}
		r.commit()
	}
}

// render re-invokes the root and patches the container.
func (r *Root) render(pass int) {
	start := time.Now()
	before := r.mutations
	r.dirty = false
	r.gen++

	next := r.build()
	r.live = r.patcher.Patch(r.container, r.current, next, reconcile.NoIndex)
	r.current = next

	disposed, instances := 0, 0
	if r.top != nil {
		disposed = r.prune(r.top)
		instances = r.top.count()
	}
	r.renders++

	info := RenderInfo{
		Pass:      pass,
		Start:     start,
		Duration:  time.Since(start),
		Mutations: r.mutations - before,
		Instances: instances,
		Disposed:  disposed,
	}
	r.opts.Observer.ObserveRender(info)
	r.log.Debug("render", slog.Int("pass", pass), slog.Int("mutations", info.Mutations),
		slog.Int("disposed", disposed))
}

func (r *Root) build() *vdom.VNode {
	switch {
	case r.component != nil:
		return r.invoke(r.top, r.component, maps.Clone(r.attrs), vdom.Children(r.children...))
	case r.tag != "":
		return vdom.H(r.tag, r.attrs, r.children...)
	case len(r.static) > 0:
		return r.static[0]
	}
	return nil
}

func (r *Root) invoke(inst *instance, fn Component, props vdom.Attrs, children []*vdom.VNode) *vdom.VNode {
	inst.begin(r.gen)
	out := fn(&inst.ctx, props, children)
	inst.end(r)
	return out
}

// commit runs queued cleanups most-recent-first, then pending effects in
// queue order. A panicking callback is reported and skipped.
func (r *Root) commit() {
	if len(r.cleanups) == 0 && len(r.effects) == 0 {
		return
	}
	start := time.Now()
	cleanups, effects := r.cleanups, r.effects
	r.cleanups, r.effects = nil, nil

	info := CommitInfo{Start: start, Cleanups: len(cleanups)}
	for i := len(cleanups) - 1; i >= 0; i-- {
		c := cleanups[i]
		if !r.safely("E102", c.inst, c.slot, func() { c.fn() }) {
			info.Panics++
		}
	}
	for _, e := range effects {
		if e.inst.disposed {
			continue
		}
		info.Effects++
		var cleanup Cleanup
		if !r.safely("E101", e.inst, e.slot, func() { cleanup = e.fn() }) {
			info.Panics++
		}
		e.cell.cleanup = cleanup
		e.cell.phase = effectCommitted
	}

	info.Duration = time.Since(start)
	r.opts.Observer.ObserveCommit(info)
}

// safely runs fn, converting a panic into a reported error.
func (r *Root) safely(code string, inst *instance, slot int, fn func()) (ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			ok = false
			r.report(errors.FromPanic(code, rec),
				slog.String("instance", inst.name), slog.Int("slot", slot))
		}
	}()
	fn()
	return true
}

func (r *Root) report(err *errors.FeatherError, attrs ...any) {
	r.opts.Observer.ObserveError(err.Code)
	args := append([]any{slog.String("code", err.Code), slog.Any("error", err)}, attrs...)
	r.log.Error(err.Message, args...)
}
