package feather

import (
	"log/slog"
	"reflect"
	"runtime"
	"strings"

	"github.com/feather-dev/feather/internal/errors"
)

// hookKind identifies the type of hook call for order validation.
type hookKind uint8

const (
	hookState hookKind = iota + 1
	hookEffect
	hookRef
	hookMemo
)

func (k hookKind) String() string {
	switch k {
	case hookState:
		return "State"
	case hookEffect:
		return "Effect"
	case hookRef:
		return "Ref"
	case hookMemo:
		return "Memo"
	default:
		return "Unknown"
	}
}

// childKey identifies a component instance under its parent. Keyed
// invocations ignore the call index so they survive reordering.
type childKey struct {
	fn    uintptr
	key   string
	index int
}

// instance is the hook arena of one component invocation site.
type instance struct {
	id     uint64
	name   string
	parent *instance

	children map[childKey]*instance
	kids     []*instance // creation order, for deterministic disposal

	// Hook slots, one per hook call, indexed by call order.
	slots   []any
	slotIdx int

	// callIdx counts component invocations made through this instance's Ctx.
	callIdx int

	seen     uint64
	disposed bool

	// StrictHooks bookkeeping.
	order    []hookKind
	renders  int
	violated bool

	ctx Ctx
}

func funcID(fn any) uintptr {
	return reflect.ValueOf(fn).Pointer()
}

func funcName(pc uintptr) string {
	f := runtime.FuncForPC(pc)
	if f == nil {
		return "component"
	}
	name := f.Name()
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	return name
}

func (r *Root) newInstance(parent *instance, fn uintptr) *instance {
	r.nextInstance++
	inst := &instance{
		id:     r.nextInstance,
		name:   funcName(fn),
		parent: parent,
	}
	inst.ctx = Ctx{root: r, inst: inst}
	return inst
}

// child returns the instance for key, creating it on first use.
func (r *Root) child(parent *instance, key childKey) *instance {
	if inst, ok := parent.children[key]; ok {
		return inst
	}
	inst := r.newInstance(parent, key.fn)
	if parent.children == nil {
		parent.children = make(map[childKey]*instance)
	}
	parent.children[key] = inst
	parent.kids = append(parent.kids, inst)
	return inst
}

// begin resets the arena cursors at the start of an invocation.
func (inst *instance) begin(gen uint64) {
	inst.seen = gen
	inst.slotIdx = 0
	inst.callIdx = 0
	inst.violated = false
}

// end finishes an invocation and checks the hook count in strict mode.
func (inst *instance) end(r *Root) {
	if r.opts.StrictHooks && inst.renders > 0 && !inst.violated && inst.slotIdx < len(inst.order) {
		r.report(errors.New("E104").WithDetailf("%s: expected %d hooks, got %d",
			inst.name, len(inst.order), inst.slotIdx), slog.String("instance", inst.name))
	}
	inst.renders++
}

// track records or validates the kind of the hook at the current slot.
func (inst *instance) track(r *Root, kind hookKind) {
	if !r.opts.StrictHooks {
		return
	}
	idx := inst.slotIdx
	if inst.renders == 0 {
		inst.order = append(inst.order, kind)
		return
	}
	if inst.violated {
		return
	}
	switch {
	case idx >= len(inst.order):
		inst.violated = true
		r.report(errors.New("E104").WithDetailf("%s: extra %s hook at index %d",
			inst.name, kind, idx), slog.String("instance", inst.name), slog.Int("slot", idx))
	case inst.order[idx] != kind:
		inst.violated = true
		r.report(errors.New("E104").WithDetailf("%s: expected %s hook at index %d, got %s",
			inst.name, inst.order[idx], idx, kind), slog.String("instance", inst.name), slog.Int("slot", idx))
	}
}

// prune disposes children of inst not visited in the current render.
func (r *Root) prune(inst *instance) int {
	disposed := 0
	kept := inst.kids[:0]
	for _, c := range inst.kids {
		if c.seen != r.gen {
			disposed += r.dispose(c)
			continue
		}
		kept = append(kept, c)
		disposed += r.prune(c)
	}
	clear(inst.kids[len(kept):])
	inst.kids = kept
	if disposed > 0 {
		for k, c := range inst.children {
			if c.disposed {
				delete(inst.children, k)
			}
		}
	}
	return disposed
}

// dispose marks inst and its subtree dead and queues their effect cleanups.
// Parent cleanups are queued before child cleanups; commit runs the queue
// most-recent-first, so children clean up first.
func (r *Root) dispose(inst *instance) int {
	if inst.disposed {
		return 0
	}
	inst.disposed = true
	for i, s := range inst.slots {
		if cell, ok := s.(*effectCell); ok && cell.cleanup != nil {
			r.cleanups = append(r.cleanups, queuedCleanup{fn: cell.cleanup, inst: inst, slot: i})
			cell.cleanup = nil
		}
	}
	n := 1
	for _, c := range inst.kids {
		n += r.dispose(c)
	}
	inst.kids = nil
	inst.children = nil
	return n
}

func (inst *instance) count() int {
	n := 1
	for _, c := range inst.kids {
		n += c.count()
	}
	return n
}
