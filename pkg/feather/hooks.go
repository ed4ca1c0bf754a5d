package feather

import "slices"

// Cleanup is returned by an effect and runs before the effect runs again
// or when its instance is discarded.
type Cleanup func()

// useSlot returns the cell at the current hook index, creating it on first
// use. A cell of the wrong type means the hook order changed; the slot is
// reset so the caller still gets a usable cell.
func useSlot[S any](c *Ctx, kind hookKind, init func() *S) (*S, int) {
	inst := c.inst
	inst.track(c.root, kind)
	idx := inst.slotIdx
	inst.slotIdx++

	if idx < len(inst.slots) {
		if s, ok := inst.slots[idx].(*S); ok {
			return s, idx
		}
		if old, ok := inst.slots[idx].(*effectCell); ok && old.cleanup != nil {
			c.root.cleanups = append(c.root.cleanups, queuedCleanup{fn: old.cleanup, inst: inst, slot: idx})
		}
		s := init()
		inst.slots[idx] = s
		return s, idx
	}

	s := init()
	inst.slots = append(inst.slots, s)
	return s, idx
}

type stateCell struct {
	value any
}

// UseState returns the current value of a state slot and a setter.
// The slot is initialized on the instance's first render. Calling the
// setter stores the value and re-renders the root, even when the value is
// unchanged.
func UseState[T any](c *Ctx, initial T) (T, func(T)) {
	cell, _ := useSlot(c, hookState, func() *stateCell {
		return &stateCell{value: initial}
	})
	r, inst := c.root, c.inst
	value, _ := cell.value.(T)
	return value, func(v T) {
		r.setState(inst, cell, v)
	}
}

type effectPhase uint8

const (
	effectNever effectPhase = iota
	effectPending
	effectCommitted
)

type effectCell struct {
	deps    []any
	cleanup Cleanup
	phase   effectPhase
}

// UseEffect schedules fn to run after the render is committed.
//
// With nil deps the effect runs after every render. With an empty, non-nil
// slice it runs once. Otherwise it runs when any dependency differs from
// the previous render. A previous cleanup runs before the effect does.
func UseEffect(c *Ctx, fn func() Cleanup, deps []any) {
	cell, idx := useSlot(c, hookEffect, func() *effectCell {
		return &effectCell{}
	})
	if deps != nil && cell.phase != effectNever && cell.deps != nil && depsEqual(cell.deps, deps) {
		return
	}
	cell.deps = slices.Clone(deps)
	cell.phase = effectPending
	c.root.queueEffect(c.inst, idx, cell, fn)
}

// Ref is a mutable box that keeps its identity across renders.
type Ref[T any] struct {
	Current T
}

// UseRef returns the same *Ref on every render of the instance.
// Writing Current does not re-render.
func UseRef[T any](c *Ctx, initial T) *Ref[T] {
	ref, _ := useSlot(c, hookRef, func() *Ref[T] {
		return &Ref[T]{Current: initial}
	})
	return ref
}

type memoCell struct {
	deps  []any
	value any
	ready bool
}

// UseMemo returns compute's cached result, recomputing it when deps change.
// nil deps recompute on every render.
func UseMemo[T any](c *Ctx, compute func() T, deps []any) T {
	cell, _ := useSlot(c, hookMemo, func() *memoCell {
		return &memoCell{}
	})
	if !cell.ready || deps == nil || cell.deps == nil || !depsEqual(cell.deps, deps) {
		cell.value = compute()
		cell.deps = slices.Clone(deps)
		cell.ready = true
	}
	value, _ := cell.value.(T)
	return value
}
