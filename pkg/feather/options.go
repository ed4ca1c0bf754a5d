package feather

import (
	"log/slog"
	"time"
)

// DefaultMaxFlushPasses bounds the render/commit loop of one checkpoint.
const DefaultMaxFlushPasses = 100

// Options configures a mounted root.
type Options struct {
	// Logger receives effect failures and hook-order reports.
	// Defaults to slog.Default().
	Logger *slog.Logger

	// Observer is notified after every render and commit. Optional.
	Observer Observer

	// MaxFlushPasses bounds how many render/commit passes one checkpoint may
	// run before giving up with E103.
	MaxFlushPasses int

	// StrictHooks records each instance's hook sequence on its first render
	// and reports E104 when a later render diverges.
	StrictHooks bool

	// EventKinds replaces the router's subscribed event kinds when non-empty.
	EventKinds []string
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.MaxFlushPasses <= 0 {
		o.MaxFlushPasses = DefaultMaxFlushPasses
	}
	if o.Observer == nil {
		o.Observer = nopObserver{}
	}
	return o
}

// RenderInfo describes one render pass.
type RenderInfo struct {
	Pass      int
	Start     time.Time
	Duration  time.Duration
	Mutations int
	Instances int
	Disposed  int
}

// CommitInfo describes one effect commit.
type CommitInfo struct {
	Start    time.Time
	Duration time.Duration
	Cleanups int
	Effects  int
	Panics   int
}

// Observer receives runtime measurements. Implementations must be cheap;
// they run synchronously inside the update cycle.
type Observer interface {
	ObserveRender(RenderInfo)
	ObserveCommit(CommitInfo)
	ObserveError(code string)
}

type nopObserver struct{}

func (nopObserver) ObserveRender(RenderInfo) {}
func (nopObserver) ObserveCommit(CommitInfo) {}
func (nopObserver) ObserveError(string)      {}
