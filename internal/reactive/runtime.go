// Package reactive implements observable cells, derived values and side effects
// scheduled on a single-threaded runtime.
//
// A Runtime is not safe for concurrent use. Everything created from it must be
// read and written from one goroutine at a time; callers that need concurrency
// serialize access themselves (see notes.Loop).
package reactive

import (
	"context"
	"errors"
	"log/slog"
)

// ErrEffectLoop is reported when a flush exceeds MaxEffectRuns effect executions.
var ErrEffectLoop = errors.New("reactive: effect loop detected")

// MaxEffectRuns caps the number of effect executions in a single flush.
const MaxEffectRuns = 10_000

// Runtime schedules effects after the writes that triggered them.
type Runtime struct {
	log      *slog.Logger
	seq      uint64
	pending  map[*Effect]struct{}
	tracking *Effect
	depth    int
	flushing bool
}

// NewRuntime creates an empty runtime. A nil logger discards output.
func NewRuntime(log *slog.Logger) *Runtime {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Runtime{
		log:     log,
		pending: make(map[*Effect]struct{}),
	}
}

// Batch runs fn and defers effect execution until the outermost batch returns.
func (rt *Runtime) Batch(fn func()) {
	rt.depth++
	defer func() {
		rt.depth--
		rt.flush()
	}()
	fn()
}

// Untracked runs fn without recording dependencies for the running effect.
func (rt *Runtime) Untracked(fn func()) {
	prev := rt.tracking
	rt.tracking = nil
	defer func() { rt.tracking = prev }()
	fn()
}

// Pending reports how many effects are waiting to run.
func (rt *Runtime) Pending() int {
	return len(rt.pending)
}

func (rt *Runtime) nextSeq() uint64 {
	rt.seq++
	return rt.seq
}

func (rt *Runtime) enqueue(e *Effect) {
	if e.disposed {
		return
	}
	rt.pending[e] = struct{}{}
}

// flush runs pending effects lowest registration sequence first until the
// queue drains. Effects queued while flushing are picked up in the same pass.
func (rt *Runtime) flush() {
	if rt.depth > 0 || rt.flushing {
		return
	}
	rt.flushing = true
	defer func() { rt.flushing = false }()

	runs := 0
	for len(rt.pending) > 0 {
		if runs >= MaxEffectRuns {
			rt.log.Error(ErrEffectLoop.Error(), "pending", len(rt.pending), "runs", runs)
			clear(rt.pending)
			return
		}
		next := rt.popLowest()
		next.run()
		runs++
	}

	if runs > 0 && rt.log.Enabled(context.Background(), slog.LevelDebug) {
		rt.log.Debug("effects flushed", "runs", runs)
	}
}

func (rt *Runtime) popLowest() *Effect {
	var lowest *Effect
	for e := range rt.pending {
		if lowest == nil || e.seq < lowest.seq {
			lowest = e
		}
	}
	delete(rt.pending, lowest)
	return lowest
}
