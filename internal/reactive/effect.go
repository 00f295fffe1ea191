package reactive

// source is anything an effect can depend on.
type source struct {
	rt   *Runtime
	subs map[*Effect]struct{}
}

func newSource(rt *Runtime) source {
	return source{rt: rt, subs: make(map[*Effect]struct{})}
}

// track records the running effect, if any, as a dependent.
func (s *source) track() {
	e := s.rt.tracking
	if e == nil {
		return
	}
	if _, ok := s.subs[e]; ok {
		return
	}
	s.subs[e] = struct{}{}
	e.deps = append(e.deps, s)
}

// notify queues every dependent and flushes unless inside a batch.
func (s *source) notify() {
	for e := range s.subs {
		s.rt.enqueue(e)
	}
	s.rt.flush()
}

func (s *source) drop(e *Effect) {
	delete(s.subs, e)
}

// Effect re-runs fn whenever a cell or trigger it read during its last run changes.
type Effect struct {
	rt       *Runtime
	seq      uint64
	fn       func()
	deps     []*source
	disposed bool
}

// NewEffect registers fn and runs it once immediately to collect dependencies.
// Effects run in registration order when several are pending.
func NewEffect(rt *Runtime, fn func()) *Effect {
	e := &Effect{rt: rt, seq: rt.nextSeq(), fn: fn}
	rt.Batch(e.run)
	return e
}

func (e *Effect) run() {
	if e.disposed {
		return
	}
	e.unlink()

	prev := e.rt.tracking
	e.rt.tracking = e
	defer func() { e.rt.tracking = prev }()

	e.fn()
}

func (e *Effect) unlink() {
	for _, s := range e.deps {
		s.drop(e)
	}
	e.deps = e.deps[:0]
}

// Dispose detaches the effect. A disposed effect never runs again.
func (e *Effect) Dispose() {
	if e.disposed {
		return
	}
	e.disposed = true
	e.unlink()
	delete(e.rt.pending, e)
}

// Disposed reports whether Dispose was called.
func (e *Effect) Disposed() bool {
	return e.disposed
}
