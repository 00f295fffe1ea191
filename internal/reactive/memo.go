package reactive

// Memo holds a value derived from other cells. It recomputes whenever one of
// the cells read by compute changes and notifies its own dependents afterwards.
type Memo[T any] struct {
	changed *Trigger
	value   T
	effect  *Effect
}

// NewMemo computes the initial value immediately.
func NewMemo[T any](rt *Runtime, compute func() T) *Memo[T] {
	m := &Memo[T]{changed: NewTrigger(rt)}
	m.effect = NewEffect(rt, func() {
		m.value = compute()
		m.changed.Notify()
	})
	return m
}

// Get returns the latest derived value and tracks it.
func (m *Memo[T]) Get() T {
	m.changed.Track()
	return m.value
}

// Peek returns the latest derived value without tracking.
func (m *Memo[T]) Peek() T {
	return m.value
}

// Dispose stops recomputation.
func (m *Memo[T]) Dispose() {
	m.effect.Dispose()
}
