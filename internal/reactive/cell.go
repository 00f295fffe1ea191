package reactive

// Cell is an observable value. Reads through Get inside an effect or memo
// register a dependency; Set notifies dependents when the value changes.
type Cell[T comparable] struct {
	source
	value T
}

// NewCell creates a cell holding v.
func NewCell[T comparable](rt *Runtime, v T) *Cell[T] {
	return &Cell[T]{source: newSource(rt), value: v}
}

// Get returns the current value and tracks it.
func (c *Cell[T]) Get() T {
	c.track()
	return c.value
}

// Peek returns the current value without tracking.
func (c *Cell[T]) Peek() T {
	return c.value
}

// Set stores v. Writing the value already held is a no-op.
func (c *Cell[T]) Set(v T) {
	if c.value == v {
		return
	}
	c.value = v
	c.notify()
}

// Update replaces the value with fn(current).
func (c *Cell[T]) Update(fn func(T) T) {
	c.Set(fn(c.value))
}

// Subscribe calls fn with every new value until cancel is called.
// fn runs as an effect, after the write that changed the value.
func (c *Cell[T]) Subscribe(fn func(T)) (cancel func()) {
	first := true
	e := NewEffect(c.rt, func() {
		v := c.Get()
		if first {
			first = false
			return
		}
		c.rt.Untracked(func() { fn(v) })
	})
	return e.Dispose
}

// Trigger is a value-less change signal, used to make collections observable.
type Trigger struct {
	source
}

// NewTrigger creates a trigger.
func NewTrigger(rt *Runtime) *Trigger {
	return &Trigger{source: newSource(rt)}
}

// Track registers the running effect as a dependent.
func (t *Trigger) Track() {
	t.track()
}

// Notify schedules every dependent.
func (t *Trigger) Notify() {
	t.notify()
}
