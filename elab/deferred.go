package elab

// Deferred is a handle onto a value produced by a deferred action. The
// value exists only after the owning block's queue has run; reading it
// earlier panics with a PrematureError rather than yielding a zero value.
type Deferred[T any] struct {
	owner *Block
	done  bool
	val   T
}

// DeferValue registers fn on the currently open block's deferred queue
// and returns a handle onto the value it will produce. fn runs after the
// owning block's boundary is finalized, so it may safely read boundary
// ports. It panics with a ScopeError when no scope is open.
func DeferValue[T any](d *Design, fn func() (T, error)) *Deferred[T] {
	h := &Deferred[T]{owner: d.Current()}
	d.Defer(func() error {
		v, err := fn()
		if err != nil {
			return err
		}
		h.val = v
		h.done = true
		return nil
	})
	return h
}

// Get returns the produced value, panicking with a PrematureError while
// the owning block has not run its deferred queue.
func (h *Deferred[T]) Get() T {
	if !h.done {
		name := ""
		if h.owner != nil {
			name = h.owner.Name()
		}
		panic(&PrematureError{Block: name, What: "deferred value"})
	}
	return h.val
}

// Ready reports whether the value is available.
func (h *Deferred[T]) Ready() bool { return h.done }
