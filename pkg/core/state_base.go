package core

// DisposeBag collects cleanup functions and runs them once, in reverse
// registration order. Embed it in controllers that own subscriptions.
//
// Example:
//
//	type myController struct {
//	    core.DisposeBag
//	}
//
//	func newMyController(value core.Listenable) *myController {
//	    c := &myController{}
//	    core.UseListenable(&c.DisposeBag, value, c.onChange)
//	    return c
//	}
type DisposeBag struct {
	disposers []func()
	disposed  bool
}

// OnDispose registers a cleanup function to be called when the bag is
// disposed. Returns an unregister function that can be called to remove the
// disposer. If the bag is already disposed, cleanup runs immediately.
func (b *DisposeBag) OnDispose(cleanup func()) func() {
	if cleanup == nil {
		return func() {}
	}
	if b.disposed {
		cleanup()
		return func() {}
	}

	index := len(b.disposers)
	b.disposers = append(b.disposers, cleanup)

	return func() {
		if index < len(b.disposers) {
			b.disposers[index] = nil
		}
	}
}

// RunDisposers executes all registered disposers in reverse order.
// Only the first call has any effect.
func (b *DisposeBag) RunDisposers() {
	if b.disposed {
		return
	}
	b.disposed = true

	for i := len(b.disposers) - 1; i >= 0; i-- {
		if b.disposers[i] != nil {
			b.disposers[i]()
		}
	}
	b.disposers = nil
}

// IsDisposed returns true if RunDisposers has been called.
func (b *DisposeBag) IsDisposed() bool {
	return b.disposed
}
