package core

// Listenable is implemented by objects that notify listeners when they change.
type Listenable interface {
	// AddListener registers fn and returns a function that removes it.
	AddListener(fn func()) func()
}

// Disposable is implemented by objects that release resources on Dispose.
type Disposable interface {
	Dispose()
}

type listenerEntry struct {
	fn      func()
	removed bool
}

// ChangeNotifier keeps an ordered list of listeners. Embed it in controllers
// to get listener management.
//
// Listeners run in insertion order. A listener added while NotifyListeners is
// running is not called until the next notification; a listener removed while
// NotifyListeners is running is not called if it has not run yet.
//
// ChangeNotifier is NOT thread-safe. It must only be used from the UI thread.
type ChangeNotifier struct {
	entries []*listenerEntry
}

// AddListener registers fn and returns an idempotent unsubscribe function.
func (n *ChangeNotifier) AddListener(fn func()) func() {
	if fn == nil {
		return func() {}
	}
	entry := &listenerEntry{fn: fn}
	n.entries = append(n.entries, entry)
	return func() {
		n.remove(entry)
	}
}

func (n *ChangeNotifier) remove(entry *listenerEntry) {
	if entry.removed {
		return
	}
	entry.removed = true
	for i, e := range n.entries {
		if e == entry {
			n.entries = append(n.entries[:i:i], n.entries[i+1:]...)
			return
		}
	}
}

// NotifyListeners calls every registered listener once.
func (n *ChangeNotifier) NotifyListeners() {
	if len(n.entries) == 0 {
		return
	}
	pass := make([]*listenerEntry, len(n.entries))
	copy(pass, n.entries)
	for _, entry := range pass {
		if entry.removed {
			continue
		}
		entry.fn()
	}
}

// ListenerCount returns the number of registered listeners.
func (n *ChangeNotifier) ListenerCount() int {
	return len(n.entries)
}

// HasListeners reports whether any listener is registered.
func (n *ChangeNotifier) HasListeners() bool {
	return len(n.entries) > 0
}

// Dispose removes all listeners.
func (n *ChangeNotifier) Dispose() {
	for _, entry := range n.entries {
		entry.removed = true
	}
	n.entries = nil
}
