package core

import (
	"reflect"

	"github.com/go-drift/fieldkit/pkg/errors"
)

// ShouldNotifyFunc decides whether a change from previous to current is worth
// notifying listeners about. It is only consulted when both values are present.
type ShouldNotifyFunc[T any] func(previous, current T) bool

// ValueOption configures a ValueController.
type ValueOption[T any] func(*ValueController[T])

// WithShouldNotify installs a custom change predicate. Without one, a change is
// any value that is not reflect.DeepEqual to the previous value.
func WithShouldNotify[T any](fn ShouldNotifyFunc[T]) ValueOption[T] {
	return func(c *ValueController[T]) {
		c.shouldNotify = fn
	}
}

// ValueController holds a nullable value of type T and notifies listeners
// when it changes.
//
// A value is absent ("null") when the ok flag is false. Moving between absent
// and present always notifies. Between two present values the change predicate
// decides; see [WithShouldNotify].
//
// Listeners receive no arguments; they read the new value through Value. The
// value is stored before any listener runs.
//
// ValueController is NOT thread-safe. Set it from the UI thread, or hop there
// with the dispatcher the field was configured with.
type ValueController[T any] struct {
	ChangeNotifier

	value        T
	ok           bool
	shouldNotify ShouldNotifyFunc[T]
	disposed     bool
}

// NewValueController creates a controller holding initial. Pass ok=false for
// an absent initial value.
func NewValueController[T any](initial T, ok bool, opts ...ValueOption[T]) *ValueController[T] {
	c := &ValueController[T]{value: initial, ok: ok}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewEmptyValueController creates a controller with no value.
func NewEmptyValueController[T any](opts ...ValueOption[T]) *ValueController[T] {
	var zero T
	return NewValueController(zero, false, opts...)
}

// Value returns the current value and whether it is present.
func (c *ValueController[T]) Value() (T, bool) {
	return c.value, c.ok
}

// IsEmpty reports whether the current value is empty. See [IsEmpty].
func (c *ValueController[T]) IsEmpty() bool {
	return IsEmpty(c.value, c.ok)
}

// Set stores v as the present value.
func (c *ValueController[T]) Set(v T) error {
	return c.Update(v, true)
}

// Clear removes the value.
func (c *ValueController[T]) Clear() error {
	var zero T
	return c.Update(zero, false)
}

// Update stores (v, ok) and notifies listeners if the change rule says the
// value changed. It fails with an error of class [errors.UseAfterDispose]
// once the controller has been disposed.
func (c *ValueController[T]) Update(v T, ok bool) error {
	if c.disposed {
		return errors.UseAfterDispose.New("update on disposed value controller")
	}
	changed := c.changed(v, ok)
	c.value, c.ok = v, ok
	if changed {
		c.NotifyListeners()
	}
	return nil
}

func (c *ValueController[T]) changed(v T, ok bool) bool {
	if c.ok != ok {
		return true
	}
	if !ok {
		return false
	}
	if c.shouldNotify != nil {
		return c.shouldNotify(c.value, v)
	}
	return !reflect.DeepEqual(c.value, v)
}

// IsDisposed reports whether Dispose has been called.
func (c *ValueController[T]) IsDisposed() bool {
	return c.disposed
}

// Dispose removes all listeners. Later updates fail with
// [errors.UseAfterDispose]. Dispose is idempotent.
func (c *ValueController[T]) Dispose() {
	if c.disposed {
		return
	}
	c.disposed = true
	c.ChangeNotifier.Dispose()
}
