package core

import "reflect"

// Sequence is implemented by values whose emptiness is decided by their
// length. A present Sequence is empty when Len returns zero.
type Sequence interface {
	Len() int
}

// List is a slice that satisfies [Sequence]. Use it as the value type of
// fields that hold several items, such as chips.
type List[E any] []E

// Len returns the number of items.
func (l List[E]) Len() int { return len(l) }

// EmptyFunc reports whether a present value should be treated as empty.
type EmptyFunc[T any] func(T) bool

// IsEmpty reports whether (v, ok) renders as empty: absent values are empty,
// present Sequences are empty when they have no items, and any other present
// value is not empty. A nil pointer to a Sequence counts as having no items.
func IsEmpty[T any](v T, ok bool) bool {
	if !ok {
		return true
	}
	if s, isSeq := any(v).(Sequence); isSeq {
		if rv := reflect.ValueOf(s); rv.Kind() == reflect.Pointer && rv.IsNil() {
			return true
		}
		return s.Len() == 0
	}
	return false
}

// IsEmptyWith is like IsEmpty but uses fn for present values when fn is
// non-nil.
func IsEmptyWith[T any](v T, ok bool, fn EmptyFunc[T]) bool {
	if !ok {
		return true
	}
	if fn != nil {
		return fn(v)
	}
	return IsEmpty(v, ok)
}
