// Package core provides the observable value model shared by fieldkit fields.
//
// # Values
//
// A [ValueController] holds a value that may be absent. Absence is expressed
// with an ok flag rather than a pointer so that any type, including slices and
// structs, can be stored directly:
//
//	tags := core.NewEmptyValueController[core.List[string]]()
//	tags.AddListener(func() {
//	    v, ok := tags.Value()
//	    fmt.Println(v, ok)
//	})
//	tags.Set(core.List[string]{"go", "ui"})
//
// # Emptiness
//
// Fields render nothing for empty values. Absent values are empty, and present
// values implementing [Sequence] are empty when they have no items. [List]
// is the ready-made Sequence for slices.
//
// # Lifetimes
//
// [DisposeBag] collects cleanup functions. [UseController] and
// [UseListenable] register controllers and subscriptions with a bag so that
// one RunDisposers call releases everything a field owns.
//
// # Constructor Conventions
//
// Controllers use NewX() constructors returning pointers:
//
//	value := core.NewValueController(time.Now(), true)
//
// This distinguishes long-lived, mutable objects (controllers) from
// immutable configuration objects, which use struct literals.
package core
