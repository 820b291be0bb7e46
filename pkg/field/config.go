package field

import (
	"context"

	"go.uber.org/zap"

	"github.com/go-drift/fieldkit/pkg/core"
	"github.com/go-drift/fieldkit/pkg/decoration"
	"github.com/go-drift/fieldkit/pkg/layout"
)

// TapHandler is called with the current value when the field is tapped. It
// typically opens a picker and stores the choice in the field's value
// controller. It may block; see [Controller.TapAsync].
type TapHandler[T any] func(ctx context.Context, value T, ok bool) error

// DefaultDisplayPadding is the padding around displayed content.
var DefaultDisplayPadding = layout.EdgeInsets{Top: 10, Left: 5, Right: 5, Bottom: 5}

// Config configures a [Controller].
//
// Zero values select defaults where noted. Pointer fields distinguish "unset"
// from an explicit zero.
type Config[T any] struct {
	// Value is an externally owned value controller. When nil the field
	// creates and owns one, seeded with InitialValue.
	Value *core.ValueController[T]
	// InitialValue seeds an owned value controller when HasInitialValue is set.
	InitialValue    T
	HasInitialValue bool
	// ShouldNotify is the change predicate for an owned value controller.
	ShouldNotify core.ShouldNotifyFunc[T]

	// IsEmpty overrides emptiness for present values. See [core.IsEmptyWith].
	IsEmpty core.EmptyFunc[T]

	// OnTap is invoked when the field is tapped.
	OnTap TapHandler[T]
	// OnChanged is called after every notified value change.
	OnChanged func(value T, ok bool)

	// Decoration is forwarded to the frame renderer.
	Decoration decoration.InputDecoration

	// MinHeight is the smallest content height. Zero derives it from the
	// natural content height measured on first layout.
	MinHeight float64
	// MaxHeight caps the content height. Zero means unbounded.
	MaxHeight float64

	// Compensation overrides DefaultCompensation when non-nil.
	Compensation *Compensation
	// DisplayPadding overrides DefaultDisplayPadding when non-nil.
	DisplayPadding *layout.EdgeInsets

	// Disabled ignores taps.
	Disabled bool

	// Dispatch runs fn on the UI thread. TapAsync uses it to deliver handler
	// completion. Nil runs fn immediately on the handler goroutine, which is
	// only safe when nothing else touches the controller during a tap.
	Dispatch func(fn func())

	// Logger receives debug logs. Nil disables logging.
	Logger *zap.Logger
}

func (c Config[T]) compensation() Compensation {
	if c.Compensation != nil {
		return *c.Compensation
	}
	return DefaultCompensation()
}

func (c Config[T]) displayPadding() layout.EdgeInsets {
	if c.DisplayPadding != nil {
		return *c.DisplayPadding
	}
	return DefaultDisplayPadding
}

func (c Config[T]) dispatch() func(func()) {
	if c.Dispatch != nil {
		return c.Dispatch
	}
	return func(fn func()) { fn() }
}

func (c Config[T]) logger() *zap.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return zap.NewNop()
}
