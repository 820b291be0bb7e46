// Package errors provides structured error handling for fieldkit.
package errors

import (
	"fmt"
	"time"

	"github.com/zeebo/errs"
)

var (
	// UseAfterDispose is the class of errors returned when a controller is
	// used after Dispose.
	UseAfterDispose = errs.Class("use after dispose")
	// HandlerFailure is the class of errors reported when a tap handler fails.
	HandlerFailure = errs.Class("handler failure")
	// MeasurementUnavailable is the class of errors reported when layout
	// measurement runs without a render context.
	MeasurementUnavailable = errs.Class("measurement unavailable")
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindDispose indicates an operation on a disposed controller.
	KindDispose
	// KindHandler indicates a failing tap handler.
	KindHandler
	// KindMeasurement indicates a layout measurement that could not run.
	KindMeasurement
	// KindPanic indicates a recovered panic.
	KindPanic
	// KindConfig indicates an invalid or unreadable configuration.
	KindConfig
)

func (k ErrorKind) String() string {
	switch k {
	case KindDispose:
		return "dispose"
	case KindHandler:
		return "handler"
	case KindMeasurement:
		return "measurement"
	case KindPanic:
		return "panic"
	case KindConfig:
		return "config"
	default:
		return "unknown"
	}
}

// FieldError represents a structured error raised by a field component.
type FieldError struct {
	// Op is the operation that failed (e.g., "field.Controller.Tap").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Field is the label of the field involved, if known.
	Field string
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *FieldError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s [%s] field=%q: %v", e.Op, e.Kind, e.Field, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "field.Controller.Tap").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorHandler receives errors reported by field components.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *FieldError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}

// KindOf returns the kind matching the error class of err.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindUnknown
	case UseAfterDispose.Has(err):
		return KindDispose
	case HandlerFailure.Has(err):
		return KindHandler
	case MeasurementUnavailable.Has(err):
		return KindMeasurement
	}
	if _, ok := err.(*PanicError); ok {
		return KindPanic
	}
	return KindUnknown
}
