package errors

import (
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"
)

var (
	// DefaultHandler receives every reported error and recovered panic.
	// Until SetHandler is called it logs through a production zap logger.
	DefaultHandler ErrorHandler = NewLogHandler(nil)

	handlerMu sync.RWMutex
)

// SetHandler routes reports to h. A nil h reinstalls the zap-backed default.
func SetHandler(h ErrorHandler) {
	if h == nil {
		h = NewLogHandler(nil)
	}
	handlerMu.Lock()
	DefaultHandler = h
	handlerMu.Unlock()
}

func currentHandler() ErrorHandler {
	handlerMu.RLock()
	defer handlerMu.RUnlock()
	return DefaultHandler
}

// Report hands err to the installed handler, stamping the time when missing
// and classifying it by its errs class when Kind is KindUnknown.
func Report(err *FieldError) {
	if err == nil {
		return
	}
	stamp(&err.Timestamp)
	if err.Kind == KindUnknown {
		err.Kind = KindOf(err.Err)
	}
	if h := currentHandler(); h != nil {
		h.HandleError(err)
	}
}

// ReportPanic hands a recovered panic to the installed handler.
func ReportPanic(err *PanicError) {
	if err == nil {
		return
	}
	stamp(&err.Timestamp)
	if h := currentHandler(); h != nil {
		h.HandlePanic(err)
	}
}

func stamp(t *time.Time) {
	if t.IsZero() {
		*t = time.Now()
	}
}

// Recover reports a panic in progress under op. Defer it directly:
//
//	defer errors.Recover("field.Controller.Tap")
func Recover(op string) {
	if r := recover(); r != nil {
		ReportPanic(panicked(op, r))
	}
}

// RecoverWithCallback is Recover followed by callback(p), where p is the
// reported panic. Callers use it to turn a panic into a returned error.
func RecoverWithCallback(op string, callback func(p *PanicError)) {
	r := recover()
	if r == nil {
		return
	}
	p := panicked(op, r)
	ReportPanic(p)
	if callback != nil {
		callback(p)
	}
}

// panicked is called from the deferred recovery, so the captured stack
// still runs through the frame that panicked.
func panicked(op string, r any) *PanicError {
	return &PanicError{
		Op:         op,
		Value:      r,
		StackTrace: CaptureStack(),
		Timestamp:  time.Now(),
	}
}

// CaptureStack formats up to 32 frames of its caller's caller, one
// "function\n\tfile:line" entry per frame.
func CaptureStack() string {
	var pcs [32]uintptr
	n := runtime.Callers(3, pcs[:])
	if n == 0 {
		return ""
	}
	var sb strings.Builder
	frames := runtime.CallersFrames(pcs[:n])
	for more := true; more; {
		var f runtime.Frame
		f, more = frames.Next()
		fmt.Fprintf(&sb, "%s\n\t%s:%d\n", f.Function, f.File, f.Line)
	}
	return sb.String()
}
