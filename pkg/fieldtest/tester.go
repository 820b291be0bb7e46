package fieldtest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-drift/fieldkit/pkg/core"
	"github.com/go-drift/fieldkit/pkg/field"
)

const (
	// DefaultFrameWidth is the frame width Snapshot uses.
	DefaultFrameWidth = 300
	// DefaultSettleTimeout bounds AwaitTap.
	DefaultSettleTimeout = 2 * time.Second
)

// ErrSettleTimeout is returned when AwaitTap exceeds its timeout.
var ErrSettleTimeout = errors.New("AwaitTap timed out: tap handler did not complete")

// Change records one OnChanged call.
type Change[T any] struct {
	Value T
	OK    bool
}

// FieldTester drives a field controller the way a renderer would, without
// drawing anything. Dispatched work is queued and runs only when the test
// pumps, so tests decide when the UI thread gets to run.
type FieldTester[T any] struct {
	t        testing.TB
	ctrl     *field.Controller[T]
	queue    chan func()
	changes  []Change[T]
	repaints int
	width    float64
	timeout  time.Duration
}

// NewFieldTester creates a controller for cfg and disposes it in t.Cleanup.
// Config.Dispatch is replaced with the tester's queue and Config.OnChanged is
// wrapped to record changes.
func NewFieldTester[T any](t testing.TB, cfg field.Config[T]) *FieldTester[T] {
	ft := &FieldTester[T]{
		t:       t,
		queue:   make(chan func(), 64),
		width:   DefaultFrameWidth,
		timeout: DefaultSettleTimeout,
	}
	onChanged := cfg.OnChanged
	cfg.OnChanged = func(v T, ok bool) {
		ft.changes = append(ft.changes, Change[T]{Value: v, OK: ok})
		if onChanged != nil {
			onChanged(v, ok)
		}
	}
	cfg.Dispatch = ft.Dispatch
	ft.ctrl = field.New(cfg)
	ft.ctrl.AddListener(func() { ft.repaints++ })
	t.Cleanup(ft.ctrl.Dispose)
	return ft
}

// Controller returns the controller under test.
func (ft *FieldTester[T]) Controller() *field.Controller[T] {
	return ft.ctrl
}

// Value returns the controller's value controller.
func (ft *FieldTester[T]) Value() *core.ValueController[T] {
	return ft.ctrl.ValueController()
}

// SetWidth sets the frame width used by Snapshot.
func (ft *FieldTester[T]) SetWidth(w float64) {
	ft.width = w
}

// SetTimeout sets the AwaitTap timeout.
func (ft *FieldTester[T]) SetTimeout(d time.Duration) {
	ft.timeout = d
}

// PumpLayout runs the first layout pass with m and the post-layout callback,
// leaving the controller ready.
func (ft *FieldTester[T]) PumpLayout(m field.Measurer) {
	ft.ctrl.BeginLayout(m)
	ft.ctrl.CompleteLayout()
}

// Scroll reports content scroll metrics.
func (ft *FieldTester[T]) Scroll(maxScrollExtent, viewportDimension float64) {
	ft.ctrl.OnScrollMetrics(maxScrollExtent, viewportDimension)
}

// Tap taps the field synchronously.
func (ft *FieldTester[T]) Tap() error {
	return ft.ctrl.Tap(context.Background())
}

// TapAsync taps the field asynchronously. Use AwaitTap to run the completion.
func (ft *FieldTester[T]) TapAsync() <-chan error {
	return ft.ctrl.TapAsync(context.Background())
}

// Dispatch queues fn to run on the next Pump. Safe for concurrent use.
func (ft *FieldTester[T]) Dispatch(fn func()) {
	ft.queue <- fn
}

// Pump runs all queued work and returns how many functions ran.
func (ft *FieldTester[T]) Pump() int {
	n := 0
	for {
		select {
		case fn := <-ft.queue:
			fn()
			n++
		default:
			return n
		}
	}
}

// AwaitTap pumps dispatched work until done delivers the handler result.
func (ft *FieldTester[T]) AwaitTap(done <-chan error) error {
	if done == nil {
		return field.ErrTapIgnored
	}
	deadline := time.NewTimer(ft.timeout)
	defer deadline.Stop()
	for {
		select {
		case err := <-done:
			return err
		case fn := <-ft.queue:
			fn()
		case <-deadline.C:
			return ErrSettleTimeout
		}
	}
}

// Changes returns the recorded OnChanged calls.
func (ft *FieldTester[T]) Changes() []Change[T] {
	return ft.changes
}

// Repaints returns how many times the controller notified its listeners.
func (ft *FieldTester[T]) Repaints() int {
	return ft.repaints
}

// Snapshot returns the controller snapshot at the tester's frame width.
func (ft *FieldTester[T]) Snapshot() field.Snapshot[T] {
	return ft.ctrl.Snapshot(ft.width)
}
