package field_test

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/go-drift/fieldkit/pkg/core"
	"github.com/go-drift/fieldkit/pkg/decoration"
	fielderrors "github.com/go-drift/fieldkit/pkg/errors"
	"github.com/go-drift/fieldkit/pkg/field"
	"github.com/go-drift/fieldkit/pkg/fieldtest"
	"github.com/go-drift/fieldkit/pkg/focus"
)

type tags = core.List[string]

// silenceErrors routes reported errors into a slice for the test's duration.
func silenceErrors(t *testing.T) *recordingHandler {
	t.Helper()
	h := &recordingHandler{}
	old := fielderrors.DefaultHandler
	fielderrors.SetHandler(h)
	t.Cleanup(func() { fielderrors.SetHandler(old) })
	return h
}

type recordingHandler struct {
	errs   []*fielderrors.FieldError
	panics []*fielderrors.PanicError
}

func (h *recordingHandler) HandleError(err *fielderrors.FieldError) { h.errs = append(h.errs, err) }
func (h *recordingHandler) HandlePanic(err *fielderrors.PanicError) { h.panics = append(h.panics, err) }

func TestController_EmptyToFilled(t *testing.T) {
	tester := fieldtest.NewFieldTester(t, field.Config[tags]{MinHeight: 25, MaxHeight: 250})
	tester.PumpLayout(field.Measurements{})
	tester.Scroll(50, 100)

	if err := tester.Value().Set(tags{"a", "b"}); err != nil {
		t.Fatal(err)
	}

	snap := tester.Snapshot()
	if snap.State.IsEmpty {
		t.Error("IsEmpty should be false")
	}
	if snap.ContentHeight != 75 {
		t.Errorf("height reset unexpectedly: ContentHeight = %v, want 75", snap.ContentHeight)
	}
	changes := tester.Changes()
	if len(changes) != 1 || !changes[0].OK || len(changes[0].Value) != 2 {
		t.Fatalf("Changes = %+v, want one change with [a b]", changes)
	}
}

func TestController_ClearingListCollapsesHeight(t *testing.T) {
	tester := fieldtest.NewFieldTester(t, field.Config[tags]{
		InitialValue:    tags{"a"},
		HasInitialValue: true,
		MinHeight:       25,
		MaxHeight:       250,
	})
	tester.PumpLayout(field.Measurements{})
	tester.Scroll(80, 25)
	if got := tester.Snapshot().ContentHeight; got != 105 {
		t.Fatalf("ContentHeight = %v, want 105", got)
	}

	_ = tester.Value().Set(tags{})

	snap := tester.Snapshot()
	if !snap.State.IsEmpty {
		t.Error("empty list should be empty")
	}
	if snap.ContentHeight != 25 {
		t.Errorf("ContentHeight = %v, want reset to min 25", snap.ContentHeight)
	}
}

func TestController_GrowThenShrink(t *testing.T) {
	tester := fieldtest.NewFieldTester(t, field.Config[tags]{MinHeight: 25, MaxHeight: 250})
	tester.PumpLayout(field.Measurements{})

	before := tester.Repaints()
	tester.Scroll(50, 100)
	if got := tester.Snapshot().ContentHeight; got != 75 {
		t.Fatalf("ContentHeight = %v, want 75", got)
	}
	tester.Scroll(0, 60)
	if got := tester.Snapshot().ContentHeight; got != 35 {
		t.Fatalf("ContentHeight = %v, want 35", got)
	}
	if tester.Repaints()-before != 2 {
		t.Errorf("expected 2 repaints, got %d", tester.Repaints()-before)
	}
}

func TestController_HandlerFailureStillResyncs(t *testing.T) {
	rec := silenceErrors(t)
	boom := errors.New("dialog crashed")

	var tester *fieldtest.FieldTester[string]
	tester = fieldtest.NewFieldTester(t, field.Config[string]{
		Decoration: decoration.InputDecoration{LabelText: "Color"},
		OnTap: func(ctx context.Context, value string, ok bool) error {
			tester.Dispatch(func() { _ = tester.Value().Set("teal") })
			return boom
		},
	})
	tester.PumpLayout(field.Measurements{})

	err := tester.AwaitTap(tester.TapAsync())
	if err != boom {
		t.Fatalf("err = %v, want handler error unchanged", err)
	}
	if v, ok := tester.Controller().Value(); !ok || v != "teal" {
		t.Errorf("displayed value = %q, %v; want teal", v, ok)
	}
	if tester.Snapshot().Tapping {
		t.Error("Tapping should be cleared after completion")
	}
	if len(rec.errs) != 1 || rec.errs[0].Kind != fielderrors.KindHandler || rec.errs[0].Field != "Color" {
		t.Fatalf("reported errors = %+v, want one handler failure for Color", rec.errs)
	}
	if !fielderrors.HandlerFailure.Has(rec.errs[0].Err) {
		t.Error("reported error should carry the HandlerFailure class")
	}
}

func TestController_SyncTapReturnsHandlerError(t *testing.T) {
	silenceErrors(t)
	boom := errors.New("nope")
	var seen string
	var seenOK bool

	var tester *fieldtest.FieldTester[string]
	tester = fieldtest.NewFieldTester(t, field.Config[string]{
		InitialValue:    "red",
		HasInitialValue: true,
		OnTap: func(ctx context.Context, value string, ok bool) error {
			seen, seenOK = value, ok
			_ = tester.Value().Set("blue")
			return boom
		},
	})
	tester.PumpLayout(field.Measurements{})

	if err := tester.Tap(); err != boom {
		t.Fatalf("Tap() = %v, want %v", err, boom)
	}
	if seen != "red" || !seenOK {
		t.Errorf("handler saw (%q, %v), want (red, true)", seen, seenOK)
	}
	if v, _ := tester.Controller().Value(); v != "blue" {
		t.Errorf("displayed value = %q, want blue", v)
	}
}

func TestController_TapPanicIsRecovered(t *testing.T) {
	rec := silenceErrors(t)
	tester := fieldtest.NewFieldTester(t, field.Config[int]{
		OnTap: func(ctx context.Context, value int, ok bool) error {
			panic("picker exploded")
		},
	})
	tester.PumpLayout(field.Measurements{})

	err := tester.Tap()
	var p *fielderrors.PanicError
	if !errors.As(err, &p) || p.Value != "picker exploded" {
		t.Fatalf("Tap() = %v, want PanicError", err)
	}
	if len(rec.panics) != 1 {
		t.Errorf("reported panics = %d, want 1", len(rec.panics))
	}
	if len(rec.errs) != 0 {
		t.Errorf("panics should not also be reported as handler failures: %+v", rec.errs)
	}
	if tester.Snapshot().Tapping {
		t.Error("Tapping should be cleared after a panic")
	}

	err = tester.AwaitTap(tester.TapAsync())
	if !errors.As(err, &p) {
		t.Fatalf("TapAsync error = %v, want PanicError", err)
	}
}

func TestController_TapIgnoredUntilReady(t *testing.T) {
	calls := 0
	tester := fieldtest.NewFieldTester(t, field.Config[int]{
		OnTap: func(ctx context.Context, value int, ok bool) error {
			calls++
			return nil
		},
	})

	if err := tester.Tap(); !errors.Is(err, field.ErrTapIgnored) {
		t.Errorf("Tap before layout = %v, want ErrTapIgnored", err)
	}
	tester.Controller().BeginLayout(field.Measurements{})
	if tester.Controller().Phase() != field.PhaseMeasuring {
		t.Fatalf("Phase = %v, want measuring", tester.Controller().Phase())
	}
	if err := tester.Tap(); !errors.Is(err, field.ErrTapIgnored) {
		t.Errorf("Tap while measuring = %v, want ErrTapIgnored", err)
	}
	tester.Controller().CompleteLayout()
	if err := tester.Tap(); err != nil {
		t.Errorf("Tap when ready = %v", err)
	}
	if calls != 1 {
		t.Errorf("handler calls = %d, want 1", calls)
	}
}

func TestController_TapIgnoredWhenDisabled(t *testing.T) {
	tester := fieldtest.NewFieldTester(t, field.Config[int]{
		Disabled: true,
		OnTap:    func(ctx context.Context, value int, ok bool) error { return nil },
	})
	tester.PumpLayout(field.Measurements{})
	if err := tester.Tap(); !errors.Is(err, field.ErrTapIgnored) {
		t.Errorf("Tap on disabled field = %v, want ErrTapIgnored", err)
	}
	tester.Controller().SetDisabled(false)
	if err := tester.Tap(); err != nil {
		t.Errorf("Tap after enabling = %v", err)
	}
	if tester.TapAsync() == nil {
		t.Error("TapAsync should start once enabled")
	}
}

func TestController_ConcurrentTapIgnoredWhileInFlight(t *testing.T) {
	release := make(chan struct{})
	tester := fieldtest.NewFieldTester(t, field.Config[int]{
		OnTap: func(ctx context.Context, value int, ok bool) error {
			<-release
			return nil
		},
	})
	tester.PumpLayout(field.Measurements{})

	first := tester.TapAsync()
	if first == nil {
		t.Fatal("first tap should start")
	}
	if !tester.Snapshot().Tapping {
		t.Error("Tapping should be set while the handler runs")
	}
	if second := tester.TapAsync(); second != nil {
		t.Error("second tap should be ignored while the first is pending")
	}
	if err := tester.Tap(); !errors.Is(err, field.ErrTapIgnored) {
		t.Errorf("sync tap while pending = %v, want ErrTapIgnored", err)
	}

	close(release)
	if err := tester.AwaitTap(first); err != nil {
		t.Fatal(err)
	}
	if tester.TapAsync() == nil {
		t.Error("tap after completion should start")
	}
}

func TestController_MissingDispatchIsLogged(t *testing.T) {
	noop := func(context.Context, int, bool) error { return nil }
	tests := []struct {
		name   string
		cfg    field.Config[int]
		logged bool
	}{
		{"handler without dispatch", field.Config[int]{OnTap: noop}, true},
		{"handler with dispatch", field.Config[int]{OnTap: noop, Dispatch: func(fn func()) { fn() }}, false},
		{"no handler", field.Config[int]{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs, logs := observer.New(zapcore.DebugLevel)
			tt.cfg.Logger = zap.New(obs)
			tt.cfg.Decoration.LabelText = "Count"
			ctrl := field.New(tt.cfg)
			defer ctrl.Dispose()

			entries := logs.FilterMessageSnippet("no dispatch").All()
			if got := len(entries) == 1; got != tt.logged {
				t.Fatalf("dispatch warning logged = %v, want %v", got, tt.logged)
			}
			if tt.logged && entries[0].ContextMap()["field"] != "Count" {
				t.Errorf("warning fields = %v", entries[0].ContextMap())
			}
		})
	}
}

func TestController_ExternalValueNotDisposed(t *testing.T) {
	value := core.NewValueController("x", true)
	ctrl := field.New(field.Config[string]{Value: value})

	if value.ListenerCount() != 1 {
		t.Fatalf("ListenerCount = %d, want 1", value.ListenerCount())
	}
	ctrl.Dispose()
	if value.IsDisposed() {
		t.Error("externally owned value controller must not be disposed")
	}
	if value.ListenerCount() != 0 {
		t.Errorf("field listener should be detached, ListenerCount = %d", value.ListenerCount())
	}
	if err := value.Set("y"); err != nil {
		t.Errorf("external controller should still accept updates: %v", err)
	}
	if ctrl.Phase() != field.PhaseDisposed {
		t.Errorf("Phase = %v, want disposed", ctrl.Phase())
	}
}

func TestController_OwnedValueDisposed(t *testing.T) {
	ctrl := field.New(field.Config[string]{})
	value := ctrl.ValueController()
	ctrl.Dispose()
	ctrl.Dispose()
	if !value.IsDisposed() {
		t.Error("owned value controller should be disposed with the field")
	}
	if err := value.Set("late"); !fielderrors.UseAfterDispose.Has(err) {
		t.Errorf("Set after dispose = %v, want UseAfterDispose", err)
	}
}

func TestController_LateCompletionAfterDispose(t *testing.T) {
	silenceErrors(t)
	release := make(chan struct{})
	value := core.NewEmptyValueController[string]()
	var tester *fieldtest.FieldTester[string]
	tester = fieldtest.NewFieldTester(t, field.Config[string]{
		Value: value,
		OnTap: func(ctx context.Context, v string, ok bool) error {
			<-release
			tester.Dispatch(func() { _ = value.Set("after unmount") })
			return nil
		},
	})
	tester.PumpLayout(field.Measurements{})

	done := tester.TapAsync()
	tester.Controller().Dispose()
	close(release)

	if err := tester.AwaitTap(done); err != nil {
		t.Fatal(err)
	}
	if _, ok := tester.Controller().Value(); ok {
		t.Error("disposed field should not pick up late values")
	}
	if len(tester.Changes()) != 0 {
		t.Errorf("OnChanged fired after dispose: %+v", tester.Changes())
	}
	if v, _ := value.Value(); v != "after unmount" {
		t.Errorf("external controller value = %q", v)
	}
}

func TestController_MeasurementUnavailableDefaultsToZero(t *testing.T) {
	rec := silenceErrors(t)
	tester := fieldtest.NewFieldTester(t, field.Config[int]{MinHeight: 3})
	tester.PumpLayout(nil)

	if got := tester.Snapshot().Offsets; got != (field.ChromeOffsets{}) {
		t.Errorf("Offsets = %+v, want zero", got)
	}
	if tester.Controller().Phase() != field.PhaseReady {
		t.Errorf("Phase = %v, want ready", tester.Controller().Phase())
	}
	if len(rec.errs) != 1 || rec.errs[0].Kind != fielderrors.KindMeasurement {
		t.Errorf("reported = %+v, want one measurement error", rec.errs)
	}
}

func TestController_NaturalHeightBecomesMin(t *testing.T) {
	tester := fieldtest.NewFieldTester(t, field.Config[int]{MaxHeight: 10})
	tester.PumpLayout(field.Measurements{NaturalHeight: 3, HasNaturalHeight: true})

	h := tester.Controller().Height()
	if h.Min != 3 || h.Current != 3 {
		t.Errorf("Height = %+v, want min and current 3", h)
	}
}

func TestController_ExplicitMinIgnoresNaturalHeight(t *testing.T) {
	tester := fieldtest.NewFieldTester(t, field.Config[int]{MinHeight: 2})
	tester.PumpLayout(field.Measurements{NaturalHeight: 5, HasNaturalHeight: true})
	if got := tester.Controller().Height().Min; got != 2 {
		t.Errorf("Min = %v, want configured 2", got)
	}
}

func TestController_ChromeMeasuredOnce(t *testing.T) {
	tester := fieldtest.NewFieldTester(t, field.Config[int]{})
	tester.PumpLayout(field.Measurements{Prefix: 4, Suffix: 2})
	tester.Controller().BeginLayout(field.Measurements{Prefix: 40, Suffix: 20})

	if got := tester.Snapshot().Offsets; got != (field.ChromeOffsets{PrefixWidth: 4, SuffixWidth: 2}) {
		t.Errorf("Offsets = %+v, want first measurement", got)
	}

	tester.Controller().Remeasure(field.Measurements{Prefix: 6, Suffix: 1})
	if got := tester.Snapshot().Offsets; got != (field.ChromeOffsets{PrefixWidth: 6, SuffixWidth: 1}) {
		t.Errorf("Offsets after Remeasure = %+v", got)
	}
}

func TestController_SnapshotGeometry(t *testing.T) {
	comp := field.Compensation{HelperHeight: 1, ErrorHeight: 2, FloatingLabelTop: 1}
	tester := fieldtest.NewFieldTester(t, field.Config[string]{
		MinHeight:    3,
		Compensation: &comp,
		Decoration:   decoration.InputDecoration{LabelText: "Date", HelperText: "when"},
	})
	tester.SetWidth(40)
	tester.PumpLayout(field.Measurements{Prefix: 2, Suffix: 3})

	snap := tester.Snapshot()
	if snap.FrameHeight != 4 {
		t.Errorf("FrameHeight = %v, want 3 + helper 1", snap.FrameHeight)
	}
	want := field.Overlay{Left: 2, Top: 1, Right: 3, Bottom: 1, Width: 35}
	if snap.Overlay != want {
		t.Errorf("Overlay = %+v, want %+v", snap.Overlay, want)
	}
	if snap.Padding != field.DefaultDisplayPadding {
		t.Errorf("Padding = %+v, want default", snap.Padding)
	}

	tester.Controller().SetDecoration(snap.Decoration.WithErrorText("required"))
	snap = tester.Snapshot()
	if snap.FrameHeight != 5 || snap.Overlay.Bottom != 2 {
		t.Errorf("with error: FrameHeight = %v, Bottom = %v; want 5, 2", snap.FrameHeight, snap.Overlay.Bottom)
	}
}

func TestController_CustomEmptiness(t *testing.T) {
	tester := fieldtest.NewFieldTester(t, field.Config[string]{
		IsEmpty: func(s string) bool { return s == "" },
	})
	_ = tester.Value().Set("")
	if !tester.Snapshot().State.IsEmpty {
		t.Error("blank string should be empty with custom IsEmpty")
	}
	_ = tester.Value().Set("x")
	if tester.Snapshot().State.IsEmpty {
		t.Error("non-blank string should not be empty")
	}
}

func TestController_NilListPointerIsEmpty(t *testing.T) {
	tester := fieldtest.NewFieldTester(t, field.Config[*tags]{
		InitialValue:    &tags{"a"},
		HasInitialValue: true,
	})
	tester.PumpLayout(field.Measurements{})
	if tester.Snapshot().State.IsEmpty {
		t.Fatal("list with an item should not be empty")
	}

	if err := tester.Value().Set(nil); err != nil {
		t.Fatal(err)
	}
	snap := tester.Snapshot()
	if !snap.HasValue {
		t.Error("nil pointer is a present value")
	}
	if !snap.State.IsEmpty || !tester.Controller().IsEmpty() {
		t.Error("nil list pointer should be empty")
	}
}

func TestController_OwnedShouldNotify(t *testing.T) {
	tester := fieldtest.NewFieldTester(t, field.Config[string]{
		InitialValue:    "a",
		HasInitialValue: true,
		ShouldNotify:    func(prev, next string) bool { return len(prev) != len(next) },
	})
	_ = tester.Value().Set("b")
	_ = tester.Value().Set("bb")
	if n := len(tester.Changes()); n != 1 {
		t.Errorf("Changes = %d, want 1", n)
	}
}

func TestController_BindFocus(t *testing.T) {
	manager := focus.NewFocusManager()
	node := focus.NewFocusNode("tags")
	manager.Attach(node)
	prevCalls := 0
	node.OnFocusChange = func(bool) { prevCalls++ }

	ctrl := field.New(field.Config[int]{})
	ctrl.BindFocus(node)

	node.RequestFocus()
	if !ctrl.IsFocused() || !ctrl.Snapshot(10).State.IsFocused {
		t.Error("field should follow node focus")
	}
	node.Unfocus()
	if ctrl.IsFocused() {
		t.Error("field should lose focus with node")
	}
	if prevCalls != 2 {
		t.Errorf("existing callback calls = %d, want 2", prevCalls)
	}

	ctrl.Dispose()
	node.RequestFocus()
	if ctrl.IsFocused() {
		t.Error("disposed field should not follow focus")
	}
	if prevCalls != 3 {
		t.Errorf("existing callback should keep running, calls = %d", prevCalls)
	}
}

func TestController_BindFocusSharedNode(t *testing.T) {
	manager := focus.NewFocusManager()
	node := focus.NewFocusNode("date")
	manager.Attach(node)

	first := field.New(field.Config[int]{})
	second := field.New(field.Config[int]{})
	first.BindFocus(node)
	second.BindFocus(node)
	callbackCalls := 0
	node.OnFocusChange = func(bool) { callbackCalls++ }

	first.Dispose()
	node.RequestFocus()
	if !second.IsFocused() {
		t.Error("disposing one field should not unhook another bound to the same node")
	}
	if first.IsFocused() {
		t.Error("disposed field should not follow focus")
	}
	if callbackCalls != 1 {
		t.Errorf("OnFocusChange set after binding ran %d times, want 1", callbackCalls)
	}

	second.Dispose()
	node.Unfocus()
	if callbackCalls != 2 {
		t.Errorf("OnFocusChange should survive dispose, calls = %d", callbackCalls)
	}
}
