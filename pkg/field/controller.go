package field

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/go-drift/fieldkit/pkg/core"
	"github.com/go-drift/fieldkit/pkg/decoration"
	fielderrors "github.com/go-drift/fieldkit/pkg/errors"
	"github.com/go-drift/fieldkit/pkg/focus"
	"github.com/go-drift/fieldkit/pkg/layout"
)

// ErrTapIgnored is returned by Tap when the field does not accept taps: it is
// not ready, it is disabled, it has no handler, or a previous tap is still
// running.
var ErrTapIgnored = errors.New("field: tap ignored")

// Snapshot is the composed field state a renderer draws from.
type Snapshot[T any] struct {
	// Value is the displayed value; HasValue is false when absent.
	Value    T
	HasValue bool
	// State carries the booleans the frame renderer needs.
	State decoration.FrameState
	// Decoration is the field's decoration, unchanged.
	Decoration decoration.InputDecoration
	// Phase is the controller lifecycle stage.
	Phase Phase
	// ContentHeight is the negotiated content height.
	ContentHeight float64
	// FrameHeight is ContentHeight plus space reserved for helper or error text.
	FrameHeight float64
	// Overlay positions the content inside the frame.
	Overlay Overlay
	// Padding surrounds the displayed content inside the overlay.
	Padding layout.EdgeInsets
	// Offsets are the measured chrome widths.
	Offsets ChromeOffsets
	// Tapping is true while a tap handler is running.
	Tapping bool
}

// Controller coordinates a field's value, height and chrome measurement, and
// runs the tap handler.
//
// A Controller moves through [PhaseUninitialized], [PhaseMeasuring] and
// [PhaseReady]. The renderer calls BeginLayout with chrome measurements after
// its first layout pass and CompleteLayout from its post-layout callback. From
// then on the renderer forwards scroll metrics with OnScrollMetrics and reads
// [Snapshot] to draw.
//
// Controller implements [core.Listenable]; listeners run whenever the
// snapshot may have changed.
//
// Controller is NOT thread-safe. Use it from the UI thread only; TapAsync
// hops back to it through Config.Dispatch.
type Controller[T any] struct {
	core.DisposeBag

	cfg          Config[T]
	compensation Compensation
	padding      layout.EdgeInsets
	decoration   decoration.InputDecoration
	disabled     bool

	value  *core.ValueController[T]
	height *HeightNegotiator
	chrome ChromeMeasurer

	phase   Phase
	shown   T
	shownOK bool
	empty   bool
	focused bool
	tapping bool

	changes core.ChangeNotifier
	log     *zap.Logger
}

// New creates a controller for cfg.
func New[T any](cfg Config[T]) *Controller[T] {
	c := &Controller[T]{
		cfg:          cfg,
		compensation: cfg.compensation(),
		padding:      cfg.displayPadding(),
		decoration:   cfg.Decoration,
		disabled:     cfg.Disabled,
		log:          cfg.logger(),
	}
	c.height = NewHeightNegotiator(cfg.MinHeight, cfg.MaxHeight, cfg.MaxHeight > 0)

	if cfg.Value != nil {
		c.value = cfg.Value
	} else {
		var opts []core.ValueOption[T]
		if cfg.ShouldNotify != nil {
			opts = append(opts, core.WithShouldNotify(cfg.ShouldNotify))
		}
		c.value = core.UseController(&c.DisposeBag,
			core.NewValueController(cfg.InitialValue, cfg.HasInitialValue, opts...))
	}
	core.UseListenable(&c.DisposeBag, c.value, c.onValueChange)
	c.syncDisplay()
	if cfg.OnTap != nil && cfg.Dispatch == nil {
		c.log.Debug("no dispatch configured, TapAsync completes on the handler goroutine",
			zap.String("field", c.decoration.LabelText))
	}
	return c
}

// ValueController returns the controller holding the field value.
func (c *Controller[T]) ValueController() *core.ValueController[T] {
	return c.value
}

// Phase returns the lifecycle stage.
func (c *Controller[T]) Phase() Phase {
	return c.phase
}

// AddListener registers fn to run whenever the snapshot may have changed.
func (c *Controller[T]) AddListener(fn func()) func() {
	return c.changes.AddListener(fn)
}

// Value returns the displayed value.
func (c *Controller[T]) Value() (T, bool) {
	return c.shown, c.shownOK
}

// IsEmpty reports whether the displayed value is empty.
func (c *Controller[T]) IsEmpty() bool {
	return c.empty
}

// IsFocused reports whether the field has focus.
func (c *Controller[T]) IsFocused() bool {
	return c.focused
}

// Height returns the height negotiator state.
func (c *Controller[T]) Height() HeightState {
	return c.height.State()
}

// Decoration returns the current decoration.
func (c *Controller[T]) Decoration() decoration.InputDecoration {
	return c.decoration
}

// SetDecoration replaces the decoration. Form wrappers use it to inject error
// text.
func (c *Controller[T]) SetDecoration(d decoration.InputDecoration) {
	if c.phase == PhaseDisposed || d == c.decoration {
		return
	}
	c.decoration = d
	c.changes.NotifyListeners()
}

// SetDisabled enables or disables taps.
func (c *Controller[T]) SetDisabled(disabled bool) {
	if c.phase == PhaseDisposed || disabled == c.disabled {
		return
	}
	c.disabled = disabled
	c.changes.NotifyListeners()
}

// Disabled reports whether taps are ignored because of configuration.
func (c *Controller[T]) Disabled() bool {
	return c.disabled || c.decoration.Disabled
}

// SetFocused updates the focus state.
func (c *Controller[T]) SetFocused(focused bool) {
	if c.phase == PhaseDisposed || focused == c.focused {
		return
	}
	c.focused = focused
	c.changes.NotifyListeners()
}

// BindFocus follows node's focus changes until the controller is disposed.
// The node's OnFocusChange callback and other bound fields are left alone.
func (c *Controller[T]) BindFocus(node *focus.FocusNode) {
	if node == nil || c.phase == PhaseDisposed {
		return
	}
	c.OnDispose(node.AddFocusListener(c.SetFocused))
	c.SetFocused(node.HasFocus())
}

// BeginLayout records chrome measurements from the renderer's first layout
// pass and moves the controller to PhaseMeasuring. A nil measurer is
// tolerated: offsets default to zero and the fallback is reported to the
// error handler. Calls outside PhaseUninitialized are ignored.
func (c *Controller[T]) BeginLayout(m Measurer) {
	if c.phase != PhaseUninitialized {
		return
	}
	c.phase = PhaseMeasuring
	c.measure(m)
}

// CompleteLayout is the post-layout callback. It moves the controller from
// PhaseMeasuring to PhaseReady.
func (c *Controller[T]) CompleteLayout() {
	if c.phase != PhaseMeasuring {
		return
	}
	c.phase = PhaseReady
	c.log.Debug("field ready",
		zap.String("field", c.decoration.LabelText),
		zap.Float64("prefix", c.chrome.Offsets().PrefixWidth),
		zap.Float64("suffix", c.chrome.Offsets().SuffixWidth),
		zap.Float64("min_height", c.height.State().Min))
	c.changes.NotifyListeners()
}

// Remeasure discards the chrome measurements and records m instead. Use it
// after swapping prefix or suffix content. It only applies in PhaseReady.
func (c *Controller[T]) Remeasure(m Measurer) {
	if c.phase != PhaseReady {
		return
	}
	c.chrome.Reset()
	c.measure(m)
	c.changes.NotifyListeners()
}

func (c *Controller[T]) measure(m Measurer) {
	if m == nil {
		fielderrors.Report(&fielderrors.FieldError{
			Op:    "field.Controller.measure",
			Kind:  fielderrors.KindMeasurement,
			Field: c.decoration.LabelText,
			Err:   fielderrors.MeasurementUnavailable.New("no render context"),
		})
		c.chrome.RecordPrefixWidth(0)
		c.chrome.RecordSuffixWidth(0)
		return
	}
	c.chrome.RecordPrefixWidth(m.PrefixWidth())
	c.chrome.RecordSuffixWidth(m.SuffixWidth())
	if c.cfg.MinHeight > 0 {
		return
	}
	if h, ok := m.NaturalContentHeight(); ok {
		c.chrome.RecordContentNaturalHeight(h)
	}
	if h, ok := c.chrome.NaturalHeight(); ok {
		c.height.SetMin(h)
		if c.empty {
			c.height.OnValueBecameEmpty()
		}
	}
}

// OnScrollMetrics forwards content scroll metrics to the height negotiator.
func (c *Controller[T]) OnScrollMetrics(maxScrollExtent, viewportDimension float64) {
	if c.phase == PhaseDisposed {
		return
	}
	if c.height.OnScrollMetrics(maxScrollExtent, viewportDimension) {
		c.changes.NotifyListeners()
	}
}

// Snapshot composes the state a renderer needs for a frame of frameWidth.
func (c *Controller[T]) Snapshot(frameWidth float64) Snapshot[T] {
	hasError, hasHelper := c.decoration.HasError(), c.decoration.HasHelper()
	content := c.height.Current()
	return Snapshot[T]{
		Value:    c.shown,
		HasValue: c.shownOK,
		State: decoration.FrameState{
			IsEmpty:   c.empty,
			IsFocused: c.focused,
		},
		Decoration:    c.decoration,
		Phase:         c.phase,
		ContentHeight: content,
		FrameHeight:   FrameHeightAdjustment(content, hasError, hasHelper, c.compensation),
		Overlay:       OverlayBounds(frameWidth, c.chrome.Offsets(), c.compensation, hasError, hasHelper),
		Padding:       c.padding,
		Offsets:       c.chrome.Offsets(),
		Tapping:       c.tapping,
	}
}

// Tap runs the tap handler on the calling goroutine with the current value.
// The displayed state is re-synced afterwards whether the handler succeeds,
// fails or panics. A handler error is returned unchanged; a panic is
// recovered and returned as *errors.PanicError. Tap returns ErrTapIgnored
// when the field does not accept the tap.
func (c *Controller[T]) Tap(ctx context.Context) (err error) {
	if !c.beginTap() {
		return ErrTapIgnored
	}
	defer mon.Task()(&ctx)(&err)
	defer c.endTap(&err)

	v, ok := c.value.Value()
	return c.cfg.OnTap(ctx, v, ok)
}

func (c *Controller[T]) endTap(errp *error) {
	if r := recover(); r != nil {
		p := &fielderrors.PanicError{
			Op:         "field.Controller.Tap",
			Value:      r,
			StackTrace: fielderrors.CaptureStack(),
			Timestamp:  time.Now(),
		}
		fielderrors.ReportPanic(p)
		*errp = p
	}
	c.completeTap(*errp)
}

// TapAsync runs the tap handler on a new goroutine and returns immediately.
// When the handler returns, completion is dispatched through Config.Dispatch:
// the displayed state is re-synced and the handler's error is sent on the
// returned channel, which is then closed. TapAsync returns nil when the field
// does not accept the tap.
//
// If the controller is disposed before the handler returns, the completion
// only delivers the error.
//
// Without Config.Dispatch the completion runs on the handler goroutine and
// races with any UI-thread use of the controller, such as Snapshot. Set
// Dispatch whenever a UI loop reads the field while a tap is pending.
func (c *Controller[T]) TapAsync(ctx context.Context) <-chan error {
	if !c.beginTap() {
		return nil
	}
	finish := mon.Task()(&ctx)
	v, ok := c.value.Value()
	handler := c.cfg.OnTap
	dispatch := c.cfg.dispatch()
	done := make(chan error, 1)

	go func() {
		err := runHandler(ctx, handler, v, ok)
		dispatch(func() {
			c.completeTap(err)
			finish(&err)
			done <- err
			close(done)
		})
	}()
	return done
}

func runHandler[T any](ctx context.Context, handler TapHandler[T], v T, ok bool) (err error) {
	defer fielderrors.RecoverWithCallback("field.Controller.TapAsync", func(p *fielderrors.PanicError) {
		err = p
	})
	return handler(ctx, v, ok)
}

func (c *Controller[T]) beginTap() bool {
	reason := ""
	switch {
	case c.phase != PhaseReady:
		reason = "not ready"
	case c.Disabled():
		reason = "disabled"
	case c.cfg.OnTap == nil:
		reason = "no handler"
	case c.tapping:
		reason = "in flight"
	}
	if reason != "" {
		mon.Counter("tap_ignored").Inc(1)
		c.log.Debug("tap ignored",
			zap.String("field", c.decoration.LabelText),
			zap.Stringer("phase", c.phase),
			zap.String("reason", reason))
		return false
	}
	c.tapping = true
	c.changes.NotifyListeners()
	return true
}

func (c *Controller[T]) completeTap(err error) {
	c.tapping = false
	if err != nil {
		mon.Counter("tap_failed").Inc(1)
		var p *fielderrors.PanicError
		if !errors.As(err, &p) {
			fielderrors.Report(&fielderrors.FieldError{
				Op:    "field.Controller.Tap",
				Kind:  fielderrors.KindHandler,
				Field: c.decoration.LabelText,
				Err:   fielderrors.HandlerFailure.Wrap(err),
			})
		}
	}
	if c.phase == PhaseDisposed {
		return
	}
	c.syncDisplay()
	c.changes.NotifyListeners()
}

// onValueChange is the value controller listener.
func (c *Controller[T]) onValueChange() {
	c.syncDisplay()
	c.changes.NotifyListeners()
	if c.cfg.OnChanged != nil {
		v, ok := c.value.Value()
		c.cfg.OnChanged(v, ok)
	}
}

// syncDisplay copies the controller value into the displayed value and
// collapses the height when the value is empty.
func (c *Controller[T]) syncDisplay() {
	c.shown, c.shownOK = c.value.Value()
	c.empty = core.IsEmptyWith(c.shown, c.shownOK, c.cfg.IsEmpty)
	if c.empty {
		c.height.OnValueBecameEmpty()
	}
}

// Dispose detaches from the value controller, disposes it if the field
// created it, and releases the focus binding. Handler completions that arrive
// later do not touch the field.
func (c *Controller[T]) Dispose() {
	if c.phase == PhaseDisposed {
		return
	}
	c.phase = PhaseDisposed
	c.RunDisposers()
	c.changes.Dispose()
	c.log.Debug("field disposed", zap.String("field", c.decoration.LabelText))
}
