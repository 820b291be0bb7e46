package term

import (
	"math"

	"github.com/go-drift/fieldkit/pkg/field"
	"github.com/go-drift/fieldkit/pkg/theme"
)

// maxLayoutPasses bounds height negotiation per Layout call. Growth settles
// in two passes and a shrink to fit in one more.
const maxLayoutPasses = 4

// DisplayFunc renders a value as plain text rows no wider than width cells.
type DisplayFunc[T any] func(value T, width int) []string

// Field draws a field controller in a terminal. It measures the chrome on the
// first Layout and feeds the content viewport's scroll metrics back to the
// controller so the frame grows and shrinks with its content.
//
// Field is NOT thread-safe. Use it from the UI thread only.
type Field[T any] struct {
	ctrl     *field.Controller[T]
	theme    theme.FieldThemeData
	display  DisplayFunc[T]
	viewport Viewport
}

// NewField returns a renderer for ctrl.
func NewField[T any](ctrl *field.Controller[T], t theme.FieldThemeData, display DisplayFunc[T]) *Field[T] {
	return &Field[T]{ctrl: ctrl, theme: t, display: display}
}

// Controller returns the field controller.
func (f *Field[T]) Controller() *field.Controller[T] {
	return f.ctrl
}

// Viewport returns the content viewport.
func (f *Field[T]) Viewport() *Viewport {
	return &f.viewport
}

// Layout lays the field out at width cells. The first call measures the
// chrome and completes the controller's layout phase.
func (f *Field[T]) Layout(width int) {
	if f.ctrl.Phase() == field.PhaseUninitialized {
		f.ctrl.BeginLayout(Measure(f.ctrl.Decoration(), f.theme))
		f.ctrl.CompleteLayout()
	}
	for pass := 0; pass < maxLayoutPasses; pass++ {
		before := f.ctrl.Height().Current
		f.fill(width)
		f.ctrl.OnScrollMetrics(f.metrics())
		if f.ctrl.Height().Current == before {
			break
		}
	}
	f.fill(width)
}

// fill loads the displayed value into the viewport at the current height.
func (f *Field[T]) fill(width int) {
	snap := f.ctrl.Snapshot(float64(width))
	frame := FrameFor(snap, f.theme, width)
	var lines []string
	if snap.HasValue && !snap.State.IsEmpty && f.display != nil {
		lines = f.display(snap.Value, frame.TextWidth())
	}
	f.viewport.SetContent(lines)
	f.viewport.SetHeight(contentRows(snap))
}

// metrics reports the viewport to the controller. The viewport dimension is
// the rows the content actually fills, so removing rows shrinks the frame.
func (f *Field[T]) metrics() (maxScrollExtent, viewportDimension float64) {
	extent, dim := f.viewport.Metrics()
	if n := float64(f.viewport.Len()); n > 0 && n < dim {
		dim = n
	}
	return extent, dim
}

// ScrollBy scrolls the content by n rows.
func (f *Field[T]) ScrollBy(n int) {
	f.viewport.ScrollBy(n)
}

// View renders the field at width cells. Call Layout first.
func (f *Field[T]) View(width int) string {
	snap := f.ctrl.Snapshot(float64(width))
	d := snap.Decoration
	d.Disabled = d.Disabled || f.ctrl.Disabled()
	snap.Decoration = d
	return FrameFor(snap, f.theme, width).Render(f.viewport.Visible())
}

func contentRows[T any](snap field.Snapshot[T]) int {
	return nonNegative(int(math.Round(snap.ContentHeight - paddingOf(snap).Vertical())))
}
