package field

import (
	"math"

	"github.com/go-drift/fieldkit/pkg/layout"
)

// HeightState is the negotiated content height and its bounds. When HasMax is
// false the height may grow without limit.
type HeightState struct {
	Current float64
	Min     float64
	Max     float64
	HasMax  bool
}

// HeightNegotiator owns the content height of a field. It grows the height
// while the content reports overflow and shrinks it back when the content's
// viewport gets smaller, always staying within [Min, Max].
//
// The negotiator reacts to scroll metrics instead of measuring content, so it
// works for any content a renderer can put in a scrollable region.
type HeightNegotiator struct {
	state        HeightState
	prevViewport float64
	hasViewport  bool
}

// NewHeightNegotiator returns a negotiator with Current set to min.
func NewHeightNegotiator(min, max float64, hasMax bool) *HeightNegotiator {
	h := &HeightNegotiator{}
	h.Init(min, max, hasMax)
	return h
}

// Init resets the negotiator to the given bounds with Current at min. A max
// below min is raised to min.
func (h *HeightNegotiator) Init(min, max float64, hasMax bool) {
	min = nonNegative(min)
	if hasMax && max < min {
		max = min
	}
	h.state = HeightState{Current: min, Min: min, Max: max, HasMax: hasMax}
	h.prevViewport = 0
	h.hasViewport = false
}

// SetMin changes the lower bound and clamps Current into the new range.
func (h *HeightNegotiator) SetMin(min float64) {
	min = nonNegative(min)
	h.state.Min = min
	if h.state.HasMax && h.state.Max < min {
		h.state.Max = min
	}
	h.state.Current = h.clamp(h.state.Current)
}

// OnScrollMetrics consumes the scroll extent and viewport size reported by the
// content region and reports whether Current changed.
//
// Overflow (maxScrollExtent > 0) grows Current by the overflow. With no
// overflow, a viewport smaller than the previous one shrinks Current by the
// difference. Negative or NaN inputs are ignored.
func (h *HeightNegotiator) OnScrollMetrics(maxScrollExtent, viewportDimension float64) bool {
	if invalidMetric(maxScrollExtent) || invalidMetric(viewportDimension) {
		return false
	}
	prev, hadPrev := h.prevViewport, h.hasViewport
	h.prevViewport, h.hasViewport = viewportDimension, true

	next := h.state.Current
	switch {
	case maxScrollExtent > 0:
		next += maxScrollExtent
	case hadPrev && prev > viewportDimension:
		next -= prev - viewportDimension
	default:
		return false
	}
	next = h.clamp(next)
	if next == h.state.Current {
		return false
	}
	h.state.Current = next
	return true
}

// OnValueBecameEmpty collapses Current to Min and reports whether it changed.
func (h *HeightNegotiator) OnValueBecameEmpty() bool {
	if h.state.Current == h.state.Min {
		return false
	}
	h.state.Current = h.state.Min
	return true
}

// Current returns the negotiated height.
func (h *HeightNegotiator) Current() float64 {
	return h.state.Current
}

// State returns a copy of the negotiator state.
func (h *HeightNegotiator) State() HeightState {
	return h.state
}

func (h *HeightNegotiator) clamp(v float64) float64 {
	hi := math.Inf(1)
	if h.state.HasMax {
		hi = h.state.Max
	}
	return layout.Clamp(v, h.state.Min, hi)
}

func invalidMetric(v float64) bool {
	return math.IsNaN(v) || v < 0
}

func nonNegative(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}
