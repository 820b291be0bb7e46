// Package focus tracks which field has keyboard focus and moves focus
// between fields.
package focus

import (
	"math"

	"github.com/go-drift/fieldkit/pkg/layout"
)

// RectProvider is implemented by anything that can report where a focus node
// is drawn.
type RectProvider interface {
	FocusRect() layout.Rect
}

// RectFunc adapts a function to RectProvider.
type RectFunc func() layout.Rect

// FocusRect calls f.
func (f RectFunc) FocusRect() layout.Rect { return f() }

// TraversalDirection indicates the focus traversal direction.
type TraversalDirection int

const (
	// TraversalDirectionUp moves focus upward.
	TraversalDirectionUp TraversalDirection = iota

	// TraversalDirectionDown moves focus downward.
	TraversalDirectionDown

	// TraversalDirectionLeft moves focus leftward.
	TraversalDirectionLeft

	// TraversalDirectionRight moves focus rightward.
	TraversalDirectionRight
)

// FocusNode represents a focusable field.
type FocusNode struct {
	CanRequestFocus bool
	SkipTraversal   bool
	DebugLabel      string

	OnFocusChange func(hasFocus bool)

	// Rect provides the geometry for directional focus navigation.
	Rect RectProvider

	manager   *FocusManager
	hasFocus  bool
	listeners []*focusListener
}

type focusListener struct {
	fn func(hasFocus bool)
}

// NewFocusNode returns a node that can receive focus.
func NewFocusNode(label string) *FocusNode {
	return &FocusNode{CanRequestFocus: true, DebugLabel: label}
}

func (n *FocusNode) canReceiveFocus() bool {
	return n != nil && n.CanRequestFocus && !n.SkipTraversal
}

// HasFocus reports whether this node is the primary focus.
func (n *FocusNode) HasFocus() bool {
	return n.hasFocus
}

// RequestFocus requests that this node receive primary focus. Nodes that are
// not attached to a manager cannot be focused.
func (n *FocusNode) RequestFocus() {
	if !n.canReceiveFocus() || n.manager == nil {
		return
	}
	n.manager.setPrimaryFocus(n)
}

// Unfocus removes focus from this node if it has primary focus.
func (n *FocusNode) Unfocus() {
	if n.manager != nil && n.manager.PrimaryFocus == n {
		n.manager.setPrimaryFocus(nil)
	}
}

// AddFocusListener registers fn to run after OnFocusChange whenever the node
// gains or loses focus. It returns a function that removes fn; removing one
// listener leaves the others in place.
func (n *FocusNode) AddFocusListener(fn func(hasFocus bool)) func() {
	if fn == nil {
		return func() {}
	}
	l := &focusListener{fn: fn}
	n.listeners = append(n.listeners, l)
	return func() {
		for i, other := range n.listeners {
			if other == l {
				n.listeners = append(n.listeners[:i:i], n.listeners[i+1:]...)
				return
			}
		}
	}
}

// setFocusState updates the focus flag and notifies the callback, then the
// listeners registered when the change started.
func (n *FocusNode) setFocusState(hasFocus bool) {
	n.hasFocus = hasFocus
	if n.OnFocusChange != nil {
		n.OnFocusChange(hasFocus)
	}
	for _, l := range n.listeners {
		l.fn(hasFocus)
	}
}

// FocusManager owns the focus state of one screen. Nodes are traversed in
// the order they were attached.
//
// FocusManager is NOT thread-safe. It must only be used from the UI thread.
type FocusManager struct {
	PrimaryFocus *FocusNode
	nodes        []*FocusNode
}

// NewFocusManager returns an empty manager.
func NewFocusManager() *FocusManager {
	return &FocusManager{}
}

// Attach adds node to the traversal order. It returns a function that
// detaches the node again.
func (m *FocusManager) Attach(node *FocusNode) func() {
	if node == nil {
		return func() {}
	}
	node.manager = m
	m.nodes = append(m.nodes, node)
	return func() { m.Detach(node) }
}

// Detach removes node. If it had focus, focus is cleared.
func (m *FocusManager) Detach(node *FocusNode) {
	for i, n := range m.nodes {
		if n == node {
			m.nodes = append(m.nodes[:i:i], m.nodes[i+1:]...)
			break
		}
	}
	if m.PrimaryFocus == node {
		m.setPrimaryFocus(nil)
	}
	if node != nil && node.manager == m {
		node.manager = nil
	}
}

// Nodes returns the attached nodes in traversal order.
func (m *FocusManager) Nodes() []*FocusNode {
	return m.nodes
}

// SetFirstFocus focuses the first focusable node.
func (m *FocusManager) SetFirstFocus() bool {
	for _, n := range m.nodes {
		if n.canReceiveFocus() {
			m.setPrimaryFocus(n)
			return true
		}
	}
	return false
}

// MoveFocus moves focus by delta positions, wrapping around.
func (m *FocusManager) MoveFocus(delta int) bool {
	count := len(m.nodes)
	if count == 0 {
		return false
	}
	current := m.currentIndex()
	if current < 0 && delta < 0 {
		current = 0
	}

	for step := 1; step <= count; step++ {
		candidate := m.nodes[wrapIndex(current+delta*step, count)]
		if candidate.canReceiveFocus() {
			m.setPrimaryFocus(candidate)
			return true
		}
	}
	return false
}

// NextFocus moves focus to the next focusable node.
func (m *FocusManager) NextFocus() bool {
	return m.MoveFocus(1)
}

// PreviousFocus moves focus to the previous focusable node.
func (m *FocusManager) PreviousFocus() bool {
	return m.MoveFocus(-1)
}

// FocusInDirection moves focus to the nearest node in direction, judged by
// node rects. Without usable geometry it falls back to linear traversal.
func (m *FocusManager) FocusInDirection(direction TraversalDirection) bool {
	current := m.PrimaryFocus
	if current == nil {
		return m.SetFirstFocus()
	}

	currentRect, ok := rectOf(current)
	if !ok {
		return m.MoveFocus(linearDelta(direction))
	}

	var best *FocusNode
	bestScore := math.MaxFloat64
	for _, node := range m.nodes {
		if node == current || !node.canReceiveFocus() {
			continue
		}
		r, ok := rectOf(node)
		if !ok || !isInDirection(currentRect, r, direction) {
			continue
		}
		if score := directionalScore(currentRect, r, direction); score < bestScore {
			bestScore = score
			best = node
		}
	}

	if best == nil {
		return m.MoveFocus(linearDelta(direction))
	}
	m.setPrimaryFocus(best)
	return true
}

func (m *FocusManager) currentIndex() int {
	for i, n := range m.nodes {
		if n == m.PrimaryFocus {
			return i
		}
	}
	return -1
}

func (m *FocusManager) setPrimaryFocus(node *FocusNode) {
	if m.PrimaryFocus == node {
		return
	}
	if m.PrimaryFocus != nil {
		m.PrimaryFocus.setFocusState(false)
	}
	m.PrimaryFocus = node
	if node != nil {
		node.setFocusState(true)
	}
}

func rectOf(n *FocusNode) (layout.Rect, bool) {
	if n.Rect == nil {
		return layout.Rect{}, false
	}
	r := n.Rect.FocusRect()
	return r, !r.IsEmpty()
}

// wrapIndex wraps an index to stay within [0, count).
func wrapIndex(index, count int) int {
	index = index % count
	if index < 0 {
		index += count
	}
	return index
}

func linearDelta(direction TraversalDirection) int {
	if direction == TraversalDirectionUp || direction == TraversalDirectionLeft {
		return -1
	}
	return 1
}

func isInDirection(source, target layout.Rect, direction TraversalDirection) bool {
	s, t := source.Center(), target.Center()
	switch direction {
	case TraversalDirectionUp:
		return t.Y < s.Y
	case TraversalDirectionDown:
		return t.Y > s.Y
	case TraversalDirectionLeft:
		return t.X < s.X
	case TraversalDirectionRight:
		return t.X > s.X
	}
	return false
}

// directionalScore ranks candidates; lower is better. Cross-axis distance
// counts double so aligned fields win.
func directionalScore(source, target layout.Rect, direction TraversalDirection) float64 {
	s, t := source.Center(), target.Center()

	var primary, cross float64
	switch direction {
	case TraversalDirectionUp, TraversalDirectionDown:
		primary = math.Abs(t.Y - s.Y)
		cross = math.Abs(t.X - s.X)
	case TraversalDirectionLeft, TraversalDirectionRight:
		primary = math.Abs(t.X - s.X)
		cross = math.Abs(t.Y - s.Y)
	}
	return primary + cross*2
}
