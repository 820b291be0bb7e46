package term

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/go-drift/fieldkit/pkg/decoration"
	"github.com/go-drift/fieldkit/pkg/field"
	"github.com/go-drift/fieldkit/pkg/layout"
	"github.com/go-drift/fieldkit/pkg/theme"
)

const ellipsis = "…"

// Frame draws a decorated field: border, floating label, prefix, suffix, and
// helper or error text below. Content rows are placed inside the overlay.
type Frame struct {
	Theme      theme.FieldThemeData
	Decoration decoration.InputDecoration
	State      decoration.FrameState
	Overlay    field.Overlay
	Padding    layout.EdgeInsets
	// Width is the outer width in cells.
	Width int
}

// FrameFor returns the frame for a snapshot drawn at width cells.
func FrameFor[T any](snap field.Snapshot[T], t theme.FieldThemeData, width int) Frame {
	return Frame{
		Theme:      t,
		Decoration: snap.Decoration,
		State:      snap.State,
		Overlay:    snap.Overlay,
		Padding:    paddingOf(snap),
		Width:      width,
	}
}

// paddingOf returns the decoration's content padding when set, otherwise the
// field's display padding.
func paddingOf[T any](snap field.Snapshot[T]) layout.EdgeInsets {
	if !snap.Decoration.ContentPadding.IsZero() {
		return snap.Decoration.ContentPadding
	}
	return snap.Padding
}

func (f Frame) style() lipgloss.Style {
	return f.Theme.FrameStyle(f.Decoration, f.State)
}

// innerWidth is the width between the left and right borders.
func (f Frame) innerWidth() int {
	s := f.style()
	return nonNegative(f.Width - s.GetBorderLeftSize() - s.GetBorderRightSize())
}

// columns splits the inner width into prefix, content and suffix cells.
func (f Frame) columns() (left, content, right int) {
	inner := f.innerWidth()
	left = clampInt(int(f.Overlay.Left)-f.style().GetBorderLeftSize(), 0, inner)
	content = clampInt(int(f.Overlay.Width), 0, inner-left)
	right = inner - left - content
	return left, content, right
}

// TextWidth is the width available to display text: the overlay width less
// horizontal display padding.
func (f Frame) TextWidth() int {
	_, content, _ := f.columns()
	return nonNegative(content - int(f.Padding.Horizontal()))
}

// Render draws rows inside the frame. rows are plain text; each is truncated
// or padded to TextWidth. When the field is empty the first row shows the
// label or hint as a placeholder.
func (f Frame) Render(rows []string) string {
	left, content, right := f.columns()
	padL, padR := int(f.Padding.Left), int(f.Padding.Right)
	text := nonNegative(content - padL - padR)

	contentStyle := f.Theme.ContentStyle(f.Decoration)
	var lines []string
	for i := 0; i < int(f.Padding.Top); i++ {
		lines = append(lines, strings.Repeat(" ", left+content+right))
	}
	for i, row := range rows {
		style := contentStyle
		if i == 0 && f.State.IsEmpty {
			row, style = f.placeholder()
		}
		var b strings.Builder
		b.WriteString(f.prefixCell(i, left))
		b.WriteString(strings.Repeat(" ", min(padL, content)))
		b.WriteString(style.Render(fit(row, text)))
		b.WriteString(strings.Repeat(" ", nonNegative(content-padL-text)))
		b.WriteString(f.suffixCell(i, right))
		lines = append(lines, b.String())
	}
	for i := 0; i < int(f.Padding.Bottom); i++ {
		lines = append(lines, strings.Repeat(" ", left+content+right))
	}

	var out []string
	if top := f.topLine(); top != "" {
		out = append(out, top)
	}
	out = append(out, f.style().BorderTop(false).Render(strings.Join(lines, "\n")))
	if below := f.belowLine(); below != "" {
		out = append(out, below)
	}
	return strings.Join(out, "\n")
}

func (f Frame) placeholder() (string, lipgloss.Style) {
	d := f.Decoration
	if !d.LabelFloats(f.State) && d.LabelText != "" {
		return d.LabelText, f.Theme.LabelStyle(d, f.State)
	}
	return d.HintText, f.Theme.HintStyle(d)
}

func (f Frame) prefixCell(row, width int) string {
	if row != 0 || f.Decoration.Prefix == "" {
		return strings.Repeat(" ", width)
	}
	return fit(f.Decoration.Prefix, width)
}

func (f Frame) suffixCell(row, width int) string {
	if row != 0 || f.Decoration.Suffix == "" {
		return strings.Repeat(" ", width)
	}
	s := runewidth.Truncate(" "+f.Decoration.Suffix, width, ellipsis)
	return runewidth.FillLeft(s, width)
}

// topLine is the top border, carrying the floating label. Borderless styles
// put a floating label on its own line instead.
func (f Frame) topLine() string {
	d := f.Decoration
	label := ""
	if d.LabelFloats(f.State) && d.LabelText != "" {
		label = d.LabelText
	}
	labelStyle := f.Theme.LabelStyle(d, f.State)

	if d.Border != decoration.BorderOutline {
		if label == "" {
			return ""
		}
		return labelStyle.Render(fit(label, f.Width))
	}

	b := f.Theme.Border
	border := lipgloss.NewStyle().Foreground(f.Theme.Accent(d, f.State))
	inner := f.innerWidth()
	if label == "" || inner < 4 {
		return border.Render(b.TopLeft + strings.Repeat(b.Top, inner) + b.TopRight)
	}
	label = runewidth.Truncate(label, inner-3, ellipsis)
	rest := inner - 3 - runewidth.StringWidth(label)
	return border.Render(b.TopLeft+b.Top+" ") +
		labelStyle.Render(label) +
		border.Render(" "+strings.Repeat(b.Top, rest)+b.TopRight)
}

// belowLine is the error or helper text. Error wins.
func (f Frame) belowLine() string {
	d := f.Decoration
	switch {
	case d.HasError():
		return f.Theme.ErrorStyle().Render(fit(d.ErrorText, f.Width))
	case d.HasHelper():
		return f.Theme.HintStyle(d).Render(fit(d.HelperText, f.Width))
	default:
		return ""
	}
}

// fit truncates or pads s to exactly width cells.
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.FillRight(runewidth.Truncate(s, width, ellipsis), width)
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
