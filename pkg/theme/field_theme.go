package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/go-drift/fieldkit/pkg/decoration"
	"github.com/go-drift/fieldkit/pkg/field"
	"github.com/go-drift/fieldkit/pkg/layout"
)

// FieldThemeData defines default styling and sizing for picker fields drawn
// in a terminal. Sizes are in cells.
type FieldThemeData struct {
	// BorderColor is the default border color.
	BorderColor lipgloss.TerminalColor
	// FocusColor is the border and label color when focused.
	FocusColor lipgloss.TerminalColor
	// ErrorColor is the border and message color when in error state.
	ErrorColor lipgloss.TerminalColor
	// LabelColor is the label text color.
	LabelColor lipgloss.TerminalColor
	// TextColor is the content text color.
	TextColor lipgloss.TerminalColor
	// HintColor is the hint and helper text color.
	HintColor lipgloss.TerminalColor
	// DisabledColor replaces every color when the field is disabled.
	DisabledColor lipgloss.TerminalColor
	// Border is the outline border.
	Border lipgloss.Border
	// DisplayPadding surrounds the displayed content.
	DisplayPadding layout.EdgeInsets
	// Compensation is passed to the field controller.
	Compensation field.Compensation
	// MinHeight and MaxHeight bound the content height. Zero MaxHeight is
	// unbounded.
	MinHeight float64
	MaxHeight float64
}

// DefaultFieldTheme returns FieldThemeData derived from a ColorScheme.
//
// Helper and error text take one row below the frame; the floating label sits
// in the top border, so no label compensation is needed.
func DefaultFieldTheme(colors ColorScheme) FieldThemeData {
	return FieldThemeData{
		BorderColor:    colors.Outline,
		FocusColor:     colors.Primary,
		ErrorColor:     colors.Error,
		LabelColor:     colors.OnSurfaceVariant,
		TextColor:      colors.OnSurface,
		HintColor:      colors.OnSurfaceVariant,
		DisabledColor:  colors.Disabled,
		Border:         lipgloss.RoundedBorder(),
		DisplayPadding: layout.EdgeInsets{Left: 1, Right: 1},
		Compensation:   field.Compensation{HelperHeight: 1, ErrorHeight: 1},
		MinHeight:      1,
		MaxHeight:      6,
	}
}

// Configure fills the sizing fields of cfg that are still unset from t.
func Configure[T any](cfg *field.Config[T], t FieldThemeData) {
	if cfg.Compensation == nil {
		c := t.Compensation
		cfg.Compensation = &c
	}
	if cfg.DisplayPadding == nil {
		p := t.DisplayPadding
		cfg.DisplayPadding = &p
	}
	if cfg.MinHeight == 0 {
		cfg.MinHeight = t.MinHeight
	}
	if cfg.MaxHeight == 0 {
		cfg.MaxHeight = t.MaxHeight
	}
}

// Accent picks the color that marks the field's state.
func (t FieldThemeData) Accent(d decoration.InputDecoration, state decoration.FrameState) lipgloss.TerminalColor {
	switch {
	case d.Disabled:
		return t.DisabledColor
	case d.HasError():
		return t.ErrorColor
	case state.IsFocused:
		return t.FocusColor
	default:
		return t.BorderColor
	}
}

// FrameStyle returns the outline style for a field.
func (t FieldThemeData) FrameStyle(d decoration.InputDecoration, state decoration.FrameState) lipgloss.Style {
	s := lipgloss.NewStyle()
	switch d.Border {
	case decoration.BorderOutline:
		s = s.Border(t.Border).BorderForeground(t.Accent(d, state))
	case decoration.BorderUnderline:
		s = s.Border(t.Border, false, false, true, false).BorderForeground(t.Accent(d, state))
	}
	return s
}

// LabelStyle returns the style for the label text.
func (t FieldThemeData) LabelStyle(d decoration.InputDecoration, state decoration.FrameState) lipgloss.Style {
	s := lipgloss.NewStyle().Foreground(t.LabelColor)
	if d.Disabled || d.HasError() || state.IsFocused {
		s = s.Foreground(t.Accent(d, state))
	}
	if state.IsFocused {
		s = s.Bold(true)
	}
	return s
}

// ContentStyle returns the style for displayed content.
func (t FieldThemeData) ContentStyle(d decoration.InputDecoration) lipgloss.Style {
	if d.Disabled {
		return lipgloss.NewStyle().Foreground(t.DisabledColor)
	}
	return lipgloss.NewStyle().Foreground(t.TextColor)
}

// HintStyle returns the style for hint and helper text.
func (t FieldThemeData) HintStyle(d decoration.InputDecoration) lipgloss.Style {
	if d.Disabled {
		return lipgloss.NewStyle().Foreground(t.DisabledColor)
	}
	return lipgloss.NewStyle().Foreground(t.HintColor).Faint(true)
}

// ErrorStyle returns the style for error text.
func (t FieldThemeData) ErrorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.ErrorColor)
}
