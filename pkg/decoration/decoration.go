// Package decoration describes the chrome drawn around a field: label, border,
// helper and error text, and prefix and suffix content.
//
// Fields do not draw decoration themselves. They forward an [InputDecoration]
// unchanged to a frame renderer together with a [FrameState] computed for the
// current value and focus.
package decoration

import "github.com/go-drift/fieldkit/pkg/layout"

// FloatingLabelBehavior controls where the label is drawn.
type FloatingLabelBehavior int

const (
	// FloatingLabelAuto floats the label above the content when the field is
	// focused or has a value, and draws it in place of the content otherwise.
	FloatingLabelAuto FloatingLabelBehavior = iota
	// FloatingLabelAlways always floats the label.
	FloatingLabelAlways
	// FloatingLabelNever never floats the label; it disappears when the field
	// has a value.
	FloatingLabelNever
)

func (b FloatingLabelBehavior) String() string {
	switch b {
	case FloatingLabelAlways:
		return "always"
	case FloatingLabelNever:
		return "never"
	default:
		return "auto"
	}
}

// BorderStyle selects the frame outline.
type BorderStyle int

const (
	// BorderOutline draws a box around the field.
	BorderOutline BorderStyle = iota
	// BorderUnderline draws a line under the field.
	BorderUnderline
	// BorderNone draws no border.
	BorderNone
)

func (b BorderStyle) String() string {
	switch b {
	case BorderUnderline:
		return "underline"
	case BorderNone:
		return "none"
	default:
		return "outline"
	}
}

// InputDecoration provides the chrome configuration for a field.
type InputDecoration struct {
	// LabelText is shown above the content, or in place of it while empty.
	LabelText string

	// HintText is shown when the field is empty and the label has floated.
	HintText string

	// HelperText is shown below the field.
	HelperText string

	// ErrorText replaces HelperText when validation fails.
	ErrorText string

	// Prefix is rendered at the start of the field.
	Prefix string

	// Suffix is rendered at the end of the field (e.g., a calendar glyph).
	Suffix string

	// FloatingLabel controls label placement.
	FloatingLabel FloatingLabelBehavior

	// Border selects the outline style.
	Border BorderStyle

	// ContentPadding is the padding inside the frame around the content.
	ContentPadding layout.EdgeInsets

	// Disabled draws the field in its disabled style.
	Disabled bool
}

// HasError reports whether error text is set.
func (d InputDecoration) HasError() bool {
	return d.ErrorText != ""
}

// HasHelper reports whether helper text is set.
func (d InputDecoration) HasHelper() bool {
	return d.HelperText != ""
}

// WithErrorText returns a copy with ErrorText replaced.
func (d InputDecoration) WithErrorText(text string) InputDecoration {
	d.ErrorText = text
	return d
}

// FrameState is what a field computes for its frame on every render.
type FrameState struct {
	// IsEmpty is true when the field has nothing to display.
	IsEmpty bool
	// IsFocused is true when the field holds primary focus.
	IsFocused bool
}

// LabelFloats reports whether the label should be drawn above the content
// for the given state.
func (d InputDecoration) LabelFloats(state FrameState) bool {
	switch d.FloatingLabel {
	case FloatingLabelAlways:
		return true
	case FloatingLabelNever:
		return false
	default:
		return state.IsFocused || !state.IsEmpty
	}
}
