package field

import (
	"github.com/go-drift/fieldkit/pkg/layout"
)

const (
	// DefaultHelperHeight is the space reserved below the frame for helper text.
	DefaultHelperHeight = 21
	// DefaultErrorHeight is the space reserved below the frame for error text.
	DefaultErrorHeight = 21
)

// Compensation corrects the content overlay for chrome whose size the field
// cannot observe: helper and error text below the frame, a floating label
// above it, and theme-specific insets.
type Compensation struct {
	// HelperHeight is reserved below the frame when helper text is shown.
	HelperHeight float64 `yaml:"helper_height"`
	// ErrorHeight is reserved below the frame when error text is shown.
	ErrorHeight float64 `yaml:"error_height"`
	// FloatingLabelTop shifts the overlay down to clear a floating label.
	FloatingLabelTop float64 `yaml:"floating_label_top"`
	// Left shifts the overlay right, after the prefix.
	Left float64 `yaml:"left"`
	// Right narrows the overlay, before the suffix.
	Right float64 `yaml:"right"`
	// Top shifts the overlay down.
	Top float64 `yaml:"top"`
}

// DefaultCompensation returns the default compensation.
func DefaultCompensation() Compensation {
	return Compensation{
		HelperHeight: DefaultHelperHeight,
		ErrorHeight:  DefaultErrorHeight,
	}
}

// Overlay positions the content region inside the frame.
type Overlay struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
	Width  float64
}

// Rect returns the overlay rectangle for a frame of the given height, in frame
// coordinates.
func (o Overlay) Rect(frameHeight float64) layout.Rect {
	h := frameHeight - o.Top - o.Bottom
	if h < 0 {
		h = 0
	}
	return layout.RectFromLTWH(o.Left, o.Top, o.Width, h)
}

// FrameHeightAdjustment returns base plus the space reserved for error or
// helper text. Error wins when both are shown.
func FrameHeightAdjustment(base float64, hasError, hasHelper bool, c Compensation) float64 {
	switch {
	case hasError:
		return base + c.ErrorHeight
	case hasHelper:
		return base + c.HelperHeight
	default:
		return base
	}
}

// OverlayBounds positions the content overlay in a frame of frameWidth so it
// never underlaps the prefix or suffix chrome. Width is never negative.
func OverlayBounds(frameWidth float64, offsets ChromeOffsets, c Compensation, hasError, hasHelper bool) Overlay {
	width := frameWidth - offsets.PrefixWidth - offsets.SuffixWidth - c.Right
	if width < 0 {
		width = 0
	}
	return Overlay{
		Left:   offsets.PrefixWidth + c.Left,
		Top:    c.FloatingLabelTop + c.Top,
		Right:  offsets.SuffixWidth + c.Right,
		Bottom: FrameHeightAdjustment(0, hasError, hasHelper, c),
		Width:  width,
	}
}
