package theme

import "github.com/charmbracelet/lipgloss"

// Brightness indicates whether a theme is light or dark.
type Brightness int

const (
	// BrightnessLight is a light theme: dark text on a light terminal.
	BrightnessLight Brightness = iota
	// BrightnessDark is a dark theme: light text on a dark terminal.
	BrightnessDark
)

// String returns a human-readable representation of the brightness.
func (b Brightness) String() string {
	switch b {
	case BrightnessLight:
		return "light"
	case BrightnessDark:
		return "dark"
	default:
		return "unknown"
	}
}

// ColorScheme is the palette field themes are derived from.
type ColorScheme struct {
	// Primary marks the focused field.
	Primary lipgloss.Color
	// Error marks a field with error text.
	Error lipgloss.Color
	// Outline is the unfocused border color.
	Outline lipgloss.Color
	// OnSurface is the content text color.
	OnSurface lipgloss.Color
	// OnSurfaceVariant is used for labels, hints and helper text.
	OnSurfaceVariant lipgloss.Color
	// Disabled is used for every part of a disabled field.
	Disabled lipgloss.Color
}

// LightColorScheme returns the default light palette (ANSI 256 colors).
func LightColorScheme() ColorScheme {
	return ColorScheme{
		Primary:          lipgloss.Color("25"),
		Error:            lipgloss.Color("160"),
		Outline:          lipgloss.Color("245"),
		OnSurface:        lipgloss.Color("235"),
		OnSurfaceVariant: lipgloss.Color("241"),
		Disabled:         lipgloss.Color("250"),
	}
}

// DarkColorScheme returns the default dark palette (ANSI 256 colors).
func DarkColorScheme() ColorScheme {
	return ColorScheme{
		Primary:          lipgloss.Color("75"),
		Error:            lipgloss.Color("203"),
		Outline:          lipgloss.Color("240"),
		OnSurface:        lipgloss.Color("252"),
		OnSurfaceVariant: lipgloss.Color("246"),
		Disabled:         lipgloss.Color("238"),
	}
}
