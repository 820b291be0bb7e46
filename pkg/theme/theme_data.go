package theme

// ThemeData contains the theme configuration for a set of fields.
type ThemeData struct {
	// ColorScheme defines the color palette.
	ColorScheme ColorScheme

	// Brightness indicates if this is a light or dark theme.
	Brightness Brightness

	// FieldTheme is optional, derived from ColorScheme if nil.
	FieldTheme *FieldThemeData
}

// DefaultLightTheme returns the default light theme.
func DefaultLightTheme() *ThemeData {
	return &ThemeData{
		ColorScheme: LightColorScheme(),
		Brightness:  BrightnessLight,
	}
}

// DefaultDarkTheme returns the default dark theme.
func DefaultDarkTheme() *ThemeData {
	return &ThemeData{
		ColorScheme: DarkColorScheme(),
		Brightness:  BrightnessDark,
	}
}

// DefaultTheme returns the default theme for brightness.
func DefaultTheme(brightness Brightness) *ThemeData {
	if brightness == BrightnessDark {
		return DefaultDarkTheme()
	}
	return DefaultLightTheme()
}

// CopyWith returns a new ThemeData with the specified fields overridden.
func (t *ThemeData) CopyWith(colorScheme *ColorScheme, brightness *Brightness) *ThemeData {
	result := &ThemeData{
		ColorScheme: t.ColorScheme,
		Brightness:  t.Brightness,
	}
	if t.FieldTheme != nil {
		ft := *t.FieldTheme
		result.FieldTheme = &ft
	}
	if colorScheme != nil {
		result.ColorScheme = *colorScheme
	}
	if brightness != nil {
		result.Brightness = *brightness
	}
	return result
}

// FieldThemeOf returns the field theme, deriving it from the color scheme when
// none is set.
func (t *ThemeData) FieldThemeOf() FieldThemeData {
	if t.FieldTheme != nil {
		return *t.FieldTheme
	}
	return DefaultFieldTheme(t.ColorScheme)
}
