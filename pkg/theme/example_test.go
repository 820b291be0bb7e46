package theme_test

import (
	"fmt"

	"github.com/go-drift/fieldkit/pkg/field"
	"github.com/go-drift/fieldkit/pkg/theme"
)

// This example shows how to customize a theme using CopyWith.
func ExampleThemeData_CopyWith() {
	// Start with the default light theme
	baseTheme := theme.DefaultLightTheme()

	// Create a custom color scheme with a different primary color
	customColors := theme.LightColorScheme()
	customColors.Primary = "30" // Teal

	customTheme := baseTheme.CopyWith(&customColors, nil)
	fmt.Println(customTheme.FieldThemeOf().FocusColor)
	// Output: 30
}

// This example shows how a theme fills in a field's sizing.
func ExampleConfigure() {
	cfg := field.Config[string]{MaxHeight: 3}
	theme.Configure(&cfg, theme.DefaultDarkTheme().FieldThemeOf())
	fmt.Println(cfg.MinHeight, cfg.MaxHeight, cfg.Compensation.ErrorHeight)
	// Output: 1 3 1
}
