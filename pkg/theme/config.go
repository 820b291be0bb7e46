package theme

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	fielderrors "github.com/go-drift/fieldkit/pkg/errors"
	"github.com/go-drift/fieldkit/pkg/field"
	"github.com/go-drift/fieldkit/pkg/layout"
)

// FileName is the optional configuration file read by LoadOptional.
const FileName = "fieldkit.yaml"

// File represents the optional fieldkit.yaml configuration.
type File struct {
	Theme Config `yaml:"theme"`
}

// Config contains theme overrides. Unset fields keep the defaults.
type Config struct {
	Brightness   string              `yaml:"brightness,omitempty"`
	Border       string              `yaml:"border,omitempty"`
	Colors       ColorsConfig        `yaml:"colors,omitempty"`
	Compensation *field.Compensation `yaml:"compensation,omitempty"`
	Padding      *PaddingConfig      `yaml:"padding,omitempty"`
	MinHeight    *float64            `yaml:"min_height,omitempty"`
	MaxHeight    *float64            `yaml:"max_height,omitempty"`
}

// ColorsConfig overrides palette entries. Values are anything lipgloss.Color
// accepts: an ANSI index such as "33" or a hex color such as "#5f87ff".
type ColorsConfig struct {
	Primary          string `yaml:"primary,omitempty"`
	Error            string `yaml:"error,omitempty"`
	Outline          string `yaml:"outline,omitempty"`
	OnSurface        string `yaml:"on_surface,omitempty"`
	OnSurfaceVariant string `yaml:"on_surface_variant,omitempty"`
	Disabled         string `yaml:"disabled,omitempty"`
}

// PaddingConfig is the display padding in cells.
type PaddingConfig struct {
	Top    float64 `yaml:"top"`
	Left   float64 `yaml:"left"`
	Right  float64 `yaml:"right"`
	Bottom float64 `yaml:"bottom"`
}

// LoadOptional reads fieldkit.yaml from dir if present.
func LoadOptional(dir string) (*File, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &File{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}

	return &f, nil
}

// Resolve loads fieldkit.yaml (if present) and applies it to the default
// theme. fallback is used when the file does not name a brightness or names
// "auto".
func Resolve(dir string, fallback Brightness) (*ThemeData, error) {
	f, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}
	return f.Theme.Apply(fallback)
}

// Apply builds a theme from c.
func (c Config) Apply(fallback Brightness) (*ThemeData, error) {
	brightness, err := parseBrightness(c.Brightness, fallback)
	if err != nil {
		return nil, err
	}
	t := DefaultTheme(brightness)
	c.Colors.apply(&t.ColorScheme)

	ft := DefaultFieldTheme(t.ColorScheme)
	if c.Border != "" {
		b, err := parseBorder(c.Border)
		if err != nil {
			return nil, err
		}
		ft.Border = b
	}
	if c.Compensation != nil {
		ft.Compensation = *c.Compensation
	}
	if c.Padding != nil {
		ft.DisplayPadding = layout.EdgeInsets{
			Top:    c.Padding.Top,
			Left:   c.Padding.Left,
			Right:  c.Padding.Right,
			Bottom: c.Padding.Bottom,
		}
	}
	if c.MinHeight != nil {
		ft.MinHeight = *c.MinHeight
	}
	if c.MaxHeight != nil {
		ft.MaxHeight = *c.MaxHeight
	}
	if ft.MinHeight < 0 || ft.MaxHeight < 0 || (ft.MaxHeight > 0 && ft.MaxHeight < ft.MinHeight) {
		return nil, configError(fmt.Errorf("invalid height bounds: min %v, max %v", ft.MinHeight, ft.MaxHeight))
	}
	t.FieldTheme = &ft
	return t, nil
}

func (c ColorsConfig) apply(s *ColorScheme) {
	set := func(dst *lipgloss.Color, v string) {
		if v = strings.TrimSpace(v); v != "" {
			*dst = lipgloss.Color(v)
		}
	}
	set(&s.Primary, c.Primary)
	set(&s.Error, c.Error)
	set(&s.Outline, c.Outline)
	set(&s.OnSurface, c.OnSurface)
	set(&s.OnSurfaceVariant, c.OnSurfaceVariant)
	set(&s.Disabled, c.Disabled)
}

func parseBrightness(s string, fallback Brightness) (Brightness, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return fallback, nil
	case "light":
		return BrightnessLight, nil
	case "dark":
		return BrightnessDark, nil
	default:
		return fallback, configError(fmt.Errorf("unknown brightness %q", s))
	}
}

func parseBorder(s string) (lipgloss.Border, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rounded":
		return lipgloss.RoundedBorder(), nil
	case "normal":
		return lipgloss.NormalBorder(), nil
	case "thick":
		return lipgloss.ThickBorder(), nil
	case "double":
		return lipgloss.DoubleBorder(), nil
	case "hidden":
		return lipgloss.HiddenBorder(), nil
	default:
		return lipgloss.Border{}, configError(fmt.Errorf("unknown border %q", s))
	}
}

func configError(err error) error {
	return &fielderrors.FieldError{
		Op:   "theme.Resolve",
		Kind: fielderrors.KindConfig,
		Err:  err,
	}
}
