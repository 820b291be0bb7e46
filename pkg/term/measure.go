package term

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/go-drift/fieldkit/pkg/decoration"
	"github.com/go-drift/fieldkit/pkg/field"
	"github.com/go-drift/fieldkit/pkg/theme"
)

// Measure measures the chrome of a field drawn with t. The prefix width covers
// the left border and the prefix text with its gap; the suffix width likewise
// covers the suffix and the right border. The natural content height is one
// row.
func Measure(d decoration.InputDecoration, t theme.FieldThemeData) field.Measurements {
	style := t.FrameStyle(d, decoration.FrameState{})
	m := field.Measurements{
		Prefix:           float64(style.GetBorderLeftSize()),
		Suffix:           float64(style.GetBorderRightSize()),
		NaturalHeight:    1,
		HasNaturalHeight: true,
	}
	if d.Prefix != "" {
		m.Prefix += float64(lipgloss.Width(d.Prefix) + 1)
	}
	if d.Suffix != "" {
		m.Suffix += float64(lipgloss.Width(d.Suffix) + 1)
	}
	return m
}
