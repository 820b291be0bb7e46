// Package term draws picker fields in a terminal with lipgloss.
//
// A [Field] pairs a field controller with a content [Viewport]. Each frame the
// program calls Layout, which measures the chrome on first use and reports the
// viewport's scroll metrics so the controller can negotiate the content
// height, then View to draw the decorated [Frame].
//
//	ctrl := field.New(cfg)
//	tags := term.NewField(ctrl, th, func(v core.List[string], width int) []string {
//	    return wrapChips(v, width)
//	})
//	tags.Layout(width)
//	fmt.Println(tags.View(width))
package term
