package term

// Viewport shows a window of content lines and reports scroll metrics in
// rows. The zero value is an empty viewport of height zero.
type Viewport struct {
	lines  []string
	height int
	offset int
}

// SetContent replaces the content lines, keeping the scroll offset in range.
func (v *Viewport) SetContent(lines []string) {
	v.lines = lines
	v.clamp()
}

// SetHeight sets the number of visible rows.
func (v *Viewport) SetHeight(h int) {
	if h < 0 {
		h = 0
	}
	v.height = h
	v.clamp()
}

// Height returns the number of visible rows.
func (v *Viewport) Height() int {
	return v.height
}

// Len returns the number of content lines.
func (v *Viewport) Len() int {
	return len(v.lines)
}

// Offset returns the index of the first visible line.
func (v *Viewport) Offset() int {
	return v.offset
}

// ScrollBy moves the window by n lines.
func (v *Viewport) ScrollBy(n int) {
	v.offset += n
	v.clamp()
}

// Metrics returns how far the content can scroll past the window and the
// window size.
func (v *Viewport) Metrics() (maxScrollExtent, viewportDimension float64) {
	return float64(v.maxOffset()), float64(v.height)
}

// Visible returns exactly Height rows; rows past the content are empty.
func (v *Viewport) Visible() []string {
	rows := make([]string, v.height)
	for i := range rows {
		if j := v.offset + i; j < len(v.lines) {
			rows[i] = v.lines[j]
		}
	}
	return rows
}

func (v *Viewport) maxOffset() int {
	if n := len(v.lines) - v.height; n > 0 {
		return n
	}
	return 0
}

func (v *Viewport) clamp() {
	if m := v.maxOffset(); v.offset > m {
		v.offset = m
	}
	if v.offset < 0 {
		v.offset = 0
	}
}
