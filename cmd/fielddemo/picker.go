package main

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// popup is a modal picker opened by a field's tap handler. Update returns true
// once the picker has sent its result and should be closed.
type popup interface {
	Update(msg tea.KeyMsg) (done bool)
	View(width int) string
}

// listResult is what a listPicker sends back to the waiting tap handler.
type listResult struct {
	values    []string
	cancelled bool
}

// listPicker is a single- or multi-select option list with a scrolling
// window.
type listPicker struct {
	title    string
	options  []string
	label    func(string) string
	selected map[int]bool
	multi    bool
	cursor   int
	offset   int
	height   int
	reply    chan<- listResult
	styles   popupStyles
}

func newListPicker(title string, options, current []string, multi bool, reply chan<- listResult) *listPicker {
	p := &listPicker{
		title:    title,
		options:  options,
		label:    func(s string) string { return s },
		selected: make(map[int]bool),
		multi:    multi,
		height:   6,
		reply:    reply,
		styles:   defaultPopupStyles(),
	}
	for i, opt := range options {
		for _, c := range current {
			if opt == c {
				p.selected[i] = true
				if !multi {
					p.cursor = i
				}
			}
		}
	}
	p.scrollToCursor()
	return p
}

func (p *listPicker) Update(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "up", "k":
		p.moveCursor(-1)
	case "down", "j":
		p.moveCursor(1)
	case " ":
		if p.multi {
			p.selected[p.cursor] = !p.selected[p.cursor]
		}
	case "enter":
		p.reply <- listResult{values: p.result()}
		return true
	case "esc":
		p.reply <- listResult{cancelled: true}
		return true
	}
	return false
}

func (p *listPicker) result() []string {
	if !p.multi {
		return []string{p.options[p.cursor]}
	}
	var out []string
	for i, opt := range p.options {
		if p.selected[i] {
			out = append(out, opt)
		}
	}
	return out
}

func (p *listPicker) moveCursor(dir int) {
	if len(p.options) == 0 {
		return
	}
	p.cursor = (p.cursor + dir + len(p.options)) % len(p.options)
	p.scrollToCursor()
}

// scrollToCursor keeps the cursor inside the visible window.
func (p *listPicker) scrollToCursor() {
	if p.cursor < p.offset {
		p.offset = p.cursor
	}
	if p.cursor >= p.offset+p.height {
		p.offset = p.cursor - p.height + 1
	}
}

func (p *listPicker) View(width int) string {
	var rows []string
	rows = append(rows, p.styles.title.Render(p.title))
	end := min(p.offset+p.height, len(p.options))
	for i := p.offset; i < end; i++ {
		mark := "  "
		if p.multi {
			mark = "[ ]"
			if p.selected[i] {
				mark = "[x]"
			}
		}
		line := fmt.Sprintf("%s %s", mark, p.label(p.options[i]))
		if i == p.cursor {
			line = p.styles.cursor.Render("> " + line)
		} else {
			line = "  " + line
		}
		rows = append(rows, line)
	}
	help := "enter: choose  esc: cancel"
	if p.multi {
		help = "space: toggle  " + help
	}
	rows = append(rows, p.styles.help.Render(help))
	return p.styles.box.Width(max(width-2, 0)).Render(strings.Join(rows, "\n"))
}

// dateResult is what a datePicker sends back to the waiting tap handler.
type dateResult struct {
	date      time.Time
	cancelled bool
}

// datePicker moves a day cursor with the arrow keys.
type datePicker struct {
	date   time.Time
	reply  chan<- dateResult
	styles popupStyles
}

func newDatePicker(initial time.Time, reply chan<- dateResult) *datePicker {
	return &datePicker{date: initial, reply: reply, styles: defaultPopupStyles()}
}

func (p *datePicker) Update(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "left", "h":
		p.date = p.date.AddDate(0, 0, -1)
	case "right", "l":
		p.date = p.date.AddDate(0, 0, 1)
	case "up", "k":
		p.date = p.date.AddDate(0, 0, -7)
	case "down", "j":
		p.date = p.date.AddDate(0, 0, 7)
	case "pgup":
		p.date = p.date.AddDate(0, -1, 0)
	case "pgdown":
		p.date = p.date.AddDate(0, 1, 0)
	case "enter":
		p.reply <- dateResult{date: p.date}
		return true
	case "esc":
		p.reply <- dateResult{cancelled: true}
		return true
	}
	return false
}

func (p *datePicker) View(width int) string {
	first := time.Date(p.date.Year(), p.date.Month(), 1, 0, 0, 0, 0, p.date.Location())
	var b strings.Builder
	b.WriteString(p.styles.title.Render(p.date.Format("January 2006")))
	b.WriteString("\nMo Tu We Th Fr Sa Su\n")
	lead := (int(first.Weekday()) + 6) % 7
	b.WriteString(strings.Repeat("   ", lead))
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		cell := fmt.Sprintf("%2d", d.Day())
		if d.Day() == p.date.Day() {
			cell = p.styles.cursor.Render(cell)
		}
		b.WriteString(cell)
		if d.Weekday() == time.Sunday {
			b.WriteString("\n")
		} else {
			b.WriteString(" ")
		}
	}
	b.WriteString("\n")
	b.WriteString(p.styles.help.Render("arrows: move  pgup/pgdown: month  enter: choose  esc: cancel"))
	return p.styles.box.Width(max(width-2, 0)).Render(b.String())
}

type popupStyles struct {
	box    lipgloss.Style
	title  lipgloss.Style
	cursor lipgloss.Style
	help   lipgloss.Style
}

func defaultPopupStyles() popupStyles {
	return popupStyles{
		box:    lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1),
		title:  lipgloss.NewStyle().Bold(true),
		cursor: lipgloss.NewStyle().Reverse(true),
		help:   lipgloss.NewStyle().Faint(true),
	}
}
