package main

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/go-drift/fieldkit/pkg/focus"
	"github.com/go-drift/fieldkit/pkg/theme"
)

const defaultWidth = 48

// dispatchMsg carries work posted from a tap handler goroutine onto the UI
// goroutine.
type dispatchMsg func()

// tapDoneMsg reports a finished tap.
type tapDoneMsg struct{ err error }

type model struct {
	ctx    context.Context
	cancel context.CancelFunc

	app   *app
	focus *focus.FocusManager
	popup popup

	width  int
	status string
	styles modelStyles
}

type modelStyles struct {
	title  lipgloss.Style
	status lipgloss.Style
	err    lipgloss.Style
	help   lipgloss.Style
}

func newModel(ctx context.Context, a *app, colors theme.ColorScheme) *model {
	ctx, cancel := context.WithCancel(ctx)
	m := &model{
		ctx:    ctx,
		cancel: cancel,
		app:    a,
		focus:  focus.NewFocusManager(),
		width:  defaultWidth,
		styles: modelStyles{
			title:  lipgloss.NewStyle().Bold(true).Foreground(colors.Primary),
			status: lipgloss.NewStyle().Foreground(colors.OnSurfaceVariant),
			err:    lipgloss.NewStyle().Foreground(colors.Error),
			help:   lipgloss.NewStyle().Faint(true),
		},
	}
	a.open = func(p popup) { m.popup = p }
	a.close = func() { m.popup = nil }
	for _, f := range a.fields {
		m.focus.Attach(f.Node())
	}
	m.focus.SetFirstFocus()
	return m
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dispatchMsg:
		msg()
	case tapDoneMsg:
		if msg.err != nil {
			m.status = "tap failed: " + msg.err.Error()
		}
	case tea.WindowSizeMsg:
		m.width = min(msg.Width, 2*defaultWidth)
	case tea.KeyMsg:
		if m.popup != nil {
			if m.popup.Update(msg) {
				m.popup = nil
			}
			return m, nil
		}
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c", "q":
		m.cancel()
		return tea.Quit
	case "tab":
		m.focus.NextFocus()
	case "shift+tab":
		m.focus.PreviousFocus()
	case "up":
		m.focus.FocusInDirection(focus.TraversalDirectionUp)
	case "down":
		m.focus.FocusInDirection(focus.TraversalDirectionDown)
	case "pgup":
		if f := m.focused(); f != nil {
			f.ScrollBy(-1)
		}
	case "pgdown":
		if f := m.focused(); f != nil {
			f.ScrollBy(1)
		}
	case "enter", " ":
		return m.tap()
	case "ctrl+s":
		if m.app.save() {
			m.status = "saved"
		} else {
			m.status = "fix the highlighted fields"
		}
	case "ctrl+r":
		m.app.form.Reset()
		m.status = "reset"
	}
	return nil
}

func (m *model) focused() formField {
	for _, f := range m.app.fields {
		if f.Node().HasFocus() {
			return f
		}
	}
	return nil
}

func (m *model) tap() tea.Cmd {
	f := m.focused()
	if f == nil {
		return nil
	}
	done := f.Tap(m.ctx)
	if done == nil {
		return nil
	}
	m.status = ""
	return func() tea.Msg {
		return tapDoneMsg{err: <-done}
	}
}

func (m *model) View() string {
	var b strings.Builder
	b.WriteString(m.styles.title.Render("Project settings"))
	b.WriteString("\n\n")
	top := 2
	for _, f := range m.app.fields {
		f.Layout(m.width)
		v := f.View(m.width)
		h := lipgloss.Height(v)
		f.SetTop(top, m.width, h)
		b.WriteString(v)
		b.WriteString("\n\n")
		top += h + 1
	}
	if m.popup != nil {
		b.WriteString(m.popup.View(m.width))
		b.WriteString("\n")
	}
	if m.status != "" {
		style := m.styles.status
		if strings.HasPrefix(m.status, "tap failed") || strings.HasPrefix(m.status, "fix") {
			style = m.styles.err
		}
		b.WriteString(style.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.styles.help.Render("tab/↑/↓: move  enter: open  ctrl+s: save  ctrl+r: reset  q: quit"))
	return b.String()
}
