package main

import (
	"context"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/go-drift/fieldkit/pkg/core"
	"github.com/go-drift/fieldkit/pkg/decoration"
	"github.com/go-drift/fieldkit/pkg/field"
	"github.com/go-drift/fieldkit/pkg/focus"
	"github.com/go-drift/fieldkit/pkg/form"
	"github.com/go-drift/fieldkit/pkg/layout"
	"github.com/go-drift/fieldkit/pkg/term"
	"github.com/go-drift/fieldkit/pkg/theme"
)

var (
	tagOptions   = []string{"go", "rust", "zig", "terminal ui", "networking", "storage", "observability", "embedded"}
	colorOptions = []string{"red", "orange", "amber", "teal", "blue", "violet"}
	title        = cases.Title(language.English)
)

// formField is the model's view of one picker field, whatever its value type.
type formField interface {
	Node() *focus.FocusNode
	Layout(width int)
	View(width int) string
	SetTop(top, width, height int)
	ScrollBy(n int)
	Tap(ctx context.Context) <-chan error
	Dispose()
}

// demoField ties a form field to its terminal renderer and focus node.
type demoField[T any] struct {
	state *form.FormFieldState[T]
	term  *term.Field[T]
	node  *focus.FocusNode
	rect  layout.Rect
}

func newDemoField[T any](state *form.FormFieldState[T], ft theme.FieldThemeData, display term.DisplayFunc[T], label string) *demoField[T] {
	f := &demoField[T]{
		state: state,
		term:  term.NewField(state.Controller(), ft, display),
		node:  focus.NewFocusNode(label),
	}
	f.node.Rect = focus.RectFunc(func() layout.Rect { return f.rect })
	state.Controller().BindFocus(f.node)
	return f
}

func (f *demoField[T]) Node() *focus.FocusNode { return f.node }

func (f *demoField[T]) Layout(width int) { f.term.Layout(width) }

func (f *demoField[T]) View(width int) string { return f.term.View(width) }

func (f *demoField[T]) SetTop(top, width, height int) {
	f.rect = layout.RectFromLTWH(0, float64(top), float64(width), float64(height))
}

func (f *demoField[T]) ScrollBy(n int) { f.term.ScrollBy(n) }

func (f *demoField[T]) Tap(ctx context.Context) <-chan error {
	return f.state.Controller().TapAsync(ctx)
}

func (f *demoField[T]) Dispose() { f.state.Dispose() }

// settings is what a successful save produces.
type settings struct {
	Tags  []string
	Color string
	Date  time.Time
}

// app owns the form and opens pickers on behalf of tap handlers, which run
// off the UI goroutine.
type app struct {
	form     *form.FormState
	fields   []formField
	dispatch func(fn func())
	log      *zap.Logger
	saved    settings

	// open and close show and hide the modal picker. Only call them on the
	// UI goroutine.
	open  func(p popup)
	close func()

	tags  *form.FormFieldState[core.List[string]]
	color *form.FormFieldState[string]
	date  *form.FormFieldState[time.Time]
}

func newApp(ft theme.FieldThemeData, dispatch func(fn func()), log *zap.Logger, today time.Time) *app {
	a := &app{
		form:     form.Form{}.CreateState(),
		dispatch: dispatch,
		log:      log,
		open:     func(popup) {},
		close:    func() {},
	}

	tagsCfg := field.Config[core.List[string]]{
		Decoration: decoration.InputDecoration{
			LabelText:  "Tags",
			HintText:   "Choose one or more",
			HelperText: "Enter opens the list",
			Suffix:     "▼",
		},
		OnTap:    a.pickTags,
		Dispatch: dispatch,
		Logger:   log.Named("tags"),
	}
	theme.Configure(&tagsCfg, ft)
	a.tags = form.FormField[core.List[string]]{
		Field: tagsCfg,
		Validator: func(v core.List[string], ok bool) string {
			if !ok || len(v) == 0 {
				return "Pick at least one tag"
			}
			return ""
		},
		OnSaved: func(v core.List[string], ok bool) {
			a.saved.Tags = append([]string(nil), v...)
		},
		Autovalidate: true,
	}.CreateState(a.form)

	colorCfg := field.Config[string]{
		Decoration: decoration.InputDecoration{
			LabelText: "Color",
			Prefix:    "●",
			Suffix:    "▼",
		},
		OnTap:    a.pickColor,
		Dispatch: dispatch,
		Logger:   log.Named("color"),
	}
	theme.Configure(&colorCfg, ft)
	a.color = form.FormField[string]{
		Field: colorCfg,
		Validator: func(v string, ok bool) string {
			if !ok || v == "" {
				return "Choose a color"
			}
			return ""
		},
		OnSaved: func(v string, ok bool) { a.saved.Color = v },
	}.CreateState(a.form)

	dateCfg := field.Config[time.Time]{
		Decoration: decoration.InputDecoration{
			LabelText:  "Start date",
			HelperText: "Defaults to today",
			Border:     decoration.BorderUnderline,
		},
		OnTap:    a.pickDate,
		Dispatch: dispatch,
		Logger:   log.Named("date"),
	}
	theme.Configure(&dateCfg, ft)
	a.date = form.FormField[time.Time]{
		Field:           dateCfg,
		InitialValue:    today,
		HasInitialValue: true,
		OnSaved:         func(v time.Time, ok bool) { a.saved.Date = v },
	}.CreateState(a.form)

	a.fields = []formField{
		newDemoField(a.tags, ft, displayTags, "tags"),
		newDemoField(a.color, ft, displayColor, "color"),
		newDemoField(a.date, ft, displayDate, "date"),
	}
	return a
}

func (a *app) pickTags(ctx context.Context, current core.List[string], ok bool) error {
	reply := make(chan listResult, 1)
	a.dispatch(func() {
		p := newListPicker("Tags", tagOptions, current, true, reply)
		p.label = title.String
		a.open(p)
	})
	select {
	case r := <-reply:
		if !r.cancelled {
			a.dispatch(func() { _ = a.tags.Controller().ValueController().Set(core.List[string](r.values)) })
		}
		return nil
	case <-ctx.Done():
		a.dispatch(a.close)
		return ctx.Err()
	}
}

func (a *app) pickColor(ctx context.Context, current string, ok bool) error {
	var selected []string
	if ok {
		selected = []string{current}
	}
	reply := make(chan listResult, 1)
	a.dispatch(func() {
		p := newListPicker("Color", colorOptions, selected, false, reply)
		p.label = title.String
		a.open(p)
	})
	select {
	case r := <-reply:
		if !r.cancelled && len(r.values) == 1 {
			a.dispatch(func() { _ = a.color.Controller().ValueController().Set(r.values[0]) })
		}
		return nil
	case <-ctx.Done():
		a.dispatch(a.close)
		return ctx.Err()
	}
}

func (a *app) pickDate(ctx context.Context, current time.Time, ok bool) error {
	if !ok {
		current = time.Now()
	}
	reply := make(chan dateResult, 1)
	a.dispatch(func() { a.open(newDatePicker(current, reply)) })
	select {
	case r := <-reply:
		if !r.cancelled {
			a.dispatch(func() { _ = a.date.Controller().ValueController().Set(r.date) })
		}
		return nil
	case <-ctx.Done():
		a.dispatch(a.close)
		return ctx.Err()
	}
}

// save validates every field and saves when all pass.
func (a *app) save() bool {
	if !a.form.Validate() {
		return false
	}
	a.form.Save()
	a.log.Info("saved",
		zap.Strings("tags", a.saved.Tags),
		zap.String("color", a.saved.Color),
		zap.Time("date", a.saved.Date),
	)
	return true
}

func (a *app) dispose() {
	for _, f := range a.fields {
		f.Dispose()
	}
}

// displayTags lays tags out as chips, wrapping to width.
func displayTags(v core.List[string], width int) []string {
	var rows []string
	var row strings.Builder
	used := 0
	for _, tag := range v {
		chip := "[" + title.String(tag) + "]"
		w := runewidth.StringWidth(chip)
		if used > 0 && used+1+w > width {
			rows = append(rows, row.String())
			row.Reset()
			used = 0
		}
		if used > 0 {
			row.WriteByte(' ')
			used++
		}
		row.WriteString(chip)
		used += w
	}
	if used > 0 {
		rows = append(rows, row.String())
	}
	return rows
}

func displayColor(v string, width int) []string {
	return []string{title.String(v)}
}

func displayDate(v time.Time, width int) []string {
	return []string{v.Format("Mon, 02 Jan 2006")}
}
