// Command fielddemo is an interactive terminal form built from fieldkit picker
// fields.
//
// Usage:
//
//	fielddemo [-theme-dir dir] [-log file]
//
// The theme is read from fieldkit.yaml in the theme directory when present.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"
	"github.com/spacemonkeygo/monkit/v3"
	"go.uber.org/zap"

	fielderrors "github.com/go-drift/fieldkit/pkg/errors"
	"github.com/go-drift/fieldkit/pkg/theme"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("fielddemo", flag.ContinueOnError)
	themeDir := fs.String("theme-dir", ".", "directory containing "+theme.FileName)
	logPath := fs.String("log", "fielddemo.log", "debug log file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	log, err := newLogger(*logPath)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	fielderrors.SetHandler(fielderrors.NewLogHandler(log))

	fallback := theme.BrightnessLight
	if termenv.NewOutput(os.Stdout).HasDarkBackground() {
		fallback = theme.BrightnessDark
	}
	td, err := theme.Resolve(*themeDir, fallback)
	if err != nil {
		return err
	}
	log.Debug("theme resolved", zap.Stringer("brightness", td.Brightness))

	var p *tea.Program
	dispatch := func(fn func()) { p.Send(dispatchMsg(fn)) }

	a := newApp(td.FieldThemeOf(), dispatch, log, today())
	defer a.dispose()
	m := newModel(context.Background(), a, td.ColorScheme)
	defer m.cancel()

	p = tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run: %w", err)
	}

	logStats(log)
	return nil
}

func newLogger(path string) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	log, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("open log %s: %w", path, err)
	}
	return log, nil
}

// logStats writes the collected tap metrics to the debug log.
func logStats(log *zap.Logger) {
	monkit.Default.Stats(func(key monkit.SeriesKey, field string, val float64) {
		log.Debug("stat",
			zap.String("series", key.Measurement),
			zap.String("field", field),
			zap.Float64("value", val),
		)
	})
}

func today() time.Time {
	y, mo, d := time.Now().Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, time.Local)
}
