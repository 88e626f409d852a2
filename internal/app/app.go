// Package app wires the deck, watcher and UI model into a running program.
package app

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/scrollfx/internal/backend"
	"github.com/atomicstack/scrollfx/internal/deck"
	"github.com/atomicstack/scrollfx/internal/format/table"
	"github.com/atomicstack/scrollfx/internal/logging"
	"github.com/atomicstack/scrollfx/internal/logging/events"
	"github.com/atomicstack/scrollfx/internal/ui"
)

// Config describes user-provided application options.
type Config struct {
	DeckPath         string
	Initial          int
	Autoplay         bool
	Interval         time.Duration
	GalleryAutoplay  bool
	GalleryInterval  time.Duration
	FPS              int
	Progress         bool
	Width            int
	Height           int
	ShowFooter       bool
	Mouse            bool
	ProbeConcurrency int
	ProbeTimeout     time.Duration
	Watch            bool
	List             bool
}

// Run presents d until the user quits. With List set it prints the section
// table to out instead.
func Run(cfg Config, d *deck.Deck, out io.Writer) error {
	if cfg.List {
		return List(out, d)
	}

	var watcher *backend.Watcher
	if cfg.Watch {
		w, err := backend.NewWatcher(cfg.DeckPath, backend.DefaultDebounce)
		if err != nil {
			// The deck is already loaded; run without live reload.
			logging.Error(fmt.Errorf("watch %s: %w", cfg.DeckPath, err))
		} else {
			watcher = w
			defer func() {
				watcher.Stop()
				watcher.Wait()
			}()
		}
	}

	model := ui.NewModel(modelOptions(cfg, d, watcher))
	defer model.Close()

	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithReportFocus()}
	if cfg.Mouse {
		opts = append(opts, tea.WithMouseAllMotion())
	}
	program := tea.NewProgram(model, opts...)
	model.Bind(program)

	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		events.App.Stop("killed")
		return nil
	}
	if err != nil {
		events.App.Stop(err.Error())
		return err
	}
	events.App.Stop("quit")
	return nil
}

func modelOptions(cfg Config, d *deck.Deck, watcher *backend.Watcher) ui.Options {
	return ui.Options{
		Deck:             d,
		DeckPath:         cfg.DeckPath,
		Width:            cfg.Width,
		Height:           cfg.Height,
		ShowFooter:       cfg.ShowFooter,
		Progress:         cfg.Progress,
		Mouse:            cfg.Mouse,
		Initial:          cfg.Initial,
		Autoplay:         cfg.Autoplay,
		Interval:         cfg.Interval,
		GalleryAutoplay:  cfg.GalleryAutoplay,
		GalleryInterval:  cfg.GalleryInterval,
		FPS:              cfg.FPS,
		ProbeConcurrency: cfg.ProbeConcurrency,
		ProbeTimeout:     cfg.ProbeTimeout,
		Watcher:          watcher,
	}
}

// List writes one aligned row per section.
func List(out io.Writer, d *deck.Deck) error {
	rows := [][]string{{"#", "TITLE", "LEFT", "RIGHT", "GALLERY", "MEDIA"}}
	for _, s := range d.Sections {
		gallery := "-"
		if n := len(s.Gallery); n > 0 {
			gallery = strconv.Itoa(n)
		}
		rows = append(rows, []string{
			strconv.Itoa(s.Index + 1),
			s.Title,
			s.LeftLabel,
			s.RightLabel,
			gallery,
			filepath.Base(s.Media),
		})
	}
	lines := table.FormatWith(rows, table.Options{
		Alignments: []table.Alignment{table.AlignRight, table.AlignLeft, table.AlignLeft, table.AlignLeft, table.AlignRight},
		MaxWidth:   []int{0, 40, 20, 20},
		Gap:        2,
	})
	header := d.Title
	if header == "" {
		header = filepath.Base(d.Path)
	}
	if _, err := fmt.Fprintf(out, "%s (%d sections)\n%s\n", header, d.Len(), strings.Join(lines, "\n")); err != nil {
		return fmt.Errorf("write section list: %w", err)
	}
	return nil
}
