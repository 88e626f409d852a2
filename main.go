package main

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/atomicstack/scrollfx/internal/app"
	"github.com/atomicstack/scrollfx/internal/config"
	"github.com/atomicstack/scrollfx/internal/deck"
	"github.com/atomicstack/scrollfx/internal/logging"
	"github.com/atomicstack/scrollfx/internal/logging/events"
)

func main() {
	cfg := config.MustLoad()
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(cfg.Logging.FilePath)
	logging.SetTraceEnabled(cfg.Logging.Trace)

	tty := collectTTYDetails()
	events.App.Start(startupTracePayload(cfg, tty))

	d, err := deck.Load(cfg.App.DeckPath)
	if err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	if !cfg.App.List && tty.Size == nil {
		fmt.Fprintln(os.Stderr, "Error: scrollfx needs a terminal (use --list to print the deck)")
		os.Exit(1)
	}
	if err := app.Run(cfg.App, d, os.Stdout); err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// startupTracePayload bundles the parsed configuration and terminal report
// for the app.start trace event.
func startupTracePayload(cfg config.Config, tty ttyReport) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags)+2)
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath

	payload := map[string]interface{}{
		"argv":   cfg.Args,
		"flags":  flags,
		"config": cfg,
		"deck":   cfg.App.DeckPath,
		"tty":    tty,
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	}
	return payload
}

type ttyProbe struct {
	Name     string `json:"name"`
	Terminal bool   `json:"is_terminal"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
	Error    string `json:"error,omitempty"`
}

// ttyReport lists every standard descriptor. Size is the first one that is a
// terminal with a readable size, which is what the program will render to.
type ttyReport struct {
	Size   *ttyProbe  `json:"size,omitempty"`
	Probes []ttyProbe `json:"probes"`
}

func probeTTY(name string, f *os.File) ttyProbe {
	p := ttyProbe{Name: name}
	fd := int(f.Fd())
	if fd < 0 || !term.IsTerminal(fd) {
		return p
	}
	p.Terminal = true
	w, h, err := term.GetSize(fd)
	if err != nil {
		p.Error = err.Error()
		return p
	}
	p.Width, p.Height = w, h
	return p
}

func collectTTYDetails() ttyReport {
	files := []struct {
		name string
		f    *os.File
	}{
		{"stdin", os.Stdin},
		{"stdout", os.Stdout},
		{"stderr", os.Stderr},
	}
	var r ttyReport
	for _, entry := range files {
		p := probeTTY(entry.name, entry.f)
		r.Probes = append(r.Probes, p)
		if r.Size == nil && p.Terminal && p.Error == "" {
			sized := p
			r.Size = &sized
		}
	}
	return r
}
