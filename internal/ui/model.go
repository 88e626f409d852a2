package ui

import (
	"net/http"
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/atomicstack/scrollfx/internal/backend"
	"github.com/atomicstack/scrollfx/internal/clock"
	"github.com/atomicstack/scrollfx/internal/deck"
	"github.com/atomicstack/scrollfx/internal/logging/events"
	"github.com/atomicstack/scrollfx/internal/preload"
	"github.com/atomicstack/scrollfx/internal/surface"
	"github.com/atomicstack/scrollfx/internal/theme"
	"github.com/atomicstack/scrollfx/internal/ui/command"
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Options configures a Model.
type Options struct {
	Deck     *deck.Deck
	DeckPath string

	Width      int
	Height     int
	ShowFooter bool
	Progress   bool
	Mouse      bool

	Initial          int
	Autoplay         bool
	Interval         time.Duration
	GalleryInterval  time.Duration
	GalleryAutoplay  bool
	FPS              int
	RowsPerSection   int
	ProbeConcurrency int
	ProbeTimeout     time.Duration

	// Prober defaults to local files plus http(s).
	Prober preload.Prober
	// Scheduler defaults to timers delivered through the event loop. Tests
	// pass a manual clock.
	Scheduler clock.Scheduler
	Watcher   *backend.Watcher
	Bus       *command.Bus
}

// Model implements the Bubble Tea model for the presenter.
type Model struct {
	opts        Options
	deck        *deck.Deck
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool

	loop    *loopScheduler
	sched   clock.Scheduler
	lock    *surface.Lock
	primary *surface.Primary
	overlay *surface.Overlay
	runner  *preload.Runner
	watcher *backend.Watcher
	bus     *command.Bus
	zone    *zone.Manager

	keys     keyMap
	help     help.Model
	spinner  spinner.Model
	spinning bool
	progress progress.Model
	jump     *jumpState
	hovered  map[string]bool

	errMsg     string
	infoMsg    string
	infoExpire time.Time
	quitting   bool

	handlers map[reflect.Type]msgHandler
}

// NewModel builds the model and mounts the deck. Probing starts from Init.
func NewModel(opts Options) *Model {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.GalleryInterval <= 0 {
		opts.GalleryInterval = surface.DefaultGalleryInterval
	}
	m := &Model{
		opts:    opts,
		deck:    opts.Deck,
		watcher: opts.Watcher,
		bus:     opts.Bus,
		keys:    defaultKeyMap(),
		help:    help.New(),
		hovered: make(map[string]bool),
	}
	if m.bus == nil {
		m.bus = command.New()
	}
	m.sched = opts.Scheduler
	if m.sched == nil {
		m.loop = newLoopScheduler()
		m.sched = m.loop
	}
	prober := opts.Prober
	if prober == nil {
		prober = preload.NewMultiProber(&http.Client{})
	}
	m.runner = preload.NewRunner(prober, opts.ProbeConcurrency, opts.ProbeTimeout)

	if opts.Mouse {
		m.zone = zone.New()
	}
	m.spinner = spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(*styles.Loading))
	m.progress = progress.New(progress.WithSolidFill(theme.Accent), progress.WithoutPercentage())
	m.progress.EmptyColor = theme.Faint

	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}

	m.lock = surface.NewLock()
	m.primary = surface.NewPrimary(m.sched, m.lock, surface.PrimaryOptions{
		Initial:        opts.Initial,
		Autoplay:       opts.Autoplay,
		Interval:       opts.Interval,
		FPS:            opts.FPS,
		RowsPerSection: opts.RowsPerSection,
		ViewRows:       m.bodyRows(),
	})
	m.overlay = surface.NewOverlay(m.sched, m.lock, surface.OverlayOptions{
		Interval: opts.GalleryInterval,
		Autoplay: opts.GalleryAutoplay,
		FPS:      opts.FPS,
	})
	m.overlay.OnClose(m.overlayClosed)
	m.registerHandlers()
	return m
}

// Bind attaches the running program so timers can post back into the loop.
// It is a no-op when a custom scheduler was supplied.
func (m *Model) Bind(p *tea.Program) {
	if m.loop == nil || p == nil {
		return
	}
	m.loop.bind(p.Send)
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if m.deck != nil {
		cmds = append(cmds, m.mount(m.deck))
	}
	if m.watcher != nil {
		cmds = append(cmds, waitForBackendEvent(m.watcher))
	}
	cmds = append(cmds, m.startSpinner())
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 2)
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):      m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(tea.FocusMsg{}):      m.handleFocusMsg,
		reflect.TypeOf(tea.BlurMsg{}):       m.handleBlurMsg,
		reflect.TypeOf(timerFiredMsg{}):     m.handleTimerFiredMsg,
		reflect.TypeOf(probeOutcomeMsg{}):   m.handleProbeOutcomeMsg,
		reflect.TypeOf(backendEventMsg{}):   m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):    m.handleBackendDoneMsg,
		reflect.TypeOf(command.Result{}):    m.handleCommandResultMsg,
		reflect.TypeOf(spinner.TickMsg{}):   m.handleSpinnerTickMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	m.clearInfo()
	if m.quitting {
		cmds = append(cmds, tea.Quit)
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleTimerFiredMsg(msg tea.Msg) tea.Cmd {
	fired, ok := msg.(timerFiredMsg)
	if !ok || m.loop == nil {
		return nil
	}
	m.loop.fire(fired.id)
	return nil
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	m.help.Width = m.width
	m.primary.SetViewport(m.bodyRows())
	events.UI.Resize(m.width, m.height)
	return nil
}

// Focus changes pause autoplay on both surfaces the same way hovering does.
func (m *Model) handleFocusMsg(tea.Msg) tea.Cmd {
	m.setHover(zoneTerminalBlur, false)
	return nil
}

func (m *Model) handleBlurMsg(tea.Msg) tea.Cmd {
	m.setHover(zoneTerminalBlur, true)
	return nil
}

func (m *Model) handleSpinnerTickMsg(msg tea.Msg) tea.Cmd {
	tick, ok := msg.(spinner.TickMsg)
	if !ok {
		return nil
	}
	if !m.loading() {
		m.spinning = false
		return nil
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(tick)
	return cmd
}

func (m *Model) startSpinner() tea.Cmd {
	if m.spinning || !m.loading() {
		return nil
	}
	m.spinning = true
	return m.spinner.Tick
}

// loading reports whether the visible surface is still waiting on probes.
func (m *Model) loading() bool {
	if m.overlay.IsOpen() {
		return m.overlay.State() == surface.Loading
	}
	return m.primary.Mounted() && !m.primary.Snapshot().Ready
}

// mount builds the primary surface for d and starts probing it.
func (m *Model) mount(d *deck.Deck) tea.Cmd {
	m.deck = d
	req := m.primary.Mount(d)
	m.resetHover()
	events.Deck.Load(m.opts.DeckPath, d.Len())
	return tea.Batch(m.probe(req), m.startSpinner())
}

// remount replaces the deck. The overlay and jump list belong to the old
// deck, so both are dropped first.
func (m *Model) remount(d *deck.Deck) tea.Cmd {
	m.closeJump()
	m.overlay.Destroy()
	m.deck = d
	req := m.primary.Remount(d)
	m.resetHover()
	events.Deck.Reload(m.opts.DeckPath, d.Len())
	return tea.Batch(m.probe(req), m.startSpinner())
}

// Close tears both surfaces down and stops every loop timer.
func (m *Model) Close() {
	m.overlay.Destroy()
	m.primary.Destroy()
	if m.loop != nil {
		m.loop.stop()
	}
	if m.zone != nil {
		m.zone.Close()
	}
}

func (m *Model) quit() {
	m.quitting = true
	m.Close()
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(5 * time.Second)
}

func (m *Model) clearInfo() {
	if m.infoMsg == "" {
		return
	}
	if !m.infoExpire.IsZero() && time.Now().Before(m.infoExpire) {
		return
	}
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

// Primary, Overlay and Deck expose state for tests and the app wrapper.
func (m *Model) Primary() *surface.Primary {
	return m.primary
}

func (m *Model) Overlay() *surface.Overlay {
	return m.overlay
}

func (m *Model) Deck() *deck.Deck {
	return m.deck
}

// Err returns the message shown in the status line.
func (m *Model) Err() string {
	return m.errMsg
}

// Info returns the transient message shown in the status line.
func (m *Model) Info() string {
	return m.infoMsg
}
