package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/scrollfx/internal/deck"
	"github.com/atomicstack/scrollfx/internal/surface"
	"github.com/atomicstack/scrollfx/internal/testutil"
)

const settle = 3 * time.Second

func testDeck() *deck.Deck {
	d := deck.New("Works", []deck.Section{
		{Media: "a.png", Title: "Cyber Future", LeftLabel: "Neon", RightLabel: "2021"},
		{Media: "b.png", Title: "Neon City", LeftLabel: "Night", RightLabel: "2022", Gallery: []deck.Section{
			{Media: "g1.png", Title: "One"},
			{Media: "g2.png", Title: "Two"},
			{Media: "g3.png"},
		}},
		{Media: "c.png", Title: "Retro Tech", LeftLabel: "Chrome", RightLabel: "2023"},
		{Media: "d.png", Title: "Solar", LeftLabel: "Sun", RightLabel: "2024"},
	})
	d.Footer = "studio reel"
	return d
}

type testEnv struct {
	h      *Harness
	clk    *testutil.Clock
	prober *testutil.Prober
}

func (e testEnv) model() *Model {
	return e.h.Model()
}

func newTestEnv(t *testing.T, opts Options) testEnv {
	t.Helper()
	clk := testutil.NewClock()
	if opts.Deck == nil {
		opts.Deck = testDeck()
	}
	prober, _ := opts.Prober.(*testutil.Prober)
	if prober == nil {
		prober = &testutil.Prober{Bytes: 2048}
		opts.Prober = prober
	}
	if opts.FPS == 0 {
		opts.FPS = 100
	}
	if opts.Width == 0 {
		opts.Width = 100
	}
	if opts.Height == 0 {
		opts.Height = 30
	}
	opts.Scheduler = clk
	m := NewModel(opts)
	if !opts.Mouse {
		t.Cleanup(m.Close)
	}
	h := NewHarness(m)
	h.Init()
	return testEnv{h: h, clk: clk, prober: prober}
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func typeText(h *Harness, text string) {
	for _, r := range text {
		h.Send(runeKey(r))
	}
}

func TestInitProbesEveryMediaRef(t *testing.T) {
	env := newTestEnv(t, Options{})
	if calls := env.prober.Calls(); len(calls) != 4 {
		t.Fatalf("expected 4 probes, got %v", calls)
	}
	snap := env.model().Primary().Snapshot()
	if !snap.Ready {
		t.Fatalf("expected primary ready after probes, got %+v", snap.Preload)
	}
	if snap.Preload.Bytes != 4*2048 {
		t.Fatalf("expected probed bytes to add up, got %d", snap.Preload.Bytes)
	}
	if env.model().spinning {
		t.Fatalf("expected spinner to stop once loading finished")
	}
}

func TestFailedMediaStillBecomesReady(t *testing.T) {
	prober := &testutil.Prober{Fail: map[string]bool{"c.png": true}}
	env := newTestEnv(t, Options{Prober: prober})
	snap := env.model().Primary().Snapshot()
	if !snap.Ready || snap.Preload.Failed != 1 {
		t.Fatalf("expected ready with one failure, got %+v", snap.Preload)
	}
	if err := env.model().Primary().MediaErr(2); err == nil {
		t.Fatalf("expected media error recorded for section 3")
	}
	if view := env.h.View(); !strings.Contains(view, "1 unavailable") {
		t.Fatalf("expected status to count unavailable media, got:\n%s", view)
	}
}

func TestWindowSizeUpdatesViewport(t *testing.T) {
	env := newTestEnv(t, Options{Width: -1, Height: -1, Progress: true, ShowFooter: true})
	env.h.Send(tea.WindowSizeMsg{Width: 120, Height: 40})
	m := env.model()
	if m.width != 120 || m.height != 40 {
		t.Fatalf("expected size 120x40, got %dx%d", m.width, m.height)
	}
	if got := m.Primary().Options().ViewRows; got != 36 {
		t.Fatalf("expected 36 body rows, got %d", got)
	}
}

func TestFixedSizeIgnoresResize(t *testing.T) {
	env := newTestEnv(t, Options{Width: 70, Height: 20})
	env.h.Send(tea.WindowSizeMsg{Width: 120, Height: 40})
	if m := env.model(); m.width != 70 || m.height != 20 {
		t.Fatalf("expected fixed size kept, got %dx%d", m.width, m.height)
	}
}

func TestBlurPausesAutoplay(t *testing.T) {
	env := newTestEnv(t, Options{Autoplay: true, Interval: time.Second})
	auto := env.model().Primary().Autoplay()
	if !auto.Armed() {
		t.Fatalf("expected autoplay armed once ready")
	}
	env.h.Send(tea.BlurMsg{})
	if !auto.Paused() {
		t.Fatalf("expected blur to pause autoplay")
	}
	env.h.Send(tea.FocusMsg{})
	if auto.Paused() {
		t.Fatalf("expected focus to resume autoplay")
	}
}

func TestBlurSurvivesGalleryOpenAndClose(t *testing.T) {
	env := newTestEnv(t, Options{Initial: 1, Autoplay: true, Interval: time.Second, GalleryAutoplay: true})
	m := env.model()
	env.h.Send(tea.BlurMsg{})
	env.h.Send(tea.KeyMsg{Type: tea.KeyEnter})
	o := m.Overlay()
	if o.State() != surface.Active {
		t.Fatalf("expected overlay active, got %s", o.State())
	}
	if !o.Autoplay().Paused() {
		t.Fatalf("expected gallery autoplay paused while the terminal is blurred")
	}
	env.h.Send(tea.KeyMsg{Type: tea.KeyEsc})
	env.clk.Advance(settle)
	if o.IsOpen() {
		t.Fatalf("expected overlay closed after the fade")
	}
	auto := m.Primary().Autoplay()
	if !auto.Paused() || auto.Armed() {
		t.Fatalf("expected primary autoplay still paused until focus returns")
	}
	env.h.Send(tea.FocusMsg{})
	if auto.Paused() || !auto.Armed() {
		t.Fatalf("expected focus to resume primary autoplay")
	}
}

func TestAutoplayAdvancesPrimary(t *testing.T) {
	env := newTestEnv(t, Options{Autoplay: true, Interval: time.Second})
	env.clk.Advance(time.Second + 10*time.Millisecond)
	st := env.model().Primary().Navigator().State()
	if !st.Transitioning || st.Target != 1 {
		t.Fatalf("expected autoplay to start a transition to 1, got %s", st)
	}
}

func TestForceQuit(t *testing.T) {
	env := newTestEnv(t, Options{})
	env.h.Send(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !env.h.Quit() {
		t.Fatalf("expected quit")
	}
	if env.h.View() != "" {
		t.Fatalf("expected empty view after quit")
	}
	if env.model().Primary().Mounted() {
		t.Fatalf("expected primary torn down on quit")
	}
}

func TestNoDeckView(t *testing.T) {
	m := NewModel(Options{Scheduler: testutil.NewClock(), Prober: &testutil.Prober{}})
	defer m.Close()
	h := NewHarness(m)
	h.Init()
	if view := h.View(); !strings.Contains(view, "no deck loaded") {
		t.Fatalf("expected placeholder, got %q", view)
	}
	h.Send(runeKey('q'))
	if !h.Quit() {
		t.Fatalf("expected q to quit without a deck")
	}
}
