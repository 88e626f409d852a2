package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/scrollfx/internal/nav"
	"github.com/atomicstack/scrollfx/internal/surface"
)

func TestNextKeyAdvancesAfterTransition(t *testing.T) {
	env := newTestEnv(t, Options{})
	p := env.model().Primary()
	env.h.Send(tea.KeyMsg{Type: tea.KeyRight})
	if !p.Navigator().Transitioning() {
		t.Fatalf("expected transition to start")
	}
	env.clk.Advance(settle)
	if got := p.Navigator().Current(); got != 1 {
		t.Fatalf("expected current 1, got %d", got)
	}
	if view := env.h.View(); !strings.Contains(view, "02 / 04") {
		t.Fatalf("expected counter 02 / 04 in view:\n%s", view)
	}
}

func TestInputDuringTransitionIsDropped(t *testing.T) {
	env := newTestEnv(t, Options{})
	env.h.Send(runeKey('l'))
	env.h.Send(runeKey('l'))
	env.h.Send(runeKey('4'))
	env.clk.Advance(settle)
	if got := env.model().Primary().Navigator().Current(); got != 1 {
		t.Fatalf("expected only the first request to run, got %d", got)
	}
}

func TestPreviousWrapsToLast(t *testing.T) {
	env := newTestEnv(t, Options{})
	env.h.Send(runeKey('h'))
	st := env.model().Primary().Navigator().State()
	if st.Target != 3 {
		t.Fatalf("expected previous from first to target last, got %s", st)
	}
	env.clk.Advance(settle)
	if got := env.model().Primary().Navigator().Current(); got != 3 {
		t.Fatalf("expected current 3, got %d", got)
	}
}

func TestDigitAndEndKeys(t *testing.T) {
	env := newTestEnv(t, Options{})
	p := env.model().Primary()
	env.h.Send(runeKey('3'))
	env.clk.Advance(settle)
	if got := p.Navigator().Current(); got != 2 {
		t.Fatalf("expected digit 3 to select index 2, got %d", got)
	}
	env.h.Send(tea.KeyMsg{Type: tea.KeyHome})
	env.clk.Advance(settle)
	if got := p.Navigator().Current(); got != 0 {
		t.Fatalf("expected home to select index 0, got %d", got)
	}
	env.h.Send(tea.KeyMsg{Type: tea.KeyEnd})
	env.clk.Advance(settle)
	if got := p.Navigator().Current(); got != 3 {
		t.Fatalf("expected end to select index 3, got %d", got)
	}
}

func TestEndAndHomeKeysAnimateInIndexOrder(t *testing.T) {
	env := newTestEnv(t, Options{})
	n := env.model().Primary().Navigator()
	env.h.Send(tea.KeyMsg{Type: tea.KeyEnd})
	if st := n.State(); !st.Transitioning || st.Target != 3 || st.Direction != nav.Forward {
		t.Fatalf("expected end to move forward to 3, got %s", st)
	}
	env.clk.Advance(settle)
	env.h.Send(tea.KeyMsg{Type: tea.KeyHome})
	if st := n.State(); !st.Transitioning || st.Target != 0 || st.Direction != nav.Backward {
		t.Fatalf("expected home to move backward to 0, got %s", st)
	}
}

func TestScrollKeysMoveTrack(t *testing.T) {
	env := newTestEnv(t, Options{RowsPerSection: 4})
	p := env.model().Primary()
	env.h.Send(tea.KeyMsg{Type: tea.KeyDown})
	if got := p.Mapper().Track().Position(); got != 1 {
		t.Fatalf("expected track at row 1, got %d", got)
	}
	env.h.Send(tea.KeyMsg{Type: tea.KeyPgDown})
	if got := p.Mapper().Track().Position(); got != 5 {
		t.Fatalf("expected track at row 5, got %d", got)
	}
}

func TestAutoplayToggleKey(t *testing.T) {
	env := newTestEnv(t, Options{})
	env.h.Send(runeKey('a'))
	if !env.model().Primary().Autoplay().State().Enabled {
		t.Fatalf("expected autoplay enabled")
	}
	if env.model().Info() != "autoplay on" {
		t.Fatalf("expected info message, got %q", env.model().Info())
	}
	env.h.Send(runeKey('a'))
	if env.model().Primary().Autoplay().State().Enabled {
		t.Fatalf("expected autoplay disabled")
	}
}

func TestHelpToggle(t *testing.T) {
	env := newTestEnv(t, Options{Width: 160})
	env.h.Send(runeKey('?'))
	if !env.model().help.ShowAll {
		t.Fatalf("expected full help")
	}
	if view := env.h.View(); !strings.Contains(view, "autoplay") {
		t.Fatalf("expected help panel in view:\n%s", view)
	}
}

func openTestGallery(t *testing.T, env testEnv) *surface.Overlay {
	t.Helper()
	env.h.Send(runeKey('2'))
	env.clk.Advance(settle)
	env.h.Send(tea.KeyMsg{Type: tea.KeyEnter})
	o := env.model().Overlay()
	if o.State() != surface.Active {
		t.Fatalf("expected overlay active once gallery probes finish, got %s", o.State())
	}
	env.clk.Advance(settle)
	return o
}

func TestOpenGalleryCoversPrimary(t *testing.T) {
	env := newTestEnv(t, Options{Autoplay: true})
	o := openTestGallery(t, env)
	p := env.model().Primary()
	if p.Autoplay().State().Visible {
		t.Fatalf("expected primary autoplay hidden while the overlay holds the lock")
	}
	if got := o.Navigator().Current(); got != 0 {
		t.Fatalf("expected overlay on its first item, got %d", got)
	}
	if calls := env.prober.Calls(); len(calls) != 7 {
		t.Fatalf("expected gallery media probed, got %v", calls)
	}

	env.h.Send(tea.KeyMsg{Type: tea.KeyEsc})
	if o.State() != surface.Exiting {
		t.Fatalf("expected exiting, got %s", o.State())
	}
	env.clk.Advance(settle)
	if o.IsOpen() {
		t.Fatalf("expected overlay closed after the fade")
	}
	if !p.Autoplay().State().Visible {
		t.Fatalf("expected primary autoplay visible again")
	}
}

func TestOpenGalleryNeedsGallery(t *testing.T) {
	env := newTestEnv(t, Options{})
	env.h.Send(tea.KeyMsg{Type: tea.KeyEnter})
	if env.model().Overlay().IsOpen() {
		t.Fatalf("expected no overlay for a section without a gallery")
	}
}

func TestOverlayKeysNavigateGallery(t *testing.T) {
	env := newTestEnv(t, Options{})
	o := openTestGallery(t, env)
	env.h.Send(runeKey('l'))
	env.clk.Advance(settle)
	if got := o.Navigator().Current(); got != 1 {
		t.Fatalf("expected gallery item 1, got %d", got)
	}
	if view := env.h.View(); !strings.Contains(view, "02 / 03") {
		t.Fatalf("expected gallery counter in view:\n%s", view)
	}
	// Keys do not reach the primary while the overlay is open.
	if got := env.model().Primary().Navigator().Current(); got != 1 {
		t.Fatalf("expected primary unchanged, got %d", got)
	}
	env.h.Send(runeKey('q'))
	if env.h.Quit() {
		t.Fatalf("expected q to close the overlay, not quit")
	}
	if o.State() != surface.Exiting {
		t.Fatalf("expected exiting, got %s", o.State())
	}
}
