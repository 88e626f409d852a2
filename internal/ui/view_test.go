package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/atomicstack/scrollfx/internal/anim"
	"github.com/atomicstack/scrollfx/internal/deck"
	"github.com/atomicstack/scrollfx/internal/testutil"
)

func assertWidth(t *testing.T, view string, width int) {
	t.Helper()
	for i, line := range strings.Split(view, "\n") {
		if w := lipgloss.Width(line); w > width {
			t.Fatalf("line %d is %d cells wide, limit %d: %q", i, w, width, ansi.Strip(line))
		}
	}
}

func TestPrimaryViewLayout(t *testing.T) {
	env := newTestEnv(t, Options{ShowFooter: true, Progress: true})
	view := ansi.Strip(env.h.View())
	for _, want := range []string{"Works", "01 / 04", "Neon", "2021", "a.png", "Cyber", "Future", "studio reel"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
	if got := len(strings.Split(view, "\n")); got != 30 {
		t.Fatalf("expected 30 rows, got %d", got)
	}
	assertWidth(t, env.h.View(), 100)
}

func TestPrimaryViewShowsCollectionAffordance(t *testing.T) {
	env := newTestEnv(t, Options{Initial: 1})
	view := ansi.Strip(env.h.View())
	if !strings.Contains(view, "view collection") || !strings.Contains(view, "1/3") {
		t.Fatalf("expected gallery preview and affordance:\n%s", view)
	}
}

func TestNarrowViewDropsSideLists(t *testing.T) {
	env := newTestEnv(t, Options{Width: 40, Height: 12})
	view := env.h.View()
	assertWidth(t, view, 40)
	if strings.Contains(ansi.Strip(view), "2021") {
		t.Fatalf("expected side lists hidden on a narrow terminal:\n%s", ansi.Strip(view))
	}
}

func TestLoadingViewShowsProgress(t *testing.T) {
	clk := testutil.NewClock()
	m := NewModel(Options{Deck: testDeck(), Scheduler: clk, Prober: &testutil.Prober{}, Width: 80, Height: 20})
	defer m.Close()
	m.Primary().Mount(m.Deck())
	view := ansi.Strip(m.View())
	if !strings.Contains(view, "loading media 0/4") {
		t.Fatalf("expected loading status:\n%s", view)
	}
}

func TestOverlayViewChrome(t *testing.T) {
	env := newTestEnv(t, Options{})
	openTestGallery(t, env)
	view := ansi.Strip(env.h.View())
	for _, want := range []string{"Neon City", "01 / 03", "✕", "‹", "›", "02", "g1.png", "One"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in overlay view:\n%s", want, view)
		}
	}
	assertWidth(t, env.h.View(), 100)
}

func TestSideListFollowsTrack(t *testing.T) {
	env := newTestEnv(t, Options{})
	m := env.model()
	rows := m.bodyRows()
	snap := m.Primary().Snapshot()
	lines := m.sideList(true, 20, rows, snap)
	offset := int(anim.ListOffset(0, rows, m.Primary().Options().ItemRows) + 0.5)
	if !strings.Contains(ansi.Strip(lines[offset]), "Neon") {
		t.Fatalf("expected active item at row %d, got %q", offset, ansi.Strip(lines[offset]))
	}
	if !strings.Contains(ansi.Strip(lines[offset]), "•") {
		t.Fatalf("expected active marker on the settled item")
	}
}

func TestTitleLinesKeepWordsWhole(t *testing.T) {
	s := deck.Section{Title: "Hyper-Long Title Words"}
	reg := anim.NewRegistry([]deck.Section{s})
	l := reg.At(0)
	l.Heading.Opacity = 1
	for _, w := range l.Words {
		w.Opacity = 1
	}
	lines := titleLines(s, l, 12, 1)
	joined := ansi.Strip(strings.Join(lines, " "))
	if !strings.Contains(joined, "Hyper-Long") {
		t.Fatalf("expected hyphenated word kept whole, got %q", joined)
	}
}

func TestShiftRowAndFit(t *testing.T) {
	if got := shiftRow("abcd", 2, 4); got != "  ab" {
		t.Fatalf("expected right shift, got %q", got)
	}
	if got := shiftRow("abcd", -1, 4); got != "bcd " {
		t.Fatalf("expected left shift, got %q", got)
	}
	if got := fitWidth("ab", 4); got != "ab  " {
		t.Fatalf("expected padding, got %q", got)
	}
	if got := lipgloss.Width(fitWidth("abcdef", 4)); got != 4 {
		t.Fatalf("expected truncation to 4 cells, got %d", got)
	}
}
