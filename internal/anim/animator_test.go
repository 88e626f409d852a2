package anim

import (
	"math"
	"testing"
	"time"

	"github.com/atomicstack/scrollfx/internal/deck"
	"github.com/atomicstack/scrollfx/internal/nav"
	"github.com/atomicstack/scrollfx/internal/testutil"
)

func sections(titles ...string) []deck.Section {
	out := make([]deck.Section, len(titles))
	for i, title := range titles {
		out[i] = deck.Section{Index: i, Media: "m", Title: title}
	}
	return out
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestEasingEndpoints(t *testing.T) {
	for name, ease := range map[string]Ease{
		"linear":       Linear,
		"power1.out":   Power1Out,
		"power1.inOut": Power1InOut,
		"power2.out":   Power2Out,
		"power2.inOut": Power2InOut,
		"power3.out":   Power3Out,
	} {
		if !near(ease(0), 0) || !near(ease(1), 1) {
			t.Fatalf("%s: expected endpoints 0 and 1, got %v and %v", name, ease(0), ease(1))
		}
		if ease(-1) != ease(0) || ease(2) != ease(1) {
			t.Fatalf("%s: expected clamping outside [0,1]", name)
		}
	}
	if !near(Power1InOut(0.5), 0.5) {
		t.Fatalf("expected symmetric in-out midpoint, got %v", Power1InOut(0.5))
	}
	if Power3Out(0.5) <= Power2Out(0.5) {
		t.Fatalf("expected stronger ease-out for higher power")
	}
}

func TestTrackAppliesFromBeforeDelay(t *testing.T) {
	el := &Element{}
	tr := Track{Element: el, Prop: OffsetY, From: 50, To: 0, Delay: 300 * time.Millisecond, Duration: time.Second, Ease: Linear}
	tr.apply(100 * time.Millisecond)
	if el.OffsetY != 50 {
		t.Fatalf("expected from value during delay, got %v", el.OffsetY)
	}
	tr.apply(800 * time.Millisecond)
	if !near(el.OffsetY, 25) {
		t.Fatalf("expected halfway value 25, got %v", el.OffsetY)
	}
	tr.apply(5 * time.Second)
	if el.OffsetY != 0 {
		t.Fatalf("expected final value, got %v", el.OffsetY)
	}
	if tr.End() != 1300*time.Millisecond {
		t.Fatalf("expected end 1.3s, got %s", tr.End())
	}
}

func TestOverlayRunCompletesAtLongestTrack(t *testing.T) {
	clk := testutil.NewClock()
	reg := NewRegistry(sections("One", "Two"))
	reg.HideOverlay()
	a := New(clk, reg, OverlayProfile{}, 100)
	done := 0
	a.Start(nav.Transition{From: 0, To: 1, Direction: nav.Forward}, func() { done++ })
	if reg.At(1).Media.Hidden {
		t.Fatalf("expected incoming section revealed at start")
	}
	if reg.At(1).Outer.OffsetX != 100 || reg.At(1).Inner.OffsetX != -100 {
		t.Fatalf("expected wrappers to start off-screen, got %v/%v", reg.At(1).Outer.OffsetX, reg.At(1).Inner.OffsetX)
	}
	clk.Advance(1290 * time.Millisecond)
	if done != 0 {
		t.Fatalf("expected no completion before heading ends")
	}
	clk.Advance(10 * time.Millisecond)
	if done != 1 {
		t.Fatalf("expected completion at 1.3s, got %d", done)
	}
	clk.Advance(time.Second)
	if done != 1 {
		t.Fatalf("expected exactly one completion, got %d", done)
	}
	if !reg.At(0).Media.Hidden {
		t.Fatalf("expected outgoing section hidden after run")
	}
	in := reg.At(1)
	if in.Outer.OffsetX != 0 || in.Media.OffsetX != 0 || in.Heading.Opacity != 1 {
		t.Fatalf("expected incoming layers settled, got %+v %+v", *in.Outer, *in.Heading)
	}
	if a.Running() != 0 || clk.Pending() != 0 {
		t.Fatalf("expected no frames pending, got %d runs %d timers", a.Running(), clk.Pending())
	}
}

func TestMissingHeadingStillCompletes(t *testing.T) {
	clk := testutil.NewClock()
	reg := NewRegistry(sections("", ""))
	a := New(clk, reg, OverlayProfile{}, 100)
	done := 0
	a.Start(nav.Transition{From: 0, To: 1, Direction: nav.Backward}, func() { done++ })
	clk.Advance(SlideDuration)
	if done != 1 {
		t.Fatalf("expected completion at slide end without heading, got %d", done)
	}
}

func TestEmptyPlanCompletesOnNextFrame(t *testing.T) {
	clk := testutil.NewClock()
	a := New(clk, nil, nil, 100)
	done := 0
	a.Start(nav.Transition{From: 0, To: 1, Direction: nav.Forward}, func() { done++ })
	if done != 0 {
		t.Fatalf("expected completion to be asynchronous")
	}
	clk.Advance(10 * time.Millisecond)
	if done != 1 {
		t.Fatalf("expected completion on first frame, got %d", done)
	}
}

func TestCancelSuppressesCompletion(t *testing.T) {
	clk := testutil.NewClock()
	reg := NewRegistry(sections("A", "B"))
	a := New(clk, reg, &PrimaryProfile{ViewRows: 20, ItemRows: 2}, 100)
	done := 0
	cancel := a.Start(nav.Transition{From: 0, To: 1, Direction: nav.Forward}, func() { done++ })
	clk.Advance(100 * time.Millisecond)
	cancel()
	cancel()
	clk.Advance(5 * time.Second)
	if done != 0 {
		t.Fatalf("expected no completion after cancel, got %d", done)
	}
	if clk.Pending() != 0 || a.Running() != 0 {
		t.Fatalf("expected cancel to stop frames")
	}
}

func TestPrimaryProfileSettlesLayers(t *testing.T) {
	clk := testutil.NewClock()
	reg := NewRegistry(sections("Cyber Future", "Neon City", "Retro"))
	reg.ShowPrimary(0, 20, 2)
	a := New(clk, reg, &PrimaryProfile{ViewRows: 20, ItemRows: 2}, 100)
	done := 0
	a.Start(nav.Transition{From: 0, To: 2, Direction: nav.Forward}, func() { done++ })
	in := reg.At(2)
	if in.Media.Opacity != 0 || in.Media.OffsetY != 5 || in.Media.Scale != 1.05 {
		t.Fatalf("expected incoming background at its from values, got %+v", *in.Media)
	}
	if !clk.Drain(1000) {
		t.Fatalf("expected run to finish")
	}
	if done != 1 {
		t.Fatalf("expected one completion, got %d", done)
	}
	out := reg.At(0)
	if out.Media.Opacity != 0 || out.Media.OffsetY != -5 {
		t.Fatalf("expected outgoing background faded upward, got %+v", *out.Media)
	}
	if in.Media.Opacity != 1 || in.Media.OffsetY != 0 || in.Media.Scale != 1 {
		t.Fatalf("expected incoming background settled, got %+v", *in.Media)
	}
	if in.Left.Opacity != 1 || out.Left.Opacity != dimmed {
		t.Fatalf("expected list emphasis moved, got %v/%v", in.Left.Opacity, out.Left.Opacity)
	}
	if want := ListOffset(2, 20, 2); reg.ListLeft.OffsetY != want || reg.ListRight.OffsetY != want {
		t.Fatalf("expected lists centred at %v, got %v/%v", want, reg.ListLeft.OffsetY, reg.ListRight.OffsetY)
	}
	if in.Words[0].Opacity != 1 || out.Words[1].Opacity != 0 {
		t.Fatalf("expected title words swapped")
	}
}

func TestPrimaryTitleRevealStaggersWords(t *testing.T) {
	reg := NewRegistry(sections("a b c"))
	p := (&PrimaryProfile{ViewRows: 10, ItemRows: 1}).Plan(reg, nav.Transition{From: -1, To: 0, Direction: nav.Forward})
	want := TitleDuration + 2*WordStagger
	if p.Duration() != want {
		t.Fatalf("expected plan duration %s, got %s", want, p.Duration())
	}
}

func TestFade(t *testing.T) {
	clk := testutil.NewClock()
	a := New(clk, nil, nil, 100)
	el := &Element{Opacity: 0}
	done := 0
	a.Fade(el, 0, 1, EntryFade, Power2Out, func() { done++ })
	clk.Advance(250 * time.Millisecond)
	if el.Opacity <= 0.5 || el.Opacity >= 1 {
		t.Fatalf("expected ease-out to pass halfway early, got %v", el.Opacity)
	}
	clk.Advance(250 * time.Millisecond)
	if done != 1 || el.Opacity != 1 {
		t.Fatalf("expected fade finished, got done=%d opacity=%v", done, el.Opacity)
	}
}

func TestListOffset(t *testing.T) {
	if got := ListOffset(0, 20, 2); got != 9 {
		t.Fatalf("expected 9, got %v", got)
	}
	if got := ListOffset(3, 20, 2); got != 3 {
		t.Fatalf("expected 3, got %v", got)
	}
	if got := ListOffset(1, 10, 0); got != 3.5 {
		t.Fatalf("expected non-positive item rows treated as 1, got %v", got)
	}
}

func TestRegistryBounds(t *testing.T) {
	reg := NewRegistry(sections("Title", ""))
	if reg.At(-1) != nil || reg.At(2) != nil {
		t.Fatalf("expected nil layers out of range")
	}
	if reg.At(1).Heading != nil {
		t.Fatalf("expected no heading for untitled section")
	}
	if reg.Len() != 2 {
		t.Fatalf("expected 2 layers, got %d", reg.Len())
	}
}
