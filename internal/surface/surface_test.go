package surface

import (
	"errors"
	"testing"
	"time"

	"github.com/atomicstack/scrollfx/internal/anim"
	"github.com/atomicstack/scrollfx/internal/clock"
	"github.com/atomicstack/scrollfx/internal/deck"
	"github.com/atomicstack/scrollfx/internal/preload"
	"github.com/atomicstack/scrollfx/internal/testutil"
)

func testDeck() *deck.Deck {
	return deck.New("Works", []deck.Section{
		{Media: "a.png", Title: "Cyber Future", LeftLabel: "Neon", RightLabel: "2021"},
		{Media: "b.png", Title: "Neon City", LeftLabel: "Night", RightLabel: "2022", Gallery: []deck.Section{
			{Media: "g1.png", Title: "One"},
			{Media: "g2.png", Title: "Two"},
			{Media: "g3.png"},
		}},
		{Media: "c.png", Title: "Retro Tech"},
		{Media: "d.png", Title: "Solar"},
	})
}

func resolveAll(t *testing.T, req ProbeRequest, resolve func(uint64, int, preload.Result) bool) {
	t.Helper()
	for i := range req.Refs {
		if !resolve(req.Generation, i, preload.Result{Bytes: 1}) {
			t.Fatalf("expected probe %d to count", i)
		}
	}
}

func mountPrimary(t *testing.T, opts PrimaryOptions) (*Primary, *testutil.Clock, *Lock) {
	t.Helper()
	clk := testutil.NewClock()
	lock := NewLock()
	if opts.FPS == 0 {
		opts.FPS = 100
	}
	p := NewPrimary(clk, lock, opts)
	req := p.Mount(testDeck())
	resolveAll(t, req, p.Resolve)
	return p, clk, lock
}

func TestPrimaryWaitsForPreload(t *testing.T) {
	clk := testutil.NewClock()
	p := NewPrimary(clk, NewLock(), PrimaryOptions{Initial: 1, FPS: 100})
	req := p.Mount(testDeck())
	if len(req.Refs) != 4 || req.Surface != p.ID() {
		t.Fatalf("unexpected probe request %+v", req)
	}
	if p.Navigator().Current() != 1 {
		t.Fatalf("expected initial index settled without animation, got %d", p.Navigator().Current())
	}
	if p.Next() || p.Scroll(100) {
		t.Fatalf("expected navigation rejected before preload")
	}
	for i := range req.Refs {
		res := preload.Result{Bytes: 1}
		if i == 2 {
			res = preload.Result{Err: errors.New("404")}
		}
		p.Resolve(req.Generation, i, res)
	}
	snap := p.Snapshot()
	if !snap.Ready || snap.Preload.Failed != 1 {
		t.Fatalf("expected ready with one failure, got %+v", snap.Preload)
	}
	if !p.Navigator().Transitioning() || p.Navigator().State().Target != 3 {
		t.Fatalf("expected the stored scroll sample to be replayed on ready, got %s", p.Navigator().State())
	}
}

func TestPrimaryIndicatorAndCounter(t *testing.T) {
	p, clk, _ := mountPrimary(t, PrimaryOptions{})
	if !p.GoTo(3) {
		t.Fatalf("expected jump accepted")
	}
	snap := p.Snapshot()
	if snap.Progress != 0 || snap.Counter() != "01 / 04" {
		t.Fatalf("expected settled values mid-flight, got %v %s", snap.Progress, snap.Counter())
	}
	clk.Drain(1000)
	snap = p.Snapshot()
	if snap.Progress != 1 || snap.Counter() != "04 / 04" || !snap.Active[3] || snap.Active[0] {
		t.Fatalf("unexpected snapshot after settle %+v", snap)
	}
}

func TestPrimaryAutoplayPausesOnHover(t *testing.T) {
	p, clk, _ := mountPrimary(t, PrimaryOptions{Autoplay: true, Interval: 3 * time.Second})
	p.Hover("list", true)
	p.Hover("arrows", true)
	clk.Advance(10 * time.Second)
	if p.Navigator().Current() != 0 {
		t.Fatalf("expected no autoplay while hovered, got %d", p.Navigator().Current())
	}
	p.Hover("list", false)
	clk.Advance(10 * time.Second)
	if p.Navigator().Current() != 0 {
		t.Fatalf("expected autoplay paused while any zone is hovered")
	}
	p.Hover("arrows", false)
	clk.Advance(3 * time.Second)
	if !p.Navigator().Transitioning() {
		t.Fatalf("expected autoplay to resume with a full interval")
	}
	clk.Advance(time.Second)
	if p.Navigator().Current() != 1 || p.Mapper().Track().Position() != p.Mapper().Track().SlotStart(1) {
		t.Fatalf("expected autoplay to move index and track together, got %d", p.Navigator().Current())
	}
}

func TestPrimaryCarouselCyclesGalleryPreviews(t *testing.T) {
	p, clk, _ := mountPrimary(t, PrimaryOptions{Initial: 1})
	c := p.Carousel()
	if c.Count() != 3 || !c.Running() {
		t.Fatalf("expected carousel over three previews, got %d running=%v", c.Count(), c.Running())
	}
	clk.Advance(CarouselInterval)
	if c.Index() != 1 {
		t.Fatalf("expected second preview, got %d", c.Index())
	}
	p.GoTo(2)
	clk.Drain(1000)
	if c.Running() || c.Count() != 0 {
		t.Fatalf("expected carousel idle on a section without gallery")
	}
}

func TestPrimaryTeardownMidTransitionIsInert(t *testing.T) {
	p, clk, _ := mountPrimary(t, PrimaryOptions{Autoplay: true, Interval: time.Second})
	mutations := 0
	p.Navigator().OnSettle(func(int) { mutations++ })
	p.Scope().OnDrop(func() { mutations++ })
	p.GoTo(2)
	clk.Advance(300 * time.Millisecond)
	layer := *p.Registry().At(2).Media
	p.Destroy()
	if clk.Pending() != 0 {
		t.Fatalf("expected teardown to cancel every timer, %d pending", clk.Pending())
	}
	clk.Advance(10 * time.Second)
	if mutations != 0 {
		t.Fatalf("expected no mutation after teardown, got %d", mutations)
	}
	if p.Navigator().Current() != 0 {
		t.Fatalf("expected index frozen at teardown, got %d", p.Navigator().Current())
	}
	if *p.Registry().At(2).Media != layer {
		t.Fatalf("expected no frame applied after teardown")
	}
	if p.Next() || p.Resolve(1, 0, preload.Result{}) {
		t.Fatalf("expected destroyed surface to ignore input")
	}
}

// leakyScheduler ignores Stop, like a timer whose callback was already queued
// on the event loop when it was cancelled.
type leakyScheduler struct {
	clk *testutil.Clock
}

func (l leakyScheduler) AfterFunc(d time.Duration, fn func()) clock.Timer {
	l.clk.AfterFunc(d, fn)
	return clock.Stopped()
}

func TestPrimaryTeardownDropsQueuedCallbacks(t *testing.T) {
	clk := testutil.NewClock()
	p := NewPrimary(leakyScheduler{clk: clk}, NewLock(), PrimaryOptions{FPS: 100, Autoplay: true, Interval: time.Second})
	req := p.Mount(testDeck())
	resolveAll(t, req, p.Resolve)
	settles := 0
	p.Navigator().OnSettle(func(int) { settles++ })
	drops := 0
	p.Scope().OnDrop(func() { drops++ })
	p.GoTo(2)
	clk.Advance(100 * time.Millisecond)
	p.Destroy()
	clk.Advance(10 * time.Second)
	if settles != 0 || p.Navigator().Current() != 0 {
		t.Fatalf("expected no settle after teardown, got %d", settles)
	}
	if drops == 0 {
		t.Fatalf("expected queued callbacks to be dropped by the scope")
	}
}

func TestPrimaryRemountStartsFresh(t *testing.T) {
	p, clk, _ := mountPrimary(t, PrimaryOptions{})
	p.GoTo(2)
	clk.Drain(1000)
	oldID := p.ID()
	req := p.Remount(deck.New("Other", []deck.Section{{Media: "x.png"}, {Media: "y.png"}}))
	if p.ID() == oldID || req.Generation != 1 {
		t.Fatalf("expected a new mount id and gate, got %s gen %d", p.ID(), req.Generation)
	}
	if p.Navigator().Current() != 0 || p.Navigator().Count() != 2 {
		t.Fatalf("expected fresh navigator, got %s", p.Navigator().State())
	}
	if p.Next() {
		t.Fatalf("expected remounted surface gated on preload")
	}
}

func openOverlay(t *testing.T, clk *testutil.Clock, lock *Lock) *Overlay {
	t.Helper()
	o := NewOverlay(clk, lock, OverlayOptions{Autoplay: true, FPS: 100})
	items := testDeck().Sections[1].Gallery
	req, err := o.Open(items)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if o.State() != Loading {
		t.Fatalf("expected loading, got %s", o.State())
	}
	resolveAll(t, req, o.Resolve)
	return o
}

func TestOverlayEntryNavigatesToFirstItem(t *testing.T) {
	clk := testutil.NewClock()
	o := openOverlay(t, clk, NewLock())
	if o.State() != Active || !o.Navigator().Transitioning() {
		t.Fatalf("expected active overlay entering item 0, got %s %s", o.State(), o.Navigator().State())
	}
	clk.Advance(anim.EntryFade)
	if o.Opacity() != 1 {
		t.Fatalf("expected entry fade complete, got %v", o.Opacity())
	}
	clk.Advance(time.Second)
	if o.Navigator().Current() != 0 {
		t.Fatalf("expected first item settled, got %d", o.Navigator().Current())
	}
	clk.AdvanceTo(DefaultGalleryInterval)
	if !o.Navigator().Transitioning() || o.Navigator().State().Target != 1 {
		t.Fatalf("expected gallery autoplay to advance, got %s", o.Navigator().State())
	}
}

func TestOverlayHoldsScrollLock(t *testing.T) {
	p, clk, lock := mountPrimary(t, PrimaryOptions{Autoplay: true, Interval: time.Second})
	o := openOverlay(t, clk, lock)
	if !lock.Held() || !p.Mapper().Suspended() || p.Autoplay().Armed() {
		t.Fatalf("expected primary scroll and autoplay suspended under the overlay")
	}
	if p.Scroll(50) {
		t.Fatalf("expected primary scroll ignored while covered")
	}
	if _, err := NewOverlay(clk, lock, OverlayOptions{}).Open(testDeck().Sections[1].Gallery); !errors.Is(err, ErrLocked) {
		t.Fatalf("expected second overlay to fail on the lock, got %v", err)
	}
	o.Destroy()
	if lock.Held() || p.Mapper().Suspended() || !p.Autoplay().Armed() {
		t.Fatalf("expected forced teardown to release the lock")
	}
}

func TestOverlayExitFadesBeforeClose(t *testing.T) {
	clk := testutil.NewClock()
	lock := NewLock()
	o := openOverlay(t, clk, lock)
	closes := 0
	o.OnClose(func() { closes++ })
	clk.Advance(2 * time.Second)
	if !o.RequestExit() {
		t.Fatalf("expected exit accepted")
	}
	if o.RequestExit() {
		t.Fatalf("expected second exit ignored")
	}
	if o.Autoplay().Armed() {
		t.Fatalf("expected autoplay stopped as soon as exit begins")
	}
	if o.Next() || o.GoTo(2) {
		t.Fatalf("expected navigation ignored while exiting")
	}
	clk.Advance(anim.ExitFade - 10*time.Millisecond)
	if closes != 0 || !lock.Held() {
		t.Fatalf("expected surface kept until the fade ends")
	}
	clk.Advance(10 * time.Millisecond)
	if closes != 1 || o.State() != Closed || lock.Held() {
		t.Fatalf("expected close after fade, got closes=%d state=%s held=%v", closes, o.State(), lock.Held())
	}
	if clk.Pending() != 0 {
		t.Fatalf("expected nothing scheduled after close, got %d", clk.Pending())
	}
}

func TestOverlayExitDuringLoading(t *testing.T) {
	clk := testutil.NewClock()
	lock := NewLock()
	o := NewOverlay(clk, lock, OverlayOptions{FPS: 100})
	req, err := o.Open(testDeck().Sections[1].Gallery)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	closed := false
	o.OnClose(func() { closed = true })
	o.RequestExit()
	resolveAll(t, req, func(gen uint64, i int, res preload.Result) bool {
		o.Resolve(gen, i, res)
		return true
	})
	if o.State() != Exiting {
		t.Fatalf("expected late preload not to reactivate an exiting overlay, got %s", o.State())
	}
	clk.Drain(1000)
	if !closed || lock.Held() {
		t.Fatalf("expected closed overlay and released lock")
	}
	if req.Ctx.Err() == nil {
		t.Fatalf("expected probe context cancelled on close")
	}
}

func TestOverlayOpenErrors(t *testing.T) {
	clk := testutil.NewClock()
	o := NewOverlay(clk, NewLock(), OverlayOptions{})
	if _, err := o.Open(nil); !errors.Is(err, ErrNoItems) {
		t.Fatalf("expected ErrNoItems, got %v", err)
	}
	o.Open(testDeck().Sections[1].Gallery)
	if _, err := o.Open(testDeck().Sections[1].Gallery); !errors.Is(err, ErrOverlayBusy) {
		t.Fatalf("expected ErrOverlayBusy, got %v", err)
	}
}

func TestLeaseReleaseIsIdempotent(t *testing.T) {
	lock := NewLock()
	changes := 0
	lock.OnChange(func(bool) { changes++ })
	lease, err := lock.Acquire()
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	lease.Release()
	lease.Release()
	if changes != 2 || lock.Held() || !lease.Released() {
		t.Fatalf("expected one acquire and one release notification, got %d", changes)
	}
	next, _ := lock.Acquire()
	lease.Release()
	if !lock.Held() || next.Released() {
		t.Fatalf("expected stale lease release to leave the new holder alone")
	}
}

func TestCounter(t *testing.T) {
	if got := Counter(-1, 5); got != "00 / 05" {
		t.Fatalf("expected 00 / 05, got %s", got)
	}
	if got := Counter(11, 12); got != "12 / 12" {
		t.Fatalf("expected 12 / 12, got %s", got)
	}
}
