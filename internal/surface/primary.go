package surface

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/atomicstack/scrollfx/internal/anim"
	"github.com/atomicstack/scrollfx/internal/autoplay"
	"github.com/atomicstack/scrollfx/internal/clock"
	"github.com/atomicstack/scrollfx/internal/deck"
	"github.com/atomicstack/scrollfx/internal/logging/events"
	"github.com/atomicstack/scrollfx/internal/nav"
	"github.com/atomicstack/scrollfx/internal/preload"
	"github.com/atomicstack/scrollfx/internal/scroll"
)

// PrimaryOptions configures the scroll-driven surface.
type PrimaryOptions struct {
	Initial          int
	Autoplay         bool
	Interval         time.Duration
	FPS              int
	RowsPerSection   int
	ItemRows         int
	ViewRows         int
	CarouselInterval time.Duration
}

// Primary is the scroll-driven surface. Every mount builds a fresh set of
// components; nothing carries over from a previous mount.
type Primary struct {
	root clock.Scheduler
	lock *Lock
	opts PrimaryOptions

	id       string
	deck     *deck.Deck
	mounted  bool
	scope    *clock.Scope
	ctx      context.Context
	cancel   context.CancelFunc
	reg      *anim.Registry
	profile  *anim.PrimaryProfile
	animator *anim.Animator
	nav      *nav.Navigator
	track    *scroll.Track
	mapper   *scroll.Mapper
	auto     *autoplay.Controller
	gate     *preload.Gate
	carousel *Carousel
	hover    pauseSet
}

// NewPrimary returns an unmounted surface. lock is shared with the overlay.
func NewPrimary(root clock.Scheduler, lock *Lock, opts PrimaryOptions) *Primary {
	if opts.RowsPerSection <= 0 {
		opts.RowsPerSection = 4
	}
	if opts.ItemRows <= 0 {
		opts.ItemRows = 2
	}
	p := &Primary{root: root, lock: lock, opts: opts}
	if lock != nil {
		lock.OnChange(p.covered)
	}
	return p
}

// Mount builds the surface for d and arms its preload gate.
func (p *Primary) Mount(d *deck.Deck) ProbeRequest {
	p.Destroy()
	p.id = uuid.NewString()
	p.deck = d
	p.mounted = true
	p.hover = make(pauseSet)
	p.scope = clock.NewScope(p.root)
	p.ctx, p.cancel = context.WithCancel(context.Background())

	sections := d.Sections
	p.reg = anim.NewRegistry(sections)
	p.profile = &anim.PrimaryProfile{ViewRows: p.opts.ViewRows, ItemRows: p.opts.ItemRows}
	p.animator = anim.New(p.scope, p.reg, p.profile, p.opts.FPS)

	p.nav = nav.New(len(sections), p.animator)
	p.nav.SetObserver(events.Nav.Observer(p.id))
	p.nav.SetReady(false)
	p.track = scroll.NewTrack(len(sections), p.opts.RowsPerSection)
	p.mapper = scroll.NewMapper(p.nav, p.track)

	p.auto = autoplay.New(p.scope, p.opts.Interval, p.mapper.Next, p.nav.Transitioning)
	id := p.id
	p.auto.OnEvent(func(e autoplay.Event) { events.Autoplay.Event(id, string(e)) })
	p.carousel = newCarousel(p.scope, p.opts.CarouselInterval)
	p.nav.OnSettle(p.settled)

	if len(sections) > 0 {
		initial := nav.Wrap(p.opts.Initial, len(sections))
		p.reg.ShowPrimary(initial, p.opts.ViewRows, p.opts.ItemRows)
		p.nav.Settle(initial)
		p.mapper.Align()
	}
	if p.lock != nil && p.lock.Held() {
		p.covered(true)
	}
	p.auto.SetEnabled(p.opts.Autoplay)

	p.gate = preload.NewGate()
	p.gate.OnReady(p.ready)
	refs := deck.MediaRefs(sections)
	gen := p.gate.Arm(refs)
	events.Preload.Arm(p.id, gen, len(refs))
	return ProbeRequest{Ctx: p.ctx, Surface: p.id, Generation: gen, Refs: refs}
}

// Remount tears the surface down and mounts d from scratch.
func (p *Primary) Remount(d *deck.Deck) ProbeRequest {
	p.Destroy()
	return p.Mount(d)
}

// Destroy cancels every pending timer, frame and probe of the current mount.
func (p *Primary) Destroy() {
	if !p.mounted {
		return
	}
	p.mounted = false
	p.cancel()
	p.gate.Disarm()
	p.auto.Stop()
	p.carousel.Stop()
	p.nav.Dispose()
	p.animator.Stop()
	p.scope.Dispose()
}

func (p *Primary) ready(gen uint64) {
	events.Preload.Ready(p.id, gen, p.gate.State().Failed)
	p.nav.SetReady(true)
	p.auto.SetReady(true)
	p.mapper.Resample()
}

func (p *Primary) settled(index int) {
	if s, ok := p.deck.At(index); ok {
		p.carousel.Reset(len(s.Gallery))
	}
}

// covered follows the scroll lock: while another surface holds it, scroll
// sampling, autoplay and the preview carousel are suspended.
func (p *Primary) covered(held bool) {
	if !p.mounted {
		return
	}
	p.mapper.Suspend(held)
	p.auto.SetVisible(!held)
	p.carousel.SetVisible(!held)
}

// Resolve feeds one probe outcome into the gate.
func (p *Primary) Resolve(gen uint64, index int, res preload.Result) bool {
	if !p.mounted {
		return false
	}
	if !p.gate.Resolve(gen, index, res) {
		return false
	}
	events.Preload.Resolve(p.id, gen, index, res.Err)
	return true
}

// Scroll moves the virtual track by delta rows.
func (p *Primary) Scroll(delta int) bool {
	if !p.mounted {
		return false
	}
	return p.mapper.Scroll(delta)
}

// Next, Previous and GoTo are the discrete navigation inputs. They all go
// through the mapper so the scroll track follows the index.
func (p *Primary) Next() bool {
	return p.mounted && p.mapper.Next()
}

func (p *Primary) Previous() bool {
	return p.mounted && p.mapper.Previous()
}

func (p *Primary) GoTo(i int, dir ...nav.Direction) bool {
	return p.mounted && p.mapper.JumpTo(i, dir...)
}

// Hover records pointer hover over zone. Any hovered zone pauses autoplay.
func (p *Primary) Hover(zone string, on bool) {
	if !p.mounted {
		return
	}
	p.hover.apply(p.auto, zone, on)
}

// SetViewport updates the height the side lists centre within.
func (p *Primary) SetViewport(rows int) {
	p.opts.ViewRows = rows
	if !p.mounted {
		return
	}
	p.profile.ViewRows = rows
	if !p.nav.Transitioning() && p.nav.Current() >= 0 {
		offset := anim.ListOffset(p.nav.Current(), rows, p.opts.ItemRows)
		p.reg.ListLeft.OffsetY = offset
		p.reg.ListRight.OffsetY = offset
	}
}

// Mounted reports whether the surface is live.
func (p *Primary) Mounted() bool {
	return p.mounted
}

// ID identifies the current mount in traces and probe messages.
func (p *Primary) ID() string {
	return p.id
}

// Deck returns the mounted deck.
func (p *Primary) Deck() *deck.Deck {
	return p.deck
}

// Section returns the settled section.
func (p *Primary) Section() (deck.Section, bool) {
	if !p.mounted {
		return deck.Section{}, false
	}
	return p.deck.At(p.nav.Current())
}

// Registry exposes the animated layers to the view.
func (p *Primary) Registry() *anim.Registry {
	return p.reg
}

// Carousel exposes the preview cycle to the view.
func (p *Primary) Carousel() *Carousel {
	return p.carousel
}

// Navigator, Autoplay, Scope and Mapper are exposed for the UI and tests.
func (p *Primary) Navigator() *nav.Navigator {
	return p.nav
}

func (p *Primary) Autoplay() *autoplay.Controller {
	return p.auto
}

func (p *Primary) Scope() *clock.Scope {
	return p.scope
}

func (p *Primary) Mapper() *scroll.Mapper {
	return p.mapper
}

// Snapshot returns the render state. The progress indicator follows the
// settled index.
func (p *Primary) Snapshot() Snapshot {
	if !p.mounted {
		return Snapshot{Current: -1}
	}
	s := snapshot(p.id, p.nav, p.gate, p.auto)
	s.Progress = p.mapper.Indicator()
	return s
}

// Options returns the effective configuration.
func (p *Primary) Options() PrimaryOptions {
	return p.opts
}

// MediaErr reports the probe failure recorded for section i, if any.
func (p *Primary) MediaErr(i int) error {
	if !p.mounted {
		return nil
	}
	return p.gate.Err(i)
}

// ToggleAutoplay flips the enabled gate and reports the new value.
func (p *Primary) ToggleAutoplay() bool {
	if !p.mounted {
		return false
	}
	on := !p.auto.State().Enabled
	p.auto.SetEnabled(on)
	return on
}
