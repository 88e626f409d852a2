package anim

import (
	"time"

	"github.com/atomicstack/scrollfx/internal/nav"
)

// Plan is the full set of tracks for one run. Before runs synchronously when
// the run starts; After runs once the last track has finished and before the
// completion callback.
type Plan struct {
	Tracks []Track
	Before func()
	After  func()
}

// Duration is the end of the longest track.
func (p Plan) Duration() time.Duration {
	var total time.Duration
	for _, t := range p.Tracks {
		if end := t.End(); end > total {
			total = end
		}
	}
	return total
}

func (p *Plan) add(el *Element, prop Prop, to float64, d time.Duration, ease Ease) {
	if el == nil {
		return
	}
	p.Tracks = append(p.Tracks, Track{Element: el, Prop: prop, From: el.Get(prop), To: to, Duration: d, Ease: ease})
}

func (p *Plan) fromTo(el *Element, prop Prop, from, to float64, delay, d time.Duration, ease Ease) {
	if el == nil {
		return
	}
	p.Tracks = append(p.Tracks, Track{Element: el, Prop: prop, From: from, To: to, Delay: delay, Duration: d, Ease: ease})
}

// Profile builds the plan for a transition.
type Profile interface {
	Plan(reg *Registry, t nav.Transition) Plan
}

// Primary surface timings.
const (
	BackgroundDuration = 700 * time.Millisecond
	ListDuration       = 600 * time.Millisecond
	ItemDuration       = 500 * time.Millisecond
	TitleDuration      = 800 * time.Millisecond
	WordStagger        = 60 * time.Millisecond
)

// Overlay surface timings.
const (
	SlideDuration   = 1250 * time.Millisecond
	HeadingDuration = time.Second
	HeadingDelay    = 300 * time.Millisecond
	EntryFade       = 500 * time.Millisecond
	ExitFade        = 800 * time.Millisecond
)

// itemShift is how far, in cells, an active side-list item is nudged inward.
const itemShift = 1

// PrimaryProfile drives the scroll-driven surface: the background crossfades
// vertically, the side lists re-centre on the target and the title rises in
// word by word.
type PrimaryProfile struct {
	ViewRows int
	ItemRows int
}

// Plan implements Profile.
func (pp *PrimaryProfile) Plan(reg *Registry, t nav.Transition) Plan {
	var p Plan
	d := t.Direction.Factor()
	if out := reg.At(t.From); out != nil {
		p.add(out.Media, Opacity, 0, BackgroundDuration, Power1Out)
		p.add(out.Media, OffsetY, -5*d, BackgroundDuration, Power1Out)
		p.add(out.Left, Opacity, dimmed, ItemDuration, Power1Out)
		p.add(out.Left, OffsetX, 0, ItemDuration, Power1Out)
		p.add(out.Right, Opacity, dimmed, ItemDuration, Power1Out)
		p.add(out.Right, OffsetX, 0, ItemDuration, Power1Out)
		p.add(out.Heading, Opacity, 0, ItemDuration, Power1Out)
		for _, w := range out.Words {
			p.add(w, Opacity, 0, ItemDuration, Power1Out)
		}
	}
	if in := reg.At(t.To); in != nil {
		p.fromTo(in.Media, Opacity, 0, 1, 0, BackgroundDuration, Power1Out)
		p.fromTo(in.Media, OffsetY, 5*d, 0, 0, BackgroundDuration, Power1Out)
		p.fromTo(in.Media, Scale, 1.05, 1, 0, BackgroundDuration, Power1Out)
		p.add(in.Left, Opacity, 1, ItemDuration, Power1Out)
		p.add(in.Left, OffsetX, itemShift, ItemDuration, Power1Out)
		p.add(in.Right, Opacity, 1, ItemDuration, Power1Out)
		p.add(in.Right, OffsetX, -itemShift, ItemDuration, Power1Out)
		p.fromTo(in.Heading, Opacity, 0, 1, 0, TitleDuration, Power2Out)
		for i, w := range in.Words {
			delay := time.Duration(i) * WordStagger
			p.fromTo(w, OffsetY, 100, 0, delay, TitleDuration, Power2Out)
			p.fromTo(w, Opacity, 0, 1, delay, TitleDuration, Power2Out)
		}
	}
	target := ListOffset(t.To, pp.ViewRows, pp.ItemRows)
	p.add(reg.ListLeft, OffsetY, target, ListDuration, Power3Out)
	p.add(reg.ListRight, OffsetY, target, ListDuration, Power3Out)
	return p
}

// OverlayProfile drives the gallery: the outgoing image drifts sideways while
// the incoming section's wrappers slide in from opposite edges.
type OverlayProfile struct{}

// Plan implements Profile.
func (OverlayProfile) Plan(reg *Registry, t nav.Transition) Plan {
	var p Plan
	d := t.Direction.Factor()
	out := reg.At(t.From)
	in := reg.At(t.To)
	p.Before = func() {
		if in == nil {
			return
		}
		in.Media.Hidden = false
		in.Media.Opacity = 1
		for _, w := range in.Words {
			w.Opacity = 1
			w.OffsetY = 0
		}
	}
	if out != nil {
		p.add(out.Media, OffsetX, -15*d, SlideDuration, Power1InOut)
		p.After = func() {
			out.Media.Hidden = true
		}
	}
	if in != nil {
		p.fromTo(in.Outer, OffsetX, 100*d, 0, 0, SlideDuration, Power1InOut)
		p.fromTo(in.Inner, OffsetX, -100*d, 0, 0, SlideDuration, Power1InOut)
		p.fromTo(in.Media, OffsetX, 15*d, 0, 0, SlideDuration, Power1InOut)
		p.fromTo(in.Heading, OffsetY, 50, 0, HeadingDelay, HeadingDuration, Power3Out)
		p.fromTo(in.Heading, Opacity, 0, 1, HeadingDelay, HeadingDuration, Power3Out)
	}
	return p
}
