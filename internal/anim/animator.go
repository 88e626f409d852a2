// Package anim runs the visual side of section transitions. Runs advance one
// frame at a time through a clock.Scheduler, so the same code drives the
// terminal event loop and the manual clock used in tests.
package anim

import (
	"time"

	"github.com/atomicstack/scrollfx/internal/clock"
	"github.com/atomicstack/scrollfx/internal/nav"
)

// DefaultFPS is used when a non-positive frame rate is configured.
const DefaultFPS = 60

// Animator implements nav.Animator over a Registry and a Profile.
type Animator struct {
	sched   clock.Scheduler
	reg     *Registry
	profile Profile
	frame   time.Duration
	live    map[*run]struct{}
}

type run struct {
	plan     Plan
	total    time.Duration
	frames   int
	timer    clock.Timer
	done     func()
	finished bool
}

// New returns an animator ticking at fps frames per second.
func New(sched clock.Scheduler, reg *Registry, profile Profile, fps int) *Animator {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return &Animator{
		sched:   sched,
		reg:     reg,
		profile: profile,
		frame:   time.Second / time.Duration(fps),
		live:    make(map[*run]struct{}),
	}
}

// Registry returns the layers this animator writes to.
func (a *Animator) Registry() *Registry {
	return a.reg
}

// Frame returns the frame interval.
func (a *Animator) Frame() time.Duration {
	return a.frame
}

// Running reports how many runs are in flight.
func (a *Animator) Running() int {
	return len(a.live)
}

// Start implements nav.Animator.
func (a *Animator) Start(t nav.Transition, done func()) func() {
	var p Plan
	if a.profile != nil {
		p = a.profile.Plan(a.reg, t)
	}
	return a.Run(p, done)
}

// Run plays plan and calls done exactly once when the longest track ends. A
// plan with no tracks completes on the next frame, never synchronously. The
// returned cancel stops the run; done is not called after cancel.
func (a *Animator) Run(p Plan, done func()) func() {
	r := &run{plan: p, total: p.Duration(), done: done}
	a.live[r] = struct{}{}
	if p.Before != nil {
		p.Before()
	}
	for _, t := range p.Tracks {
		t.apply(0)
	}
	r.timer = a.sched.AfterFunc(a.frame, func() { a.tick(r) })
	return func() { a.cancel(r) }
}

// Fade tweens the opacity of a single element.
func (a *Animator) Fade(el *Element, from, to float64, d time.Duration, ease Ease, done func()) func() {
	var p Plan
	p.fromTo(el, Opacity, from, to, 0, d, ease)
	return a.Run(p, done)
}

func (a *Animator) tick(r *run) {
	if r.finished {
		return
	}
	r.frames++
	elapsed := time.Duration(r.frames) * a.frame
	for _, t := range r.plan.Tracks {
		t.apply(elapsed)
	}
	if elapsed < r.total {
		r.timer = a.sched.AfterFunc(a.frame, func() { a.tick(r) })
		return
	}
	r.finished = true
	delete(a.live, r)
	if r.plan.After != nil {
		r.plan.After()
	}
	if r.done != nil {
		r.done()
	}
}

func (a *Animator) cancel(r *run) {
	if r.finished {
		return
	}
	r.finished = true
	delete(a.live, r)
	if r.timer != nil {
		r.timer.Stop()
	}
}

// Stop cancels every in-flight run.
func (a *Animator) Stop() {
	for r := range a.live {
		a.cancel(r)
	}
}
