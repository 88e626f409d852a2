// Package autoplay advances a navigator on a fixed interval while every gate
// is open. Closing any gate destroys the pending timer; reopening arms a
// fresh full interval.
package autoplay

import (
	"time"

	"github.com/atomicstack/scrollfx/internal/clock"
)

// Event identifies a controller lifecycle step for trace output.
type Event string

const (
	EventArm     Event = "arm"
	EventDisarm  Event = "disarm"
	EventTick    Event = "tick"
	EventDropped Event = "dropped"
)

// State is a read-only snapshot of the gates.
type State struct {
	Armed    bool
	Enabled  bool
	Ready    bool
	Visible  bool
	Paused   bool
	Stopped  bool
	Interval time.Duration
}

// Controller owns the autoplay timer of one surface.
type Controller struct {
	sched    clock.Scheduler
	interval time.Duration
	next     func() bool
	busy     func() bool

	enabled bool
	ready   bool
	visible bool
	paused  bool
	stopped bool

	timer   clock.Timer
	onEvent func(Event)
}

// New returns a disabled controller. next advances the navigator; busy
// reports whether a transition is in flight.
func New(sched clock.Scheduler, interval time.Duration, next func() bool, busy func() bool) *Controller {
	return &Controller{
		sched:    sched,
		interval: interval,
		next:     next,
		busy:     busy,
		visible:  true,
	}
}

// OnEvent installs a trace hook.
func (c *Controller) OnEvent(fn func(Event)) {
	c.onEvent = fn
}

// SetEnabled toggles autoplay as a whole.
func (c *Controller) SetEnabled(v bool) {
	c.enabled = v
	c.sync()
}

// SetReady follows the preload gate.
func (c *Controller) SetReady(v bool) {
	c.ready = v
	c.sync()
}

// SetVisible follows whether the owning surface is on screen and uncovered.
func (c *Controller) SetVisible(v bool) {
	c.visible = v
	c.sync()
}

// SetInterval changes the interval. A running timer is re-armed with the new
// value.
func (c *Controller) SetInterval(d time.Duration) {
	if d == c.interval {
		return
	}
	c.interval = d
	c.disarm()
	c.sync()
}

// Pause closes the pause gate. Pausing twice is a no-op.
func (c *Controller) Pause() {
	if c.paused {
		return
	}
	c.paused = true
	c.sync()
}

// Resume opens the pause gate. Resuming when not paused leaves a running
// timer untouched.
func (c *Controller) Resume() {
	if !c.paused {
		return
	}
	c.paused = false
	c.sync()
}

// Paused reports whether the pause gate is closed.
func (c *Controller) Paused() bool {
	return c.paused
}

// Stop closes the controller for good.
func (c *Controller) Stop() {
	c.stopped = true
	c.sync()
}

// Armed reports whether a timer is pending.
func (c *Controller) Armed() bool {
	return c.timer != nil
}

// State returns a snapshot.
func (c *Controller) State() State {
	return State{
		Armed:    c.timer != nil,
		Enabled:  c.enabled,
		Ready:    c.ready,
		Visible:  c.visible,
		Paused:   c.paused,
		Stopped:  c.stopped,
		Interval: c.interval,
	}
}

func (c *Controller) open() bool {
	return c.enabled && c.ready && c.visible && !c.paused && !c.stopped && c.interval > 0 && c.sched != nil
}

func (c *Controller) sync() {
	switch {
	case c.open() && c.timer == nil:
		c.arm()
	case !c.open() && c.timer != nil:
		c.disarm()
	}
}

func (c *Controller) arm() {
	var t clock.Timer
	t = c.sched.AfterFunc(c.interval, func() { c.fire(t) })
	c.timer = t
	c.emit(EventArm)
}

func (c *Controller) disarm() {
	if c.timer == nil {
		return
	}
	c.timer.Stop()
	c.timer = nil
	c.emit(EventDisarm)
}

func (c *Controller) fire(t clock.Timer) {
	if c.timer != t {
		return
	}
	c.timer = nil
	if !c.open() {
		return
	}
	if c.busy != nil && c.busy() {
		c.emit(EventDropped)
	} else {
		c.emit(EventTick)
		if c.next != nil {
			c.next()
		}
	}
	c.sync()
}

func (c *Controller) emit(e Event) {
	if c.onEvent != nil {
		c.onEvent(e)
	}
}
