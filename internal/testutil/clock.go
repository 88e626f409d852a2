package testutil

import (
	"sort"
	"time"

	"github.com/atomicstack/scrollfx/internal/clock"
)

// Clock is a manual clock.Scheduler. Callbacks only run from Advance, in
// deadline order; callbacks scheduled while advancing run in the same call
// when their deadline falls inside the advanced window.
type Clock struct {
	now     time.Duration
	seq     uint64
	pending []*manualTimer
	fired   int
}

type manualTimer struct {
	clock   *Clock
	at      time.Duration
	seq     uint64
	fn      func()
	stopped bool
}

// NewClock returns a clock positioned at zero.
func NewClock() *Clock {
	return &Clock{}
}

// AfterFunc implements clock.Scheduler.
func (c *Clock) AfterFunc(d time.Duration, fn func()) clock.Timer {
	if d < 0 {
		d = 0
	}
	c.seq++
	t := &manualTimer{clock: c, at: c.now + d, seq: c.seq, fn: fn}
	c.pending = append(c.pending, t)
	return t
}

// Stop implements clock.Timer.
func (t *manualTimer) Stop() bool {
	if t.stopped {
		return false
	}
	t.stopped = true
	t.clock.remove(t)
	return true
}

func (c *Clock) remove(t *manualTimer) {
	for i, p := range c.pending {
		if p == t {
			c.pending = append(c.pending[:i], c.pending[i+1:]...)
			return
		}
	}
}

// Now returns the elapsed manual time.
func (c *Clock) Now() time.Duration {
	return c.now
}

// Pending reports how many callbacks are scheduled.
func (c *Clock) Pending() int {
	return len(c.pending)
}

// Fired reports how many callbacks have run so far.
func (c *Clock) Fired() int {
	return c.fired
}

// Advance moves the clock forward by d, running every callback that becomes
// due.
func (c *Clock) Advance(d time.Duration) {
	c.AdvanceTo(c.now + d)
}

// AdvanceTo moves the clock to the absolute time target.
func (c *Clock) AdvanceTo(target time.Duration) {
	for {
		next := c.nextDue(target)
		if next == nil {
			break
		}
		c.remove(next)
		next.stopped = true
		c.now = next.at
		c.fired++
		next.fn()
	}
	if target > c.now {
		c.now = target
	}
}

// Drain runs callbacks until nothing is pending or limit callbacks have run.
// It returns false when the limit was hit.
func (c *Clock) Drain(limit int) bool {
	for i := 0; i < limit; i++ {
		if len(c.pending) == 0 {
			return true
		}
		c.AdvanceTo(c.earliest())
	}
	return len(c.pending) == 0
}

func (c *Clock) earliest() time.Duration {
	c.sortPending()
	return c.pending[0].at
}

func (c *Clock) nextDue(target time.Duration) *manualTimer {
	if len(c.pending) == 0 {
		return nil
	}
	c.sortPending()
	if c.pending[0].at > target {
		return nil
	}
	return c.pending[0]
}

func (c *Clock) sortPending() {
	sort.SliceStable(c.pending, func(i, j int) bool {
		if c.pending[i].at == c.pending[j].at {
			return c.pending[i].seq < c.pending[j].seq
		}
		return c.pending[i].at < c.pending[j].at
	})
}
