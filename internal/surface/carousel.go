package surface

import (
	"time"

	"github.com/atomicstack/scrollfx/internal/clock"
)

// CarouselInterval is how long each gallery preview stays in the centre slot.
const CarouselInterval = 2500 * time.Millisecond

// Carousel cycles the gallery previews of the settled Primary section. It
// runs only while the section has more than one preview and the Primary is
// visible.
type Carousel struct {
	sched    clock.Scheduler
	interval time.Duration
	count    int
	index    int
	visible  bool
	stopped  bool
	timer    clock.Timer
}

func newCarousel(sched clock.Scheduler, interval time.Duration) *Carousel {
	if interval <= 0 {
		interval = CarouselInterval
	}
	return &Carousel{sched: sched, interval: interval, visible: true}
}

// Reset shows the first of count previews and restarts the cycle.
func (c *Carousel) Reset(count int) {
	c.disarm()
	c.count = count
	c.index = 0
	c.sync()
}

// SetVisible gates the cycle.
func (c *Carousel) SetVisible(v bool) {
	c.visible = v
	c.sync()
}

// Index returns the preview on show.
func (c *Carousel) Index() int {
	if c == nil {
		return 0
	}
	return c.index
}

// Count returns the number of previews.
func (c *Carousel) Count() int {
	if c == nil {
		return 0
	}
	return c.count
}

// Running reports whether a cycle timer is pending.
func (c *Carousel) Running() bool {
	return c != nil && c.timer != nil
}

// Stop halts the cycle for good.
func (c *Carousel) Stop() {
	c.stopped = true
	c.disarm()
}

func (c *Carousel) sync() {
	want := c.visible && !c.stopped && c.count > 1
	switch {
	case want && c.timer == nil:
		c.timer = c.sched.AfterFunc(c.interval, c.advance)
	case !want:
		c.disarm()
	}
}

func (c *Carousel) advance() {
	c.timer = nil
	if c.count == 0 {
		return
	}
	c.index = (c.index + 1) % c.count
	c.sync()
}

func (c *Carousel) disarm() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}
