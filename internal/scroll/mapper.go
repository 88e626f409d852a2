package scroll

import (
	"math"

	"github.com/atomicstack/scrollfx/internal/nav"
)

// Mapper samples scroll progress and requests the matching section. Samples
// rejected by the navigator are not queued; the last sample is replayed once
// the navigator settles so the final position always wins.
type Mapper struct {
	nav       *nav.Navigator
	track     *Track
	last      float64
	sampled   bool
	suspended bool
}

// NewMapper binds a mapper to n and registers it as a settle listener. It
// should be created before other listeners so the corrected request is issued
// first.
func NewMapper(n *nav.Navigator, track *Track) *Mapper {
	m := &Mapper{nav: n, track: track}
	n.OnSettle(m.settled)
	return m
}

// Track returns the underlying scroll track.
func (m *Mapper) Track() *Track {
	return m.track
}

// Target maps progress p onto a section index.
func Target(p float64, count int) int {
	if count <= 0 {
		return -1
	}
	if p < 0 {
		p = 0
	}
	i := int(math.Floor(p * float64(count)))
	if i > count-1 {
		i = count - 1
	}
	return i
}

// Sample records p and requests its section when it differs from the
// settled index. The track never wraps, so the direction follows the raw
// index order. It reports whether a request was accepted.
func (m *Mapper) Sample(p float64) bool {
	m.last = p
	m.sampled = true
	if m.suspended {
		return false
	}
	target := Target(p, m.nav.Count())
	if target < 0 || target == m.nav.Current() {
		return false
	}
	dir := nav.Forward
	if target < m.nav.Current() {
		dir = nav.Backward
	}
	return m.nav.RequestGoTo(target, dir)
}

// Scroll moves the track by delta rows and samples the new progress.
func (m *Mapper) Scroll(delta int) bool {
	if m.suspended {
		return false
	}
	m.track.ScrollBy(delta)
	return m.Sample(m.track.Progress())
}

// Align moves the track to the start of the settled section's slot without
// requesting anything.
func (m *Mapper) Align() {
	current := m.nav.Current()
	if current < 0 {
		return
	}
	m.track.ScrollTo(m.track.SlotStart(current))
	m.last = m.track.Progress()
	m.sampled = true
}

// Resample replays the last stored progress.
func (m *Mapper) Resample() bool {
	if !m.sampled {
		return false
	}
	return m.Sample(m.last)
}

// Suspend stops sampling while another surface owns scroll input. Resuming
// replays the last sample.
func (m *Mapper) Suspend(v bool) {
	if m.suspended == v {
		return
	}
	m.suspended = v
	if !v {
		m.Resample()
	}
}

// Suspended reports whether sampling is suspended.
func (m *Mapper) Suspended() bool {
	return m.suspended
}

func (m *Mapper) settled(int) {
	if m.suspended {
		return
	}
	m.Resample()
}

// Indicator is the settled index as a fraction of the deck. It never reads
// raw progress, so it cannot run ahead of a transition in flight.
func (m *Mapper) Indicator() float64 {
	count := m.nav.Count()
	current := m.nav.Current()
	if count <= 1 || current <= 0 {
		return 0
	}
	return float64(current) / float64(count-1)
}

// JumpTo requests section i directly, moving the track to the start of its
// slot so the replay on settle agrees with the new index. It is rejected
// while a transition is in flight.
func (m *Mapper) JumpTo(i int, dir ...nav.Direction) bool {
	if m.suspended || m.nav.Transitioning() || m.nav.Count() == 0 {
		return false
	}
	target := m.nav.Wrap(i)
	prevPos, prevLast, prevSampled := m.track.Position(), m.last, m.sampled
	m.track.ScrollTo(m.track.SlotStart(target))
	m.last = m.track.Progress()
	m.sampled = true
	if m.nav.RequestGoTo(target, dir...) {
		return true
	}
	m.track.ScrollTo(prevPos)
	m.last, m.sampled = prevLast, prevSampled
	return false
}

// Next and Previous move one section with explicit direction, wrapping at the
// ends.
func (m *Mapper) Next() bool {
	return m.JumpTo(m.nav.Current()+1, nav.Forward)
}

func (m *Mapper) Previous() bool {
	return m.JumpTo(m.nav.Current()-1, nav.Backward)
}
