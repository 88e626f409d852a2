// Package scroll turns a virtual pinned scroll region into navigator
// requests. The terminal has no native scroll position for a full-screen
// surface, so Track models one: count slots, each rowsPerSection rows tall.
package scroll

// Track is a clamped virtual scroll position.
type Track struct {
	count int
	rows  int
	pos   int
}

// NewTrack returns a track at position zero.
func NewTrack(count, rowsPerSection int) *Track {
	t := &Track{}
	t.Resize(count, rowsPerSection)
	return t
}

// Resize changes the geometry, keeping the position inside the new span.
func (t *Track) Resize(count, rowsPerSection int) {
	if count < 0 {
		count = 0
	}
	if rowsPerSection <= 0 {
		rowsPerSection = 1
	}
	t.count = count
	t.rows = rowsPerSection
	t.pos = t.clamp(t.pos)
}

// Span is the scrollable distance in rows.
func (t *Track) Span() int {
	if t.count <= 1 {
		return 0
	}
	return (t.count - 1) * t.rows
}

// RowsPerSection returns the slot height.
func (t *Track) RowsPerSection() int {
	return t.rows
}

// Position returns the current offset in rows.
func (t *Track) Position() int {
	return t.pos
}

// ScrollBy moves the position by delta rows and reports whether it changed.
func (t *Track) ScrollBy(delta int) bool {
	return t.ScrollTo(t.pos + delta)
}

// ScrollTo moves to pos and reports whether the position changed.
func (t *Track) ScrollTo(pos int) bool {
	pos = t.clamp(pos)
	if pos == t.pos {
		return false
	}
	t.pos = pos
	return true
}

// SlotStart returns the position at which slot i begins.
func (t *Track) SlotStart(i int) int {
	return t.clamp(i * t.rows)
}

// Progress returns the position as a fraction of the span, 0 when there is
// nothing to scroll.
func (t *Track) Progress() float64 {
	span := t.Span()
	if span == 0 {
		return 0
	}
	return float64(t.pos) / float64(span)
}

func (t *Track) clamp(pos int) int {
	if pos < 0 {
		return 0
	}
	if span := t.Span(); pos > span {
		return span
	}
	return pos
}
