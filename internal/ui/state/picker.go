// Package state holds the jump-to-section picker: a fuzzy-filtered list with
// a cursor and a scrolling viewport. It knows nothing about Bubble Tea.
package state

import "strconv"

// Item is one selectable section.
type Item struct {
	Index  int
	Label  string
	Detail string
}

// Key is the text the filter matches against.
func (i Item) Key() string {
	return strconv.Itoa(i.Index+1) + " " + i.Label
}

// Picker encapsulates the jump list: visible items, filter, cursor and
// viewport.
type Picker struct {
	Items          []Item
	Full           []Item
	Filter         string
	Cursor         int
	LastCursor     int
	ViewportOffset int
}

// NewPicker builds a picker over items with the cursor on current.
func NewPicker(items []Item, current int) *Picker {
	p := &Picker{LastCursor: -1}
	p.UpdateItems(items)
	if idx := p.IndexOf(current); idx >= 0 {
		p.Cursor = idx
	}
	return p
}

// IndexOf returns the visible position of the section with the given index.
func (p *Picker) IndexOf(section int) int {
	for i, item := range p.Items {
		if item.Index == section {
			return i
		}
	}
	return -1
}

// UpdateItems replaces the full item set and reapplies the filter.
func (p *Picker) UpdateItems(items []Item) {
	prevOffset := p.ViewportOffset
	p.Full = CloneItems(items)
	p.applyFilter()
	if len(p.Items) == 0 || prevOffset < 0 || prevOffset > len(p.Items)-1 {
		p.ViewportOffset = 0
		return
	}
	p.ViewportOffset = prevOffset
}

// Selected returns the item under the cursor.
func (p *Picker) Selected() (Item, bool) {
	if p.Cursor < 0 || p.Cursor >= len(p.Items) {
		return Item{}, false
	}
	return p.Items[p.Cursor], true
}

// Visible returns the slice of items inside a viewport of maxVisible rows.
func (p *Picker) Visible(maxVisible int) []Item {
	if maxVisible <= 0 || len(p.Items) <= maxVisible {
		return p.Items
	}
	start := p.ViewportOffset
	end := start + maxVisible
	if end > len(p.Items) {
		end = len(p.Items)
	}
	return p.Items[start:end]
}

// CloneItems produces a shallow copy of items.
func CloneItems(items []Item) []Item {
	dup := make([]Item, len(items))
	copy(dup, items)
	return dup
}
