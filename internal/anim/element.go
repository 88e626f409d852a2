package anim

import (
	"time"

	"github.com/atomicstack/scrollfx/internal/deck"
)

// Prop names an animatable property of an Element.
type Prop int

const (
	OffsetX Prop = iota
	OffsetY
	Opacity
	Scale
)

func (p Prop) String() string {
	switch p {
	case OffsetX:
		return "x"
	case OffsetY:
		return "y"
	case Opacity:
		return "opacity"
	case Scale:
		return "scale"
	}
	return "unknown"
}

// Element is the animatable state of one visual layer. Media and wrapper
// offsets are percent of the layer's own extent; side-list offsets are cells.
type Element struct {
	OffsetX float64
	OffsetY float64
	Opacity float64
	Scale   float64
	Hidden  bool
}

func newElement(opacity float64) *Element {
	return &Element{Opacity: opacity, Scale: 1}
}

// Get returns the value of p.
func (e *Element) Get(p Prop) float64 {
	switch p {
	case OffsetX:
		return e.OffsetX
	case OffsetY:
		return e.OffsetY
	case Opacity:
		return e.Opacity
	case Scale:
		return e.Scale
	}
	return 0
}

// Set assigns v to p.
func (e *Element) Set(p Prop, v float64) {
	switch p {
	case OffsetX:
		e.OffsetX = v
	case OffsetY:
		e.OffsetY = v
	case Opacity:
		e.Opacity = v
	case Scale:
		e.Scale = v
	}
}

// Visible reports whether the element should be drawn at all.
func (e *Element) Visible() bool {
	return e != nil && !e.Hidden && e.Opacity > 0.01
}

// Track tweens one property of one element.
type Track struct {
	Element  *Element
	Prop     Prop
	From, To float64
	Delay    time.Duration
	Duration time.Duration
	Ease     Ease
}

// End returns the offset at which the track finishes.
func (t Track) End() time.Duration {
	return t.Delay + t.Duration
}

// apply writes the value for elapsed. Before the delay the From value is
// rendered immediately.
func (t Track) apply(elapsed time.Duration) {
	if t.Element == nil {
		return
	}
	if elapsed <= t.Delay {
		t.Element.Set(t.Prop, t.From)
		return
	}
	progress := 1.0
	if t.Duration > 0 {
		progress = float64(elapsed-t.Delay) / float64(t.Duration)
	}
	ease := t.Ease
	if ease == nil {
		ease = Power1Out
	}
	t.Element.Set(t.Prop, lerp(t.From, t.To, ease(clamp01(progress))))
}

// Layers holds every animatable element belonging to one section. Heading is
// nil when the section has no title.
type Layers struct {
	Media   *Element
	Outer   *Element
	Inner   *Element
	Heading *Element
	Words   []*Element
	Left    *Element
	Right   *Element
}

// Registry owns the layers of a fixed set of sections plus the two shared
// side-list tracks. It is built once per mount.
type Registry struct {
	layers    []Layers
	ListLeft  *Element
	ListRight *Element
}

// NewRegistry builds layers for sections.
func NewRegistry(sections []deck.Section) *Registry {
	r := &Registry{
		layers:    make([]Layers, len(sections)),
		ListLeft:  newElement(1),
		ListRight: newElement(1),
	}
	for i, s := range sections {
		l := Layers{
			Media: newElement(0),
			Outer: newElement(1),
			Inner: newElement(1),
			Left:  newElement(dimmed),
			Right: newElement(dimmed),
		}
		if words := s.Words(); len(words) > 0 {
			l.Heading = newElement(0)
			l.Words = make([]*Element, len(words))
			for w := range words {
				l.Words[w] = newElement(0)
			}
		}
		r.layers[i] = l
	}
	return r
}

// Len returns the number of sections.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.layers)
}

// At returns the layers at i, or nil when i is out of range.
func (r *Registry) At(i int) *Layers {
	if r == nil || i < 0 || i >= len(r.layers) {
		return nil
	}
	return &r.layers[i]
}

// dimmed is the opacity of inactive side-list items.
const dimmed = 0.3

// ShowPrimary places every layer in its settled state for index without
// animating.
func (r *Registry) ShowPrimary(index, viewRows, itemRows int) {
	for i := range r.layers {
		l := &r.layers[i]
		active := i == index
		l.Media.OffsetY = 0
		l.Media.Opacity, l.Media.Scale = 0, 1.05
		l.Left.Opacity, l.Left.OffsetX = dimmed, 0
		l.Right.Opacity, l.Right.OffsetX = dimmed, 0
		if active {
			l.Media.Opacity, l.Media.Scale = 1, 1
			l.Left.Opacity, l.Left.OffsetX = 1, itemShift
			l.Right.Opacity, l.Right.OffsetX = 1, -itemShift
		}
		setWords(l, active)
	}
	offset := ListOffset(index, viewRows, itemRows)
	r.ListLeft.OffsetY = offset
	r.ListRight.OffsetY = offset
}

// HideOverlay hides every gallery section and parks the wrappers off-screen.
func (r *Registry) HideOverlay() {
	for i := range r.layers {
		l := &r.layers[i]
		l.Media.Hidden = true
		l.Media.Opacity = 1
		l.Media.OffsetX = 0
		l.Outer.OffsetX = 100
		l.Inner.OffsetX = -100
		if l.Heading != nil {
			l.Heading.Opacity = 0
			l.Heading.OffsetY = 50
		}
	}
}

func setWords(l *Layers, visible bool) {
	v := 0.0
	if visible {
		v = 1
	}
	if l.Heading != nil {
		l.Heading.Opacity = v
		l.Heading.OffsetY = 0
	}
	for _, w := range l.Words {
		w.Opacity = v
		w.OffsetY = 0
	}
}

// ListOffset returns the vertical offset in rows that centres item index of a
// side list inside a viewport viewRows tall.
func ListOffset(index, viewRows, itemRows int) float64 {
	if itemRows <= 0 {
		itemRows = 1
	}
	return float64(viewRows)/2 - float64(itemRows)/2 - float64(index*itemRows)
}
