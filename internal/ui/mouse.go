package ui

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/scrollfx/internal/surface"
)

// Zone identifiers. Indexed zones carry the section index after the prefix.
const (
	zoneMedia        = "media"
	zoneCollection   = "collection"
	zoneClose        = "close"
	zoneArrowPrev    = "arrow-prev"
	zoneArrowNext    = "arrow-next"
	zoneLeftPrefix   = "left-"
	zoneRightPrefix  = "right-"
	zoneThumbPrefix  = "thumb-"
	zoneTerminalBlur = "terminal-blur"
)

func indexedZone(prefix string, i int) string {
	return prefix + strconv.Itoa(i)
}

func parseIndexedZone(id, prefix string) (int, bool) {
	rest, ok := strings.CutPrefix(id, prefix)
	if !ok {
		return 0, false
	}
	i, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return i, true
}

// hoverGroup folds per-item zones into the pause source they belong to so
// moving between two thumbnails does not resume autoplay in between.
func hoverGroup(id string) string {
	switch {
	case strings.HasPrefix(id, zoneLeftPrefix), strings.HasPrefix(id, zoneRightPrefix):
		return "lists"
	case strings.HasPrefix(id, zoneThumbPrefix):
		return "thumbs"
	case id == zoneArrowPrev, id == zoneArrowNext:
		return "arrows"
	}
	return id
}

var hoverGroups = []string{"lists", "thumbs", "arrows", zoneMedia, zoneClose, zoneCollection}

func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(tea.MouseMsg)
	if !ok {
		return nil
	}
	switch {
	case ev.Button == tea.MouseButtonWheelDown:
		m.primary.Scroll(1)
		return nil
	case ev.Button == tea.MouseButtonWheelUp:
		m.primary.Scroll(-1)
		return nil
	}
	if m.zone == nil {
		return nil
	}
	id := m.zoneAt(ev)
	switch ev.Action {
	case tea.MouseActionMotion:
		m.hoverZone(id)
	case tea.MouseActionPress:
		if ev.Button == tea.MouseButtonLeft && id != "" {
			return m.clickZone(id)
		}
	}
	return nil
}

// zoneIDs lists the zones the current view may have marked.
func (m *Model) zoneIDs() []string {
	if m.overlay.IsOpen() {
		ids := []string{zoneClose, zoneArrowPrev, zoneArrowNext}
		for i := range m.overlay.Items() {
			ids = append(ids, indexedZone(zoneThumbPrefix, i))
		}
		return append(ids, zoneMedia)
	}
	ids := []string{zoneCollection}
	if m.deck != nil {
		for i := range m.deck.Sections {
			ids = append(ids, indexedZone(zoneLeftPrefix, i), indexedZone(zoneRightPrefix, i))
		}
	}
	return append(ids, zoneMedia)
}

func (m *Model) zoneAt(ev tea.MouseMsg) string {
	for _, id := range m.zoneIDs() {
		if z := m.zone.Get(id); z != nil && z.InBounds(ev) {
			return id
		}
	}
	return ""
}

// hoverZone makes id's group the only active pointer pause source.
func (m *Model) hoverZone(id string) {
	active := ""
	if id != "" {
		active = hoverGroup(id)
	}
	for _, g := range hoverGroups {
		if g != active {
			m.setHover(g, false)
		}
	}
	if active != "" {
		m.setHover(active, true)
	}
}

// clickZone performs the action bound to a clicked zone.
func (m *Model) clickZone(id string) tea.Cmd {
	if m.overlay.IsOpen() {
		o := m.overlay
		if o.State() != surface.Active && id != zoneClose {
			return nil
		}
		switch id {
		case zoneClose:
			o.RequestExit()
		case zoneArrowPrev:
			o.Previous()
		case zoneArrowNext:
			o.Next()
		default:
			if i, ok := parseIndexedZone(id, zoneThumbPrefix); ok {
				o.GoTo(i)
			}
		}
		return nil
	}
	if id == zoneCollection {
		return m.openGallery()
	}
	if i, ok := parseIndexedZone(id, zoneLeftPrefix); ok {
		m.primary.GoTo(i)
	} else if i, ok := parseIndexedZone(id, zoneRightPrefix); ok {
		m.primary.GoTo(i)
	}
	return nil
}

// mark wraps text in a zone marker when mouse support is on.
func (m *Model) mark(id, text string) string {
	if m.zone == nil {
		return text
	}
	return m.zone.Mark(id, text)
}
