package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/scrollfx/internal/logging/events"
	"github.com/atomicstack/scrollfx/internal/nav"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	events.UI.Key(keyMsg.String(), m.overlay.IsOpen())
	if key.Matches(keyMsg, m.keys.ForceQuit) {
		m.quit()
		return nil
	}
	switch {
	case m.overlay.IsOpen():
		return m.handleOverlayKey(keyMsg)
	case m.jump != nil:
		return m.handleJumpKey(keyMsg)
	default:
		return m.handlePrimaryKey(keyMsg)
	}
}

func (m *Model) handlePrimaryKey(msg tea.KeyMsg) tea.Cmd {
	p := m.primary
	if !p.Mounted() {
		if key.Matches(msg, m.keys.Quit) {
			m.quit()
		}
		return nil
	}
	rows := p.Options().RowsPerSection
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quit()
	case key.Matches(msg, m.keys.Next):
		p.Next()
	case key.Matches(msg, m.keys.Previous):
		p.Previous()
	case key.Matches(msg, m.keys.ScrollDown):
		p.Scroll(1)
	case key.Matches(msg, m.keys.ScrollUp):
		p.Scroll(-1)
	case key.Matches(msg, m.keys.PageDown):
		p.Scroll(rows)
	case key.Matches(msg, m.keys.PageUp):
		p.Scroll(-rows)
	case key.Matches(msg, m.keys.First):
		p.GoTo(0, nav.Backward)
	case key.Matches(msg, m.keys.Last):
		p.GoTo(p.Navigator().Count()-1, nav.Forward)
	case key.Matches(msg, m.keys.Open):
		return m.openGallery()
	case key.Matches(msg, m.keys.Jump):
		m.openJump()
	case key.Matches(msg, m.keys.Autoplay):
		m.toggleAutoplay(p.ToggleAutoplay())
	case key.Matches(msg, m.keys.Yank):
		return m.yankCurrent()
	case key.Matches(msg, m.keys.Reload):
		return m.reloadDeck()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	default:
		if i, ok := digit(msg); ok {
			p.GoTo(i)
		}
	}
	return nil
}

func (m *Model) handleOverlayKey(msg tea.KeyMsg) tea.Cmd {
	o := m.overlay
	switch {
	case key.Matches(msg, m.keys.Close):
		o.RequestExit()
	case key.Matches(msg, m.keys.Next):
		o.Next()
	case key.Matches(msg, m.keys.Previous):
		o.Previous()
	case key.Matches(msg, m.keys.First):
		o.GoTo(0, nav.Backward)
	case key.Matches(msg, m.keys.Last):
		o.GoTo(len(o.Items())-1, nav.Forward)
	case key.Matches(msg, m.keys.Autoplay):
		m.toggleAutoplay(o.ToggleAutoplay())
	case key.Matches(msg, m.keys.Yank):
		return m.yankCurrent()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	default:
		if i, ok := digit(msg); ok {
			o.GoTo(i)
		}
	}
	return nil
}

// openGallery opens the overlay on the settled section's gallery.
func (m *Model) openGallery() tea.Cmd {
	s, ok := m.primary.Section()
	if !ok || !s.HasGallery() || m.primary.Navigator().Transitioning() {
		return nil
	}
	req, err := m.overlay.Open(s.Gallery)
	if err != nil {
		m.errMsg = err.Error()
		events.Action.Error(err)
		return nil
	}
	m.resetHover()
	m.errMsg = ""
	return tea.Batch(m.probe(req), m.startSpinner())
}

func (m *Model) overlayClosed() {
	m.resetHover()
}

func (m *Model) toggleAutoplay(on bool) {
	if on {
		m.setInfo("autoplay on")
		return
	}
	m.setInfo("autoplay off")
}

// digit maps 1-9 to a zero-based index.
func digit(msg tea.KeyMsg) (int, bool) {
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return 0, false
	}
	r := msg.Runes[0]
	if r < '1' || r > '9' {
		return 0, false
	}
	return int(r - '1'), true
}

// setHover routes a hover change to whichever surface is on screen.
func (m *Model) setHover(zoneID string, on bool) {
	if m.hovered[zoneID] == on {
		return
	}
	if on {
		m.hovered[zoneID] = true
	} else {
		delete(m.hovered, zoneID)
	}
	if m.overlay.IsOpen() {
		m.overlay.Hover(zoneID, on)
	} else {
		m.primary.Hover(zoneID, on)
	}
	events.UI.Hover(zoneID, len(m.hovered) > 0)
}

// resetHover releases every pointer hover source on both surfaces. Used
// whenever the surface under the pointer changes. Terminal blur is not a
// pointer source: it survives the reset and is reapplied to both surfaces.
func (m *Model) resetHover() {
	blurred := m.hovered[zoneTerminalBlur]
	for id := range m.hovered {
		if id == zoneTerminalBlur {
			continue
		}
		m.primary.Hover(id, false)
		m.overlay.Hover(id, false)
	}
	m.primary.Hover(zoneTerminalBlur, blurred)
	m.overlay.Hover(zoneTerminalBlur, blurred)
	m.hovered = make(map[string]bool)
	if blurred {
		m.hovered[zoneTerminalBlur] = true
	}
}
