package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/scrollfx/internal/logging/events"
	"github.com/atomicstack/scrollfx/internal/ui/command"
)

func (m *Model) handleCommandResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(command.Result)
	if !ok {
		return nil
	}
	if result.Err != nil {
		m.errMsg = result.Err.Error()
		m.infoMsg = ""
		events.Action.Error(result.Err)
		return nil
	}
	m.errMsg = ""
	events.Action.Success(result.Info)
	if result.Info != "" {
		m.setInfo(result.Info)
	}
	if result.Deck != nil {
		return m.remount(result.Deck)
	}
	return nil
}

// yankCurrent copies the media reference of whatever is on screen.
func (m *Model) yankCurrent() tea.Cmd {
	if m.overlay.IsOpen() {
		if s, ok := m.overlay.Section(); ok {
			return m.bus.Execute(command.Yank(s.Media))
		}
		return nil
	}
	if s, ok := m.primary.Section(); ok {
		return m.bus.Execute(command.Yank(s.Media))
	}
	return nil
}

func (m *Model) reloadDeck() tea.Cmd {
	if m.opts.DeckPath == "" {
		return nil
	}
	return m.bus.Execute(command.Reload(m.opts.DeckPath))
}
