package ui

import (
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/scrollfx/internal/logging/events"
	uistate "github.com/atomicstack/scrollfx/internal/ui/state"
)

// jumpState is the jump-to-section prompt: a text input feeding a fuzzy
// picker over the deck's sections.
type jumpState struct {
	input  textinput.Model
	picker *uistate.Picker
}

func (m *Model) openJump() {
	if m.deck == nil || !m.primary.Mounted() {
		return
	}
	items := make([]uistate.Item, 0, m.deck.Len())
	for _, s := range m.deck.Sections {
		label := s.Title
		if label == "" {
			label = s.LeftLabel
		}
		items = append(items, uistate.Item{Index: s.Index, Label: label, Detail: s.Media})
	}
	ti := textinput.New()
	ti.Prompt = "jump › "
	ti.Placeholder = "title or number"
	ti.PromptStyle = *styles.FilterPrompt
	ti.TextStyle = *styles.Filter
	ti.PlaceholderStyle = *styles.FilterPlaceholder
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.Focus()
	m.jump = &jumpState{
		input:  ti,
		picker: uistate.NewPicker(items, m.primary.Navigator().Current()),
	}
	events.Filter.Open(len(items))
}

func (m *Model) closeJump() {
	if m.jump == nil {
		return
	}
	m.jump = nil
	events.Filter.Cleared()
}

func (m *Model) handleJumpKey(msg tea.KeyMsg) tea.Cmd {
	j := m.jump
	rows := m.jumpRows()
	switch {
	case key.Matches(msg, m.keys.JumpCancel):
		m.closeJump()
		return nil
	case key.Matches(msg, m.keys.JumpAccept):
		sel, ok := j.picker.Selected()
		m.closeJump()
		if ok {
			m.primary.GoTo(sel.Index)
		}
		return nil
	case key.Matches(msg, m.keys.JumpUp):
		j.picker.MoveCursorUp()
	case key.Matches(msg, m.keys.JumpDown):
		j.picker.MoveCursorDown()
	case key.Matches(msg, m.keys.PageUp):
		j.picker.MoveCursorPageUp(rows)
	case key.Matches(msg, m.keys.PageDown) && msg.Type != tea.KeySpace:
		j.picker.MoveCursorPageDown(rows)
	default:
		var cmd tea.Cmd
		j.input, cmd = j.input.Update(msg)
		if q := j.input.Value(); q != j.picker.Filter {
			j.picker.SetFilter(q)
			events.Filter.Query(q, len(j.picker.Items))
		}
		j.picker.EnsureCursorVisible(rows)
		return cmd
	}
	j.picker.EnsureCursorVisible(rows)
	events.Filter.Cursor(j.picker.Cursor)
	return nil
}

// jumpRows is how many picker rows fit in the body.
func (m *Model) jumpRows() int {
	return max(m.bodyRows()-2, 1)
}
