package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/scrollfx/internal/backend"
	"github.com/atomicstack/scrollfx/internal/logging"
	"github.com/atomicstack/scrollfx/internal/logging/events"
	"github.com/atomicstack/scrollfx/internal/preload"
	"github.com/atomicstack/scrollfx/internal/surface"
)

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	cmd := m.applyBackendEvent(eventMsg.event)
	if m.watcher != nil {
		return tea.Batch(cmd, waitForBackendEvent(m.watcher))
	}
	return cmd
}

func (m *Model) handleBackendDoneMsg(tea.Msg) tea.Cmd {
	m.watcher = nil
	return nil
}

// applyBackendEvent remounts on a good reload. A broken file keeps the
// current deck on screen and reports the error.
func (m *Model) applyBackendEvent(evt backend.Event) tea.Cmd {
	if evt.Err != nil {
		logging.Error(evt.Err)
		events.Deck.Error(evt.Path, evt.Err)
		m.errMsg = evt.Err.Error()
		return nil
	}
	if evt.Deck == nil {
		return nil
	}
	m.errMsg = ""
	m.setInfo("deck reloaded")
	return m.remount(evt.Deck)
}

// probeOutcomeMsg carries one probe result back onto the loop. ch is the
// runner channel the outcome came from; the handler keeps reading it until
// it closes or the surface it belongs to is gone.
type probeOutcomeMsg struct {
	surface string
	outcome preload.Outcome
	ch      <-chan preload.Outcome
}

func waitForOutcome(surfaceID string, ch <-chan preload.Outcome) tea.Cmd {
	return func() tea.Msg {
		o, ok := <-ch
		if !ok {
			return nil
		}
		return probeOutcomeMsg{surface: surfaceID, outcome: o, ch: ch}
	}
}

// probe starts the runner for req. An empty request needs nothing: the gate
// became ready the moment it was armed.
func (m *Model) probe(req surface.ProbeRequest) tea.Cmd {
	if len(req.Refs) == 0 {
		return nil
	}
	ch := m.runner.Start(req.Ctx, req.Generation, req.Refs)
	return waitForOutcome(req.Surface, ch)
}

func (m *Model) handleProbeOutcomeMsg(msg tea.Msg) tea.Cmd {
	out, ok := msg.(probeOutcomeMsg)
	if !ok {
		return nil
	}
	o := out.outcome
	switch {
	case m.primary.Mounted() && out.surface == m.primary.ID():
		m.primary.Resolve(o.Generation, o.Index, o.Result)
	case m.overlay.IsOpen() && out.surface == m.overlay.ID():
		m.overlay.Resolve(o.Generation, o.Index, o.Result)
	default:
		// The surface was torn down; its probes were cancelled with it.
		return nil
	}
	if o.Result.Err != nil {
		logging.Errorf("probe %s: %v", o.Ref, o.Result.Err)
	}
	return waitForOutcome(out.surface, out.ch)
}
