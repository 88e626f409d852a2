package events

import "github.com/atomicstack/scrollfx/internal/logging"

type AppTracer struct{}

type DeckTracer struct{}

var (
	App  = AppTracer{}
	Deck = DeckTracer{}
)

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Stop(reason string) {
	logging.Trace("app.stop", map[string]interface{}{"reason": reason})
}

func (DeckTracer) Load(path string, sections int) {
	logging.Trace("deck.load", map[string]interface{}{"path": path, "sections": sections})
}

func (DeckTracer) Reload(path string, sections int) {
	logging.Trace("deck.reload", map[string]interface{}{"path": path, "sections": sections})
}

func (DeckTracer) Error(path string, err error) {
	if err == nil {
		return
	}
	logging.Trace("deck.error", map[string]interface{}{"path": path, "error": err.Error()})
}
