package events

import (
	"github.com/atomicstack/scrollfx/internal/logging"
	"github.com/atomicstack/scrollfx/internal/nav"
)

type NavTracer struct{}

type PreloadTracer struct{}

type AutoplayTracer struct{}

type OverlayTracer struct{}

var (
	Nav      = NavTracer{}
	Preload  = PreloadTracer{}
	Autoplay = AutoplayTracer{}
	Overlay  = OverlayTracer{}
)

// navObserver forwards navigator callbacks for one surface.
type navObserver struct {
	surface string
}

// Observer returns a nav.Observer that traces under surface.
func (NavTracer) Observer(surface string) nav.Observer {
	return navObserver{surface: surface}
}

func (o navObserver) Accepted(t nav.Transition) {
	logging.Trace("nav.accept", map[string]interface{}{
		"surface":   o.surface,
		"from":      t.From,
		"to":        t.To,
		"direction": t.Direction.String(),
	})
}

func (o navObserver) Rejected(target int, reason nav.Reason) {
	logging.Trace("nav.reject", map[string]interface{}{"surface": o.surface, "target": target, "reason": string(reason)})
}

func (o navObserver) Settled(index int) {
	logging.Trace("nav.settle", map[string]interface{}{"surface": o.surface, "index": index})
}

func (PreloadTracer) Arm(surface string, generation uint64, total int) {
	logging.Trace("preload.arm", map[string]interface{}{"surface": surface, "generation": generation, "total": total})
}

func (PreloadTracer) Resolve(surface string, generation uint64, index int, err error) {
	payload := map[string]interface{}{"surface": surface, "generation": generation, "index": index}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("preload.resolve", payload)
}

func (PreloadTracer) Ready(surface string, generation uint64, failed int) {
	logging.Trace("preload.ready", map[string]interface{}{"surface": surface, "generation": generation, "failed": failed})
}

func (AutoplayTracer) Event(surface, event string) {
	logging.Trace("autoplay."+event, map[string]interface{}{"surface": surface})
}

func (OverlayTracer) Open(surface string, items int) {
	logging.Trace("overlay.open", map[string]interface{}{"surface": surface, "items": items})
}

func (OverlayTracer) Ready(surface string) {
	logging.Trace("overlay.ready", map[string]interface{}{"surface": surface})
}

func (OverlayTracer) Exit(surface string) {
	logging.Trace("overlay.exit", map[string]interface{}{"surface": surface})
}

func (OverlayTracer) Close(surface string, forced bool) {
	logging.Trace("overlay.close", map[string]interface{}{"surface": surface, "forced": forced})
}
