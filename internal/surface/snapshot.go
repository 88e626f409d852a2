// Package surface assembles navigator, animator, autoplay, preload gate and
// scroll mapping into the two presentation surfaces. Each surface owns one
// clock.Scope; tearing the surface down disposes it, which is what keeps
// timer and frame callbacks from touching a destroyed surface.
package surface

import (
	"context"
	"fmt"

	"github.com/atomicstack/scrollfx/internal/autoplay"
	"github.com/atomicstack/scrollfx/internal/nav"
	"github.com/atomicstack/scrollfx/internal/preload"
)

// ProbeRequest asks the caller to probe Refs and feed the outcomes back
// through the surface's Resolve. Ctx is cancelled when the surface is torn
// down or re-armed.
type ProbeRequest struct {
	Ctx        context.Context
	Surface    string
	Generation uint64
	Refs       []string
}

// Snapshot is the read-only state the view renders from.
type Snapshot struct {
	Surface       string
	Current       int
	Count         int
	Transitioning bool
	Ready         bool
	Active        []bool
	Progress      float64
	Preload       preload.State
	Autoplay      autoplay.State
}

// Counter renders a zero-padded "NN / NN" position.
func (s Snapshot) Counter() string {
	return Counter(s.Current, s.Count)
}

// Counter renders current as a 1-based zero-padded position out of count.
func Counter(current, count int) string {
	pos := current + 1
	if current < 0 {
		pos = 0
	}
	return fmt.Sprintf("%02d / %02d", pos, count)
}

func snapshot(id string, n *nav.Navigator, gate *preload.Gate, auto *autoplay.Controller) Snapshot {
	s := Snapshot{Surface: id, Current: -1}
	if n == nil {
		return s
	}
	st := n.State()
	s.Current = st.Current
	s.Count = st.Count
	s.Transitioning = st.Transitioning
	s.Active = make([]bool, st.Count)
	for i := range s.Active {
		s.Active[i] = n.Active(i)
	}
	if st.Count > 1 && st.Current > 0 {
		s.Progress = float64(st.Current) / float64(st.Count-1)
	}
	if gate != nil {
		s.Preload = gate.State()
		s.Ready = s.Preload.Ready
	}
	if auto != nil {
		s.Autoplay = auto.State()
	}
	return s
}

// pauseSet tracks the hover sources currently pausing autoplay. Autoplay is
// paused while any source is active.
type pauseSet map[string]bool

func (p pauseSet) set(zone string, on bool) (paused bool) {
	if on {
		p[zone] = true
	} else {
		delete(p, zone)
	}
	return len(p) > 0
}

func (p pauseSet) apply(auto *autoplay.Controller, zone string, on bool) {
	if auto == nil {
		return
	}
	if p.set(zone, on) {
		auto.Pause()
	} else {
		auto.Resume()
	}
}
