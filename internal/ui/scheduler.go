package ui

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/scrollfx/internal/clock"
)

// timerFiredMsg tells the model that the loop timer id has elapsed. The
// callback itself only ever runs inside Update.
type timerFiredMsg struct {
	id uint64
}

// loopScheduler implements clock.Scheduler on top of the Bubble Tea event
// loop: time.AfterFunc only posts a message, and the callback runs when the
// model handles it. Timers stopped before that point are simply forgotten.
type loopScheduler struct {
	mu      sync.Mutex
	send    func(tea.Msg)
	backlog []uint64
	seq     uint64
	pending map[uint64]*loopTimer
	stopped bool
}

type loopTimer struct {
	s     *loopScheduler
	id    uint64
	fn    func()
	timer *time.Timer
}

func newLoopScheduler() *loopScheduler {
	return &loopScheduler{pending: make(map[uint64]*loopTimer)}
}

// bind attaches the program's Send. Timers that elapsed before the program
// existed are delivered from a goroutine so bind never blocks on a program
// that is not running yet.
func (s *loopScheduler) bind(send func(tea.Msg)) {
	s.mu.Lock()
	s.send = send
	backlog := s.backlog
	s.backlog = nil
	s.mu.Unlock()
	if len(backlog) == 0 || send == nil {
		return
	}
	go func() {
		for _, id := range backlog {
			send(timerFiredMsg{id: id})
		}
	}()
}

// AfterFunc implements clock.Scheduler.
func (s *loopScheduler) AfterFunc(d time.Duration, fn func()) clock.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return clock.Stopped()
	}
	s.seq++
	t := &loopTimer{s: s, id: s.seq, fn: fn}
	s.pending[t.id] = t
	id := t.id
	t.timer = time.AfterFunc(d, func() { s.deliver(id) })
	return t
}

func (s *loopScheduler) deliver(id uint64) {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	send := s.send
	if send == nil {
		s.backlog = append(s.backlog, id)
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()
	send(timerFiredMsg{id: id})
}

// fire runs the callback for id if it is still registered.
func (s *loopScheduler) fire(id uint64) bool {
	s.mu.Lock()
	t, ok := s.pending[id]
	delete(s.pending, id)
	s.mu.Unlock()
	if !ok {
		return false
	}
	t.fn()
	return true
}

// Pending reports how many timers are registered.
func (s *loopScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// stop cancels every timer and refuses new ones.
func (s *loopScheduler) stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	for id, t := range s.pending {
		t.timer.Stop()
		delete(s.pending, id)
	}
}

// Stop implements clock.Timer.
func (t *loopTimer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if _, ok := t.s.pending[t.id]; !ok {
		return false
	}
	delete(t.s.pending, t.id)
	t.timer.Stop()
	return true
}
