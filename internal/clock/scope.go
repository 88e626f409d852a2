package clock

import "time"

// Scope groups every timer created through it so that a surface can cancel
// all of its pending work in one call. Once disposed, a Scope never runs a
// callback again and hands out inert timers.
type Scope struct {
	sched    Scheduler
	live     map[*scopedTimer]struct{}
	disposed bool
	onDrop   func()
}

type scopedTimer struct {
	scope *Scope
	inner Timer
	done  bool
}

// NewScope wraps sched.
func NewScope(sched Scheduler) *Scope {
	return &Scope{sched: sched, live: make(map[*scopedTimer]struct{})}
}

// OnDrop registers a hook invoked whenever a callback is suppressed because
// the scope was already disposed. Tests use it as a post-teardown sentinel.
func (s *Scope) OnDrop(fn func()) {
	s.onDrop = fn
}

// AfterFunc implements Scheduler.
func (s *Scope) AfterFunc(d time.Duration, fn func()) Timer {
	if s == nil || s.disposed || s.sched == nil {
		return Stopped()
	}
	st := &scopedTimer{scope: s}
	s.live[st] = struct{}{}
	st.inner = s.sched.AfterFunc(d, func() {
		if s.disposed {
			if s.onDrop != nil {
				s.onDrop()
			}
			return
		}
		if st.done {
			return
		}
		st.done = true
		delete(s.live, st)
		fn()
	})
	return st
}

// Stop implements Timer.
func (st *scopedTimer) Stop() bool {
	if st.done {
		return false
	}
	st.done = true
	delete(st.scope.live, st)
	if st.inner != nil {
		st.inner.Stop()
	}
	return true
}

// Live reports how many callbacks are still pending.
func (s *Scope) Live() int {
	if s == nil {
		return 0
	}
	return len(s.live)
}

// Disposed reports whether Dispose has been called.
func (s *Scope) Disposed() bool {
	return s == nil || s.disposed
}

// Dispose stops every pending timer. It is safe to call more than once.
func (s *Scope) Dispose() {
	if s == nil || s.disposed {
		return
	}
	s.disposed = true
	for st := range s.live {
		st.done = true
		if st.inner != nil {
			st.inner.Stop()
		}
	}
	s.live = make(map[*scopedTimer]struct{})
}
