// Package nav implements the section navigator: the state machine that owns
// the settled index, infers transition direction, wraps out-of-range targets
// and holds the single-flight transition lock.
package nav

import "fmt"

// Direction is the sign of a transition.
type Direction int

const (
	Forward  Direction = 1
	Backward Direction = -1
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// Factor returns the direction as a float multiplier for signed offsets.
func (d Direction) Factor() float64 {
	if d == Backward {
		return -1
	}
	return 1
}

// Transition describes one accepted index change. From is -1 when the
// navigator had not settled on any section yet.
type Transition struct {
	From      int
	To        int
	Direction Direction
}

// Animator runs the visual side of a transition. done must be called exactly
// once when the run finishes; after cancel is called done must not be called.
type Animator interface {
	Start(t Transition, done func()) (cancel func())
}

// AnimatorFunc adapts a function to the Animator interface.
type AnimatorFunc func(t Transition, done func()) (cancel func())

// Start implements Animator.
func (f AnimatorFunc) Start(t Transition, done func()) func() {
	return f(t, done)
}

// Reason explains why a request was rejected.
type Reason string

const (
	ReasonNone          Reason = ""
	ReasonTransitioning Reason = "transitioning"
	ReasonCurrent       Reason = "current"
	ReasonEmpty         Reason = "empty"
	ReasonNotReady      Reason = "not-ready"
	ReasonDisposed      Reason = "disposed"
)

// Observer receives navigator lifecycle notifications.
type Observer interface {
	Accepted(t Transition)
	Rejected(target int, reason Reason)
	Settled(index int)
}

// State is a read-only snapshot of the navigator.
type State struct {
	Current       int
	Target        int
	Direction     Direction
	Transitioning bool
	Count         int
}

// Navigator is the per-surface navigation state machine. It is driven from a
// single event loop and is not safe for concurrent use.
type Navigator struct {
	count         int
	current       int
	target        int
	direction     Direction
	transitioning bool
	ready         bool
	disposed      bool

	animator Animator
	cancel   func()
	runID    uint64

	observer Observer
	settled  []func(index int)
}

// New returns an uninitialised navigator over count sections.
func New(count int, animator Animator) *Navigator {
	if count < 0 {
		count = 0
	}
	return &Navigator{
		count:     count,
		current:   -1,
		target:    -1,
		direction: Forward,
		ready:     true,
		animator:  animator,
	}
}

// SetObserver installs an observer for trace output.
func (n *Navigator) SetObserver(o Observer) {
	n.observer = o
}

// OnSettle registers fn to run after every completed transition, in
// registration order.
func (n *Navigator) OnSettle(fn func(index int)) {
	if fn != nil {
		n.settled = append(n.settled, fn)
	}
}

// SetReady gates navigation on an external condition such as the preload
// gate. While not ready every request is rejected.
func (n *Navigator) SetReady(ready bool) {
	n.ready = ready
}

// Ready reports whether requests may be accepted.
func (n *Navigator) Ready() bool {
	return n.ready
}

// Count returns the number of sections.
func (n *Navigator) Count() int {
	return n.count
}

// Current returns the settled index, or -1 before the first settle.
func (n *Navigator) Current() int {
	return n.current
}

// Transitioning reports whether the single-flight lock is held.
func (n *Navigator) Transitioning() bool {
	return n.transitioning
}

// Active reports whether i is the settled index.
func (n *Navigator) Active(i int) bool {
	return n.current >= 0 && i == n.current
}

// Disposed reports whether Dispose has been called.
func (n *Navigator) Disposed() bool {
	return n.disposed
}

// State returns a snapshot.
func (n *Navigator) State() State {
	return State{
		Current:       n.current,
		Target:        n.target,
		Direction:     n.direction,
		Transitioning: n.transitioning,
		Count:         n.count,
	}
}

// Wrap maps any integer onto [0, count).
func (n *Navigator) Wrap(i int) int {
	return Wrap(i, n.count)
}

// Wrap maps i onto [0, count) using modular arithmetic. It returns -1 when
// count is not positive.
func Wrap(i, count int) int {
	if count <= 0 {
		return -1
	}
	i %= count
	if i < 0 {
		i += count
	}
	return i
}

// Infer picks a direction for a request from current to target. Crossing the
// wrap boundary between neighbours keeps the natural direction; any other jump
// compares raw indices.
func Infer(current, target, count int) Direction {
	if current < 0 {
		return Forward
	}
	if count > 1 && current == count-1 && target == 0 {
		return Forward
	}
	if count > 1 && current == 0 && target == count-1 {
		return Backward
	}
	if target < current {
		return Backward
	}
	return Forward
}

// Settle places the navigator at index without animating. It is ignored while
// a transition is in flight.
func (n *Navigator) Settle(index int) bool {
	if n.disposed || n.transitioning || n.count == 0 {
		return false
	}
	n.current = n.Wrap(index)
	n.target = n.current
	n.notifySettled()
	return true
}

// RequestGoTo asks for a transition to target. An explicit direction may be
// supplied; otherwise it is inferred. It reports whether the request was
// accepted; rejected requests leave the state untouched.
func (n *Navigator) RequestGoTo(target int, dir ...Direction) bool {
	if reason := n.precheck(); reason != ReasonNone {
		n.reject(target, reason)
		return false
	}
	wrapped := n.Wrap(target)
	if wrapped == n.current {
		n.reject(wrapped, ReasonCurrent)
		return false
	}
	direction := Infer(n.current, wrapped, n.count)
	if len(dir) > 0 && (dir[0] == Forward || dir[0] == Backward) {
		direction = dir[0]
	}
	t := Transition{From: n.current, To: wrapped, Direction: direction}
	n.transitioning = true
	n.target = wrapped
	n.direction = direction
	n.runID++
	run := n.runID
	if n.observer != nil {
		n.observer.Accepted(t)
	}
	if n.animator == nil {
		n.complete(run)
		return true
	}
	cancel := n.animator.Start(t, func() { n.complete(run) })
	if n.transitioning && run == n.runID {
		n.cancel = cancel
	}
	return true
}

// RequestNext moves one section forward, wrapping after the last.
func (n *Navigator) RequestNext() bool {
	return n.RequestGoTo(n.current+1, Forward)
}

// RequestPrevious moves one section backward, wrapping before the first.
func (n *Navigator) RequestPrevious() bool {
	return n.RequestGoTo(n.current-1, Backward)
}

// Dispose cancels any in-flight transition. No completion or settle callback
// runs afterwards.
func (n *Navigator) Dispose() {
	if n.disposed {
		return
	}
	n.disposed = true
	n.runID++
	if n.cancel != nil {
		n.cancel()
		n.cancel = nil
	}
	n.settled = nil
}

func (n *Navigator) precheck() Reason {
	switch {
	case n.disposed:
		return ReasonDisposed
	case n.transitioning:
		return ReasonTransitioning
	case n.count == 0:
		return ReasonEmpty
	case !n.ready:
		return ReasonNotReady
	}
	return ReasonNone
}

func (n *Navigator) reject(target int, reason Reason) {
	if n.observer != nil {
		n.observer.Rejected(target, reason)
	}
}

// complete is the only place the settled index changes after a request. The
// run id guard makes a second call, or a call after Dispose, a no-op.
func (n *Navigator) complete(run uint64) {
	if n.disposed || !n.transitioning || run != n.runID {
		return
	}
	n.runID++
	n.current = n.target
	n.transitioning = false
	n.cancel = nil
	n.notifySettled()
}

func (n *Navigator) notifySettled() {
	if n.observer != nil {
		n.observer.Settled(n.current)
	}
	for _, fn := range n.settled {
		if n.disposed {
			return
		}
		fn(n.current)
	}
}

// String renders the state for trace output.
func (s State) String() string {
	if s.Transitioning {
		return fmt.Sprintf("transitioning(%d→%d %s)", s.Current, s.Target, s.Direction)
	}
	if s.Current < 0 {
		return "uninitialized"
	}
	return fmt.Sprintf("idle(%d)", s.Current)
}
