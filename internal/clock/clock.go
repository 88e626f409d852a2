// Package clock abstracts timer scheduling so navigation, animation and
// autoplay logic can run against the Bubble Tea event loop in production and a
// manual clock in tests.
//
// Callbacks handed to a Scheduler are expected to run on the event loop, one
// at a time. Nothing in this package is safe for concurrent use.
package clock

import "time"

// Timer is a handle to a pending callback.
type Timer interface {
	// Stop cancels the callback. It reports whether the callback was still
	// pending.
	Stop() bool
}

// Scheduler arranges for fn to run once after d has elapsed.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// SchedulerFunc adapts a function to the Scheduler interface.
type SchedulerFunc func(d time.Duration, fn func()) Timer

// AfterFunc implements Scheduler.
func (f SchedulerFunc) AfterFunc(d time.Duration, fn func()) Timer {
	return f(d, fn)
}

type stoppedTimer struct{}

func (stoppedTimer) Stop() bool { return false }

// Stopped returns a Timer that is already inert.
func Stopped() Timer {
	return stoppedTimer{}
}
