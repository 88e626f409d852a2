package surface

import "errors"

// ErrLocked is returned when the scroll lock already has a holder.
var ErrLocked = errors.New("scroll lock already held")

// Lock is the single scroll-input lock shared by the surfaces of one
// program. Holding it suspends scroll handling on the Primary surface.
type Lock struct {
	lease    *Lease
	onChange []func(held bool)
}

// Lease is a held Lock. Release is idempotent.
type Lease struct {
	lock     *Lock
	released bool
}

// NewLock returns a free lock.
func NewLock() *Lock {
	return &Lock{}
}

// OnChange registers fn to run whenever the lock is taken or freed.
func (l *Lock) OnChange(fn func(held bool)) {
	if fn != nil {
		l.onChange = append(l.onChange, fn)
	}
}

// Acquire takes the lock.
func (l *Lock) Acquire() (*Lease, error) {
	if l.lease != nil {
		return nil, ErrLocked
	}
	l.lease = &Lease{lock: l}
	l.notify(true)
	return l.lease, nil
}

// Held reports whether a lease is outstanding.
func (l *Lock) Held() bool {
	return l.lease != nil
}

func (l *Lock) notify(held bool) {
	for _, fn := range l.onChange {
		fn(held)
	}
}

// Release frees the lock if this lease still holds it.
func (ls *Lease) Release() {
	if ls == nil || ls.released {
		return
	}
	ls.released = true
	if ls.lock.lease == ls {
		ls.lock.lease = nil
		ls.lock.notify(false)
	}
}

// Released reports whether Release has been called.
func (ls *Lease) Released() bool {
	return ls == nil || ls.released
}
