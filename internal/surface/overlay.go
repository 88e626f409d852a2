package surface

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/atomicstack/scrollfx/internal/anim"
	"github.com/atomicstack/scrollfx/internal/autoplay"
	"github.com/atomicstack/scrollfx/internal/clock"
	"github.com/atomicstack/scrollfx/internal/deck"
	"github.com/atomicstack/scrollfx/internal/logging/events"
	"github.com/atomicstack/scrollfx/internal/nav"
	"github.com/atomicstack/scrollfx/internal/preload"
)

// DefaultGalleryInterval is the overlay autoplay interval.
const DefaultGalleryInterval = 4 * time.Second

var (
	// ErrOverlayBusy is returned by Open when the overlay is not closed.
	ErrOverlayBusy = errors.New("overlay already open")
	// ErrNoItems is returned by Open for an empty gallery.
	ErrNoItems = errors.New("gallery has no items")
)

// OverlayState is the lifecycle phase of the overlay.
type OverlayState int

const (
	Closed OverlayState = iota
	Loading
	Active
	Exiting
)

func (s OverlayState) String() string {
	switch s {
	case Loading:
		return "loading"
	case Active:
		return "active"
	case Exiting:
		return "exiting"
	}
	return "closed"
}

// OverlayOptions configures the gallery overlay.
type OverlayOptions struct {
	Interval time.Duration
	Autoplay bool
	FPS      int
}

// Overlay is the full-screen gallery. It holds the scroll lock from Open
// until it is closed by any path.
type Overlay struct {
	root    clock.Scheduler
	lock    *Lock
	opts    OverlayOptions
	onClose func()

	state    OverlayState
	id       string
	items    []deck.Section
	scope    *clock.Scope
	ctx      context.Context
	cancel   context.CancelFunc
	lease    *Lease
	reg      *anim.Registry
	animator *anim.Animator
	nav      *nav.Navigator
	auto     *autoplay.Controller
	gate     *preload.Gate
	fade     *anim.Element
	stopFade func()
	hover    pauseSet
}

// NewOverlay returns a closed overlay.
func NewOverlay(root clock.Scheduler, lock *Lock, opts OverlayOptions) *Overlay {
	if opts.Interval <= 0 {
		opts.Interval = DefaultGalleryInterval
	}
	return &Overlay{root: root, lock: lock, opts: opts}
}

// OnClose registers the notification sent once an exit fade has finished.
func (o *Overlay) OnClose(fn func()) {
	o.onClose = fn
}

// Open acquires the scroll lock, builds fresh components for items and arms
// the preload gate. Navigation starts once every item has been probed.
func (o *Overlay) Open(items []deck.Section) (ProbeRequest, error) {
	if o.state != Closed {
		return ProbeRequest{}, ErrOverlayBusy
	}
	if len(items) == 0 {
		return ProbeRequest{}, ErrNoItems
	}
	lease, err := o.lock.Acquire()
	if err != nil {
		return ProbeRequest{}, err
	}
	o.lease = lease
	o.id = uuid.NewString()
	o.items = items
	o.hover = make(pauseSet)
	o.scope = clock.NewScope(o.root)
	o.ctx, o.cancel = context.WithCancel(context.Background())

	o.reg = anim.NewRegistry(items)
	o.reg.HideOverlay()
	o.fade = &anim.Element{Opacity: 0, Scale: 1}
	o.animator = anim.New(o.scope, o.reg, anim.OverlayProfile{}, o.opts.FPS)
	o.nav = nav.New(len(items), o.animator)
	o.nav.SetObserver(events.Nav.Observer(o.id))
	o.nav.SetReady(false)

	o.auto = autoplay.New(o.scope, o.opts.Interval, o.nav.RequestNext, o.nav.Transitioning)
	id := o.id
	o.auto.OnEvent(func(e autoplay.Event) { events.Autoplay.Event(id, string(e)) })
	o.auto.SetEnabled(o.opts.Autoplay)

	o.state = Loading
	events.Overlay.Open(o.id, len(items))

	o.gate = preload.NewGate()
	o.gate.OnReady(o.ready)
	refs := deck.MediaRefs(items)
	gen := o.gate.Arm(refs)
	events.Preload.Arm(o.id, gen, len(refs))
	return ProbeRequest{Ctx: o.ctx, Surface: o.id, Generation: gen, Refs: refs}, nil
}

func (o *Overlay) ready(gen uint64) {
	if o.state != Loading {
		return
	}
	events.Preload.Ready(o.id, gen, o.gate.State().Failed)
	o.state = Active
	events.Overlay.Ready(o.id)
	o.nav.SetReady(true)
	o.stopFade = o.animator.Fade(o.fade, 0, 1, anim.EntryFade, anim.Power2Out, func() { o.stopFade = nil })
	o.nav.RequestGoTo(0, nav.Forward)
	o.auto.SetReady(true)
}

// Resolve feeds one probe outcome into the gate.
func (o *Overlay) Resolve(gen uint64, index int, res preload.Result) bool {
	if o.state == Closed {
		return false
	}
	if !o.gate.Resolve(gen, index, res) {
		return false
	}
	events.Preload.Resolve(o.id, gen, index, res.Err)
	return true
}

// Next, Previous and GoTo navigate the gallery. They are ignored unless the
// overlay is active.
func (o *Overlay) Next() bool {
	return o.state == Active && o.nav.RequestNext()
}

func (o *Overlay) Previous() bool {
	return o.state == Active && o.nav.RequestPrevious()
}

func (o *Overlay) GoTo(i int, dir ...nav.Direction) bool {
	return o.state == Active && o.nav.RequestGoTo(i, dir...)
}

// Hover records pointer hover over zone. Any hovered zone pauses autoplay.
// Zones hovered while the gallery is still loading are kept, so autoplay
// never arms under the pointer.
func (o *Overlay) Hover(zone string, on bool) {
	if o.state != Active && o.state != Loading {
		return
	}
	o.hover.apply(o.auto, zone, on)
}

// RequestExit stops autoplay and fades the surface out. The close
// notification is sent only when the fade has finished.
func (o *Overlay) RequestExit() bool {
	if o.state != Active && o.state != Loading {
		return false
	}
	o.state = Exiting
	events.Overlay.Exit(o.id)
	o.auto.Pause()
	o.auto.Stop()
	o.nav.SetReady(false)
	if o.stopFade != nil {
		o.stopFade()
	}
	o.stopFade = o.animator.Fade(o.fade, o.fade.Opacity, 0, anim.ExitFade, anim.Power2InOut, o.finishExit)
	return true
}

func (o *Overlay) finishExit() {
	o.stopFade = nil
	o.teardown()
	events.Overlay.Close(o.id, false)
	if o.onClose != nil {
		o.onClose()
	}
}

// Destroy tears the overlay down immediately from any state without a close
// notification.
func (o *Overlay) Destroy() {
	if o.state == Closed {
		return
	}
	o.teardown()
	events.Overlay.Close(o.id, true)
}

func (o *Overlay) teardown() {
	o.state = Closed
	o.cancel()
	o.gate.Disarm()
	o.auto.Stop()
	o.nav.Dispose()
	o.animator.Stop()
	o.scope.Dispose()
	o.lease.Release()
}

// State returns the lifecycle phase.
func (o *Overlay) State() OverlayState {
	return o.state
}

// IsOpen reports whether the overlay is anything but closed.
func (o *Overlay) IsOpen() bool {
	return o.state != Closed
}

// ID identifies the current open in traces and probe messages.
func (o *Overlay) ID() string {
	return o.id
}

// Items returns the gallery being shown.
func (o *Overlay) Items() []deck.Section {
	return o.items
}

// Section returns the settled gallery item.
func (o *Overlay) Section() (deck.Section, bool) {
	if o.state == Closed || o.nav == nil {
		return deck.Section{}, false
	}
	i := o.nav.Current()
	if i < 0 || i >= len(o.items) {
		return deck.Section{}, false
	}
	return o.items[i], true
}

// Opacity is the whole-surface fade level.
func (o *Overlay) Opacity() float64 {
	if o.fade == nil {
		return 0
	}
	return o.fade.Opacity
}

// Registry exposes the animated layers to the view.
func (o *Overlay) Registry() *anim.Registry {
	return o.reg
}

// Navigator, Autoplay and Scope are exposed for the UI and tests.
func (o *Overlay) Navigator() *nav.Navigator {
	return o.nav
}

func (o *Overlay) Autoplay() *autoplay.Controller {
	return o.auto
}

func (o *Overlay) Scope() *clock.Scope {
	return o.scope
}

// Snapshot returns the render state.
func (o *Overlay) Snapshot() Snapshot {
	if o.state == Closed {
		return Snapshot{Current: -1}
	}
	return snapshot(o.id, o.nav, o.gate, o.auto)
}

// MediaErr reports the probe failure recorded for item i, if any.
func (o *Overlay) MediaErr(i int) error {
	if o.state == Closed {
		return nil
	}
	return o.gate.Err(i)
}

// ToggleAutoplay flips the enabled gate while the overlay is active and
// reports the new value.
func (o *Overlay) ToggleAutoplay() bool {
	if o.state != Active {
		return false
	}
	on := !o.auto.State().Enabled
	o.auto.SetEnabled(on)
	return on
}
