// Package backend watches the deck file and publishes reloaded decks to the
// UI. The UI consumes Events the same way it consumes any other external
// source: one blocking read per tea.Cmd, re-issued after each event.
package backend

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/atomicstack/scrollfx/internal/deck"
)

const (
	// DefaultDebounce coalesces the burst of events editors emit on save.
	DefaultDebounce = 150 * time.Millisecond
	reloadInterval  = 250 * time.Millisecond
)

// Event conveys a freshly loaded deck or the error that prevented loading it.
type Event struct {
	Path string
	Op   string
	Deck *deck.Deck
	Err  error
}

// Watcher reloads the deck whenever its file changes on disk.
type Watcher struct {
	path     string
	debounce time.Duration
	fs       *fsnotify.Watcher
	throttle *throttle

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher starts watching path. The parent directory is watched rather than
// the file itself so atomic rename-on-save keeps working.
func NewWatcher(path string, debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve deck path: %w", err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	abs = filepath.Clean(abs)
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		path:     abs,
		debounce: debounce,
		fs:       fw,
		throttle: newThrottle(reloadInterval),
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 4),
	}
	w.wg.Add(1)
	go w.run()
	go func() {
		w.wg.Wait()
		close(w.events)
	}()
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Events returns a channel of reload events. It is closed after Stop once the
// watch loop has exited.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher.
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until the watch loop has exited and the events channel is
// closed. Call after Stop when a clean shutdown is required.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) run() {
	defer w.wg.Done()
	defer w.fs.Close()

	var (
		timer   *time.Timer
		pending <-chan time.Time
		lastOp  string
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()
	for {
		select {
		case <-w.ctx.Done():
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !w.matches(ev) {
				continue
			}
			lastOp = ev.Op.String()
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			pending = timer.C
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.emit(Event{Path: w.path, Err: fmt.Errorf("watch %s: %w", w.path, err)})
		case <-pending:
			pending = nil
			if !w.throttle.wait(w.ctx.Done()) {
				return
			}
			w.emit(w.reload(lastOp))
		}
	}
}

func (w *Watcher) matches(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0
}

func (w *Watcher) reload(op string) Event {
	ev := Event{Path: w.path, Op: op}
	if !deck.Exists(w.path) {
		ev.Err = fmt.Errorf("deck %s: removed", w.path)
		return ev
	}
	d, err := deck.Load(w.path)
	if err != nil {
		ev.Err = err
		return ev
	}
	ev.Deck = d
	return ev
}

func (w *Watcher) emit(ev Event) {
	select {
	case w.events <- ev:
	case <-w.ctx.Done():
	}
}
