package backend

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/atomicstack/scrollfx/internal/testutil"
)

const deckV1 = `
title: First
sections:
  - media: a.png
    title: One
`

const deckV2 = `
title: Second
sections:
  - media: a.png
    title: One
  - media: b.png
    title: Two
`

func nextEvent(t *testing.T, w *Watcher) Event {
	t.Helper()
	select {
	case ev, ok := <-w.Events():
		if !ok {
			t.Fatalf("expected event, channel closed")
		}
		return ev
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for reload event")
	}
	return Event{}
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	path := testutil.WriteDeck(t, deckV1)
	w, err := NewWatcher(path, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() {
		w.Stop()
		w.Wait()
	}()

	if err := os.WriteFile(path, []byte(deckV2), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	ev := nextEvent(t, w)
	if ev.Err != nil {
		t.Fatalf("unexpected reload error: %v", ev.Err)
	}
	if ev.Deck == nil || ev.Deck.Title != "Second" || ev.Deck.Len() != 2 {
		t.Fatalf("expected reloaded deck, got %#v", ev.Deck)
	}
}

func TestWatcherReportsInvalidDeck(t *testing.T) {
	path := testutil.WriteDeck(t, deckV1)
	w, err := NewWatcher(path, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() {
		w.Stop()
		w.Wait()
	}()

	if err := os.WriteFile(path, []byte("title: empty\nsections: []\n"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	ev := nextEvent(t, w)
	if ev.Err == nil || ev.Deck != nil {
		t.Fatalf("expected load error, got %#v", ev)
	}
}

func TestWatcherIgnoresSiblingFiles(t *testing.T) {
	path := testutil.WriteDeck(t, deckV1)
	w, err := NewWatcher(path, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	other := filepath.Join(filepath.Dir(path), "notes.txt")
	if w.matches(fsnotify.Event{Name: other, Op: fsnotify.Write}) {
		t.Fatalf("expected sibling write to be ignored")
	}
	if w.matches(fsnotify.Event{Name: path, Op: fsnotify.Chmod}) {
		t.Fatalf("expected chmod to be ignored")
	}
	if !w.matches(fsnotify.Event{Name: path, Op: fsnotify.Rename}) {
		t.Fatalf("expected rename of the deck to match")
	}
	w.Stop()
	w.Wait()
	if _, ok := <-w.Events(); ok {
		t.Fatalf("expected closed events channel after Wait")
	}
}

func TestThrottleSpacesCalls(t *testing.T) {
	th := newThrottle(30 * time.Millisecond)
	done := make(chan struct{})
	start := time.Now()
	th.wait(done)
	th.wait(done)
	if elapsed := time.Since(start); elapsed < 25*time.Millisecond {
		t.Fatalf("expected second wait to be delayed, got %v", elapsed)
	}
	close(done)
	if th.wait(done) {
		t.Fatalf("expected a blocked wait to give up once done is closed")
	}
}
