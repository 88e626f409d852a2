// Package command runs side-effecting UI actions off the event loop and turns
// their outcome into a single Result message.
package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/scrollfx/internal/deck"
	"github.com/atomicstack/scrollfx/internal/logging/events"
)

var (
	// ErrNothingToCopy is returned when a yank has no media reference.
	ErrNothingToCopy = errors.New("nothing to copy")
	// ErrNoClipboard is returned when no clipboard utility is available.
	ErrNoClipboard = errors.New("clipboard unavailable")
)

// Handler performs the work of a request.
type Handler func(env Env) Result

// Env carries the side-effect hooks handlers may use.
type Env struct {
	WriteClipboard func(string) error
	LoadDeck       func(path string) (*deck.Deck, error)
}

// Request encapsulates an action invocation.
type Request struct {
	ID      string
	Label   string
	Handler Handler
}

// Result is delivered to the model once a request has run.
type Result struct {
	ID    string
	Label string
	Info  string
	Deck  *deck.Deck
	Err   error
}

// Bus coordinates the execution of UI actions.
type Bus struct {
	env Env
}

// New initialises a bus that writes to the system clipboard and loads decks
// from disk.
func New() *Bus {
	return NewWithEnv(Env{})
}

// NewWithEnv lets tests replace the clipboard and deck loader.
func NewWithEnv(env Env) *Bus {
	if env.WriteClipboard == nil {
		env.WriteClipboard = writeSystemClipboard
	}
	if env.LoadDeck == nil {
		env.LoadDeck = deck.Load
	}
	return &Bus{env: env}
}

func writeSystemClipboard(text string) error {
	if clipboard.Unsupported {
		return ErrNoClipboard
	}
	return clipboard.WriteAll(text)
}

// Execute wraps a request into a Bubble Tea command while emitting trace logs.
func (b *Bus) Execute(req Request) tea.Cmd {
	events.Command.Queue(req.ID, req.Label)
	env := b.env
	return func() tea.Msg {
		if req.Handler == nil {
			events.Command.Skip(req.ID, req.Label)
			return nil
		}
		res := req.Handler(env)
		res.ID = req.ID
		res.Label = req.Label
		events.Command.Result(req.ID, req.Label, fmt.Sprintf("%T", res))
		return res
	}
}

// Yank copies ref to the clipboard.
func Yank(ref string) Request {
	return Request{
		ID:    "yank",
		Label: "copy media reference",
		Handler: func(env Env) Result {
			ref := strings.TrimSpace(ref)
			if ref == "" {
				return Result{Err: ErrNothingToCopy}
			}
			if err := env.WriteClipboard(ref); err != nil {
				return Result{Err: fmt.Errorf("copy %s: %w", ref, err)}
			}
			return Result{Info: "copied " + ref}
		},
	}
}

// Reload reads the deck at path again.
func Reload(path string) Request {
	return Request{
		ID:    "reload",
		Label: "reload deck",
		Handler: func(env Env) Result {
			d, err := env.LoadDeck(path)
			if err != nil {
				return Result{Err: err}
			}
			return Result{Deck: d, Info: fmt.Sprintf("reloaded %d sections", d.Len())}
		},
	}
}
