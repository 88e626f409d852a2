package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap lists every binding. It implements help.KeyMap so the footer can
// render it directly.
type keyMap struct {
	Next       key.Binding
	Previous   key.Binding
	ScrollDown key.Binding
	ScrollUp   key.Binding
	PageDown   key.Binding
	PageUp     key.Binding
	First      key.Binding
	Last       key.Binding
	Open       key.Binding
	Close      key.Binding
	Jump       key.Binding
	Autoplay   key.Binding
	Yank       key.Binding
	Reload     key.Binding
	Help       key.Binding
	Quit       key.Binding
	ForceQuit  key.Binding

	JumpUp     key.Binding
	JumpDown   key.Binding
	JumpAccept key.Binding
	JumpCancel key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next:       key.NewBinding(key.WithKeys("right", "l", "n"), key.WithHelp("→/l", "next")),
		Previous:   key.NewBinding(key.WithKeys("left", "h", "p"), key.WithHelp("←/h", "prev")),
		ScrollDown: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll")),
		ScrollUp:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll back")),
		PageDown:   key.NewBinding(key.WithKeys("pgdown", " "), key.WithHelp("space", "page")),
		PageUp:     key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page back")),
		First:      key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "first")),
		Last:       key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "last")),
		Open:       key.NewBinding(key.WithKeys("enter", "o"), key.WithHelp("enter", "view collection")),
		Close:      key.NewBinding(key.WithKeys("esc", "q", "backspace"), key.WithHelp("esc", "close")),
		Jump:       key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "jump")),
		Autoplay:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "autoplay")),
		Yank:       key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy media")),
		Reload:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit:  key.NewBinding(key.WithKeys("ctrl+c")),

		JumpUp:     key.NewBinding(key.WithKeys("up", "ctrl+p", "ctrl+k")),
		JumpDown:   key.NewBinding(key.WithKeys("down", "ctrl+n", "ctrl+j", "tab")),
		JumpAccept: key.NewBinding(key.WithKeys("enter")),
		JumpCancel: key.NewBinding(key.WithKeys("esc", "ctrl+g")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Previous, k.ScrollDown, k.Open, k.Jump, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Previous, k.First, k.Last},
		{k.ScrollDown, k.ScrollUp, k.PageDown, k.PageUp},
		{k.Open, k.Close, k.Jump},
		{k.Autoplay, k.Yank, k.Reload, k.Help, k.Quit},
	}
}

// overlayKeys is the reduced help shown while the gallery is open.
type overlayKeys struct {
	keyMap
}

func (k overlayKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Previous, k.Autoplay, k.Close}
}

func (k overlayKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Next, k.Previous, k.First, k.Last}, {k.Autoplay, k.Yank, k.Close}}
}
