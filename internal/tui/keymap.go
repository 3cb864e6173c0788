package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap collects every binding the trainer understands. Bindings are
// grouped per mode; the global ones apply almost everywhere.
type keyMap struct {
	// global
	Boss       key.Binding
	CycleTheme key.Binding
	Quit       key.Binding

	// menu
	MenuLearn    key.Binding
	MenuMistakes key.Binding
	MenuSpelling key.Binding
	MenuStats    key.Binding
	MenuHelp     key.Binding
	MenuBatch    key.Binding

	// learning
	Next    key.Binding
	Prev    key.Binding
	Reveal  key.Binding
	Star    key.Binding
	Known   key.Binding
	Unknown key.Binding
	Shuffle key.Binding
	Spell   key.Binding
	Explain key.Binding
	ToMenu  key.Binding
	Help    key.Binding

	// spelling
	Submit    key.Binding
	HintOnOff key.Binding
	SpellNext key.Binding
	SpellPrev key.Binding
	Back      key.Binding

	// batch / viewer
	Cancel key.Binding
	Close  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Boss:       key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "boss key")),
		CycleTheme: key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "theme")),
		Quit:       key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),

		MenuLearn:    key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "learn")),
		MenuMistakes: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "mistakes")),
		MenuSpelling: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "spelling")),
		MenuStats:    key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "stats")),
		MenuHelp:     key.NewBinding(key.WithKeys("5", "h"), key.WithHelp("5", "help")),
		MenuBatch:    key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "batch notes")),

		Next:    key.NewBinding(key.WithKeys("s", "right", "down"), key.WithHelp("s", "next")),
		Prev:    key.NewBinding(key.WithKeys("w", "left", "up"), key.WithHelp("w", "prev")),
		Reveal:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "reveal")),
		Star:    key.NewBinding(key.WithKeys(","), key.WithHelp(",", "star")),
		Known:   key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "known")),
		Unknown: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "unknown")),
		Shuffle: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "shuffle")),
		Spell:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "spell")),
		Explain: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "AI note")),
		ToMenu:  key.NewBinding(key.WithKeys("."), key.WithHelp(".", "menu")),
		Help:    key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "help")),

		Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "check")),
		HintOnOff: key.NewBinding(key.WithKeys("f2"), key.WithHelp("f2", "hint")),
		SpellNext: key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next")),
		SpellPrev: key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "prev")),
		Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),

		Cancel: key.NewBinding(key.WithKeys("esc", "c"), key.WithHelp("esc", "cancel")),
		Close:  key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q", "close")),
	}
}

// ShortHelp implements help.KeyMap for the learning footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Known, k.Unknown, k.Star, k.Spell, k.Explain, k.ToMenu}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Reveal, k.Shuffle},
		{k.Known, k.Unknown, k.Star, k.Spell},
		{k.Explain, k.ToMenu, k.Boss, k.CycleTheme},
	}
}
