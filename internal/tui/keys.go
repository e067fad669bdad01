package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the review screen
type KeyMap struct {
	// Navigation
	Up   key.Binding
	Down key.Binding
	Top  key.Binding
	End  key.Binding

	// Review actions
	Toggle     key.Binding
	Hide       key.Binding
	UnhideAll  key.Binding
	Commit     key.Binding
	CommitHide key.Binding
	FetchMore  key.Binding

	// Manual point nudging
	NudgeNorth key.Binding
	NudgeSouth key.Binding
	NudgeWest  key.Binding
	NudgeEast  key.Binding

	// UI
	Filter key.Binding
	Escape key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "top"),
		),
		End: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "bottom"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "accept/reject"),
		),
		Hide: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "hide"),
		),
		UnhideAll: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "unhide all"),
		),
		Commit: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "commit accepted"),
		),
		CommitHide: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "commit + hide rest"),
		),
		FetchMore: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "more"),
		),
		NudgeNorth: key.NewBinding(
			key.WithKeys("K", "shift+up"),
			key.WithHelp("K", "nudge north"),
		),
		NudgeSouth: key.NewBinding(
			key.WithKeys("J", "shift+down"),
			key.WithHelp("J", "nudge south"),
		),
		NudgeWest: key.NewBinding(
			key.WithKeys("H", "shift+left"),
			key.WithHelp("H", "nudge west"),
		),
		NudgeEast: key.NewBinding(
			key.WithKeys("L", "shift+right"),
			key.WithHelp("L", "nudge east"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
