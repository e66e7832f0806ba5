// Package screen defines what the router stacks and what every screen
// is built from.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/wordiz/internal/ui/layout"
)

// Screen is one page of the TUI. View draws only the area between the
// app header and footer; Title names the page in the breadcrumb.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View(width, height int) string
	Title() string
}

// KeyHintProvider replaces the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// EscapeHandler is implemented by screens that want Esc for themselves,
// like a running session that confirms before quitting. The app pops
// every other screen on Esc.
type EscapeHandler interface {
	HandlesEscape() bool
}
