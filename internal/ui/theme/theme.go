// Package theme holds the palette and the few shared styles of the TUI.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordiz/internal/mastery"
)

var (
	Primary   = lipgloss.Color("#8B5CF6")
	Secondary = lipgloss.Color("#14B8A6")
	Accent    = lipgloss.Color("#F97316")
	Success   = lipgloss.Color("#22C55E")
	Error     = lipgloss.Color("#F43F5E")
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	BgDark    = lipgloss.Color("#0F172A")
	BgCard    = lipgloss.Color("#1E293B")
	Border    = lipgloss.Color("#334155")

	// home screen cabinet
	ArcadeYellow = lipgloss.Color("#FACC15")
	ArcadeCyan   = lipgloss.Color("#22D3EE")
)

// Answer feedback and favorite marks.
var (
	Correct   = lipgloss.NewStyle().Foreground(Success).Bold(true)
	Incorrect = lipgloss.NewStyle().Foreground(Error).Bold(true)
	Favorite  = lipgloss.NewStyle().Foreground(ArcadeYellow)
)

// AccuracyColor grades a percentage: green from 80, orange from 60.
func AccuracyColor(pct int) color.Color {
	switch {
	case pct >= 80:
		return Success
	case pct >= 60:
		return Accent
	default:
		return Error
	}
}

// LevelColor colors a mastery level by its bucket.
func LevelColor(level int) color.Color {
	switch mastery.StateFor(level) {
	case mastery.StateMastered:
		return Success
	case mastery.StateLearning:
		return ArcadeYellow
	default:
		return Error
	}
}
