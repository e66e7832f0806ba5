package home

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordiz/internal/ui/theme"
)

// Mood picks the mascot drawn above the stats bar.
type Mood int

const (
	MoodIdle  Mood = iota
	MoodHappy      // busy study day
	MoodAlert      // wrong book piling up
)

type mascot struct {
	eyes, mouth, feet string
	aside             string
	color             color.Color
}

var mascots = map[Mood]mascot{
	MoodIdle:  {eyes: "◉ ◉", mouth: "▽", color: theme.Primary},
	MoodHappy: {eyes: "★ ★", mouth: "▿", feet: "  ╚═╝", color: theme.ArcadeYellow},
	MoodAlert: {eyes: "◉ ◉", mouth: "▽", aside: " !", color: theme.Accent},
}

// Mascot draws the book-shaped mascot for mood.
func Mascot(mood Mood) string {
	m, ok := mascots[mood]
	if !ok {
		m = mascots[MoodIdle]
	}
	bottom := "└─────┘"
	if m.feet != "" {
		bottom = "└─╥═╥─┘\n" + m.feet
	}
	art := "┌─────┐\n" +
		"│ " + m.eyes + " │" + m.aside + "\n" +
		"│  " + m.mouth + "  │\n" +
		"│ ABC │\n" +
		bottom
	return lipgloss.NewStyle().Foreground(m.color).Render(art)
}

func moodFor(st homeStats) Mood {
	switch {
	case st.wrong >= wrongPile:
		return MoodAlert
	case st.today >= busyDay:
		return MoodHappy
	}
	return MoodIdle
}
