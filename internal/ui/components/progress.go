package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordiz/internal/ui/theme"
)

var (
	barFilled = lipgloss.NewStyle().Background(theme.Secondary)
	barEmpty  = lipgloss.NewStyle().Background(theme.Border)
	barLabel  = lipgloss.NewStyle().Foreground(theme.Text)
	barDim    = lipgloss.NewStyle().Foreground(theme.TextDim)
)

// minBar keeps a bar visible on narrow screens.
const minBar = 4

// Bar draws a plain bar of width cells with fraction of them filled.
// fraction is clamped to [0, 1].
func Bar(fraction float64, width int) string {
	width = max(width, minBar)
	filled := int(float64(width) * min(max(fraction, 0), 1))
	return barFilled.Render(strings.Repeat(" ", filled)) +
		barEmpty.Render(strings.Repeat(" ", width-filled))
}

// FractionBar draws "label  ▇▇▇▇    done/total" in width cells, as used for
// unit completion rows.
func FractionBar(label string, done, total, width int) string {
	var frac float64
	if total > 0 {
		frac = float64(done) / float64(total)
	}
	caption := barDim.Render(fmt.Sprintf("  %d/%d %3d%%", done, total, int(frac*100)))
	head := ""
	if label != "" {
		head = barLabel.Render(label) + "  "
	}
	return head + Bar(frac, width-lipgloss.Width(head)-lipgloss.Width(caption)) + caption
}
