package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordiz/internal/ui/theme"
)

// CheckList is a vertical list of toggleable options, used to pick the
// units of a flashcard session.
type CheckList struct {
	Options  []string
	Checked  []bool
	Selected int
}

// NewCheckList creates a list with nothing checked.
func NewCheckList(options []string) CheckList {
	return CheckList{
		Options: options,
		Checked: make([]bool, len(options)),
	}
}

// Update handles cursor movement, space to toggle and "a" to toggle all.
func (c CheckList) Update(msg tea.Msg) (CheckList, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || len(c.Options) == 0 {
		return c, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if c.Selected > 0 {
			c.Selected--
		}
	case "down", "j":
		if c.Selected < len(c.Options)-1 {
			c.Selected++
		}
	case "space", " ":
		c.Checked[c.Selected] = !c.Checked[c.Selected]
	case "a":
		all := c.Count() < len(c.Options)
		for i := range c.Checked {
			c.Checked[i] = all
		}
	}
	return c, nil
}

// Count returns how many options are checked.
func (c CheckList) Count() int {
	n := 0
	for _, ok := range c.Checked {
		if ok {
			n++
		}
	}
	return n
}

// Indexes returns the checked positions in list order.
func (c CheckList) Indexes() []int {
	var out []int
	for i, ok := range c.Checked {
		if ok {
			out = append(out, i)
		}
	}
	return out
}

// View renders at most rows options around the cursor.
func (c CheckList) View(rows int) string {
	start, end := window(c.Selected, len(c.Options), rows)

	var b strings.Builder
	for i := start; i < end; i++ {
		box := "[ ]"
		if c.Checked[i] {
			box = "[x]"
		}
		prefix := "  "
		if i == c.Selected {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s %s", prefix, box, c.Options[i])

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case i == c.Selected:
			style = style.Foreground(theme.Primary).Bold(true)
		case c.Checked[i]:
			style = style.Foreground(theme.Secondary)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

// window returns the [start, end) slice of n items of height rows that
// keeps cursor visible.
func window(cursor, n, rows int) (int, int) {
	if rows <= 0 || n <= rows {
		return 0, n
	}
	start := cursor - rows/2
	if start < 0 {
		start = 0
	}
	if start+rows > n {
		start = n - rows
	}
	return start, start + rows
}
