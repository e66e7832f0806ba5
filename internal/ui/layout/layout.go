// Package layout draws the frame around screens: a header with the
// breadcrumb and today's figures, and a footer of key hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordiz/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24
)

// KeyHint is a key and what it does, shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// HeaderStats are the learner figures on the right of the header.
type HeaderStats struct {
	Today    int  // words answered today
	Streak   int  // consecutive study days
	Wrong    int  // words and sentences in the wrong book
	Degraded bool // progress is not being saved
}

var (
	bar = lipgloss.NewStyle().
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)
	brand   = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	crumb   = lipgloss.NewStyle().Foreground(theme.TextDim)
	current = lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	figure  = lipgloss.NewStyle().Foreground(theme.Accent)
	warn    = lipgloss.NewStyle().Foreground(theme.Error).Bold(true)
	hintKey = lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	hintDsc = lipgloss.NewStyle().Foreground(theme.TextDim)
)

func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf("终端窗口太小\n\n请调整到至少 %d x %d\n当前 %d x %d",
			MinWidth, MinHeight, width, height))
}

// Breadcrumb joins the screen titles from the home screen down, the
// last one highlighted.
func Breadcrumb(trail []string) string {
	if len(trail) == 0 {
		return current.Render("首页")
	}
	parts := make([]string, len(trail))
	for i, t := range trail {
		if i == len(trail)-1 {
			parts[i] = current.Render(t)
		} else {
			parts[i] = crumb.Render(t)
		}
	}
	return strings.Join(parts, crumb.Render(" › "))
}

func renderFigures(st HeaderStats) string {
	parts := []string{
		figure.Render(fmt.Sprintf("今日 %d", st.Today)),
		figure.Render(fmt.Sprintf("★ %d 天", st.Streak)),
	}
	if st.Wrong > 0 {
		parts = append(parts, warn.Render(fmt.Sprintf("✗ %d", st.Wrong)))
	}
	if st.Degraded {
		parts = append(parts, warn.Render("⚠ 进度未保存"))
	}
	return strings.Join(parts, "   ")
}

// RenderHeader lays out the brand, the breadcrumb and the figures on one
// line inside a bordered bar. The breadcrumb is cut from the left when
// the line is too narrow.
func RenderHeader(trail []string, st HeaderStats, width int) string {
	left := brand.Render(" wordiz") + "  "
	right := renderFigures(st) + " "
	room := width - 4 - lipgloss.Width(left) - lipgloss.Width(right)

	path := Breadcrumb(trail)
	for len(trail) > 1 && lipgloss.Width(path) > room {
		trail = trail[1:]
		path = crumb.Render("… › ") + Breadcrumb(trail)
	}
	gap := max(room-lipgloss.Width(path), 1)
	return bar.Width(width).Render(left + path + strings.Repeat(" ", gap) + right)
}

// RenderFooter lays out the key hints, wrapping onto more lines when they
// do not fit in width.
func RenderFooter(hints []KeyHint, width int) string {
	inner := width - 6
	var lines []string
	line := ""
	for _, h := range hints {
		part := hintKey.Render(h.Key) + " " + hintDsc.Render(h.Description)
		switch {
		case line == "":
			line = part
		case lipgloss.Width(line)+3+lipgloss.Width(part) > inner:
			lines = append(lines, line)
			line = part
		default:
			line += "   " + part
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return bar.Width(width).PaddingLeft(2).Render(strings.Join(lines, "\n"))
}

// RenderFrame stacks header, content and footer, giving content whatever
// height is left.
func RenderFrame(header, content, footer string, width, height int) string {
	h := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().Width(width).Height(h).MaxHeight(h).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}
