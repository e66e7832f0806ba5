package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordiz/internal/ui/theme"
)

const banner = ` ██╗    ██╗ ██████╗ ██████╗ ██████╗ ██╗███████╗
 ██║    ██║██╔═══██╗██╔══██╗██╔══██╗██║╚══███╔╝
 ██║ █╗ ██║██║   ██║██████╔╝██║  ██║██║  ███╔╝
 ██║███╗██║██║   ██║██╔══██╗██║  ██║██║ ███╔╝
 ╚███╔███╔╝╚██████╔╝██║  ██║██████╔╝██║███████╗
  ╚══╝╚══╝  ╚═════╝ ╚═╝  ╚═╝╚═════╝ ╚═╝╚══════╝`

const bannerCompact = "W · O · R · D · I · Z"

const buttonWidth = 22

// centered renders s as a block centered in cw columns.
func centered(cw int, s string) string {
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(s)
}

func renderBanner(cw int, compact bool) string {
	text := banner
	if compact {
		text = bannerCompact
	}
	return centered(cw, lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).Render(text))
}

// stat is one figure of the stats bar in its long and short form.
type stat struct {
	long, short string
	color       lipgloss.Style
}

func statsOf(st homeStats) []stat {
	bold := lipgloss.NewStyle().Bold(true)
	wrong := stat{"✗ 无错题", "✗0", lipgloss.NewStyle().Foreground(theme.TextDim)}
	if st.wrong > 0 {
		wrong = stat{fmt.Sprintf("✗ 错题 %d", st.wrong), fmt.Sprintf("✗%d", st.wrong), bold.Foreground(theme.Error)}
	}
	return []stat{
		{fmt.Sprintf("今日 %d 词", st.today), fmt.Sprintf("今%d", st.today), bold.Foreground(theme.ArcadeYellow)},
		{fmt.Sprintf("正确率 %d%%", st.accuracy), fmt.Sprintf("%d%%", st.accuracy), bold.Foreground(theme.Accent)},
		{fmt.Sprintf("★ 连续 %d 天", st.streak), fmt.Sprintf("★%d", st.streak), bold.Foreground(theme.ArcadeCyan)},
		wrong,
	}
}

func renderStatsBar(st homeStats, cw int, compact bool) string {
	sep := "  "
	if compact {
		sep = " "
	}
	parts := make([]string, 0, 4)
	for _, s := range statsOf(st) {
		text := s.long
		if compact {
			text = s.short
		}
		parts = append(parts, s.color.Render(text))
	}
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw-2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(strings.Join(parts, sep))
}

// menuEntry renders one menu label. Full-size entries are bordered
// buttons; compact ones are single lines.
func menuEntry(label string, selected, disabled, compact bool) string {
	style := lipgloss.NewStyle().Foreground(theme.Text)
	switch {
	case disabled:
		style = style.Foreground(theme.TextDim)
	case selected:
		style = style.Bold(true).Foreground(theme.BgDark).Background(theme.ArcadeYellow)
		label = "▸ " + label
	}
	if compact {
		if !selected || disabled {
			label = "  " + label
		}
		return style.Render(" " + label + " ")
	}
	border := theme.Border
	if selected && !disabled {
		border = theme.ArcadeYellow
	}
	return style.Width(buttonWidth).Align(lipgloss.Center).Padding(0, 1).
		Border(lipgloss.RoundedBorder()).BorderForeground(border).
		Render(label)
}

func renderMenu(labels []string, selected int, disabled map[int]bool, cw int, compact bool) string {
	rows := make([]string, len(labels))
	for i, l := range labels {
		rows[i] = menuEntry(l, i == selected, disabled[i], compact)
	}
	return centered(cw, strings.Join(rows, "\n"))
}

func renderEmptyBanner(cw int) string {
	return lipgloss.NewStyle().Foreground(theme.Accent).Width(cw).Align(lipgloss.Center).
		Render("⚠ 词库为空，请先运行 wordiz import 导入单词")
}
