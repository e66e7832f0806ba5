package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordiz/internal/content"
	"github.com/abhisek/wordiz/internal/router"
	"github.com/abhisek/wordiz/internal/screen"
	"github.com/abhisek/wordiz/internal/session"
	"github.com/abhisek/wordiz/internal/ui/layout"
	"github.com/abhisek/wordiz/internal/ui/theme"
)

// maxListed caps the missed words printed under the stats.
const maxListed = 12

// SummaryScreen displays the result of a finished practice session.
type SummaryScreen struct {
	summary session.Summary
	missed  []content.WordItem
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a result screen. Missed words are resolved through words,
// which may be nil.
func New(sum session.Summary, words session.Catalog) *SummaryScreen {
	ids := sum.WrongWordIDs
	if sum.Kind == session.KindDictation {
		ids = sum.Missed
	}
	var missed []content.WordItem
	if words != nil {
		missed = session.ResolveWords(words, ids)
	}
	return &SummaryScreen{summary: sum, missed: missed}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "练习结果"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "返回"},
		{Key: "H", Description: "回到首页"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "h":
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		}
	}
	return s, nil
}

// Headline picks the encouragement line for an accuracy.
func Headline(accuracy int) string {
	switch {
	case accuracy == 100:
		return "太棒了，全部正确！"
	case accuracy >= 80:
		return "做得很好！"
	case accuracy >= 60:
		return "继续加油！"
	default:
		return "多练习几次会更好！"
	}
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	center := func(fg lipgloss.Style, text string) string {
		return fg.Width(width).Align(lipgloss.Center).Render(text)
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true), "练习完成"))
	b.WriteString("\n")
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Accent), Headline(sum.Accuracy)))
	b.WriteString("\n\n")

	accuracy := lipgloss.NewStyle().Foreground(theme.AccuracyColor(sum.Accuracy)).Bold(true).
		Render(fmt.Sprintf("%d%%", sum.Accuracy))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, "正确率 "+accuracy))
	b.WriteString("\n\n")

	stats := fmt.Sprintf("题目: %d    正确: %d    错误: %d", sum.Total, sum.Correct, sum.Wrong)
	if sum.Skipped > 0 {
		stats += fmt.Sprintf("    跳过: %d", sum.Skipped)
	}
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Text), stats))
	b.WriteString("\n")
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim),
		"用时: "+session.FormatElapsed(sum.Elapsed)))
	b.WriteString("\n\n")

	if len(s.missed) > 0 {
		divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
			strings.Repeat("─", min(width-8, 40)))
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim), "需要复习的单词"))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
		b.WriteString("\n")
		for i, w := range s.missed {
			if i == maxListed {
				b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim),
					fmt.Sprintf("… 还有 %d 个", len(s.missed)-maxListed)))
				b.WriteString("\n")
				break
			}
			line := fmt.Sprintf("%-16s %s", w.Word, w.Meaning)
			b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Error), line))
			b.WriteString("\n")
		}
	} else if sum.Kind == session.KindSentence && sum.Wrong > 0 {
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim),
			"答错的句子已加入错题本"))
	}

	return b.String()
}
