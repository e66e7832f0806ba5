// Package overview renders learning progress: totals, streaks, mastery
// states and per-unit completion.
package overview

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordiz/internal/mastery"
	"github.com/abhisek/wordiz/internal/router"
	"github.com/abhisek/wordiz/internal/screen"
	"github.com/abhisek/wordiz/internal/ui/components"
	"github.com/abhisek/wordiz/internal/ui/layout"
	"github.com/abhisek/wordiz/internal/ui/theme"
)

// Screen shows the mastery overview with a scrollable unit list.
type Screen struct {
	stats  *mastery.Service
	offset int
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates the overview screen.
func New(deps screen.Deps) *Screen {
	return &Screen{stats: deps.Stats()}
}

func (s *Screen) Init() tea.Cmd { return nil }

func (s *Screen) Title() string { return "学习进度" }

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "↑↓", Description: "滚动"}, {Key: "Esc", Description: "返回"}}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "up", "k":
		if s.offset > 0 {
			s.offset--
		}
	case "down", "j":
		s.offset++
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	ov := s.stats.Overview()
	cw := components.ContentWidth(width)

	label := lipgloss.NewStyle().Foreground(theme.TextDim)
	value := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	stat := func(name string, v any) string {
		return label.Render(name+" ") + value.Render(fmt.Sprint(v))
	}

	summary := strings.Join([]string{
		stat("已学单词", fmt.Sprintf("%d/%d", ov.Learned, ov.TotalWords)) + "   " + stat("已掌握", ov.Mastered),
		stat("总正确率", fmt.Sprintf("%d%%", ov.Accuracy)) + "   " + stat("今日复习", ov.Today.Reviewed),
		stat("连续学习", fmt.Sprintf("%d 天", ov.CurrentStreak)) + "   " + stat("最长连续", fmt.Sprintf("%d 天", ov.LongestStreak)),
		"",
		states(ov.States),
	}, "\n")

	var b strings.Builder
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, components.ArcadeCard(summary, cw)))
	b.WriteString("\n\n")

	if len(ov.Units) == 0 {
		return b.String()
	}
	rows := max(height-lipgloss.Height(b.String())-1, 3)
	s.offset = min(s.offset, max(len(ov.Units)-rows, 0))
	end := min(len(ov.Units), s.offset+rows)
	var lines []string
	for _, u := range ov.Units[s.offset:end] {
		name := fmt.Sprintf("%-10s %-8s", truncate(u.BookName, 10), truncate(u.Unit, 8))
		lines = append(lines, components.FractionBar(name, u.Learned, u.Total, cw))
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(lines, "\n")))
	return b.String()
}

func states(counts map[mastery.MasteryState]int) string {
	var parts []string
	for _, st := range []mastery.MasteryState{mastery.StateMastered, mastery.StateLearning, mastery.StateReview} {
		parts = append(parts, fmt.Sprintf("%s %d", st.Label(), counts[st]))
	}
	return lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Render(strings.Join(parts, "  ·  "))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
