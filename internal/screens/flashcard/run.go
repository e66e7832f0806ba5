package flashcard

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordiz/internal/mastery"
	"github.com/abhisek/wordiz/internal/progress"
	"github.com/abhisek/wordiz/internal/router"
	"github.com/abhisek/wordiz/internal/screen"
	"github.com/abhisek/wordiz/internal/screens/practice"
	"github.com/abhisek/wordiz/internal/screens/summary"
	"github.com/abhisek/wordiz/internal/session"
	"github.com/abhisek/wordiz/internal/ui/components"
	"github.com/abhisek/wordiz/internal/ui/layout"
	"github.com/abhisek/wordiz/internal/ui/theme"
)

// RunScreen drives an active flashcard engine.
type RunScreen struct {
	deps        screen.Deps
	engine      *session.Flashcard
	revealed    bool
	confirmQuit bool
	last        *session.Outcome
	errMsg      string
}

var _ screen.Screen = (*RunScreen)(nil)
var _ screen.KeyHintProvider = (*RunScreen)(nil)
var _ screen.EscapeHandler = (*RunScreen)(nil)

// NewRun wraps an engine that has already been started.
func NewRun(deps screen.Deps, engine *session.Flashcard) *RunScreen {
	return &RunScreen{deps: deps, engine: engine}
}

func (s *RunScreen) Init() tea.Cmd { return nil }

func (s *RunScreen) Title() string {
	if s.engine.Review() {
		return "错词复习"
	}
	return "单词卡片"
}

func (s *RunScreen) HandlesEscape() bool { return true }

func (s *RunScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.confirmQuit:
		return []layout.KeyHint{{Key: "Y", Description: "结束"}, {Key: "N", Description: "继续"}}
	case s.revealed:
		return []layout.KeyHint{
			{Key: "1", Description: "认识"},
			{Key: "2", Description: "不认识"},
			{Key: "3", Description: "标记复习"},
			{Key: "S", Description: "发音"},
			{Key: "Esc", Description: "结束"},
		}
	}
	return []layout.KeyHint{
		{Key: "Space", Description: "翻转卡片"},
		{Key: "S", Description: "发音"},
		{Key: "Esc", Description: "结束"},
	}
}

func (s *RunScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	key := kmsg.String()

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			s.engine.Exit()
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	switch key {
	case "esc":
		s.confirmQuit = true
		return s, nil
	case "s":
		if q, ok := s.engine.Current(); ok {
			s.deps.Speak(q.Answer.Word)
		}
		return s, nil
	}

	if !s.revealed {
		switch key {
		case "space", " ", "enter":
			if err := s.engine.Reveal(); err != nil {
				s.errMsg = practice.DescribeError(err)
				return s, nil
			}
			s.revealed = true
		}
		return s, nil
	}

	switch key {
	case "1", "y":
		return s.mark(true, false)
	case "2", "n":
		return s.mark(false, false)
	case "3", "m":
		return s.mark(false, true)
	}
	return s, nil
}

func (s *RunScreen) mark(correct, review bool) (screen.Screen, tea.Cmd) {
	out, err := s.engine.Mark(correct, review)
	if err != nil {
		s.errMsg = practice.DescribeError(err)
		return s, nil
	}
	s.last = &out
	s.revealed = false
	s.errMsg = ""
	if !out.Finished {
		return s, nil
	}

	sum, err := s.engine.Summary()
	if err != nil {
		s.errMsg = practice.DescribeError(err)
		return s, nil
	}
	next := summary.New(sum, s.deps.Catalog)
	return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (s *RunScreen) View(width, height int) string {
	if s.confirmQuit {
		return practice.QuitConfirm(width)
	}
	q, ok := s.engine.Current()
	if !ok {
		return ""
	}

	var b strings.Builder
	label := fmt.Sprintf("%s · %s", q.Source.BookName, q.Source.UnitName)
	if s.engine.Review() {
		label = "错词复习"
	}
	b.WriteString(practice.ProgressLine(label, s.engine.Progress(), width))
	b.WriteString("\n\n")

	cw := components.ContentWidth(width)
	front := lipgloss.NewStyle().Foreground(theme.TextDim).Render(q.Type.Label()) + "\n\n" +
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(q.Text)
	if q.Type == session.ModeEnToZh && q.Answer.Phonetic != "" {
		front += "\n" + lipgloss.NewStyle().Foreground(theme.TextDim).Render(q.Answer.Phonetic)
	}
	if s.revealed {
		front += "\n\n" + s.renderBack(q)
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, components.ArcadeCard(front, cw)))
	b.WriteString("\n\n")

	if s.last != nil {
		b.WriteString(practice.Centered(width, lipgloss.NewStyle().Foreground(theme.TextDim),
			fmt.Sprintf("上一题掌握度: %s", mastery.Stars(s.last.Mastery, progress.MaxMastery))))
		b.WriteString("\n")
	}
	b.WriteString(practice.ErrorLine(width, s.errMsg))
	return b.String()
}

func (s *RunScreen) renderBack(q session.Question) string {
	w := q.Answer
	var lines []string
	if q.Type == session.ModeEnToZh {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(w.Meaning))
	} else {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(w.Word))
		if w.Phonetic != "" {
			lines = append(lines, lipgloss.NewStyle().Foreground(theme.TextDim).Render(w.Phonetic))
		}
	}
	if w.Example != "" {
		lines = append(lines, "", lipgloss.NewStyle().Foreground(theme.Text).Render(w.Example))
		if w.Translation != "" {
			lines = append(lines, lipgloss.NewStyle().Foreground(theme.TextDim).Render(w.Translation))
		}
	}
	if w.MemoryTip != "" {
		lines = append(lines, "", lipgloss.NewStyle().Foreground(theme.Accent).Render("记忆: "+w.MemoryTip))
	}
	return strings.Join(lines, "\n")
}
