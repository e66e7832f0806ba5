package dictation

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	dict "github.com/abhisek/wordiz/internal/dictation"
	"github.com/abhisek/wordiz/internal/router"
	"github.com/abhisek/wordiz/internal/screen"
	"github.com/abhisek/wordiz/internal/screens/practice"
	"github.com/abhisek/wordiz/internal/screens/summary"
	"github.com/abhisek/wordiz/internal/session"
	"github.com/abhisek/wordiz/internal/ui/components"
	"github.com/abhisek/wordiz/internal/ui/layout"
	"github.com/abhisek/wordiz/internal/ui/theme"
)

// RunScreen drives an active dictation engine.
type RunScreen struct {
	deps        screen.Deps
	engine      *dict.Engine
	input       components.TextInput
	result      *dict.Result
	revealed    string
	confirmQuit bool
	errMsg      string
}

var _ screen.Screen = (*RunScreen)(nil)
var _ screen.KeyHintProvider = (*RunScreen)(nil)
var _ screen.EscapeHandler = (*RunScreen)(nil)

// NewRun wraps an engine that has already been started.
func NewRun(deps screen.Deps, engine *dict.Engine) *RunScreen {
	return &RunScreen{
		deps:   deps,
		engine: engine,
		input:  components.NewTextInput("输入英文单词", 40),
	}
}

func (s *RunScreen) Init() tea.Cmd { return s.input.Init() }

func (s *RunScreen) Title() string {
	if s.engine.Review() {
		return "错词听写"
	}
	return "听写练习"
}

func (s *RunScreen) HandlesEscape() bool { return true }

func (s *RunScreen) KeyHints() []layout.KeyHint {
	if s.confirmQuit {
		return []layout.KeyHint{{Key: "Y", Description: "结束"}, {Key: "N", Description: "继续"}}
	}
	if s.engine.Answered() {
		return []layout.KeyHint{{Key: "Enter", Description: "下一个"}, {Key: "Esc", Description: "结束"}}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "检查"},
		{Key: "Tab", Description: "跳过"},
		{Key: "Ctrl+R", Description: "看答案"},
		{Key: "Ctrl+P", Description: "再听一遍"},
		{Key: "Esc", Description: "结束"},
	}
}

func (s *RunScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	if s.confirmQuit {
		switch kmsg.String() {
		case "y", "Y":
			s.engine.Exit()
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	switch kmsg.String() {
	case "esc":
		s.confirmQuit = true
		return s, nil
	case "enter":
		if s.engine.Answered() {
			return s.step(s.engine.Advance())
		}
		return s.check()
	case "tab":
		return s.step(s.engine.Skip())
	case "ctrl+r":
		w, err := s.engine.Reveal()
		if err != nil {
			s.errMsg = practice.DescribeError(err)
			return s, nil
		}
		s.revealed = w
		return s, nil
	case "ctrl+p":
		s.engine.Replay()
		return s, nil
	}

	if s.engine.Answered() {
		return s, nil
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *RunScreen) check() (screen.Screen, tea.Cmd) {
	if s.input.Blank() {
		return s, nil
	}
	res, err := s.engine.Check(s.input.Value())
	if err != nil {
		s.errMsg = practice.DescribeError(err)
		return s, nil
	}
	s.errMsg = ""
	s.result = &res
	s.input.Submit(res.Correct)
	return s, nil
}

// step finishes a move to the next word.
func (s *RunScreen) step(err error) (screen.Screen, tea.Cmd) {
	if err != nil {
		s.errMsg = practice.DescribeError(err)
		return s, nil
	}
	s.errMsg = ""
	s.result = nil
	s.revealed = ""
	s.input.Reset()

	if s.engine.Phase() != session.PhaseFinished {
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
	p, ok := s.engine.Current()
	if !ok {
		return ""
	}

	var b strings.Builder
	label := fmt.Sprintf("%s · %s", p.Source.BookName, p.Source.UnitName)
	if s.engine.Review() {
		label = "错词听写"
	}
	b.WriteString(practice.ProgressLine(label, s.engine.Progress(), width))
	b.WriteString("\n\n")

	prompt := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(p.Meaning)
	if p.Phonetic != "" {
		prompt += "\n" + lipgloss.NewStyle().Foreground(theme.TextDim).Render(p.Phonetic)
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		components.ArcadeCard(prompt, components.ContentWidth(width))))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.input.View()))
	b.WriteString("\n\n")

	switch {
	case s.result != nil && s.result.Correct:
		b.WriteString(practice.Centered(width, theme.Correct, "正确！按 Enter 继续"))
	case s.result != nil:
		b.WriteString(practice.Centered(width, theme.Incorrect,
			fmt.Sprintf("不对哦，再试一次（第 %d 次）", s.result.Attempts)))
	}
	if s.revealed != "" {
		b.WriteString("\n")
		b.WriteString(practice.Centered(width, lipgloss.NewStyle().Foreground(theme.Accent),
			"答案: "+s.revealed))
	}
	b.WriteString("\n")
	b.WriteString(practice.ErrorLine(width, s.errMsg))
	return b.String()
}
