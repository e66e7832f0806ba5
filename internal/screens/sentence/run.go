package sentence

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordiz/internal/router"
	"github.com/abhisek/wordiz/internal/screen"
	"github.com/abhisek/wordiz/internal/screens/practice"
	"github.com/abhisek/wordiz/internal/screens/summary"
	sent "github.com/abhisek/wordiz/internal/sentence"
	"github.com/abhisek/wordiz/internal/session"
	"github.com/abhisek/wordiz/internal/ui/components"
	"github.com/abhisek/wordiz/internal/ui/layout"
	"github.com/abhisek/wordiz/internal/ui/theme"
)

// RunScreen drives an active sentence engine with one input per word.
type RunScreen struct {
	deps        screen.Deps
	engine      *sent.Engine
	inputs      []components.TextInput
	focus       int
	result      *sent.Result
	shown       bool
	confirmQuit bool
	errMsg      string
}

var _ screen.Screen = (*RunScreen)(nil)
var _ screen.KeyHintProvider = (*RunScreen)(nil)
var _ screen.EscapeHandler = (*RunScreen)(nil)

// NewRun wraps an engine that has already been started.
func NewRun(deps screen.Deps, engine *sent.Engine) *RunScreen {
	s := &RunScreen{deps: deps, engine: engine}
	s.loadItem()
	return s
}

// loadItem builds fresh inputs for the current sentence.
func (s *RunScreen) loadItem() {
	s.inputs = nil
	s.focus = 0
	s.result = nil
	s.shown = false
	it, ok := s.engine.Current()
	if !ok {
		return
	}
	for i, tok := range it.Tokens {
		in := components.NewTextInput("", len(tok.Word)+2)
		in.Model.Prompt = ""
		if i > 0 {
			in.Blur()
		}
		s.inputs = append(s.inputs, in)
	}
}

func (s *RunScreen) Init() tea.Cmd {
	if len(s.inputs) == 0 {
		return nil
	}
	return s.inputs[0].Init()
}

func (s *RunScreen) Title() string {
	if s.engine.Review() {
		return "错句复习"
	}
	return "句子练习"
}

func (s *RunScreen) HandlesEscape() bool { return true }

func (s *RunScreen) KeyHints() []layout.KeyHint {
	if s.confirmQuit {
		return []layout.KeyHint{{Key: "Y", Description: "结束"}, {Key: "N", Description: "继续"}}
	}
	if s.engine.Answered() {
		return []layout.KeyHint{{Key: "Enter", Description: "下一句"}, {Key: "Esc", Description: "结束"}}
	}
	return []layout.KeyHint{
		{Key: "Space/Tab", Description: "下一个词"},
		{Key: "Enter", Description: "检查"},
		{Key: "Ctrl+A", Description: "看答案"},
		{Key: "Ctrl+N", Description: "跳过"},
		{Key: "Ctrl+P", Description: "朗读"},
		{Key: "Esc", Description: "结束"},
	}
}

// Values returns the typed words.
func (s *RunScreen) Values() []string {
	out := make([]string, len(s.inputs))
	for i, in := range s.inputs {
		out[i] = in.Value()
	}
	return out
}

func (s *RunScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s.forward(msg)
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
	case "ctrl+n":
		return s.step(s.engine.Skip())
	case "ctrl+p":
		s.engine.Replay()
		return s, nil
	case "ctrl+a":
		marks, err := s.engine.ShowAnswer(s.Values())
		if err != nil {
			s.errMsg = practice.DescribeError(err)
			return s, nil
		}
		s.shown = true
		s.mark(marks)
		return s, nil
	}

	if s.engine.Answered() {
		return s, nil
	}
	switch kmsg.String() {
	case "space", " ", "tab":
		return s, s.moveFocus(1)
	case "shift+tab":
		return s, s.moveFocus(-1)
	case "backspace":
		if s.focus > 0 && s.inputs[s.focus].Value() == "" {
			return s, s.moveFocus(-1)
		}
	}
	return s.forward(msg)
}

func (s *RunScreen) forward(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.focus >= len(s.inputs) {
		return s, nil
	}
	var cmd tea.Cmd
	s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
	return s, cmd
}

func (s *RunScreen) moveFocus(delta int) tea.Cmd {
	next := s.focus + delta
	if next < 0 || next >= len(s.inputs) {
		return nil
	}
	s.inputs[s.focus].Blur()
	s.focus = next
	return s.inputs[s.focus].Focus()
}

func (s *RunScreen) mark(marks []bool) {
	for i := range s.inputs {
		if i < len(marks) {
			s.inputs[i].Submit(marks[i])
		}
	}
}

func (s *RunScreen) check() (screen.Screen, tea.Cmd) {
	for _, in := range s.inputs {
		if in.Blank() {
			s.errMsg = practice.DescribeError(sent.ErrTokenCount)
			return s, nil
		}
	}
	res, err := s.engine.Check(s.Values())
	if err != nil {
		s.errMsg = practice.DescribeError(err)
		return s, nil
	}
	s.errMsg = ""
	s.result = &res
	s.mark(res.Marks)
	return s, nil
}

func (s *RunScreen) step(err error) (screen.Screen, tea.Cmd) {
	if err != nil {
		s.errMsg = practice.DescribeError(err)
		return s, nil
	}
	s.errMsg = ""
	if s.engine.Phase() != session.PhaseFinished {
		s.loadItem()
		return s, s.Init()
	}
	sum, err := s.engine.Summary()
	if err != nil {
		s.errMsg = practice.DescribeError(err)
		return s, nil
	}
	next := summary.New(sum, nil)
	return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (s *RunScreen) View(width, height int) string {
	if s.confirmQuit {
		return practice.QuitConfirm(width)
	}
	it, ok := s.engine.Current()
	if !ok {
		return ""
	}

	var b strings.Builder
	label := it.ReadingTitleCn
	if s.engine.Review() {
		label = "错句复习 · " + label
	}
	b.WriteString(practice.ProgressLine(label, s.engine.Progress(), width))
	b.WriteString("\n\n")

	prompt := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(it.Chinese)
	if it.SpeakerCn != "" {
		prompt = lipgloss.NewStyle().Foreground(theme.TextDim).Render(it.SpeakerCn+": ") + prompt
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		components.ArcadeCard(prompt, components.ContentWidth(width))))
	b.WriteString("\n\n")

	var words []string
	for i, tok := range it.Tokens {
		words = append(words, tok.Lead+s.inputs[i].View()+tok.Punct)
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(words, "  ")))
	b.WriteString("\n\n")

	switch {
	case s.result != nil && s.result.Correct:
		b.WriteString(practice.Centered(width, theme.Correct, "完全正确！按 Enter 继续"))
	case s.result != nil:
		b.WriteString(practice.Centered(width, theme.Incorrect,
			fmt.Sprintf("有单词不对，已加入错题本（错 %d 次）", s.result.WrongCount)))
	}
	if s.shown {
		b.WriteString("\n")
		b.WriteString(practice.Centered(width, lipgloss.NewStyle().Foreground(theme.Accent),
			"答案: "+it.English))
	}
	b.WriteString("\n")
	b.WriteString(practice.ErrorLine(width, s.errMsg))
	return b.String()
}
