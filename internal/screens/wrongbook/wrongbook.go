// Package wrongbook shows the wrong words and wrong sentences and
// starts review sessions over them.
package wrongbook

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	dict "github.com/abhisek/wordiz/internal/dictation"
	"github.com/abhisek/wordiz/internal/mastery"
	"github.com/abhisek/wordiz/internal/progress"
	"github.com/abhisek/wordiz/internal/router"
	"github.com/abhisek/wordiz/internal/screen"
	dictscreen "github.com/abhisek/wordiz/internal/screens/dictation"
	"github.com/abhisek/wordiz/internal/screens/flashcard"
	"github.com/abhisek/wordiz/internal/screens/practice"
	sentscreen "github.com/abhisek/wordiz/internal/screens/sentence"
	sent "github.com/abhisek/wordiz/internal/sentence"
	"github.com/abhisek/wordiz/internal/session"
	"github.com/abhisek/wordiz/internal/ui/layout"
	"github.com/abhisek/wordiz/internal/ui/theme"
)

// Tab selects which list is shown.
type Tab int

const (
	TabWords Tab = iota
	TabSentences
)

// Screen lists wrong words or wrong sentences.
type Screen struct {
	deps      screen.Deps
	stats     *mastery.Service
	tab       Tab
	words     []mastery.WordStatus
	sentences []progress.WrongSentence
	selected  int
	confirm   bool
	errMsg    string
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)
var _ screen.EscapeHandler = (*Screen)(nil)

// New creates the wrong book on the words tab.
func New(deps screen.Deps) *Screen {
	s := &Screen{deps: deps, stats: deps.Stats()}
	s.reload()
	return s
}

func (s *Screen) reload() {
	s.words = s.stats.WrongWords()
	s.sentences = s.deps.Progress.WrongSentences()
	s.selected = min(s.selected, max(s.len()-1, 0))
}

func (s *Screen) len() int {
	if s.tab == TabSentences {
		return len(s.sentences)
	}
	return len(s.words)
}

func (s *Screen) Init() tea.Cmd { return nil }

func (s *Screen) Title() string { return "错题本" }

func (s *Screen) HandlesEscape() bool { return true }

func (s *Screen) KeyHints() []layout.KeyHint {
	if s.confirm {
		return []layout.KeyHint{{Key: "Y", Description: "清空"}, {Key: "N", Description: "取消"}}
	}
	hints := []layout.KeyHint{
		{Key: "Tab", Description: "单词/句子"},
		{Key: "R", Description: "复习"},
	}
	if s.tab == TabWords {
		hints = append(hints, layout.KeyHint{Key: "T", Description: "听写复习"})
	}
	return append(hints,
		layout.KeyHint{Key: "D", Description: "移除"},
		layout.KeyHint{Key: "C", Description: "清空"},
		layout.KeyHint{Key: "Esc", Description: "返回"},
	)
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}

	if s.confirm {
		switch kmsg.String() {
		case "y", "Y":
			if s.tab == TabSentences {
				s.deps.Progress.ClearWrongSentences()
			} else {
				s.deps.Progress.ClearWrongWords()
			}
			s.confirm = false
			s.reload()
		case "n", "N", "esc":
			s.confirm = false
		}
		return s, nil
	}

	s.errMsg = ""
	switch kmsg.String() {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "tab", "shift+tab":
		s.tab = 1 - s.tab
		s.selected = 0
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < s.len()-1 {
			s.selected++
		}
	case "d":
		s.remove()
	case "c":
		if s.len() > 0 {
			s.confirm = true
		}
	case "enter", "s":
		s.speak()
	case "r":
		if s.len() == 0 {
			s.errMsg = "错题本是空的，没有需要复习的内容"
			return s, nil
		}
		return s.review()
	case "t":
		if s.tab == TabWords && s.len() > 0 {
			return s.dictationReview()
		}
	}
	return s, nil
}

func (s *Screen) remove() {
	if s.selected >= s.len() {
		return
	}
	if s.tab == TabSentences {
		s.deps.Progress.RemoveFromWrongSentences(s.sentences[s.selected].ID)
	} else {
		s.deps.Progress.RemoveFromWrongWords(s.words[s.selected].Word.ID)
	}
	s.reload()
}

func (s *Screen) speak() {
	if s.selected >= s.len() {
		return
	}
	if s.tab == TabSentences {
		s.deps.Speak(s.sentences[s.selected].English)
		return
	}
	s.deps.Speak(s.words[s.selected].Word.Word)
}

func (s *Screen) wordCatalog() session.Catalog {
	if s.deps.Catalog == nil {
		return nil
	}
	return s.deps.Catalog
}

func (s *Screen) review() (screen.Screen, tea.Cmd) {
	var next screen.Screen
	if s.tab == TabSentences {
		var catalog sent.Catalog
		if s.deps.Catalog != nil {
			catalog = s.deps.Catalog
		}
		eng := sent.New(catalog, s.deps.Progress, s.deps.Engine()...)
		if err := eng.StartReview(); err != nil {
			s.errMsg = practice.DescribeError(err)
			return s, nil
		}
		next = sentscreen.NewRun(s.deps, eng)
	} else {
		eng := session.NewFlashcard(s.wordCatalog(), s.deps.Progress, s.deps.Engine()...)
		if err := eng.StartReview(); err != nil {
			s.errMsg = practice.DescribeError(err)
			return s, nil
		}
		next = flashcard.NewRun(s.deps, eng)
	}
	return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

func (s *Screen) dictationReview() (screen.Screen, tea.Cmd) {
	eng := dict.New(s.wordCatalog(), s.deps.Progress, s.deps.Engine()...)
	if err := eng.StartReview(); err != nil {
		s.errMsg = practice.DescribeError(err)
		return s, nil
	}
	next := dictscreen.NewRun(s.deps, eng)
	return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

func (s *Screen) View(width, height int) string {
	// Review sessions change the lists behind this screen.
	s.reload()

	if s.confirm {
		what := "错词"
		if s.tab == TabSentences {
			what = "错句"
		}
		return practice.Centered(width, lipgloss.NewStyle().Foreground(theme.Accent).Bold(true),
			fmt.Sprintf("\n\n确定清空全部%s吗？\n\n[Y] 清空    [N] 取消", what))
	}

	var b strings.Builder
	b.WriteString(s.tabs(width))
	b.WriteString("\n\n")

	if s.len() == 0 {
		b.WriteString(practice.Centered(width, lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true),
			"太好了，这里是空的！"))
		b.WriteString("\n")
		b.WriteString(practice.ErrorLine(width, s.errMsg))
		return b.String()
	}

	rows := max(height-6, 3)
	start := max(0, s.selected-rows+1)
	end := min(s.len(), start+rows)
	for i := start; i < end; i++ {
		b.WriteString(s.row(i))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(practice.ErrorLine(width, s.errMsg))
	return b.String()
}

func (s *Screen) tabs(width int) string {
	on := lipgloss.NewStyle().Foreground(theme.BgDark).Background(theme.Primary).Bold(true).Padding(0, 1)
	off := lipgloss.NewStyle().Foreground(theme.TextDim).Padding(0, 1)
	w, st := off, off
	if s.tab == TabSentences {
		st = on
	} else {
		w = on
	}
	line := w.Render(fmt.Sprintf("错词 %d", len(s.words))) + "  " + st.Render(fmt.Sprintf("错句 %d", len(s.sentences)))
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, line)
}

func (s *Screen) row(i int) string {
	prefix := "  "
	style := lipgloss.NewStyle().Foreground(theme.Text)
	if i == s.selected {
		prefix = "▸ "
		style = style.Foreground(theme.Primary).Bold(true)
	}
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	if s.tab == TabSentences {
		ws := s.sentences[i]
		return prefix + style.Render(ws.English) + "  " + dim.Render(fmt.Sprintf("%s · 错 %d 次", ws.Chinese, ws.WrongCount))
	}
	ws := s.words[i]
	return prefix + style.Render(fmt.Sprintf("%-16s", ws.Word.Word)) + " " + ws.Word.Meaning + "  " +
		dim.Render(fmt.Sprintf("%s · %s", ws.Source.UnitName, ws.State.Label()))
}
