// Package dictation holds the dictation setup and run screens.
package dictation

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordiz/internal/content"
	dict "github.com/abhisek/wordiz/internal/dictation"
	"github.com/abhisek/wordiz/internal/router"
	"github.com/abhisek/wordiz/internal/screen"
	"github.com/abhisek/wordiz/internal/screens/practice"
	"github.com/abhisek/wordiz/internal/session"
	"github.com/abhisek/wordiz/internal/ui/layout"
	"github.com/abhisek/wordiz/internal/ui/theme"
)

// wholeBook is the unit option that selects every unit.
const wholeBook = "全书"

// SetupScreen picks the book and optional unit of a dictation session.
type SetupScreen struct {
	deps      screen.Deps
	books     []content.WordBook
	book      practice.Picker
	unit      practice.Picker
	unitFocus bool
	errMsg    string
}

var _ screen.Screen = (*SetupScreen)(nil)
var _ screen.KeyHintProvider = (*SetupScreen)(nil)

// NewSetup creates the setup screen.
func NewSetup(deps screen.Deps) *SetupScreen {
	s := &SetupScreen{deps: deps}
	if deps.Catalog != nil {
		s.books = deps.Catalog.Books
	}
	for _, b := range s.books {
		s.book.Options = append(s.book.Options, b.Name)
	}
	s.loadUnits()
	return s
}

func (s *SetupScreen) loadUnits() {
	s.unit = practice.Picker{Options: []string{wholeBook}}
	if len(s.books) == 0 {
		return
	}
	for _, u := range s.books[s.book.Selected].Units {
		s.unit.Options = append(s.unit.Options, u.Unit)
	}
}

func (s *SetupScreen) Init() tea.Cmd { return nil }

func (s *SetupScreen) Title() string { return "听写练习" }

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "切换"},
		{Key: "←→", Description: "选择"},
		{Key: "Enter", Description: "开始"},
		{Key: "Esc", Description: "返回"},
	}
}

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "up", "down", "tab", "shift+tab", "k", "j":
		s.unitFocus = !s.unitFocus
	case "left", "h":
		s.move(-1)
	case "right", "l":
		s.move(1)
	case "enter":
		return s.start()
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

func (s *SetupScreen) move(delta int) {
	if s.unitFocus {
		s.unit.Move(delta)
		return
	}
	s.book.Move(delta)
	s.loadUnits()
}

// Selection returns what the screen would start.
func (s *SetupScreen) Selection() dict.Selection {
	if len(s.books) == 0 {
		return dict.Selection{}
	}
	sel := dict.Selection{BookID: s.books[s.book.Selected].Key()}
	if u := s.unit.Value(); u != wholeBook {
		sel.Unit = u
	}
	return sel
}

func (s *SetupScreen) start() (screen.Screen, tea.Cmd) {
	var catalog session.Catalog
	if s.deps.Catalog != nil {
		catalog = s.deps.Catalog
	}
	eng := dict.New(catalog, s.deps.Progress, s.deps.Engine()...)
	if err := eng.Start(s.Selection()); err != nil {
		s.errMsg = practice.DescribeError(err)
		return s, nil
	}
	s.errMsg = ""
	run := NewRun(s.deps, eng)
	return s, func() tea.Msg { return router.PushScreenMsg{Screen: run} }
}

func (s *SetupScreen) View(width, height int) string {
	if len(s.books) == 0 {
		return practice.Centered(width, lipgloss.NewStyle().Foreground(theme.TextDim),
			"\n\n没有可用的单词书，请先导入词库。")
	}

	words := len(s.deps.Catalog.WordsIn(s.Selection().BookID, unitFilter(s.Selection())...))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(practice.Field("单词书", s.book.View(!s.unitFocus), !s.unitFocus))
	b.WriteString("\n\n")
	b.WriteString(practice.Field("单  元", s.unit.View(s.unitFocus), s.unitFocus))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(
		fmt.Sprintf("  共 %d 个单词。看中文意思，听发音，拼写英文单词。", words)))
	b.WriteString("\n\n")
	b.WriteString(practice.ErrorLine(width, s.errMsg))

	block := lipgloss.NewStyle().Width(min(width-4, 70)).Render(b.String())
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, block)
}

func unitFilter(sel dict.Selection) []string {
	if sel.Unit == "" {
		return nil
	}
	return []string{sel.Unit}
}
