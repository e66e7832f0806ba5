// Package sentence holds the sentence reconstruction setup and run screens.
package sentence

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordiz/internal/router"
	"github.com/abhisek/wordiz/internal/screen"
	"github.com/abhisek/wordiz/internal/screens/practice"
	sent "github.com/abhisek/wordiz/internal/sentence"
	"github.com/abhisek/wordiz/internal/ui/layout"
	"github.com/abhisek/wordiz/internal/ui/theme"
)

// allUnits is the unit option that selects every unit of a book.
const allUnits = "全部单元"

// SetupScreen picks the reading book and optional unit.
type SetupScreen struct {
	deps      screen.Deps
	book      practice.Picker
	unit      practice.Picker
	unitFocus bool
	errMsg    string
}

var _ screen.Screen = (*SetupScreen)(nil)
var _ screen.KeyHintProvider = (*SetupScreen)(nil)

// NewSetup creates the setup screen over the catalog's readings.
func NewSetup(deps screen.Deps) *SetupScreen {
	s := &SetupScreen{deps: deps}
	if deps.Catalog != nil {
		s.book.Options = deps.Catalog.ReadingBooks()
	}
	s.loadUnits()
	return s
}

func (s *SetupScreen) loadUnits() {
	s.unit = practice.Picker{Options: []string{allUnits}}
	if b := s.book.Value(); b != "" {
		s.unit.Options = append(s.unit.Options, s.deps.Catalog.ReadingUnits(b)...)
	}
}

func (s *SetupScreen) Init() tea.Cmd { return nil }

func (s *SetupScreen) Title() string { return "句子练习" }

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
func (s *SetupScreen) Selection() sent.Selection {
	sel := sent.Selection{BookName: s.book.Value()}
	if u := s.unit.Value(); u != allUnits {
		sel.UnitName = u
	}
	return sel
}

func (s *SetupScreen) start() (screen.Screen, tea.Cmd) {
	var catalog sent.Catalog
	if s.deps.Catalog != nil {
		catalog = s.deps.Catalog
	}
	eng := sent.New(catalog, s.deps.Progress, s.deps.Engine()...)
	if err := eng.Start(s.Selection()); err != nil {
		s.errMsg = practice.DescribeError(err)
		return s, nil
	}
	s.errMsg = ""
	run := NewRun(s.deps, eng)
	return s, func() tea.Msg { return router.PushScreenMsg{Screen: run} }
}

func (s *SetupScreen) View(width, height int) string {
	if len(s.book.Options) == 0 {
		return practice.Centered(width, lipgloss.NewStyle().Foreground(theme.TextDim),
			"\n\n没有可用的课文，请先导入阅读材料。")
	}
	sel := s.Selection()
	count := len(s.deps.Catalog.DialoguesIn(sel.BookName, sel.UnitName))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(practice.Field("课  本", s.book.View(!s.unitFocus), !s.unitFocus))
	b.WriteString("\n\n")
	b.WriteString(practice.Field("单  元", s.unit.View(s.unitFocus), s.unitFocus))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(
		fmt.Sprintf("  共 %d 个句子。看中文，逐词拼出英文句子。", count)))
	b.WriteString("\n\n")
	b.WriteString(practice.ErrorLine(width, s.errMsg))

	block := lipgloss.NewStyle().Width(min(width-4, 70)).Render(b.String())
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, block)
}
