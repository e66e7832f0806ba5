// Package flashcard holds the flashcard setup and run screens.
package flashcard

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordiz/internal/content"
	"github.com/abhisek/wordiz/internal/router"
	"github.com/abhisek/wordiz/internal/screen"
	"github.com/abhisek/wordiz/internal/screens/practice"
	"github.com/abhisek/wordiz/internal/session"
	"github.com/abhisek/wordiz/internal/ui/components"
	"github.com/abhisek/wordiz/internal/ui/layout"
	"github.com/abhisek/wordiz/internal/ui/theme"
)

type field int

const (
	fieldBook field = iota
	fieldMode
	fieldUnits
	fieldCount
)

var modes = []session.Mode{session.ModeEnToZh, session.ModeZhToEn, session.ModeMixed}

// ModeName is the menu label of a question mode.
func ModeName(m session.Mode) string {
	switch m {
	case session.ModeEnToZh:
		return "看英文说中文"
	case session.ModeZhToEn:
		return "看中文说英文"
	case session.ModeMixed:
		return "混合模式"
	}
	return string(m)
}

// SetupScreen picks the book, units and mode of a flashcard session.
type SetupScreen struct {
	deps   screen.Deps
	books  []content.WordBook
	book   practice.Picker
	mode   practice.Picker
	units  components.CheckList
	focus  field
	errMsg string
}

var _ screen.Screen = (*SetupScreen)(nil)
var _ screen.KeyHintProvider = (*SetupScreen)(nil)

// NewSetup creates the setup screen over the catalog's word books.
func NewSetup(deps screen.Deps) *SetupScreen {
	s := &SetupScreen{deps: deps}
	if deps.Catalog != nil {
		s.books = deps.Catalog.Books
	}
	for _, b := range s.books {
		s.book.Options = append(s.book.Options, fmt.Sprintf("%s (%d词)", b.Name, b.WordCount()))
	}
	for _, m := range modes {
		s.mode.Options = append(s.mode.Options, ModeName(m))
	}
	s.loadUnits()
	return s
}

func (s *SetupScreen) loadUnits() {
	var labels []string
	if len(s.books) > 0 {
		for _, u := range s.books[s.book.Selected].Units {
			labels = append(labels, fmt.Sprintf("%s %s (%d)", u.Unit, u.Title, len(u.Words)))
		}
	}
	s.units = components.NewCheckList(labels)
}

func (s *SetupScreen) Init() tea.Cmd { return nil }

func (s *SetupScreen) Title() string { return "单词卡片" }

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "切换"},
		{Key: "←→", Description: "选择"},
		{Key: "Space", Description: "勾选单元"},
		{Key: "A", Description: "全选"},
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
	case "tab":
		s.focus = (s.focus + 1) % fieldCount
		return s, nil
	case "shift+tab":
		s.focus = (s.focus + fieldCount - 1) % fieldCount
		return s, nil
	case "enter":
		return s.start()
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	switch s.focus {
	case fieldBook:
		switch kmsg.String() {
		case "left", "h":
			s.book.Move(-1)
			s.loadUnits()
		case "right", "l":
			s.book.Move(1)
			s.loadUnits()
		}
	case fieldMode:
		switch kmsg.String() {
		case "left", "h":
			s.mode.Move(-1)
		case "right", "l":
			s.mode.Move(1)
		}
	case fieldUnits:
		s.units, _ = s.units.Update(msg)
	}
	return s, nil
}

// Selection returns what the screen would start.
func (s *SetupScreen) Selection() session.Selection {
	sel := session.Selection{Mode: modes[s.mode.Selected]}
	if len(s.books) == 0 {
		return sel
	}
	b := s.books[s.book.Selected]
	sel.BookID = b.Key()
	for _, i := range s.units.Indexes() {
		sel.Units = append(sel.Units, b.Units[i].Unit)
	}
	return sel
}

func (s *SetupScreen) start() (screen.Screen, tea.Cmd) {
	var catalog session.Catalog
	if s.deps.Catalog != nil {
		catalog = s.deps.Catalog
	}
	eng := session.NewFlashcard(catalog, s.deps.Progress, s.deps.Engine()...)
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

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(practice.Field("单词书", s.book.View(s.focus == fieldBook), s.focus == fieldBook))
	b.WriteString("\n\n")
	b.WriteString(practice.Field("模  式", s.mode.View(s.focus == fieldMode), s.focus == fieldMode))
	b.WriteString("\n\n")
	b.WriteString(practice.Field("单  元", fmt.Sprintf("已选 %d/%d", s.units.Count(), len(s.units.Options)), s.focus == fieldUnits))
	b.WriteString("\n")
	b.WriteString(s.units.View(max(height-10, 3)))
	b.WriteString("\n")
	b.WriteString(practice.ErrorLine(width, s.errMsg))

	block := lipgloss.NewStyle().Width(min(width-4, 70)).Render(b.String())
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, block)
}
