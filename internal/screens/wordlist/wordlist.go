// Package wordlist browses the words of a book page by page.
package wordlist

import (
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordiz/internal/content"
	"github.com/abhisek/wordiz/internal/mastery"
	"github.com/abhisek/wordiz/internal/progress"
	"github.com/abhisek/wordiz/internal/router"
	"github.com/abhisek/wordiz/internal/screen"
	"github.com/abhisek/wordiz/internal/screens/practice"
	"github.com/abhisek/wordiz/internal/ui/components"
	"github.com/abhisek/wordiz/internal/ui/layout"
	"github.com/abhisek/wordiz/internal/ui/theme"
)

const allUnits = "全部单元"

// Screen lists words with their mastery, filtered by unit and search.
type Screen struct {
	deps      screen.Deps
	book      practice.Picker
	unit      practice.Picker
	search    components.TextInput
	searching bool
	query     string
	page      int
	selected  int
	result    content.PageResult
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)
var _ screen.EscapeHandler = (*Screen)(nil)

// New creates the word list over the first book.
func New(deps screen.Deps) *Screen {
	s := &Screen{
		deps:   deps,
		search: components.NewTextInput("搜索单词或释义", 30),
		page:   1,
	}
	s.search.Blur()
	if deps.Catalog != nil {
		for _, b := range deps.Catalog.Books {
			s.book.Options = append(s.book.Options, b.Key())
		}
	}
	s.loadUnits()
	return s
}

func (s *Screen) loadUnits() {
	s.unit = practice.Picker{Options: []string{allUnits}}
	if s.deps.Catalog != nil {
		for _, u := range s.deps.Catalog.Units(s.book.Value()) {
			s.unit.Options = append(s.unit.Options, u.Unit)
		}
	}
	s.refresh(1)
}

// words returns the filtered list before paging.
func (s *Screen) words() []content.WordItem {
	if s.deps.Catalog == nil {
		return nil
	}
	var units []string
	if u := s.unit.Value(); u != allUnits {
		units = append(units, u)
	}
	return content.Search(s.deps.Catalog.WordsIn(s.book.Value(), units...), s.query)
}

func (s *Screen) refresh(page int) {
	s.result = content.Page(s.words(), page, content.WordsPerPage)
	s.page = max(s.result.Page, 1)
	s.selected = min(s.selected, max(len(s.result.Words)-1, 0))
}

func (s *Screen) Init() tea.Cmd { return nil }

func (s *Screen) Title() string { return "单词列表" }

func (s *Screen) HandlesEscape() bool { return true }

func (s *Screen) KeyHints() []layout.KeyHint {
	if s.searching {
		return []layout.KeyHint{{Key: "Enter", Description: "确定"}, {Key: "Esc", Description: "清除"}}
	}
	return []layout.KeyHint{
		{Key: "/", Description: "搜索"},
		{Key: "B/U", Description: "课本/单元"},
		{Key: "←→", Description: "翻页"},
		{Key: "F", Description: "收藏"},
		{Key: "Enter", Description: "朗读"},
		{Key: "Esc", Description: "返回"},
	}
}

// Selected returns the highlighted word.
func (s *Screen) Selected() (content.WordItem, bool) {
	if s.selected >= len(s.result.Words) {
		return content.WordItem{}, false
	}
	return s.result.Words[s.selected], true
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		if s.searching {
			var cmd tea.Cmd
			s.search, cmd = s.search.Update(msg)
			return s, cmd
		}
		return s, nil
	}
	if s.searching {
		return s.updateSearch(kmsg)
	}

	switch kmsg.String() {
	case "esc":
		if s.query != "" {
			s.query = ""
			s.search.Reset()
			s.refresh(1)
			return s, nil
		}
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "/":
		s.searching = true
		return s, s.search.Focus()
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(s.result.Words)-1 {
			s.selected++
		}
	case "left", "h", "pgup":
		if s.page > 1 {
			s.selected = 0
			s.refresh(s.page - 1)
		}
	case "right", "l", "pgdown":
		if s.page < s.result.TotalPages {
			s.selected = 0
			s.refresh(s.page + 1)
		}
	case "b":
		s.book.Move(1)
		s.selected = 0
		s.loadUnits()
	case "u":
		s.unit.Move(1)
		s.selected = 0
		s.refresh(1)
	case "f":
		if w, ok := s.Selected(); ok {
			s.deps.Progress.ToggleFavorite(w.ID)
		}
	case "enter", "s":
		if w, ok := s.Selected(); ok {
			s.deps.Speak(w.Word)
		}
	}
	return s, nil
}

func (s *Screen) updateSearch(kmsg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch kmsg.String() {
	case "enter":
		s.searching = false
		s.search.Blur()
		return s, nil
	case "esc":
		s.searching = false
		s.search.Blur()
		s.search.Reset()
		s.query = ""
		s.refresh(1)
		return s, nil
	}
	var cmd tea.Cmd
	s.search, cmd = s.search.Update(kmsg)
	s.query = s.search.Value()
	s.selected = 0
	s.refresh(1)
	return s, cmd
}

func (s *Screen) View(width, height int) string {
	if len(s.book.Options) == 0 {
		return practice.Centered(width, lipgloss.NewStyle().Foreground(theme.TextDim), "\n\n词库为空，请先导入单词。")
	}
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	var b strings.Builder
	b.WriteString(fmt.Sprintf("  %s  ·  %s", s.book.Value(), s.unit.Value()))
	if s.searching || s.query != "" {
		b.WriteString("    ")
		b.WriteString(s.search.View())
	}
	b.WriteString("\n\n")

	if len(s.result.Words) == 0 {
		b.WriteString(dim.Render("  没有找到匹配的单词"))
		return b.String()
	}

	rows := max(height-6, 3)
	start := max(0, s.selected-rows+1)
	end := min(len(s.result.Words), start+rows)
	for i := start; i < end; i++ {
		b.WriteString(s.row(i, width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dim.Render(fmt.Sprintf("  共 %d 个  ", s.result.Total)))
	b.WriteString(pager(s.page, s.result.TotalPages))
	return b.String()
}

func (s *Screen) row(i, width int) string {
	w := s.result.Words[i]
	level := s.deps.Progress.Mastery(w.ID)
	fav := "  "
	if s.deps.Progress.IsFavorite(w.ID) {
		fav = theme.Favorite.Render("♥ ")
	}
	stars := lipgloss.NewStyle().Foreground(theme.LevelColor(level)).Render(mastery.Stars(level, progress.MaxMastery))
	meaning := w.Meaning
	if limit := (width - 44) / 2; limit > 4 && len([]rune(meaning)) > limit {
		meaning = string([]rune(meaning)[:limit]) + "…"
	}
	line := fmt.Sprintf("%-16s %-14s", w.Word, w.Phonetic)
	style := lipgloss.NewStyle().Foreground(theme.Text)
	prefix := "  "
	if i == s.selected {
		style = style.Foreground(theme.Primary).Bold(true)
		prefix = "▸ "
	}
	return prefix + fav + style.Render(line) + " " + stars + "  " + meaning
}

func pager(current, total int) string {
	var parts []string
	for _, n := range content.PageNumbers(current, total) {
		switch {
		case n == content.Ellipsis:
			parts = append(parts, "…")
		case n == current:
			parts = append(parts, lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("["+strconv.Itoa(n)+"]"))
		default:
			parts = append(parts, strconv.Itoa(n))
		}
	}
	return strings.Join(parts, " ")
}
