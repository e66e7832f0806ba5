// Package favorites lists the learner's favorite words.
package favorites

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
	"github.com/abhisek/wordiz/internal/ui/components"
	"github.com/abhisek/wordiz/internal/ui/layout"
	"github.com/abhisek/wordiz/internal/ui/theme"
)

// Screen shows favorite words sorted by spelling, with a detail card
// for the highlighted one.
type Screen struct {
	deps     screen.Deps
	stats    *mastery.Service
	words    []mastery.WordStatus
	selected int
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates the favorites screen.
func New(deps screen.Deps) *Screen {
	s := &Screen{deps: deps, stats: deps.Stats()}
	s.reload()
	return s
}

func (s *Screen) reload() {
	s.words = s.stats.Favorites()
	s.selected = min(s.selected, max(len(s.words)-1, 0))
}

func (s *Screen) Init() tea.Cmd { return nil }

func (s *Screen) Title() string { return "我的收藏" }

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "选择"},
		{Key: "Enter", Description: "朗读"},
		{Key: "D", Description: "取消收藏"},
		{Key: "Esc", Description: "返回"},
	}
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
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(s.words)-1 {
			s.selected++
		}
	case "enter", "s":
		if s.selected < len(s.words) {
			s.deps.Speak(s.words[s.selected].Word.Word)
		}
	case "d", "f":
		if s.selected < len(s.words) {
			s.deps.Progress.ToggleFavorite(s.words[s.selected].Word.ID)
			s.reload()
		}
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	if len(s.words) == 0 {
		return practice.Centered(width, lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true),
			"\n\n还没有收藏的单词。在单词列表中按 F 收藏。")
	}

	var b strings.Builder
	b.WriteString("\n")
	rows := max(height-12, 3)
	start := max(0, s.selected-rows+1)
	end := min(len(s.words), start+rows)
	for i := start; i < end; i++ {
		ws := s.words[i]
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			prefix = "▸ "
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(prefix + theme.Favorite.Render("♥ ") + style.Render(fmt.Sprintf("%-16s", ws.Word.Word)) + " " + ws.Word.Meaning)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		components.ArcadeCard(detail(s.words[s.selected]), components.ContentWidth(width))))
	return b.String()
}

func detail(ws mastery.WordStatus) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	lines := []string{
		lipgloss.NewStyle().Bold(true).Foreground(theme.Text).Render(ws.Word.Word) + "  " + dim.Render(ws.Word.Phonetic),
		ws.Word.Meaning,
	}
	if ws.Word.Example != "" {
		lines = append(lines, "", ws.Word.Example, dim.Render(ws.Word.Translation))
	}
	lines = append(lines, "",
		dim.Render(fmt.Sprintf("%s · %s  ", ws.Source.BookName, ws.Source.UnitName))+
			lipgloss.NewStyle().Foreground(theme.LevelColor(ws.Progress.MasteryLevel)).Render(mastery.Stars(ws.Progress.MasteryLevel, progress.MaxMastery)))
	return strings.Join(lines, "\n")
}
