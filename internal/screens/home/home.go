package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/wordiz/internal/router"
	"github.com/abhisek/wordiz/internal/screen"
	"github.com/abhisek/wordiz/internal/screens/dictation"
	"github.com/abhisek/wordiz/internal/screens/favorites"
	"github.com/abhisek/wordiz/internal/screens/flashcard"
	"github.com/abhisek/wordiz/internal/screens/history"
	"github.com/abhisek/wordiz/internal/screens/notice"
	"github.com/abhisek/wordiz/internal/screens/overview"
	"github.com/abhisek/wordiz/internal/screens/sentence"
	"github.com/abhisek/wordiz/internal/screens/wordlist"
	"github.com/abhisek/wordiz/internal/screens/wrongbook"
	"github.com/abhisek/wordiz/internal/ui/components"
)

const (
	// busyDay is the number of words reviewed today that cheers the mascot up.
	busyDay = 20
	// wrongPile is the wrong-book size that worries the mascot.
	wrongPile = 10
)

type homeStats struct {
	today    int
	accuracy int
	streak   int
	wrong    int
}

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	deps     screen.Deps
	menu     components.Menu
	disabled map[int]bool
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen. Practice entries are disabled when no
// content is loaded.
func New(deps screen.Deps) *HomeScreen {
	push := func(build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			s := build()
			return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
		}
	}
	noWords := deps.Catalog == nil || len(deps.Catalog.Books) == 0
	noReadings := deps.Catalog == nil || len(deps.Catalog.ReadingBooks()) == 0

	items := []components.MenuItem{
		{Label: "单词卡片", Disabled: noWords, Action: push(func() screen.Screen { return flashcard.NewSetup(deps) })},
		{Label: "听写练习", Disabled: noWords, Action: push(func() screen.Screen { return dictation.NewSetup(deps) })},
		{Label: "句子练习", Disabled: noReadings, Action: push(func() screen.Screen { return sentence.NewSetup(deps) })},
		{Label: "单词列表", Disabled: noWords, Action: push(func() screen.Screen { return wordlist.New(deps) })},
		{Label: "错题本", Action: push(func() screen.Screen { return wrongbook.New(deps) })},
		{Label: "我的收藏", Action: push(func() screen.Screen { return favorites.New(deps) })},
		{Label: "学习进度", Action: push(func() screen.Screen { return overview.New(deps) })},
		{Label: "练习记录", Action: push(func() screen.Screen {
			if deps.Events == nil {
				return notice.New("练习记录", "练习记录需要本地数据库。")
			}
			return history.New(deps.Events)
		})},
		{Label: "退出", Action: func() tea.Cmd { return tea.Quit }},
	}

	h := &HomeScreen{deps: deps, menu: components.NewMenu(items), disabled: make(map[int]bool)}
	for i, it := range items {
		h.disabled[i] = it.Disabled
	}
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) stats() homeStats {
	if h.deps.Progress == nil {
		return homeStats{}
	}
	today := h.deps.Progress.TodayStats()
	return homeStats{
		today:    today.Reviewed,
		accuracy: today.Accuracy(),
		streak:   h.deps.Progress.Stats().CurrentStreak,
		wrong:    len(h.deps.Progress.WrongWords()) + len(h.deps.Progress.WrongSentences()),
	}
}

func (h *HomeScreen) View(width, height int) string {
	// height excludes the app header and footer
	compact := height+8 < 30 || width < 100
	cw := components.ContentWidth(width)
	st := h.stats()

	sections := []string{renderBanner(cw, compact)}
	if !compact {
		sections = append(sections, centered(cw, Mascot(moodFor(st))))
	}
	if h.disabled[0] {
		sections = append(sections, renderEmptyBanner(cw))
	}
	sections = append(sections,
		renderStatsBar(st, cw, compact),
		renderMenu(h.menu.Labels(), h.menu.Selected, h.disabled, cw, compact),
	)
	return components.Cabinet(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "首页"
}
