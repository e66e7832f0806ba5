// Package history lists finished practice sessions from the event store.
package history

import (
	"context"
	"fmt"
	"time"

	"charm.land/bubbles/v2/table"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordiz/internal/router"
	"github.com/abhisek/wordiz/internal/screen"
	"github.com/abhisek/wordiz/internal/screens/practice"
	"github.com/abhisek/wordiz/internal/session"
	"github.com/abhisek/wordiz/internal/store"
	"github.com/abhisek/wordiz/internal/ui/layout"
	"github.com/abhisek/wordiz/internal/ui/theme"
)

const maxSessions = 50

// filters cycles with Tab; "" is every kind.
var filters = []string{"", string(session.KindFlashcard), string(session.KindDictation), string(session.KindSentence)}

var columns = []table.Column{
	{Title: "时间", Width: 12},
	{Title: "类型", Width: 10},
	{Title: "题数", Width: 5},
	{Title: "正确率", Width: 7},
	{Title: "用时", Width: 8},
}

// tableWidth is the column widths plus one cell of padding each side.
var tableWidth = func() int {
	w := 0
	for _, c := range columns {
		w += c.Width + 2
	}
	return w
}()

type loadedMsg struct {
	filter   string
	sessions []store.SessionEvent
	err      error
}

type HistoryScreen struct {
	events   store.EventRepo
	filter   int
	sessions []store.SessionEvent
	table    table.Model
	loaded   bool
	err      error
}

var (
	_ screen.Screen          = (*HistoryScreen)(nil)
	_ screen.KeyHintProvider = (*HistoryScreen)(nil)
)

func New(events store.EventRepo) *HistoryScreen {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Foreground(theme.TextDim).
		BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).BorderForeground(theme.Border)
	styles.Selected = styles.Selected.Foreground(theme.BgDark).Background(theme.ArcadeYellow)
	return &HistoryScreen{
		events: events,
		table:  table.New(table.WithColumns(columns), table.WithWidth(tableWidth), table.WithFocused(true), table.WithStyles(styles)),
	}
}

func (s *HistoryScreen) Init() tea.Cmd { return s.load() }

func (s *HistoryScreen) Title() string { return "练习记录" }

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "选择"},
		{Key: "Tab", Description: "筛选"},
		{Key: "Esc", Description: "返回"},
	}
}

func (s *HistoryScreen) load() tea.Cmd {
	repo, kind := s.events, filters[s.filter]
	return func() tea.Msg {
		if repo == nil {
			return loadedMsg{filter: kind}
		}
		evs, err := repo.QuerySessions(context.Background(), store.QueryOpts{Limit: maxSessions, Kind: kind})
		return loadedMsg{filter: kind, sessions: evs, err: err}
	}
}

func row(ev store.SessionEvent) table.Row {
	return table.Row{
		ev.Timestamp.Local().Format("01-02 15:04"),
		practice.KindName(ev.Kind),
		fmt.Sprint(ev.Total),
		fmt.Sprintf("%d%%", session.Accuracy(ev.Correct, ev.Correct+ev.Wrong)),
		session.FormatElapsed(time.Duration(ev.DurationSecs) * time.Second),
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.filter != filters[s.filter] {
			return s, nil
		}
		s.loaded, s.err, s.sessions = true, msg.err, msg.sessions
		rows := make([]table.Row, len(msg.sessions))
		for i, ev := range msg.sessions {
			rows[i] = row(ev)
		}
		s.table.SetRows(rows)
		s.table.SetCursor(0)
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "tab":
			s.filter = (s.filter + 1) % len(filters)
			s.loaded = false
			return s, s.load()
		}
	}
	var cmd tea.Cmd
	s.table, cmd = s.table.Update(msg)
	return s, cmd
}

func filterName(kind string) string {
	if kind == "" {
		return "全部"
	}
	return practice.KindName(kind)
}

func (s *HistoryScreen) detail() string {
	i := s.table.Cursor()
	if i < 0 || i >= len(s.sessions) {
		return ""
	}
	ev := s.sessions[i]
	return fmt.Sprintf("正确 %d  错误 %d  未作答 %d", ev.Correct, ev.Wrong, max(ev.Total-ev.Correct-ev.Wrong, 0))
}

func (s *HistoryScreen) View(width, height int) string {
	center := func(style lipgloss.Style, text string) string {
		return style.Width(width).Align(lipgloss.Center).Render(text)
	}
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	head := "\n" + center(dim, "筛选: "+filterName(filters[s.filter])) + "\n\n"

	switch {
	case s.err != nil:
		return head + center(lipgloss.NewStyle().Foreground(theme.Error), "读取记录失败: "+s.err.Error())
	case !s.loaded:
		return head + center(dim, "正在读取...")
	case len(s.sessions) == 0:
		return head + center(dim.Italic(true), "还没有练习记录，快去练习吧！")
	}

	s.table.SetHeight(max(height-lipgloss.Height(head)-3, 3))
	return head +
		lipgloss.PlaceHorizontal(width, lipgloss.Center, s.table.View()) + "\n\n" +
		center(dim, s.detail())
}
