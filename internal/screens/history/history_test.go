package history

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/wordiz/internal/store"
)

func openRepo(t *testing.T) store.EventRepo {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "wordiz.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st.EventRepo()
}

func load(t *testing.T, s *HistoryScreen, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a load command")
	}
	s.Update(cmd())
}

func TestEmptyHistory(t *testing.T) {
	s := New(openRepo(t))
	load(t, s, s.Init())
	if !strings.Contains(s.View(80, 24), "还没有练习记录") {
		t.Error("expected empty-state message")
	}
}

func TestListAndFilter(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()
	for _, ev := range []store.SessionEventData{
		{SessionID: "a", Kind: "flashcard", Total: 10, Correct: 8, Wrong: 2, DurationSecs: 95},
		{SessionID: "b", Kind: "dictation", Total: 5, Correct: 5, DurationSecs: 30},
	} {
		if err := repo.AppendSession(ctx, ev); err != nil {
			t.Fatal(err)
		}
	}

	s := New(repo)
	load(t, s, s.Init())
	if len(s.sessions) != 2 {
		t.Fatalf("sessions = %d, want 2", len(s.sessions))
	}
	view := s.View(100, 24)
	if !strings.Contains(view, "听写练习") || !strings.Contains(view, "单词卡片") {
		t.Errorf("view should list both kinds:\n%s", view)
	}

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	load(t, s, cmd)
	if len(s.sessions) != 1 || s.sessions[0].Kind != "flashcard" {
		t.Fatalf("filtered = %+v, want the flashcard session", s.sessions)
	}

	if !strings.Contains(s.View(100, 24), "正确 8  错误 2") {
		t.Error("selected session details should be shown")
	}
}

func TestStaleLoadIgnored(t *testing.T) {
	s := New(nil)
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	s.Update(loadedMsg{filter: "", sessions: []store.SessionEvent{{}}})
	if s.loaded {
		t.Error("a result for another filter should be dropped")
	}
}

func TestCursorMovesDetail(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()
	for _, ev := range []store.SessionEventData{
		{SessionID: "old", Kind: "sentence", Total: 4, Correct: 1, Wrong: 3},
		{SessionID: "new", Kind: "flashcard", Total: 6, Correct: 6},
	} {
		if err := repo.AppendSession(ctx, ev); err != nil {
			t.Fatal(err)
		}
	}
	s := New(repo)
	load(t, s, s.Init())

	if !strings.Contains(s.View(100, 24), "正确 6  错误 0") {
		t.Error("newest session should be selected first")
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if !strings.Contains(s.View(100, 24), "正确 1  错误 3") {
		t.Error("down should select the older session")
	}
}
