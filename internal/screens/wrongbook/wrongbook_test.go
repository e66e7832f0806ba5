package wrongbook

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/wordiz/internal/progress"
	"github.com/abhisek/wordiz/internal/router"
	"github.com/abhisek/wordiz/internal/screen"
	dictscreen "github.com/abhisek/wordiz/internal/screens/dictation"
	"github.com/abhisek/wordiz/internal/screens/flashcard"
	"github.com/abhisek/wordiz/internal/screens/screentest"
	sentscreen "github.com/abhisek/wordiz/internal/screens/sentence"
)

func seeded(t *testing.T) (screen.Deps, *Screen) {
	t.Helper()
	deps, _ := screentest.Deps(t)
	deps.Progress.RecordAnswer("pets-u1-w1", false, false)
	deps.Progress.RecordAnswer("pets-u1-w3", false, false)
	deps.Progress.AddWrongSentence(progress.WrongSentence{
		ID: "reading-001-d0", ReadingID: "reading-001", ReadingTitleCn: "在家",
		English: "I like cats.", Chinese: "我喜欢猫。",
	})
	return deps, New(deps)
}

func pushed(t *testing.T, cmd tea.Cmd) screen.Screen {
	t.Helper()
	msg, ok := screentest.Msg(cmd).(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected a pushed screen, got %T", screentest.Msg(cmd))
	}
	return msg.Screen
}

func TestTabsListBothKinds(t *testing.T) {
	_, s := seeded(t)
	view := s.View(100, 24)
	if !strings.Contains(view, "错词 2") || !strings.Contains(view, "错句 1") {
		t.Errorf("tab counts missing:\n%s", view)
	}
	if !strings.Contains(view, "fish") {
		t.Error("words tab should list fish")
	}

	s.Update(screentest.Special(tea.KeyTab))
	if !strings.Contains(s.View(100, 24), "I like cats.") {
		t.Error("sentences tab should list the sentence")
	}
}

func TestRemoveWord(t *testing.T) {
	deps, s := seeded(t)
	s.Update(screentest.Key('d'))
	if deps.Progress.IsWrong("pets-u1-w1") {
		t.Error("d should remove the highlighted word")
	}
	if len(s.words) != 1 {
		t.Errorf("words = %d, want 1", len(s.words))
	}
}

func TestClearAsksFirst(t *testing.T) {
	deps, s := seeded(t)
	s.Update(screentest.Special(tea.KeyTab))
	s.Update(screentest.Key('c'))
	if !strings.Contains(s.View(80, 24), "确定清空全部错句吗") {
		t.Fatal("c should ask for confirmation")
	}
	s.Update(screentest.Key('n'))
	if len(deps.Progress.WrongSentences()) != 1 {
		t.Fatal("n must keep the list")
	}

	s.Update(screentest.Key('c'))
	s.Update(screentest.Key('y'))
	if len(deps.Progress.WrongSentences()) != 0 {
		t.Error("y should clear wrong sentences")
	}
	if len(deps.Progress.WrongWords()) != 2 {
		t.Error("clearing sentences must not touch wrong words")
	}
}

func TestReviewStartsMatchingSession(t *testing.T) {
	_, s := seeded(t)

	_, cmd := s.Update(screentest.Key('r'))
	if _, ok := pushed(t, cmd).(*flashcard.RunScreen); !ok {
		t.Error("r on words should start a flashcard review")
	}

	_, cmd = s.Update(screentest.Key('t'))
	if _, ok := pushed(t, cmd).(*dictscreen.RunScreen); !ok {
		t.Error("t on words should start a dictation review")
	}

	s.Update(screentest.Special(tea.KeyTab))
	_, cmd = s.Update(screentest.Key('r'))
	if _, ok := pushed(t, cmd).(*sentscreen.RunScreen); !ok {
		t.Error("r on sentences should start a sentence review")
	}
}

func TestReviewEmpty(t *testing.T) {
	deps, _ := screentest.Deps(t)
	s := New(deps)
	_, cmd := s.Update(screentest.Key('r'))
	if cmd != nil {
		t.Error("empty wrong book should not start a review")
	}
	if !strings.Contains(s.View(80, 24), "错题本是空的") {
		t.Error("expected empty hint")
	}
}
