package home

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/wordiz/internal/router"
	"github.com/abhisek/wordiz/internal/screen"
	"github.com/abhisek/wordiz/internal/screens/flashcard"
	"github.com/abhisek/wordiz/internal/screens/notice"
	"github.com/abhisek/wordiz/internal/screens/screentest"
	"github.com/abhisek/wordiz/internal/screens/wrongbook"
)

func selectItem(t *testing.T, h *HomeScreen, downs int) screen.Screen {
	t.Helper()
	for i := 0; i < downs; i++ {
		h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter returned no command")
	}
	msg, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	return msg.Screen
}

func TestMenuPushesScreens(t *testing.T) {
	deps, _ := screentest.Deps(t)

	if _, ok := selectItem(t, New(deps), 0).(*flashcard.SetupScreen); !ok {
		t.Error("first item should open flashcard setup")
	}
	if _, ok := selectItem(t, New(deps), 4).(*wrongbook.Screen); !ok {
		t.Error("fifth item should open the wrong book")
	}
	if _, ok := selectItem(t, New(deps), 7).(*notice.Screen); !ok {
		t.Error("history without a database should show a notice")
	}
}

func TestExitQuits(t *testing.T) {
	deps, _ := screentest.Deps(t)
	h := New(deps)
	h.menu.Selected = len(h.menu.Items) - 1
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("exit returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("exit should quit")
	}
}

func TestEmptyCatalogDisablesPractice(t *testing.T) {
	deps, _ := screentest.Deps(t)
	deps.Catalog = nil
	h := New(deps)

	if h.menu.Selected != 4 {
		t.Errorf("selected = %d, want first enabled item 4", h.menu.Selected)
	}
	if !strings.Contains(h.View(120, 40), "词库为空") {
		t.Error("expected empty catalog banner")
	}
}

func TestStatsAndMascot(t *testing.T) {
	deps, _ := screentest.Deps(t)
	deps.Progress.RecordAnswer("pets-u1-w1", false, false)
	h := New(deps)

	st := h.stats()
	if st.today != 1 || st.wrong != 1 || st.streak != 1 {
		t.Errorf("stats = %+v", st)
	}
	if moodFor(st) != MoodIdle {
		t.Error("one wrong word should not alarm the mascot")
	}
	if moodFor(homeStats{wrong: wrongPile}) != MoodAlert {
		t.Error("a full wrong book should alarm the mascot")
	}
	if moodFor(homeStats{today: busyDay}) != MoodHappy {
		t.Error("a busy day should cheer the mascot")
	}
	if !strings.Contains(h.View(120, 40), "今日 1 词") {
		t.Error("stats bar should show today's count")
	}
}

func TestDigitOpensItem(t *testing.T) {
	deps, _ := screentest.Deps(t)
	_, cmd := New(deps).Update(tea.KeyPressMsg{Code: '5', Text: "5"})
	if cmd == nil {
		t.Fatal("digit returned no command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	if _, ok := push.Screen.(*wrongbook.Screen); !ok {
		t.Errorf("5 opened %T, want the wrong book", push.Screen)
	}
}

func TestMascotMoods(t *testing.T) {
	if !strings.Contains(Mascot(MoodHappy), "★ ★") {
		t.Error("happy mascot should have star eyes")
	}
	if !strings.Contains(Mascot(MoodAlert), "!") {
		t.Error("alert mascot should show an exclamation mark")
	}
	if Mascot(Mood(42)) != Mascot(MoodIdle) {
		t.Error("unknown mood should fall back to idle")
	}
}
