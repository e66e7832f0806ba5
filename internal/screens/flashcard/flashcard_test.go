package flashcard

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/wordiz/internal/router"
	"github.com/abhisek/wordiz/internal/screens/screentest"
	"github.com/abhisek/wordiz/internal/screens/summary"
	"github.com/abhisek/wordiz/internal/session"
)

func startRun(t *testing.T) (*RunScreen, *SetupScreen) {
	t.Helper()
	deps, _ := screentest.Deps(t)
	setup := NewSetup(deps)

	setup.Update(screentest.Special(tea.KeyTab))
	setup.Update(screentest.Special(tea.KeyTab))
	setup.Update(tea.KeyPressMsg{Code: tea.KeySpace, Text: " "})

	_, cmd := setup.Update(screentest.Special(tea.KeyEnter))
	push, ok := screentest.Msg(cmd).(router.PushScreenMsg)
	if !ok {
		t.Fatalf("enter = %T, want PushScreenMsg (err %q)", screentest.Msg(cmd), setup.errMsg)
	}
	run, ok := push.Screen.(*RunScreen)
	if !ok {
		t.Fatalf("pushed %T, want *RunScreen", push.Screen)
	}
	return run, setup
}

func TestSetupRequiresUnits(t *testing.T) {
	deps, _ := screentest.Deps(t)
	s := NewSetup(deps)

	_, cmd := s.Update(screentest.Special(tea.KeyEnter))
	if cmd != nil {
		t.Fatal("expected no navigation without units")
	}
	if !strings.Contains(s.View(100, 30), "请至少选择一个单元") {
		t.Error("expected validation message in view")
	}
}

func TestSetupSelection(t *testing.T) {
	deps, _ := screentest.Deps(t)
	s := NewSetup(deps)

	s.Update(screentest.Special(tea.KeyTab))
	s.Update(screentest.Special(tea.KeyRight))
	s.Update(screentest.Special(tea.KeyTab))
	s.Update(screentest.Key('a'))

	sel := s.Selection()
	if sel.BookID != "pets" {
		t.Errorf("book = %q, want pets", sel.BookID)
	}
	if sel.Mode != session.ModeZhToEn {
		t.Errorf("mode = %q, want %q", sel.Mode, session.ModeZhToEn)
	}
	if len(sel.Units) != 2 {
		t.Errorf("units = %v, want both units", sel.Units)
	}
}

func TestRunAllKnown(t *testing.T) {
	run, _ := startRun(t)

	var last tea.Msg
	for i := 0; i < 3; i++ {
		run.Update(tea.KeyPressMsg{Code: tea.KeySpace, Text: " "})
		if !run.revealed {
			t.Fatalf("card %d not revealed", i)
		}
		_, cmd := run.Update(screentest.Key('1'))
		last = screentest.Msg(cmd)
	}

	replace, ok := last.(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("last msg = %T, want ReplaceScreenMsg", last)
	}
	if _, ok := replace.Screen.(*summary.SummaryScreen); !ok {
		t.Fatalf("replaced with %T, want summary", replace.Screen)
	}
	if !strings.Contains(replace.Screen.View(100, 30), "100%") {
		t.Error("expected 100% accuracy on the result screen")
	}
	if got := run.deps.Progress.Stats().TotalCorrect; got != 3 {
		t.Errorf("total correct = %d, want 3", got)
	}
}

func TestRunMarksNeedRevealFirst(t *testing.T) {
	run, _ := startRun(t)

	run.Update(screentest.Key('2'))
	if run.deps.Progress.Stats().TotalReviewed != 0 {
		t.Error("marking before reveal should be ignored")
	}
}

func TestRunMarkForReview(t *testing.T) {
	run, _ := startRun(t)
	q, _ := run.engine.Current()

	run.Update(screentest.Special(tea.KeyEnter))
	run.Update(screentest.Key('3'))

	wrong := run.deps.Progress.WrongWords()
	if len(wrong) != 1 || wrong[0] != q.WordID {
		t.Errorf("wrong words = %v, want [%s]", wrong, q.WordID)
	}
	if run.last == nil || run.last.Correct {
		t.Errorf("last outcome = %+v, want wrong", run.last)
	}
}

func TestRunEscapeConfirms(t *testing.T) {
	run, _ := startRun(t)

	run.Update(screentest.Special(tea.KeyEscape))
	if !run.confirmQuit {
		t.Fatal("expected quit confirmation")
	}
	run.Update(screentest.Key('n'))
	if run.confirmQuit {
		t.Fatal("n should cancel the confirmation")
	}

	run.Update(screentest.Special(tea.KeyEscape))
	_, cmd := run.Update(screentest.Key('y'))
	if _, ok := screentest.Msg(cmd).(router.PopScreenMsg); !ok {
		t.Error("confirming should pop the run screen")
	}
	if run.engine.Phase() != session.PhaseSetup {
		t.Errorf("phase = %v, want setup after exit", run.engine.Phase())
	}
}

func TestRunSpeaksOnDemand(t *testing.T) {
	deps, sp := screentest.Deps(t)
	eng := session.NewFlashcard(deps.Catalog, deps.Progress, deps.Engine()...)
	if err := eng.Start(session.Selection{BookID: "pets", Units: []string{"Unit 2"}, Mode: session.ModeZhToEn}); err != nil {
		t.Fatalf("start: %v", err)
	}
	run := NewRun(deps, eng)
	before := len(sp.Spoken)

	run.Update(screentest.Key('s'))
	if len(sp.Spoken) != before+1 || sp.Spoken[len(sp.Spoken)-1] != "bird" {
		t.Errorf("spoken = %v, want bird appended", sp.Spoken)
	}
	if !strings.Contains(run.View(100, 30), "鸟") {
		t.Error("zh-to-en card should show the meaning")
	}
}
