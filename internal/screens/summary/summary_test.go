package summary

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/wordiz/internal/content"
	"github.com/abhisek/wordiz/internal/router"
	"github.com/abhisek/wordiz/internal/session"
)

type words map[string]content.WordItem

func (w words) WordsIn(string, ...string) []content.WordItem { return nil }
func (w words) Word(id string) (content.WordItem, bool) {
	it, ok := w[id]
	return it, ok
}
func (w words) WordLocation(string) (content.Source, bool) { return content.Source{}, false }

var testWords = words{
	"b-1-w1": {ID: "b-1-w1", Word: "cat", Meaning: "猫"},
	"b-1-w2": {ID: "b-1-w2", Word: "dog", Meaning: "狗"},
}

func TestViewShowsStats(t *testing.T) {
	s := New(session.Summary{
		Kind:         session.KindFlashcard,
		Total:        3,
		Correct:      2,
		Wrong:        1,
		Accuracy:     67,
		Elapsed:      75 * time.Second,
		WrongWordIDs: []string{"b-1-w2", "gone"},
	}, testWords)

	view := s.View(100, 30)
	for _, want := range []string{"67%", "题目: 3", "正确: 2", "错误: 1", "1:15", "dog", "狗"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Contains(view, "gone") {
		t.Error("unknown word id should be dropped")
	}
}

func TestDictationListsMissed(t *testing.T) {
	s := New(session.Summary{
		Kind:     session.KindDictation,
		Total:    2,
		Correct:  1,
		Wrong:    3,
		Skipped:  1,
		Accuracy: 25,
		Missed:   []string{"b-1-w1"},
	}, testWords)

	view := s.View(100, 30)
	if !strings.Contains(view, "cat") {
		t.Error("expected missed word in view")
	}
	if !strings.Contains(view, "跳过: 1") {
		t.Error("expected skipped count in view")
	}
}

func TestHeadline(t *testing.T) {
	tests := []struct {
		accuracy int
		want     string
	}{
		{100, "太棒了，全部正确！"},
		{85, "做得很好！"},
		{60, "继续加油！"},
		{10, "多练习几次会更好！"},
	}
	for _, tt := range tests {
		if got := Headline(tt.accuracy); got != tt.want {
			t.Errorf("Headline(%d) = %q, want %q", tt.accuracy, got, tt.want)
		}
	}
}

func TestEnterPops(t *testing.T) {
	s := New(session.Summary{}, nil)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestHomeKeyPopsToRoot(t *testing.T) {
	s := New(session.Summary{}, nil)
	_, cmd := s.Update(tea.KeyPressMsg{Code: 'h', Text: "h"})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(router.PopToRootMsg); !ok {
		t.Error("expected PopToRootMsg")
	}
}
