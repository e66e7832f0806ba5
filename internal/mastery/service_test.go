package mastery

import (
	"context"
	"testing"

	"github.com/abhisek/wordiz/internal/content"
	"github.com/abhisek/wordiz/internal/progress"
)

func testService(t *testing.T) (*Service, *progress.Store) {
	t.Helper()
	c, err := content.New([]content.WordBook{{
		ID:   "b1",
		Name: "Book 1",
		Units: []content.Unit{
			{Unit: "Unit 1", Title: "Animals", Words: []content.WordItem{
				{ID: "b1-u1-w1", Word: "cat"},
				{ID: "b1-u1-w2", Word: "dog"},
				{ID: "b1-u1-w3", Word: "ant"},
			}},
			{Unit: "Unit 2", Words: []content.WordItem{
				{ID: "b1-u2-w1", Word: "red"},
			}},
			{Unit: "Unit 3"},
		},
	}}, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	p := progress.Open(context.Background(), progress.NewMemoryBackend())
	return NewService(c, p), p
}

func TestOverview(t *testing.T) {
	svc, p := testService(t)
	for i := 0; i < 4; i++ {
		p.RecordAnswer("b1-u1-w1", true, false)
	}
	p.RecordAnswer("b1-u1-w2", true, false)
	p.RecordAnswer("b1-u1-w2", true, false)
	p.RecordAnswer("b1-u2-w1", false, false)

	ov := svc.Overview()
	if ov.TotalWords != 4 || ov.Learned != 3 || ov.Mastered != 1 {
		t.Errorf("totals = %d/%d mastered %d", ov.Learned, ov.TotalWords, ov.Mastered)
	}
	if ov.Accuracy != 86 {
		t.Errorf("accuracy = %d, want 86", ov.Accuracy)
	}
	if ov.Today.Reviewed != 7 || ov.CurrentStreak != 1 {
		t.Errorf("today = %+v streak = %d", ov.Today, ov.CurrentStreak)
	}
	if ov.States[StateMastered] != 1 || ov.States[StateLearning] != 1 || ov.States[StateReview] != 1 {
		t.Errorf("states = %v", ov.States)
	}

	if len(ov.Units) != 2 {
		t.Fatalf("units = %+v, want empty unit skipped", ov.Units)
	}
	u := ov.Units[0]
	if u.Unit != "Unit 1" || u.Title != "Animals" || u.Learned != 2 || u.Total != 3 || u.Percent() != 67 {
		t.Errorf("unit 1 = %+v (%d%%)", u, u.Percent())
	}
	if got := ov.Units[1].Percent(); got != 100 {
		t.Errorf("unit 2 percent = %d", got)
	}
}

func TestUnitsUnknownBook(t *testing.T) {
	svc, _ := testService(t)
	if got := svc.Units("nope"); got != nil {
		t.Errorf("units = %v", got)
	}
	if got := svc.Units("Book 1"); len(got) != 2 {
		t.Errorf("units by name = %d, want 2", len(got))
	}
}

func TestWrongWordsAndFavorites(t *testing.T) {
	svc, p := testService(t)
	p.RecordAnswer("b1-u1-w2", false, false)
	p.MergeWrongWords([]string{"gone", "b1-u1-w1"})
	p.ToggleFavorite("b1-u1-w2")
	p.ToggleFavorite("b1-u1-w3")
	p.ToggleFavorite("b1-u1-w1")

	wrong := svc.WrongWords()
	if len(wrong) != 2 || wrong[0].Word.Word != "dog" || wrong[1].Word.Word != "cat" {
		t.Fatalf("wrong = %+v", wrong)
	}
	if !wrong[0].Reviewed || wrong[0].Progress.WrongCount != 1 || !wrong[0].Favorite || wrong[0].State.Label() != "待复习" {
		t.Errorf("dog = %+v", wrong[0])
	}
	if wrong[1].Reviewed {
		t.Error("cat was never reviewed")
	}

	var got []string
	for _, f := range svc.Favorites() {
		got = append(got, f.Word.Word)
	}
	if len(got) != 3 || got[0] != "ant" || got[1] != "cat" || got[2] != "dog" {
		t.Errorf("favorites = %v, want sorted by word", got)
	}
}

func TestFactsDriveFilters(t *testing.T) {
	svc, p := testService(t)
	p.RecordAnswer("b1-u1-w1", true, false)
	p.RecordAnswer("b1-u1-w1", true, false)
	p.RecordAnswer("b1-u1-w2", false, false)

	f, err := content.CompileFilter(`wrong || mastery >= 2`)
	if err != nil {
		t.Fatal(err)
	}
	words := svc.catalog.WordsIn("b1")
	got, err := f.Apply(svc.catalog, words, svc.Facts())
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].Word != "cat" || got[1].Word != "dog" {
		t.Errorf("filtered = %+v", got)
	}
}
