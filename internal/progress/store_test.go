package progress

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)}
}

func openTestStore(t *testing.T, backend *MemoryBackend, clock *fakeClock) *Store {
	t.Helper()
	return Open(context.Background(), backend, WithClock(clock.Now))
}

func seed(t *testing.T, backend *MemoryBackend, u UserProgress) {
	t.Helper()
	raw, err := json.Marshal(u)
	require.NoError(t, err)
	require.NoError(t, backend.Put(context.Background(), BlobKey, raw))
}

func TestLoadFirstRun(t *testing.T) {
	backend := NewMemoryBackend()
	s := openTestStore(t, backend, newClock())

	stats := s.Stats()
	assert.Equal(t, 1, stats.CurrentStreak, "opening the app counts as a study day")
	assert.Equal(t, 1, stats.LongestStreak)
	assert.Equal(t, "2026-10-18", lo.FromPtr(stats.LastStudyDate))
	assert.Empty(t, s.WrongWords())
	assert.NotNil(t, s.Snapshot().WrongSentences)
	assert.Equal(t, 1, backend.Puts())
	assert.False(t, s.Degraded())
}

func TestRecordAnswerCounters(t *testing.T) {
	clock := newClock()
	s := openTestStore(t, NewMemoryBackend(), clock)

	p := s.RecordAnswer("cat", true, false)
	assert.Equal(t, 1, p.ReviewCount)
	assert.Equal(t, 1, p.CorrectCount)
	assert.Equal(t, 1, p.MasteryLevel)
	require.NotNil(t, p.LastReviewed)
	assert.True(t, p.LastReviewed.Equal(clock.t))

	clock.Advance(time.Minute)
	p = s.RecordAnswer("cat", false, false)
	assert.Equal(t, 2, p.ReviewCount)
	assert.Equal(t, 1, p.WrongCount)
	assert.Equal(t, 0, p.MasteryLevel)
	assert.Len(t, p.ReviewDates, 2)

	assert.Equal(t, Stats{
		TotalReviewed: 2, TotalCorrect: 1, TotalWrong: 1,
		CurrentStreak: 1, LongestStreak: 1, LastStudyDate: lo.ToPtr("2026-10-18"),
	}, s.Stats())

	today := s.TodayStats()
	assert.Equal(t, DayStats{Reviewed: 2, Correct: 1, Wrong: 1}, today)
	assert.Equal(t, 50, today.Accuracy())
	assert.True(t, s.IsWrong("cat"))
}

func TestMasteryBounds(t *testing.T) {
	s := openTestStore(t, NewMemoryBackend(), newClock())

	answers := []bool{true, true, true, true, true, true, true, false, false, false, false, false, false, false, true}
	for i, correct := range answers {
		p := s.RecordAnswer("dog", correct, false)
		require.GreaterOrEqual(t, p.MasteryLevel, 0, "answer %d", i)
		require.LessOrEqual(t, p.MasteryLevel, MaxMastery, "answer %d", i)
	}
	assert.Equal(t, 1, s.Mastery("dog"))
	assert.Equal(t, 0, s.Mastery("never-seen"))
}

func TestWrongListIdempotent(t *testing.T) {
	s := openTestStore(t, NewMemoryBackend(), newClock())

	s.RecordAnswer("fish", false, false)
	s.RecordAnswer("fish", false, false)
	s.RecordAnswer("bird", false, false)
	assert.Equal(t, []string{"fish", "bird"}, s.WrongWords())

	s.MergeWrongWords([]string{"bird", "cat", "fish"})
	assert.Equal(t, []string{"fish", "bird", "cat"}, s.WrongWords())
}

func TestMarkForReviewKeepsCounters(t *testing.T) {
	s := openTestStore(t, NewMemoryBackend(), newClock())

	p := s.RecordAnswer("owl", true, true)
	assert.True(t, s.IsWrong("owl"))
	assert.Equal(t, 1, p.ReviewCount)
	assert.Equal(t, 1, p.CorrectCount)
	assert.Equal(t, 0, p.WrongCount, "marking is not a wrong answer")
	assert.Equal(t, 0, s.Stats().TotalWrong)
}

func TestUpdateStreak(t *testing.T) {
	tests := []struct {
		name        string
		last        string
		current     int
		longest     int
		wantCurrent int
		wantLongest int
	}{
		{"studied yesterday", "2026-10-17", 3, 5, 4, 5},
		{"new record", "2026-10-17", 5, 5, 6, 6},
		{"missed a day", "2026-10-16", 7, 9, 1, 9},
		{"long gap", "2025-01-01", 2, 2, 1, 2},
		{"already today", "2026-10-18", 3, 4, 3, 4},
		{"never studied", "", 0, 0, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := NewMemoryBackend()
			u := Default()
			u.Stats = Stats{LastStudyDate: lo.EmptyableToPtr(tt.last), CurrentStreak: tt.current, LongestStreak: tt.longest}
			seed(t, backend, u)

			s := openTestStore(t, backend, newClock())
			st := s.Stats()
			assert.Equal(t, tt.wantCurrent, st.CurrentStreak)
			assert.Equal(t, tt.wantLongest, st.LongestStreak)
			assert.Equal(t, "2026-10-18", lo.FromPtr(st.LastStudyDate))

			s.UpdateStreak()
			assert.Equal(t, tt.wantCurrent, s.Stats().CurrentStreak, "second call on the same day is a no-op")
		})
	}
}

func TestStreakAcrossDays(t *testing.T) {
	clock := newClock()
	s := openTestStore(t, NewMemoryBackend(), clock)

	clock.Advance(24 * time.Hour)
	s.RecordAnswer("cat", true, false)
	assert.Equal(t, 2, s.Stats().CurrentStreak)

	clock.Advance(72 * time.Hour)
	s.RecordAnswer("cat", true, false)
	assert.Equal(t, 1, s.Stats().CurrentStreak)
	assert.Equal(t, 2, s.Stats().LongestStreak)
	assert.Len(t, s.Snapshot().DailyStats, 2)
}

func TestFavorites(t *testing.T) {
	s := openTestStore(t, NewMemoryBackend(), newClock())

	assert.True(t, s.ToggleFavorite("w-zebra"))
	assert.True(t, s.ToggleFavorite("w-apple"))
	assert.True(t, s.ToggleFavorite("w-gone"))
	assert.True(t, s.ToggleFavorite("w-Mango"))
	assert.True(t, s.IsFavorite("w-apple"))
	assert.Equal(t, []string{"w-zebra", "w-apple", "w-gone", "w-Mango"}, s.Favorites())

	words := map[string]string{"w-zebra": "zebra", "w-apple": "apple", "w-Mango": "Mango"}
	sorted := s.SortedFavorites(func(id string) (string, bool) {
		w, ok := words[id]
		return w, ok
	})
	assert.Equal(t, []string{"w-apple", "w-Mango", "w-zebra"}, sorted)

	assert.False(t, s.ToggleFavorite("w-apple"))
	assert.False(t, s.IsFavorite("w-apple"))
}

func TestRemovalFlushesOnlyOnChange(t *testing.T) {
	backend := NewMemoryBackend()
	s := openTestStore(t, backend, newClock())
	s.RecordAnswer("cat", false, false)
	s.AddWrongSentence(WrongSentence{ID: "reading-001-d0"})
	before := backend.Puts()

	assert.False(t, s.RemoveFromWrongWords("dog"))
	assert.False(t, s.RemoveFromWrongSentences("nope"))
	assert.Equal(t, before, backend.Puts())

	assert.True(t, s.RemoveFromWrongWords("cat"))
	assert.True(t, s.RemoveFromWrongSentences("reading-001-d0"))
	assert.Equal(t, before+2, backend.Puts())
	assert.Empty(t, s.WrongWords())
	assert.Empty(t, s.WrongSentences())
}

func TestClear(t *testing.T) {
	s := openTestStore(t, NewMemoryBackend(), newClock())
	s.RecordAnswer("cat", false, false)
	s.AddWrongSentence(WrongSentence{ID: "s1"})

	s.ClearWrongWords()
	s.ClearWrongSentences()
	assert.Empty(t, s.WrongWords())
	assert.Empty(t, s.WrongSentences())
	assert.Equal(t, 1, s.Stats().TotalWrong, "history is kept")
}

func TestPruneInvalid(t *testing.T) {
	backend := NewMemoryBackend()
	s := openTestStore(t, backend, newClock())
	s.RecordAnswer("a", false, false)
	s.RecordAnswer("old", false, false)
	s.ToggleFavorite("old")
	s.ToggleFavorite("b")

	valid := map[string]struct{}{"a": {}, "b": {}}
	assert.Equal(t, 2, s.PruneInvalid(valid))
	assert.Equal(t, []string{"a"}, s.WrongWords())
	assert.Equal(t, []string{"b"}, s.Favorites())

	puts := backend.Puts()
	assert.Zero(t, s.PruneInvalid(valid))
	assert.Equal(t, puts, backend.Puts(), "no flush without a change")
}

func TestAddWrongSentence(t *testing.T) {
	clock := newClock()
	s := openTestStore(t, NewMemoryBackend(), clock)

	ws := WrongSentence{
		ID:             "reading-001-d2",
		ReadingID:      "reading-001",
		ReadingTitleCn: "我的新老师",
		English:        "I like apples.",
		Chinese:        "我喜欢苹果。",
		WrongCount:     7,
	}
	got := s.AddWrongSentence(ws)
	assert.Equal(t, 1, got.WrongCount)
	assert.Equal(t, "2026-10-18", got.LastWrongDate)

	clock.Advance(24 * time.Hour)
	got = s.AddWrongSentence(ws)
	assert.Equal(t, 2, got.WrongCount)
	assert.Equal(t, "2026-10-19", got.LastWrongDate)

	list := s.WrongSentences()
	require.Len(t, list, 1)
	assert.Equal(t, "I like apples.", list[0].English)
}

func populated(t *testing.T) (*Store, *MemoryBackend) {
	t.Helper()
	backend := NewMemoryBackend()
	s := openTestStore(t, backend, newClock())
	s.RecordAnswer("cat", true, false)
	s.RecordAnswer("dog", false, false)
	s.RecordAnswer("fish", true, true)
	s.ToggleFavorite("cat")
	s.AddWrongSentence(WrongSentence{ID: "r-d0", English: "Hi.", Chinese: "你好。"})
	return s, backend
}

func TestPersistenceRoundTrip(t *testing.T) {
	s, backend := populated(t)
	want := s.Snapshot()

	raw, err := json.Marshal(want)
	require.NoError(t, err)
	var got UserProgress
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, want, got)

	reopened := openTestStore(t, backend, newClock())
	assert.Equal(t, want, reopened.Snapshot())

	empty := Default()
	raw, err = json.Marshal(empty)
	require.NoError(t, err)
	got = UserProgress{}
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, empty, got)
}

func TestLoadLegacyBlob(t *testing.T) {
	backend := NewMemoryBackend()
	legacy := `{
		"wordProgress": {"grade5-upper-u1-w1": {"reviewCount": 2, "correctCount": 2, "wrongCount": 0, "masteryLevel": 9, "lastReviewed": null, "reviewDates": []}},
		"wrongWords": ["grade5-upper-u1-w2"],
		"favoriteWords": [],
		"stats": {"totalReviewed": 2, "totalCorrect": 2, "totalWrong": 0, "currentStreak": 1, "longestStreak": 1, "lastStudyDate": null},
		"dailyStats": {}
	}`
	require.NoError(t, backend.Put(context.Background(), BlobKey, []byte(legacy)))

	s := openTestStore(t, backend, newClock())
	assert.NotNil(t, s.WrongSentences())
	assert.Empty(t, s.WrongSentences())
	assert.Equal(t, []string{"grade5-upper-u1-w2"}, s.WrongWords())
	assert.Equal(t, MaxMastery, s.Mastery("grade5-upper-u1-w1"), "out-of-range mastery is clamped")
}

func TestDegradedPersistence(t *testing.T) {
	t.Run("corrupt blob", func(t *testing.T) {
		backend := NewMemoryBackend()
		require.NoError(t, backend.Put(context.Background(), BlobKey, []byte("{not json")))
		s := openTestStore(t, backend, newClock())
		assert.Equal(t, 0, s.Stats().TotalReviewed)
		assert.Equal(t, 1, s.Stats().CurrentStreak)
	})

	t.Run("read failure", func(t *testing.T) {
		backend := NewMemoryBackend()
		backend.GetErr = errors.New("disk gone")
		s := openTestStore(t, backend, newClock())
		assert.True(t, s.Degraded())
		assert.Empty(t, s.WrongWords())
	})

	t.Run("write failure", func(t *testing.T) {
		backend := NewMemoryBackend()
		backend.PutErr = errors.New("read-only")
		s := openTestStore(t, backend, newClock())
		p := s.RecordAnswer("cat", false, false)
		assert.Equal(t, 1, p.WrongCount, "state advances without durability")
		assert.True(t, s.IsWrong("cat"))
		assert.True(t, s.Degraded())
	})

	t.Run("no backend", func(t *testing.T) {
		s := Open(context.Background(), nil)
		s.RecordAnswer("cat", true, false)
		assert.False(t, s.Degraded())
	})
}

func TestReset(t *testing.T) {
	s, backend := populated(t)
	s.Reset()
	assert.Equal(t, Default(), s.Snapshot())

	reopened := New(backend)
	reopened.Load(context.Background())
	assert.Zero(t, reopened.Stats().TotalReviewed)
}

func TestExportImport(t *testing.T) {
	for _, format := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			src, _ := populated(t)
			var buf bytes.Buffer
			require.NoError(t, src.Export(&buf, format))

			dst := openTestStore(t, NewMemoryBackend(), newClock())
			require.NoError(t, dst.Import(&buf, format))
			assert.Equal(t, src.Snapshot(), dst.Snapshot())
		})
	}
}

func TestExportImportTOML(t *testing.T) {
	src, _ := populated(t)
	var buf bytes.Buffer
	require.NoError(t, src.Export(&buf, FormatTOML))

	dst := openTestStore(t, NewMemoryBackend(), newClock())
	require.NoError(t, dst.Import(&buf, FormatTOML))

	want, got := src.Snapshot(), dst.Snapshot()
	assert.Equal(t, want.WrongWords, got.WrongWords)
	assert.Equal(t, want.FavoriteWords, got.FavoriteWords)
	assert.Equal(t, want.WrongSentences, got.WrongSentences)
	assert.Equal(t, want.Stats, got.Stats)
	assert.Equal(t, want.DailyStats, got.DailyStats)
	require.Len(t, got.WordProgress, 3)
	for id, wp := range want.WordProgress {
		gp := got.WordProgress[id]
		assert.Equal(t, wp.MasteryLevel, gp.MasteryLevel, id)
		assert.Equal(t, wp.ReviewCount, gp.ReviewCount, id)
		require.NotNil(t, gp.LastReviewed, id)
		assert.True(t, wp.LastReviewed.Equal(*gp.LastReviewed), id)
	}
}

func TestImportRejectsGarbage(t *testing.T) {
	s, _ := populated(t)
	before := s.Snapshot()
	err := s.Import(bytes.NewBufferString("wordProgress: [1, 2"), FormatYAML)
	assert.Error(t, err)
	assert.Equal(t, before, s.Snapshot())
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("YML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)

	assert.Equal(t, FormatTOML, FormatFromPath("backup.toml"))
	assert.Equal(t, FormatJSON, FormatFromPath("backup"))
}

func TestLastStudyDateNullUntilFirstDay(t *testing.T) {
	raw, err := json.Marshal(Default())
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"lastStudyDate":null`)

	backend := NewMemoryBackend()
	seed(t, backend, Default())
	s := openTestStore(t, backend, newClock())
	stored, _, err := backend.Get(context.Background(), BlobKey)
	require.NoError(t, err)
	assert.Contains(t, string(stored), `"lastStudyDate":"2026-10-18"`)

	s.Reset()
	stored, _, err = backend.Get(context.Background(), BlobKey)
	require.NoError(t, err)
	assert.Contains(t, string(stored), `"lastStudyDate":null`)

	var back UserProgress
	require.NoError(t, json.Unmarshal(stored, &back))
	assert.Nil(t, back.Stats.LastStudyDate)
}
