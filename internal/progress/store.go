package progress

import (
	"context"
	"encoding/json"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

// flushTimeout bounds a single write to the backend.
const flushTimeout = 5 * time.Second

// Backend is the durable key-value store progress is persisted to.
// store.BlobRepo satisfies it.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
}

// Store is the sole mutator of UserProgress. Every mutation is written
// through to the backend before the method returns. Persistence failures
// are logged and remembered, never returned: the in-memory state keeps
// advancing so a session is not blocked.
//
// Store is not safe for concurrent use; callers serialize access the way
// a single UI event loop does.
type Store struct {
	backend Backend
	now     func() time.Time
	log     logrus.FieldLogger

	data     UserProgress
	degraded bool
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the time source used for review timestamps, streaks and
// daily stats. Calendar dates use the location of the returned times.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger used to report degraded persistence.
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Store) { s.log = l }
}

// New returns a store holding default progress. Call Load to read the
// persisted state. A nil backend keeps progress in memory only.
func New(backend Backend, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		now:     time.Now,
		data:    Default(),
	}
	for _, o := range opts {
		o(s)
	}
	if s.log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		s.log = l
	}
	return s
}

// Open is New followed by Load.
func Open(ctx context.Context, backend Backend, opts ...Option) *Store {
	s := New(backend, opts...)
	s.Load(ctx)
	return s
}

// Load replaces the in-memory state with the persisted blob, falling back
// to defaults when it is missing or unreadable, then refreshes the streak
// against the current date.
func (s *Store) Load(ctx context.Context) {
	s.data = Default()
	if s.backend != nil {
		raw, ok, err := s.backend.Get(ctx, BlobKey)
		switch {
		case err != nil:
			s.degrade(err, "read progress")
		case ok:
			var u UserProgress
			if err := json.Unmarshal(raw, &u); err != nil {
				s.log.WithError(err).Warn("progress blob is corrupt, starting from defaults")
			} else {
				u.normalize()
				s.data = u
			}
		}
	}
	s.UpdateStreak()
}

// Degraded reports whether a read or write to the backend has failed since
// the store was created.
func (s *Store) Degraded() bool { return s.degraded }

// MarkDegraded flags progress as not durable, for callers that could not
// open a backend at all.
func (s *Store) MarkDegraded(err error) {
	s.degrade(err, "open backend")
}

func (s *Store) degrade(err error, op string) {
	s.degraded = true
	s.log.WithError(err).WithField("key", BlobKey).Warn(op + " failed, progress is not durable")
}

func (s *Store) flush() {
	if s.backend == nil {
		return
	}
	raw, err := json.Marshal(s.data)
	if err != nil {
		s.degrade(err, "encode progress")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()
	if err := s.backend.Put(ctx, BlobKey, raw); err != nil {
		s.degrade(err, "write progress")
	}
}

func (s *Store) today() string {
	return s.now().Format(DateLayout)
}

// RecordAnswer applies one review of wordID and returns the word's
// updated progress. markForReview puts the word on the wrong list even
// when the answer was correct, without counting it as wrong.
func (s *Store) RecordAnswer(wordID string, correct, markForReview bool) WordProgress {
	now := s.now()
	p, ok := s.data.WordProgress[wordID]
	if !ok {
		p = WordProgress{ReviewDates: []time.Time{}}
	}

	p.ReviewCount++
	p.LastReviewed = &now
	p.ReviewDates = append(p.ReviewDates, now)

	if correct {
		p.CorrectCount++
		p.MasteryLevel = min(MaxMastery, p.MasteryLevel+1)
		s.data.Stats.TotalCorrect++
	} else {
		p.WrongCount++
		p.MasteryLevel = max(0, p.MasteryLevel-1)
		s.data.Stats.TotalWrong++
		s.addWrongWord(wordID)
	}
	if markForReview {
		s.addWrongWord(wordID)
	}
	s.data.WordProgress[wordID] = p

	s.data.Stats.TotalReviewed++
	day := s.data.DailyStats[s.today()]
	day.Reviewed++
	if correct {
		day.Correct++
	} else {
		day.Wrong++
	}
	s.data.DailyStats[s.today()] = day

	s.updateStreak()
	s.flush()
	return p.clone()
}

func (s *Store) addWrongWord(id string) bool {
	if lo.Contains(s.data.WrongWords, id) {
		return false
	}
	s.data.WrongWords = append(s.data.WrongWords, id)
	return true
}

// UpdateStreak counts today as a study day: studying on consecutive days
// extends the current streak, a gap restarts it at 1.
func (s *Store) UpdateStreak() {
	s.updateStreak()
	s.flush()
}

func (s *Store) updateStreak() {
	now := s.now()
	today := now.Format(DateLayout)
	yesterday := now.AddDate(0, 0, -1).Format(DateLayout)

	st := &s.data.Stats
	switch lo.FromPtr(st.LastStudyDate) {
	case today:
		return
	case yesterday:
		st.CurrentStreak++
	default:
		st.CurrentStreak = 1
	}
	st.LongestStreak = max(st.LongestStreak, st.CurrentStreak)
	st.LastStudyDate = &today
}

// ToggleFavorite adds or removes wordID from the favorites and reports
// whether it is now a favorite.
func (s *Store) ToggleFavorite(wordID string) bool {
	fav := !lo.Contains(s.data.FavoriteWords, wordID)
	if fav {
		s.data.FavoriteWords = append(s.data.FavoriteWords, wordID)
	} else {
		s.data.FavoriteWords = lo.Without(s.data.FavoriteWords, wordID)
	}
	s.flush()
	return fav
}

// RemoveFromWrongWords drops wordID from the wrong list and reports
// whether it was there.
func (s *Store) RemoveFromWrongWords(wordID string) bool {
	if !lo.Contains(s.data.WrongWords, wordID) {
		return false
	}
	s.data.WrongWords = lo.Without(s.data.WrongWords, wordID)
	s.flush()
	return true
}

// RemoveFromWrongSentences drops the wrong sentence with id and reports
// whether it was there.
func (s *Store) RemoveFromWrongSentences(id string) bool {
	i := slices.IndexFunc(s.data.WrongSentences, func(ws WrongSentence) bool { return ws.ID == id })
	if i < 0 {
		return false
	}
	s.data.WrongSentences = slices.Delete(s.data.WrongSentences, i, i+1)
	s.flush()
	return true
}

// ClearWrongWords empties the wrong list.
func (s *Store) ClearWrongWords() {
	s.data.WrongWords = []string{}
	s.flush()
}

// ClearWrongSentences empties the wrong-sentence list.
func (s *Store) ClearWrongSentences() {
	s.data.WrongSentences = []WrongSentence{}
	s.flush()
}

// PruneInvalid keeps only wrong and favorite words present in valid and
// returns how many entries were dropped. Run it when the catalog changed
// shape.
func (s *Store) PruneInvalid(valid map[string]struct{}) int {
	keep := func(id string, _ int) bool {
		_, ok := valid[id]
		return ok
	}
	wrong := lo.Filter(s.data.WrongWords, keep)
	favs := lo.Filter(s.data.FavoriteWords, keep)
	removed := len(s.data.WrongWords) - len(wrong) + len(s.data.FavoriteWords) - len(favs)
	if removed == 0 {
		return 0
	}
	s.data.WrongWords, s.data.FavoriteWords = wrong, favs
	s.flush()
	s.log.WithField("removed", removed).Info("pruned progress entries for words no longer in the catalog")
	return removed
}

// AddWrongSentence records a failed sentence. A sentence already on the
// list has its counter incremented instead of being duplicated. The
// stored entry is returned.
func (s *Store) AddWrongSentence(ws WrongSentence) WrongSentence {
	today := s.today()
	defer s.flush()
	for i := range s.data.WrongSentences {
		if s.data.WrongSentences[i].ID == ws.ID {
			s.data.WrongSentences[i].WrongCount++
			s.data.WrongSentences[i].LastWrongDate = today
			return s.data.WrongSentences[i]
		}
	}
	ws.WrongCount = 1
	ws.LastWrongDate = today
	s.data.WrongSentences = append(s.data.WrongSentences, ws)
	return ws
}

// MergeWrongWords appends the ids not yet on the wrong list, keeping
// their order.
func (s *Store) MergeWrongWords(ids []string) {
	changed := false
	for _, id := range ids {
		if s.addWrongWord(id) {
			changed = true
		}
	}
	if changed {
		s.flush()
	}
}

// Reset replaces all progress with defaults.
func (s *Store) Reset() {
	s.data = Default()
	s.flush()
}

// Replace swaps in externally supplied progress, such as an imported
// backup.
func (s *Store) Replace(u UserProgress) {
	u = u.clone()
	u.normalize()
	s.data = u
	s.flush()
}

// Snapshot returns a deep copy of the current progress.
func (s *Store) Snapshot() UserProgress {
	return s.data.clone()
}

// WordProgress returns the progress of one word.
func (s *Store) WordProgress(wordID string) (WordProgress, bool) {
	p, ok := s.data.WordProgress[wordID]
	if !ok {
		return WordProgress{}, false
	}
	return p.clone(), true
}

// Mastery returns the mastery level of a word, 0 when never reviewed.
func (s *Store) Mastery(wordID string) int {
	return s.data.WordProgress[wordID].MasteryLevel
}

// IsWrong reports whether wordID is on the wrong list.
func (s *Store) IsWrong(wordID string) bool {
	return lo.Contains(s.data.WrongWords, wordID)
}

// IsFavorite reports whether wordID is a favorite.
func (s *Store) IsFavorite(wordID string) bool {
	return lo.Contains(s.data.FavoriteWords, wordID)
}

// WrongWords returns the wrong list in insertion order.
func (s *Store) WrongWords() []string {
	return slices.Clone(s.data.WrongWords)
}

// WrongSentences returns the wrong-sentence list in insertion order.
func (s *Store) WrongSentences() []WrongSentence {
	return slices.Clone(s.data.WrongSentences)
}

// Favorites returns the favorite word ids in insertion order.
func (s *Store) Favorites() []string {
	return slices.Clone(s.data.FavoriteWords)
}

// SortedFavorites returns the favorites that resolve to a word, ordered by
// the word text. Favorites that no longer resolve are left out.
func (s *Store) SortedFavorites(word func(id string) (string, bool)) []string {
	type fav struct{ id, word string }
	favs := lo.FilterMap(s.data.FavoriteWords, func(id string, _ int) (fav, bool) {
		w, ok := word(id)
		return fav{id, w}, ok
	})
	sort.SliceStable(favs, func(i, j int) bool {
		return strings.ToLower(favs[i].word) < strings.ToLower(favs[j].word)
	})
	return lo.Map(favs, func(f fav, _ int) string { return f.id })
}

// Stats returns the lifetime totals.
func (s *Store) Stats() Stats {
	return s.data.Stats
}

// TodayStats returns today's counters.
func (s *Store) TodayStats() DayStats {
	return s.data.DailyStats[s.today()]
}
