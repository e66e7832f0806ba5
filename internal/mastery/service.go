package mastery

import (
	"sort"

	"github.com/samber/lo"

	"github.com/abhisek/wordiz/internal/content"
	"github.com/abhisek/wordiz/internal/progress"
)

// Snapshotter provides the learner state to aggregate. *progress.Store
// satisfies it.
type Snapshotter interface {
	Snapshot() progress.UserProgress
	TodayStats() progress.DayStats
}

// UnitProgress is how many words of one unit have been reviewed at
// least once.
type UnitProgress struct {
	BookID   string
	BookName string
	Unit     string
	Title    string
	Learned  int
	Total    int
}

// Percent returns Learned as a rounded percentage of Total.
func (u UnitProgress) Percent() int {
	if u.Total == 0 {
		return 0
	}
	return (u.Learned*200 + u.Total) / (u.Total * 2)
}

// Overview is the progress page.
type Overview struct {
	TotalWords    int
	Learned       int
	Mastered      int // words at level 4 or above
	Accuracy      int // lifetime percent
	CurrentStreak int
	LongestStreak int
	Today         progress.DayStats
	States        map[MasteryState]int // over reviewed words in the catalog
	Units         []UnitProgress
}

// WordStatus joins a catalog word with the learner's record of it.
type WordStatus struct {
	Word     content.WordItem
	Source   content.Source
	Progress progress.WordProgress
	Reviewed bool
	State    MasteryState
	Wrong    bool
	Favorite bool
}

// Service computes display statistics from the catalog and a progress
// snapshot. It never mutates progress.
type Service struct {
	catalog  *content.Catalog
	progress Snapshotter
}

// NewService creates a mastery service.
func NewService(c *content.Catalog, p Snapshotter) *Service {
	return &Service{catalog: c, progress: p}
}

// Overview aggregates the whole catalog. Per-unit figures follow catalog
// order.
func (s *Service) Overview() Overview {
	snap := s.progress.Snapshot()
	ov := Overview{
		Accuracy:      snap.Stats.Accuracy(),
		CurrentStreak: snap.Stats.CurrentStreak,
		LongestStreak: snap.Stats.LongestStreak,
		Today:         s.progress.TodayStats(),
		States:        map[MasteryState]int{},
	}
	for _, wp := range snap.WordProgress {
		if wp.MasteryLevel >= MasteredLevel {
			ov.Mastered++
		}
	}
	if s.catalog == nil {
		return ov
	}
	ov.Units = unitProgress(s.catalog.Books, snap)
	for _, u := range ov.Units {
		ov.TotalWords += u.Total
		ov.Learned += u.Learned
	}
	for id, wp := range snap.WordProgress {
		if _, ok := s.catalog.Word(id); ok && wp.ReviewCount > 0 {
			ov.States[StateFor(wp.MasteryLevel)]++
		}
	}
	return ov
}

// Units returns per-unit progress for one book.
func (s *Service) Units(bookKey string) []UnitProgress {
	b, ok := s.catalog.Book(bookKey)
	if !ok {
		return nil
	}
	return unitProgress([]content.WordBook{b}, s.progress.Snapshot())
}

func unitProgress(books []content.WordBook, snap progress.UserProgress) []UnitProgress {
	var out []UnitProgress
	for _, b := range books {
		for _, u := range b.Units {
			if len(u.Words) == 0 {
				continue
			}
			learned := lo.CountBy(u.Words, func(w content.WordItem) bool {
				return snap.WordProgress[w.ID].ReviewCount > 0
			})
			out = append(out, UnitProgress{
				BookID:   b.Key(),
				BookName: b.Name,
				Unit:     u.Unit,
				Title:    u.Title,
				Learned:  learned,
				Total:    len(u.Words),
			})
		}
	}
	return out
}

// Status returns the joined record of one word.
func (s *Service) Status(id string) (WordStatus, bool) {
	return s.status(s.progress.Snapshot(), id)
}

func (s *Service) status(snap progress.UserProgress, id string) (WordStatus, bool) {
	w, ok := s.catalog.Word(id)
	if !ok {
		return WordStatus{}, false
	}
	src, _ := s.catalog.WordLocation(id)
	wp, reviewed := snap.WordProgress[id]
	return WordStatus{
		Word:     w,
		Source:   src,
		Progress: wp,
		Reviewed: reviewed && wp.ReviewCount > 0,
		State:    StateFor(wp.MasteryLevel),
		Wrong:    lo.Contains(snap.WrongWords, id),
		Favorite: lo.Contains(snap.FavoriteWords, id),
	}, true
}

// WrongWords lists the wrong book in the order words were added. IDs no
// longer in the catalog are skipped.
func (s *Service) WrongWords() []WordStatus {
	snap := s.progress.Snapshot()
	return s.statuses(snap, snap.WrongWords)
}

// Favorites lists favorite words sorted by spelling.
func (s *Service) Favorites() []WordStatus {
	snap := s.progress.Snapshot()
	out := s.statuses(snap, snap.FavoriteWords)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Word.Word < out[j].Word.Word })
	return out
}

func (s *Service) statuses(snap progress.UserProgress, ids []string) []WordStatus {
	var out []WordStatus
	for _, id := range ids {
		if ws, ok := s.status(snap, id); ok {
			out = append(out, ws)
		}
	}
	return out
}

// Facts resolves learner facts for word filters.
func (s *Service) Facts() content.FactsFunc {
	snap := s.progress.Snapshot()
	wrong := lo.Associate(snap.WrongWords, func(id string) (string, bool) { return id, true })
	fav := lo.Associate(snap.FavoriteWords, func(id string) (string, bool) { return id, true })
	return func(id string) content.WordFacts {
		wp := snap.WordProgress[id]
		return content.WordFacts{
			Mastery:  wp.MasteryLevel,
			Reviews:  wp.ReviewCount,
			Wrong:    wrong[id],
			Favorite: fav[id],
		}
	}
}
