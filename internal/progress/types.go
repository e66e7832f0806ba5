// Package progress owns the learner's persisted state: per-word mastery,
// the wrong-word and wrong-sentence lists, favorites, streaks and daily
// counters.
package progress

import (
	"slices"
	"time"
)

// BlobKey is the persistent-store key holding the serialized progress.
const BlobKey = "wordLearningProgress"

// MaxMastery is the upper bound of WordProgress.MasteryLevel.
const MaxMastery = 5

// DateLayout formats calendar dates used for streaks and daily stats.
const DateLayout = "2006-01-02"

// WordProgress tracks the review history of one word.
type WordProgress struct {
	ReviewCount  int         `json:"reviewCount" yaml:"reviewCount" toml:"reviewCount"`
	CorrectCount int         `json:"correctCount" yaml:"correctCount" toml:"correctCount"`
	WrongCount   int         `json:"wrongCount" yaml:"wrongCount" toml:"wrongCount"`
	MasteryLevel int         `json:"masteryLevel" yaml:"masteryLevel" toml:"masteryLevel"`
	LastReviewed *time.Time  `json:"lastReviewed" yaml:"lastReviewed" toml:"lastReviewed"`
	ReviewDates  []time.Time `json:"reviewDates" yaml:"reviewDates" toml:"reviewDates"`
}

func (p WordProgress) clone() WordProgress {
	if p.LastReviewed != nil {
		t := *p.LastReviewed
		p.LastReviewed = &t
	}
	p.ReviewDates = slices.Clone(p.ReviewDates)
	if p.ReviewDates == nil {
		p.ReviewDates = []time.Time{}
	}
	return p
}

// WrongSentence is a dialogue line the learner failed to reconstruct.
type WrongSentence struct {
	ID             string `json:"id" yaml:"id" toml:"id"`
	ReadingID      string `json:"readingId" yaml:"readingId" toml:"readingId"`
	ReadingTitleCn string `json:"readingTitleCn" yaml:"readingTitleCn" toml:"readingTitleCn"`
	English        string `json:"english" yaml:"english" toml:"english"`
	Chinese        string `json:"chinese" yaml:"chinese" toml:"chinese"`
	WrongCount     int    `json:"wrongCount" yaml:"wrongCount" toml:"wrongCount"`
	LastWrongDate  string `json:"lastWrongDate" yaml:"lastWrongDate" toml:"lastWrongDate"`
}

// Stats are the learner's lifetime totals.
type Stats struct {
	TotalReviewed int     `json:"totalReviewed" yaml:"totalReviewed" toml:"totalReviewed"`
	TotalCorrect  int     `json:"totalCorrect" yaml:"totalCorrect" toml:"totalCorrect"`
	TotalWrong    int     `json:"totalWrong" yaml:"totalWrong" toml:"totalWrong"`
	CurrentStreak int     `json:"currentStreak" yaml:"currentStreak" toml:"currentStreak"`
	LongestStreak int     `json:"longestStreak" yaml:"longestStreak" toml:"longestStreak"`
	LastStudyDate *string `json:"lastStudyDate" yaml:"lastStudyDate" toml:"lastStudyDate,omitempty"` // nil until the first study day
}

// Accuracy returns the lifetime percentage of correct reviews.
func (s Stats) Accuracy() int {
	return percent(s.TotalCorrect, s.TotalReviewed)
}

// DayStats counts the reviews of one calendar day.
type DayStats struct {
	Reviewed int `json:"reviewed" yaml:"reviewed" toml:"reviewed"`
	Correct  int `json:"correct" yaml:"correct" toml:"correct"`
	Wrong    int `json:"wrong" yaml:"wrong" toml:"wrong"`
}

// Accuracy returns the percentage of correct reviews that day.
func (d DayStats) Accuracy() int {
	return percent(d.Correct, d.Reviewed)
}

// UserProgress is the whole persisted learner state.
type UserProgress struct {
	WordProgress   map[string]WordProgress `json:"wordProgress" yaml:"wordProgress" toml:"wordProgress"`
	WrongWords     []string                `json:"wrongWords" yaml:"wrongWords" toml:"wrongWords"`
	WrongSentences []WrongSentence         `json:"wrongSentences" yaml:"wrongSentences" toml:"wrongSentences"`
	FavoriteWords  []string                `json:"favoriteWords" yaml:"favoriteWords" toml:"favoriteWords"`
	Stats          Stats                   `json:"stats" yaml:"stats" toml:"stats"`
	DailyStats     map[string]DayStats     `json:"dailyStats" yaml:"dailyStats" toml:"dailyStats"`
}

// Default returns the zeroed progress of a first run.
func Default() UserProgress {
	return UserProgress{
		WordProgress:   map[string]WordProgress{},
		WrongWords:     []string{},
		WrongSentences: []WrongSentence{},
		FavoriteWords:  []string{},
		DailyStats:     map[string]DayStats{},
	}
}

// normalize fills missing collections, which older blobs may omit, and
// clamps values an edited file could push out of range.
func (u *UserProgress) normalize() {
	if u.WordProgress == nil {
		u.WordProgress = map[string]WordProgress{}
	}
	if u.WrongWords == nil {
		u.WrongWords = []string{}
	}
	if u.WrongSentences == nil {
		u.WrongSentences = []WrongSentence{}
	}
	if u.FavoriteWords == nil {
		u.FavoriteWords = []string{}
	}
	if u.DailyStats == nil {
		u.DailyStats = map[string]DayStats{}
	}
	for id, p := range u.WordProgress {
		p.MasteryLevel = min(max(p.MasteryLevel, 0), MaxMastery)
		p.ReviewCount = max(p.ReviewCount, 0)
		p.CorrectCount = max(p.CorrectCount, 0)
		p.WrongCount = max(p.WrongCount, 0)
		if p.ReviewDates == nil {
			p.ReviewDates = []time.Time{}
		}
		u.WordProgress[id] = p
	}
	for i := range u.WrongSentences {
		u.WrongSentences[i].WrongCount = max(u.WrongSentences[i].WrongCount, 1)
	}
}

// clone returns a deep copy.
func (u UserProgress) clone() UserProgress {
	out := UserProgress{
		WordProgress:   make(map[string]WordProgress, len(u.WordProgress)),
		WrongWords:     append([]string{}, u.WrongWords...),
		WrongSentences: append([]WrongSentence{}, u.WrongSentences...),
		FavoriteWords:  append([]string{}, u.FavoriteWords...),
		Stats:          u.Stats,
		DailyStats:     make(map[string]DayStats, len(u.DailyStats)),
	}
	for id, p := range u.WordProgress {
		out.WordProgress[id] = p.clone()
	}
	for d, s := range u.DailyStats {
		out.DailyStats[d] = s
	}
	return out
}

func percent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return int(float64(part)/float64(whole)*100 + 0.5)
}
