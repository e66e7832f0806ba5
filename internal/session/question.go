package session

import (
	"fmt"

	"github.com/abhisek/wordiz/internal/content"
	"github.com/abhisek/wordiz/internal/progress"
)

// Mode selects the flashcard question direction.
type Mode string

const (
	ModeEnToZh Mode = "en-to-zh" // show the English word, recall the meaning
	ModeZhToEn Mode = "zh-to-en" // show the meaning, recall the word
	ModeMixed  Mode = "mixed"    // pick per question
)

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeEnToZh, ModeZhToEn, ModeMixed:
		return m, nil
	}
	return "", fmt.Errorf("%w %q", ErrInvalidMode, s)
}

// Label returns the side shown to the learner: 英文 or 中文.
func (m Mode) Label() string {
	if m == ModeEnToZh {
		return "英文"
	}
	return "中文"
}

// Catalog is the read-only content the engines draw questions from.
// *content.Catalog satisfies it.
type Catalog interface {
	WordsIn(bookKey string, units ...string) []content.WordItem
	Word(id string) (content.WordItem, bool)
	WordLocation(id string) (content.Source, bool)
}

// Progress is the part of the progress store the word engines write
// through. *progress.Store satisfies it.
type Progress interface {
	RecordAnswer(wordID string, correct, markForReview bool) progress.WordProgress
	RemoveFromWrongWords(wordID string) bool
	MergeWrongWords(ids []string)
	WrongWords() []string
}

// Question is one flashcard. Answer always carries the whole word so the
// revealed side can show everything whatever the direction.
type Question struct {
	ID     string
	WordID string
	Type   Mode // ModeEnToZh or ModeZhToEn
	Text   string
	Answer content.WordItem
	Source content.Source
}

// NewQuestion builds the question for w at position index.
func NewQuestion(index int, w content.WordItem, src content.Source, typ Mode) Question {
	text := w.Meaning
	if typ == ModeEnToZh {
		text = w.Word
	}
	return Question{
		ID:     fmt.Sprintf("q-%d", index),
		WordID: w.ID,
		Type:   typ,
		Text:   text,
		Answer: w,
		Source: src,
	}
}

// ResolveWords looks ids up in the catalog, keeping the order of ids and
// dropping ids the catalog no longer has.
func ResolveWords(c Catalog, ids []string) []content.WordItem {
	var out []content.WordItem
	for _, id := range ids {
		if w, ok := c.Word(id); ok {
			out = append(out, w)
		}
	}
	return out
}
