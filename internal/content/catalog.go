package content

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// WordsPerPage is the word list page size.
const WordsPerPage = 20

// Catalog is the immutable in-memory content tree. Build it with New or
// LoadDir; the zero value is empty and unusable by the engines.
type Catalog struct {
	Version  string
	Books    []WordBook
	Readings []ReadingArticle
	Speeches []SpeechArticle

	byID      map[string]wordRef
	readingBy map[string]int
}

type wordRef struct {
	book, unit, word int
}

// New indexes the given content. It assigns missing dialogue IDs and
// rejects catalogs without words or with duplicate word IDs.
func New(books []WordBook, readings []ReadingArticle, speeches []SpeechArticle) (*Catalog, error) {
	c := &Catalog{
		Books:     books,
		Readings:  readings,
		Speeches:  speeches,
		byID:      make(map[string]wordRef),
		readingBy: make(map[string]int, len(readings)),
	}

	if err := validateBooks(books); err != nil {
		return nil, err
	}
	for bi, b := range c.Books {
		for ui, u := range b.Units {
			for wi, w := range u.Words {
				c.byID[w.ID] = wordRef{bi, ui, wi}
			}
		}
	}
	if len(c.byID) == 0 {
		return nil, ErrEmptyCatalog
	}

	c.AssignDialogueIDs()
	for i, r := range c.Readings {
		c.readingBy[r.ID] = i
	}
	return c, nil
}

// AssignDialogueIDs gives every reading without an ID the form
// reading-NNN (its 1-based position, skipping IDs already taken) and every
// dialogue without an ID the form {readingId}-d{index}. It is idempotent.
func (c *Catalog) AssignDialogueIDs() {
	taken := make(map[string]bool, len(c.Readings))
	for _, r := range c.Readings {
		if r.ID != "" {
			taken[r.ID] = true
		}
	}
	n := 0
	for ri := range c.Readings {
		r := &c.Readings[ri]
		if r.ID == "" {
			n = max(n, ri)
			for {
				n++
				id := fmt.Sprintf("reading-%03d", n)
				if !taken[id] {
					r.ID, taken[id] = id, true
					break
				}
			}
		}
		for di := range r.Dialogues {
			if r.Dialogues[di].ID == "" {
				r.Dialogues[di].ID = fmt.Sprintf("%s-d%d", r.ID, di)
			}
		}
	}
}

// Book finds a book by ID or, failing that, by name.
func (c *Catalog) Book(key string) (WordBook, bool) {
	return lo.Find(c.Books, func(b WordBook) bool {
		return (b.ID != "" && b.ID == key) || b.Name == key
	})
}

// Units returns the units of a book in catalog order.
func (c *Catalog) Units(bookKey string) []Unit {
	b, ok := c.Book(bookKey)
	if !ok {
		return nil
	}
	return b.Units
}

// WordsIn returns the words of the named units in unit then word order.
// Catalog order wins over the order of units. With no units, every
// unit of the book is included.
func (c *Catalog) WordsIn(bookKey string, units ...string) []WordItem {
	b, ok := c.Book(bookKey)
	if !ok {
		return nil
	}
	var out []WordItem
	for _, u := range b.Units {
		if len(units) > 0 && !lo.Contains(units, u.Unit) {
			continue
		}
		out = append(out, u.Words...)
	}
	return out
}

// Word looks a word up by ID.
func (c *Catalog) Word(id string) (WordItem, bool) {
	ref, ok := c.byID[id]
	if !ok {
		return WordItem{}, false
	}
	return c.Books[ref.book].Units[ref.unit].Words[ref.word], true
}

// WordLocation returns where a word lives in the catalog.
func (c *Catalog) WordLocation(id string) (Source, bool) {
	ref, ok := c.byID[id]
	if !ok {
		return Source{}, false
	}
	b := c.Books[ref.book]
	u := b.Units[ref.unit]
	return Source{
		BookName:     b.Name,
		UnitName:     u.Unit,
		UnitTitle:    u.DisplayTitle(),
		UnitCategory: u.Category,
	}, true
}

// AllWordIDs returns the set of every word ID in the catalog.
func (c *Catalog) AllWordIDs() map[string]struct{} {
	ids := make(map[string]struct{}, len(c.byID))
	for id := range c.byID {
		ids[id] = struct{}{}
	}
	return ids
}

// WordCount returns the number of words in the catalog.
func (c *Catalog) WordCount() int {
	return len(c.byID)
}

// Reading looks a reading up by ID.
func (c *Catalog) Reading(id string) (ReadingArticle, bool) {
	i, ok := c.readingBy[id]
	if !ok {
		return ReadingArticle{}, false
	}
	return c.Readings[i], true
}

// ReadingBooks returns the distinct reading book names in catalog order.
func (c *Catalog) ReadingBooks() []string {
	return lo.Uniq(lo.FilterMap(c.Readings, func(r ReadingArticle, _ int) (string, bool) {
		return r.BookName, r.BookName != ""
	}))
}

// ReadingUnits returns the distinct unit names of a reading book.
func (c *Catalog) ReadingUnits(bookName string) []string {
	return lo.Uniq(lo.FilterMap(c.Readings, func(r ReadingArticle, _ int) (string, bool) {
		return r.UnitName, r.BookName == bookName && r.UnitName != ""
	}))
}

// SourcedDialogue is a dialogue together with the reading it came from.
type SourcedDialogue struct {
	Dialogue
	ReadingID      string
	ReadingTitleCn string
}

// DialoguesIn returns the dialogues of readings in the given book and,
// when unitName is not empty, unit. An empty bookName matches all books.
func (c *Catalog) DialoguesIn(bookName, unitName string) []SourcedDialogue {
	var out []SourcedDialogue
	for _, r := range c.Readings {
		if bookName != "" && r.BookName != bookName {
			continue
		}
		if unitName != "" && r.UnitName != unitName {
			continue
		}
		for _, d := range r.Dialogues {
			if strings.TrimSpace(d.Content) == "" {
				continue
			}
			out = append(out, SourcedDialogue{Dialogue: d, ReadingID: r.ID, ReadingTitleCn: r.TitleCn})
		}
	}
	return out
}

// SpeechesIn returns the listening articles of a book, or all of them
// for an empty name.
func (c *Catalog) SpeechesIn(bookName string) []SpeechArticle {
	if bookName == "" {
		return c.Speeches
	}
	return lo.Filter(c.Speeches, func(s SpeechArticle, _ int) bool {
		return s.BookName == bookName
	})
}
