// Package content holds the read-only word, reading and listening
// catalog and the tools that build it from JSON or Markdown sources.
package content

// WordItem is a single vocabulary entry. IDs are unique across books and
// follow the {book}-{unit}-w{n} pattern.
type WordItem struct {
	ID          string `json:"id"`
	Word        string `json:"word"`
	Phonetic    string `json:"phonetic"`
	Meaning     string `json:"meaning"`
	Example     string `json:"example"`
	Translation string `json:"translation"`
	MemoryTip   string `json:"memoryTip"`
	Category    string `json:"category"`
}

// Unit is an ordered list of words inside a book.
type Unit struct {
	Unit     string     `json:"unit"`
	Title    string     `json:"title"`
	Category string     `json:"category"`
	Words    []WordItem `json:"words"`
}

// DisplayTitle returns the unit title, falling back to its label.
func (u Unit) DisplayTitle() string {
	if u.Title != "" {
		return u.Title
	}
	return u.Unit
}

// WordBook is a named collection of units.
type WordBook struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Units []Unit `json:"units"`
}

// Key returns the book ID, or its name for books without one.
func (b WordBook) Key() string {
	if b.ID != "" {
		return b.ID
	}
	return b.Name
}

// WordCount returns the number of words across all units.
func (b WordBook) WordCount() int {
	n := 0
	for _, u := range b.Units {
		n += len(u.Words)
	}
	return n
}

// Source locates a word inside the catalog.
type Source struct {
	BookName     string `json:"bookName"`
	UnitName     string `json:"unitName"`
	UnitTitle    string `json:"unitTitle"`
	UnitCategory string `json:"unitCategory"`
}

// KeyPattern is a sentence pattern highlighted by a reading.
type KeyPattern struct {
	Pattern string `json:"pattern"`
	Meaning string `json:"meaning"`
}

// Dialogue is one line of a reading and the unit of sentence practice.
type Dialogue struct {
	ID        string `json:"id,omitempty"`
	Speaker   string `json:"speaker"`
	SpeakerCn string `json:"speakerCn"`
	Content   string `json:"content"`
	ContentCn string `json:"contentCn"`
}

// ReadingArticle is a short dialogue-based reading.
type ReadingArticle struct {
	ID                  string       `json:"id"`
	BookName            string       `json:"bookName"`
	UnitName            string       `json:"unitName"`
	Title               string       `json:"title"`
	TitleCn             string       `json:"titleCn"`
	Scene               string       `json:"scene"`
	KeySentencePatterns []KeyPattern `json:"keySentencePatterns"`
	KnowledgePoints     []string     `json:"knowledgePoints"`
	Dialogues           []Dialogue   `json:"dialogues"`
}

// Chapter is a titled section of a listening article.
type Chapter struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// SpeechArticle is a listening article.
type SpeechArticle struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	BookName string    `json:"bookName"`
	Summary  string    `json:"summary"`
	Chapters []Chapter `json:"chapters"`
}
