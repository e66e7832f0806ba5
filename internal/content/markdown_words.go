package content

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

var (
	unitHeading = regexp.MustCompile(`^##\s*(Unit\s*\d+)`)
	unitPrefix  = regexp.MustCompile(`^Unit\s*`)
	titleLine   = regexp.MustCompile(`^Title:\s*(.+?)\s*Category:\s*(.+)$`)
	exampleLine = regexp.MustCompile(`^(.+?)\s*[(（]([^)）]+)[)）]\s*$`)
	phonetic    = regexp.MustCompile(`/([^/]+)/`)
)

// ParseWordsMarkdown converts a WORDS.md document into word books.
//
//	# 英语五年级上册单词
//	## Unit 1
//	Title:What's he like? Category:人物描述
//	* old /əʊld/ 老的
//	  - 例句：He is old. (他老了。)
//	  - 记忆：o 像一个圆圆的老爷爷
//
// Problems are collected in the report rather than aborting the parse.
func ParseWordsMarkdown(src string) ([]WordBook, *CheckReport) {
	rep := &CheckReport{}
	var (
		books    []WordBook
		book     *WordBook
		unit     *Unit
		word     *WordItem
		wordLine int
		unitLine = map[*Unit]int{}
		examples int
		tips     int
		units    int
		words    int
	)

	flushWord := func() {
		if word == nil || unit == nil {
			word = nil
			return
		}
		if word.Word == "" {
			rep.errorf(wordLine, "empty word")
		} else if word.Meaning == "" {
			rep.warnf(wordLine, "word %q has no meaning", word.Word)
		}
		unit.Words = append(unit.Words, *word)
		word = nil
	}
	flushBook := func() {
		flushWord()
		if book == nil {
			return
		}
		if len(book.Units) == 0 {
			rep.Warnings = append(rep.Warnings, fmt.Sprintf("book %q has no units", book.Name))
		} else {
			books = append(books, *book)
		}
		book, unit = nil, nil
	}

	for i, raw := range splitLines(src) {
		n := i + 1
		line := strings.TrimSpace(raw)
		if strings.HasPrefix(line, "<!--") || strings.HasPrefix(line, "```") {
			continue
		}

		switch {
		case strings.HasPrefix(raw, "# "):
			flushBook()
			name := strings.TrimSpace(strings.ReplaceAll(strings.TrimPrefix(line, "# "), "单词", ""))
			book = &WordBook{ID: bookIDFor(name), Name: name}

		case strings.HasPrefix(raw, "## "):
			flushWord()
			m := unitHeading.FindStringSubmatch(line)
			if m == nil || book == nil {
				continue
			}
			book.Units = append(book.Units, Unit{Unit: m[1]})
			unit = &book.Units[len(book.Units)-1]
			unitLine[unit] = n
			units++

		case strings.HasPrefix(raw, "Title:"):
			if unit == nil {
				continue
			}
			m := titleLine.FindStringSubmatch(line)
			if m == nil {
				rep.warnf(n, `Title/Category should read "Title:<title> Category:<category>"`)
				continue
			}
			unit.Title = strings.TrimSpace(m[1])
			unit.Category = strings.TrimSpace(m[2])

		case strings.HasPrefix(raw, "  - "):
			if word == nil {
				continue
			}
			detail := strings.TrimSpace(strings.TrimPrefix(line, "-"))
			switch {
			case strings.HasPrefix(detail, "例句："):
				ex := strings.TrimSpace(strings.TrimPrefix(detail, "例句："))
				if m := exampleLine.FindStringSubmatch(ex); m != nil {
					word.Example = strings.TrimSpace(m[1])
					word.Translation = strings.TrimSpace(m[2])
				} else {
					word.Example = ex
				}
				if word.Example != "" {
					examples++
				}
			case strings.HasPrefix(detail, "记忆："):
				word.MemoryTip = strings.TrimSpace(strings.TrimPrefix(detail, "记忆："))
				tips++
			}

		case strings.HasPrefix(raw, "* "):
			flushWord()
			if unit == nil {
				rep.warnf(n, "word outside of a unit")
				continue
			}
			w, ok := parseWordLine(strings.TrimSpace(line[2:]))
			if !ok {
				rep.warnf(n, "cannot parse word line")
				continue
			}
			w.ID = fmt.Sprintf("%s-%s-w%d", book.Key(), unitPrefix.ReplaceAllString(unit.Unit, "u"), len(unit.Words)+1)
			w.Category = unit.Category
			word, wordLine = &w, n
			words++
		}
	}
	flushBook()

	for bi := range books {
		for ui := range books[bi].Units {
			u := &books[bi].Units[ui]
			// Category lines may follow the first words of a unit.
			for wi := range u.Words {
				if u.Words[wi].Category == "" {
					u.Words[wi].Category = u.Category
				}
			}
			if u.Title == "" {
				rep.Warnings = append(rep.Warnings, fmt.Sprintf("%s %s has no Title line", books[bi].Name, u.Unit))
			}
			if len(u.Words) == 0 {
				rep.Warnings = append(rep.Warnings, fmt.Sprintf("%s %s has no words", books[bi].Name, u.Unit))
			}
		}
	}

	rep.stat("books", len(books))
	rep.stat("units", units)
	rep.stat("words", words)
	rep.stat("examples", examples)
	rep.stat("memory tips", tips)
	return books, rep
}

// parseWordLine splits "word /phonetic/ meaning". Without a phonetic the
// leading run of non-CJK tokens is the word and the rest its meaning, so
// phrases such as "ice cream 冰淇淋" keep both English tokens.
func parseWordLine(s string) (WordItem, bool) {
	if s == "" {
		return WordItem{}, false
	}
	if m := phonetic.FindStringSubmatch(s); m != nil {
		parts := strings.SplitN(s, "/", 4)
		if len(parts) >= 3 {
			return WordItem{
				Word:     strings.TrimSpace(parts[0]),
				Phonetic: "/" + m[1] + "/",
				Meaning:  strings.TrimSpace(strings.Join(parts[2:], "/")),
			}, true
		}
	}

	fields := strings.Fields(s)
	i := 0
	for i < len(fields) && !hasHan(fields[i]) {
		i++
	}
	if i == 0 {
		return WordItem{}, false
	}
	return WordItem{
		Word:    strings.Join(fields[:i], " "),
		Meaning: strings.Join(fields[i:], " "),
	}, true
}

func hasHan(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) || unicode.In(r, unicode.Hiragana, unicode.Katakana) || (r >= 0xFF00 && r <= 0xFFEF) || (r >= 0x3000 && r <= 0x303F) {
			return true
		}
	}
	return false
}

func splitLines(src string) []string {
	return strings.Split(strings.ReplaceAll(src, "\r\n", "\n"), "\n")
}
