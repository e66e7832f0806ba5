package content

import (
	"fmt"
	"strings"
)

const summaryHeading = "文章概要"

// ParseListenMarkdown converts a LISTEN.md document into listening
// articles. Each "# " heading starts a book holding one article; "## "
// headings start chapters, except "## 文章概要" which holds the summary.
// Books without chapters are dropped with a warning.
func ParseListenMarkdown(src string) ([]SpeechArticle, *CheckReport) {
	rep := &CheckReport{}
	var (
		out       []SpeechArticle
		cur       *SpeechArticle
		startLine int
		body      []string
		inSummary bool
		chapter   *Chapter
		books     int
		chapters  int
		summaries int
	)

	flushSection := func() {
		text := strings.TrimSpace(strings.Join(body, "\n"))
		body = nil
		switch {
		case inSummary && cur != nil:
			cur.Summary = text
		case chapter != nil:
			chapter.Content = text
			cur.Chapters = append(cur.Chapters, *chapter)
			chapter = nil
		}
		inSummary = false
	}
	finish := func() {
		flushSection()
		if cur == nil {
			return
		}
		for _, ch := range cur.Chapters {
			if ch.Content == "" {
				rep.warnf(startLine, "%s: chapter %q is empty", cur.BookName, ch.Title)
			}
		}
		switch {
		case len(cur.Chapters) == 0:
			rep.warnf(startLine, "%s has no chapters and was skipped", cur.BookName)
		default:
			if cur.Summary != "" {
				summaries++
			}
			chapters += len(cur.Chapters)
			cur.ID = fmt.Sprintf("speech-%03d", len(out)+1)
			out = append(out, *cur)
		}
		cur = nil
	}

	for i, raw := range splitLines(src) {
		line := strings.TrimRight(raw, " \t")
		switch {
		case strings.HasPrefix(line, "# "):
			finish()
			name := strings.TrimSpace(strings.TrimPrefix(line, "# "))
			cur = &SpeechArticle{Title: name, BookName: name}
			startLine = i + 1
			books++
		case strings.HasPrefix(line, "## "):
			if cur == nil {
				continue
			}
			flushSection()
			title := strings.TrimSpace(strings.TrimPrefix(line, "## "))
			if title == summaryHeading {
				inSummary = true
			} else {
				chapter = &Chapter{Title: title}
			}
		default:
			if inSummary || chapter != nil {
				body = append(body, strings.TrimSpace(line))
			}
		}
	}
	finish()

	rep.stat("books", books)
	rep.stat("speeches", len(out))
	rep.stat("chapters", chapters)
	rep.stat("with summary", summaries)
	return out, rep
}

// GroupSpeeches groups articles by book, keeping first-seen book order.
func GroupSpeeches(speeches []SpeechArticle) []SpeechBook {
	var out []SpeechBook
	index := map[string]int{}
	for _, s := range speeches {
		i, ok := index[s.BookName]
		if !ok {
			i = len(out)
			index[s.BookName] = i
			out = append(out, SpeechBook{Name: s.BookName})
		}
		out[i].Speeches = append(out[i].Speeches, s)
	}
	return out
}
