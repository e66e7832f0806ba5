package content

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	readingTitle   = regexp.MustCompile(`题目：\s*(.+?)\s*[(（]([^)）]+)[)）]`)
	patternLine    = regexp.MustCompile(`^(.+?)\s*（(.+)）$`)
	dialogueFull   = regexp.MustCompile(`^([^:：]+)[:：]\s*(.+?)\s*（([^）]+)）\s*$`)
	dialogueHalf   = regexp.MustCompile(`^([^:：]+)[:：]\s*(.+?)\s*\(([^)]+)\)\s*$`)
	readingSection = []string{"题目", "场景", "重点句型", "知识点"}
)

type readingMode int

const (
	modeDialogue readingMode = iota
	modePatterns
	modeKnowledge
)

// ParseReadingsMarkdown converts a READINGS.md document into reading
// articles.
//
//	# 英语五年级上册
//	## Unit 1
//	# 题目：My New Teacher (我的新老师)
//	# 场景：Two friends talk after school.
//	# 重点句型
//	  - What's he like?（他是什么样的？）
//	# 知识点
//	  - like 表示"像……一样"
//	Amy: Who's your English teacher? (艾米：你们的英语老师是谁？)
//
// Dialogue IDs are assigned here so they stay stable across imports.
func ParseReadingsMarkdown(src string) ([]ReadingArticle, *CheckReport) {
	rep := &CheckReport{}
	var (
		out       []ReadingArticle
		cur       *ReadingArticle
		startLine int
		bookName  string
		unitName  string
		mode      readingMode
		sceneSeen bool
		patterns  int
		points    int
		dialogues int
	)

	finish := func() {
		if cur == nil {
			return
		}
		if !sceneSeen {
			rep.warnf(startLine, "reading %q has no scene", cur.Title)
		}
		if len(cur.Dialogues) == 0 {
			rep.warnf(startLine, "reading %q has no dialogues", cur.Title)
		}
		for i := range cur.Dialogues {
			cur.Dialogues[i].ID = fmt.Sprintf("%s-d%d", cur.ID, i)
		}
		out = append(out, *cur)
		cur = nil
	}

	for i, raw := range splitLines(src) {
		n := i + 1
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "<!--") || strings.HasPrefix(line, "```") {
			continue
		}

		switch {
		case isTitleLine(line):
			finish()
			cur = &ReadingArticle{
				ID:       fmt.Sprintf("reading-%03d", len(out)+1),
				BookName: bookName,
				UnitName: unitName,
			}
			startLine, mode, sceneSeen = n, modeDialogue, false
			if m := readingTitle.FindStringSubmatch(line); m != nil {
				cur.Title, cur.TitleCn = strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
			} else {
				rep.errorf(n, `title should read "题目：English (中文)"`)
				_, rest, _ := strings.Cut(line, "题目")
				cur.Title = strings.TrimSpace(strings.TrimLeft(rest, "：: "))
			}

		case strings.HasPrefix(line, "# 场景："):
			if cur == nil {
				continue
			}
			sceneSeen = true
			cur.Scene = strings.TrimSpace(strings.TrimPrefix(line, "# 场景："))
			if cur.Scene == "" {
				rep.warnf(n, "empty scene")
			}

		case strings.HasPrefix(line, "# 重点句型"):
			mode = modePatterns

		case strings.HasPrefix(line, "# 知识点"):
			mode = modeKnowledge

		case strings.HasPrefix(line, "## "):
			finish()
			unitName = strings.TrimSpace(strings.TrimPrefix(line, "## "))

		case strings.HasPrefix(line, "# "):
			if bookName == "" && !isSectionHeading(line) {
				bookName = strings.TrimSpace(strings.TrimPrefix(line, "# "))
			}

		case strings.HasPrefix(line, "- ") && mode != modeDialogue:
			if cur == nil {
				continue
			}
			item := strings.TrimSpace(strings.TrimPrefix(line, "- "))
			if mode == modeKnowledge {
				cur.KnowledgePoints = append(cur.KnowledgePoints, item)
				points++
				continue
			}
			if strings.Contains(item, "（") {
				m := patternLine.FindStringSubmatch(item)
				if m == nil {
					rep.warnf(n, "cannot parse sentence pattern %q", item)
					continue
				}
				cur.KeySentencePatterns = append(cur.KeySentencePatterns, KeyPattern{Pattern: m[1], Meaning: m[2]})
			} else {
				cur.KeySentencePatterns = append(cur.KeySentencePatterns, KeyPattern{Pattern: item})
			}
			patterns++

		case cur != nil && strings.ContainsAny(line, ":：") && strings.ContainsAny(line, "(（"):
			mode = modeDialogue
			d, ok := parseDialogueLine(line)
			if !ok {
				rep.warnf(n, "cannot parse dialogue line")
				continue
			}
			if d.Speaker == "" || d.Content == "" || d.ContentCn == "" {
				rep.errorf(n, "dialogue is missing its speaker, English or Chinese text")
				continue
			}
			cur.Dialogues = append(cur.Dialogues, d)
			dialogues++
		}
	}
	finish()

	rep.stat("readings", len(out))
	rep.stat("sentence patterns", patterns)
	rep.stat("knowledge points", points)
	rep.stat("dialogues", dialogues)
	return out, rep
}

func isTitleLine(line string) bool {
	return strings.HasPrefix(line, "# 题目") || strings.HasPrefix(line, "* 题目")
}

func isSectionHeading(line string) bool {
	h := strings.TrimSpace(strings.TrimPrefix(line, "# "))
	for _, s := range readingSection {
		if strings.HasPrefix(h, s) {
			return true
		}
	}
	return false
}

// parseDialogueLine splits "Speaker: English (说话人：中文)". The Chinese
// speaker name is taken from the translation prefix when present.
func parseDialogueLine(line string) (Dialogue, bool) {
	m := dialogueFull.FindStringSubmatch(line)
	if m == nil {
		m = dialogueHalf.FindStringSubmatch(line)
	}
	if m == nil {
		return Dialogue{}, false
	}
	d := Dialogue{
		Speaker:   strings.TrimSpace(m[1]),
		Content:   strings.TrimSpace(m[2]),
		ContentCn: strings.TrimSpace(m[3]),
	}
	d.SpeakerCn = d.ContentCn
	if i := strings.IndexAny(d.ContentCn, ":："); i > 0 {
		d.SpeakerCn = strings.TrimSpace(d.ContentCn[:i])
	}
	return d, true
}
