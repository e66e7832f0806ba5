// Package screentest builds small catalogs and stores for screen tests.
package screentest

import (
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/wordiz/internal/content"
	"github.com/abhisek/wordiz/internal/progress"
	"github.com/abhisek/wordiz/internal/screen"
	"github.com/abhisek/wordiz/internal/session"
)

// Speaker records spoken text.
type Speaker struct {
	Spoken []string
}

func (s *Speaker) Speak(text string) { s.Spoken = append(s.Spoken, text) }

// Books is the word content of Catalog: one book, two units.
func Books() []content.WordBook {
	return []content.WordBook{{
		ID:   "pets",
		Name: "Pets",
		Units: []content.Unit{
			{Unit: "Unit 1", Title: "Animals", Words: []content.WordItem{
				{ID: "pets-u1-w1", Word: "cat", Meaning: "猫", Phonetic: "/kæt/", Example: "I have a cat.", Translation: "我有一只猫。"},
				{ID: "pets-u1-w2", Word: "dog", Meaning: "狗"},
				{ID: "pets-u1-w3", Word: "fish", Meaning: "鱼"},
			}},
			{Unit: "Unit 2", Title: "Birds", Words: []content.WordItem{
				{ID: "pets-u2-w1", Word: "bird", Meaning: "鸟"},
			}},
		},
	}}
}

// Readings is the reading content of Catalog.
func Readings() []content.ReadingArticle {
	return []content.ReadingArticle{{
		ID:       "reading-001",
		BookName: "Pets",
		UnitName: "Unit 1",
		Title:    "At home",
		TitleCn:  "在家",
		Dialogues: []content.Dialogue{
			{Speaker: "Amy", SpeakerCn: "艾米", Content: "I like cats.", ContentCn: "我喜欢猫。"},
			{Speaker: "Tom", SpeakerCn: "汤姆", Content: "Me too!", ContentCn: "我也是！"},
		},
	}}
}

// Catalog returns the fixture catalog.
func Catalog(t *testing.T) *content.Catalog {
	t.Helper()
	c, err := content.New(Books(), Readings(), nil)
	if err != nil {
		t.Fatalf("build catalog: %v", err)
	}
	return c
}

// Deps returns screen dependencies over the fixture catalog, an
// in-memory progress store, a recording speaker and a fixed seed.
func Deps(t *testing.T) (screen.Deps, *Speaker) {
	t.Helper()
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.Local)
	clock := func() time.Time { return now }
	sp := &Speaker{}
	return screen.Deps{
		Catalog:  Catalog(t),
		Progress: progress.New(progress.NewMemoryBackend(), progress.WithClock(clock)),
		Speaker:  sp,
		EngineOptions: []session.Option{
			session.WithSeed(7),
			session.WithClock(clock),
		},
	}, sp
}

// Key builds a key press for a printable character.
func Key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// Special builds a key press for a non-printable key such as tea.KeyEnter.
func Special(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// Type sends each rune of text to update.
func Type(s screen.Screen, text string) {
	for _, r := range text {
		s.Update(Key(r))
	}
}

// Msg runs cmd and returns its message, or nil for a nil command.
func Msg(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}
