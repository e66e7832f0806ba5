// Package dictation implements spelling practice: the learner sees a
// word's meaning, hears the word, and types it.
package dictation

import (
	"errors"
	"slices"
	"time"

	"github.com/samber/lo"

	"github.com/abhisek/wordiz/internal/content"
	"github.com/abhisek/wordiz/internal/session"
)

// ErrAnswered is returned by Check once the current word was spelled
// correctly and the engine is waiting for Advance.
var ErrAnswered = errors.New("word already answered, advance to continue")

// ErrNotAnswered is returned by Advance before a correct answer. Use Skip
// to move on without one.
var ErrNotAnswered = errors.New("word not answered yet")

// Selection is one book and optionally one of its units. An empty Unit
// selects the whole book.
type Selection struct {
	BookID string
	Unit   string
}

// Progress is the part of the progress store dictation writes through.
type Progress interface {
	MergeWrongWords(ids []string)
	WrongWords() []string
}

// Prompt is what the learner sees for the current word.
type Prompt struct {
	WordID   string
	Meaning  string
	Phonetic string
	Source   content.Source
}

// Result is the outcome of one Check.
type Result struct {
	WordID   string
	Correct  bool
	Expected string
	Attempts int // checks made on this word so far, including this one
}

type item struct {
	word   content.WordItem
	source content.Source
}

// Engine runs dictation sessions: Setup -> Active -> Finished.
type Engine struct {
	env      session.Env
	catalog  session.Catalog
	progress Progress

	phase    session.Phase
	id       string
	review   bool
	items    []item
	index    int
	answered bool
	attempts int
	started  time.Time
	finished time.Time
	correct  int
	wrong    int
	skipped  int
	missed   []string
}

// New returns an engine in the Setup phase.
func New(c session.Catalog, p Progress, opts ...session.Option) *Engine {
	return &Engine{env: session.NewEnv(opts...), catalog: c, progress: p}
}

func (e *Engine) Phase() session.Phase { return e.phase }
func (e *Engine) ID() string           { return e.id }
func (e *Engine) Review() bool         { return e.review }

// Start begins a session over the selected book or unit, shuffled.
func (e *Engine) Start(sel Selection) error {
	const op = "dictation start"
	if e.phase == session.PhaseActive {
		return session.WrongPhase(op, e.phase)
	}
	if e.catalog == nil {
		return session.Invalid(op, session.ErrNoCatalog)
	}
	if sel.BookID == "" {
		return session.Invalid(op, session.ErrEmptySelection)
	}
	var words []content.WordItem
	if sel.Unit == "" {
		words = e.catalog.WordsIn(sel.BookID)
	} else {
		words = e.catalog.WordsIn(sel.BookID, sel.Unit)
	}
	if len(words) == 0 {
		return session.Invalid(op, session.ErrEmptyPool)
	}
	e.begin(words, false)
	return nil
}

// StartReview begins a session over the learner's wrong list.
func (e *Engine) StartReview() error {
	const op = "dictation review"
	if e.phase == session.PhaseActive {
		return session.WrongPhase(op, e.phase)
	}
	if e.catalog == nil {
		return session.Invalid(op, session.ErrNoCatalog)
	}
	ids := e.progress.WrongWords()
	if len(ids) == 0 {
		return session.Invalid(op, session.ErrEmptySelection)
	}
	words := session.ResolveWords(e.catalog, ids)
	if len(words) == 0 {
		return session.Invalid(op, session.ErrEmptyPool)
	}
	e.begin(words, true)
	return nil
}

func (e *Engine) begin(words []content.WordItem, review bool) {
	pool := slices.Clone(words)
	session.Shuffle(pool, e.env.Rand)
	items := make([]item, len(pool))
	for i, w := range pool {
		src, _ := e.catalog.WordLocation(w.ID)
		items[i] = item{word: w, source: src}
	}

	*e = Engine{
		env:      e.env,
		catalog:  e.catalog,
		progress: e.progress,
		phase:    session.PhaseActive,
		id:       e.env.NewID(),
		review:   review,
		items:    items,
		started:  e.env.Now(),
	}
	e.env.Log.WithField("session", e.id).WithField("words", len(items)).Debug("dictation session started")
	e.Replay()
}

// Current returns the prompt for the word awaiting an answer.
func (e *Engine) Current() (Prompt, bool) {
	if e.phase != session.PhaseActive {
		return Prompt{}, false
	}
	it := e.items[e.index]
	return Prompt{
		WordID:   it.word.ID,
		Meaning:  it.word.Meaning,
		Phonetic: it.word.Phonetic,
		Source:   it.source,
	}, true
}

// Progress returns the position of the current word.
func (e *Engine) Progress() session.Position {
	return session.Position{Index: e.index, Total: len(e.items)}
}

// Answered reports whether the current word was spelled correctly and
// the engine waits for Advance.
func (e *Engine) Answered() bool { return e.phase == session.PhaseActive && e.answered }

// Replay pronounces the current word again.
func (e *Engine) Replay() {
	if e.phase == session.PhaseActive {
		e.env.Speak(e.items[e.index].word.Word)
	}
}

// Check scores a typed spelling. A wrong spelling puts the word on the
// wrong list and keeps it current so the learner can retry or skip.
func (e *Engine) Check(typed string) (Result, error) {
	const op = "dictation check"
	if e.phase != session.PhaseActive {
		return Result{}, session.WrongPhase(op, e.phase)
	}
	if e.answered {
		return Result{}, session.Invalid(op, ErrAnswered)
	}
	w := e.items[e.index].word
	e.attempts++
	res := Result{WordID: w.ID, Expected: w.Word, Attempts: e.attempts}

	if Match(typed, w.Word) {
		res.Correct = true
		e.correct++
		e.answered = true
		return res, nil
	}
	e.wrong++
	if !lo.Contains(e.missed, w.ID) {
		e.missed = append(e.missed, w.ID)
	}
	e.progress.MergeWrongWords([]string{w.ID})
	return res, nil
}

// Advance moves past a correctly spelled word, finishing the session
// after the last one.
func (e *Engine) Advance() error {
	const op = "dictation advance"
	if e.phase != session.PhaseActive {
		return session.WrongPhase(op, e.phase)
	}
	if !e.answered {
		return session.Invalid(op, ErrNotAnswered)
	}
	e.next()
	return nil
}

// Skip moves on without scoring the current word.
func (e *Engine) Skip() error {
	if e.phase != session.PhaseActive {
		return session.WrongPhase("dictation skip", e.phase)
	}
	if !e.answered {
		e.skipped++
	}
	e.next()
	return nil
}

func (e *Engine) next() {
	if e.index == len(e.items)-1 {
		e.finish()
		return
	}
	e.index++
	e.answered = false
	e.attempts = 0
	e.Replay()
}

// Reveal returns the expected spelling and pronounces it. It neither
// scores nor advances.
func (e *Engine) Reveal() (string, error) {
	if e.phase != session.PhaseActive {
		return "", session.WrongPhase("dictation reveal", e.phase)
	}
	w := e.items[e.index].word.Word
	e.env.Speak(w)
	return w, nil
}

func (e *Engine) finish() {
	e.phase = session.PhaseFinished
	e.finished = e.env.Now()
	s := e.summary()
	e.env.Log.WithField("session", e.id).WithField("accuracy", s.Accuracy).Info("dictation session finished")
	e.env.Record(s)
}

// Exit abandons the session. Wrong spellings already made stay on the
// wrong list.
func (e *Engine) Exit() {
	e.phase = session.PhaseSetup
	e.items = nil
	e.index = 0
	e.answered = false
}

// Summary reports a finished session. Accuracy is over checks made, so
// skipped words do not count against it.
func (e *Engine) Summary() (session.Summary, error) {
	if e.phase != session.PhaseFinished {
		return session.Summary{}, session.WrongPhase("dictation summary", e.phase)
	}
	return e.summary(), nil
}

func (e *Engine) summary() session.Summary {
	return session.Summary{
		SessionID: e.id,
		Kind:      session.KindDictation,
		Total:     len(e.items),
		Correct:   e.correct,
		Wrong:     e.wrong,
		Skipped:   e.skipped,
		Accuracy:  session.Accuracy(e.correct, e.correct+e.wrong),
		Elapsed:   e.finished.Sub(e.started),
		Missed:    slices.Clone(e.missed),
	}
}
