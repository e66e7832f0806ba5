// Package sentence implements sentence reconstruction: the learner sees
// a dialogue line's translation and types the English sentence word by
// word.
package sentence

import (
	"errors"
	"fmt"
	"time"

	"github.com/samber/lo"

	"github.com/abhisek/wordiz/internal/content"
	"github.com/abhisek/wordiz/internal/progress"
	"github.com/abhisek/wordiz/internal/session"
)

var (
	// ErrTokenCount is returned by Check when the number of inputs does
	// not match the number of words in the sentence.
	ErrTokenCount  = errors.New("input count does not match the sentence")
	ErrAnswered    = errors.New("sentence already answered, advance to continue")
	ErrNotAnswered = errors.New("sentence not answered yet")
)

// Selection picks dialogues by reading book and, optionally, unit.
type Selection struct {
	BookName string
	UnitName string
}

// Catalog is the part of the content catalog sentences are drawn from.
// *content.Catalog satisfies it.
type Catalog interface {
	DialoguesIn(bookName, unitName string) []content.SourcedDialogue
}

// Progress is the part of the progress store the engine writes through.
// *progress.Store satisfies it.
type Progress interface {
	AddWrongSentence(ws progress.WrongSentence) progress.WrongSentence
	RemoveFromWrongSentences(id string) bool
	WrongSentences() []progress.WrongSentence
}

// Item is one sentence to reconstruct.
type Item struct {
	ID             string
	ReadingID      string
	ReadingTitleCn string
	SpeakerCn      string
	English        string
	Chinese        string
	Tokens         []Token
}

// Result is the outcome of one Check.
type Result struct {
	SentenceID string
	Correct    bool
	Marks      []bool // per token
	WrongCount int    // stored failure count after a wrong answer
}

// Engine runs sentence sessions: Setup -> Active -> Finished.
type Engine struct {
	env      session.Env
	catalog  Catalog
	progress Progress

	phase    session.Phase
	id       string
	review   bool
	items    []Item
	index    int
	answered bool
	started  time.Time
	finished time.Time
	correct  int
	wrong    int
	skipped  int
}

// New returns an engine in the Setup phase. Only WithClock, WithSpeaker,
// WithLogger and WithHistory matter: sentences keep reading order.
func New(c Catalog, p Progress, opts ...session.Option) *Engine {
	return &Engine{env: session.NewEnv(opts...), catalog: c, progress: p}
}

func (e *Engine) Phase() session.Phase { return e.phase }
func (e *Engine) ID() string           { return e.id }
func (e *Engine) Review() bool         { return e.review }

// Start begins a session over the dialogues of the selected readings.
func (e *Engine) Start(sel Selection) error {
	const op = "sentence start"
	if e.phase == session.PhaseActive {
		return session.WrongPhase(op, e.phase)
	}
	if e.catalog == nil {
		return session.Invalid(op, session.ErrNoCatalog)
	}
	if sel.BookName == "" {
		return session.Invalid(op, session.ErrEmptySelection)
	}
	items := itemsFromDialogues(e.catalog.DialoguesIn(sel.BookName, sel.UnitName))
	if len(items) == 0 {
		return session.Invalid(op, session.ErrEmptyPool)
	}
	e.begin(items, false)
	return nil
}

// StartReview begins a session over the wrong-sentence list.
func (e *Engine) StartReview() error {
	const op = "sentence review"
	if e.phase == session.PhaseActive {
		return session.WrongPhase(op, e.phase)
	}
	wrong := e.progress.WrongSentences()
	if len(wrong) == 0 {
		return session.Invalid(op, session.ErrEmptySelection)
	}
	var items []Item
	for _, ws := range wrong {
		tokens := Tokenize(ws.English)
		if len(tokens) == 0 {
			continue
		}
		items = append(items, Item{
			ID:             ws.ID,
			ReadingID:      ws.ReadingID,
			ReadingTitleCn: ws.ReadingTitleCn,
			English:        ws.English,
			Chinese:        ws.Chinese,
			Tokens:         tokens,
		})
	}
	if len(items) == 0 {
		return session.Invalid(op, session.ErrEmptyPool)
	}
	e.begin(items, true)
	return nil
}

// itemsFromDialogues keeps reading order. A dialogue without an ID is
// keyed by its reading and position.
func itemsFromDialogues(ds []content.SourcedDialogue) []Item {
	pos := map[string]int{}
	var items []Item
	for _, d := range ds {
		i := pos[d.ReadingID]
		pos[d.ReadingID]++
		tokens := Tokenize(d.Content)
		if len(tokens) == 0 {
			continue
		}
		id := d.ID
		if id == "" {
			id = fmt.Sprintf("%s-%d", d.ReadingID, i)
		}
		items = append(items, Item{
			ID:             id,
			ReadingID:      d.ReadingID,
			ReadingTitleCn: d.ReadingTitleCn,
			SpeakerCn:      d.SpeakerCn,
			English:        d.Content,
			Chinese:        d.ContentCn,
			Tokens:         tokens,
		})
	}
	return items
}

func (e *Engine) begin(items []Item, review bool) {
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
	e.env.Log.WithField("session", e.id).WithField("sentences", len(items)).Debug("sentence session started")
}

// Current returns the sentence awaiting an answer.
func (e *Engine) Current() (Item, bool) {
	if e.phase != session.PhaseActive {
		return Item{}, false
	}
	return e.items[e.index], true
}

// Progress returns the position of the current sentence.
func (e *Engine) Progress() session.Position {
	return session.Position{Index: e.index, Total: len(e.items)}
}

// Answered reports whether the current sentence was reconstructed and
// the engine waits for Advance.
func (e *Engine) Answered() bool { return e.phase == session.PhaseActive && e.answered }

// Replay reads the current sentence aloud.
func (e *Engine) Replay() {
	if e.phase == session.PhaseActive {
		e.env.Speak(e.items[e.index].English)
	}
}

// Check scores one input per token. Every word must match exactly,
// case included. A wrong answer is added to the wrong-sentence list and
// the sentence stays current; a correct answer in review mode removes
// it from that list.
func (e *Engine) Check(inputs []string) (Result, error) {
	const op = "sentence check"
	if e.phase != session.PhaseActive {
		return Result{}, session.WrongPhase(op, e.phase)
	}
	if e.answered {
		return Result{}, session.Invalid(op, ErrAnswered)
	}
	it := e.items[e.index]
	if len(inputs) != len(it.Tokens) {
		return Result{}, session.Invalid(op, fmt.Errorf("%w: got %d, want %d", ErrTokenCount, len(inputs), len(it.Tokens)))
	}

	marks := MarkInputs(it.Tokens, inputs)
	res := Result{SentenceID: it.ID, Marks: marks, Correct: !lo.Contains(marks, false)}
	if res.Correct {
		e.correct++
		e.answered = true
		if e.review {
			e.progress.RemoveFromWrongSentences(it.ID)
		}
		return res, nil
	}

	e.wrong++
	ws := e.progress.AddWrongSentence(progress.WrongSentence{
		ID:             it.ID,
		ReadingID:      it.ReadingID,
		ReadingTitleCn: it.ReadingTitleCn,
		English:        it.English,
		Chinese:        it.Chinese,
	})
	res.WrongCount = ws.WrongCount
	return res, nil
}

// ShowAnswer marks which of inputs are already right and reads the
// sentence aloud. It neither scores nor advances.
func (e *Engine) ShowAnswer(inputs []string) ([]bool, error) {
	if e.phase != session.PhaseActive {
		return nil, session.WrongPhase("sentence show answer", e.phase)
	}
	it := e.items[e.index]
	e.env.Speak(it.English)
	return MarkInputs(it.Tokens, inputs), nil
}

// Advance moves past a correctly reconstructed sentence.
func (e *Engine) Advance() error {
	const op = "sentence advance"
	if e.phase != session.PhaseActive {
		return session.WrongPhase(op, e.phase)
	}
	if !e.answered {
		return session.Invalid(op, ErrNotAnswered)
	}
	e.next()
	return nil
}

// Skip moves on without scoring the current sentence.
func (e *Engine) Skip() error {
	if e.phase != session.PhaseActive {
		return session.WrongPhase("sentence skip", e.phase)
	}
	if !e.answered {
		e.skipped++
	}
	e.next()
	return nil
}

func (e *Engine) next() {
	if e.index == len(e.items)-1 {
		e.phase = session.PhaseFinished
		e.finished = e.env.Now()
		s := e.summary()
		e.env.Log.WithField("session", e.id).WithField("accuracy", s.Accuracy).Info("sentence session finished")
		e.env.Record(s)
		return
	}
	e.index++
	e.answered = false
}

// Exit abandons the session.
func (e *Engine) Exit() {
	e.phase = session.PhaseSetup
	e.items = nil
	e.index = 0
	e.answered = false
}

// Summary reports a finished session. Failed sentences live in the
// wrong-sentence list, so there is no missed list here.
func (e *Engine) Summary() (session.Summary, error) {
	if e.phase != session.PhaseFinished {
		return session.Summary{}, session.WrongPhase("sentence summary", e.phase)
	}
	return e.summary(), nil
}

func (e *Engine) summary() session.Summary {
	return session.Summary{
		SessionID: e.id,
		Kind:      session.KindSentence,
		Total:     len(e.items),
		Correct:   e.correct,
		Wrong:     e.wrong,
		Skipped:   e.skipped,
		Accuracy:  session.Accuracy(e.correct, e.correct+e.wrong),
		Elapsed:   e.finished.Sub(e.started),
	}
}
