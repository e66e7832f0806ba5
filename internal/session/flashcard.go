package session

import (
	"slices"
	"time"

	"github.com/samber/lo"

	"github.com/abhisek/wordiz/internal/content"
)

// Selection picks the flashcard pool: units of one book and a mode.
type Selection struct {
	BookID string
	Units  []string
	Mode   Mode
}

// Outcome is the result of marking one flashcard.
type Outcome struct {
	WordID   string
	Correct  bool
	Mastery  int  // mastery level after the answer
	Finished bool // the answer ended the session
}

// Flashcard runs self-judged flashcard sessions:
// Setup -> Active -> Finished.
type Flashcard struct {
	env      Env
	catalog  Catalog
	progress Progress

	phase     Phase
	id        string
	review    bool
	questions []Question
	index     int
	started   time.Time
	finished  time.Time
	correct   int
	wrong     int
	wrongIDs  []string
	marked    []string
}

// NewFlashcard returns an engine in the Setup phase.
func NewFlashcard(c Catalog, p Progress, opts ...Option) *Flashcard {
	return &Flashcard{env: NewEnv(opts...), catalog: c, progress: p}
}

// Phase returns the current lifecycle phase.
func (f *Flashcard) Phase() Phase { return f.phase }

// ID returns the identifier of the current or last session.
func (f *Flashcard) ID() string { return f.id }

// Review reports whether the session drills the wrong list.
func (f *Flashcard) Review() bool { return f.review }

// Start begins a session over the selected units, shuffled.
func (f *Flashcard) Start(sel Selection) error {
	const op = "flashcard start"
	if f.phase == PhaseActive {
		return WrongPhase(op, f.phase)
	}
	if f.catalog == nil {
		return Invalid(op, ErrNoCatalog)
	}
	if sel.BookID == "" || len(sel.Units) == 0 {
		return Invalid(op, ErrEmptySelection)
	}
	if _, err := ParseMode(string(sel.Mode)); err != nil {
		return Invalid(op, err)
	}
	words := f.catalog.WordsIn(sel.BookID, sel.Units...)
	if len(words) == 0 {
		return Invalid(op, ErrEmptyPool)
	}
	f.begin(words, sel.Mode, false)
	return nil
}

// StartReview begins a zh-to-en session over the learner's wrong list.
func (f *Flashcard) StartReview() error {
	const op = "flashcard review"
	if f.phase == PhaseActive {
		return WrongPhase(op, f.phase)
	}
	if f.catalog == nil {
		return Invalid(op, ErrNoCatalog)
	}
	ids := f.progress.WrongWords()
	if len(ids) == 0 {
		return Invalid(op, ErrEmptySelection)
	}
	words := ResolveWords(f.catalog, ids)
	if len(words) == 0 {
		return Invalid(op, ErrEmptyPool)
	}
	f.begin(words, ModeZhToEn, true)
	return nil
}

func (f *Flashcard) begin(words []content.WordItem, mode Mode, review bool) {
	pool := slices.Clone(words)
	Shuffle(pool, f.env.Rand)

	questions := make([]Question, len(pool))
	for i, w := range pool {
		typ := mode
		if mode == ModeMixed {
			typ = ModeZhToEn
			if f.env.Rand.IntN(2) == 0 {
				typ = ModeEnToZh
			}
		}
		src, _ := f.catalog.WordLocation(w.ID)
		questions[i] = NewQuestion(i, w, src, typ)
	}

	*f = Flashcard{
		env:       f.env,
		catalog:   f.catalog,
		progress:  f.progress,
		phase:     PhaseActive,
		id:        f.env.NewID(),
		review:    review,
		questions: questions,
		started:   f.env.Now(),
	}
	f.env.Log.WithField("session", f.id).WithField("questions", len(questions)).Debug("flashcard session started")
	f.cue()
}

// cue pronounces the word when the card shows the English side.
func (f *Flashcard) cue() {
	if q := f.questions[f.index]; q.Type == ModeEnToZh {
		f.env.Speak(q.Answer.Word)
	}
}

// Current returns the question awaiting an answer.
func (f *Flashcard) Current() (Question, bool) {
	if f.phase != PhaseActive {
		return Question{}, false
	}
	return f.questions[f.index], true
}

// Progress returns the position of the current question.
func (f *Flashcard) Progress() Position {
	return Position{Index: f.index, Total: len(f.questions)}
}

// Reveal flips the card. It changes no state and only pronounces the
// answer word.
func (f *Flashcard) Reveal() error {
	if f.phase != PhaseActive {
		return WrongPhase("flashcard reveal", f.phase)
	}
	f.env.Speak(f.questions[f.index].Answer.Word)
	return nil
}

// Mark records the learner's judgment of the current card and advances.
// A correct answer takes the word off the wrong list straight away; the
// end-of-session merge puts back words that were also missed later.
func (f *Flashcard) Mark(correct, markForReview bool) (Outcome, error) {
	if f.phase != PhaseActive {
		return Outcome{}, WrongPhase("flashcard mark", f.phase)
	}
	q := f.questions[f.index]
	wp := f.progress.RecordAnswer(q.WordID, correct, markForReview)

	if correct {
		f.correct++
		f.progress.RemoveFromWrongWords(q.WordID)
	} else {
		f.wrong++
		if !lo.Contains(f.wrongIDs, q.WordID) {
			f.wrongIDs = append(f.wrongIDs, q.WordID)
		}
		if markForReview {
			f.marked = append(f.marked, q.WordID)
		}
	}

	out := Outcome{WordID: q.WordID, Correct: correct, Mastery: wp.MasteryLevel}
	if f.index == len(f.questions)-1 {
		f.finish()
		out.Finished = true
		return out, nil
	}
	f.index++
	f.cue()
	return out, nil
}

func (f *Flashcard) finish() {
	f.phase = PhaseFinished
	f.finished = f.env.Now()
	f.progress.MergeWrongWords(f.wrongIDs)
	s := f.summary()
	f.env.Log.WithField("session", f.id).WithField("accuracy", s.Accuracy).Info("flashcard session finished")
	f.env.Record(s)
}

// Exit abandons the session. Answers already marked stay recorded.
func (f *Flashcard) Exit() {
	if f.phase == PhaseActive {
		f.env.Log.WithField("session", f.id).Debug("flashcard session abandoned")
	}
	f.phase = PhaseSetup
	f.questions = nil
	f.index = 0
}

// Summary reports a finished session.
func (f *Flashcard) Summary() (Summary, error) {
	if f.phase != PhaseFinished {
		return Summary{}, WrongPhase("flashcard summary", f.phase)
	}
	return f.summary(), nil
}

func (f *Flashcard) summary() Summary {
	total := len(f.questions)
	return Summary{
		SessionID:     f.id,
		Kind:          KindFlashcard,
		Total:         total,
		Correct:       f.correct,
		Wrong:         f.wrong,
		Accuracy:      Accuracy(f.correct, total),
		Elapsed:       f.finished.Sub(f.started),
		WrongWordIDs:  slices.Clone(f.wrongIDs),
		MarkedWordIDs: slices.Clone(f.marked),
	}
}
