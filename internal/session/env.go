package session

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/wordiz/internal/audio"
)

// Kind names an engine in session history.
type Kind string

const (
	KindFlashcard Kind = "flashcard"
	KindDictation Kind = "dictation"
	KindSentence  Kind = "sentence"
)

// historyTimeout bounds writing one history record.
const historyTimeout = 5 * time.Second

// Env carries the collaborators every engine shares. The zero value is
// not usable; build one with NewEnv.
type Env struct {
	Now     func() time.Time
	Rand    *rand.Rand
	Speaker audio.Speaker
	Log     logrus.FieldLogger
	History HistoryRecorder
	NewID   func() string
}

// Option configures an Env.
type Option func(*Env)

// WithClock sets the time source used for elapsed times.
func WithClock(now func() time.Time) Option {
	return func(e *Env) { e.Now = now }
}

// WithRand sets the random source used for shuffling and mixed modes.
func WithRand(r *rand.Rand) Option {
	return func(e *Env) { e.Rand = r }
}

// WithSeed is WithRand with a deterministic PCG source.
func WithSeed(seed uint64) Option {
	return WithRand(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// WithSpeaker sets where pronunciation cues are sent.
func WithSpeaker(s audio.Speaker) Option {
	return func(e *Env) { e.Speaker = s }
}

// WithLogger sets the engine logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(e *Env) { e.Log = l }
}

// WithHistory records finished sessions.
func WithHistory(h HistoryRecorder) Option {
	return func(e *Env) { e.History = h }
}

// NewEnv applies opts over the defaults: wall clock, a randomly seeded
// source, no audio, a discarding logger and no history.
func NewEnv(opts ...Option) Env {
	e := Env{
		Now:     time.Now,
		Speaker: audio.Nop{},
		NewID:   uuid.NewString,
	}
	for _, o := range opts {
		o(&e)
	}
	if e.Rand == nil {
		e.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if e.Speaker == nil {
		e.Speaker = audio.Nop{}
	}
	if e.Log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		e.Log = l
	}
	return e
}

// Speak sends text to the speaker. Audio never blocks or fails an engine.
func (e Env) Speak(text string) {
	defer func() {
		if r := recover(); r != nil {
			e.Log.WithField("panic", r).Warn("speaker failed")
		}
	}()
	e.Speaker.Speak(text)
}

// Record appends a finished session to history, logging failures.
func (e Env) Record(s Summary) {
	if e.History == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), historyTimeout)
	defer cancel()
	if err := e.History.RecordSession(ctx, s); err != nil {
		e.Log.WithError(err).WithField("session", s.SessionID).Warn("record session history")
	}
}

// Shuffle permutes items in place with the Fisher-Yates algorithm: each
// position from the last down to 1 is swapped with a uniformly chosen
// position at or before it.
func Shuffle[T any](items []T, r *rand.Rand) {
	for i := len(items) - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}
