// Package session holds the primitives shared by the practice engines
// (phases, validation errors, shuffling, summaries and history) and the
// flashcard engine itself.
package session

import (
	"errors"
	"fmt"
)

// Phase is the lifecycle stage of an engine.
type Phase int

const (
	PhaseSetup    Phase = iota // waiting for Start
	PhaseActive                // serving questions
	PhaseFinished              // summary available
)

func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "setup"
	case PhaseActive:
		return "active"
	case PhaseFinished:
		return "finished"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

var (
	ErrEmptySelection = errors.New("nothing selected")
	ErrEmptyPool      = errors.New("selection contains no items")
	ErrInvalidState   = errors.New("not allowed in the current phase")
	ErrInvalidMode    = errors.New("unknown question mode")
	ErrNoCatalog      = errors.New("content catalog is not loaded")
)

// ValidationError reports caller misuse of an engine. The engine state is
// unchanged when one is returned. Reason is one of the Err* sentinels,
// possibly wrapped with detail.
type ValidationError struct {
	Op     string
	Reason error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Reason)
}

func (e *ValidationError) Unwrap() error { return e.Reason }

// Invalid returns a ValidationError for op.
func Invalid(op string, reason error) error {
	return &ValidationError{Op: op, Reason: reason}
}

// WrongPhase reports op being called while the engine is in phase p.
func WrongPhase(op string, p Phase) error {
	return &ValidationError{Op: op, Reason: fmt.Errorf("%w (%s)", ErrInvalidState, p)}
}

// Position is how far an engine has advanced through its questions.
type Position struct {
	Index int // 0-based index of the current question
	Total int
}

// Fraction returns the share of questions reached, counting the current
// one, in [0, 1].
func (p Position) Fraction() float64 {
	if p.Total == 0 {
		return 0
	}
	return float64(min(p.Index+1, p.Total)) / float64(p.Total)
}
