package content

import (
	"errors"
	"fmt"
)

// ErrEmptyCatalog is returned when the loaded content holds no words.
var ErrEmptyCatalog = errors.New("content catalog has no words")

// LoadError reports a content source that could not be read or parsed.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
