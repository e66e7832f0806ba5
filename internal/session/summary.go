package session

import (
	"fmt"
	"math"
	"time"
)

// Summary is the end-of-session report shared by all engines.
type Summary struct {
	SessionID string
	Kind      Kind
	Total     int
	Correct   int
	Wrong     int
	Skipped   int
	Accuracy  int // percent, rounded
	Elapsed   time.Duration

	// Flashcard only.
	WrongWordIDs  []string
	MarkedWordIDs []string

	// Dictation only: distinct words answered wrong at least once.
	Missed []string
}

// ElapsedSeconds returns Elapsed rounded to whole seconds.
func (s Summary) ElapsedSeconds() int {
	return int(math.Round(s.Elapsed.Seconds()))
}

// Accuracy returns round(correct / total * 100), or 0 for no attempts.
func Accuracy(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}

// FormatElapsed renders a duration as "42秒" under a minute and "m:ss"
// above.
func FormatElapsed(d time.Duration) string {
	secs := int(math.Round(d.Seconds()))
	if secs < 60 {
		return fmt.Sprintf("%d秒", secs)
	}
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
