package mastery

// MasteryState is the display bucket of a word's mastery level.
type MasteryState string

const (
	StateReview   MasteryState = "review"   // level 0-1
	StateLearning MasteryState = "learning" // level 2-3
	StateMastered MasteryState = "mastered" // level 4-5
)

// Level thresholds.
const (
	LearningLevel = 2
	MasteredLevel = 4
)

// StateFor buckets a mastery level.
func StateFor(level int) MasteryState {
	switch {
	case level >= MasteredLevel:
		return StateMastered
	case level >= LearningLevel:
		return StateLearning
	default:
		return StateReview
	}
}
